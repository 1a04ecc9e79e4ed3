// Package fd provides ownership-typed wrappers around host file
// descriptors.
//
// Raw descriptor numbers are easy to leak and easy to close twice. This
// package replaces them with two capability kinds:
//
//   - FD exclusively owns a descriptor and releases it exactly once, no
//     matter how many times Close is called. Callers are expected to
//     `defer f.Close()` as soon as they obtain one, so the descriptor is
//     returned to the host on every exit path.
//
//   - Borrowed is a non-owning reference, valid only for the duration of
//     the call it is lent to. It carries no release responsibility.
//
// APIs that merely use a descriptor accept a Lender; APIs that take over
// a descriptor accept an *FD and consume it via Release.
package fd

import (
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// Borrowed is a non-owning reference to a host file descriptor. It is
// only valid for the duration of the call it was lent to; holding one
// across calls defeats the ownership tracking this package exists for.
//
// Obtain Borrowed values from a Lender; the zero value is not
// meaningful.
type Borrowed struct {
	raw int32
}

// Raw returns the underlying descriptor number, or -1 if b refers to no
// descriptor.
func (b Borrowed) Raw() int32 {
	return b.raw
}

// Borrow implements Lender. A Borrowed lends itself.
func (b Borrowed) Borrow() Borrowed {
	return b
}

// Lender is anything that can lend its descriptor for the duration of a
// single call. FD, Borrowed and the adapters below all qualify.
type Lender interface {
	Borrow() Borrowed
}

// BorrowFile borrows the descriptor of anything exposing Fd, such as an
// *os.File or a net.TCPConn's File. Ownership stays with the source; the
// caller must keep it alive (and unclosed) for the duration of the calls
// the borrow is lent to.
//
// Note that os.File.Fd may switch the file into blocking mode; that is a
// property of the standard library, not of this package.
func BorrowFile(f interface{ Fd() uintptr }) Borrowed {
	return Borrowed{raw: int32(f.Fd())}
}

// FD owns a single host file descriptor and guarantees it is closed
// exactly once. The zero value owns no descriptor.
//
// FD is safe for concurrent use: Close and Release atomically invalidate
// the slot, so at most one caller ever receives responsibility for the
// underlying descriptor.
type FD struct {
	// fd holds the descriptor, or -1 once ownership has left this FD.
	fd atomic.Int64
}

// New creates a new FD owning the given descriptor. The caller must not
// retain other owning references to it.
func New(raw int) *FD {
	f := &FD{}
	f.fd.Store(int64(raw))
	return f
}

// NewFromFile duplicates the descriptor of the given file and returns an
// FD owning the duplicate. The file and the returned FD have independent
// lifetimes.
func NewFromFile(file *os.File) (*FD, error) {
	raw, err := unix.FcntlInt(file.Fd(), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return New(raw), nil
}

// FD returns the owned descriptor number, or -1 if ownership has been
// released. The result must not outlive f.
func (f *FD) FD() int {
	return int(f.fd.Load())
}

// Borrow lends the owned descriptor for the duration of a single call.
func (f *FD) Borrow() Borrowed {
	return Borrowed{raw: int32(f.fd.Load())}
}

// Release transfers ownership of the descriptor to the caller and
// invalidates f. Returns -1 if ownership had already left f.
func (f *FD) Release() int {
	return int(f.fd.Swap(-1))
}

// Close closes the owned descriptor. Only the first call closes; later
// calls (and calls after Release) return EBADF without touching the
// descriptor slot, which may have been reused by the host.
func (f *FD) Close() error {
	raw := f.fd.Swap(-1)
	if raw < 0 {
		return unix.EBADF
	}
	return unix.Close(int(raw))
}
