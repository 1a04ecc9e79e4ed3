// Package hostfd provides checked, portable access to low-level host
// file descriptor operations: seeking, metadata, synchronization,
// duplication, terminal queries, and plain, positioned and vectored I/O.
//
// Every operation takes descriptors as fd.Lender capabilities rather than
// raw integers, so ownership mistakes (double close, use after close,
// accidental leaks) are confined to the fd package instead of being
// scattered across call sites. Operations that create a descriptor (Dup,
// DupCloexec, Dup2) return an owned *fd.FD; Dup2 consumes the target
// handle it is given.
//
// Each operation is implemented by exactly one backend per build target:
// a direct backend issuing raw syscalls on Linux, and a native backend
// delegating to the golang.org/x/sys/unix wrappers (selected with the
// hostfd_native build tag on Linux, and always on Darwin, where the
// wrappers go through libc). Operations a target/backend pair cannot
// support — Fdatasync on Darwin, Preadv2/Pwritev2 off Linux, Ttyname on
// the direct backend — are absent from the compiled package rather than
// failing at runtime, so portability decisions are forced to build time.
//
// Failures are reported as unix.Errno values, untouched: the facade never
// retries and never reinterprets. Short reads and writes are successes
// carrying the transferred count, per POSIX; callers loop if they need
// more. Blocking behavior is the host's: there is no cancellation at this
// layer.
//
// Positioned (P-prefixed) transfers never touch a descriptor's current
// position and may be used concurrently over one shared descriptor.
// Non-positioned transfers and Seek mutate shared position state and need
// external synchronization if shared across goroutines.
package hostfd

import (
	"io"

	"golang.org/x/sys/unix"

	"github.com/walteh/hostfd/pkg/fd"
)

// MaxReadWriteIov is the maximum number of buffers accepted by the host
// in one vectored transfer (UIO_MAXIOV/IOV_MAX on all supported targets).
// Longer buffer sequences fail with EINVAL.
const MaxReadWriteIov = 1024

// Seek repositions the file offset of f according to whence
// (io.SeekStart, io.SeekCurrent or io.SeekEnd) and offset, returning the
// resulting absolute offset. Fails with ESPIPE on non-seekable
// descriptors and EINVAL if the resulting offset would be negative.
func Seek(f fd.Lender, offset int64, whence int) (uint64, error) {
	return seek(f.Borrow().Raw(), offset, whence)
}

// Tell returns the current file offset of f without changing any state.
// It is Seek(f, 0, io.SeekCurrent), provided separately so callers can
// express non-mutating intent.
func Tell(f fd.Lender) (uint64, error) {
	return seek(f.Borrow().Raw(), 0, io.SeekCurrent)
}

// Fchmod changes the permission bits of the file referred to by f.
// File type bits in mode are ignored by the host.
func Fchmod(f fd.Lender, mode Mode) error {
	return fchmod(f.Borrow().Raw(), mode)
}

// Fstat returns metadata for the file referred to by f.
func Fstat(f fd.Lender) (Stat, error) {
	return fstat(f.Borrow().Raw())
}

// Fstatfs returns metadata for the filesystem holding the file referred
// to by f.
func Fstatfs(f fd.Lender) (StatFs, error) {
	return fstatfs(f.Borrow().Raw())
}

// Futimens sets the access (times[0]) and modification (times[1])
// timestamps of the file referred to by f. A Timespec with Nsec set to
// UTimeNow or UTimeOmit sets that timestamp to the current time or
// leaves it unchanged, respectively.
//
// On Darwin the host interface has microsecond resolution; nanoseconds
// are truncated there.
func Futimens(f fd.Lender, times *[2]Timespec) error {
	return futimens(f.Borrow().Raw(), times)
}

// Fallocate reserves space for the file referred to by f, ensuring that
// the byte range [offset, offset+length) is backed by storage. On
// targets offering only the POSIX baseline no FallocateFlags bits are
// defined, so mode is always empty there and the call only guarantees
// the baseline behavior.
func Fallocate(f fd.Lender, mode FallocateFlags, offset, length uint64) error {
	return fallocate(f.Borrow().Raw(), mode, offset, length)
}

// Ftruncate sets the size of the file referred to by f to length,
// extending it with zeroes or discarding data past the new end.
func Ftruncate(f fd.Lender, length int64) error {
	return ftruncate(f.Borrow().Raw(), length)
}

// Fsync flushes the file referred to by f, including its metadata, to
// durable storage. Blocks until the host reports completion.
func Fsync(f fd.Lender) error {
	return fsync(f.Borrow().Raw())
}

// rwMode masks the access-mode bits of an open-flags word. This is
// deliberately not O_ACCMODE: some hosts fold O_PATH (or aliases of it)
// into O_ACCMODE, and O_PATH is handled separately by IsFileReadWrite.
const rwMode = unix.O_RDONLY | unix.O_WRONLY | unix.O_RDWR

// IsFileReadWrite reports whether f is open for reading and for writing,
// from its open access mode. Descriptors opened path-only report
// (false, false) regardless of their nominal access bits, since they
// cannot transfer data.
//
// This is only reliable for files: it does not observe socket shutdown
// state. Use IsReadWrite for descriptors that may be sockets.
func IsFileReadWrite(f fd.Lender) (readable, writable bool, err error) {
	flags, err := fcntlGetfl(f.Borrow().Raw())
	if err != nil {
		return false, false, err
	}
	return accessModeOf(flags)
}

func accessModeOf(flags int) (readable, writable bool, err error) {
	if oPath != 0 && flags&oPath != 0 {
		return false, false, nil
	}
	switch flags & rwMode {
	case unix.O_RDONLY:
		return true, false, nil
	case unix.O_WRONLY:
		return false, true, nil
	case unix.O_RDWR:
		return true, true, nil
	default:
		// The host returned an access mode outside the documented value
		// space; the ABI contract this package depends on is broken.
		panic("host returned impossible F_GETFL access mode")
	}
}

// IsReadWrite reports whether f is readable and writable. Unlike
// IsFileReadWrite it is correct for every descriptor kind the host
// supports; in particular it observes sockets whose read or write half
// has been shut down.
func IsReadWrite(f fd.Lender) (readable, writable bool, err error) {
	raw := f.Borrow().Raw()
	flags, err := fcntlGetfl(raw)
	if err != nil {
		return false, false, err
	}
	readable, writable, err = accessModeOf(flags)
	if err != nil {
		return false, false, err
	}

	notSocket := false
	if readable {
		// A one-byte peek: 0 bytes with no error means the read half is
		// shut down, EAGAIN means it is open but idle.
		n, err := recvPeek(raw)
		switch {
		case err == nil:
			if n == 0 {
				readable = false
			}
		case err == unix.EAGAIN || err == unix.EWOULDBLOCK:
			// Open, nothing buffered.
		case err == unix.ENOTSOCK:
			notSocket = true
		default:
			return false, false, err
		}
	}
	if writable && !notSocket {
		// A zero-length send: EPIPE means the write half is shut down.
		err := sendEmpty(raw)
		switch {
		case err == nil:
		case err == unix.EAGAIN || err == unix.EWOULDBLOCK:
		case err == unix.ENOTSOCK:
		case err == unix.EPIPE:
			writable = false
		default:
			return false, false, err
		}
	}
	return readable, writable, nil
}

// Dup duplicates f into a new owned descriptor referring to the same
// open file description: offset and status flags are shared, only the
// descriptor slot is distinct. The duplicate does not have close-on-exec
// set; use DupCloexec for that.
func Dup(f fd.Lender) (*fd.FD, error) {
	raw, err := dup(f.Borrow().Raw())
	if err != nil {
		return nil, err
	}
	return fd.New(int(raw)), nil
}

// DupCloexec is Dup with close-on-exec set on the new descriptor.
func DupCloexec(f fd.Lender) (*fd.FD, error) {
	raw, err := dupCloexec(f.Borrow().Raw())
	if err != nil {
		return nil, err
	}
	return fd.New(int(raw)), nil
}

// Dup2 atomically repoints target's descriptor slot at the open file
// description referred to by f, closing whatever the slot previously
// referenced, and returns a fresh owned handle over the repointed slot.
//
// target is consumed: its ownership ends with this call even on failure,
// in which case the underlying descriptor is closed.
//
// On Linux this is dup3(2), which fails with EINVAL when f and target
// refer to the same slot; Darwin's dup2(2) permits that case.
func Dup2(f fd.Lender, target *fd.FD, flags DupFlags) (*fd.FD, error) {
	tgt := int32(target.Release())
	raw, err := dup2(f.Borrow().Raw(), tgt, flags)
	if err != nil {
		if tgt >= 0 {
			unix.Close(int(tgt))
		}
		return nil, err
	}
	return fd.New(int(raw)), nil
}

// IoctlFionread returns the number of bytes available to read from f
// without blocking. Semantics are device-dependent; treat the result as
// best-effort.
func IoctlFionread(f fd.Lender) (uint64, error) {
	return ioctlFionread(f.Borrow().Raw())
}

// Isatty reports whether f refers to a terminal. Host query failures
// fold into false; there is no error condition.
func Isatty(f fd.Lender) bool {
	return isatty(f.Borrow().Raw())
}

// Read reads up to len(b) bytes from f at its current position,
// advancing it. Returns the number of bytes read; 0 with a nil error
// means end of file. Short reads are not errors.
func Read(f fd.Lender, b []byte) (int, error) {
	return read(f.Borrow().Raw(), b)
}

// Write writes up to len(b) bytes to f at its current position,
// advancing it. Short writes are not errors.
func Write(f fd.Lender, b []byte) (int, error) {
	return write(f.Borrow().Raw(), b)
}

// Pread reads up to len(b) bytes from f at the given absolute offset.
// The descriptor's current position is neither consulted nor changed, so
// concurrent positioned transfers on one descriptor do not interfere.
func Pread(f fd.Lender, b []byte, offset int64) (int, error) {
	return pread(f.Borrow().Raw(), b, offset)
}

// Pwrite writes up to len(b) bytes to f at the given absolute offset,
// leaving the descriptor's current position untouched.
func Pwrite(f fd.Lender, b []byte, offset int64) (int, error) {
	return pwrite(f.Borrow().Raw(), b, offset)
}

// Readv reads from f at its current position, scattering into bufs in
// order: each buffer is filled before the next is touched. Returns the
// aggregate byte count across all buffers.
func Readv(f fd.Lender, bufs [][]byte) (int, error) {
	return readv(f.Borrow().Raw(), bufs)
}

// Writev writes to f at its current position, gathering from bufs in
// order. Returns the aggregate byte count.
func Writev(f fd.Lender, bufs [][]byte) (int, error) {
	return writev(f.Borrow().Raw(), bufs)
}

// Preadv is Readv at an explicit absolute offset, leaving the
// descriptor's current position untouched.
func Preadv(f fd.Lender, bufs [][]byte, offset int64) (int, error) {
	return preadv(f.Borrow().Raw(), bufs, offset)
}

// Pwritev is Writev at an explicit absolute offset, leaving the
// descriptor's current position untouched.
func Pwritev(f fd.Lender, bufs [][]byte, offset int64) (int, error) {
	return pwritev(f.Borrow().Raw(), bufs, offset)
}
