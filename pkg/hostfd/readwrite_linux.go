//go:build linux

package hostfd

import (
	"golang.org/x/sys/unix"

	"github.com/walteh/hostfd/pkg/fd"
)

// ReadWriteFlags is the per-call flag set accepted by Preadv2 and
// Pwritev2. Only compiled on targets whose kernel and backend support
// the flagged vectored syscalls.
type ReadWriteFlags uint32

// Per-call transfer flags, as for preadv2(2)/pwritev2(2).
const (
	RWFHiPri  ReadWriteFlags = unix.RWF_HIPRI
	RWFDSync  ReadWriteFlags = unix.RWF_DSYNC
	RWFSync   ReadWriteFlags = unix.RWF_SYNC
	RWFNoWait ReadWriteFlags = unix.RWF_NOWAIT
	RWFAppend ReadWriteFlags = unix.RWF_APPEND
)

// Preadv2 is Preadv with per-call flags. offset and flags are
// interpreted as for preadv2(2); in particular offset -1 reads at, and
// advances, the descriptor's current position.
func Preadv2(f fd.Lender, bufs [][]byte, offset int64, flags ReadWriteFlags) (uint64, error) {
	return preadv2(f.Borrow().Raw(), bufs, offset, flags)
}

// Pwritev2 is Pwritev with per-call flags. offset and flags are
// interpreted as for pwritev2(2); in particular offset -1 writes at, and
// advances, the descriptor's current position.
func Pwritev2(f fd.Lender, bufs [][]byte, offset int64, flags ReadWriteFlags) (uint64, error) {
	return pwritev2(f.Borrow().Raw(), bufs, offset, flags)
}
