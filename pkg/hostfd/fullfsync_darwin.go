//go:build darwin

package hostfd

import (
	"golang.org/x/sys/unix"

	"github.com/walteh/hostfd/pkg/fd"
)

// Fullfsync asks the drive to flush f all the way to the platter
// (F_FULLFSYNC). Darwin's plain fsync only guarantees handoff to the
// drive; this is the stronger durability barrier.
//
// Only compiled on Darwin.
func Fullfsync(f fd.Lender) error {
	_, err := unix.FcntlInt(uintptr(f.Borrow().Raw()), unix.F_FULLFSYNC, 0)
	return err
}
