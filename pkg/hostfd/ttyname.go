//go:build darwin || (linux && hostfd_native)

package hostfd

import "github.com/walteh/hostfd/pkg/fd"

// Ttyname returns the path of the terminal device f refers to. If reuse
// has capacity, its storage is reused for the result. Fails with ENOTTY
// if f is not a terminal and ENODEV if the name cannot be resolved.
//
// Only compiled on the native backend: the direct backend does not
// implement terminal name resolution yet.
func Ttyname(f fd.Lender, reuse []byte) ([]byte, error) {
	return ttyname(f.Borrow().Raw(), reuse)
}
