//go:build linux

package hostfd

import "github.com/walteh/hostfd/pkg/fd"

// Fdatasync flushes the data of f, and only the metadata needed to read
// that data back, to durable storage. Blocks until the host reports
// completion.
//
// Not compiled on targets without fdatasync; on Darwin see Fullfsync.
func Fdatasync(f fd.Lender) error {
	return fdatasync(f.Borrow().Raw())
}
