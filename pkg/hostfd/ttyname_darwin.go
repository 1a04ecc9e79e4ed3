//go:build darwin

package hostfd

import (
	"os"

	"golang.org/x/sys/unix"
)

// ttyname resolves the terminal name the way devname does: walk /dev and
// match the descriptor's character device number. Darwin has no
// /proc-style descriptor links.
func ttyname(fd int32, reuse []byte) ([]byte, error) {
	if !isatty(fd) {
		return nil, unix.ENOTTY
	}
	var st unix.Stat_t
	if err := unix.Fstat(int(fd), &st); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir("/dev")
	if err != nil {
		return nil, unix.ENODEV
	}
	for _, e := range entries {
		name := "/dev/" + e.Name()
		var dst unix.Stat_t
		if unix.Stat(name, &dst) != nil {
			continue
		}
		if Mode(dst.Mode).IsCharDevice() && dst.Rdev == st.Rdev {
			return append(reuse[:0], name...), nil
		}
	}
	return nil, unix.ENODEV
}
