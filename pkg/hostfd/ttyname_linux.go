//go:build linux && hostfd_native

package hostfd

import (
	"strconv"

	"golang.org/x/sys/unix"
)

// ttyname resolves the terminal name by reading the /proc/self/fd link
// for the descriptor and checking that the named device is still the one
// the descriptor refers to (the name can go stale if the pty is gone or
// lives in another mount namespace).
func ttyname(fd int32, reuse []byte) ([]byte, error) {
	if !isatty(fd) {
		return nil, unix.ENOTTY
	}
	var st unix.Stat_t
	if err := unix.Fstat(int(fd), &st); err != nil {
		return nil, err
	}

	buf := make([]byte, unix.PathMax)
	n, err := unix.Readlink("/proc/self/fd/"+strconv.Itoa(int(fd)), buf)
	if err != nil {
		return nil, err
	}
	name := buf[:n]
	if len(name) == 0 || name[0] != '/' {
		return nil, unix.ENODEV
	}

	var lst unix.Stat_t
	if err := unix.Stat(string(name), &lst); err != nil {
		return nil, unix.ENODEV
	}
	if lst.Rdev != st.Rdev || lst.Ino != st.Ino {
		return nil, unix.ENODEV
	}
	return append(reuse[:0], name...), nil
}
