//go:build linux && hostfd_native

package hostfd

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// This file is the native backend on Linux: operations delegate to the
// golang.org/x/sys/unix wrapper functions instead of raw syscall
// numbers. Selected with the hostfd_native build tag.

func seek(fd int32, offset int64, whence int) (uint64, error) {
	n, err := unix.Seek(int(fd), offset, whence)
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func fchmod(fd int32, mode Mode) error {
	return unix.Fchmod(int(fd), uint32(mode))
}

func fstat(fd int32) (Stat, error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(fd), &st); err != nil {
		return Stat{}, err
	}
	return statFromHost(&st), nil
}

func fstatfs(fd int32) (StatFs, error) {
	var st unix.Statfs_t
	if err := unix.Fstatfs(int(fd), &st); err != nil {
		return StatFs{}, err
	}
	return statfsFromHost(&st), nil
}

func futimens(fd int32, times *[2]Timespec) error {
	// x/sys wraps only the path-based utimensat; a null pathname selects
	// the descriptor itself, so this one call stays raw.
	ts := timespecsToHost(times)
	_, _, e := unix.RawSyscall6(unix.SYS_UTIMENSAT, uintptr(fd), 0, uintptr(unsafe.Pointer(&ts[0])), 0, 0, 0)
	if e != 0 {
		return e
	}
	return nil
}

func fallocate(fd int32, mode FallocateFlags, offset, length uint64) error {
	return unix.Fallocate(int(fd), uint32(mode), int64(offset), int64(length))
}

func ftruncate(fd int32, length int64) error {
	return unix.Ftruncate(int(fd), length)
}

func fsync(fd int32) error {
	return unix.Fsync(int(fd))
}

func fdatasync(fd int32) error {
	return unix.Fdatasync(int(fd))
}

func fcntlGetfl(fd int32) (int, error) {
	return unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
}

func dup(fd int32) (int32, error) {
	n, err := unix.Dup(int(fd))
	if err != nil {
		return -1, err
	}
	return int32(n), nil
}

func dupCloexec(fd int32) (int32, error) {
	n, err := unix.FcntlInt(uintptr(fd), unix.F_DUPFD_CLOEXEC, 0)
	if err != nil {
		return -1, err
	}
	return int32(n), nil
}

func dup2(fd, target int32, flags DupFlags) (int32, error) {
	if err := unix.Dup3(int(fd), int(target), int(flags)); err != nil {
		return -1, err
	}
	return target, nil
}

func ioctlFionread(fd int32) (uint64, error) {
	n, err := unix.IoctlGetInt(int(fd), unix.TIOCINQ)
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func isatty(fd int32) bool {
	_, err := unix.IoctlGetTermios(int(fd), ioctlReadTermios)
	return err == nil
}

func recvPeek(fd int32) (int, error) {
	var b [1]byte
	n, _, err := unix.Recvfrom(int(fd), b[:], unix.MSG_PEEK|unix.MSG_DONTWAIT)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func sendEmpty(fd int32) error {
	return unix.Sendto(int(fd), nil, unix.MSG_DONTWAIT|msgNoSignal, nil)
}

func read(fd int32, b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return unix.Read(int(fd), b)
}

func write(fd int32, b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return unix.Write(int(fd), b)
}

func pread(fd int32, b []byte, offset int64) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return unix.Pread(int(fd), b, offset)
}

func pwrite(fd int32, b []byte, offset int64) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	return unix.Pwrite(int(fd), b, offset)
}

func readv(fd int32, bufs [][]byte) (int, error) {
	if vecLen(bufs) == 0 {
		return 0, nil
	}
	return unix.Readv(int(fd), bufs)
}

func writev(fd int32, bufs [][]byte) (int, error) {
	if vecLen(bufs) == 0 {
		return 0, nil
	}
	return unix.Writev(int(fd), bufs)
}

func preadv(fd int32, bufs [][]byte, offset int64) (int, error) {
	if vecLen(bufs) == 0 {
		return 0, nil
	}
	return unix.Preadv(int(fd), bufs, offset)
}

func pwritev(fd int32, bufs [][]byte, offset int64) (int, error) {
	if vecLen(bufs) == 0 {
		return 0, nil
	}
	return unix.Pwritev(int(fd), bufs, offset)
}

func preadv2(fd int32, bufs [][]byte, offset int64, flags ReadWriteFlags) (uint64, error) {
	if vecLen(bufs) == 0 {
		return 0, nil
	}
	n, err := unix.Preadv2(int(fd), bufs, offset, int(flags))
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func pwritev2(fd int32, bufs [][]byte, offset int64, flags ReadWriteFlags) (uint64, error) {
	if vecLen(bufs) == 0 {
		return 0, nil
	}
	n, err := unix.Pwritev2(int(fd), bufs, offset, int(flags))
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// vecLen returns the total byte length of bufs.
func vecLen(bufs [][]byte) int {
	var length int
	for i := range bufs {
		length += len(bufs[i])
	}
	return length
}
