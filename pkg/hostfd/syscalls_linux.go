//go:build linux && (amd64 || arm64) && !hostfd_native

package hostfd

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// This file is the direct backend: operations are submitted to the
// kernel with raw syscall numbers, bypassing the x/sys wrapper layer.
// It is selected on Linux unless the hostfd_native build tag is set, and
// is limited to 64-bit targets, whose syscall table carries full-width
// offsets in a single register.

// buildIovec builds an iovec slice from the given []byte slice.
//
// iovecs is used as an initial slice, to avoid excessive allocations.
func buildIovec(bufs [][]byte, iovecs []unix.Iovec) ([]unix.Iovec, int) {
	var length int
	for i := range bufs {
		if l := len(bufs[i]); l > 0 {
			iovecs = append(iovecs, unix.Iovec{
				Base: &bufs[i][0],
				Len:  uint64(l),
			})
			length += l
		}
	}
	return iovecs, length
}

func seek(fd int32, offset int64, whence int) (uint64, error) {
	n, _, e := unix.RawSyscall(unix.SYS_LSEEK, uintptr(fd), uintptr(offset), uintptr(whence))
	if e != 0 {
		return 0, e
	}
	return uint64(n), nil
}

func fchmod(fd int32, mode Mode) error {
	_, _, e := unix.RawSyscall(unix.SYS_FCHMOD, uintptr(fd), uintptr(mode), 0)
	if e != 0 {
		return e
	}
	return nil
}

func fstat(fd int32) (Stat, error) {
	var st unix.Stat_t
	_, _, e := unix.RawSyscall(unix.SYS_FSTAT, uintptr(fd), uintptr(unsafe.Pointer(&st)), 0)
	if e != 0 {
		return Stat{}, e
	}
	return statFromHost(&st), nil
}

func fstatfs(fd int32) (StatFs, error) {
	var st unix.Statfs_t
	_, _, e := unix.RawSyscall(unix.SYS_FSTATFS, uintptr(fd), uintptr(unsafe.Pointer(&st)), 0)
	if e != 0 {
		return StatFs{}, e
	}
	return statfsFromHost(&st), nil
}

func futimens(fd int32, times *[2]Timespec) error {
	// utimensat with a null pathname operates on the descriptor itself,
	// which is exactly futimens.
	ts := timespecsToHost(times)
	_, _, e := unix.RawSyscall6(unix.SYS_UTIMENSAT, uintptr(fd), 0, uintptr(unsafe.Pointer(&ts[0])), 0, 0, 0)
	if e != 0 {
		return e
	}
	return nil
}

func fallocate(fd int32, mode FallocateFlags, offset, length uint64) error {
	_, _, e := unix.Syscall6(unix.SYS_FALLOCATE, uintptr(fd), uintptr(mode), uintptr(offset), uintptr(length), 0, 0)
	if e != 0 {
		return e
	}
	return nil
}

func ftruncate(fd int32, length int64) error {
	_, _, e := unix.Syscall(unix.SYS_FTRUNCATE, uintptr(fd), uintptr(length), 0)
	if e != 0 {
		return e
	}
	return nil
}

func fsync(fd int32) error {
	_, _, e := unix.Syscall(unix.SYS_FSYNC, uintptr(fd), 0, 0)
	if e != 0 {
		return e
	}
	return nil
}

func fdatasync(fd int32) error {
	_, _, e := unix.Syscall(unix.SYS_FDATASYNC, uintptr(fd), 0, 0)
	if e != 0 {
		return e
	}
	return nil
}

func fcntlGetfl(fd int32) (int, error) {
	n, _, e := unix.RawSyscall(unix.SYS_FCNTL, uintptr(fd), unix.F_GETFL, 0)
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}

func dup(fd int32) (int32, error) {
	n, _, e := unix.RawSyscall(unix.SYS_DUP, uintptr(fd), 0, 0)
	if e != 0 {
		return -1, e
	}
	return int32(n), nil
}

func dupCloexec(fd int32) (int32, error) {
	n, _, e := unix.RawSyscall(unix.SYS_FCNTL, uintptr(fd), unix.F_DUPFD_CLOEXEC, 0)
	if e != 0 {
		return -1, e
	}
	return int32(n), nil
}

func dup2(fd, target int32, flags DupFlags) (int32, error) {
	// arm64 has no dup2 syscall; dup3 covers both targets.
	n, _, e := unix.RawSyscall(unix.SYS_DUP3, uintptr(fd), uintptr(target), uintptr(flags))
	if e != 0 {
		return -1, e
	}
	return int32(n), nil
}

func ioctlFionread(fd int32) (uint64, error) {
	var n int32
	_, _, e := unix.RawSyscall(unix.SYS_IOCTL, uintptr(fd), unix.TIOCINQ, uintptr(unsafe.Pointer(&n)))
	if e != 0 {
		return 0, e
	}
	return uint64(n), nil
}

func isatty(fd int32) bool {
	var termios unix.Termios
	_, _, e := unix.RawSyscall(unix.SYS_IOCTL, uintptr(fd), ioctlReadTermios, uintptr(unsafe.Pointer(&termios)))
	return e == 0
}

func recvPeek(fd int32) (int, error) {
	var b [1]byte
	n, _, e := unix.Syscall6(unix.SYS_RECVFROM, uintptr(fd), uintptr(unsafe.Pointer(&b[0])), 1, unix.MSG_PEEK|unix.MSG_DONTWAIT, 0, 0)
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}

func sendEmpty(fd int32) error {
	_, _, e := unix.Syscall6(unix.SYS_SENDTO, uintptr(fd), 0, 0, unix.MSG_DONTWAIT|msgNoSignal, 0, 0)
	if e != 0 {
		return e
	}
	return nil
}

func read(fd int32, b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n, _, e := unix.Syscall(unix.SYS_READ, uintptr(fd), uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)))
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}

func write(fd int32, b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n, _, e := unix.Syscall(unix.SYS_WRITE, uintptr(fd), uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)))
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}

func pread(fd int32, b []byte, offset int64) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n, _, e := unix.Syscall6(unix.SYS_PREAD64, uintptr(fd), uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)), uintptr(offset), 0, 0)
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}

func pwrite(fd int32, b []byte, offset int64) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}
	n, _, e := unix.Syscall6(unix.SYS_PWRITE64, uintptr(fd), uintptr(unsafe.Pointer(&b[0])), uintptr(len(b)), uintptr(offset), 0, 0)
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}

func readv(fd int32, bufs [][]byte) (int, error) {
	iovecs, length := buildIovec(bufs, make([]unix.Iovec, 0, 2))
	if length == 0 {
		return 0, nil
	}
	n, _, e := unix.Syscall(unix.SYS_READV, uintptr(fd), uintptr(unsafe.Pointer(&iovecs[0])), uintptr(len(iovecs)))
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}

func writev(fd int32, bufs [][]byte) (int, error) {
	iovecs, length := buildIovec(bufs, make([]unix.Iovec, 0, 2))
	if length == 0 {
		return 0, nil
	}
	n, _, e := unix.Syscall(unix.SYS_WRITEV, uintptr(fd), uintptr(unsafe.Pointer(&iovecs[0])), uintptr(len(iovecs)))
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}

// On 64-bit targets preadv/pwritev carry the whole offset in pos_l;
// pos_h is always zero.

func preadv(fd int32, bufs [][]byte, offset int64) (int, error) {
	iovecs, length := buildIovec(bufs, make([]unix.Iovec, 0, 2))
	if length == 0 {
		return 0, nil
	}
	n, _, e := unix.Syscall6(unix.SYS_PREADV, uintptr(fd), uintptr(unsafe.Pointer(&iovecs[0])), uintptr(len(iovecs)), uintptr(offset), 0, 0)
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}

func pwritev(fd int32, bufs [][]byte, offset int64) (int, error) {
	iovecs, length := buildIovec(bufs, make([]unix.Iovec, 0, 2))
	if length == 0 {
		return 0, nil
	}
	n, _, e := unix.Syscall6(unix.SYS_PWRITEV, uintptr(fd), uintptr(unsafe.Pointer(&iovecs[0])), uintptr(len(iovecs)), uintptr(offset), 0, 0)
	if e != 0 {
		return 0, e
	}
	return int(n), nil
}

func preadv2(fd int32, bufs [][]byte, offset int64, flags ReadWriteFlags) (uint64, error) {
	iovecs, length := buildIovec(bufs, make([]unix.Iovec, 0, 2))
	if length == 0 {
		return 0, nil
	}
	n, _, e := unix.Syscall6(unix.SYS_PREADV2, uintptr(fd), uintptr(unsafe.Pointer(&iovecs[0])), uintptr(len(iovecs)), uintptr(offset), 0 /* pos_h */, uintptr(flags))
	if e != 0 {
		return 0, e
	}
	return uint64(n), nil
}

func pwritev2(fd int32, bufs [][]byte, offset int64, flags ReadWriteFlags) (uint64, error) {
	iovecs, length := buildIovec(bufs, make([]unix.Iovec, 0, 2))
	if length == 0 {
		return 0, nil
	}
	n, _, e := unix.Syscall6(unix.SYS_PWRITEV2, uintptr(fd), uintptr(unsafe.Pointer(&iovecs[0])), uintptr(len(iovecs)), uintptr(offset), 0 /* pos_h */, uintptr(flags))
	if e != 0 {
		return 0, e
	}
	return uint64(n), nil
}
