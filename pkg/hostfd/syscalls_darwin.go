//go:build darwin

package hostfd

import (
	"time"

	"golang.org/x/sys/unix"
)

// This file is the only backend on Darwin: operations delegate to the
// golang.org/x/sys/unix wrappers, which trampoline through libc. Go
// cannot issue raw syscalls here, so there is no direct backend.

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

// futimens resolves the UTimeNow/UTimeOmit sentinels itself and goes
// through futimes, since the host interface x/sys exposes has
// microsecond resolution. Nanoseconds are truncated.
func futimens(fd int32, times *[2]Timespec) error {
	if times[0].Nsec == UTimeOmit && times[1].Nsec == UTimeOmit {
		return nil
	}
	if times[0].Nsec == UTimeNow && times[1].Nsec == UTimeNow {
		// futimes with no times sets both to the current time.
		return unix.Futimes(int(fd), nil)
	}

	resolved := *times
	if times[0].Nsec == UTimeOmit || times[1].Nsec == UTimeOmit {
		st, err := fstat(fd)
		if err != nil {
			return err
		}
		if times[0].Nsec == UTimeOmit {
			resolved[0] = st.Atime
		}
		if times[1].Nsec == UTimeOmit {
			resolved[1] = st.Mtime
		}
	}
	now := time.Now()
	for i := range resolved {
		if resolved[i].Nsec == UTimeNow {
			resolved[i] = Timespec{Sec: now.Unix(), Nsec: int64(now.Nanosecond())}
		}
	}

	tv := []unix.Timeval{
		{Sec: resolved[0].Sec, Usec: int32(resolved[0].Nsec / 1000)},
		{Sec: resolved[1].Sec, Usec: int32(resolved[1].Nsec / 1000)},
	}
	return unix.Futimes(int(fd), tv)
}

// fallocate provides the POSIX baseline: after a successful call the
// range [offset, offset+length) is allocated and addressable. Darwin has
// no fallocate syscall; preallocation goes through F_PREALLOCATE and the
// file is then extended to cover the range. mode has no legal bits here.
func fallocate(fd int32, mode FallocateFlags, offset, length uint64) error {
	st, err := fstat(fd)
	if err != nil {
		return err
	}
	end := int64(offset + length)
	if end <= st.Size {
		// The range is already inside the file.
		return nil
	}

	store := unix.Fstore_t{
		Flags:   unix.F_ALLOCATECONTIG,
		Posmode: unix.F_PEOFPOSMODE,
		Offset:  0,
		Length:  end - st.Size,
	}
	if err := unix.FcntlFstore(uintptr(fd), unix.F_PREALLOCATE, &store); err != nil {
		// Contiguous allocation failed; retry allowing fragmentation.
		store.Flags = unix.F_ALLOCATEALL
		if err := unix.FcntlFstore(uintptr(fd), unix.F_PREALLOCATE, &store); err != nil {
			return err
		}
	}
	return unix.Ftruncate(int(fd), end)
}

func ftruncate(fd int32, length int64) error {
	return unix.Ftruncate(int(fd), length)
}

func fsync(fd int32) error {
	return unix.Fsync(int(fd))
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
	// Darwin has no dup3; DupFlags defines no bits here.
	if err := unix.Dup2(int(fd), int(target)); err != nil {
		return -1, err
	}
	return target, nil
}

func ioctlFionread(fd int32) (uint64, error) {
	n, err := unix.IoctlGetInt(int(fd), unix.FIONREAD)
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

// x/sys does not expose readv/writev on Darwin. Vectored transfers are
// emulated through a staging buffer with a single host transfer, which
// preserves the one-attempt contract: a short host transfer surfaces as
// a short (successful) vectored transfer, and buffers are filled and
// drained strictly in order.

func readv(fd int32, bufs [][]byte) (int, error) {
	buf := make([]byte, vecLen(bufs))
	if len(buf) == 0 {
		return 0, nil
	}
	n, err := unix.Read(int(fd), buf)
	if err != nil {
		return 0, err
	}
	scatter(bufs, buf[:n])
	return n, nil
}

func writev(fd int32, bufs [][]byte) (int, error) {
	buf := gather(bufs)
	if len(buf) == 0 {
		return 0, nil
	}
	return unix.Write(int(fd), buf)
}

func preadv(fd int32, bufs [][]byte, offset int64) (int, error) {
	buf := make([]byte, vecLen(bufs))
	if len(buf) == 0 {
		return 0, nil
	}
	n, err := unix.Pread(int(fd), buf, offset)
	if err != nil {
		return 0, err
	}
	scatter(bufs, buf[:n])
	return n, nil
}

func pwritev(fd int32, bufs [][]byte, offset int64) (int, error) {
	buf := gather(bufs)
	if len(buf) == 0 {
		return 0, nil
	}
	return unix.Pwrite(int(fd), buf, offset)
}

// vecLen returns the total byte length of bufs.
func vecLen(bufs [][]byte) int {
	var length int
	for i := range bufs {
		length += len(bufs[i])
	}
	return length
}

// gather copies bufs, in order, into one contiguous buffer.
func gather(bufs [][]byte) []byte {
	buf := make([]byte, 0, vecLen(bufs))
	for i := range bufs {
		buf = append(buf, bufs[i]...)
	}
	return buf
}

// scatter copies buf into bufs, filling each buffer before the next.
func scatter(bufs [][]byte, buf []byte) {
	for i := range bufs {
		if len(buf) == 0 {
			break
		}
		n := copy(bufs[i], buf)
		buf = buf[n:]
	}
}
