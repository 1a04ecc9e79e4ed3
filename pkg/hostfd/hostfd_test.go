package hostfd_test

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/walteh/hostfd/pkg/fd"
	"github.com/walteh/hostfd/pkg/hostfd"
)

func open(t *testing.T, path string, flags int, perm uint32) *fd.FD {
	t.Helper()
	raw, err := unix.Open(path, flags|unix.O_CLOEXEC, perm)
	require.NoError(t, err)
	f := fd.New(raw)
	t.Cleanup(func() { f.Close() })
	return f
}

func openTemp(t *testing.T) *fd.FD {
	t.Helper()
	return open(t, filepath.Join(t.TempDir(), "f"), unix.O_RDWR|unix.O_CREAT, 0o600)
}

func fill(t *testing.T, f *fd.FD, b []byte) {
	t.Helper()
	n, err := hostfd.Pwrite(f, b, 0)
	require.NoError(t, err)
	require.Equal(t, len(b), n)
}

func TestSeekTell(t *testing.T) {
	f := openTemp(t)
	fill(t, f, make([]byte, 100))

	pos, err := hostfd.Seek(f, 10, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), pos)

	// Tell reads the position without mutating it.
	for i := 0; i < 2; i++ {
		pos, err = hostfd.Tell(f)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), pos)
	}

	pos, err = hostfd.Seek(f, 5, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, uint64(15), pos)

	pos, err = hostfd.Seek(f, 0, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), pos)

	_, err = hostfd.Seek(f, -200, io.SeekCurrent)
	assert.Error(t, err)
}

func TestSeekPipe(t *testing.T) {
	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	r, w := fd.New(p[0]), fd.New(p[1])
	defer r.Close()
	defer w.Close()

	_, err := hostfd.Seek(r, 0, io.SeekStart)
	assert.Equal(t, unix.ESPIPE, err)
}

func TestWriteReadRoundTrip(t *testing.T) {
	f := openTemp(t)

	data := bytes.Repeat([]byte("walteh-fd!"), 10) // 100 bytes
	n, err := hostfd.Write(f, data)
	require.NoError(t, err)
	require.Equal(t, 100, n)

	_, err = hostfd.Seek(f, 0, io.SeekStart)
	require.NoError(t, err)

	got := make([]byte, 100)
	n, err = hostfd.Read(f, got)
	require.NoError(t, err)
	require.Equal(t, 100, n)
	assert.Equal(t, data, got)

	// At EOF, a read is a zero-count success.
	n, err = hostfd.Read(f, got)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestShortReadIsSuccess(t *testing.T) {
	f := openTemp(t)
	fill(t, f, []byte("abcde"))

	got := make([]byte, 32)
	n, err := hostfd.Read(f, got)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("abcde"), got[:n])
}

func TestZeroLengthTransfers(t *testing.T) {
	f := openTemp(t)

	n, err := hostfd.Read(f, nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = hostfd.Writev(f, [][]byte{nil, {}})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = hostfd.Preadv(f, nil, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPositionedTransfersLeavePositionAlone(t *testing.T) {
	f := openTemp(t)
	fill(t, f, []byte("0123456789"))

	pos, err := hostfd.Seek(f, 3, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, uint64(3), pos)

	buf := make([]byte, 4)
	n, err := hostfd.Pread(f, buf, 6)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("6789"), buf)

	n, err = hostfd.Pwrite(f, []byte("XX"), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	pos, err = hostfd.Tell(f)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), pos, "positioned I/O moved the file position")

	n, err = hostfd.Pread(f, buf[:2], 0)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	assert.Equal(t, []byte("XX"), buf[:2])
}

func TestConcurrentPread(t *testing.T) {
	f := openTemp(t)
	data := make([]byte, 8*16)
	for i := range data {
		data[i] = byte(i)
	}
	fill(t, f, data)

	pos, err := hostfd.Seek(f, 7, io.SeekStart)
	require.NoError(t, err)
	require.Equal(t, uint64(7), pos)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		off := int64(i * 16)
		g.Go(func() error {
			for iter := 0; iter < 100; iter++ {
				buf := make([]byte, 16)
				n, err := hostfd.Pread(f, buf, off)
				if err != nil {
					return err
				}
				if n != 16 || !bytes.Equal(buf, data[off:off+16]) {
					return unix.EIO
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// No positioned transfer touched the shared position.
	pos, err = hostfd.Tell(f)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), pos)
}

func TestWritevReadvOrder(t *testing.T) {
	f := openTemp(t)

	n, err := hostfd.Writev(f, [][]byte{[]byte("abc"), []byte("de")})
	require.NoError(t, err)
	require.Equal(t, 5, n)

	_, err = hostfd.Seek(f, 0, io.SeekStart)
	require.NoError(t, err)

	b1 := make([]byte, 3)
	b2 := make([]byte, 2)
	n, err = hostfd.Readv(f, [][]byte{b1, b2})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("abc"), b1, "first buffer must fill before the second")
	assert.Equal(t, []byte("de"), b2)
}

func TestPreadvShortTransfer(t *testing.T) {
	f := openTemp(t)
	fill(t, f, []byte("wxyz"))

	b1 := make([]byte, 3)
	b2 := make([]byte, 3)
	n, err := hostfd.Preadv(f, [][]byte{b1, b2}, 0)
	require.NoError(t, err, "a short vectored transfer is not an error")
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("wxy"), b1)
	assert.Equal(t, []byte("z"), b2[:1])
}

func TestPwritevPreadvAtOffset(t *testing.T) {
	f := openTemp(t)
	fill(t, f, make([]byte, 16))

	n, err := hostfd.Pwritev(f, [][]byte{[]byte("he"), []byte("llo")}, 8)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	buf := make([]byte, 5)
	n, err = hostfd.Pread(f, buf, 8)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), buf)
}

func TestFtruncateFstat(t *testing.T) {
	f := openTemp(t)
	for _, size := range []int64{0, 1, 4096, 12345} {
		require.NoError(t, hostfd.Ftruncate(f, size))
		st, err := hostfd.Fstat(f)
		require.NoError(t, err)
		assert.Equal(t, size, st.Size)
	}
}

func TestFstat(t *testing.T) {
	f := openTemp(t)
	fill(t, f, make([]byte, 100))

	st, err := hostfd.Fstat(f)
	require.NoError(t, err)
	assert.True(t, st.Mode.IsRegular())
	assert.Equal(t, int64(100), st.Size)
	assert.NotZero(t, st.Ino)
	assert.NotZero(t, st.Nlink)
}

func TestFstatfs(t *testing.T) {
	f := openTemp(t)
	st, err := hostfd.Fstatfs(f)
	require.NoError(t, err)
	assert.NotZero(t, st.BlockSize)
	assert.NotZero(t, st.Blocks)
}

func TestFchmod(t *testing.T) {
	f := openTemp(t)
	require.NoError(t, hostfd.Fchmod(f, 0o640))
	st, err := hostfd.Fstat(f)
	require.NoError(t, err)
	assert.Equal(t, hostfd.Mode(0o640), st.Mode.Permissions())
}

func TestFutimens(t *testing.T) {
	f := openTemp(t)

	times := [2]hostfd.Timespec{
		{Sec: 1000000000},
		{Sec: 1100000000},
	}
	require.NoError(t, hostfd.Futimens(f, &times))

	st, err := hostfd.Fstat(f)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000000), st.Atime.Sec)
	assert.Equal(t, int64(1100000000), st.Mtime.Sec)

	// Omit the access time, bump the modification time.
	times = [2]hostfd.Timespec{
		{Nsec: hostfd.UTimeOmit},
		{Sec: 1200000000},
	}
	require.NoError(t, hostfd.Futimens(f, &times))

	st, err = hostfd.Fstat(f)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000000), st.Atime.Sec)
	assert.Equal(t, int64(1200000000), st.Mtime.Sec)

	// UTimeNow moves the timestamp to the present.
	times = [2]hostfd.Timespec{
		{Nsec: hostfd.UTimeNow},
		{Nsec: hostfd.UTimeNow},
	}
	require.NoError(t, hostfd.Futimens(f, &times))

	st, err = hostfd.Fstat(f)
	require.NoError(t, err)
	assert.Greater(t, st.Mtime.Sec, int64(1200000000))
}

func TestFallocate(t *testing.T) {
	f := openTemp(t)
	err := hostfd.Fallocate(f, 0, 0, 4096)
	if err == unix.EOPNOTSUPP {
		t.Skipf("filesystem does not support preallocation: %v", err)
	}
	require.NoError(t, err)

	st, err := hostfd.Fstat(f)
	require.NoError(t, err)
	assert.Equal(t, int64(4096), st.Size)

	// Reserving a range already inside the file must not shrink it.
	require.NoError(t, hostfd.Fallocate(f, 0, 0, 16))
	st, err = hostfd.Fstat(f)
	require.NoError(t, err)
	assert.Equal(t, int64(4096), st.Size)
}

func TestFsync(t *testing.T) {
	f := openTemp(t)
	fill(t, f, []byte("durable"))
	require.NoError(t, hostfd.Fsync(f))
}

func TestIsFileReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")

	rw := open(t, path, unix.O_RDWR|unix.O_CREAT, 0o600)
	readable, writable, err := hostfd.IsFileReadWrite(rw)
	require.NoError(t, err)
	assert.True(t, readable)
	assert.True(t, writable)

	ro := open(t, path, unix.O_RDONLY, 0)
	readable, writable, err = hostfd.IsFileReadWrite(ro)
	require.NoError(t, err)
	assert.True(t, readable)
	assert.False(t, writable)

	wo := open(t, path, unix.O_WRONLY, 0)
	readable, writable, err = hostfd.IsFileReadWrite(wo)
	require.NoError(t, err)
	assert.False(t, readable)
	assert.True(t, writable)
}

func socketPair(t *testing.T) (*fd.FD, *fd.FD) {
	t.Helper()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	require.NoError(t, err)
	a, b := fd.New(fds[0]), fd.New(fds[1])
	t.Cleanup(func() { a.Close(); b.Close() })
	return a, b
}

func TestIsReadWriteSocketShutdown(t *testing.T) {
	a, b := socketPair(t)

	readable, writable, err := hostfd.IsReadWrite(a)
	require.NoError(t, err)
	assert.True(t, readable)
	assert.True(t, writable)

	// Shut down a's write half: a loses writability, b sees EOF and
	// loses readability.
	require.NoError(t, unix.Shutdown(a.FD(), unix.SHUT_WR))

	readable, writable, err = hostfd.IsReadWrite(a)
	require.NoError(t, err)
	assert.True(t, readable)
	assert.False(t, writable)

	readable, writable, err = hostfd.IsReadWrite(b)
	require.NoError(t, err)
	assert.False(t, readable)
	assert.True(t, writable)
}

func TestIsReadWritePeerClosed(t *testing.T) {
	a, b := socketPair(t)
	require.NoError(t, b.Close())

	readable, writable, err := hostfd.IsReadWrite(a)
	require.NoError(t, err)
	assert.False(t, readable)
	assert.False(t, writable)
}

func TestIsReadWriteFile(t *testing.T) {
	f := openTemp(t)
	readable, writable, err := hostfd.IsReadWrite(f)
	require.NoError(t, err)
	assert.True(t, readable)
	assert.True(t, writable)
}

func TestDupSharesDescription(t *testing.T) {
	f := openTemp(t)
	fill(t, f, []byte("hello"))
	_, err := hostfd.Seek(f, 2, io.SeekStart)
	require.NoError(t, err)

	d, err := hostfd.Dup(f)
	require.NoError(t, err)
	defer d.Close()

	// Closing the original leaves the duplicate fully usable, at the
	// shared position.
	require.NoError(t, f.Close())

	buf := make([]byte, 3)
	n, err := hostfd.Read(d, buf)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte("llo"), buf)

	n, err = hostfd.Write(d, []byte("!"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func cloexec(t *testing.T, f *fd.FD) bool {
	t.Helper()
	flags, err := unix.FcntlInt(uintptr(f.FD()), unix.F_GETFD, 0)
	require.NoError(t, err)
	return flags&unix.FD_CLOEXEC != 0
}

func TestDupCloexec(t *testing.T) {
	f := openTemp(t)

	d, err := hostfd.Dup(f)
	require.NoError(t, err)
	defer d.Close()
	assert.False(t, cloexec(t, d), "Dup must not set close-on-exec")

	dc, err := hostfd.DupCloexec(f)
	require.NoError(t, err)
	defer dc.Close()
	assert.True(t, cloexec(t, dc))
}

func TestDup2RepointsTarget(t *testing.T) {
	src := openTemp(t)
	fill(t, src, []byte("source"))

	target := open(t, filepath.Join(t.TempDir(), "g"), unix.O_RDWR|unix.O_CREAT, 0o600)
	slot := target.FD()

	nf, err := hostfd.Dup2(src, target, 0)
	require.NoError(t, err)
	defer nf.Close()

	// target was consumed; the returned handle owns its old slot, which
	// now refers to src's open file description.
	assert.Equal(t, -1, target.FD())
	assert.Equal(t, slot, nf.FD())

	buf := make([]byte, 6)
	n, err := hostfd.Pread(nf, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []byte("source"), buf)
}

func TestIoctlFionreadPipe(t *testing.T) {
	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	r, w := fd.New(p[0]), fd.New(p[1])
	defer r.Close()
	defer w.Close()

	n, err := hostfd.IoctlFionread(r)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = hostfd.Write(w, []byte("12345"))
	require.NoError(t, err)

	n, err = hostfd.IoctlFionread(r)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n)
}

func TestIsattyNonTerminals(t *testing.T) {
	f := openTemp(t)
	assert.False(t, hostfd.Isatty(f))

	var p [2]int
	require.NoError(t, unix.Pipe(p[:]))
	r := fd.New(p[0])
	w := fd.New(p[1])
	defer r.Close()
	defer w.Close()
	assert.False(t, hostfd.Isatty(r))
}
