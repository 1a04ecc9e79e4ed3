package hostfd

// Mode is a set of file permission and type bits, in the POSIX layout
// shared by all supported targets (permission bits, setuid/setgid/sticky,
// and the S_IFMT file type field).
type Mode uint32

// File type values for the type field of Mode, as reported by Fstat.
// These are the POSIX S_IF* values, identical on every supported target.
const (
	TypeMask    Mode = 0o170000
	TypeRegular Mode = 0o100000
	TypeDir     Mode = 0o040000
	TypeChar    Mode = 0o020000
	TypeBlock   Mode = 0o060000
	TypeFifo    Mode = 0o010000
	TypeSymlink Mode = 0o120000
	TypeSocket  Mode = 0o140000
)

// FileType returns the S_IFMT file type field of m.
func (m Mode) FileType() Mode {
	return m & TypeMask
}

// IsRegular returns whether m describes a regular file.
func (m Mode) IsRegular() bool {
	return m.FileType() == TypeRegular
}

// IsDir returns whether m describes a directory.
func (m Mode) IsDir() bool {
	return m.FileType() == TypeDir
}

// IsCharDevice returns whether m describes a character device.
func (m Mode) IsCharDevice() bool {
	return m.FileType() == TypeChar
}

// Permissions returns the permission bits of m, including setuid, setgid
// and the sticky bit.
func (m Mode) Permissions() Mode {
	return m &^ TypeMask
}

// Timespec is a point in time with nanosecond resolution, used by
// Futimens and reported by Fstat. The Nsec field may also hold one of the
// UTimeNow/UTimeOmit sentinels when passed to Futimens.
type Timespec struct {
	Sec  int64
	Nsec int64
}

// Stat is portable file metadata, converted from each target's native
// stat structure. Fields the target does not report are zero.
type Stat struct {
	Dev       uint64
	Ino       uint64
	Mode      Mode
	Nlink     uint64
	UID       uint32
	GID       uint32
	Rdev      uint64
	Size      int64
	BlockSize int64
	Blocks    int64
	Atime     Timespec
	Mtime     Timespec
	Ctime     Timespec
}

// StatFs is portable filesystem metadata, converted from each target's
// native statfs structure.
type StatFs struct {
	// Type identifies the filesystem type. The value space is
	// target-specific (Linux magic numbers, Darwin vfs type ids).
	Type uint64

	BlockSize       int64
	Blocks          uint64
	BlocksFree      uint64
	BlocksAvailable uint64
	Files           uint64
	FilesFree       uint64

	// NameMax is the maximum file name length on the filesystem.
	NameMax uint64
}
