//go:build darwin

package hostfd

import "golang.org/x/sys/unix"

// UTimeNow and UTimeOmit are sentinel Nsec values for Futimens: set the
// timestamp to the current time, or leave it unchanged. Darwin's
// sys/stat.h values; x/sys does not define them here.
const (
	UTimeNow  = -1
	UTimeOmit = -2
)

// oPath is defined as 0 on Darwin, which has no path-only open mode.
// This lets the access-mode check in IsFileReadWrite compile unchanged
// while degrading to a no-op, matching the system's behavior.
const oPath = 0

// msgNoSignal is defined as 0 on Darwin, which has no per-call SIGPIPE
// suppression flag. The Go runtime already ignores SIGPIPE for
// descriptors other than stdout and stderr.
const msgNoSignal = 0

// ioctlReadTermios is the ioctl request that reads a descriptor's
// termios, the terminal-ness test used by Isatty.
const ioctlReadTermios = unix.TIOCGETA

// darwinNameMax is the filesystem name-length bound reported by StatFs;
// Darwin's statfs carries no per-filesystem value.
const darwinNameMax = 255

// statFromHost converts the host stat structure to the portable form.
func statFromHost(st *unix.Stat_t) Stat {
	return Stat{
		Dev:       uint64(uint32(st.Dev)),
		Ino:       st.Ino,
		Mode:      Mode(st.Mode),
		Nlink:     uint64(st.Nlink),
		UID:       st.Uid,
		GID:       st.Gid,
		Rdev:      uint64(uint32(st.Rdev)),
		Size:      st.Size,
		BlockSize: int64(st.Blksize),
		Blocks:    st.Blocks,
		Atime:     Timespec{Sec: st.Atim.Sec, Nsec: st.Atim.Nsec},
		Mtime:     Timespec{Sec: st.Mtim.Sec, Nsec: st.Mtim.Nsec},
		Ctime:     Timespec{Sec: st.Ctim.Sec, Nsec: st.Ctim.Nsec},
	}
}

// statfsFromHost converts the host statfs structure to the portable form.
func statfsFromHost(st *unix.Statfs_t) StatFs {
	return StatFs{
		Type:            uint64(st.Type),
		BlockSize:       int64(st.Bsize),
		Blocks:          st.Blocks,
		BlocksFree:      st.Bfree,
		BlocksAvailable: st.Bavail,
		Files:           st.Files,
		FilesFree:       st.Ffree,
		NameMax:         darwinNameMax,
	}
}
