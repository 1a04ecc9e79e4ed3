//go:build linux

package hostfd

import "golang.org/x/sys/unix"

// UTimeNow and UTimeOmit are sentinel Nsec values for Futimens: set the
// timestamp to the current time, or leave it unchanged. These are the
// host's UTIME_NOW/UTIME_OMIT values.
const (
	UTimeNow  = unix.UTIME_NOW
	UTimeOmit = unix.UTIME_OMIT
)

// oPath is the path-only open flag. Descriptors opened with it reference
// a location without being able to transfer data.
const oPath = unix.O_PATH

// msgNoSignal suppresses SIGPIPE on send; used by the IsReadWrite write
// probe.
const msgNoSignal = unix.MSG_NOSIGNAL

// ioctlReadTermios is the ioctl request that reads a descriptor's
// termios, the terminal-ness test used by Isatty.
const ioctlReadTermios = unix.TCGETS

// statFromHost converts the host stat structure to the portable form.
// Field widths vary between amd64 and arm64, hence the conversions.
func statFromHost(st *unix.Stat_t) Stat {
	return Stat{
		Dev:       uint64(st.Dev),
		Ino:       uint64(st.Ino),
		Mode:      Mode(st.Mode),
		Nlink:     uint64(st.Nlink),
		UID:       st.Uid,
		GID:       st.Gid,
		Rdev:      uint64(st.Rdev),
		Size:      int64(st.Size),
		BlockSize: int64(st.Blksize),
		Blocks:    int64(st.Blocks),
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
		NameMax:         uint64(st.Namelen),
	}
}

// timespecsToHost packs a portable timestamp pair for utimensat. The
// UTimeNow/UTimeOmit sentinels are the host's own values and pass
// through unchanged.
func timespecsToHost(times *[2]Timespec) [2]unix.Timespec {
	return [2]unix.Timespec{
		{Sec: times[0].Sec, Nsec: times[0].Nsec},
		{Sec: times[1].Sec, Nsec: times[1].Nsec},
	}
}
