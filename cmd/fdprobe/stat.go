package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/walteh/hostfd/pkg/fd"
	"github.com/walteh/hostfd/pkg/hostfd"
)

// openPath opens a path read-only and hands ownership to the caller.
func openPath(path string) (*fd.FD, error) {
	raw, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	return fd.New(raw), nil
}

// statCmd implements subcommands.Command for the "stat" command.
type statCmd struct{}

// Name implements subcommands.Command.Name.
func (*statCmd) Name() string {
	return "stat"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*statCmd) Synopsis() string {
	return "print file metadata through the descriptor facade"
}

// Usage implements subcommands.Command.Usage.
func (*statCmd) Usage() string {
	return "stat <path>...\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (*statCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*statCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return subcommands.ExitUsageError
	}
	for _, path := range f.Args() {
		h, err := openPath(path)
		if err != nil {
			logrus.WithError(err).Errorf("open %s", path)
			return subcommands.ExitFailure
		}
		st, err := hostfd.Fstat(h)
		h.Close()
		if err != nil {
			logrus.WithError(err).Errorf("fstat %s", path)
			return subcommands.ExitFailure
		}
		logrus.WithFields(logrus.Fields{
			"dev":   st.Dev,
			"ino":   st.Ino,
			"mode":  st.Mode,
			"nlink": st.Nlink,
			"uid":   st.UID,
			"gid":   st.GID,
			"size":  st.Size,
			"mtime": st.Mtime.Sec,
		}).Info(path)
	}
	return subcommands.ExitSuccess
}

// statfsCmd implements subcommands.Command for the "statfs" command.
type statfsCmd struct{}

// Name implements subcommands.Command.Name.
func (*statfsCmd) Name() string {
	return "statfs"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*statfsCmd) Synopsis() string {
	return "print filesystem metadata for a path"
}

// Usage implements subcommands.Command.Usage.
func (*statfsCmd) Usage() string {
	return "statfs <path>...\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (*statfsCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*statfsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		return subcommands.ExitUsageError
	}
	for _, path := range f.Args() {
		h, err := openPath(path)
		if err != nil {
			logrus.WithError(err).Errorf("open %s", path)
			return subcommands.ExitFailure
		}
		st, err := hostfd.Fstatfs(h)
		h.Close()
		if err != nil {
			logrus.WithError(err).Errorf("fstatfs %s", path)
			return subcommands.ExitFailure
		}
		logrus.WithFields(logrus.Fields{
			"type":       st.Type,
			"block_size": st.BlockSize,
			"blocks":     st.Blocks,
			"available":  st.BlocksAvailable,
			"files":      st.Files,
			"name_max":   st.NameMax,
		}).Info(path)
	}
	return subcommands.ExitSuccess
}
