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

// modeCmd implements subcommands.Command for the "mode" command.
type modeCmd struct {
	write bool
	rdwr  bool
}

// Name implements subcommands.Command.Name.
func (*modeCmd) Name() string {
	return "mode"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*modeCmd) Synopsis() string {
	return "open a path and report the descriptor's access mode"
}

// Usage implements subcommands.Command.Usage.
func (*modeCmd) Usage() string {
	return "mode [-write|-rdwr] <path>\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (c *modeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "write", false, "open write-only instead of read-only")
	f.BoolVar(&c.rdwr, "rdwr", false, "open read-write instead of read-only")
}

// Execute implements subcommands.Command.Execute.
func (c *modeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)

	flags := unix.O_RDONLY
	switch {
	case c.rdwr:
		flags = unix.O_RDWR
	case c.write:
		flags = unix.O_WRONLY
	}
	raw, err := unix.Open(path, flags|unix.O_CLOEXEC, 0)
	if err != nil {
		logrus.WithError(err).Errorf("open %s", path)
		return subcommands.ExitFailure
	}
	h := fd.New(raw)
	defer h.Close()

	fileR, fileW, err := hostfd.IsFileReadWrite(h)
	if err != nil {
		logrus.WithError(err).Error("file access mode")
		return subcommands.ExitFailure
	}
	genR, genW, err := hostfd.IsReadWrite(h)
	if err != nil {
		logrus.WithError(err).Error("general access mode")
		return subcommands.ExitFailure
	}
	logrus.WithFields(logrus.Fields{
		"file_readable": fileR,
		"file_writable": fileW,
		"readable":      genR,
		"writable":      genW,
	}).Info(path)
	return subcommands.ExitSuccess
}
