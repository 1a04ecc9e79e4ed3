package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/walteh/hostfd/pkg/fd"
	"github.com/walteh/hostfd/pkg/hostfd"
)

// ttyCmd implements subcommands.Command for the "tty" command.
type ttyCmd struct{}

// Name implements subcommands.Command.Name.
func (*ttyCmd) Name() string {
	return "tty"
}

// Synopsis implements subcommands.Command.Synopsis.
func (*ttyCmd) Synopsis() string {
	return "report terminal properties of stdin"
}

// Usage implements subcommands.Command.Usage.
func (*ttyCmd) Usage() string {
	return "tty\n"
}

// SetFlags implements subcommands.Command.SetFlags.
func (*ttyCmd) SetFlags(*flag.FlagSet) {}

// Execute implements subcommands.Command.Execute.
func (*ttyCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	stdin := fd.BorrowFile(os.Stdin)

	isTTY := hostfd.Isatty(stdin)
	fields := logrus.Fields{"isatty": isTTY}

	if name := ttynameOf(stdin); name != "" {
		fields["name"] = name
	}
	if pending, err := hostfd.IoctlFionread(stdin); err == nil {
		fields["pending"] = pending
	} else {
		logrus.WithError(err).Debug("FIONREAD not available")
	}

	logrus.WithFields(fields).Info("stdin")
	return subcommands.ExitSuccess
}
