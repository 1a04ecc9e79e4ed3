// fdprobe is a small diagnostic tool over the hostfd facade: it opens
// paths (or inspects its own stdin) and reports descriptor metadata,
// access modes and terminal properties.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

var debug = flag.Bool("debug", false, "enable debug logging")

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(new(statCmd), "")
	subcommands.Register(new(statfsCmd), "")
	subcommands.Register(new(modeCmd), "")
	subcommands.Register(new(ttyCmd), "")

	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	os.Exit(int(subcommands.Execute(context.Background())))
}
