// famctl runs syncs, summaries and exports against the family finance
// database from a terminal.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/google/subcommands"
)

var commands = []subcommands.Command{
	&syncCmd{},
	&summaryCmd{},
	&reportCmd{},
	&exportCmd{},
	&remindersCmd{},
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	os.Exit(int(commander.Execute(ctx)))
}
