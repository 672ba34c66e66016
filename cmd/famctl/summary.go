package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"famwealth/src/services"

	"github.com/google/subcommands"
)

type summaryCmd struct {
	appFlags
	json bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the family net worth dashboard" }
func (*summaryCmd) Usage() string {
	return `famctl summary -user <id> [-json]

  Displays net worth per member and the reminders due soon.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	c.appFlags.register(f)
	f.BoolVar(&c.json, "json", false, "print JSON instead of markdown")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.open(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	summary, err := a.Dashboard.GetSummary(ctx, c.user)
	if err != nil {
		return fail(err)
	}
	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(services.SummaryMarkdown(summary))
	return subcommands.ExitSuccess
}
