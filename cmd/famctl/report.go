package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"famwealth/src/services"

	"github.com/google/subcommands"
)

type reportCmd struct {
	appFlags
	category string
	sortKey  string
	desc     bool
	json     bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "list the positions of one investment category" }
func (*reportCmd) Usage() string {
	return `famctl report -user <id> -category <equity|mutualFunds|fixedDeposits|insurance|gold|property|others> [-sort key] [-desc] [-json]

  Lists every position of the category with gain and return totals.
  Sort keys: member, name, invested, current, gain, gain_percent, date.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.appFlags.register(f)
	f.StringVar(&c.category, "category", "equity", "report category")
	f.StringVar(&c.sortKey, "sort", "", "column to sort by")
	f.BoolVar(&c.desc, "desc", false, "sort in descending order")
	f.BoolVar(&c.json, "json", false, "print JSON instead of markdown")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.open(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	report, err := a.Dashboard.GetCategoryReport(ctx, c.user, c.category, c.sortKey, c.desc)
	if err != nil {
		return fail(err)
	}
	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fail(err)
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(services.ReportMarkdown(report))
	return subcommands.ExitSuccess
}
