package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type exportCmd struct {
	appFlags
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the dashboard workbook to an xlsx file" }
func (*exportCmd) Usage() string {
	return `famctl export -user <id> [-o family.xlsx]
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.appFlags.register(f)
	f.StringVar(&c.output, "o", "family.xlsx", "output file")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.open(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	file, err := a.Export.GenerateXLSX(ctx, c.user)
	if err != nil {
		return fail(err)
	}
	defer file.Close()
	if err := file.SaveAs(c.output); err != nil {
		return fail(err)
	}
	fmt.Println("wrote", c.output)
	return subcommands.ExitSuccess
}
