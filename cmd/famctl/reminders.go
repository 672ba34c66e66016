package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"famwealth/src/utils"

	"github.com/google/subcommands"
)

type remindersCmd struct {
	appFlags
}

func (*remindersCmd) Name() string     { return "reminders" }
func (*remindersCmd) Synopsis() string { return "regenerate automatic FD and insurance reminders" }
func (*remindersCmd) Usage() string {
	return `famctl reminders -user <id>

  Replaces the user's automatic reminders with ones built from the current
  investments. Custom reminders are kept.
`
}

func (c *remindersCmd) SetFlags(f *flag.FlagSet) {
	c.appFlags.register(f)
}

func (c *remindersCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := c.open(ctx)
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	reminders, err := a.Reminders.RegenerateAutomaticReminders(ctx, c.user, time.Now())
	if err != nil {
		return fail(err)
	}
	for _, r := range reminders {
		fmt.Printf("%s  %s\n", r.ReminderDate.Format(utils.ShortDashDateLayout), r.Title)
	}
	fmt.Printf("%d reminders generated\n", len(reminders))
	return subcommands.ExitSuccess
}
