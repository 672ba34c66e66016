package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"famwealth/src/app"
	"famwealth/src/config"
	"famwealth/src/utils"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// appFlags are shared by every command that talks to the database.
type appFlags struct {
	settings string
	env      string
	user     string
}

func (a *appFlags) register(f *flag.FlagSet) {
	f.StringVar(&a.settings, "settings", "./settings", "directory holding appsettings.yaml")
	f.StringVar(&a.env, "env", os.Getenv("ENV"), "settings overlay to merge, e.g. TESTING")
	f.StringVar(&a.user, "user", "", "user id the command acts for")
}

func (a *appFlags) open(ctx context.Context) (*app.App, error) {
	if a.user == "" {
		return nil, fmt.Errorf("-user is required")
	}
	cfg, err := config.LoadConfig(a.settings, a.env)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, utils.NewLoggerFromConfig(cfg.Logging), nil)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}

func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
