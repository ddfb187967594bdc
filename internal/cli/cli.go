package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/amanah/internal/config"
	"github.com/semmy-space/amanah/internal/output"
)

// FormatterProvider wraps the formatter interface for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
}

// CLI is the root command structure
type CLI struct {
	Globals

	Add        AddCmd                        `cmd:"" help:"Store a new credential"`
	List       ListCmd                       `cmd:"" help:"List all stored credentials"`
	Get        GetCmd                        `cmd:"" help:"Look up credentials by label, tolerating typos"`
	Remove     RemoveCmd                     `cmd:"" help:"Delete a credential by exact label"`
	Config     ConfigCmd                     `cmd:"" help:"Configuration commands"`
	Completion kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
	Version    VersionCmd                    `cmd:"" help:"Show version information"`
}

// AfterApply runs once flags are parsed, before any command executes.
// It loads config, creates the formatter, and binds dependencies.
func (c *CLI) AfterApply(ctx *kong.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return &output.CLIError{
			Message:  err.Error(),
			Hint:     fmt.Sprintf("Fix or remove %s", config.ConfigPath()),
			ExitCode: output.ExitConfigError,
		}
	}

	formatter := &FormatterProvider{
		Formatter: output.New(c.ResolvedOutput(cfg.DefaultOutput)),
	}

	ctx.Bind(cfg)
	ctx.Bind(formatter)
	ctx.Bind(&c.Globals)

	return nil
}

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	Get   ConfigGetCmd        `cmd:"" help:"Get a configuration value"`
	Set   ConfigSetCmd        `cmd:"" help:"Set a configuration value"`
	Unset ConfigUnsetCmd      `cmd:"" help:"Remove a configuration value"`
	List  ConfigListConfigCmd `cmd:"" name:"list" help:"List all configuration values"`
	Path  ConfigPathCmd       `cmd:"" help:"Show config file path"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context) error {
	version := ctx.Model.Vars()["version"]
	fmt.Fprintln(ctx.Stdout, "amanah version "+version)
	return nil
}
