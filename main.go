package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/amanah/internal/cli"
	"github.com/semmy-space/amanah/internal/output"
)

var (
	version = "dev"
)

func main() {
	cliInstance := &cli.CLI{}
	parser := kong.Must(cliInstance,
		kong.Name("amanah"),
		kong.Description("Local encrypted credential vault"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	// Handles shell completion requests and exits; no-op otherwise
	kongplete.Complete(parser,
		kongplete.WithPredictor("label", cli.LabelPredictor()),
	)

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Errors from the AfterApply hook carry their own exit code
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			os.Exit(output.Report(output.New("plain"), cliErr))
		}
		parser.FatalIfErrorf(err)
	}

	if err := ctx.Run(); err != nil {
		formatter := output.New(cliInstance.ResolvedOutput(""))
		os.Exit(output.Report(formatter, err))
	}
}
