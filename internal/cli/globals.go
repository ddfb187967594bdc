package cli

import (
	"os"

	"golang.org/x/term"
)

// Globals holds global flags available to all commands
type Globals struct {
	Output    string `help:"Output format" default:"" enum:"json,plain,rich,auto," short:"o" env:"AMANAH_OUTPUT"`
	Verbose   bool   `help:"Verbose output" short:"v" env:"AMANAH_VERBOSE"`
	NoInput   bool   `help:"Disable interactive prompts (fail instead)" env:"AMANAH_NO_INPUT"`
	Force     bool   `help:"Skip confirmation prompts for destructive operations" env:"AMANAH_FORCE"`
	DB        string `help:"Path to the credential database" name:"db" type:"path" env:"AMANAH_DB"`
	KeySource string `help:"Where the encryption key comes from" default:"" enum:"embedded,keyring," env:"AMANAH_KEY_SOURCE"`
}

// ResolvedOutput returns the effective output mode: flag, then the
// configured default, then "auto". "auto" is rich on a TTY, else plain.
func (g *Globals) ResolvedOutput(configured string) string {
	mode := g.Output
	if mode == "" {
		mode = configured
	}
	if mode != "" && mode != "auto" {
		return mode
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "rich"
	}

	return "plain"
}
