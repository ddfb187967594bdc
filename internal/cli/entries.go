package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/semmy-space/amanah/internal/config"
	"github.com/semmy-space/amanah/internal/output"
	"github.com/semmy-space/amanah/internal/vault"
)

var entryColumns = []output.Column{
	{Name: "Label", Key: "Label"},
	{Name: "Username", Key: "Username"},
	{Name: "Password", Key: "Password"},
}

// AddCmd implements the add command
type AddCmd struct {
	Label    string `arg:"" help:"Unique label for the credential"`
	Username string `arg:"" help:"Username"`
	Password *string `arg:"" optional:"" help:"Password (prompted for when omitted)"`
}

// Run executes the add command
func (cmd *AddCmd) Run(cfg *config.Config, fp *FormatterProvider, globals *Globals) error {
	// An explicit "" is stored as given; only an omitted argument prompts
	var password string
	if cmd.Password != nil {
		password = *cmd.Password
	} else {
		var err error
		if password, err = readPassword(globals); err != nil {
			return err
		}
	}

	s, err := openSession(cfg, globals)
	if err != nil {
		return err
	}
	defer s.Close()

	err = s.vault.Add(vault.Entry{
		Label:    cmd.Label,
		Username: cmd.Username,
		Password: password,
	})
	if errors.Is(err, vault.ErrDuplicateLabel) {
		fmt.Fprintf(stderr, "%s already exists\n", cmd.Label)
		return nil
	}
	if err != nil {
		return storeError("add entry", err)
	}

	return fp.Formatter.Print(fmt.Sprintf("Added: %s to list of passwords", cmd.Label))
}

// ListCmd implements the list command
type ListCmd struct {
	Mask bool `help:"Show only the last 4 characters of each password" short:"m"`
}

// Run executes the list command
func (cmd *ListCmd) Run(cfg *config.Config, fp *FormatterProvider, globals *Globals) error {
	s, err := openSession(cfg, globals)
	if err != nil {
		return err
	}
	defer s.Close()

	entries, err := s.vault.List()
	if err != nil {
		return storeError("list entries", err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(stderr, "No stored passwords found\n")
		fmt.Fprintf(stderr, "Run 'amanah add LABEL USERNAME' to store one\n")
		return nil
	}

	return fp.Formatter.PrintList(display(entries, cmd.Mask), entryColumns)
}

// GetCmd implements the get command
type GetCmd struct {
	Label string `arg:"" predictor:"label" help:"Label to look up (up to 2 typos tolerated)"`
	Mask  bool   `help:"Show only the last 4 characters of each password" short:"m"`
}

// Run executes the get command
func (cmd *GetCmd) Run(cfg *config.Config, fp *FormatterProvider, globals *Globals) error {
	s, err := openSession(cfg, globals)
	if err != nil {
		return err
	}
	defer s.Close()

	matches, err := s.vault.Find(cmd.Label)
	if err != nil {
		return storeError("search entries", err)
	}

	if len(matches) == 0 {
		fmt.Fprintf(stderr, "No matching passwords found.\n")
		return nil
	}

	for _, e := range matches {
		if e.Label != cmd.Label {
			fp.Formatter.PrintHint(didYouMean(cmd.Label, e.Label))
		}
	}

	return fp.Formatter.PrintList(display(matches, cmd.Mask), entryColumns)
}

// didYouMean is the hint shown when a fuzzy match differs from the query
func didYouMean(query, label string) string {
	return fmt.Sprintf("no password for %s, did you mean: %s?", query, label)
}

// RemoveCmd implements the remove command
type RemoveCmd struct {
	Label string `arg:"" predictor:"label" help:"Exact label of the credential to delete"`
}

// Run executes the remove command
func (cmd *RemoveCmd) Run(cfg *config.Config, fp *FormatterProvider, globals *Globals) error {
	if !globals.Force {
		if globals.NoInput {
			return &output.CLIError{
				Message:  "Deletion requires confirmation",
				Hint:     "Re-run with --force to delete without prompting",
				ExitCode: output.ExitUsage,
			}
		}

		fmt.Fprintf(stderr, "Type '%s' to confirm deletion\n", confirmPhrase(cmd.Label))
		input, err := readLine(stdin)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if !confirmed(input, cmd.Label) {
			fmt.Fprintf(stderr, "not deleting entry %s\n", cmd.Label)
			return nil
		}
	}

	s, err := openSession(cfg, globals)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.vault.Remove(cmd.Label); err != nil {
		return storeError("remove entry", err)
	}

	return fp.Formatter.Print(fmt.Sprintf("deleted entry %s", cmd.Label))
}

// display returns entries ready for output, masking passwords if asked
func display(entries []vault.Entry, mask bool) []vault.Entry {
	if !mask {
		return entries
	}
	out := make([]vault.Entry, len(entries))
	for i, e := range entries {
		e.Password = output.MaskSecret(e.Password)
		out[i] = e
	}
	return out
}
