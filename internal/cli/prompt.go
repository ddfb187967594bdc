package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/semmy-space/amanah/internal/output"
)

// Replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stderr io.Writer = os.Stderr
)

// readLine reads one line from r without its line terminator. EOF after a
// partial line is not an error.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword reads a password without echo from a terminal, or a single
// line from piped stdin.
func readPassword(globals *Globals) (string, error) {
	if globals.NoInput {
		return "", &output.CLIError{
			Message:  "Password argument required when --no-input is set",
			ExitCode: output.ExitUsage,
		}
	}

	var password string
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(stderr, "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		password = string(b)
	} else {
		line, err := readLine(stdin)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		password = line
	}

	if password == "" {
		return "", &output.CLIError{
			Message:  "Password must not be empty",
			ExitCode: output.ExitUsage,
		}
	}
	return password, nil
}

// confirmPhrase is the exact text a user must type to delete label
func confirmPhrase(label string) string {
	return fmt.Sprintf("Delete: %s.", label)
}

// confirmed reports whether input is the confirmation phrase for label,
// ignoring surrounding whitespace
func confirmed(input, label string) bool {
	return strings.TrimSpace(input) == confirmPhrase(label)
}
