// Package prompt asks the user for confirmation on an interactive terminal.
package prompt

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal
var ErrNotInteractive = errors.New("confirmation required but not running in a terminal (use --yes)")

// IsTerminal reports whether both stdin and stdout are terminals
func IsTerminal() bool {
	return isTTY(os.Stdin.Fd()) && isTTY(os.Stdout.Fd())
}

func isTTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Confirm asks a yes/no question. assumeYes skips the prompt.
func Confirm(title, description string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !IsTerminal() {
		return false, ErrNotInteractive
	}

	var confirm bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Value(&confirm).
		Affirmative("Yes").
		Negative("No").
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirm, nil
}
