package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/styles"
)

// Output receives everything the Print helpers write
var Output io.Writer = os.Stdout

// PrintStep prints a step with the appropriate icon and styling
func PrintStep(state State, message string) {
	fmt.Fprintln(Output, FormatStep(state, message))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	PrintStep(StateWarning, message)
}

// PrintTitle prints a title/header
func PrintTitle(title string) {
	style := styles.NormalText.Bold(true)
	fmt.Fprintf(Output, "%s\n\n", style.Render(title))
}

// PrintDetail prints an indented detail line
func PrintDetail(detail string) {
	fmt.Fprintf(Output, "      %s\n", styles.MutedText.Render(detail))
}

// Sprintf helpers for building styled strings without printing

// FormatStep returns a formatted step string
func FormatStep(state State, message string) string {
	icon := StyledIcon(state)
	textStyle := StepStyle(state)
	return fmt.Sprintf("  %s %s", icon, textStyle.Render(message))
}

// FormatCount formats a progress count like "3/12"
func FormatCount(current, total int) string {
	return fmt.Sprintf("%d/%d", current, total)
}

// FormatProgressLine formats a line like "Migrating 3/12: lazygit"
func FormatProgressLine(action string, current, total int, name string) string {
	icon := StyledIcon(StateInProgress)
	count := styles.MutedText.Render(FormatCount(current, total))
	return fmt.Sprintf("  %s %s %s: %s", icon, action, count, styles.NormalText.Bold(true).Render(name))
}
