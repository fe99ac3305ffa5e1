package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - coherent with charmbracelet style
var (
	Primary   = lipgloss.Color("#7D56F4") // Purple (charmbracelet brand)
	Secondary = lipgloss.Color("#FF79C6") // Pink accent
	Success   = lipgloss.Color("#50FA7B") // Green
	Warning   = lipgloss.Color("#FFB86C") // Orange
	Error     = lipgloss.Color("#FF5555") // Red
	Muted     = lipgloss.Color("#6272A4") // Muted blue-gray
	Text      = lipgloss.Color("#F8F8F2") // Light text
	Cyan      = lipgloss.Color("#8BE9FD")
)

// Base styles
var (
	// Title style for headers
	Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFDF5")).
		Background(Primary).
		Padding(0, 1).
		Bold(true)

	NormalText = lipgloss.NewStyle().
			Foreground(Text)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	SuccessText = lipgloss.NewStyle().
			Foreground(Success)

	WarningText = lipgloss.NewStyle().
			Foreground(Warning)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)

	// Table header row
	Header = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Spinner = lipgloss.NewStyle().
		Foreground(Primary)
)

// Symbols
var (
	CheckMark = lipgloss.NewStyle().Foreground(Success).SetString("✓")
	CrossMark = lipgloss.NewStyle().Foreground(Error).SetString("✗")
	Arrow     = lipgloss.NewStyle().Foreground(Primary).SetString("→")
)

// Source colors, keyed by descriptor prefix
var (
	SourceOfficial = lipgloss.NewStyle().Foreground(Success)
	SourceAUR      = lipgloss.NewStyle().Foreground(Cyan)
	SourceCOPR     = lipgloss.NewStyle().Foreground(Secondary)
	SourcePPA      = lipgloss.NewStyle().Foreground(Warning)
	SourceFlatpak  = lipgloss.NewStyle().Foreground(Primary)
)

// FormatSource renders a source identity in its kind's color
func FormatSource(identity string) string {
	switch {
	case strings.HasPrefix(identity, "AUR:"):
		return SourceAUR.Render(identity)
	case strings.HasPrefix(identity, "COPR:"):
		return SourceCOPR.Render(identity)
	case strings.HasPrefix(identity, "PPA:"):
		return SourcePPA.Render(identity)
	case strings.HasPrefix(identity, "flatpak:"):
		return SourceFlatpak.Render(identity)
	default:
		return SourceOfficial.Render(identity)
	}
}

// FormatTransition renders "old → new"
func FormatTransition(from, to string) string {
	return FormatSource(from) + " " + Arrow.String() + " " + FormatSource(to)
}

// FormatSuccess formats a success message
func FormatSuccess(msg string) string {
	return CheckMark.String() + " " + SuccessText.Render(msg)
}

// FormatError formats an error message
func FormatError(msg string) string {
	return CrossMark.String() + " " + ErrorText.Render(msg)
}

// FormatWarning formats a warning message
func FormatWarning(msg string) string {
	return WarningText.Render("! " + msg)
}
