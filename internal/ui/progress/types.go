package progress

import (
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/styles"
)

// State represents the current state of a step
type State int

const (
	StatePending State = iota
	StateInProgress
	StateComplete
	StateWarning
	StateError
)

// Step is one line of a multi-step display, usually one package
type Step struct {
	Name   string // Display name, e.g. "lazygit"
	State  State
	Detail string // e.g. "installing from COPR:dejan/lazygit"
	Error  error
}

// Icons - Nerd Font with ASCII fallback
type Icons struct {
	Check   string
	Cross   string
	Arrow   string
	Pending string
	Warning string
	Spinner string
}

var (
	// NerdFontIcons uses Nerd Font glyphs
	NerdFontIcons = Icons{
		Check:   "\uf00c",
		Cross:   "\uf00d",
		Arrow:   "\uf061",
		Pending: "\uf111",
		Warning: "\uf071",
		Spinner: "\uf110",
	}

	// ASCIIIcons uses simple ASCII characters
	ASCIIIcons = Icons{
		Check:   "+",
		Cross:   "x",
		Arrow:   "->",
		Pending: "o",
		Warning: "!",
		Spinner: "*",
	}
)

// GetIcons returns the appropriate icon set based on environment
func GetIcons() Icons {
	if os.Getenv("APS_NERD_FONTS") == "1" {
		return NerdFontIcons
	}
	return ASCIIIcons
}

// Icon styles
var (
	IconStyleCheck   = lipgloss.NewStyle().Foreground(styles.Success)
	IconStyleCross   = lipgloss.NewStyle().Foreground(styles.Error)
	IconStylePending = lipgloss.NewStyle().Foreground(styles.Muted)
	IconStyleWarning = lipgloss.NewStyle().Foreground(styles.Warning)
	IconStyleSpinner = lipgloss.NewStyle().Foreground(styles.Primary)
)

// StyledIcon returns a styled icon string for the given state
func StyledIcon(state State) string {
	icons := GetIcons()
	switch state {
	case StateComplete:
		return IconStyleCheck.Render(icons.Check)
	case StateError:
		return IconStyleCross.Render(icons.Cross)
	case StateWarning:
		return IconStyleWarning.Render(icons.Warning)
	case StateInProgress:
		return IconStyleSpinner.Render(icons.Spinner)
	default:
		return IconStylePending.Render(icons.Pending)
	}
}

// StepStyle returns the appropriate text style for a step based on state
func StepStyle(state State) lipgloss.Style {
	switch state {
	case StateComplete:
		return styles.SuccessText
	case StateError:
		return styles.ErrorText
	case StateWarning:
		return styles.WarningText
	case StateInProgress:
		return styles.NormalText.Bold(true)
	default:
		return styles.MutedText
	}
}

// Progress holds the overall progress information
type Progress struct {
	Title       string
	Steps       []Step
	SubProgress float64 // 0-100, for the progress bar of the running step
	SubDetail   string
}

// NewProgress creates a new Progress with the given title and step names
func NewProgress(title string, stepNames ...string) *Progress {
	steps := make([]Step, len(stepNames))
	for i, name := range stepNames {
		steps[i] = Step{Name: name, State: StatePending}
	}
	return &Progress{
		Title: title,
		Steps: steps,
	}
}

// Set updates step i. Out of range indices are ignored.
func (p *Progress) Set(i int, state State, detail string, err error) {
	if i < 0 || i >= len(p.Steps) {
		return
	}
	p.Steps[i].State = state
	p.Steps[i].Detail = detail
	p.Steps[i].Error = err
	if state != StateInProgress {
		p.SubProgress = 0
		p.SubDetail = ""
	}
}

// SetSubProgress updates the sub-progress percentage and detail
func (p *Progress) SetSubProgress(percent float64, detail string) {
	p.SubProgress = percent
	p.SubDetail = detail
}

// Finished returns the number of steps that reached a final state
func (p *Progress) Finished() int {
	n := 0
	for _, step := range p.Steps {
		if step.State == StateComplete || step.State == StateError || step.State == StateWarning {
			n++
		}
	}
	return n
}

// IsComplete returns true if all steps are complete
func (p *Progress) IsComplete() bool {
	for _, step := range p.Steps {
		if step.State != StateComplete {
			return false
		}
	}
	return true
}

// HasError returns true if any step has an error
func (p *Progress) HasError() bool {
	for _, step := range p.Steps {
		if step.State == StateError {
			return true
		}
	}
	return false
}
