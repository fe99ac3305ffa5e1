package progress

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/styles"
)

// Model is the bubbletea model for multi-step progress display
type Model struct {
	progress    *Progress
	spinner     spinner.Model
	progressBar progress.Model
	done        bool
	aborted     bool
	err         error
	width       int
}

// NewModel creates a new progress model with the given title and steps
func NewModel(title string, stepNames ...string) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(30),
	)

	return Model{
		progress:    NewProgress(title, stepNames...),
		spinner:     s,
		progressBar: p,
		width:       80,
	}
}

// Progress messages for updating state
type (
	// StepMsg moves step Index to State
	StepMsg struct {
		Index  int
		State  State
		Detail string
		Err    error
	}

	// SubProgressMsg updates the sub-progress within current step
	SubProgressMsg struct {
		Percent float64
		Detail  string
	}

	// DoneMsg signals the entire operation is complete
	DoneMsg struct{ Err error }
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.WindowSize())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.aborted = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressBar.Width = minInt(msg.Width-10, 40)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		progressModel, cmd := m.progressBar.Update(msg)
		m.progressBar = progressModel.(progress.Model)
		return m, cmd

	case StepMsg:
		m.progress.Set(msg.Index, msg.State, msg.Detail, msg.Err)
		if total := len(m.progress.Steps); total > 0 {
			return m, m.progressBar.SetPercent(float64(m.progress.Finished()) / float64(total))
		}
		return m, nil

	case SubProgressMsg:
		m.progress.SetSubProgress(msg.Percent, msg.Detail)
		return m, m.progressBar.SetPercent(msg.Percent / 100)

	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the progress display
func (m Model) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Text).
		Bold(true).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(m.progress.Title))
	b.WriteString("\n\n")

	indent := "  "
	detailStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	for _, step := range m.progress.Steps {
		icon := StyledIcon(step.State)
		textStyle := StepStyle(step.State)

		if step.State == StateInProgress {
			icon = m.spinner.View()
		}

		line := fmt.Sprintf("%s%s %s", indent, icon, textStyle.Render(step.Name))
		b.WriteString(line)

		switch {
		case step.Error != nil:
			b.WriteString(detailStyle.Render(" - " + step.Error.Error()))
		case step.Detail != "":
			b.WriteString(detailStyle.Render(" - " + step.Detail))
		}
		b.WriteString("\n")

		if step.State == StateInProgress && m.progress.SubDetail != "" {
			b.WriteString(indent + "    " + detailStyle.Render(m.progress.SubDetail) + "\n")
		}
	}

	if len(m.progress.Steps) > 1 {
		count := FormatCount(m.progress.Finished(), len(m.progress.Steps))
		b.WriteString("\n" + indent + m.progressBar.View() + " " + detailStyle.Render(count) + "\n")
	}

	b.WriteString("\n")

	return b.String()
}

// GetError returns any error that occurred
func (m Model) GetError() error {
	return m.err
}

// IsDone returns true if the operation is complete
func (m Model) IsDone() bool {
	return m.done
}

// Aborted reports whether the user interrupted the display
func (m Model) Aborted() bool {
	return m.aborted
}

// GetProgress returns the underlying progress state
func (m Model) GetProgress() *Progress {
	return m.progress
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
