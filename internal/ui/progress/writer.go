package progress

import (
	"regexp"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/migration"
)

// Sender delivers messages to a running program; *tea.Program satisfies it
type Sender interface {
	Send(msg tea.Msg)
}

// Run displays m while work executes in its own goroutine. The display
// stays up until work returns, even when the user interrupts it.
func Run(m Model, work func(s Sender) error) (Model, error) {
	p := tea.NewProgram(m)

	errc := make(chan error, 1)
	go func() {
		err := work(p)
		errc <- err
		p.Send(DoneMsg{Err: err})
	}()

	final, runErr := p.Run()
	workErr := <-errc

	if fm, ok := final.(Model); ok {
		m = fm
	}
	if workErr != nil {
		return m, workErr
	}
	return m, runErr
}

// MigrationObserver reports migration transitions as step updates. names
// holds the step order; changes for unknown names are dropped.
func MigrationObserver(s Sender, names []string) migration.Observer {
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}
	return func(change migration.Change, state migration.State) {
		i, ok := index[change.Name()]
		if !ok {
			return
		}
		st, detail := MigrationStep(change, state)
		s.Send(StepMsg{Index: i, State: st, Detail: detail})
	}
}

// MigrationStep maps a migration state to a display state and detail
func MigrationStep(change migration.Change, state migration.State) (State, string) {
	switch state {
	case migration.StatePending:
		return StateInProgress, "preparing"
	case migration.StateRemoving:
		return StateInProgress, "removing " + change.OldSource
	case migration.StateInstalling:
		return StateInProgress, "installing from " + change.NewSource
	case migration.StateRollingBack:
		return StateWarning, "rolling back to " + change.OldSource
	case migration.StateSucceeded:
		return StateComplete, change.OldSource + " -> " + change.NewSource
	case migration.StateRolledBack:
		return StateWarning, "rolled back to " + change.OldSource
	case migration.StateDoubleFailed:
		return StateError, "manual intervention required"
	default:
		return StateError, state.String()
	}
}

// GitProgressWriter wraps git progress output and sends bubbletea messages
type GitProgressWriter struct {
	sender Sender
}

// NewGitProgressWriter creates a writer that parses git output and sends progress messages
func NewGitProgressWriter(s Sender) *GitProgressWriter {
	return &GitProgressWriter{sender: s}
}

// Write implements io.Writer, parsing git progress output
func (w *GitProgressWriter) Write(p []byte) (n int, err error) {
	// go-git separates updates with carriage returns
	for _, line := range strings.FieldsFunc(string(p), func(r rune) bool { return r == '\r' || r == '\n' }) {
		percent, detail := parseGitProgress(line)
		if percent >= 0 {
			w.sender.Send(SubProgressMsg{
				Percent: percent,
				Detail:  detail,
			})
		}
	}

	return len(p), nil
}

var (
	gitCountedProgress = regexp.MustCompile(`^(Receiving objects|Resolving deltas|Compressing objects|Counting objects):\s+(\d+)%\s+\((\d+)/(\d+)\)`)
	gitEnumerating     = regexp.MustCompile(`^Enumerating objects:\s+(\d+)`)
)

// parseGitProgress parses git clone/fetch progress output
// Returns percent (0-100) and detail string, or -1 if not a progress line
func parseGitProgress(line string) (float64, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return -1, ""
	}

	// "Receiving objects:  67% (156/233)"
	if m := gitCountedProgress.FindStringSubmatch(line); m != nil {
		percent, _ := strconv.ParseFloat(m[2], 64)
		return percent, m[1] + ": " + m[3] + "/" + m[4]
	}

	// "Enumerating objects: 233" has no percentage
	if m := gitEnumerating.FindStringSubmatch(line); m != nil {
		return 0, "Enumerating objects: " + m[1]
	}

	return -1, ""
}
