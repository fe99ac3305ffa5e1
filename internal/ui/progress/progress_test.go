package progress

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/migration"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/tracking"
)

type recorder struct {
	msgs []tea.Msg
}

func (r *recorder) Send(msg tea.Msg) {
	r.msgs = append(r.msgs, msg)
}

func TestParseGitProgress(t *testing.T) {
	tests := []struct {
		line    string
		percent float64
		detail  string
	}{
		{"Receiving objects:  67% (156/233)", 67, "Receiving objects: 156/233"},
		{"Resolving deltas: 100% (45/45), done.", 100, "Resolving deltas: 45/45"},
		{"Counting objects: 100% (233/233), done.", 100, "Counting objects: 233/233"},
		{"Enumerating objects: 233, done.", 0, "Enumerating objects: 233"},
		{"Total 12 (delta 3), reused 0", -1, ""},
		{"   ", -1, ""},
	}

	for _, tt := range tests {
		percent, detail := parseGitProgress(tt.line)
		if percent != tt.percent || detail != tt.detail {
			t.Errorf("parseGitProgress(%q) = %v, %q; want %v, %q", tt.line, percent, detail, tt.percent, tt.detail)
		}
	}
}

func TestGitProgressWriterSplitsUpdates(t *testing.T) {
	r := &recorder{}
	w := NewGitProgressWriter(r)

	in := "Receiving objects:  10% (1/10)\rReceiving objects:  20% (2/10)\rnoise\n"
	n, err := w.Write([]byte(in))
	if err != nil || n != len(in) {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if len(r.msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(r.msgs))
	}
	if got := r.msgs[1].(SubProgressMsg).Percent; got != 20 {
		t.Errorf("last percent = %v, want 20", got)
	}
}

func TestMigrationObserver(t *testing.T) {
	r := &recorder{}
	obs := MigrationObserver(r, []string{"lazygit", "paru"})

	paru := migration.Change{
		Record:    tracking.Record{Name: "paru", Source: "AUR:paru"},
		OldSource: "AUR:paru",
		NewSource: "official",
	}
	obs(paru, migration.StateInstalling)
	obs(paru, migration.StateSucceeded)
	obs(migration.Change{Record: tracking.Record{Name: "unknown"}}, migration.StateFailed)

	if len(r.msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(r.msgs))
	}
	first := r.msgs[0].(StepMsg)
	if first.Index != 1 || first.State != StateInProgress || first.Detail != "installing from official" {
		t.Errorf("unexpected first message %+v", first)
	}
	if last := r.msgs[1].(StepMsg); last.State != StateComplete {
		t.Errorf("final state = %v, want complete", last.State)
	}
}

func TestMigrationStepTerminalStates(t *testing.T) {
	ch := migration.Change{OldSource: "COPR:a/b", NewSource: "official"}
	tests := []struct {
		state migration.State
		want  State
	}{
		{migration.StateSucceeded, StateComplete},
		{migration.StateRolledBack, StateWarning},
		{migration.StateDoubleFailed, StateError},
		{migration.StateFailed, StateError},
	}
	for _, tt := range tests {
		if got, _ := MigrationStep(ch, tt.state); got != tt.want {
			t.Errorf("MigrationStep(%v) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestModelTracksSteps(t *testing.T) {
	m := NewModel("Migrating", "lazygit", "paru")

	next, _ := m.Update(StepMsg{Index: 0, State: StateComplete})
	m = next.(Model)
	next, _ = m.Update(StepMsg{Index: 1, State: StateError, Err: errors.New("boom")})
	m = next.(Model)
	next, _ = m.Update(StepMsg{Index: 7, State: StateComplete})
	m = next.(Model)

	p := m.GetProgress()
	if p.Finished() != 2 || !p.HasError() || p.IsComplete() {
		t.Errorf("unexpected progress %+v", p.Steps)
	}
	if m.IsDone() {
		t.Error("model finished before DoneMsg")
	}

	next, cmd := m.Update(DoneMsg{})
	m = next.(Model)
	if !m.IsDone() || cmd == nil {
		t.Error("DoneMsg did not finish the model")
	}
}

func TestPrintHelpersUseOutput(t *testing.T) {
	var buf bytes.Buffer
	Output = &buf
	t.Cleanup(func() { Output = os.Stdout })

	PrintStep(StateComplete, "lazygit")
	PrintDetail("COPR:atim/lazygit -> COPR:dejan/lazygit")

	out := buf.String()
	if !strings.Contains(out, "lazygit") || !strings.Contains(out, "COPR:dejan/lazygit") {
		t.Fatalf("unexpected output %q", out)
	}
	if got := FormatCount(3, 12); got != "3/12" {
		t.Errorf("FormatCount = %q", got)
	}
}
