package migration

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/core"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/source"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/tracking"
)

// State is the position of one change in the migration state machine
type State int

const (
	StatePending State = iota
	StateRemoving
	StateInstalling
	StateRollingBack
	StateSucceeded
	StateRolledBack
	StateDoubleFailed
	StateFailed
)

// String returns a lowercase state name
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRemoving:
		return "removing"
	case StateInstalling:
		return "installing"
	case StateRollingBack:
		return "rolling back"
	case StateSucceeded:
		return "succeeded"
	case StateRolledBack:
		return "rolled back"
	case StateDoubleFailed:
		return "double failed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition follows s
func (s State) Terminal() bool {
	return s >= StateSucceeded
}

// Observer is notified of every state transition. It is called from the
// goroutine running Migrate.
type Observer func(change Change, state State)

// Options control a migration run
type Options struct {
	AutoConfirm bool
	DryRun      bool
	Observer    Observer
}

// Step is the resolved plan for one change
type Step struct {
	Name        string `json:"name" yaml:"name"`
	RemoveName  string `json:"remove" yaml:"remove"`
	InstallName string `json:"install" yaml:"install"`
	Repository  string `json:"repository,omitempty" yaml:"repository,omitempty"`
	OldSource   string `json:"old_source" yaml:"old_source"`
	NewSource   string `json:"new_source" yaml:"new_source"`
}

// Failure is one change that did not complete
type Failure struct {
	Name    string `json:"name" yaml:"name"`
	Message string `json:"message" yaml:"message"`
	// DoubleFailure is set when both the install and the rollback failed and
	// the package is left uninstalled
	DoubleFailure bool `json:"double_failure,omitempty" yaml:"double_failure,omitempty"`
}

// Outcome summarises one migration run
type Outcome struct {
	RunID     string    `json:"run_id" yaml:"run_id"`
	DryRun    bool      `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Planned   []Step    `json:"planned,omitempty" yaml:"planned,omitempty"`
	Succeeded []string  `json:"succeeded" yaml:"succeeded"`
	Failed    []Failure `json:"failed" yaml:"failed"`
}

// NeedsAttention reports whether any change ended in a double failure
func (o Outcome) NeedsAttention() bool {
	for _, f := range o.Failed {
		if f.DoubleFailure {
			return true
		}
	}
	return false
}

// Engine applies changes one at a time: remove the old package, install the
// new one, then rewrite the tracked record. A failed install is rolled back
// by reinstalling the old package.
type Engine struct {
	c *core.Context
}

// NewEngine creates an engine bound to c
func NewEngine(c *core.Context) *Engine {
	return &Engine{c: c}
}

// Plan resolves the package names and repository of every change without
// touching the system
func (e *Engine) Plan(changes []Change) []Step {
	table := e.c.MappingTable()

	steps := make([]Step, 0, len(changes))
	for _, ch := range changes {
		steps = append(steps, e.plan(table, ch))
	}
	return steps
}

func (e *Engine) plan(table map[string]string, ch Change) Step {
	configValue := configValueFor(table, ch.Record.Name)
	ref, _ := source.Resolve(configValue)

	step := Step{
		Name:        ch.Record.Name,
		RemoveName:  ch.Record.InstalledName(),
		InstallName: source.ResolveInstallName(configValue, ch.Record.Name),
		OldSource:   ch.OldSource,
		NewSource:   ch.NewSource,
	}
	if repo, ok := ref.RepoName(); ok {
		step.Repository = repo
	}
	return step
}

// Migrate applies changes sequentially. Every change is attempted even when
// earlier ones fail. The returned error is reserved for a store that cannot
// be read, in which case nothing has been touched.
func (e *Engine) Migrate(ctx context.Context, changes []Change, opts Options) (Outcome, error) {
	outcome := Outcome{
		RunID:     uuid.NewString(),
		DryRun:    opts.DryRun,
		Succeeded: []string{},
		Failed:    []Failure{},
	}
	logger := e.c.Logger().With("run", outcome.RunID)

	if opts.DryRun {
		outcome.Planned = e.Plan(changes)
		for _, step := range outcome.Planned {
			logger.Info("Would migrate", "package", step.Name,
				"from", step.OldSource, "to", step.NewSource,
				"remove", step.RemoveName, "install", step.InstallName)
		}
		return outcome, nil
	}

	// The store must be reachable before anything is removed
	if _, err := e.c.Store.All(); err != nil {
		return outcome, fmt.Errorf("tracked state unavailable, nothing migrated: %w", err)
	}

	table := e.c.MappingTable()
	notify := opts.Observer
	if notify == nil {
		notify = func(Change, State) {}
	}

	for _, ch := range changes {
		notify(ch, StatePending)

		state, failure := e.apply(ctx, table, ch, opts.AutoConfirm, notify)
		notify(ch, state)

		if failure != nil {
			outcome.Failed = append(outcome.Failed, *failure)
			continue
		}
		outcome.Succeeded = append(outcome.Succeeded, ch.Record.Name)
	}

	logger.Info("Migration finished", "succeeded", len(outcome.Succeeded), "failed", len(outcome.Failed))
	return outcome, nil
}

// apply runs one change to a terminal state
func (e *Engine) apply(ctx context.Context, table map[string]string, ch Change, autoConfirm bool, notify Observer) (State, *Failure) {
	logger := e.c.Logger().With("package", ch.Record.Name)
	step := e.plan(table, ch)
	newRef, _ := source.Resolve(configValueFor(table, ch.Record.Name))

	fail := func(msg string) (State, *Failure) {
		return StateFailed, &Failure{Name: ch.Record.Name, Message: msg}
	}

	// Enable the target repository first so a failure leaves the old package in place
	if err := e.c.EnsureRepository(ctx, newRef); err != nil {
		logger.Error("Cannot prepare new source", "source", ch.NewSource, "error", err)
		return fail(err.Error())
	}

	// Remove from the old source
	notify(ch, StateRemoving)
	logger.Info("Removing", "name", step.RemoveName, "source", ch.OldSource)
	if err := e.c.Packages.Remove(ctx, []string{step.RemoveName}, autoConfirm); err != nil {
		logger.Error("Remove failed", "name", step.RemoveName, "error", err)
		return fail(err.Error())
	}

	// Install from the new source
	notify(ch, StateInstalling)
	logger.Info("Installing", "name", step.InstallName, "source", ch.NewSource)
	installErr := e.install(ctx, newRef, step.InstallName, autoConfirm)
	if installErr != nil {
		logger.Warn("Install failed, rolling back", "name", step.InstallName, "error", installErr)

		notify(ch, StateRollingBack)
		if err := e.c.Packages.Install(ctx, []string{step.RemoveName}, autoConfirm); err != nil {
			logger.Error("manual intervention required",
				"name", step.RemoveName,
				"old_source", ch.OldSource,
				"new_source", ch.NewSource,
				"install_error", installErr,
				"rollback_error", err)
			return StateDoubleFailed, &Failure{
				Name:          ch.Record.Name,
				Message:       fmt.Sprintf("new-source install failed AND rollback failed: %v (rollback: %v)", installErr, err),
				DoubleFailure: true,
			}
		}

		logger.Info("Rolled back", "name", step.RemoveName, "source", ch.OldSource)
		return StateRolledBack, &Failure{
			Name:    ch.Record.Name,
			Message: fmt.Sprintf("installed new source failed, rolled back to %s", ch.OldSource),
		}
	}

	// Rewrite the tracked record
	mappedName := ""
	if step.InstallName != ch.Record.Name {
		mappedName = step.InstallName
	}
	// Upsert replaces the old record in place, so a failed write leaves it intact
	rec := tracking.NewRecord(ch.Record.Name, ch.NewSource, ch.Record.Category, mappedName)
	if err := e.c.Store.Upsert(rec); err != nil {
		logger.Error("Failed to update tracked state", "error", err)
		return fail(fmt.Sprintf("installed from %s but tracking update failed: %v", ch.NewSource, err))
	}

	logger.Info("Migrated", "from", ch.OldSource, "to", ch.NewSource)
	return StateSucceeded, nil
}

func (e *Engine) install(ctx context.Context, ref source.Ref, name string, autoConfirm bool) error {
	if ref.Kind == source.KindFlatpak {
		return e.c.Flatpak.Install(ctx, ref.Coordinate, []string{name}, autoConfirm)
	}
	return e.c.Packages.Install(ctx, []string{name}, autoConfirm)
}
