// Package migration detects packages whose tracked source no longer matches
// the configuration and moves them to the configured source.
package migration

import (
	"fmt"
	"strings"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/core"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/source"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/tracking"
)

// Change is one tracked package whose source has drifted
type Change struct {
	Record    tracking.Record `json:"record" yaml:"record"`
	OldSource string          `json:"old_source" yaml:"old_source"`
	NewSource string          `json:"new_source" yaml:"new_source"`
}

// Name returns the generic package name
func (c Change) Name() string {
	return c.Record.Name
}

// Detector compares tracked records against the current mapping table
type Detector struct {
	c *core.Context
}

// NewDetector creates a drift detector bound to c
func NewDetector(c *core.Context) *Detector {
	return &Detector{c: c}
}

// Detect returns the drifted packages in tracked-record order. An empty
// result means nothing to migrate.
func (d *Detector) Detect() ([]Change, error) {
	tracked, err := d.c.Store.All()
	if err != nil {
		return nil, fmt.Errorf("failed to read tracked packages: %w", err)
	}

	return diff(tracked, d.c.MappingTable()), nil
}

func diff(tracked []tracking.Record, table map[string]string) []Change {
	var changes []Change
	for _, r := range tracked {
		// Flatpak installs are never migrated away from
		if strings.HasPrefix(r.Source, source.PrefixFlatpak) {
			continue
		}

		configValue := configValueFor(table, r.Name)
		// Malformed values resolve to official, as they do on install
		newSource := source.ResolveIdentity(configValue)

		// The stored source is already canonical, compare it as is
		if newSource != r.Source {
			changes = append(changes, Change{
				Record:    r,
				OldSource: r.Source,
				NewSource: newSource,
			})
		}
	}
	return changes
}

// configValueFor returns the raw descriptor configured for name, or name
// itself when the package is not mapped
func configValueFor(table map[string]string, name string) string {
	if value, ok := table[name]; ok {
		return strings.TrimSpace(value)
	}
	return name
}
