// Package report renders command results as a table, JSON or YAML.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/app"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/migration"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/pkgmap"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/tracking"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/ui/styles"
)

// Format selects how results are written
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat validates an --output flag value
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %s (want table, json or yaml)", ErrUnknownFormat, s)
	}
}

// encode writes v as JSON or YAML. It reports false for FormatTable.
func encode(w io.Writer, f Format, v any) (bool, error) {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	default:
		return false, nil
	}
}

func newTable(w io.Writer, headers ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, h := range headers {
		if i > 0 {
			_, _ = fmt.Fprint(tw, "\t")
		}
		_, _ = fmt.Fprint(tw, styles.Header.Render(h))
	}
	_, _ = fmt.Fprintln(tw)
	return tw
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Records writes tracked packages
func Records(w io.Writer, f Format, records []tracking.Record) error {
	if records == nil {
		records = []tracking.Record{}
	}
	if ok, err := encode(w, f, records); ok {
		return err
	}

	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No tracked packages")
		return err
	}

	tw := newTable(w, "NAME", "INSTALLED AS", "SOURCE", "CATEGORY", "INSTALLED")
	for _, r := range records {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.Name, r.InstalledName(), styles.FormatSource(r.Source), dash(r.Category), r.InstalledAt)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d package(s) tracked\n", len(records))
	return err
}

// Mappings writes mapped packages
func Mappings(w io.Writer, f Format, mappings []pkgmap.Mapping) error {
	if mappings == nil {
		mappings = []pkgmap.Mapping{}
	}
	if ok, err := encode(w, f, mappings); ok {
		return err
	}

	if len(mappings) == 0 {
		_, err := fmt.Fprintln(w, "No mappings")
		return err
	}

	tw := newTable(w, "NAME", "PACKAGE", "SOURCE")
	for _, m := range mappings {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", m.OriginalName, m.MappedName, styles.FormatSource(m.Source))
	}
	return tw.Flush()
}

// Changes writes detected drift
func Changes(w io.Writer, f Format, changes []migration.Change) error {
	if changes == nil {
		changes = []migration.Change{}
	}
	if ok, err := encode(w, f, changes); ok {
		return err
	}

	if len(changes) == 0 {
		_, err := fmt.Fprintln(w, styles.FormatSuccess("All tracked packages match the configured sources"))
		return err
	}

	tw := newTable(w, "NAME", "CHANGE")
	for _, ch := range changes {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", ch.Name(), styles.FormatTransition(ch.OldSource, ch.NewSource))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d package(s) need migration (run: aps sync-repos)\n", len(changes))
	return err
}

// Outcome writes a migration summary
func Outcome(w io.Writer, f Format, o migration.Outcome) error {
	if ok, err := encode(w, f, o); ok {
		return err
	}

	if o.DryRun {
		tw := newTable(w, "NAME", "REMOVE", "INSTALL", "CHANGE")
		for _, s := range o.Planned {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				s.Name, s.RemoveName, s.InstallName, styles.FormatTransition(s.OldSource, s.NewSource))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\n%d migration(s) planned, nothing changed (dry run)\n", len(o.Planned))
		return err
	}

	if err := failures(w, o.Succeeded, o.Failed); err != nil {
		return err
	}
	if o.NeedsAttention() {
		_, err := fmt.Fprintln(w, styles.FormatWarning("Some packages are no longer installed and need manual intervention"))
		return err
	}
	return nil
}

// Result writes an install or remove summary
func Result(w io.Writer, f Format, r *app.Result) error {
	if ok, err := encode(w, f, r); ok {
		return err
	}
	return failures(w, r.Succeeded, r.Failed)
}

func failures(w io.Writer, succeeded []string, failed []migration.Failure) error {
	for _, name := range succeeded {
		_, _ = fmt.Fprintln(w, styles.FormatSuccess(name))
	}
	for _, fl := range failed {
		_, _ = fmt.Fprintln(w, styles.FormatError(fl.Name+": "+fl.Message))
	}
	_, err := fmt.Fprintf(w, "\n%d succeeded, %d failed\n", len(succeeded), len(failed))
	return err
}

// Checks writes mapping health results
func Checks(w io.Writer, f Format, results []app.CheckResult) error {
	if results == nil {
		results = []app.CheckResult{}
	}
	if ok, err := encode(w, f, results); ok {
		return err
	}

	tw := newTable(w, "NAME", "SOURCE", "TARGET", "STATUS")
	bad := 0
	for _, r := range results {
		status := styles.FormatSuccess("ok")
		if !r.OK {
			bad++
			status = styles.FormatError(r.Detail)
		} else if r.Detail != "" {
			status = styles.FormatWarning(r.Detail)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, styles.FormatSource(r.Source), r.Target, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d checked, %d problem(s)\n", len(results), bad)
	return err
}

// Info writes everything known about one package
func Info(w io.Writer, f Format, info *app.PackageInfo) error {
	if ok, err := encode(w, f, info); ok {
		return err
	}

	_, _ = fmt.Fprintln(w, styles.Title.Render(info.Mapping.OriginalName))
	_, _ = fmt.Fprintln(w)

	field(w, "Package", info.Mapping.MappedName)
	field(w, "Source", styles.FormatSource(info.Mapping.Source))
	if info.Mapped {
		field(w, "Mapping", info.Descriptor)
	} else {
		field(w, "Mapping", styles.MutedText.Render("none (official repositories)"))
	}
	if info.Mapping.Category != "" {
		field(w, "Category", info.Mapping.Category)
	}

	if info.Tracked == nil {
		field(w, "Tracked", styles.MutedText.Render("no"))
		return nil
	}
	field(w, "Tracked", styles.FormatSource(info.Tracked.Source))
	field(w, "Installed", info.Tracked.InstalledAt)
	if info.PendingSource != "" {
		_, _ = fmt.Fprintln(w)
		_, _ = fmt.Fprintln(w, styles.FormatWarning("Source changed: "+styles.FormatTransition(info.Tracked.Source, info.PendingSource)))
	}
	return nil
}

func field(w io.Writer, label, value string) {
	_, _ = fmt.Fprintf(w, "%-10s %s\n", label+":", value)
}

// Backups writes snapshot names
func Backups(w io.Writer, f Format, backups []string) error {
	if backups == nil {
		backups = []string{}
	}
	if ok, err := encode(w, f, backups); ok {
		return err
	}

	if len(backups) == 0 {
		_, err := fmt.Fprintln(w, "No backups")
		return err
	}
	for i, b := range backups {
		line := b
		if i == 0 {
			line += " " + styles.MutedText.Render("(latest)")
		}
		_, _ = fmt.Fprintln(w, line)
	}
	return nil
}
