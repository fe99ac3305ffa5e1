package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/app"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/migration"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/tracking"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "table": FormatTable, "JSON": FormatJSON, " yaml ": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRecordsJSON(t *testing.T) {
	var buf bytes.Buffer
	records := []tracking.Record{{Name: "fd", MappedName: "fd-find", Source: "official", InstalledAt: "2026-01-02T03:04:05"}}
	require.NoError(t, Records(&buf, FormatJSON, records))

	var got []tracking.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, records, got)
}

func TestEmptyRecordsEncodeAsList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Records(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestChangesYAML(t *testing.T) {
	var buf bytes.Buffer
	changes := []migration.Change{{
		Record:    tracking.Record{Name: "paru", Source: "AUR:paru"},
		OldSource: "AUR:paru",
		NewSource: "official",
	}}
	require.NoError(t, Changes(&buf, FormatYAML, changes))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "official", got[0]["new_source"])
}

func TestTables(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Records(&buf, FormatTable, []tracking.Record{{Name: "lazygit", Source: "COPR:dejan/lazygit"}}))
	assert.Contains(t, buf.String(), "lazygit")
	assert.Contains(t, buf.String(), "1 package(s) tracked")

	buf.Reset()
	require.NoError(t, Changes(&buf, FormatTable, nil))
	assert.Contains(t, buf.String(), "match the configured sources")

	buf.Reset()
	o := migration.Outcome{
		Succeeded: []string{"lazygit"},
		Failed:    []migration.Failure{{Name: "paru", Message: "boom", DoubleFailure: true}},
	}
	require.NoError(t, Outcome(&buf, FormatTable, o))
	assert.Contains(t, buf.String(), "1 succeeded, 1 failed")
	assert.Contains(t, buf.String(), "manual intervention")

	buf.Reset()
	require.NoError(t, Checks(&buf, FormatTable, []app.CheckResult{{Name: "fd", Source: "official", Target: "fd-find", OK: false, Detail: "not found"}}))
	assert.Contains(t, buf.String(), "1 problem(s)")
}

func TestDryRunOutcome(t *testing.T) {
	var buf bytes.Buffer
	o := migration.Outcome{DryRun: true, Planned: []migration.Step{{Name: "paru", RemoveName: "paru", InstallName: "paru", OldSource: "AUR:paru", NewSource: "official"}}}
	require.NoError(t, Outcome(&buf, FormatTable, o))
	assert.Contains(t, buf.String(), "1 migration(s) planned")
}
