package tracking

import "time"

// TimestampFormat is the layout of Record.InstalledAt
const TimestampFormat = "2006-01-02T15:04:05"

// now is replaced in tests
var now = time.Now

// Record is one tracked package installation
type Record struct {
	Name        string `json:"name" yaml:"name"`                                   // Generic name from packages.ini / command line
	MappedName  string `json:"mapped_name,omitempty" yaml:"mapped_name,omitempty"` // Distro-specific installed name when it differs
	Source      string `json:"source" yaml:"source"`                               // Source identity, e.g. "official", "COPR:user/repo"
	Category    string `json:"category,omitempty" yaml:"category,omitempty"`       // packages.ini section, if any
	InstalledAt string `json:"installed_at" yaml:"installed_at"`                   // Local time, TimestampFormat
}

// NewRecord creates a record stamped with the current local time
func NewRecord(name, source, category, mappedName string) Record {
	return Record{
		Name:        name,
		MappedName:  mappedName,
		Source:      source,
		Category:    category,
		InstalledAt: now().Format(TimestampFormat),
	}
}

// Matches reports whether the record is identified by name, either as its
// generic name or its installed name
func (r Record) Matches(name string) bool {
	return r.Name == name || (r.MappedName != "" && r.MappedName == name)
}

// InstalledName returns the name the package manager knows the package by
func (r Record) InstalledName() string {
	if r.MappedName != "" {
		return r.MappedName
	}
	return r.Name
}
