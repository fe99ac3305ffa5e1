package pkgmap

import (
	"strings"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/source"
)

// Mapping is the resolved installation plan for one generic package
type Mapping struct {
	// OriginalName is the name used in packages.ini or on the command line
	OriginalName string `json:"original_name" yaml:"original_name"`
	// MappedName is passed to install/remove
	MappedName string `json:"mapped_name" yaml:"mapped_name"`
	// Source is the source identity, e.g. "COPR:user/repo"
	Source   string `json:"source" yaml:"source"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// Ref parses the mapping source
func (m Mapping) Ref() source.Ref {
	return source.Parse(m.Source)
}

func (m Mapping) IsOfficial() bool { return m.Source == source.Official }
func (m Mapping) IsAUR() bool      { return strings.HasPrefix(m.Source, source.PrefixAUR) }
func (m Mapping) IsCOPR() bool     { return strings.HasPrefix(m.Source, source.PrefixCOPR) }
func (m Mapping) IsPPA() bool      { return strings.HasPrefix(m.Source, source.PrefixPPA) }
func (m Mapping) IsFlatpak() bool  { return strings.HasPrefix(m.Source, source.PrefixFlatpak) }

// RepoName returns the COPR/PPA coordinate or flatpak remote the mapping
// needs enabled
func (m Mapping) RepoName() (string, bool) {
	return m.Ref().RepoName()
}

// WithCategory returns a copy with category set
func (m Mapping) WithCategory(category string) Mapping {
	m.Category = category
	return m
}

// TrackedMappedName returns the name to store as a record's mapped name:
// empty when it matches the generic name
func (m Mapping) TrackedMappedName() string {
	if m.MappedName == m.OriginalName {
		return ""
	}
	return m.MappedName
}
