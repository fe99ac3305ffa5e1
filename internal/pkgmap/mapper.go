// Package pkgmap resolves generic package names into distro-specific
// installation plans using the [pkgmap.<family>] configuration section.
package pkgmap

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Cyber-Syntax/auto-penguin-setup/internal/core"
	"github.com/Cyber-Syntax/auto-penguin-setup/internal/source"
)

// Mapper holds the parsed mapping table of one distribution
type Mapper struct {
	mappings map[string]Mapping
	raw      map[string]string
	log      *log.Logger
}

// New loads the mapping table of the context's distribution
func New(c *core.Context) *Mapper {
	return Load(c.MappingTable(), c.Logger())
}

// Load builds a mapper from a name -> descriptor table
func Load(table map[string]string, logger *log.Logger) *Mapper {
	if logger == nil {
		logger = log.Default()
	}

	m := &Mapper{
		mappings: make(map[string]Mapping, len(table)),
		raw:      make(map[string]string, len(table)),
		log:      logger,
	}

	for key, value := range table {
		m.raw[key] = value
		m.mappings[key] = m.parseMapping(key, value)
	}

	return m
}

// parseMapping turns one table entry into a Mapping. Configuration errors
// never fail: malformed entries degrade to an official install of the key.
func (m *Mapper) parseMapping(key, value string) Mapping {
	value = strings.TrimSpace(value)

	ref, err := source.Resolve(value)
	if err != nil {
		m.log.Warn("Invalid package mapping, treating as official", "package", key, "value", value, "error", err)
		return Mapping{OriginalName: key, MappedName: key, Source: source.Official}
	}

	return Mapping{
		OriginalName: key,
		MappedName:   source.InstallName(value, key),
		Source:       ref.Identity(),
	}
}

// Map resolves name. Unmapped names are official packages of the same name.
func (m *Mapper) Map(name string, category string) Mapping {
	mapping, ok := m.mappings[name]
	if !ok {
		return Mapping{
			OriginalName: name,
			MappedName:   name,
			Source:       source.Official,
			Category:     category,
		}
	}

	if category != "" {
		return mapping.WithCategory(category)
	}
	return mapping
}

// Has reports whether name has an explicit mapping
func (m *Mapper) Has(name string) bool {
	_, ok := m.mappings[name]
	return ok
}

// Raw returns the configured descriptor for name, or name itself when the
// package is not mapped
func (m *Mapper) Raw(name string) string {
	if value, ok := m.raw[name]; ok {
		return value
	}
	return name
}

// Names returns all mapped names, sorted
func (m *Mapper) Names() []string {
	names := make([]string, 0, len(m.mappings))
	for name := range m.mappings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BySource returns mappings whose source matches prefix, sorted by name.
// "official" matches exactly; any other prefix matches by string prefix.
func (m *Mapper) BySource(prefix string) []Mapping {
	var result []Mapping
	for _, name := range m.Names() {
		mapping := m.mappings[name]
		if prefix == source.Official {
			if mapping.Source == source.Official {
				result = append(result, mapping)
			}
			continue
		}
		if strings.HasPrefix(mapping.Source, prefix) {
			result = append(result, mapping)
		}
	}
	return result
}
