// Package config loads the aps INI configuration: package mappings,
// package categories and settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

var ErrConfigUnreadable = errors.New("configuration unreadable")

// Settings keys
const (
	sectionTracking = "tracking"
	sectionConfig   = "config"
	sectionRemotes  = "flatpak.remotes"
)

// Config holds the parsed configuration files. Missing files behave as empty
// ones; files that exist but do not parse are an error.
type Config struct {
	paths    Paths
	pkgmap   *ini.File
	packages *ini.File
	settings *ini.File
}

// Load reads every configuration file under paths.ConfigDir
func Load(paths Paths) (*Config, error) {
	c := &Config{paths: paths}

	var err error
	if c.pkgmap, err = loadFile(paths.Pkgmap(), ini.LoadOptions{
		KeyValueDelimiters:       "=",
		SpaceBeforeInlineComment: true,
	}); err != nil {
		return nil, err
	}
	if c.packages, err = loadFile(paths.Packages(), ini.LoadOptions{
		KeyValueDelimiters: "=",
		AllowBooleanKeys:   true,
	}); err != nil {
		return nil, err
	}
	if c.settings, err = loadFile(paths.Settings(), ini.LoadOptions{}); err != nil {
		return nil, err
	}

	return c, nil
}

func loadFile(path string, opts ini.LoadOptions) (*ini.File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return ini.Empty(opts), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnreadable, err)
	}

	f, err := ini.LoadSources(opts, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigUnreadable, path, err)
	}
	return f, nil
}

// Paths returns the directories the configuration was loaded from
func (c *Config) Paths() Paths {
	return c.paths
}

// HasSection reports whether pkgmap.ini defines section
func (c *Config) HasSection(section string) bool {
	_, err := c.pkgmap.GetSection(section)
	return err == nil
}

// MappingTable returns the name -> descriptor entries of a pkgmap.ini section
func (c *Config) MappingTable(section string) map[string]string {
	sec, err := c.pkgmap.GetSection(section)
	if err != nil {
		return map[string]string{}
	}

	table := make(map[string]string, len(sec.Keys()))
	for _, key := range sec.Keys() {
		table[key.Name()] = strings.TrimSpace(key.String())
	}
	return table
}

// Categories returns the packages.ini section names in file order
func (c *Config) Categories() []string {
	var names []string
	for _, name := range c.packages.SectionStrings() {
		if name == ini.DefaultSection {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Category returns the package names listed under category, in file order
func (c *Config) Category(category string) ([]string, bool) {
	sec, err := c.packages.GetSection(category)
	if err != nil {
		return nil, false
	}
	return sec.KeyStrings(), true
}

// CategoryOf returns the first category listing name
func (c *Config) CategoryOf(name string) string {
	for _, category := range c.Categories() {
		if c.packages.Section(category).HasKey(name) {
			return category
		}
	}
	return ""
}

// TrackingBackend returns [tracking] backend, "jsonl" by default
func (c *Config) TrackingBackend() string {
	return c.settings.Section(sectionTracking).Key("backend").MustString("jsonl")
}

// Repository returns the git URL of the shared configuration, if any
func (c *Config) Repository() string {
	return c.settings.Section(sectionConfig).Key("repository").String()
}

// FlatpakRemotes returns the extra remotes from [flatpak.remotes]
func (c *Config) FlatpakRemotes() map[string]string {
	sec, err := c.settings.GetSection(sectionRemotes)
	if err != nil {
		return nil
	}
	return sec.KeysHash()
}
