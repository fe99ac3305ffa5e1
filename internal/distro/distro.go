// Package distro identifies the running Linux distribution from os-release.
package distro

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/ini.v1"
)

var ErrUnknownDistro = errors.New("unsupported distribution")

// Family is the package-manager family a distribution belongs to
type Family string

const (
	FamilyFedora Family = "fedora"
	FamilyArch   Family = "arch"
	FamilyDebian Family = "debian"
)

// OSReleasePaths are read in order; the first existing file wins
var OSReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// knownFamilies maps os-release IDs to their family
var knownFamilies = map[string]Family{
	// Fedora-based => dnf
	"fedora":      FamilyFedora,
	"nobara":      FamilyFedora,
	"ultramarine": FamilyFedora,
	"rhel":        FamilyFedora,
	"centos":      FamilyFedora,
	"rocky":       FamilyFedora,
	"almalinux":   FamilyFedora,

	// Arch-based => pacman + AUR helper
	"arch":        FamilyArch,
	"manjaro":     FamilyArch,
	"endeavouros": FamilyArch,
	"cachyos":     FamilyArch,
	"garuda":      FamilyArch,
	"arcolinux":   FamilyArch,

	// Debian-based => apt
	"debian":     FamilyDebian,
	"ubuntu":     FamilyDebian,
	"linuxmint":  FamilyDebian,
	"pop":        FamilyDebian,
	"elementary": FamilyDebian,
	"zorin":      FamilyDebian,
	"kali":       FamilyDebian,
}

// Info describes the running distribution
type Info struct {
	ID         string // os-release ID, e.g. "fedora"
	Version    string // os-release VERSION_ID, may be empty on rolling releases
	PrettyName string
	Family     Family
}

// DisplayName returns a human readable name
func (i Info) DisplayName() string {
	if i.PrettyName != "" {
		return i.PrettyName
	}
	name := cases.Title(language.English).String(i.ID)
	if i.Version != "" {
		name += " " + i.Version
	}
	return name
}

// Detect reads os-release from the standard locations
func Detect() (Info, error) {
	for _, path := range OSReleasePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return Parse(data)
	}
	return Info{}, fmt.Errorf("%w: no os-release file found", ErrUnknownDistro)
}

// Parse parses os-release content
func Parse(data []byte) (Info, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:       true,
		UnescapeValueDoubleQuotes: true,
	}, data)
	if err != nil {
		return Info{}, fmt.Errorf("failed to parse os-release: %w", err)
	}

	sec := f.Section(ini.DefaultSection)
	info := Info{
		ID:         unquote(sec.Key("ID").String()),
		Version:    unquote(sec.Key("VERSION_ID").String()),
		PrettyName: unquote(sec.Key("PRETTY_NAME").String()),
	}

	family, ok := FamilyOf(info.ID, unquote(sec.Key("ID_LIKE").String()))
	if !ok {
		return info, fmt.Errorf("%w: %s", ErrUnknownDistro, info.ID)
	}
	info.Family = family
	return info, nil
}

// FamilyOf resolves a family from ID, falling back to the space separated
// ID_LIKE list
func FamilyOf(id, idLike string) (Family, bool) {
	if f, ok := knownFamilies[strings.ToLower(id)]; ok {
		return f, true
	}
	for _, like := range strings.Fields(idLike) {
		if f, ok := knownFamilies[strings.ToLower(like)]; ok {
			return f, true
		}
	}
	return "", false
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
