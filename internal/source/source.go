// Package source parses and formats package source descriptors.
//
// A descriptor is the value side of a pkgmap.ini entry:
//
//	lazygit    = COPR:dejan/lazygit
//	fd         = fd-find
//	paru       = AUR:paru-bin
//	neovim     = PPA:neovim-ppa/unstable:neovim
//	obsidian   = flatpak:flathub:md.obsidian.Obsidian
//
// Anything without a recognised prefix is an official package name.
package source

import (
	"errors"
	"fmt"
	"strings"
)

// Descriptor prefixes. They are case sensitive.
const (
	PrefixAUR     = "AUR:"
	PrefixCOPR    = "COPR:"
	PrefixPPA     = "PPA:"
	PrefixFlatpak = "flatpak:"

	// Official is the identity of packages from the distribution repositories
	Official = "official"
)

var ErrMalformedSource = errors.New("malformed source descriptor")

// Kind identifies where a package comes from
type Kind int

const (
	KindOfficial Kind = iota
	KindAUR
	KindCOPR
	KindPPA
	KindFlatpak
)

// String returns the lowercase kind name
func (k Kind) String() string {
	switch k {
	case KindOfficial:
		return "official"
	case KindAUR:
		return "aur"
	case KindCOPR:
		return "copr"
	case KindPPA:
		return "ppa"
	case KindFlatpak:
		return "flatpak"
	default:
		return "unknown"
	}
}

// Ref is a parsed source descriptor.
//
// Coordinate holds the "user/repo" of a COPR or PPA repository, or the remote
// name of a Flatpak source. Package is empty when the descriptor did not name
// one (coordinate-only COPR/PPA, malformed flatpak).
type Ref struct {
	Kind       Kind
	Coordinate string
	Package    string
}

// Parse converts a raw descriptor into a Ref. It never fails: unknown
// prefixes, plain names and the literal "official" all yield KindOfficial.
func Parse(raw string) Ref {
	if !strings.Contains(raw, ":") {
		return Ref{Kind: KindOfficial}
	}

	switch {
	case strings.HasPrefix(raw, PrefixAUR):
		return Ref{Kind: KindAUR, Package: strings.TrimPrefix(raw, PrefixAUR)}

	case strings.HasPrefix(raw, PrefixCOPR):
		coord, pkg := splitCoordinate(strings.TrimPrefix(raw, PrefixCOPR))
		return Ref{Kind: KindCOPR, Coordinate: coord, Package: pkg}

	case strings.HasPrefix(raw, PrefixPPA):
		coord, pkg := splitCoordinate(strings.TrimPrefix(raw, PrefixPPA))
		return Ref{Kind: KindPPA, Coordinate: coord, Package: pkg}

	case strings.HasPrefix(raw, PrefixFlatpak):
		remote, pkg, _ := strings.Cut(strings.TrimPrefix(raw, PrefixFlatpak), ":")
		return Ref{Kind: KindFlatpak, Coordinate: remote, Package: pkg}
	}

	// A colon without a known prefix is part of an official package name
	return Ref{Kind: KindOfficial}
}

// ParseStrict is Parse with validation of the flatpak form, which must name
// both a remote and a package.
func ParseStrict(raw string) (Ref, error) {
	ref := Parse(raw)
	if ref.Kind == KindFlatpak && (ref.Coordinate == "" || ref.Package == "") {
		return ref, fmt.Errorf("%w: %q (expected flatpak:<remote>:<package>)", ErrMalformedSource, raw)
	}
	if (ref.Kind == KindCOPR || ref.Kind == KindPPA) && ref.Coordinate == "" {
		return ref, fmt.Errorf("%w: %q (expected %s<user>/<repo>)", ErrMalformedSource, raw, ref.prefix())
	}
	if ref.Kind == KindAUR && ref.Package == "" {
		return ref, fmt.Errorf("%w: %q (expected AUR:<package>)", ErrMalformedSource, raw)
	}
	return ref, nil
}

// Resolve parses a configured descriptor. A malformed descriptor resolves to
// an official install of the key; the validation error is returned so that
// callers can warn about it.
func Resolve(raw string) (Ref, error) {
	ref, err := ParseStrict(raw)
	if err != nil {
		return Ref{Kind: KindOfficial}, err
	}
	return ref, nil
}

// ResolveIdentity is the identity of the source raw resolves to. It agrees
// with what install records for the same descriptor.
func ResolveIdentity(raw string) string {
	ref, _ := Resolve(raw)
	return ref.Identity()
}

// ResolveInstallName is InstallName for a configured descriptor. Malformed
// descriptors install fallback.
func ResolveInstallName(raw string, fallback string) string {
	if _, err := Resolve(raw); err != nil {
		return fallback
	}
	return InstallName(raw, fallback)
}

func splitCoordinate(rest string) (coordinate, pkg string) {
	parts := strings.Split(rest, ":")
	coordinate = parts[0]
	if len(parts) >= 2 {
		pkg = parts[1]
	}
	return coordinate, pkg
}

func (r Ref) prefix() string {
	switch r.Kind {
	case KindAUR:
		return PrefixAUR
	case KindCOPR:
		return PrefixCOPR
	case KindPPA:
		return PrefixPPA
	case KindFlatpak:
		return PrefixFlatpak
	}
	return ""
}

// Identity returns the normalized form used to decide whether two descriptors
// point at the same source. AUR keeps the package (an AUR coordinate is the
// package); COPR, PPA and Flatpak drop it so only the repository counts.
func (r Ref) Identity() string {
	switch r.Kind {
	case KindAUR:
		return PrefixAUR + r.Package
	case KindCOPR, KindPPA, KindFlatpak:
		return r.prefix() + r.Coordinate
	default:
		return Official
	}
}

// String renders the full descriptor, including the package when known
func (r Ref) String() string {
	switch r.Kind {
	case KindCOPR, KindPPA, KindFlatpak:
		if r.Package != "" {
			return r.prefix() + r.Coordinate + ":" + r.Package
		}
		return r.prefix() + r.Coordinate
	default:
		return r.Identity()
	}
}

// RepoName returns the repository key used for enablement: the COPR or PPA
// coordinate, or the flatpak remote. Official and AUR have none.
func (r Ref) RepoName() (string, bool) {
	switch r.Kind {
	case KindCOPR, KindPPA, KindFlatpak:
		return r.Coordinate, r.Coordinate != ""
	}
	return "", false
}

// Identity is shorthand for Parse(raw).Identity()
func Identity(raw string) string {
	return Parse(raw).Identity()
}

// Same reports whether two descriptors resolve to the same source
func Same(a, b string) bool {
	return Identity(a) == Identity(b)
}

// ExtractInstallName returns the name to hand to the package manager.
//
// Official descriptors come back unchanged, AUR and flatpak yield their package.
// COPR and PPA yield their third segment when present. A coordinate-only
// COPR/PPA descriptor (and a flatpak without package) returns raw itself, not
// fallback: existing configuration files rely on "same name as the key" being
// signalled this way. Use InstallName to get the substituted value.
func ExtractInstallName(raw string, fallback string) string {
	ref := Parse(raw)
	switch ref.Kind {
	case KindAUR:
		return ref.Package
	case KindCOPR, KindPPA, KindFlatpak:
		if ref.Package != "" {
			return ref.Package
		}
		return raw
	default:
		return raw
	}
}

// InstallName resolves the package name for raw, substituting fallback for
// the degenerate forms ExtractInstallName passes through: coordinate-only
// COPR/PPA, flatpak without package, empty values and the literal "official".
func InstallName(raw string, fallback string) string {
	if raw == "" || raw == Official {
		return fallback
	}
	name := ExtractInstallName(raw, fallback)
	if name == raw && Parse(raw).Kind != KindOfficial {
		return fallback
	}
	if name == "" {
		return fallback
	}
	return name
}
