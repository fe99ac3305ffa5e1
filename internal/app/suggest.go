package app

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions caps the "did you mean" list
const maxSuggestions = 3

// Suggest returns the mapped or tracked names closest to name
func (a *App) Suggest(name string) []string {
	candidates := a.mapper.Names()
	if records, err := a.c.Store.All(); err == nil {
		for _, r := range records {
			candidates = append(candidates, r.Name)
		}
	}
	slices.Sort(candidates)
	candidates = slices.Compact(candidates)

	var out []string
	for _, match := range fuzzy.Find(name, candidates) {
		if match.Str == name {
			continue
		}
		out = append(out, match.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}
