package keywords

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Keyword is a single configured phrase with its scoring weight
type Keyword struct {
	Phrase string
	Weight float64

	normalized string
}

// ThemeDefinition holds the ordered keyword list for one theme.
// Immutable after load.
type ThemeDefinition struct {
	Theme    Theme
	Keywords []Keyword
}

// TotalWeight returns the summed weight of all keywords in the theme
func (d *ThemeDefinition) TotalWeight() float64 {
	var total float64
	for _, kw := range d.Keywords {
		total += kw.Weight
	}
	return total
}

// Index matches normalized text against per-theme keyword lists.
// Built once at startup and read-only afterwards.
type Index struct {
	themes map[Theme]*ThemeDefinition
}

// fileEntry is one keyword entry in the YAML file. Accepts either a bare
// string or a {phrase, poids} mapping.
type fileEntry struct {
	Phrase string  `yaml:"phrase"`
	Poids  float64 `yaml:"poids"`
}

func (e *fileEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		e.Phrase = value.Value
		return nil
	}
	type raw fileEntry
	return value.Decode((*raw)(e))
}

// Load builds an Index from a YAML file of theme -> keyword phrases.
// An empty path loads the built-in lists.
func Load(path string) (*Index, error) {
	if path == "" {
		return New(DefaultLists())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword file: %w", err)
	}

	var raw map[string][]fileEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse keyword file: %w", err)
	}

	lists := make(map[Theme][]Keyword, len(raw))
	for name, entries := range raw {
		theme := Theme(name)
		kws := make([]Keyword, 0, len(entries))
		for _, e := range entries {
			kws = append(kws, Keyword{Phrase: e.Phrase, Weight: e.Poids})
		}
		lists[theme] = kws
	}

	return New(lists)
}

// New builds an Index from explicit keyword lists, validating eagerly.
// Every theme of the fixed set must be present with a non-empty list.
func New(lists map[Theme][]Keyword) (*Index, error) {
	idx := &Index{themes: make(map[Theme]*ThemeDefinition, len(lists))}

	for theme, kws := range lists {
		if !theme.Valid() {
			return nil, fmt.Errorf("unknown theme %q", theme)
		}
		if len(kws) == 0 {
			return nil, fmt.Errorf("theme %q has an empty keyword list", theme)
		}

		def := &ThemeDefinition{Theme: theme, Keywords: make([]Keyword, 0, len(kws))}
		for _, kw := range kws {
			normalized := Normalize(kw.Phrase)
			if normalized == "" {
				return nil, fmt.Errorf("theme %q contains an empty keyword phrase", theme)
			}
			weight := kw.Weight
			if weight == 0 {
				weight = 1.0
			}
			if weight < 0 {
				return nil, fmt.Errorf("theme %q keyword %q has negative weight", theme, kw.Phrase)
			}
			def.Keywords = append(def.Keywords, Keyword{
				Phrase:     kw.Phrase,
				Weight:     weight,
				normalized: normalized,
			})
		}
		idx.themes[theme] = def
	}

	for _, theme := range AllThemes() {
		if _, ok := idx.themes[theme]; !ok {
			return nil, fmt.Errorf("theme %q has no keyword list", theme)
		}
	}

	return idx, nil
}

// Definition returns the keyword list for a theme, or nil if unknown
func (idx *Index) Definition(theme Theme) *ThemeDefinition {
	return idx.themes[theme]
}

// Match returns every configured phrase of the theme that occurs in the
// text at word boundaries, case- and accent-insensitive. The returned
// slice is sorted for determinism.
func (idx *Index) Match(text string, theme Theme) []string {
	def := idx.themes[theme]
	if def == nil {
		return nil
	}

	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	var matched []string
	for _, kw := range def.Keywords {
		if ContainsPhrase(normalized, kw.normalized) {
			matched = append(matched, kw.Phrase)
		}
	}

	sort.Strings(matched)
	return matched
}

// MatchedWeight sums the weights of the given phrases within a theme
func (idx *Index) MatchedWeight(theme Theme, phrases []string) float64 {
	def := idx.themes[theme]
	if def == nil {
		return 0
	}

	set := make(map[string]bool, len(phrases))
	for _, p := range phrases {
		set[p] = true
	}

	var total float64
	for _, kw := range def.Keywords {
		if set[kw.Phrase] {
			total += kw.Weight
		}
	}
	return total
}
