package keywords

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testIndex(t *testing.T) *Index {
	t.Helper()

	idx, err := New(DefaultLists())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return idx
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"RECRUTEMENT", "recrutement"},
		{"Événement  à   Rennes", "evenement a rennes"},
		{"  Conférence\tTechnique ", "conference technique"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContainsPhrase(t *testing.T) {
	tests := []struct {
		text   string
		phrase string
		want   bool
	}{
		{"la societe recrute un technicien en cdi", "cdi", true},
		{"suite a un accident industriel", "cdi", false},
		{"poste en cdi.", "cdi", true},
		{"journee portes ouvertes samedi", "portes ouvertes", true},
		{"les prepositions du francais", "position", false},
		{"cdi", "cdi", true},
		{"", "cdi", false},
	}

	for _, tt := range tests {
		if got := ContainsPhrase(tt.text, tt.phrase); got != tt.want {
			t.Errorf("ContainsPhrase(%q, %q) = %v, want %v", tt.text, tt.phrase, got, tt.want)
		}
	}
}

func TestMatchCaseAndAccentInsensitive(t *testing.T) {
	idx := testIndex(t)

	upper := idx.Match("RECRUTEMENT en cours chez FNAC", ThemeRecrutements)
	lower := idx.Match("recrutement en cours chez fnac", ThemeRecrutements)

	if !reflect.DeepEqual(upper, lower) {
		t.Errorf("case sensitivity: %v != %v", upper, lower)
	}
	if len(upper) == 0 {
		t.Fatal("expected at least one match for 'recrutement'")
	}

	accented := idx.Match("grande conférence annuelle", ThemeEvenements)
	plain := idx.Match("grande conference annuelle", ThemeEvenements)
	if !reflect.DeepEqual(accented, plain) {
		t.Errorf("accent sensitivity: %v != %v", accented, plain)
	}
}

func TestMatchWordBoundary(t *testing.T) {
	idx := testIndex(t)

	// "cdi" must not match inside a longer word
	if got := idx.Match("accident sur le site de production", ThemeRecrutements); len(got) != 0 {
		t.Errorf("expected no match inside longer words, got %v", got)
	}

	got := idx.Match("La FNAC recrute en CDI et CDD", ThemeRecrutements)
	want := []string{"CDD", "CDI", "recrute"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match() = %v, want %v", got, want)
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(map[Theme][]Keyword)
	}{
		{
			name: "empty keyword list",
			modify: func(m map[Theme][]Keyword) {
				m[ThemeExportations] = nil
			},
		},
		{
			name: "blank phrase",
			modify: func(m map[Theme][]Keyword) {
				m[ThemeInnovations] = append(m[ThemeInnovations], Keyword{Phrase: "   "})
			},
		},
		{
			name: "negative weight",
			modify: func(m map[Theme][]Keyword) {
				m[ThemeEvenements] = append(m[ThemeEvenements], Keyword{Phrase: "gala", Weight: -1})
			},
		},
		{
			name: "unknown theme",
			modify: func(m map[Theme][]Keyword) {
				m[Theme("meteo")] = []Keyword{{Phrase: "pluie"}}
			},
		},
		{
			name: "missing theme",
			modify: func(m map[Theme][]Keyword) {
				delete(m, ThemeFondationSponsor)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lists := DefaultLists()
			tt.modify(lists)

			if _, err := New(lists); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
recrutements:
  - recrutement
  - {phrase: CDI, poids: 2.0}
evenements: [salon, forum]
vie_entreprise: [ouverture]
innovations: [innovation]
exportations: [export]
aides_subventions: [subvention]
fondation_sponsor: [sponsor]
`
	path := filepath.Join(t.TempDir(), "themes.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write keyword file: %v", err)
	}

	idx, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	def := idx.Definition(ThemeRecrutements)
	if def == nil || len(def.Keywords) != 2 {
		t.Fatalf("expected 2 recrutements keywords, got %+v", def)
	}
	if def.TotalWeight() != 3.0 {
		t.Errorf("expected total weight 3.0, got %v", def.TotalWeight())
	}

	if w := idx.MatchedWeight(ThemeRecrutements, []string{"CDI"}); w != 2.0 {
		t.Errorf("expected matched weight 2.0 for CDI, got %v", w)
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	idx, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}

	for _, theme := range AllThemes() {
		if idx.Definition(theme) == nil {
			t.Errorf("missing default keyword list for theme %s", theme)
		}
	}
}
