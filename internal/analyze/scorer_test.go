package analyze

import (
	"testing"

	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/keywords"
)

// smallIndex builds an index with predictable list sizes for score math
func smallIndex(t *testing.T) *keywords.Index {
	t.Helper()

	lists := map[keywords.Theme][]keywords.Keyword{
		keywords.ThemeRecrutements: {
			{Phrase: "recrutement"}, {Phrase: "CDI"}, {Phrase: "embauche"}, {Phrase: "recrute"},
		},
		keywords.ThemeEvenements:       {{Phrase: "salon"}, {Phrase: "portes ouvertes"}},
		keywords.ThemeVieEntreprise:    {{Phrase: "implantation"}},
		keywords.ThemeInnovations:      {{Phrase: "innovation"}},
		keywords.ThemeExportations:     {{Phrase: "export"}},
		keywords.ThemeAidesSubventions: {{Phrase: "subvention"}},
		keywords.ThemeFondationSponsor: {{Phrase: "sponsor"}},
	}
	idx, err := keywords.New(lists)
	if err != nil {
		t.Fatalf("keywords.New() error = %v", err)
	}
	return idx
}

func testScorer(t *testing.T) *Scorer {
	return NewScorer(config.Default().Scoring, smallIndex(t))
}

func validated(title, snippet string) *ValidatedResult {
	return &ValidatedResult{
		RawResult:      rawResult(title, snippet, "https://a.fr"),
		SourceCategory: config.SourceWebGeneral,
		SourceWeight:   0.4,
	}
}

func TestScoreNoMatch(t *testing.T) {
	s := testScorer(t)

	scores := s.Score(validated("Météo du week-end", "éclaircies en matinée"))
	if len(scores) != 0 {
		t.Errorf("expected no theme scores, got %v", scores)
	}
}

func TestScoreSnippetOnly(t *testing.T) {
	s := testScorer(t)

	scores := s.Score(validated("Actualité entreprise", "campagne de recrutement en cours"))
	rs, ok := scores[keywords.ThemeRecrutements]
	if !ok {
		t.Fatal("expected a recrutements score")
	}

	// 1 of 4 keywords, snippet only: 0.6*0.25 + 0.1
	want := 0.25
	if !almostEqual(rs.Raw, want) {
		t.Errorf("Raw = %v, want %v", rs.Raw, want)
	}
	if rs.TitleMatch {
		t.Error("expected snippet-only match")
	}
}

func TestScoreTitleOutweighsSnippet(t *testing.T) {
	s := testScorer(t)

	title := s.Score(validated("FNAC lance un recrutement", "détails du poste"))
	snippet := s.Score(validated("Actualité FNAC", "campagne de recrutement"))

	tr := title[keywords.ThemeRecrutements]
	sr := snippet[keywords.ThemeRecrutements]
	if tr.Raw <= sr.Raw {
		t.Errorf("title match (%v) should outscore snippet-only (%v)", tr.Raw, sr.Raw)
	}
	if !tr.TitleMatch {
		t.Error("expected TitleMatch=true for title hit")
	}
}

func TestScoreMonotonic(t *testing.T) {
	s := testScorer(t)

	snippets := []string{
		"recrutement",
		"recrutement en CDI",
		"recrutement en CDI, embauche immédiate",
		"recrutement en CDI, embauche immédiate, on recrute",
	}

	prev := 0.0
	for _, snippet := range snippets {
		scores := s.Score(validated("Annonce", snippet))
		raw := scores[keywords.ThemeRecrutements].Raw

		if raw < prev {
			t.Errorf("score decreased from %v to %v for %q", prev, raw, snippet)
		}
		if raw > 1.0 {
			t.Errorf("score %v exceeds 1.0 for %q", raw, snippet)
		}
		prev = raw
	}

	// All 4 keywords matched, snippet only: 0.6 + 0.1
	if !almostEqual(prev, 0.7) {
		t.Errorf("full-list score = %v, want 0.7", prev)
	}
}

func TestScoreIndependentThemes(t *testing.T) {
	s := testScorer(t)

	scores := s.Score(validated("Salon de l'innovation", "la société recrute sur son stand"))

	if _, ok := scores[keywords.ThemeEvenements]; !ok {
		t.Error("expected evenements score")
	}
	if _, ok := scores[keywords.ThemeInnovations]; !ok {
		t.Error("expected innovations score")
	}
	if _, ok := scores[keywords.ThemeRecrutements]; !ok {
		t.Error("expected recrutements score")
	}
	if _, ok := scores[keywords.ThemeExportations]; ok {
		t.Error("unexpected exportations score")
	}
}

func almostEqual(a, b float64) bool {
	const eps = 1e-9
	return a-b < eps && b-a < eps
}
