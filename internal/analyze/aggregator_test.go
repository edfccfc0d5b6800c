package analyze

import (
	"reflect"
	"testing"
	"time"

	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/keywords"
	"github.com/jcarlier/veillepme/internal/search"
)

func rawResult(title, snippet, url string) search.RawResult {
	return search.RawResult{Title: title, Snippet: snippet, URL: url}
}

func testAggregator() *Aggregator {
	a := NewAggregator(config.Default().Scoring)
	a.now = func() time.Time { return testNow }
	return a
}

// scoredAt builds a ScoredResult with a single-theme raw score
func scoredAt(theme keywords.Theme, raw float64, url string, weight float64, recent bool) ScoredResult {
	return ScoredResult{
		Result: &ValidatedResult{
			RawResult:      search.RawResult{Title: "t", Snippet: "s", URL: url},
			SourceCategory: config.SourceWebGeneral,
			SourceWeight:   weight,
			Recent:         recent,
		},
		Scores: map[keywords.Theme]ResultScore{
			theme: {Raw: raw, Matched: []string{"kw"}},
		},
	}
}

func TestAggregateEmptyEvidence(t *testing.T) {
	a := testAggregator()

	assessment := a.Aggregate(testCompany(), 0, nil)

	if assessment.OverallScore != 0 {
		t.Errorf("OverallScore = %v, want 0", assessment.OverallScore)
	}
	if assessment.Confidence != ConfidenceLow {
		t.Errorf("Confidence = %s, want low", assessment.Confidence)
	}
	if len(assessment.DetectedThemes) != 0 {
		t.Errorf("DetectedThemes = %v, want empty", assessment.DetectedThemes)
	}
	for theme, ts := range assessment.Themes {
		if ts.Score != 0 {
			t.Errorf("theme %s score = %v, want 0", theme, ts.Score)
		}
	}
}

func TestAggregateWeightedMaximum(t *testing.T) {
	a := testAggregator()

	// One strong official hit dominates several weak general-web hits
	scored := []ScoredResult{
		scoredAt(keywords.ThemeRecrutements, 0.6, "https://fnac.com/jobs", 1.0, false),
		scoredAt(keywords.ThemeRecrutements, 0.5, "https://blog1.fr", 0.4, false),
		scoredAt(keywords.ThemeRecrutements, 0.5, "https://blog2.fr", 0.4, false),
	}
	assessment := a.Aggregate(testCompany(), 10, scored)

	// max(0.6*1.0, 0.5*0.4, 0.5*0.4) + 0.15 corroboration
	want := 0.75
	if got := assessment.Score(keywords.ThemeRecrutements); !almostEqual(got, want) {
		t.Errorf("theme score = %v, want %v", got, want)
	}
	if assessment.RawResults != 10 || assessment.ValidResults != 3 {
		t.Errorf("counts = %d/%d, want 10/3", assessment.RawResults, assessment.ValidResults)
	}
}

func TestAggregateCorroborationBonus(t *testing.T) {
	a := testAggregator()

	single := a.Aggregate(testCompany(), 1, []ScoredResult{
		scoredAt(keywords.ThemeEvenements, 0.5, "https://a.fr", 1.0, false),
	})
	corroborated := a.Aggregate(testCompany(), 2, []ScoredResult{
		scoredAt(keywords.ThemeEvenements, 0.5, "https://a.fr", 1.0, false),
		scoredAt(keywords.ThemeEvenements, 0.5, "https://b.fr", 1.0, false),
	})

	s1 := single.Score(keywords.ThemeEvenements)
	s2 := corroborated.Score(keywords.ThemeEvenements)
	if s2 <= s1 {
		t.Errorf("corroborated score %v should exceed single-source %v", s2, s1)
	}
	if s2 > 1.0 {
		t.Errorf("corroborated score %v exceeds 1.0", s2)
	}

	// Two hits from the same domain are not corroboration
	sameSource := a.Aggregate(testCompany(), 2, []ScoredResult{
		scoredAt(keywords.ThemeEvenements, 0.5, "https://a.fr/page1", 1.0, false),
		scoredAt(keywords.ThemeEvenements, 0.5, "https://a.fr/page2", 1.0, false),
	})
	if got := sameSource.Score(keywords.ThemeEvenements); !almostEqual(got, s1) {
		t.Errorf("same-domain hits scored %v, want %v (no corroboration bonus)", got, s1)
	}
}

func TestAggregateRecencyBonus(t *testing.T) {
	a := testAggregator()

	stale := a.Aggregate(testCompany(), 1, []ScoredResult{
		scoredAt(keywords.ThemeInnovations, 0.5, "https://a.fr", 1.0, false),
	})
	recent := a.Aggregate(testCompany(), 1, []ScoredResult{
		scoredAt(keywords.ThemeInnovations, 0.5, "https://a.fr", 1.0, true),
	})

	if recent.Score(keywords.ThemeInnovations) <= stale.Score(keywords.ThemeInnovations) {
		t.Error("recent hit should add bonus_recence")
	}
}

func TestAggregateClipsToOne(t *testing.T) {
	a := testAggregator()

	assessment := a.Aggregate(testCompany(), 3, []ScoredResult{
		scoredAt(keywords.ThemeRecrutements, 0.95, "https://a.fr", 1.0, true),
		scoredAt(keywords.ThemeRecrutements, 0.9, "https://b.fr", 1.0, true),
	})

	if got := assessment.Score(keywords.ThemeRecrutements); got != 1.0 {
		t.Errorf("theme score = %v, want clipped 1.0", got)
	}
	if assessment.OverallScore != 1.0 {
		t.Errorf("OverallScore = %v, want 1.0", assessment.OverallScore)
	}
	if assessment.Confidence != ConfidenceHigh {
		t.Errorf("Confidence = %s, want high", assessment.Confidence)
	}
}

func TestAggregateDetectionThreshold(t *testing.T) {
	a := testAggregator()

	assessment := a.Aggregate(testCompany(), 2, []ScoredResult{
		scoredAt(keywords.ThemeRecrutements, 0.6, "https://a.fr", 1.0, false), // 0.6: detected
		scoredAt(keywords.ThemeExportations, 0.3, "https://b.fr", 0.4, false), // 0.12: below 0.25
	})

	want := []keywords.Theme{keywords.ThemeRecrutements}
	if !reflect.DeepEqual(assessment.DetectedThemes, want) {
		t.Errorf("DetectedThemes = %v, want %v", assessment.DetectedThemes, want)
	}

	// Overall reflects the strongest detected signal only
	if !almostEqual(assessment.OverallScore, 0.6) {
		t.Errorf("OverallScore = %v, want 0.6", assessment.OverallScore)
	}
	if assessment.Confidence != ConfidenceMedium {
		t.Errorf("Confidence = %s, want medium", assessment.Confidence)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	a := testAggregator()

	scored := []ScoredResult{
		scoredAt(keywords.ThemeRecrutements, 0.5, "https://a.fr", 1.0, true),
		scoredAt(keywords.ThemeEvenements, 0.4, "https://b.fr", 0.8, false),
	}

	first := a.Aggregate(testCompany(), 5, scored)
	second := a.Aggregate(testCompany(), 5, scored)

	if !reflect.DeepEqual(first, second) {
		t.Error("Aggregate is not idempotent over identical input")
	}
}

func TestAggregateTraceability(t *testing.T) {
	a := testAggregator()

	scored := []ScoredResult{
		{
			Result: &ValidatedResult{
				RawResult:    rawResult("FNAC recrute", "postes en CDI", "https://fnac.com/jobs"),
				SourceWeight: 1.0,
			},
			Scores: map[keywords.Theme]ResultScore{
				keywords.ThemeRecrutements: {Raw: 0.5, Matched: []string{"CDI", "recrute"}},
			},
		},
		{
			Result: &ValidatedResult{
				RawResult:    rawResult("Emploi", "recrutement FNAC", "https://ouest-france.fr/article"),
				SourceWeight: 0.8,
			},
			Scores: map[keywords.Theme]ResultScore{
				keywords.ThemeRecrutements: {Raw: 0.3, Matched: []string{"recrutement"}},
			},
		},
	}

	ts := a.Aggregate(testCompany(), 2, scored).Themes[keywords.ThemeRecrutements]

	wantKeywords := []string{"CDI", "recrute", "recrutement"}
	if !reflect.DeepEqual(ts.MatchedKeywords, wantKeywords) {
		t.Errorf("MatchedKeywords = %v, want %v", ts.MatchedKeywords, wantKeywords)
	}

	wantURLs := []string{"https://fnac.com/jobs", "https://ouest-france.fr/article"}
	if !reflect.DeepEqual(ts.SourceURLs, wantURLs) {
		t.Errorf("SourceURLs = %v, want %v", ts.SourceURLs, wantURLs)
	}
	if ts.ContributingResults != 2 || ts.DistinctSources != 2 {
		t.Errorf("contributing/distinct = %d/%d, want 2/2", ts.ContributingResults, ts.DistinctSources)
	}
}
