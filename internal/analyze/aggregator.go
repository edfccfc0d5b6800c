package analyze

import (
	"sort"
	"time"

	"github.com/jcarlier/veillepme/internal/company"
	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/keywords"
)

// Aggregator combines per-result theme scores into a per-company
// assessment. Pure: the same inputs always produce the same assessment.
type Aggregator struct {
	cfg config.ScoringConfig

	now func() time.Time
}

// NewAggregator creates an Aggregator with the given scoring parameters
func NewAggregator(cfg config.ScoringConfig) *Aggregator {
	return &Aggregator{cfg: cfg, now: time.Now}
}

// Aggregate combines all scored results of one company. The rule per
// theme is weighted maximum plus corroboration, not an average: one
// high-trust hit dominates several weak ones, two distinct sources add
// bonus_source_multiple, a recent hit adds bonus_recence, clipped to 1.
//
// An empty result set is a valid terminal outcome: all scores zero,
// confidence low, no detected themes.
func (a *Aggregator) Aggregate(c company.Company, rawCount int, scored []ScoredResult) *CompanyAssessment {
	assessment := &CompanyAssessment{
		Company:      c.Nom,
		Commune:      c.Commune,
		Themes:       make(map[keywords.Theme]*ThemeScore, len(keywords.AllThemes())),
		RawResults:   rawCount,
		ValidResults: len(scored),
		Confidence:   ConfidenceLow,
		AnalyzedAt:   a.now(),
	}

	for _, theme := range keywords.AllThemes() {
		assessment.Themes[theme] = a.aggregateTheme(theme, scored)
	}

	var detected []keywords.Theme
	for _, theme := range keywords.AllThemes() {
		ts := assessment.Themes[theme]
		ts.Detected = ts.Score >= a.cfg.SeuilPertinence
		if ts.Detected {
			detected = append(detected, theme)
		}
	}
	sort.Slice(detected, func(i, j int) bool {
		si, sj := assessment.Themes[detected[i]].Score, assessment.Themes[detected[j]].Score
		if si != sj {
			return si > sj
		}
		return detected[i] < detected[j]
	})
	assessment.DetectedThemes = detected

	// Overall score is the single strongest detected signal, not an
	// average: a company strongly recruiting but silent elsewhere still
	// scores high.
	for _, theme := range detected {
		if s := assessment.Themes[theme].Score; s > assessment.OverallScore {
			assessment.OverallScore = s
		}
	}

	switch {
	case assessment.OverallScore >= a.cfg.SeuilConfianceHaute:
		assessment.Confidence = ConfidenceHigh
	case assessment.OverallScore >= a.cfg.SeuilConfianceMoyenne:
		assessment.Confidence = ConfidenceMedium
	default:
		assessment.Confidence = ConfidenceLow
	}

	return assessment
}

func (a *Aggregator) aggregateTheme(theme keywords.Theme, scored []ScoredResult) *ThemeScore {
	ts := &ThemeScore{Theme: theme}

	var best float64
	domains := make(map[string]bool)
	matchedSet := make(map[string]bool)

	for _, sr := range scored {
		rs, ok := sr.Scores[theme]
		if !ok || rs.Raw == 0 {
			continue
		}

		ts.ContributingResults++
		if sr.Result.Recent {
			ts.RecentHit = true
		}
		if d := sr.Result.Domain(); d != "" {
			domains[d] = true
		}
		ts.SourceURLs = append(ts.SourceURLs, sr.Result.URL)
		for _, kw := range rs.Matched {
			matchedSet[kw] = true
		}

		if contribution := rs.Raw * sr.Result.SourceWeight; contribution > best {
			best = contribution
		}
	}

	ts.DistinctSources = len(domains)
	if ts.ContributingResults == 0 {
		return ts
	}

	score := best
	if ts.DistinctSources >= 2 {
		score += a.cfg.BonusSourceMultiple
	}
	if ts.RecentHit {
		score += a.cfg.BonusRecence
	}
	if score > 1 {
		score = 1
	}
	ts.Score = score

	for kw := range matchedSet {
		ts.MatchedKeywords = append(ts.MatchedKeywords, kw)
	}
	sort.Strings(ts.MatchedKeywords)
	sort.Strings(ts.SourceURLs)

	return ts
}
