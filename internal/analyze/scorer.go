package analyze

import (
	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/keywords"
)

// Scorer scores a single validated result against each theme's keyword
// set. Scores are normalized by keyword-list mass so themes with short
// and long lists stay comparable.
type Scorer struct {
	cfg   config.ScoringConfig
	index *keywords.Index
}

// NewScorer creates a Scorer over an immutable keyword index
func NewScorer(cfg config.ScoringConfig, index *keywords.Index) *Scorer {
	return &Scorer{cfg: cfg, index: index}
}

// Score computes per-theme raw scores in [0,1] for one result. Themes
// with no keyword match are omitted (raw score 0).
//
// raw = min(1, plafond_base * matched_weight/total_weight + overlap)
// where overlap is bonus_titre when a matched phrase appears in the
// title, bonus_extrait for snippet-only matches. A single result can
// only saturate to 1.0 through many distinct matches; corroboration
// across results is the aggregator's job.
func (s *Scorer) Score(vr *ValidatedResult) map[keywords.Theme]ResultScore {
	scores := make(map[keywords.Theme]ResultScore)
	text := vr.Title + " " + vr.Snippet

	for _, theme := range keywords.AllThemes() {
		matched := s.index.Match(text, theme)
		if len(matched) == 0 {
			continue
		}

		def := s.index.Definition(theme)
		base := s.cfg.PlafondBase * s.index.MatchedWeight(theme, matched) / def.TotalWeight()
		if base > s.cfg.PlafondBase {
			base = s.cfg.PlafondBase
		}

		titleMatch := len(s.index.Match(vr.Title, theme)) > 0
		overlap := s.cfg.BonusExtrait
		if titleMatch {
			overlap = s.cfg.BonusTitre
		}

		raw := base + overlap
		if raw > 1 {
			raw = 1
		}

		scores[theme] = ResultScore{
			Raw:        raw,
			Matched:    matched,
			TitleMatch: titleMatch,
		}
	}

	return scores
}
