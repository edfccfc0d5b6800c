package analyze

import (
	"github.com/jcarlier/veillepme/internal/keywords"
	"github.com/jcarlier/veillepme/internal/search"
)

// ValidatedResult is a RawResult that passed validation, annotated with
// its source trust weight and recency flag
type ValidatedResult struct {
	search.RawResult

	SourceCategory string  `json:"source_category"`
	SourceWeight   float64 `json:"source_weight"`
	Recent         bool    `json:"recent"`
}

// RejectReason identifies why a raw result was rejected
type RejectReason string

const (
	RejectEmptyContent   RejectReason = "contenu_vide"
	RejectMalformedURL   RejectReason = "url_invalide"
	RejectExcludedDomain RejectReason = "domaine_exclu"
	RejectNotRelevant    RejectReason = "hors_sujet"
)

// Verdict is the outcome of validating one raw result. A rejection is
// not an error: it is counted and processing continues.
type Verdict struct {
	Accepted bool         `json:"accepted"`
	Reason   RejectReason `json:"reason,omitempty"`
	Detail   string       `json:"detail,omitempty"`
}

func accepted() Verdict {
	return Verdict{Accepted: true}
}

func rejected(reason RejectReason, detail string) Verdict {
	return Verdict{Accepted: false, Reason: reason, Detail: detail}
}

// ResultScore is the per-theme score of a single validated result
type ResultScore struct {
	Raw        float64  `json:"raw"`
	Matched    []string `json:"matched"`
	TitleMatch bool     `json:"title_match"`
}

// ScoredResult pairs a validated result with its per-theme scores
type ScoredResult struct {
	Result *ValidatedResult
	Scores map[keywords.Theme]ResultScore
}
