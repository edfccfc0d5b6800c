package analyze

import (
	"time"

	"github.com/jcarlier/veillepme/internal/keywords"
)

// Confidence buckets an overall score
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ThemeScore is the aggregated per-company score for one theme
type ThemeScore struct {
	Theme               keywords.Theme `json:"theme"`
	Score               float64        `json:"score"`
	Detected            bool           `json:"detected"`
	MatchedKeywords     []string       `json:"matched_keywords,omitempty"`
	SourceURLs          []string       `json:"source_urls,omitempty"`
	ContributingResults int            `json:"contributing_results"`
	DistinctSources     int            `json:"distinct_sources"`
	RecentHit           bool           `json:"recent_hit"`
}

// CompanyAssessment is the final per-company output of the pipeline
type CompanyAssessment struct {
	Company        string                             `json:"company"`
	Commune        string                             `json:"commune,omitempty"`
	Themes         map[keywords.Theme]*ThemeScore     `json:"themes"`
	DetectedThemes []keywords.Theme                   `json:"detected_themes"`
	OverallScore   float64                            `json:"overall_score"`
	Confidence     Confidence                         `json:"confidence"`
	RawResults     int                                `json:"raw_results"`
	ValidResults   int                                `json:"valid_results"`
	AnalyzedAt     time.Time                          `json:"analyzed_at"`
}

// Score returns the aggregated score of a theme, 0 when absent
func (a *CompanyAssessment) Score(theme keywords.Theme) float64 {
	if ts, ok := a.Themes[theme]; ok {
		return ts.Score
	}
	return 0
}
