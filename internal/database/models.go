package database

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jcarlier/veillepme/internal/analyze"
	"github.com/jcarlier/veillepme/internal/keywords"
)

// Run represents one monitoring run over a company list
type Run struct {
	ID                 string     `json:"id"`
	StartedAt          time.Time  `json:"started_at"`
	FinishedAt         *time.Time `json:"finished_at,omitempty"`
	CompaniesTotal     int        `json:"companies_total"`
	CompaniesProcessed int        `json:"companies_processed"`
	RawResults         int        `json:"raw_results"`
	ValidResults       int        `json:"valid_results"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Assessment is the stored form of one company assessment. Theme detail
// is kept as JSON so the schema survives keyword list changes.
type Assessment struct {
	ID             string    `json:"id"`
	RunID          string    `json:"run_id"`
	Company        string    `json:"company"`
	Commune        *string   `json:"commune,omitempty"`
	OverallScore   float64   `json:"overall_score"`
	Confidence     string    `json:"confidence"`
	DetectedThemes string    `json:"-"`
	Themes         string    `json:"-"`
	RawResults     int       `json:"raw_results"`
	ValidResults   int       `json:"valid_results"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewAssessment converts a pipeline assessment to its stored form
func NewAssessment(runID string, a *analyze.CompanyAssessment) (*Assessment, error) {
	detected, err := json.Marshal(a.DetectedThemes)
	if err != nil {
		return nil, err
	}
	themes, err := json.Marshal(a.Themes)
	if err != nil {
		return nil, err
	}

	stored := &Assessment{
		RunID:          runID,
		Company:        a.Company,
		OverallScore:   a.OverallScore,
		Confidence:     string(a.Confidence),
		DetectedThemes: string(detected),
		Themes:         string(themes),
		RawResults:     a.RawResults,
		ValidResults:   a.ValidResults,
		AnalyzedAt:     a.AnalyzedAt,
	}
	if a.Commune != "" {
		stored.Commune = &a.Commune
	}
	return stored, nil
}

// Decode restores the pipeline assessment from its stored form
func (a *Assessment) Decode() (*analyze.CompanyAssessment, error) {
	decoded := &analyze.CompanyAssessment{
		Company:      a.Company,
		OverallScore: a.OverallScore,
		Confidence:   analyze.Confidence(a.Confidence),
		RawResults:   a.RawResults,
		ValidResults: a.ValidResults,
		AnalyzedAt:   a.AnalyzedAt,
	}
	if a.Commune != nil {
		decoded.Commune = *a.Commune
	}
	if err := json.Unmarshal([]byte(a.DetectedThemes), &decoded.DetectedThemes); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(a.Themes), &decoded.Themes); err != nil {
		return nil, err
	}
	return decoded, nil
}

// CachedResult is one cached search hit for a query
type CachedResult struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	URL         string    `json:"url"`
	Title       *string   `json:"title,omitempty"`
	Snippet     *string   `json:"snippet,omitempty"`
	RetrievedAt time.Time `json:"retrieved_at"`
}

// ListOptions contains options for listing assessments
type ListOptions struct {
	RunID    *string
	Company  *string
	Theme    *keywords.Theme
	MinScore *float64
	Limit    int
	Offset   int
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullTime is a helper to convert *time.Time to sql.NullTime
func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// TimePtr converts sql.NullTime to *time.Time
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}
