package diagnostic

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jcarlier/veillepme/internal/analyze"
	"github.com/jcarlier/veillepme/internal/keywords"
)

// CompanyScore is one entry of the per-run company ranking
type CompanyScore struct {
	Nom   string  `json:"nom"`
	Score float64 `json:"score"`
}

// RunStats accumulates pipeline statistics over one run. Not safe for
// concurrent use; the pipeline processes companies sequentially.
type RunStats struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	CompaniesTotal          int `json:"companies_total"`
	CompaniesProcessed      int `json:"companies_processed"`
	CompaniesWithoutResults int `json:"companies_without_results"`
	CompaniesActive         int `json:"companies_active"`

	RawResults   int `json:"raw_results"`
	ValidResults int `json:"valid_results"`

	Rejections      map[analyze.RejectReason]int `json:"rejections"`
	ThemeDetections map[keywords.Theme]int       `json:"theme_detections"`

	ranking []CompanyScore
}

// NewRunStats starts a stats accumulator for a run over n companies
func NewRunStats(n int) *RunStats {
	return &RunStats{
		StartedAt:       time.Now(),
		CompaniesTotal:  n,
		Rejections:      make(map[analyze.RejectReason]int),
		ThemeDetections: make(map[keywords.Theme]int),
	}
}

// RecordRejection counts one rejected raw result
func (s *RunStats) RecordRejection(reason analyze.RejectReason) {
	s.Rejections[reason]++
}

// RecordWithoutResults counts a company whose search produced nothing.
// It is reported "sans résultats" and excluded from aggregation.
func (s *RunStats) RecordWithoutResults() {
	s.CompaniesWithoutResults++
}

// RecordAssessment folds one company assessment into the run statistics
func (s *RunStats) RecordAssessment(a *analyze.CompanyAssessment) {
	s.CompaniesProcessed++
	s.RawResults += a.RawResults
	s.ValidResults += a.ValidResults

	if a.OverallScore > 0 {
		s.CompaniesActive++
	}
	for _, theme := range a.DetectedThemes {
		s.ThemeDetections[theme]++
	}

	s.ranking = append(s.ranking, CompanyScore{Nom: a.Company, Score: a.OverallScore})
}

// Finish marks the end of the run
func (s *RunStats) Finish() {
	s.FinishedAt = time.Now()
}

// ValidationRate returns the raw-to-valid compression in percent
func (s *RunStats) ValidationRate() float64 {
	if s.RawResults == 0 {
		return 0
	}
	return float64(s.ValidResults) / float64(s.RawResults) * 100
}

// TopCompanies returns the n highest-scoring companies of the run
func (s *RunStats) TopCompanies(n int) []CompanyScore {
	ranking := make([]CompanyScore, len(s.ranking))
	copy(ranking, s.ranking)

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].Nom < ranking[j].Nom
	})

	if n > len(ranking) {
		n = len(ranking)
	}
	return ranking[:n]
}

// Summary renders the diagnostic report as text
func (s *RunStats) Summary() string {
	var b strings.Builder

	b.WriteString("RAPPORT DE DIAGNOSTIC\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "Entreprises traitées:     %d/%d\n", s.CompaniesProcessed, s.CompaniesTotal)
	fmt.Fprintf(&b, "Sans résultats:           %d\n", s.CompaniesWithoutResults)
	fmt.Fprintf(&b, "Entreprises actives:      %d\n", s.CompaniesActive)
	fmt.Fprintf(&b, "Résultats bruts:          %d\n", s.RawResults)
	fmt.Fprintf(&b, "Résultats validés:        %d\n", s.ValidResults)
	fmt.Fprintf(&b, "Taux de validation:       %.1f%%\n", s.ValidationRate())

	if len(s.ThemeDetections) > 0 {
		b.WriteString("\nThématiques détectées:\n")
		for _, theme := range keywords.AllThemes() {
			if n := s.ThemeDetections[theme]; n > 0 {
				fmt.Fprintf(&b, "  %-20s %d\n", theme, n)
			}
		}
	}

	if len(s.Rejections) > 0 {
		b.WriteString("\nRejets par motif:\n")
		reasons := make([]string, 0, len(s.Rejections))
		for reason := range s.Rejections {
			reasons = append(reasons, string(reason))
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			fmt.Fprintf(&b, "  %-20s %d\n", reason, s.Rejections[analyze.RejectReason(reason)])
		}
	}

	if top := s.TopCompanies(5); len(top) > 0 && top[0].Score > 0 {
		b.WriteString("\nEntreprises les plus actives:\n")
		for _, cs := range top {
			if cs.Score == 0 {
				break
			}
			fmt.Fprintf(&b, "  %-30s %.2f\n", cs.Nom, cs.Score)
		}
	}

	return b.String()
}
