package diagnostic

import (
	"strings"
	"testing"

	"github.com/jcarlier/veillepme/internal/analyze"
	"github.com/jcarlier/veillepme/internal/keywords"
)

func sampleAssessment(name string, score float64, themes ...keywords.Theme) *analyze.CompanyAssessment {
	return &analyze.CompanyAssessment{
		Company:        name,
		OverallScore:   score,
		DetectedThemes: themes,
		RawResults:     10,
		ValidResults:   3,
	}
}

func TestRecordAssessment(t *testing.T) {
	stats := NewRunStats(3)

	stats.RecordAssessment(sampleAssessment("ALPHA", 0.8, keywords.ThemeRecrutements, keywords.ThemeInnovations))
	stats.RecordAssessment(sampleAssessment("BETA", 0.4, keywords.ThemeRecrutements))
	stats.RecordAssessment(sampleAssessment("GAMMA", 0))
	stats.RecordWithoutResults()

	if stats.CompaniesProcessed != 3 {
		t.Errorf("CompaniesProcessed = %d, want 3", stats.CompaniesProcessed)
	}
	if stats.CompaniesActive != 2 {
		t.Errorf("CompaniesActive = %d, want 2", stats.CompaniesActive)
	}
	if stats.CompaniesWithoutResults != 1 {
		t.Errorf("CompaniesWithoutResults = %d, want 1", stats.CompaniesWithoutResults)
	}
	if stats.RawResults != 30 || stats.ValidResults != 9 {
		t.Errorf("results = %d/%d, want 30/9", stats.ValidResults, stats.RawResults)
	}
	if got := stats.ThemeDetections[keywords.ThemeRecrutements]; got != 2 {
		t.Errorf("recrutements detections = %d, want 2", got)
	}
	if got := stats.ThemeDetections[keywords.ThemeInnovations]; got != 1 {
		t.Errorf("innovations detections = %d, want 1", got)
	}
}

func TestValidationRate(t *testing.T) {
	stats := NewRunStats(1)
	if got := stats.ValidationRate(); got != 0 {
		t.Errorf("empty ValidationRate = %f, want 0", got)
	}

	stats.RecordAssessment(sampleAssessment("ALPHA", 0.5, keywords.ThemeRecrutements))
	if got := stats.ValidationRate(); got != 30 {
		t.Errorf("ValidationRate = %f, want 30", got)
	}
}

func TestTopCompanies(t *testing.T) {
	stats := NewRunStats(4)
	stats.RecordAssessment(sampleAssessment("BETA", 0.4))
	stats.RecordAssessment(sampleAssessment("ALPHA", 0.8))
	stats.RecordAssessment(sampleAssessment("DELTA", 0.4))
	stats.RecordAssessment(sampleAssessment("GAMMA", 0.6))

	top := stats.TopCompanies(3)
	if len(top) != 3 {
		t.Fatalf("len(top) = %d, want 3", len(top))
	}
	if top[0].Nom != "ALPHA" || top[1].Nom != "GAMMA" {
		t.Errorf("ranking = %v", top)
	}
	// ties break on name
	if top[2].Nom != "BETA" {
		t.Errorf("top[2] = %s, want BETA", top[2].Nom)
	}
}

func TestSummary(t *testing.T) {
	stats := NewRunStats(2)
	stats.RecordAssessment(sampleAssessment("ALPHA", 0.8, keywords.ThemeRecrutements))
	stats.RecordWithoutResults()
	stats.RecordRejection(analyze.RejectExcludedDomain)
	stats.RecordRejection(analyze.RejectExcludedDomain)
	stats.RecordRejection(analyze.RejectEmptyContent)
	stats.Finish()

	summary := stats.Summary()
	for _, want := range []string{
		"Entreprises traitées:     1/2",
		"Sans résultats:           1",
		"Taux de validation:       30.0%",
		"recrutements",
		"domaine_exclu",
		"ALPHA",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}
