package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/jcarlier/veillepme/internal/analyze"
	"github.com/jcarlier/veillepme/internal/database"
	"github.com/jcarlier/veillepme/internal/diagnostic"
	"github.com/jcarlier/veillepme/internal/keywords"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []database.Assessment:
		return assessmentsTable(w, v)
	case *analyze.CompanyAssessment:
		return assessmentDetail(w, v)
	case *diagnostic.RunStats:
		fmt.Fprint(w, v.Summary())
		return nil
	case []database.Run:
		return runsTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func assessmentsTable(w io.Writer, assessments []database.Assessment) error {
	if len(assessments) == 0 {
		fmt.Fprintln(w, "Aucune entreprise analysée.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTREPRISE\tCOMMUNE\tSCORE\tCONFIANCE\tTHÉMATIQUES\tRÉSULTATS")
	fmt.Fprintln(tw, "----------\t-------\t-----\t---------\t-----------\t---------")

	for _, a := range assessments {
		commune := ""
		if a.Commune != nil {
			commune = *a.Commune
		}

		themes := "-"
		if decoded, err := a.Decode(); err == nil && len(decoded.DetectedThemes) > 0 {
			names := make([]string, len(decoded.DetectedThemes))
			for i, t := range decoded.DetectedThemes {
				names[i] = string(t)
			}
			themes = strings.Join(names, ", ")
		}

		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\t%d/%d\n",
			truncate(a.Company, 30),
			truncate(commune, 20),
			a.OverallScore,
			a.Confidence,
			truncate(themes, 40),
			a.ValidResults,
			a.RawResults,
		)
	}

	return tw.Flush()
}

func assessmentDetail(w io.Writer, a *analyze.CompanyAssessment) error {
	fmt.Fprintf(w, "Entreprise:   %s\n", a.Company)
	if a.Commune != "" {
		fmt.Fprintf(w, "Commune:      %s\n", a.Commune)
	}
	fmt.Fprintf(w, "Score global: %.2f\n", a.OverallScore)
	fmt.Fprintf(w, "Confiance:    %s\n", a.Confidence)
	fmt.Fprintf(w, "Résultats:    %d validés sur %d\n", a.ValidResults, a.RawResults)
	fmt.Fprintf(w, "Analysé le:   %s\n", a.AnalyzedAt.Format("02/01/2006 15:04"))

	if len(a.DetectedThemes) == 0 {
		fmt.Fprintln(w, "\nAucune thématique détectée.")
		return nil
	}

	fmt.Fprintln(w, "\nThématiques détectées:")
	for _, theme := range a.DetectedThemes {
		ts := a.Themes[theme]
		if ts == nil {
			continue
		}
		fmt.Fprintln(w, strings.Repeat("-", 50))
		fmt.Fprintf(w, "  %s (score %.2f, %d source(s))\n", theme, ts.Score, ts.DistinctSources)
		if len(ts.MatchedKeywords) > 0 {
			fmt.Fprintf(w, "  Mots-clés: %s\n", strings.Join(ts.MatchedKeywords, ", "))
		}
		for _, url := range ts.SourceURLs {
			fmt.Fprintf(w, "    %s\n", url)
		}
	}

	// Themes scored below the detection threshold still carry signal
	var weak []keywords.Theme
	for theme, ts := range a.Themes {
		if !ts.Detected && ts.Score > 0 {
			weak = append(weak, theme)
		}
	}
	if len(weak) > 0 {
		sort.Slice(weak, func(i, j int) bool { return weak[i] < weak[j] })
		fmt.Fprintln(w, "\nSignaux faibles (sous le seuil):")
		for _, theme := range weak {
			fmt.Fprintf(w, "  %-20s %.2f\n", theme, a.Themes[theme].Score)
		}
	}

	return nil
}

func runsTable(w io.Writer, runs []database.Run) error {
	if len(runs) == 0 {
		fmt.Fprintln(w, "Aucune exécution enregistrée.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDÉBUT\tENTREPRISES\tRÉSULTATS")
	fmt.Fprintln(tw, "--\t-----\t-----------\t---------")

	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d/%d\t%d/%d\n",
			shortID(r.ID),
			r.StartedAt.Format("02/01/2006 15:04"),
			r.CompaniesProcessed,
			r.CompaniesTotal,
			r.ValidResults,
			r.RawResults,
		)
	}

	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
