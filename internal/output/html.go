package output

import (
	"html/template"
	"io"
	"sort"
	"time"

	"github.com/jcarlier/veillepme/internal/analyze"
	"github.com/jcarlier/veillepme/internal/keywords"
)

const reportTemplate = `<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Rapport de Veille Économique</title>
<style>
body { font-family: Arial, sans-serif; margin: 20px; }
.header { background-color: #2c3e50; color: white; padding: 20px; text-align: center; }
.stats { display: flex; justify-content: space-around; margin: 20px 0; }
.stat-box { background-color: #ecf0f1; padding: 15px; border-radius: 5px; text-align: center; }
.thematique { margin: 20px 0; padding: 15px; border-left: 4px solid #3498db; }
.entreprise { margin: 10px 0; padding: 10px; background-color: #f8f9fa; border-radius: 3px; }
.score { font-weight: bold; }
.score.high { color: #27ae60; }
.score.medium { color: #f39c12; }
.score.low { color: #e74c3c; }
table { width: 100%; border-collapse: collapse; margin: 20px 0; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }
</style>
</head>
<body>
<div class="header">
<h1>Rapport de Veille Économique Territoriale</h1>
<p>Généré le {{.GeneratedAt.Format "02/01/2006 à 15:04"}}</p>
</div>

<div class="stats">
<div class="stat-box"><h3>{{.Total}}</h3><p>Entreprises analysées</p></div>
<div class="stat-box"><h3>{{.Active}}</h3><p>Entreprises actives</p></div>
<div class="stat-box"><h3>{{printf "%.2f" .AverageScore}}</h3><p>Score moyen</p></div>
<div class="stat-box"><h3>{{.Communes}}</h3><p>Communes représentées</p></div>
</div>

<h2>Synthèse par thématique</h2>
{{range .Themes}}
<div class="thematique">
<h3>{{.Theme}} ({{len .Companies}})</h3>
{{range .Companies}}
<div class="entreprise">
<strong>{{.Company}}</strong>{{if .Commune}} ({{.Commune}}){{end}}
<span class="score {{.Confidence}}">{{printf "%.2f" .Score}}</span>
{{if .Keywords}}<br><em>{{range $i, $k := .Keywords}}{{if $i}}, {{end}}{{$k}}{{end}}</em>{{end}}
</div>
{{end}}
</div>
{{end}}

<h2>Détail des entreprises</h2>
<table>
<tr><th>Entreprise</th><th>Commune</th><th>Score</th><th>Confiance</th><th>Thématiques</th><th>Sources</th></tr>
{{range .Assessments}}
<tr>
<td>{{.Company}}</td>
<td>{{.Commune}}</td>
<td><span class="score {{.Confidence}}">{{printf "%.2f" .OverallScore}}</span></td>
<td>{{.Confidence}}</td>
<td>{{range $i, $t := .DetectedThemes}}{{if $i}}, {{end}}{{$t}}{{end}}</td>
<td>{{.ValidResults}}/{{.RawResults}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

type themeEntry struct {
	Company    string
	Commune    string
	Score      float64
	Confidence analyze.Confidence
	Keywords   []string
}

type themeSection struct {
	Theme     keywords.Theme
	Companies []themeEntry
}

type reportData struct {
	GeneratedAt  time.Time
	Total        int
	Active       int
	AverageScore float64
	Communes     int
	Themes       []themeSection
	Assessments  []*analyze.CompanyAssessment
}

// HTMLReport renders the run report for all assessments
func HTMLReport(w io.Writer, assessments []*analyze.CompanyAssessment) error {
	data := reportData{
		GeneratedAt: time.Now(),
		Total:       len(assessments),
		Assessments: assessments,
	}

	communes := make(map[string]bool)
	byTheme := make(map[keywords.Theme][]themeEntry)
	var sum float64

	for _, a := range assessments {
		sum += a.OverallScore
		if a.OverallScore > 0 {
			data.Active++
		}
		if a.Commune != "" {
			communes[a.Commune] = true
		}
		for _, theme := range a.DetectedThemes {
			ts := a.Themes[theme]
			if ts == nil {
				continue
			}
			byTheme[theme] = append(byTheme[theme], themeEntry{
				Company:    a.Company,
				Commune:    a.Commune,
				Score:      ts.Score,
				Confidence: a.Confidence,
				Keywords:   ts.MatchedKeywords,
			})
		}
	}

	if data.Total > 0 {
		data.AverageScore = sum / float64(data.Total)
	}
	data.Communes = len(communes)

	for _, theme := range keywords.AllThemes() {
		entries := byTheme[theme]
		if len(entries) == 0 {
			continue
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].Score != entries[j].Score {
				return entries[i].Score > entries[j].Score
			}
			return entries[i].Company < entries[j].Company
		})
		data.Themes = append(data.Themes, themeSection{Theme: theme, Companies: entries})
	}

	// Highest scores first in the detail table
	sorted := make([]*analyze.CompanyAssessment, len(assessments))
	copy(sorted, assessments)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].OverallScore != sorted[j].OverallScore {
			return sorted[i].OverallScore > sorted[j].OverallScore
		}
		return sorted[i].Company < sorted[j].Company
	})
	data.Assessments = sorted

	return reportTmpl.Execute(w, data)
}
