package search

import (
	"fmt"

	"github.com/jcarlier/veillepme/internal/company"
	"github.com/jcarlier/veillepme/internal/keywords"
)

// Per-theme query terms appended to the company identity. Short on
// purpose: the keyword index does the fine-grained matching downstream.
var themeQueryTerms = map[keywords.Theme]string{
	keywords.ThemeRecrutements:     "recrutement emploi",
	keywords.ThemeEvenements:       "événement portes ouvertes",
	keywords.ThemeVieEntreprise:    "développement implantation",
	keywords.ThemeInnovations:      "innovation nouveau produit",
	keywords.ThemeExportations:     "export international",
	keywords.ThemeAidesSubventions: "subvention aide financement",
	keywords.ThemeFondationSponsor: "sponsor mécénat",
}

// BuildQueries generates the search queries issued for one company: a
// bare identity query plus one query per theme.
func BuildQueries(c company.Company) []string {
	identity := fmt.Sprintf("%q %s", c.Nom, c.Commune)

	queries := make([]string, 0, len(themeQueryTerms)+1)
	queries = append(queries, identity)
	for _, theme := range keywords.AllThemes() {
		queries = append(queries, identity+" "+themeQueryTerms[theme])
	}
	return queries
}
