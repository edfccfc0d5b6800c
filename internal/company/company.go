package company

import (
	"strings"

	"github.com/jcarlier/veillepme/internal/keywords"
)

// Company is one entry of the territorial watch list
type Company struct {
	Nom        string `json:"nom"`
	SIRET      string `json:"siret,omitempty"`
	Commune    string `json:"commune"`
	CodePostal string `json:"code_postal,omitempty"`
	SiteWeb    string `json:"site_web,omitempty"`
	SecteurNAF string `json:"secteur_naf,omitempty"`
}

// Placeholder names used by the registry for companies that opted out
// of data diffusion. They cannot be searched for.
var nonSearchableNames = []string{
	"INFORMATION NON-DIFFUSIBLE",
	"NON DIFFUSIBLE",
	"CONFIDENTIEL",
}

// Searchable reports whether the company name can drive a web search.
// Very permissive: short family-business names are fine.
func (c Company) Searchable() bool {
	nom := strings.ToUpper(strings.TrimSpace(c.Nom))
	if len(nom) < 3 {
		return false
	}
	for _, placeholder := range nonSearchableNames {
		if strings.Contains(nom, placeholder) {
			return false
		}
	}
	return true
}

// Legal-form tokens carry no identity and are ignored when checking
// whether a result mentions the company.
var legalForms = map[string]bool{
	"sarl": true, "sas": true, "sasu": true, "eurl": true, "sci": true,
	"sa": true, "snc": true, "ets": true, "cie": true,
}

// NameTokens returns the normalized identifying tokens of the company
// name, excluding legal forms and tokens shorter than 3 runes.
func (c Company) NameTokens() []string {
	var tokens []string
	for _, tok := range strings.Fields(keywords.Normalize(c.Nom)) {
		if len([]rune(tok)) < 3 || legalForms[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	// A name made only of a legal form and initials still needs a token
	if len(tokens) == 0 {
		tokens = strings.Fields(keywords.Normalize(c.Nom))
	}
	return tokens
}
