package analyze

import (
	"time"

	"github.com/jcarlier/veillepme/internal/company"
	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/keywords"
	"github.com/jcarlier/veillepme/internal/search"
)

// Validator filters raw search results before scoring. This gate is the
// main lever on the raw-to-valid compression rate: loosening
// exclusions_strictes trades false negatives for false positives.
type Validator struct {
	validation config.ValidationConfig
	sources    config.SourcesConfig
	poids      func(string) float64
	periode    time.Duration

	now func() time.Time
}

// NewValidator creates a Validator from configuration
func NewValidator(cfg *config.Config) *Validator {
	return &Validator{
		validation: cfg.Validation,
		sources:    cfg.Sources,
		poids:      cfg.PoidsSource,
		periode:    cfg.Recherche.PeriodeRecherche(),
		now:        time.Now,
	}
}

// Validate gates one raw result for a company. A nil ValidatedResult
// with the verdict's reason means the result was rejected; malformed
// results are rejections, never errors.
func (v *Validator) Validate(raw search.RawResult, c company.Company) (*ValidatedResult, Verdict) {
	combined := keywords.Normalize(raw.Title + " " + raw.Snippet)
	if combined == "" {
		return nil, rejected(RejectEmptyContent, "empty title and snippet")
	}

	domain := raw.Domain()
	if domain == "" {
		return nil, rejected(RejectMalformedURL, raw.URL)
	}

	for _, excluded := range v.validation.DomainesExclus {
		if search.MatchesDomain(domain, excluded) {
			return nil, rejected(RejectExcludedDomain, excluded)
		}
	}

	if v.validation.ExclusionsStrictes && !v.mentionsCompany(combined, c) {
		return nil, rejected(RejectNotRelevant, "no company or commune mention")
	}

	categorie := v.classifySource(domain, c)

	return &ValidatedResult{
		RawResult:      raw,
		SourceCategory: categorie,
		SourceWeight:   v.poids(categorie),
		Recent:         v.isRecent(raw.RetrievedAt),
	}, accepted()
}

// mentionsCompany checks the strict relevance gate: at least one exact
// company-name token, or the commune name, must appear in the text.
func (v *Validator) mentionsCompany(normalized string, c company.Company) bool {
	for _, token := range c.NameTokens() {
		if keywords.ContainsPhrase(normalized, token) {
			return true
		}
	}

	commune := keywords.Normalize(c.Commune)
	return commune != "" && keywords.ContainsPhrase(normalized, commune)
}

// classifySource maps a result domain to a source category. The company
// website counts as official; unclassified domains fall back to the
// general web.
func (v *Validator) classifySource(domain string, c company.Company) string {
	if site := search.DomainOf(c.SiteWeb); site != "" && search.MatchesDomain(domain, site) {
		return config.SourceSiteOfficiel
	}
	for _, d := range v.sources.ReseauxSociaux {
		if search.MatchesDomain(domain, d) {
			return config.SourceReseauxSociaux
		}
	}
	for _, d := range v.sources.PresseLocale {
		if search.MatchesDomain(domain, d) {
			return config.SourcePresseLocale
		}
	}
	for _, d := range v.sources.PresseNationale {
		if search.MatchesDomain(domain, d) {
			return config.SourcePresseNationale
		}
	}
	return config.SourceWebGeneral
}

func (v *Validator) isRecent(retrieved time.Time) bool {
	if retrieved.IsZero() {
		return false
	}
	return v.now().Sub(retrieved) <= v.periode
}
