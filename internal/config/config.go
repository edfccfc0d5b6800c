package config

import "time"

// Config represents the application configuration
type Config struct {
	Recherche  RechercheConfig  `toml:"recherche"`
	Validation ValidationConfig `toml:"validation"`
	Scoring    ScoringConfig    `toml:"scoring"`
	Sources    SourcesConfig    `toml:"sources"`
	Themes     ThemesConfig     `toml:"themes"`
	Database   DatabaseConfig   `toml:"database"`
}

// RechercheConfig contains search-engine settings
type RechercheConfig struct {
	// API key falls back to the GOOGLE_API_KEY environment variable when empty
	CleAPI       string `toml:"cle_api"`
	EngineID     string `toml:"cx"`
	MaxResultats int    `toml:"max_resultats"`
	PeriodeMois  int    `toml:"periode_recherche_mois"`
	Langue       string `toml:"langue"`
}

// PeriodeRecherche returns the recency window as a duration
func (r RechercheConfig) PeriodeRecherche() time.Duration {
	return time.Duration(r.PeriodeMois) * 30 * 24 * time.Hour
}

// ValidationConfig contains result validation gates
type ValidationConfig struct {
	// ExclusionsStrictes requires the company name or commune to appear
	// in every result. Disabling it is the "assoupli" mode.
	ExclusionsStrictes bool     `toml:"exclusions_strictes"`
	DomainesExclus     []string `toml:"domaines_exclus"`
}

// ScoringConfig contains scoring weights, bonuses and thresholds
type ScoringConfig struct {
	PlafondBase           float64 `toml:"plafond_base"`
	BonusTitre            float64 `toml:"bonus_titre"`
	BonusExtrait          float64 `toml:"bonus_extrait"`
	BonusSourceMultiple   float64 `toml:"bonus_source_multiple"`
	BonusRecence          float64 `toml:"bonus_recence"`
	SeuilPertinence       float64 `toml:"seuil_pertinence_minimum"`
	SeuilConfianceHaute   float64 `toml:"seuil_confiance_haute"`
	SeuilConfianceMoyenne float64 `toml:"seuil_confiance_moyenne"`
}

// SourcesConfig classifies source domains and assigns trust weights
type SourcesConfig struct {
	Poids           map[string]float64 `toml:"poids"`
	PresseLocale    []string           `toml:"presse_locale"`
	PresseNationale []string           `toml:"presse_nationale"`
	ReseauxSociaux  []string           `toml:"reseaux_sociaux"`
}

// ThemesConfig locates the keyword lists
type ThemesConfig struct {
	// Fichier points at a YAML file mapping themes to keyword phrases.
	// Empty means the built-in lists.
	Fichier string `toml:"fichier"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `toml:"path"`
	// CacheHeures bounds the freshness of cached search results
	CacheHeures int `toml:"cache_heures"`
}

// CacheTTL returns the search cache freshness window
func (d DatabaseConfig) CacheTTL() time.Duration {
	return time.Duration(d.CacheHeures) * time.Hour
}

// Source categories used in the weight table
const (
	SourceSiteOfficiel    = "site_officiel"
	SourcePresseLocale    = "presse_locale"
	SourcePresseNationale = "presse_nationale"
	SourceWebGeneral      = "web_general"
	SourceReseauxSociaux  = "reseaux_sociaux"
)

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Recherche: RechercheConfig{
			MaxResultats: 10,
			PeriodeMois:  12,
			Langue:       "lang_fr",
		},
		Validation: ValidationConfig{
			ExclusionsStrictes: true,
			DomainesExclus: []string{
				"wikipedia.org",
				"wordreference.com",
				"larousse.fr",
				"dictionary.com",
				"reverso.net",
				"linguee.fr",
			},
		},
		Scoring: ScoringConfig{
			PlafondBase:           0.6,
			BonusTitre:            0.25,
			BonusExtrait:          0.1,
			BonusSourceMultiple:   0.15,
			BonusRecence:          0.1,
			SeuilPertinence:       0.25,
			SeuilConfianceHaute:   0.7,
			SeuilConfianceMoyenne: 0.4,
		},
		Sources: SourcesConfig{
			Poids: map[string]float64{
				SourceSiteOfficiel:    1.0,
				SourcePresseLocale:    0.8,
				SourcePresseNationale: 0.6,
				SourceWebGeneral:      0.4,
				SourceReseauxSociaux:  0.3,
			},
			PresseLocale: []string{
				"ouest-france.fr",
				"ledauphine.com",
				"lavoixdunord.fr",
				"estrepublicain.fr",
				"larep.fr",
				"sudouest.fr",
			},
			PresseNationale: []string{
				"lemonde.fr",
				"lefigaro.fr",
				"lesechos.fr",
				"latribune.fr",
				"bfmtv.com",
			},
			ReseauxSociaux: []string{
				"facebook.com",
				"linkedin.com",
				"twitter.com",
				"x.com",
				"instagram.com",
			},
		},
		Database: DatabaseConfig{
			Path:        "~/.local/share/veillepme/veillepme.db",
			CacheHeures: 24,
		},
	}
}
