package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s (run 'veillepme config init' to create)", expandedPath)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

// expandPaths expands ~ in all path fields
func (c *Config) expandPaths() error {
	var err error

	c.Database.Path, err = expandPath(c.Database.Path)
	if err != nil {
		return err
	}

	c.Themes.Fichier, err = expandPath(c.Themes.Fichier)
	if err != nil {
		return err
	}

	return nil
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Recherche.MaxResultats < 1 || c.Recherche.MaxResultats > 100 {
		errs = append(errs, errors.New("recherche.max_resultats must be between 1 and 100"))
	}
	if c.Recherche.PeriodeMois < 1 {
		errs = append(errs, errors.New("recherche.periode_recherche_mois must be at least 1"))
	}

	if c.Scoring.PlafondBase <= 0 || c.Scoring.PlafondBase > 1 {
		errs = append(errs, errors.New("scoring.plafond_base must be in (0,1]"))
	}
	if c.Scoring.BonusTitre <= c.Scoring.BonusExtrait {
		errs = append(errs, errors.New("scoring.bonus_titre must be greater than scoring.bonus_extrait"))
	}
	for name, v := range map[string]float64{
		"scoring.bonus_titre":           c.Scoring.BonusTitre,
		"scoring.bonus_extrait":         c.Scoring.BonusExtrait,
		"scoring.bonus_source_multiple": c.Scoring.BonusSourceMultiple,
		"scoring.bonus_recence":         c.Scoring.BonusRecence,
	} {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0,1]", name))
		}
	}
	if c.Scoring.SeuilPertinence <= 0 || c.Scoring.SeuilPertinence >= 1 {
		errs = append(errs, errors.New("scoring.seuil_pertinence_minimum must be in (0,1)"))
	}
	if c.Scoring.SeuilConfianceHaute <= c.Scoring.SeuilConfianceMoyenne {
		errs = append(errs, errors.New("scoring.seuil_confiance_haute must be greater than scoring.seuil_confiance_moyenne"))
	}

	if len(c.Sources.Poids) == 0 {
		errs = append(errs, errors.New("sources.poids table is required"))
	}
	for categorie, poids := range c.Sources.Poids {
		if poids < 0 || poids > 1 {
			errs = append(errs, fmt.Errorf("sources.poids[%s] must be in [0,1]", categorie))
		}
	}
	if _, ok := c.Sources.Poids[SourceWebGeneral]; !ok {
		errs = append(errs, errors.New("sources.poids must define web_general (fallback category)"))
	}

	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// APIKey returns the configured search API key, falling back to the environment
func (c *Config) APIKey() string {
	if c.Recherche.CleAPI != "" {
		return c.Recherche.CleAPI
	}
	return os.Getenv("GOOGLE_API_KEY")
}

// PoidsSource returns the trust weight for a source category,
// falling back to the web_general weight for unknown categories
func (c *Config) PoidsSource(categorie string) float64 {
	if poids, ok := c.Sources.Poids[categorie]; ok {
		return poids
	}
	return c.Sources.Poids[SourceWebGeneral]
}

// EnsureDirectories creates necessary directories for the database
func (c *Config) EnsureDirectories() error {
	dir := filepath.Dir(c.Database.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
