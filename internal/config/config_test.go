package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Recherche.MaxResultats != 10 {
		t.Errorf("expected MaxResultats=10, got %d", cfg.Recherche.MaxResultats)
	}

	if !cfg.Validation.ExclusionsStrictes {
		t.Error("expected ExclusionsStrictes=true by default")
	}

	if cfg.Scoring.SeuilPertinence != 0.25 {
		t.Errorf("expected SeuilPertinence=0.25, got %v", cfg.Scoring.SeuilPertinence)
	}

	if cfg.Sources.Poids[SourceSiteOfficiel] != 1.0 {
		t.Errorf("expected site_officiel weight 1.0, got %v", cfg.Sources.Poids[SourceSiteOfficiel])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "invalid max_resultats",
			modify: func(c *Config) {
				c.Recherche.MaxResultats = 0
			},
			wantErr: true,
		},
		{
			name: "title bonus not above snippet bonus",
			modify: func(c *Config) {
				c.Scoring.BonusTitre = c.Scoring.BonusExtrait
			},
			wantErr: true,
		},
		{
			name: "source weight out of range",
			modify: func(c *Config) {
				c.Sources.Poids[SourcePresseLocale] = 1.5
			},
			wantErr: true,
		},
		{
			name: "missing web_general fallback weight",
			modify: func(c *Config) {
				delete(c.Sources.Poids, SourceWebGeneral)
			},
			wantErr: true,
		},
		{
			name: "relevance threshold out of range",
			modify: func(c *Config) {
				c.Scoring.SeuilPertinence = 1.2
			},
			wantErr: true,
		},
		{
			name: "empty database path",
			modify: func(c *Config) {
				c.Database.Path = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	content := `
[recherche]
max_resultats = 5
periode_recherche_mois = 6

[validation]
exclusions_strictes = false

[scoring]
seuil_pertinence_minimum = 0.3

[database]
path = "` + filepath.Join(tmpDir, "test.db") + `"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Recherche.MaxResultats != 5 {
		t.Errorf("expected MaxResultats=5, got %d", cfg.Recherche.MaxResultats)
	}
	if cfg.Recherche.PeriodeMois != 6 {
		t.Errorf("expected PeriodeMois=6, got %d", cfg.Recherche.PeriodeMois)
	}
	if cfg.Validation.ExclusionsStrictes {
		t.Error("expected ExclusionsStrictes=false")
	}
	if cfg.Scoring.SeuilPertinence != 0.3 {
		t.Errorf("expected SeuilPertinence=0.3, got %v", cfg.Scoring.SeuilPertinence)
	}

	// Defaults preserved for sections not in the file
	if cfg.Scoring.PlafondBase != 0.6 {
		t.Errorf("expected default PlafondBase=0.6, got %v", cfg.Scoring.PlafondBase)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestPoidsSourceFallback(t *testing.T) {
	cfg := Default()

	if w := cfg.PoidsSource("annuaire"); w != cfg.Sources.Poids[SourceWebGeneral] {
		t.Errorf("expected fallback to web_general weight, got %v", w)
	}
	if w := cfg.PoidsSource(SourceSiteOfficiel); w != 1.0 {
		t.Errorf("expected 1.0 for site_officiel, got %v", w)
	}
}
