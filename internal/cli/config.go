package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(home, ".config", "veillepme")
	dataDir := filepath.Join(home, ".local", "share", "veillepme")

	// Create directories
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	configFile := filepath.Join(configDir, "config.toml")

	// Check if config already exists
	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Config file already exists at %s\n", configFile)
		fmt.Println("Use 'veillepme config show' to view current configuration")
		return nil
	}

	// Write default config
	if err := os.WriteFile(configFile, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Created config file at %s\n", configFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Create a Google Custom Search engine (cx) restricted to the web")
	fmt.Println("  2. Export GOOGLE_API_KEY or set cle_api in the config file")
	fmt.Println("  3. Run 'veillepme run --companies entreprises.csv'")

	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No config file found. Run 'veillepme config init' to create one.")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	fmt.Printf("# Config file: %s\n\n", configPath)
	fmt.Println(string(data))
	return nil
}

const defaultConfig = `# Configuration veillepme
# Les valeurs absentes reprennent les réglages par défaut.

[recherche]
# Clé API Google Custom Search; la variable GOOGLE_API_KEY prime.
cle_api = ""
# Identifiant du moteur de recherche personnalisé.
cx = ""
max_resultats = 10
periode_recherche_mois = 12
langue = "lang_fr"

[validation]
# exclusion des résultats sans mention du nom ni de la commune
exclusions_strictes = true
# domaines_exclus remplace la liste par défaut (dictionnaires, encyclopédies...)
# domaines_exclus = ["wikipedia.org", "larousse.fr"]

[scoring]
plafond_base = 0.6
bonus_titre = 0.25
bonus_extrait = 0.1
bonus_source_multiple = 0.15
bonus_recence = 0.1
seuil_pertinence_minimum = 0.25
seuil_confiance_haute = 0.7
seuil_confiance_moyenne = 0.4

[themes]
# fichier YAML de mots-clés; vide = listes intégrées
fichier = ""

[database]
path = "~/.local/share/veillepme/veillepme.db"
cache_heures = 24
`
