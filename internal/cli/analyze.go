package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcarlier/veillepme/internal/company"
	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/database"
	"github.com/jcarlier/veillepme/internal/keywords"
	"github.com/jcarlier/veillepme/internal/output"
	"github.com/jcarlier/veillepme/internal/pipeline"
	"github.com/jcarlier/veillepme/internal/search"
)

var (
	analyzeCommune string
	analyzeSite    string
	analyzeOffline bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <nom>",
	Short: "Search and analyze a single company without persisting",
	Long: `Analyze runs the full pipeline for one company given on the command
line and prints the assessment. Nothing is written to the database;
cached search results are still used when fresh.

Examples:
  veillepme analyze "BOULANGERIE MARTIN" --commune Nantes
  veillepme analyze "FNAC" --commune Nantes --site https://fnac.com
  veillepme analyze "FNAC" --commune Nantes -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeCommune, "commune", "", "Commune of the company")
	analyzeCmd.Flags().StringVar(&analyzeSite, "site", "", "Official website, used to classify its results as first-party")
	analyzeCmd.Flags().BoolVar(&analyzeOffline, "offline", false, "Use cached results only, never call the search engine")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	index, err := keywords.Load(cfg.Themes.Fichier)
	if err != nil {
		return fmt.Errorf("failed to load keyword lists: %w", err)
	}

	// The database only serves the search cache here
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var searcher search.Searcher
	if !analyzeOffline {
		searcher, err = search.NewGoogleClient(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize search client: %w", err)
		}
	}

	c := company.Company{
		Nom:     args[0],
		Commune: analyzeCommune,
		SiteWeb: analyzeSite,
	}

	p := pipeline.New(db, searcher, index, cfg)

	result, err := p.Run(ctx, pipeline.RunOptions{
		Companies: []company.Company{c},
		CacheOnly: analyzeOffline,
		NoPersist: true,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	for _, e := range result.Errors {
		fmt.Printf("Avertissement: %v\n", e)
	}

	if len(result.Assessments) == 0 {
		fmt.Printf("Aucun résultat pour %q.\n", c.Nom)
		return nil
	}

	return output.Output(outputFmt, result.Assessments[0])
}
