package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/database"
	"github.com/jcarlier/veillepme/internal/keywords"
	"github.com/jcarlier/veillepme/internal/output"
)

var (
	listTheme    string
	listMinScore float64
	listLimit    int
	listAllRuns  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List assessed companies, highest scores first",
	Long: `List shows the stored assessments of the latest run.

Examples:
  veillepme list
  veillepme list --theme recrutements
  veillepme list --min-score 0.4 --limit 10
  veillepme list --all-runs -o json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listTheme, "theme", "", "Only companies where this theme was detected")
	listCmd.Flags().Float64Var(&listMinScore, "min-score", 0, "Minimum overall score")
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "Maximum number of companies")
	listCmd.Flags().BoolVar(&listAllRuns, "all-runs", false, "Search across every run, not just the latest")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	opts := database.ListOptions{Limit: listLimit}

	if !listAllRuns {
		run, err := db.LatestRun(ctx)
		if err != nil {
			return err
		}
		if run == nil {
			fmt.Println("Aucune exécution enregistrée. Lancer 'veillepme run' d'abord.")
			return nil
		}
		opts.RunID = &run.ID
	}

	if listTheme != "" {
		theme := keywords.Theme(listTheme)
		if !theme.Valid() {
			return fmt.Errorf("unknown theme %q (expected one of %v)", listTheme, keywords.AllThemes())
		}
		opts.Theme = &theme
	}
	if listMinScore > 0 {
		opts.MinScore = &listMinScore
	}

	assessments, err := db.ListAssessments(ctx, opts)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, assessments)
}
