package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/database"
	"github.com/jcarlier/veillepme/internal/diagnostic"
	"github.com/jcarlier/veillepme/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the diagnostic report of the latest run",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
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

	run, err := db.LatestRun(ctx)
	if err != nil {
		return err
	}
	if run == nil {
		fmt.Println("Aucune exécution enregistrée. Lancer 'veillepme run' d'abord.")
		return nil
	}

	assessments, err := db.ListAssessments(ctx, database.ListOptions{RunID: &run.ID})
	if err != nil {
		return err
	}

	// Rebuild the run statistics from the stored assessments. Rejection
	// counters are not persisted, so they are absent here.
	stats := diagnostic.NewRunStats(run.CompaniesTotal)
	stats.StartedAt = run.StartedAt
	if run.FinishedAt != nil {
		stats.FinishedAt = *run.FinishedAt
	}
	for i := range assessments {
		decoded, err := assessments[i].Decode()
		if err != nil {
			return fmt.Errorf("failed to decode assessment: %w", err)
		}
		stats.RecordAssessment(decoded)
	}
	for n := run.CompaniesTotal - stats.CompaniesProcessed; n > 0; n-- {
		stats.RecordWithoutResults()
	}

	return output.Output(outputFmt, stats)
}
