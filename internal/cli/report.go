package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcarlier/veillepme/internal/analyze"
	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/database"
	"github.com/jcarlier/veillepme/internal/output"
)

var reportOut string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the HTML report of the latest run",
	Long: `Report renders the assessments of the latest run as a standalone
HTML page: global statistics, a synthesis per theme and the detailed
company table.

Examples:
  veillepme report
  veillepme report --out rapport_veille.html`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportOut, "out", "rapport_veille.html", "Output file")
}

func runReport(cmd *cobra.Command, args []string) error {
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

	stored, err := db.ListAssessments(ctx, database.ListOptions{RunID: &run.ID})
	if err != nil {
		return err
	}

	assessments := make([]*analyze.CompanyAssessment, 0, len(stored))
	for i := range stored {
		decoded, err := stored[i].Decode()
		if err != nil {
			return fmt.Errorf("failed to decode assessment: %w", err)
		}
		assessments = append(assessments, decoded)
	}

	f, err := os.Create(reportOut)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := output.HTMLReport(f, assessments); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	fmt.Printf("Rapport écrit dans %s (%d entreprises).\n", reportOut, len(assessments))
	return nil
}
