package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/database"
	"github.com/jcarlier/veillepme/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <nom>",
	Short: "Show the latest assessment of a company",
	Long: `Show prints the stored assessment of one company: per-theme scores,
matched keywords and the source URLs behind each detection.

Examples:
  veillepme show "BOULANGERIE MARTIN"
  veillepme show "FNAC" -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
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

	stored, err := db.GetAssessmentByCompany(ctx, args[0])
	if err != nil {
		return err
	}
	if stored == nil {
		fmt.Printf("Aucune évaluation pour %q.\n", args[0])
		return nil
	}

	assessment, err := stored.Decode()
	if err != nil {
		return fmt.Errorf("failed to decode assessment: %w", err)
	}

	return output.Output(outputFmt, assessment)
}
