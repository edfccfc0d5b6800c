package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/database"
	"github.com/jcarlier/veillepme/internal/output"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List past runs, most recent first",
	RunE:  runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs")
}

func runRuns(cmd *cobra.Command, args []string) error {
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

	runs, err := db.ListRuns(ctx, runsLimit)
	if err != nil {
		return err
	}

	return output.Output(outputFmt, runs)
}
