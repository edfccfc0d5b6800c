package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcarlier/veillepme/internal/company"
	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/database"
	"github.com/jcarlier/veillepme/internal/keywords"
	"github.com/jcarlier/veillepme/internal/pipeline"
	"github.com/jcarlier/veillepme/internal/search"
)

var (
	runCompaniesFile string
	runLimit         int
	runNoCache       bool
	runOffline       bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Search and analyze every company of a CSV list",
	Long: `Run searches the web for each company, validates the results and
scores them against the thematic keyword lists. Assessments are stored
in the local database.

The GOOGLE_API_KEY environment variable (or cle_api in the config file)
must hold a Google Custom Search API key.

Examples:
  veillepme run --companies entreprises.csv
  veillepme run --companies entreprises.csv --limit 10
  veillepme run --companies entreprises.csv --offline   # cached results only`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runCompaniesFile, "companies", "", "CSV file of companies to analyze (required)")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "Only process the first N companies")
	runCmd.Flags().BoolVar(&runNoCache, "no-cache", false, "Bypass the search cache")
	runCmd.Flags().BoolVar(&runOffline, "offline", false, "Use cached results only, never call the search engine")
	runCmd.MarkFlagRequired("companies")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	companies, err := company.LoadCSV(runCompaniesFile)
	if err != nil {
		return fmt.Errorf("failed to load companies: %w", err)
	}
	if runLimit > 0 && runLimit < len(companies) {
		companies = companies[:runLimit]
	}
	if len(companies) == 0 {
		return fmt.Errorf("no companies found in %s", runCompaniesFile)
	}

	index, err := keywords.Load(cfg.Themes.Fichier)
	if err != nil {
		return fmt.Errorf("failed to load keyword lists: %w", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var searcher search.Searcher
	if !runOffline {
		searcher, err = search.NewGoogleClient(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize search client: %w", err)
		}
	}

	p := pipeline.New(db, searcher, index, cfg)

	fmt.Printf("Analyse de %d entreprise(s)...\n\n", len(companies))

	opts := pipeline.RunOptions{
		Companies: companies,
		NoCache:   runNoCache,
		CacheOnly: runOffline,
		Progress:  progressPrinter(),
	}

	result, err := p.Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	terminal := NewTerminal()
	terminal.ClearLine()

	fmt.Println()
	fmt.Print(result.Stats.Summary())

	if len(result.Errors) > 0 {
		fmt.Println()
		fmt.Printf("Avertissements: %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %v\n", e)
		}
	}

	if result.Run != nil {
		fmt.Println()
		fmt.Printf("Exécution %s enregistrée. Voir 'veillepme list' ou 'veillepme report'.\n", result.Run.ID[:8])
	}

	return nil
}

// progressPrinter renders pipeline progress on the terminal
func progressPrinter() pipeline.ProgressCallback {
	terminal := NewTerminal()
	var lastPhase pipeline.ProgressPhase
	var phaseStartTime time.Time

	return func(p pipeline.Progress) {
		if p.Phase != lastPhase {
			phaseStartTime = time.Now()
		}
		p.StartedAt = phaseStartTime

		terminal.ClearLine()

		var msg string
		var eta string
		if etaDur := p.ETA(); etaDur > 0 {
			eta = fmt.Sprintf(" (ETA: %s)", FormatETA(etaDur))
		}

		switch p.Phase {
		case pipeline.PhaseSearching:
			msg = fmt.Sprintf("Recherche %d/%d: %s%s", p.Current+1, p.Total, p.Company, eta)
		case pipeline.PhaseSaving:
			msg = fmt.Sprintf("Enregistrement %d/%d: %s", p.Current+1, p.Total, p.Company)
		default:
			msg = fmt.Sprintf("%s %d/%d", p.Phase, p.Current, p.Total)
		}

		if terminal.UseColor {
			msg = terminal.Color(PhaseColor(string(p.Phase)), msg)
		}

		if terminal.IsTerminal {
			fmt.Print(msg)
			terminal.Flush()
		} else if p.Phase != lastPhase || p.Phase == pipeline.PhaseSearching {
			fmt.Println(msg)
		}
		lastPhase = p.Phase
	}
}
