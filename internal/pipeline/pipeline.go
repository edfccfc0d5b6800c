package pipeline

import (
	"context"
	"fmt"

	"github.com/jcarlier/veillepme/internal/analyze"
	"github.com/jcarlier/veillepme/internal/company"
	"github.com/jcarlier/veillepme/internal/config"
	"github.com/jcarlier/veillepme/internal/database"
	"github.com/jcarlier/veillepme/internal/diagnostic"
	"github.com/jcarlier/veillepme/internal/keywords"
	"github.com/jcarlier/veillepme/internal/search"
)

// Pipeline orchestrates search, validation, scoring and aggregation
// over a company list
type Pipeline struct {
	db         *database.DB
	searcher   search.Searcher
	validator  *analyze.Validator
	scorer     *analyze.Scorer
	aggregator *analyze.Aggregator
	config     *config.Config
}

// New creates a new Pipeline. db may be nil to run without persistence
// or caching.
func New(db *database.DB, searcher search.Searcher, index *keywords.Index, cfg *config.Config) *Pipeline {
	return &Pipeline{
		db:         db,
		searcher:   searcher,
		validator:  analyze.NewValidator(cfg),
		scorer:     analyze.NewScorer(cfg.Scoring, index),
		aggregator: analyze.NewAggregator(cfg.Scoring),
		config:     cfg,
	}
}

// RunOptions configures a run
type RunOptions struct {
	Companies []company.Company
	CacheOnly bool             // Use cached results only, never call the search engine
	NoCache   bool             // Bypass the cache entirely
	NoPersist bool             // Keep the run and its assessments out of the database
	Progress  ProgressCallback // Optional progress callback
}

// RunResult contains the outcome of a run
type RunResult struct {
	Run         *database.Run
	Assessments []*analyze.CompanyAssessment
	Stats       *diagnostic.RunStats
	Errors      []error
}

// Run processes every company and returns the aggregated assessments.
// Search failures and rejected results are collected, not fatal: a
// company whose searches all fail is reported without results.
func (p *Pipeline) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	result := &RunResult{
		Stats: diagnostic.NewRunStats(len(opts.Companies)),
	}

	report := func(phase ProgressPhase, name string, current, total int, desc string) {
		if opts.Progress != nil {
			opts.Progress(Progress{
				Phase:       phase,
				Company:     name,
				Current:     current,
				Total:       total,
				Description: desc,
			})
		}
	}

	persist := p.db != nil && !opts.NoPersist
	if persist {
		result.Run = &database.Run{CompaniesTotal: len(opts.Companies)}
		if err := p.db.CreateRun(ctx, result.Run); err != nil {
			return nil, fmt.Errorf("failed to create run: %w", err)
		}
	}

	for i, c := range opts.Companies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report(PhaseSearching, c.Nom, i, len(opts.Companies), "Recherche en cours")

		assessment, err := p.processCompany(ctx, c, opts, result.Stats)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", c.Nom, err))
		}
		if assessment == nil {
			result.Stats.RecordWithoutResults()
			continue
		}

		result.Stats.RecordAssessment(assessment)
		result.Assessments = append(result.Assessments, assessment)

		if persist {
			report(PhaseSaving, c.Nom, i, len(opts.Companies), "Enregistrement")
			stored, err := database.NewAssessment(result.Run.ID, assessment)
			if err == nil {
				err = p.db.SaveAssessment(ctx, stored)
			}
			if err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("%s: failed to save assessment: %w", c.Nom, err))
			}
		}
	}

	result.Stats.Finish()

	if persist {
		result.Run.CompaniesProcessed = result.Stats.CompaniesProcessed
		result.Run.RawResults = result.Stats.RawResults
		result.Run.ValidResults = result.Stats.ValidResults
		if err := p.db.FinishRun(ctx, result.Run); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to finish run: %w", err))
		}
	}

	return result, nil
}

// processCompany runs the search and analysis for one company. A nil
// assessment means the company produced no raw results.
func (p *Pipeline) processCompany(ctx context.Context, c company.Company, opts RunOptions, stats *diagnostic.RunStats) (*analyze.CompanyAssessment, error) {
	if !c.Searchable() {
		return nil, fmt.Errorf("nom non exploitable: %q", c.Nom)
	}

	var raw []search.RawResult
	var searchErr error

	for _, query := range search.BuildQueries(c) {
		results, err := p.fetch(ctx, query, opts)
		if err != nil {
			// Keep the first failure, carry on with the remaining queries
			if searchErr == nil {
				searchErr = err
			}
			continue
		}
		raw = append(raw, results...)
	}

	raw = search.Dedupe(raw)
	if len(raw) == 0 {
		return nil, searchErr
	}

	var scored []analyze.ScoredResult
	for _, r := range raw {
		validated, verdict := p.validator.Validate(r, c)
		if !verdict.Accepted {
			stats.RecordRejection(verdict.Reason)
			continue
		}
		scored = append(scored, analyze.ScoredResult{
			Result: validated,
			Scores: p.scorer.Score(validated),
		})
	}

	return p.aggregator.Aggregate(c, len(raw), scored), searchErr
}

// fetch returns results for one query, from the cache when fresh
// enough, otherwise from the search engine
func (p *Pipeline) fetch(ctx context.Context, query string, opts RunOptions) ([]search.RawResult, error) {
	useCache := p.db != nil && !opts.NoCache

	if useCache {
		cached, ok, err := p.db.CachedResults(ctx, query, p.config.Database.CacheTTL())
		if err != nil {
			return nil, fmt.Errorf("cache lookup failed: %w", err)
		}
		if ok {
			return cached, nil
		}
	}

	if opts.CacheOnly {
		return nil, nil
	}

	results, err := p.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if useCache && len(results) > 0 {
		if err := p.db.CacheResults(ctx, query, results); err != nil {
			return nil, fmt.Errorf("cache store failed: %w", err)
		}
	}

	return results, nil
}
