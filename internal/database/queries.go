package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jcarlier/veillepme/internal/search"
)

// CreateRun inserts a new run
func (db *DB) CreateRun(ctx context.Context, r *Run) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	r.CreatedAt = time.Now()

	_, err := db.ExecContext(ctx, `
		INSERT INTO runs (
			id, started_at, finished_at, companies_total,
			companies_processed, raw_results, valid_results, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.StartedAt, NullTime(r.FinishedAt), r.CompaniesTotal,
		r.CompaniesProcessed, r.RawResults, r.ValidResults, r.CreatedAt,
	)
	return err
}

// FinishRun records the final counters of a run
func (db *DB) FinishRun(ctx context.Context, r *Run) error {
	now := time.Now()
	r.FinishedAt = &now

	result, err := db.ExecContext(ctx, `
		UPDATE runs SET
			finished_at = ?, companies_processed = ?, raw_results = ?, valid_results = ?
		WHERE id = ?
	`, r.FinishedAt, r.CompaniesProcessed, r.RawResults, r.ValidResults, r.ID)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("run not found: %s", r.ID)
	}
	return nil
}

// GetRun retrieves a run by ID
func (db *DB) GetRun(ctx context.Context, id string) (*Run, error) {
	r := &Run{}
	var finishedAt sql.NullTime

	err := db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, companies_total,
		       companies_processed, raw_results, valid_results, created_at
		FROM runs WHERE id = ?
	`, id).Scan(
		&r.ID, &r.StartedAt, &finishedAt, &r.CompaniesTotal,
		&r.CompaniesProcessed, &r.RawResults, &r.ValidResults, &r.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.FinishedAt = TimePtr(finishedAt)
	return r, nil
}

// LatestRun retrieves the most recently started run
func (db *DB) LatestRun(ctx context.Context) (*Run, error) {
	r := &Run{}
	var finishedAt sql.NullTime

	err := db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, companies_total,
		       companies_processed, raw_results, valid_results, created_at
		FROM runs ORDER BY started_at DESC LIMIT 1
	`).Scan(
		&r.ID, &r.StartedAt, &finishedAt, &r.CompaniesTotal,
		&r.CompaniesProcessed, &r.RawResults, &r.ValidResults, &r.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.FinishedAt = TimePtr(finishedAt)
	return r, nil
}

// SaveAssessment inserts an assessment
func (db *DB) SaveAssessment(ctx context.Context, a *Assessment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.CreatedAt = time.Now()

	_, err := db.ExecContext(ctx, `
		INSERT INTO assessments (
			id, run_id, company, commune, overall_score, confidence,
			detected_themes, themes, raw_results, valid_results, analyzed_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		a.ID, a.RunID, a.Company, NullString(a.Commune), a.OverallScore, a.Confidence,
		a.DetectedThemes, a.Themes, a.RawResults, a.ValidResults, a.AnalyzedAt, a.CreatedAt,
	)
	return err
}

// GetAssessment retrieves an assessment by ID
func (db *DB) GetAssessment(ctx context.Context, id string) (*Assessment, error) {
	return db.scanAssessment(db.QueryRowContext(ctx, `
		SELECT id, run_id, company, commune, overall_score, confidence,
		       detected_themes, themes, raw_results, valid_results, analyzed_at, created_at
		FROM assessments WHERE id = ?
	`, id))
}

// GetAssessmentByCompany retrieves the latest assessment for a company
// name (case-insensitive)
func (db *DB) GetAssessmentByCompany(ctx context.Context, company string) (*Assessment, error) {
	return db.scanAssessment(db.QueryRowContext(ctx, `
		SELECT id, run_id, company, commune, overall_score, confidence,
		       detected_themes, themes, raw_results, valid_results, analyzed_at, created_at
		FROM assessments WHERE LOWER(company) = LOWER(?)
		ORDER BY analyzed_at DESC LIMIT 1
	`, company))
}

func (db *DB) scanAssessment(row *sql.Row) (*Assessment, error) {
	a := &Assessment{}
	var commune sql.NullString

	err := row.Scan(
		&a.ID, &a.RunID, &a.Company, &commune, &a.OverallScore, &a.Confidence,
		&a.DetectedThemes, &a.Themes, &a.RawResults, &a.ValidResults, &a.AnalyzedAt, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.Commune = StringPtr(commune)
	return a, nil
}

// ListAssessments retrieves assessments with optional filters, ordered
// by score descending
func (db *DB) ListAssessments(ctx context.Context, opts ListOptions) ([]Assessment, error) {
	query := `
		SELECT id, run_id, company, commune, overall_score, confidence,
		       detected_themes, themes, raw_results, valid_results, analyzed_at, created_at
		FROM assessments WHERE 1=1
	`
	args := []interface{}{}

	if opts.RunID != nil {
		query += " AND run_id = ?"
		args = append(args, *opts.RunID)
	}
	if opts.Company != nil {
		query += " AND LOWER(company) = LOWER(?)"
		args = append(args, *opts.Company)
	}
	if opts.Theme != nil {
		query += " AND detected_themes LIKE ?"
		args = append(args, fmt.Sprintf("%%%q%%", string(*opts.Theme)))
	}
	if opts.MinScore != nil {
		query += " AND overall_score >= ?"
		args = append(args, *opts.MinScore)
	}

	query += " ORDER BY overall_score DESC, company ASC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []Assessment
	for rows.Next() {
		a := Assessment{}
		var commune sql.NullString

		if err := rows.Scan(
			&a.ID, &a.RunID, &a.Company, &commune, &a.OverallScore, &a.Confidence,
			&a.DetectedThemes, &a.Themes, &a.RawResults, &a.ValidResults, &a.AnalyzedAt, &a.CreatedAt,
		); err != nil {
			return nil, err
		}

		a.Commune = StringPtr(commune)
		assessments = append(assessments, a)
	}
	return assessments, rows.Err()
}

// CacheResults stores raw search results for a query, replacing any
// previously cached entries
func (db *DB) CacheResults(ctx context.Context, query string, results []search.RawResult) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM search_cache WHERE query = ?`, query); err != nil {
			return err
		}
		for _, r := range results {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO search_cache (id, query, url, title, snippet, retrieved_at)
				VALUES (?, ?, ?, ?, ?, ?)
			`, uuid.New().String(), query, r.URL, r.Title, r.Snippet, r.RetrievedAt)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CachedResults returns cached results for a query no older than maxAge.
// The second return is false when the cache has nothing usable.
func (db *DB) CachedResults(ctx context.Context, query string, maxAge time.Duration) ([]search.RawResult, bool, error) {
	cutoff := time.Now().Add(-maxAge)

	rows, err := db.QueryContext(ctx, `
		SELECT url, title, snippet, retrieved_at
		FROM search_cache WHERE query = ? AND retrieved_at >= ?
		ORDER BY retrieved_at DESC
	`, query, cutoff)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var results []search.RawResult
	for rows.Next() {
		var r search.RawResult
		var title, snippet sql.NullString

		if err := rows.Scan(&r.URL, &title, &snippet, &r.RetrievedAt); err != nil {
			return nil, false, err
		}
		r.Title = title.String
		r.Snippet = snippet.String
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	return results, len(results) > 0, nil
}

// PruneCache removes cache entries older than maxAge
func (db *DB) PruneCache(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge)

	result, err := db.ExecContext(ctx, `DELETE FROM search_cache WHERE retrieved_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListRuns retrieves runs, most recent first
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, companies_total,
		       companies_processed, raw_results, valid_results, created_at
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var finishedAt sql.NullTime

		if err := rows.Scan(
			&r.ID, &r.StartedAt, &finishedAt, &r.CompaniesTotal,
			&r.CompaniesProcessed, &r.RawResults, &r.ValidResults, &r.CreatedAt,
		); err != nil {
			return nil, err
		}

		r.FinishedAt = TimePtr(finishedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
