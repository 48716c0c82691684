package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/jonathan/jobminer/internal/types"
)

// SaveJobs writes the final job records and their keyword join rows in
// one transaction, so a failed batch leaves no partial run output.
// Embeddings are stored as pgvector columns; records without one get
// NULL.
func (db *DB) SaveJobs(ctx context.Context, runID uuid.UUID, records []types.JobRecord, joins []types.JobKeyword) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin jobs transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	for _, rec := range records {
		_, err := tx.Exec(ctx,
			`INSERT INTO jobs (id, run_id, title, company, location, city, state, country,
			                   salary_min, salary_max, salary_avg, currency, employment_type,
			                   description, posted_date, source_tags, career_level, is_ambiguous,
			                   missing_title, cluster_id, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`,
			rec.JobID, runID, rec.Title, rec.Company, rec.Location, rec.City, rec.State, rec.Country,
			rec.SalaryMin, rec.SalaryMax, rec.SalaryAvg, rec.Currency, rec.EmploymentType,
			rec.Description, rec.PostedDate, rec.SourceTags, string(rec.CareerLevel), rec.IsAmbiguous,
			rec.MissingTitle, rec.ClusterID, embeddingValue(rec.Embedding),
		)
		if err != nil {
			return fmt.Errorf("failed to insert job %s: %w", rec.JobID, err)
		}
	}

	for _, join := range joins {
		_, err := tx.Exec(ctx,
			`INSERT INTO job_keywords (job_id, keyword_id, relevance_score)
			 VALUES ($1, $2, $3)`,
			join.JobID, join.KeywordID, join.RelevanceScore,
		)
		if err != nil {
			return fmt.Errorf("failed to insert job keyword %s/%d: %w", join.JobID, join.KeywordID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit jobs transaction: %w", err)
	}
	return nil
}

// CountJobs returns the number of stored jobs for a run
func (db *DB) CountJobs(ctx context.Context, runID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE run_id = $1`, runID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// SimilarJobs returns the IDs of the jobs whose embeddings are nearest
// to the given vector, closest first.
func (db *DB) SimilarJobs(ctx context.Context, runID uuid.UUID, embedding []float64, limit int) ([]string, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id FROM jobs
		 WHERE run_id = $1 AND embedding IS NOT NULL
		 ORDER BY embedding <=> $2
		 LIMIT $3`,
		runID, embeddingValue(embedding), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar jobs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan job id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// embeddingValue converts a vector for the pgvector column, mapping an
// absent embedding to NULL.
func embeddingValue(embedding []float64) any {
	if len(embedding) == 0 {
		return nil
	}
	values := make([]float32, len(embedding))
	for i, v := range embedding {
		values[i] = float32(v)
	}
	return pgvector.NewVector(values)
}
