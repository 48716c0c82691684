package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/jobminer/internal/dedup"
	"github.com/jonathan/jobminer/internal/types"
)

// SaveClusters writes the discovered clusters with their centroids.
// Centroids share the pgvector column type with job embeddings so the
// two can be compared in SQL.
func (db *DB) SaveClusters(ctx context.Context, runID uuid.UUID, clusters []types.Cluster) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin clusters transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	for _, c := range clusters {
		_, err := tx.Exec(ctx,
			`INSERT INTO clusters (run_id, cluster_id, centroid, size)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (run_id, cluster_id) DO UPDATE SET centroid = $3, size = $4`,
			runID, c.ClusterID, embeddingValue(c.Centroid), c.Size(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert cluster %d: %w", c.ClusterID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit clusters transaction: %w", err)
	}
	return nil
}

// SaveKeywords writes the curated keyword dictionary of a run.
func (db *DB) SaveKeywords(ctx context.Context, runID uuid.UUID, keywords []types.Keyword) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin keywords transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	for _, kw := range keywords {
		_, err := tx.Exec(ctx,
			`INSERT INTO keywords (run_id, keyword_id, text, category, source_cluster_id)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (run_id, keyword_id) DO UPDATE
			 SET text = $3, category = $4, source_cluster_id = $5`,
			runID, kw.KeywordID, kw.Text, string(kw.Category), kw.SourceClusterID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert keyword %q: %w", kw.Text, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit keywords transaction: %w", err)
	}
	return nil
}

// SaveDedupAudit records which duplicates were removed, by which pass,
// and which record survived.
func (db *DB) SaveDedupAudit(ctx context.Context, runID uuid.UUID, audit []dedup.AuditEntry) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin audit transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	for _, entry := range audit {
		_, err := tx.Exec(ctx,
			`INSERT INTO dedup_audit (run_id, removed_id, survivor_id, pass)
			 VALUES ($1, $2, $3, $4)`,
			runID, entry.RemovedID, entry.SurvivorID, string(entry.Pass),
		)
		if err != nil {
			return fmt.Errorf("failed to insert audit entry %s: %w", entry.RemovedID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit audit transaction: %w", err)
	}
	return nil
}
