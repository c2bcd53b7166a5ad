package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Analysis kinds
const (
	KindCaption   = "caption"
	KindScreening = "screening"
	KindInsight   = "insight"
)

// Analysis statuses
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Artifact names
const (
	ArtifactRequest = "request"
	ArtifactResult  = "result"
)

// Analysis represents a single caption, screening or insight run
type Analysis struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	Kind        string     `json:"kind"`
	Label       string     `json:"label,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CreateAnalysis creates a new analysis record in running status and returns its ID
func (db *DB) CreateAnalysis(ctx context.Context, userID *uuid.UUID, kind, label string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO analyses (user_id, kind, label, status)
		 VALUES ($1, $2, $3, 'running')
		 RETURNING id`,
		userID, kind, label,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create analysis: %w", err)
	}
	return id, nil
}

// CompleteAnalysis marks an analysis as completed or failed
func (db *DB) CompleteAnalysis(ctx context.Context, analysisID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE analyses SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, analysisID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete analysis: %w", err)
	}
	return nil
}

// SaveArtifact stores a JSON artifact for an analysis
func (db *DB) SaveArtifact(ctx context.Context, analysisID uuid.UUID, name string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO analysis_artifacts (analysis_id, name, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (analysis_id, name) DO UPDATE SET content = $3, created_at = NOW()`,
		analysisID, name, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", name, err)
	}
	return nil
}

// GetArtifact retrieves a JSON artifact by analysis ID and name
func (db *DB) GetArtifact(ctx context.Context, analysisID uuid.UUID, name string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM analysis_artifacts WHERE analysis_id = $1 AND name = $2`,
		analysisID, name,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", name, err)
	}
	return content, nil
}

// GetAnalysis retrieves an analysis by ID
func (db *DB) GetAnalysis(ctx context.Context, analysisID uuid.UUID) (*Analysis, error) {
	var a Analysis
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, kind, COALESCE(label, ''), status, created_at, completed_at
		 FROM analyses WHERE id = $1`,
		analysisID,
	).Scan(&a.ID, &a.UserID, &a.Kind, &a.Label, &a.Status, &a.CreatedAt, &a.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return &a, nil
}

// AnalysisFilters holds optional filters for listing analyses
type AnalysisFilters struct {
	UserID uuid.UUID
	Kind   string
	Status string
	Limit  int
}

// ListAnalyses retrieves recent analyses with optional filters
func (db *DB) ListAnalyses(ctx context.Context, filters AnalysisFilters) ([]Analysis, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, user_id, kind, COALESCE(label, ''), status, created_at, completed_at
		FROM analyses WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.UserID != uuid.Nil {
		query += fmt.Sprintf(" AND user_id = $%d", argNum)
		args = append(args, filters.UserID)
		argNum++
	}
	if filters.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", argNum)
		args = append(args, filters.Kind)
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.UserID, &a.Kind, &a.Label, &a.Status, &a.CreatedAt, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, nil
}

// DeleteAnalysis deletes an analysis and all its artifacts (via cascade)
func (db *DB) DeleteAnalysis(ctx context.Context, analysisID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, analysisID)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("analysis not found: %s", analysisID)
	}
	return nil
}
