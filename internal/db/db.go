// Package db provides PostgreSQL storage for profile snapshots and generation history.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// DefaultListLimit is used when a list call passes a non-positive limit.
const DefaultListLimit = 50

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the tables this package uses if they do not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// SaveProfileSnapshot stores an exported profile document and returns its ID.
func (db *DB) SaveProfileSnapshot(ctx context.Context, name string, document []byte) (uuid.UUID, error) {
	if !json.Valid(document) {
		return uuid.Nil, fmt.Errorf("snapshot for %q is not valid JSON", name)
	}

	id := uuid.New()
	_, err := db.pool.Exec(ctx,
		`INSERT INTO profile_snapshots (id, full_name, document)
		 VALUES ($1, $2, $3)`,
		id, name, document,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save profile snapshot: %w", err)
	}
	return id, nil
}

// GetProfileSnapshot retrieves a snapshot by ID. It returns nil, nil when
// no snapshot has that ID.
func (db *DB) GetProfileSnapshot(ctx context.Context, id uuid.UUID) (*ProfileSnapshot, error) {
	var s ProfileSnapshot
	err := db.pool.QueryRow(ctx,
		`SELECT id, full_name, document, created_at
		 FROM profile_snapshots WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.FullName, &s.Document, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile snapshot: %w", err)
	}
	return &s, nil
}

// ListProfileSnapshots returns the most recent snapshots without their documents.
func (db *DB) ListProfileSnapshots(ctx context.Context, limit int) ([]ProfileSnapshot, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, full_name, created_at
		 FROM profile_snapshots ORDER BY created_at DESC LIMIT $1`,
		listLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profile snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []ProfileSnapshot
	for rows.Next() {
		var s ProfileSnapshot
		if err := rows.Scan(&s.ID, &s.FullName, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

// DeleteProfileSnapshot removes a snapshot. Generation records that reference
// it keep their row with a null snapshot ID.
func (db *DB) DeleteProfileSnapshot(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM profile_snapshots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile snapshot: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile snapshot not found: %s", id)
	}
	return nil
}

// RecordGeneration stores the outcome of one document generation.
func (db *DB) RecordGeneration(ctx context.Context, rec GenerationRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Status == "" {
		rec.Status = statusFor(rec.Error)
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO generations (id, request_id, snapshot_id, full_name, template, output_path, status, error, size_bytes, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.RequestID, nullableUUID(rec.SnapshotID), rec.ProfileName, rec.Template,
		rec.OutputPath, rec.Status, rec.Error, rec.SizeBytes, rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// ListGenerations returns recent generation records, optionally filtered.
func (db *DB) ListGenerations(ctx context.Context, filters GenerationFilters) ([]GenerationRecord, error) {
	query := `SELECT id, request_id, snapshot_id, full_name, template, output_path, status, error, size_bytes, duration_ms, created_at
		FROM generations WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.ProfileName != "" {
		query += fmt.Sprintf(" AND full_name ILIKE $%d", argNum)
		args = append(args, "%"+filters.ProfileName+"%")
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, listLimit(filters.Limit))

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var records []GenerationRecord
	for rows.Next() {
		var r GenerationRecord
		var snapshotID *uuid.UUID
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.RequestID, &snapshotID, &r.ProfileName, &r.Template,
			&r.OutputPath, &r.Status, &r.Error, &r.SizeBytes, &durationMS, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		if snapshotID != nil {
			r.SnapshotID = *snapshotID
		}
		r.Duration = msDuration(durationMS)
		records = append(records, r)
	}
	return records, rows.Err()
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

func nullableUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

func statusFor(errText string) string {
	if errText != "" {
		return StatusFailed
	}
	return StatusSucceeded
}
