package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// expectedSchemaVersion is the latest schema version the application
// expects after Migrate runs.
const expectedSchemaVersion = 1

type migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []migration{
	{
		Version:     1,
		Description: "Initial run-history schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS runs (
					id TEXT PRIMARY KEY,
					source_file TEXT NOT NULL,
					generated_at DATETIME NOT NULL,
					min_support REAL NOT NULL,
					min_confidence REAL NOT NULL,
					transaction_count INTEGER NOT NULL,
					item_count INTEGER NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX IF NOT EXISTS idx_runs_generated ON runs(generated_at)`,

				`CREATE TABLE IF NOT EXISTS run_itemsets (
					run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
					position INTEGER NOT NULL,
					items TEXT NOT NULL,
					support REAL NOT NULL,
					PRIMARY KEY (run_id, position)
				)`,

				`CREATE TABLE IF NOT EXISTS run_rules (
					run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
					rank INTEGER NOT NULL,
					antecedent TEXT NOT NULL,
					consequent TEXT NOT NULL,
					support REAL NOT NULL,
					confidence REAL NOT NULL,
					lift REAL NOT NULL,
					conviction REAL NOT NULL,
					conviction_defined INTEGER NOT NULL,
					single_item INTEGER NOT NULL DEFAULT 0,
					PRIMARY KEY (run_id, rank)
				)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return fmt.Errorf("failed to execute migration query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if current.Valid && m.Version <= int(current.Int64) {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration transaction: %w", err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Info("applied migration", "version", m.Version, "description", m.Description)
	}

	return nil
}
