package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/flowlytics/basket-sift/internal/common"
	"github.com/flowlytics/basket-sift/internal/model"
)

// SaveRun persists a completed run atomically: the run row plus its full
// itemset and rule tables.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRun(run); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source_file, generated_at, min_support, min_confidence, transaction_count, item_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Meta.RunID, run.Meta.SourceFile, run.Meta.GeneratedAt,
		run.Meta.MinSupport, run.Meta.MinConfidence,
		run.Report.TransactionCount, run.Report.ItemCount)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, entry := range run.Report.Itemsets {
		items, marshalErr := json.Marshal(entry.Items)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal itemset: %w", marshalErr)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO run_itemsets (run_id, position, items, support) VALUES (?, ?, ?, ?)`,
			run.Meta.RunID, i, string(items), entry.Support); err != nil {
			return fmt.Errorf("failed to insert itemset: %w", err)
		}
	}

	singleRanks := make(map[int]bool, len(run.Report.SingleItemRules))
	for _, rule := range run.Report.SingleItemRules {
		singleRanks[rule.Rank] = true
	}

	for _, rule := range run.Report.Rules {
		antecedent, marshalErr := json.Marshal(rule.Antecedent)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal antecedent: %w", marshalErr)
		}
		consequent, marshalErr := json.Marshal(rule.Consequent)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal consequent: %w", marshalErr)
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO run_rules (run_id, rank, antecedent, consequent, support, confidence, lift, conviction, conviction_defined, single_item)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.Meta.RunID, rule.Rank, string(antecedent), string(consequent),
			rule.Support, rule.Confidence, rule.Lift, rule.Conviction,
			rule.ConvictionDefined, singleRanks[rule.Rank]); err != nil {
			return fmt.Errorf("failed to insert rule: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// GetRun loads one persisted run with its complete report, or
// common.ErrNotFound.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*model.Run, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	run := &model.Run{Report: &model.Report{}}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source_file, generated_at, min_support, min_confidence, transaction_count, item_count
		 FROM runs WHERE id = ?`, id).
		Scan(&run.Meta.RunID, &run.Meta.SourceFile, &run.Meta.GeneratedAt,
			&run.Meta.MinSupport, &run.Meta.MinConfidence,
			&run.Report.TransactionCount, &run.Report.ItemCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: run %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	if err := s.loadItemsets(ctx, run); err != nil {
		return nil, err
	}
	if err := s.loadRules(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *SQLiteStorage) loadItemsets(ctx context.Context, run *model.Run) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT items, support FROM run_itemsets WHERE run_id = ? ORDER BY position`, run.Meta.RunID)
	if err != nil {
		return fmt.Errorf("failed to load itemsets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var itemsJSON string
		var entry model.ItemsetEntry
		if err := rows.Scan(&itemsJSON, &entry.Support); err != nil {
			return fmt.Errorf("failed to scan itemset: %w", err)
		}
		if err := json.Unmarshal([]byte(itemsJSON), &entry.Items); err != nil {
			return fmt.Errorf("failed to unmarshal itemset: %w", err)
		}
		run.Report.Itemsets = append(run.Report.Itemsets, entry)
	}
	return rows.Err()
}

func (s *SQLiteStorage) loadRules(ctx context.Context, run *model.Run) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT rank, antecedent, consequent, support, confidence, lift, conviction, conviction_defined, single_item
		 FROM run_rules WHERE run_id = ? ORDER BY rank`, run.Meta.RunID)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var entry model.RuleEntry
		var antecedentJSON, consequentJSON string
		var singleItem bool
		if err := rows.Scan(&entry.Rank, &antecedentJSON, &consequentJSON,
			&entry.Support, &entry.Confidence, &entry.Lift,
			&entry.Conviction, &entry.ConvictionDefined, &singleItem); err != nil {
			return fmt.Errorf("failed to scan rule: %w", err)
		}
		if err := json.Unmarshal([]byte(antecedentJSON), &entry.Antecedent); err != nil {
			return fmt.Errorf("failed to unmarshal antecedent: %w", err)
		}
		if err := json.Unmarshal([]byte(consequentJSON), &entry.Consequent); err != nil {
			return fmt.Errorf("failed to unmarshal consequent: %w", err)
		}

		run.Report.Rules = append(run.Report.Rules, entry)
		if singleItem {
			run.Report.SingleItemRules = append(run.Report.SingleItemRules, entry)
		}
	}
	return rows.Err()
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// lists everything.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.source_file, r.generated_at, r.min_support, r.min_confidence,
		        r.transaction_count, r.item_count,
		        (SELECT COUNT(*) FROM run_itemsets i WHERE i.run_id = r.id),
		        (SELECT COUNT(*) FROM run_rules u WHERE u.run_id = r.id)
		 FROM runs r ORDER BY r.generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []model.RunSummary
	for rows.Next() {
		var sum model.RunSummary
		if err := rows.Scan(&sum.Meta.RunID, &sum.Meta.SourceFile, &sum.Meta.GeneratedAt,
			&sum.Meta.MinSupport, &sum.Meta.MinConfidence,
			&sum.TransactionCount, &sum.ItemCount,
			&sum.ItemsetCount, &sum.RuleCount); err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}
