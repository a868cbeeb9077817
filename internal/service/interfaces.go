// Package service defines the contracts the CLI composes on: run
// persistence, report export and raw-pair input.
package service

import (
	"context"

	"github.com/flowlytics/basket-sift/internal/model"
)

// Storage is the run-history persistence layer. The mining core never
// touches it; runs are saved and read strictly outside the pipeline.
type Storage interface {
	SaveRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error)
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter renders a finished Report into one downloadable artifact.
type ReportWriter interface {
	Write(ctx context.Context, report *model.Report, meta model.RunMeta) error
}

// PairSource supplies the raw (transaction-key, item-label) pairs for one
// mining run, already extracted from whatever source format was provided.
type PairSource interface {
	Pairs(ctx context.Context) ([]model.Pair, error)
}
