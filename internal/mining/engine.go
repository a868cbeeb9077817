package mining

import (
	"context"
	"log/slog"

	"github.com/flowlytics/basket-sift/internal/model"
)

// ProgressFunc receives one callback per completed search level: the level
// (itemset size), how many candidates were counted, and how many survived.
type ProgressFunc func(level, candidates, frequent int)

// Engine runs the full mining pipeline: encode → mine → generate rules →
// score → rank. An Engine is stateless between runs; every Mine call
// recomputes everything from its inputs.
type Engine struct {
	cfg      Config
	progress ProgressFunc
}

// New creates a mining engine. The configuration is validated on Mine, not
// here, so a zero-value threshold surfaces as ErrInvalidThreshold at run
// time with no partial computation.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// NewWithProgress creates a mining engine that reports per-level progress.
func NewWithProgress(cfg Config, progress ProgressFunc) *Engine {
	return &Engine{cfg: cfg, progress: progress}
}

// Mine executes one complete run over the raw pairs and returns the ranked
// Report. It returns ErrInvalidThreshold or ErrEmptyInput for bad inputs and
// ctx.Err() when cancelled between levels; it never returns a partial
// Report alongside an error.
func (e *Engine) Mine(ctx context.Context, pairs []model.Pair) (*model.Report, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	ds, err := Encode(pairs)
	if err != nil {
		return nil, err
	}

	slog.Info("encoded transactions",
		"transactions", len(ds.Transactions),
		"items", ds.Vocab.Len())

	ix := buildIndex(ds)

	mined, err := e.mineFrequent(ctx, ds, ix)
	if err != nil {
		return nil, err
	}

	rules := e.generateRules(mined)

	slog.Info("mining complete",
		"frequent_itemsets", len(mined.sets),
		"rules", len(rules))

	return e.assembleReport(ds, mined, rules), nil
}

func (e *Engine) reportLevel(level, candidates, frequent int) {
	slog.Debug("level complete",
		"level", level,
		"candidates", candidates,
		"frequent", frequent)
	if e.progress != nil {
		e.progress(level, candidates, frequent)
	}
}
