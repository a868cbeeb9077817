// Package mining implements the association-rule mining engine: transaction
// encoding, level-wise frequent-itemset search, rule generation, metric
// computation and deterministic ranking.
package mining

import (
	"fmt"

	"github.com/flowlytics/basket-sift/internal/common"
)

// Config holds the thresholds and options for one mining run.
type Config struct {
	// MinSupport is the minimum fraction of transactions an itemset must
	// appear in to be kept. Must lie in (0, 1].
	MinSupport float64

	// MinConfidence is the minimum confidence for a rule to be emitted.
	// Must lie in [0, 1].
	MinConfidence float64

	// MaxItemsetSize caps the search depth. Zero means unlimited.
	MaxItemsetSize int

	// IncludeSingleItemRules surfaces rules with a one-item antecedent as
	// a separate view in the Report, on top of the full rule list.
	IncludeSingleItemRules bool

	// Workers bounds the goroutines used for support counting within a
	// level. Zero means one worker per CPU.
	Workers int
}

// DefaultConfig returns the default mining configuration.
func DefaultConfig() Config {
	return Config{
		MinSupport:             0.01,
		MinConfidence:          0.3,
		MaxItemsetSize:         0,
		IncludeSingleItemRules: true,
	}
}

// Validate checks all thresholds before any computation is performed.
func (c Config) Validate() error {
	if c.MinSupport <= 0 || c.MinSupport > 1 {
		return fmt.Errorf("%w: min_support %v not in (0, 1]", common.ErrInvalidThreshold, c.MinSupport)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("%w: min_confidence %v not in [0, 1]", common.ErrInvalidThreshold, c.MinConfidence)
	}
	if c.MaxItemsetSize < 0 {
		return fmt.Errorf("%w: max_itemset_size %d is negative", common.ErrInvalidThreshold, c.MaxItemsetSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d is negative", common.ErrInvalidThreshold, c.Workers)
	}
	return nil
}
