package mining

import (
	"context"
	"runtime"
	"sync"

	"github.com/flowlytics/basket-sift/internal/model"
)

// minedItemsets holds every frequent itemset in discovery order (level by
// level, ascending canonical order within a level) plus a support lookup
// keyed by canonical form. Rule generation reads supports from here and
// never recounts.
type minedItemsets struct {
	sets     []model.FrequentItemset
	supports map[string]float64
}

// mineFrequent runs the level-wise Apriori search. Candidates at level k+1
// are generated by joining level-k itemsets that share a (k-1)-prefix, then
// pruned unless every (k-1)-subset is already known frequent, so no
// candidate is ever counted without its immediate subsets being frequent.
// Support counting intersects the shared inverted index and is parallelized
// across workers within a level.
//
// Cancellation is honored between levels and between candidate batches;
// a cancelled run returns ctx.Err() and no partial result.
func (e *Engine) mineFrequent(ctx context.Context, ds *Dataset, ix *invertedIndex) (*minedItemsets, error) {
	total := float64(ix.transactions)
	mined := &minedItemsets{supports: make(map[string]float64)}

	// Level 1: every item is a candidate; its posting list is its count.
	var level []model.Itemset
	for item := 0; item < ds.Vocab.Len(); item++ {
		support := float64(len(ix.postings[item])) / total
		if support >= e.cfg.MinSupport {
			set := model.NewItemset(item)
			level = append(level, set)
			mined.record(set, support)
		}
	}
	e.reportLevel(1, ds.Vocab.Len(), len(level))

	for size := 2; len(level) > 0; size++ {
		if e.cfg.MaxItemsetSize > 0 && size > e.cfg.MaxItemsetSize {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		candidates := e.generateCandidates(level, size)
		if len(candidates) == 0 {
			break
		}

		counts, err := e.countCandidates(ctx, candidates, ix)
		if err != nil {
			return nil, err
		}

		var next []model.Itemset
		for i, cand := range candidates {
			support := float64(counts[i]) / total
			if support >= e.cfg.MinSupport {
				next = append(next, cand)
				mined.record(cand, support)
			}
		}
		e.reportLevel(size, len(candidates), len(next))
		level = next
	}

	return mined, nil
}

// generateCandidates joins level-(k-1) frequent itemsets sharing a common
// (k-2)-item prefix. The previous level is in ascending canonical order, so
// joinable itemsets are adjacent and the output stays in canonical order.
// The prune step drops any candidate with a non-frequent (k-1)-subset.
func (e *Engine) generateCandidates(prev []model.Itemset, size int) []model.Itemset {
	prevKeys := make(map[string]struct{}, len(prev))
	for _, set := range prev {
		prevKeys[set.Key()] = struct{}{}
	}

	var candidates []model.Itemset
	for i := 0; i < len(prev); i++ {
		for j := i + 1; j < len(prev); j++ {
			if !samePrefix(prev[i], prev[j], size-2) {
				break
			}
			cand := make(model.Itemset, size)
			copy(cand, prev[i])
			cand[size-1] = prev[j][size-2]
			if hasFrequentSubsets(cand, prevKeys) {
				candidates = append(candidates, cand)
			}
		}
	}
	return candidates
}

func samePrefix(a, b model.Itemset, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// hasFrequentSubsets checks every immediate subset of cand against the
// previous level. The subsets obtained by dropping either of the last two
// items are the join parents and are frequent by construction.
func hasFrequentSubsets(cand model.Itemset, prevKeys map[string]struct{}) bool {
	subset := make(model.Itemset, len(cand)-1)
	for drop := 0; drop < len(cand)-2; drop++ {
		copy(subset, cand[:drop])
		copy(subset[drop:], cand[drop+1:])
		if _, ok := prevKeys[subset.Key()]; !ok {
			return false
		}
	}
	return true
}

// countCandidates computes support counts for one level. Candidates are
// independent, so they are sharded across workers over the read-only index.
func (e *Engine) countCandidates(ctx context.Context, candidates []model.Itemset, ix *invertedIndex) ([]int, error) {
	workers := e.cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(candidates) {
		workers = len(candidates)
	}

	counts := make([]int, len(candidates))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for i := offset; i < len(candidates); i += workers {
				if ctx.Err() != nil {
					return
				}
				counts[i] = ix.count(candidates[i])
			}
		}(w)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (m *minedItemsets) record(set model.Itemset, support float64) {
	m.sets = append(m.sets, model.FrequentItemset{Items: set, Support: support})
	m.supports[set.Key()] = support
}
