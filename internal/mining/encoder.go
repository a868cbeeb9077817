package mining

import (
	"sort"
	"strings"

	"github.com/flowlytics/basket-sift/internal/common"
	"github.com/flowlytics/basket-sift/internal/model"
)

// Vocabulary is the immutable item-label ↔ index mapping built by the
// encoder. Indices are dense and assigned in first-seen order.
type Vocabulary struct {
	labels []string
	index  map[string]int
}

// Len returns the number of distinct items.
func (v *Vocabulary) Len() int { return len(v.labels) }

// Label returns the original label for an item index.
func (v *Vocabulary) Label(item int) string { return v.labels[item] }

// Labels resolves a canonical itemset to its labels, in canonical order.
func (v *Vocabulary) Labels(items model.Itemset) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = v.labels[item]
	}
	return out
}

func (v *Vocabulary) intern(label string) int {
	if id, ok := v.index[label]; ok {
		return id
	}
	id := len(v.labels)
	v.labels = append(v.labels, label)
	v.index[label] = id
	return id
}

// Dataset is the canonical encoded transaction set: one sorted, deduplicated
// item-index slice per transaction, plus the vocabulary. Downstream stages
// treat both as read-only.
type Dataset struct {
	Vocab        *Vocabulary
	Transactions [][]int
}

// Encode converts raw (transaction-key, item-label) pairs into a Dataset.
// Pairs with a blank key or label are skipped rather than failing the run;
// duplicate items within a transaction collapse to one occurrence.
// Transactions are ordered by first appearance of their key, items within a
// transaction sorted ascending by index.
//
// Returns ErrEmptyInput when no valid transaction or item survives filtering.
func Encode(pairs []model.Pair) (*Dataset, error) {
	vocab := &Vocabulary{index: make(map[string]int)}

	order := make([]string, 0)
	byKey := make(map[string]map[int]struct{})

	for _, p := range pairs {
		key := strings.TrimSpace(p.TransactionKey)
		label := strings.TrimSpace(p.ItemLabel)
		if key == "" || label == "" {
			continue
		}

		items, ok := byKey[key]
		if !ok {
			items = make(map[int]struct{})
			byKey[key] = items
			order = append(order, key)
		}
		items[vocab.intern(label)] = struct{}{}
	}

	if len(order) == 0 || vocab.Len() == 0 {
		return nil, common.ErrEmptyInput
	}

	transactions := make([][]int, 0, len(order))
	for _, key := range order {
		items := byKey[key]
		txn := make([]int, 0, len(items))
		for item := range items {
			txn = append(txn, item)
		}
		sort.Ints(txn)
		transactions = append(transactions, txn)
	}

	return &Dataset{Vocab: vocab, Transactions: transactions}, nil
}
