package mining

// invertedIndex maps each item to the sorted list of transaction indices
// containing it. It is built once per run and then shared read-only across
// the support-counting workers.
type invertedIndex struct {
	postings     [][]int
	transactions int
}

func buildIndex(ds *Dataset) *invertedIndex {
	ix := &invertedIndex{
		postings:     make([][]int, ds.Vocab.Len()),
		transactions: len(ds.Transactions),
	}
	for t, items := range ds.Transactions {
		for _, item := range items {
			ix.postings[item] = append(ix.postings[item], t)
		}
	}
	return ix
}

// count returns the number of transactions containing every item in the
// canonical itemset, by intersecting the items' posting lists. Intersection
// starts from the rarest item so the working set only shrinks.
func (ix *invertedIndex) count(items []int) int {
	if len(items) == 0 {
		return 0
	}

	rarest := items[0]
	for _, item := range items[1:] {
		if len(ix.postings[item]) < len(ix.postings[rarest]) {
			rarest = item
		}
	}

	current := ix.postings[rarest]
	for _, item := range items {
		if item == rarest {
			continue
		}
		current = intersectSorted(current, ix.postings[item])
		if len(current) == 0 {
			return 0
		}
	}
	return len(current)
}

// intersectSorted merges two ascending transaction-id lists.
func intersectSorted(a, b []int) []int {
	out := make([]int, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
