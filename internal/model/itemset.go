package model

import (
	"strconv"
	"strings"
)

// Itemset is an unordered set of item indices held in canonical form:
// indices sorted ascending, no duplicates. The canonical form doubles as
// the deduplication key, so an Itemset must never be mutated after creation.
type Itemset []int

// NewItemset returns the canonical itemset for the given indices.
// The input slice is not modified.
func NewItemset(items ...int) Itemset {
	s := make(Itemset, len(items))
	copy(s, items)
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
	return s
}

// Key returns the canonical string key, e.g. "0,3,7".
func (s Itemset) Key() string {
	var b strings.Builder
	for i, item := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(item))
	}
	return b.String()
}

// Contains reports whether item is a member of the set.
func (s Itemset) Contains(item int) bool {
	for _, v := range s {
		if v == item {
			return true
		}
		if v > item {
			return false
		}
	}
	return false
}

// Compare orders two canonical itemsets lexicographically by index
// sequence, a shorter proper prefix sorting first. It returns -1, 0 or 1.
func (s Itemset) Compare(other Itemset) int {
	for i := 0; i < len(s) && i < len(other); i++ {
		switch {
		case s[i] < other[i]:
			return -1
		case s[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(s) < len(other):
		return -1
	case len(s) > len(other):
		return 1
	}
	return 0
}

// FrequentItemset pairs a canonical itemset with its support.
type FrequentItemset struct {
	Items   Itemset
	Support float64
}
