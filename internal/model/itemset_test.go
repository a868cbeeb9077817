package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewItemsetCanonicalizes(t *testing.T) {
	original := []int{5, 1, 3}
	set := NewItemset(original...)

	assert.Equal(t, Itemset{1, 3, 5}, set)
	assert.Equal(t, []int{5, 1, 3}, original, "input slice must not be reordered")
}

func TestItemsetKey(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		want  string
	}{
		{name: "single", items: []int{7}, want: "7"},
		{name: "multiple", items: []int{9, 0, 4}, want: "0,4,9"},
		{name: "empty", items: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewItemset(tt.items...).Key())
		})
	}
}

func TestItemsetContains(t *testing.T) {
	set := NewItemset(2, 5, 9)

	assert.True(t, set.Contains(2))
	assert.True(t, set.Contains(9))
	assert.False(t, set.Contains(3))
	assert.False(t, set.Contains(10))
}

func TestItemsetCompare(t *testing.T) {
	tests := []struct {
		name string
		a    Itemset
		b    Itemset
		want int
	}{
		{name: "equal", a: NewItemset(1, 2), b: NewItemset(2, 1), want: 0},
		{name: "element order", a: NewItemset(1, 2), b: NewItemset(1, 3), want: -1},
		{name: "prefix first", a: NewItemset(1), b: NewItemset(1, 2), want: -1},
		{name: "reversed", a: NewItemset(4), b: NewItemset(3, 9), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestPairValid(t *testing.T) {
	assert.True(t, Pair{TransactionKey: "t1", ItemLabel: "milk"}.Valid())
	assert.False(t, Pair{TransactionKey: " ", ItemLabel: "milk"}.Valid())
	assert.False(t, Pair{TransactionKey: "t1", ItemLabel: ""}.Valid())
}
