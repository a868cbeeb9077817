package mining

import (
	"testing"

	"github.com/flowlytics/basket-sift/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareRules(t *testing.T) {
	base := model.Rule{
		Antecedent: model.NewItemset(0),
		Consequent: model.NewItemset(1),
		Support:    0.5,
		Confidence: 0.5,
		Lift:       1.0,
	}

	tests := []struct {
		name string
		a    model.Rule
		b    model.Rule
		want int
	}{
		{
			name: "higher lift first",
			a:    model.Rule{Lift: 2.0},
			b:    model.Rule{Lift: 1.0},
			want: -1,
		},
		{
			name: "equal lift falls to confidence",
			a:    model.Rule{Lift: 1.0, Confidence: 0.9},
			b:    model.Rule{Lift: 1.0, Confidence: 0.5},
			want: -1,
		},
		{
			name: "equal lift and confidence falls to support",
			a:    model.Rule{Lift: 1.0, Confidence: 0.5, Support: 0.2},
			b:    model.Rule{Lift: 1.0, Confidence: 0.5, Support: 0.4},
			want: 1,
		},
		{
			name: "metric ties break on antecedent canonical order",
			a: model.Rule{Lift: 1.0, Confidence: 0.5, Support: 0.5,
				Antecedent: model.NewItemset(0, 2), Consequent: model.NewItemset(3)},
			b: model.Rule{Lift: 1.0, Confidence: 0.5, Support: 0.5,
				Antecedent: model.NewItemset(0, 3), Consequent: model.NewItemset(2)},
			want: -1,
		},
		{
			name: "prefix antecedent sorts before its extension",
			a: model.Rule{Lift: 1.0, Confidence: 0.5, Support: 0.5,
				Antecedent: model.NewItemset(0), Consequent: model.NewItemset(1)},
			b: model.Rule{Lift: 1.0, Confidence: 0.5, Support: 0.5,
				Antecedent: model.NewItemset(0, 1), Consequent: model.NewItemset(2)},
			want: -1,
		},
		{
			name: "identical rule compares equal",
			a:    base,
			b:    base,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareRules(tt.a, tt.b))
			assert.Equal(t, -tt.want, compareRules(tt.b, tt.a))
		})
	}
}

func TestAssembleReport_Ordering(t *testing.T) {
	ds, err := Encode([]model.Pair{
		{TransactionKey: "t1", ItemLabel: "a"},
		{TransactionKey: "t1", ItemLabel: "b"},
		{TransactionKey: "t2", ItemLabel: "a"},
	})
	require.NoError(t, err)

	mined := minedFixture(map[string]float64{
		"0":   1.0,
		"1":   0.5,
		"0,1": 0.5,
	},
		model.FrequentItemset{Items: model.NewItemset(0), Support: 1.0},
		model.FrequentItemset{Items: model.NewItemset(1), Support: 0.5},
		model.FrequentItemset{Items: model.NewItemset(0, 1), Support: 0.5},
	)

	rules := []model.Rule{
		{Antecedent: model.NewItemset(0), Consequent: model.NewItemset(1),
			Support: 0.5, Confidence: 0.5, Lift: 1.0},
		{Antecedent: model.NewItemset(1), Consequent: model.NewItemset(0),
			Support: 0.5, Confidence: 1.0, Lift: 1.0},
	}

	engine := New(Config{MinSupport: 0.1, MinConfidence: 0, IncludeSingleItemRules: true})
	report := engine.assembleReport(ds, mined, rules)

	// Itemsets: support descending, canonical form breaking the 0.5 tie.
	require.Len(t, report.Itemsets, 3)
	assert.Equal(t, []string{"a"}, report.Itemsets[0].Items)
	assert.Equal(t, []string{"a", "b"}, report.Itemsets[1].Items)
	assert.Equal(t, []string{"b"}, report.Itemsets[2].Items)

	// Rules: equal lift, so confidence decides; ranks are 1-based.
	require.Len(t, report.Rules, 2)
	assert.Equal(t, []string{"b"}, report.Rules[0].Antecedent)
	assert.Equal(t, 1, report.Rules[0].Rank)
	assert.Equal(t, []string{"a"}, report.Rules[1].Antecedent)
	assert.Equal(t, 2, report.Rules[1].Rank)

	// Single-item view mirrors the pool entries.
	require.Len(t, report.SingleItemRules, 2)
	assert.Equal(t, report.Rules[0], report.SingleItemRules[0])
}

func TestAssembleReport_DoesNotMutateMinedOrder(t *testing.T) {
	ds, err := Encode([]model.Pair{
		{TransactionKey: "t1", ItemLabel: "a"},
		{TransactionKey: "t1", ItemLabel: "b"},
	})
	require.NoError(t, err)

	mined := minedFixture(map[string]float64{
		"0": 0.4,
		"1": 0.9,
	},
		model.FrequentItemset{Items: model.NewItemset(0), Support: 0.4},
		model.FrequentItemset{Items: model.NewItemset(1), Support: 0.9},
	)

	New(Config{MinSupport: 0.1, MinConfidence: 0}).assembleReport(ds, mined, nil)

	// Discovery order must survive assembly; sorting works on a copy.
	assert.Equal(t, model.NewItemset(0), mined.sets[0].Items)
	assert.Equal(t, model.NewItemset(1), mined.sets[1].Items)
}
