package mining

import (
	"testing"

	"github.com/flowlytics/basket-sift/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func minedFixture(entries map[string]float64, sets ...model.FrequentItemset) *minedItemsets {
	m := &minedItemsets{supports: entries}
	m.sets = sets
	return m
}

func TestGenerateRules_EnumeratesAllProperSplits(t *testing.T) {
	// {0,1,2} frequent: 6 non-empty proper antecedent/consequent splits.
	mined := minedFixture(map[string]float64{
		"0":     0.8,
		"1":     0.7,
		"2":     0.6,
		"0,1":   0.5,
		"0,2":   0.5,
		"1,2":   0.5,
		"0,1,2": 0.4,
	},
		model.FrequentItemset{Items: model.NewItemset(0, 1, 2), Support: 0.4},
	)

	engine := New(Config{MinSupport: 0.1, MinConfidence: 0})
	rules := engine.generateRules(mined)

	require.Len(t, rules, 6)
	for _, r := range rules {
		assert.NotEmpty(t, r.Antecedent)
		assert.NotEmpty(t, r.Consequent)
		assert.Equal(t, 3, len(r.Antecedent)+len(r.Consequent))
		assert.InDelta(t, 0.4, r.Support, 1e-12)
		assert.GreaterOrEqual(t, r.Confidence, 0.0)
		assert.LessOrEqual(t, r.Confidence, 1.0)
	}
}

func TestGenerateRules_ConfidenceFilter(t *testing.T) {
	mined := minedFixture(map[string]float64{
		"0":   1.0,
		"1":   2.0 / 3.0,
		"0,1": 2.0 / 3.0,
	},
		model.FrequentItemset{Items: model.NewItemset(0), Support: 1.0},
		model.FrequentItemset{Items: model.NewItemset(1), Support: 2.0 / 3.0},
		model.FrequentItemset{Items: model.NewItemset(0, 1), Support: 2.0 / 3.0},
	)

	// 0→1 has confidence 2/3; 1→0 has confidence 1. A 0.9 floor keeps
	// only the latter.
	engine := New(Config{MinSupport: 0.1, MinConfidence: 0.9})
	rules := engine.generateRules(mined)

	require.Len(t, rules, 1)
	assert.Equal(t, model.NewItemset(1), rules[0].Antecedent)
	assert.Equal(t, model.NewItemset(0), rules[0].Consequent)
	assert.InDelta(t, 1.0, rules[0].Confidence, 1e-12)
}

func TestGenerateRules_SkipsSizeOneItemsets(t *testing.T) {
	mined := minedFixture(map[string]float64{"0": 0.9},
		model.FrequentItemset{Items: model.NewItemset(0), Support: 0.9},
	)

	rules := New(Config{MinSupport: 0.1, MinConfidence: 0}).generateRules(mined)
	assert.Empty(t, rules)
}

func TestGenerateRules_GuardsMissingSubsetSupport(t *testing.T) {
	// A zero/missing antecedent support must skip the rule, never divide.
	mined := minedFixture(map[string]float64{
		"0,1": 0.5,
	},
		model.FrequentItemset{Items: model.NewItemset(0, 1), Support: 0.5},
	)

	rules := New(Config{MinSupport: 0.1, MinConfidence: 0}).generateRules(mined)
	assert.Empty(t, rules)
}
