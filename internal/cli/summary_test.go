package cli

import (
	"strings"
	"testing"

	"github.com/flowlytics/basket-sift/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestRenderSummary(t *testing.T) {
	report := &model.Report{
		TransactionCount: 3,
		ItemCount:        2,
		Itemsets:         []model.ItemsetEntry{{Items: []string{"milk"}, Support: 1.0}},
		Rules: []model.RuleEntry{
			{Rank: 1, Antecedent: []string{"bread"}, Consequent: []string{"milk"},
				Support: 0.5, Confidence: 1.0, Lift: 1.0},
		},
	}
	meta := model.RunMeta{SourceFile: "orders.csv", MinSupport: 0.5, MinConfidence: 0.5}

	out := RenderSummary(report, meta)

	assert.Contains(t, out, "orders.csv")
	assert.Contains(t, out, "Transactions:      3")
	assert.Contains(t, out, "bread")
	assert.Contains(t, out, "milk")
}

func TestRenderSummaryNoRules(t *testing.T) {
	report := &model.Report{TransactionCount: 1, ItemCount: 1}

	out := RenderSummary(report, model.RunMeta{SourceFile: "x.csv"})
	assert.Contains(t, out, "No rules met the thresholds")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, strings.Repeat("a", 9)+"…", truncate(strings.Repeat("a", 20), 10))
}
