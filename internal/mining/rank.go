package mining

import (
	"sort"

	"github.com/flowlytics/basket-sift/internal/model"
)

// compareRules is the total order over rules: lift descending, then
// confidence descending, then support descending, then antecedent canonical
// form ascending, with consequent canonical form as the final key so no two
// distinct rules ever compare equal.
func compareRules(a, b model.Rule) int {
	switch {
	case a.Lift != b.Lift:
		if a.Lift > b.Lift {
			return -1
		}
		return 1
	case a.Confidence != b.Confidence:
		if a.Confidence > b.Confidence {
			return -1
		}
		return 1
	case a.Support != b.Support:
		if a.Support > b.Support {
			return -1
		}
		return 1
	}
	if c := a.Antecedent.Compare(b.Antecedent); c != 0 {
		return c
	}
	return a.Consequent.Compare(b.Consequent)
}

// assembleReport sorts, ranks and resolves everything back to labels. This
// stage is pure assembly: all metrics arrive precomputed and are only
// reordered and copied here.
func (e *Engine) assembleReport(ds *Dataset, mined *minedItemsets, rules []model.Rule) *model.Report {
	itemsets := make([]model.FrequentItemset, len(mined.sets))
	copy(itemsets, mined.sets)
	sort.Slice(itemsets, func(i, j int) bool {
		if itemsets[i].Support != itemsets[j].Support {
			return itemsets[i].Support > itemsets[j].Support
		}
		return itemsets[i].Items.Compare(itemsets[j].Items) < 0
	})

	sort.Slice(rules, func(i, j int) bool {
		return compareRules(rules[i], rules[j]) < 0
	})

	report := &model.Report{
		TransactionCount: len(ds.Transactions),
		ItemCount:        ds.Vocab.Len(),
		Itemsets:         make([]model.ItemsetEntry, 0, len(itemsets)),
		Rules:            make([]model.RuleEntry, 0, len(rules)),
	}

	for _, fi := range itemsets {
		report.Itemsets = append(report.Itemsets, model.ItemsetEntry{
			Items:   ds.Vocab.Labels(fi.Items),
			Support: fi.Support,
		})
	}

	for i, r := range rules {
		entry := model.RuleEntry{
			Rank:              i + 1,
			Antecedent:        ds.Vocab.Labels(r.Antecedent),
			Consequent:        ds.Vocab.Labels(r.Consequent),
			Support:           r.Support,
			Confidence:        r.Confidence,
			Lift:              r.Lift,
			Conviction:        r.Conviction,
			ConvictionDefined: r.ConvictionDefined,
		}
		report.Rules = append(report.Rules, entry)

		if e.cfg.IncludeSingleItemRules && len(r.Antecedent) == 1 {
			report.SingleItemRules = append(report.SingleItemRules, entry)
		}
	}

	return report
}
