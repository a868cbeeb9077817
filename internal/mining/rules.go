package mining

import (
	"github.com/flowlytics/basket-sift/internal/model"
)

// maxRuleItemset bounds subset enumeration; antecedents are enumerated as
// bitmasks over the itemset, so itemsets wider than 63 items are skipped.
// Real transaction data never reaches that width at any usable min_support.
const maxRuleItemset = 63

// generateRules derives candidate rules from every frequent itemset of size
// two or more: each non-empty proper subset becomes an antecedent, the rest
// the consequent. Supports are looked up from the mined levels, never
// recounted. A rule is kept only when its confidence meets MinConfidence.
func (e *Engine) generateRules(mined *minedItemsets) []model.Rule {
	var rules []model.Rule

	for _, fi := range mined.sets {
		n := len(fi.Items)
		if n < 2 || n > maxRuleItemset {
			continue
		}

		for mask := uint64(1); mask < uint64(1)<<n-1; mask++ {
			antecedent := make(model.Itemset, 0, n-1)
			consequent := make(model.Itemset, 0, n-1)
			for i := 0; i < n; i++ {
				if mask&(uint64(1)<<i) != 0 {
					antecedent = append(antecedent, fi.Items[i])
				} else {
					consequent = append(consequent, fi.Items[i])
				}
			}

			supAntecedent := mined.supports[antecedent.Key()]
			supConsequent := mined.supports[consequent.Key()]
			// Both subsets of a frequent itemset are frequent, so their
			// supports are on record; a zero means a broken lookup and
			// the rule is skipped rather than divided by.
			if supAntecedent == 0 || supConsequent == 0 {
				continue
			}

			m := computeMetrics(supAntecedent, supConsequent, fi.Support)
			if m.confidence < e.cfg.MinConfidence {
				continue
			}

			rules = append(rules, model.Rule{
				Antecedent:        antecedent,
				Consequent:        consequent,
				Support:           fi.Support,
				Confidence:        m.confidence,
				Lift:              m.lift,
				Conviction:        m.conviction,
				ConvictionDefined: m.convictionDefined,
			})
		}
	}

	return rules
}
