package model

// Rule is a directional association between two disjoint itemsets whose
// union is frequent. Identity is the ordered (antecedent, consequent) pair;
// the reversed rule is a different rule.
type Rule struct {
	Antecedent Itemset
	Consequent Itemset

	// Support is the support of antecedent ∪ consequent.
	Support    float64
	Confidence float64
	Lift       float64

	// Conviction is only meaningful when ConvictionDefined is true.
	// Confidence 1 makes the denominator zero, so the value is reported
	// as undefined rather than computed.
	Conviction        float64
	ConvictionDefined bool
}
