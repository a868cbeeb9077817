package mining

// ruleMetrics carries the strength-of-association scores for one rule,
// computed in full double precision. Rounding happens only at export time
// so ranking always compares unrounded values.
type ruleMetrics struct {
	confidence        float64
	lift              float64
	conviction        float64
	convictionDefined bool
}

// computeMetrics derives confidence, lift and conviction from the supports
// of the antecedent, the consequent and their union. The caller guarantees
// supAntecedent > 0 and supConsequent > 0 (both are frequent itemsets).
//
// Conviction is (1 - supConsequent) / (1 - confidence); at confidence 1 the
// denominator is zero and the value is flagged undefined instead of divided.
func computeMetrics(supAntecedent, supConsequent, supUnion float64) ruleMetrics {
	confidence := supUnion / supAntecedent

	m := ruleMetrics{
		confidence: confidence,
		lift:       confidence / supConsequent,
	}

	if confidence >= 1 {
		m.convictionDefined = false
		return m
	}
	m.conviction = (1 - supConsequent) / (1 - confidence)
	m.convictionDefined = true
	return m
}
