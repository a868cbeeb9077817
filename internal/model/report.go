package model

import "time"

// ItemsetEntry is one frequent itemset in a Report, with item indices
// resolved back to their original labels.
type ItemsetEntry struct {
	Items   []string `json:"items"`
	Support float64  `json:"support"`
}

// RuleEntry is one ranked rule in a Report.
type RuleEntry struct {
	Antecedent        []string `json:"antecedent"`
	Consequent        []string `json:"consequent"`
	Rank              int      `json:"rank"`
	Support           float64  `json:"support"`
	Confidence        float64  `json:"confidence"`
	Lift              float64  `json:"lift"`
	Conviction        float64  `json:"conviction"`
	ConvictionDefined bool     `json:"conviction_defined"`
}

// Report is the complete, ordered result of one mining run. It is assembled
// once and never mutated; exporters and the run store only read it.
type Report struct {
	TransactionCount int            `json:"transaction_count"`
	ItemCount        int            `json:"item_count"`
	Itemsets         []ItemsetEntry `json:"itemsets"`
	Rules            []RuleEntry    `json:"rules"`

	// SingleItemRules is a filtered view over Rules: the entries whose
	// antecedent has exactly one item, surfaced separately for reporting.
	// Populated only when the run was configured to include it; ranks are
	// the ranks the entries hold in Rules.
	SingleItemRules []RuleEntry `json:"single_item_rules,omitempty"`
}

// RunMeta describes the context a Report was produced in, for export
// headers and the run-history store.
type RunMeta struct {
	RunID         string
	SourceFile    string
	GeneratedAt   time.Time
	MinSupport    float64
	MinConfidence float64
}

// Run is a persisted mining run: its metadata plus the full Report.
type Run struct {
	Meta   RunMeta
	Report *Report
}

// RunSummary is the listing view of a persisted run.
type RunSummary struct {
	Meta             RunMeta
	TransactionCount int
	ItemCount        int
	ItemsetCount     int
	RuleCount        int
}
