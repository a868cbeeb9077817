// Package model defines the value types shared across the basket-sift pipeline.
package model

import "strings"

// Pair is one raw input row: a transaction key and one item observed in it.
// Both fields are opaque strings; the encoder assigns dense indices later.
type Pair struct {
	TransactionKey string
	ItemLabel      string
}

// Valid reports whether the pair carries a usable key and label.
// Whitespace-only cells count as missing.
func (p Pair) Valid() bool {
	return strings.TrimSpace(p.TransactionKey) != "" && strings.TrimSpace(p.ItemLabel) != ""
}
