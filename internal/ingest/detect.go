// Package ingest turns uploaded spreadsheet and delimited-text files into
// the raw (transaction-key, item-label) pairs the mining engine consumes.
// Column roles are guessed from header names; files with no recognizable
// transaction column still work through a chain of fallback keys.
package ingest

import (
	"strings"
	"unicode"
)

// Header synonyms for column-role detection. Matching is done on a
// normalized form (lowercased, letters and digits only), exact match first,
// substring match second.
var (
	itemSynonyms = []string{
		"itemdescription", "item", "items", "product", "productname", "product_name",
		"sku", "description", "product title",
		"ชื่อสินค้า", "สินค้า", "รายการ", "รายการสินค้า",
		"tag", "tags", "label", "category", "categories",
	}
	orderSynonyms = []string{
		"order_id", "orderid", "invoice", "invoiceno", "invoicenumber", "receipt",
		"billno", "transaction", "transaction_id", "basketid", "basket",
		"เลขที่ใบเสร็จ", "เลขที่คำสั่งซื้อ",
		"order", "orderno", "order no",
	}
	customerSynonyms = []string{
		"membernumber", "member", "customer", "customerid", "customer_id", "userid",
		"buyer", "user", "client", "account",
		"เบอร์โทร", "phone", "โทรศัพท์", "email", "อีเมล",
	}
	dateSynonyms = []string{
		"date", "datetime", "timestamp", "time", "created_at", "order_date",
		"invoicedate", "วันที่", "วันเวลา",
	}
	listSynonyms = []string{
		"items", "order_items", "รายการสินค้า", "products", "tags", "tag", "categories", "category",
	}
)

// KeyStrategy names how transaction keys are derived when building pairs.
type KeyStrategy string

// Transaction-key strategies, strongest first.
const (
	KeyOrder        KeyStrategy = "order"
	KeyCustomerDate KeyStrategy = "customer_date"
	KeyCustomer     KeyStrategy = "customer"
	KeyDate         KeyStrategy = "date"
	KeyRowGroup     KeyStrategy = "row_group"
)

// Detection holds the resolved column roles for a table. Column values are
// indices into the table header; -1 means not found.
type Detection struct {
	Strategy    KeyStrategy
	ItemCol     int
	OrderCol    int
	CustomerCol int
	DateCol     int

	// ListMode is set when ItemCol holds a delimited item list (one row
	// per transaction) that must be exploded into long form.
	ListMode bool
}

// normalizeHeader lowercases and strips everything but letters and digits,
// so "Order ID", "order_id" and "OrderId" all collide.
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// guessColumn returns the index of the first header matching any candidate,
// exact normalized matches taking priority over containment, or -1.
func guessColumn(headers []string, candidates []string) int {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}

	wanted := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if n := normalizeHeader(c); n != "" {
			wanted = append(wanted, n)
		}
	}

	for i, n := range normalized {
		for _, w := range wanted {
			if n == w {
				return i
			}
		}
	}
	for i, n := range normalized {
		if n == "" {
			continue
		}
		for _, w := range wanted {
			if strings.Contains(n, w) || strings.Contains(w, n) {
				return i
			}
		}
	}
	return -1
}

// Detect resolves column roles for a table. When no header looks like an
// item column, the highest-cardinality column not already claimed by
// another role is used as a last resort.
func Detect(headers []string, rows [][]string) Detection {
	det := Detection{
		ItemCol:     guessColumn(headers, itemSynonyms),
		OrderCol:    guessColumn(headers, orderSynonyms),
		CustomerCol: guessColumn(headers, customerSynonyms),
		DateCol:     guessColumn(headers, dateSynonyms),
	}

	// List format: one row per order with the items packed into one cell.
	if listCol := guessColumn(headers, listSynonyms); listCol >= 0 && det.OrderCol >= 0 {
		det.ItemCol = listCol
		det.ListMode = true
	}

	if det.ItemCol < 0 {
		det.ItemCol = highestCardinalityColumn(headers, rows, det)
	}

	switch {
	case det.OrderCol >= 0:
		det.Strategy = KeyOrder
	case det.CustomerCol >= 0 && det.DateCol >= 0:
		det.Strategy = KeyCustomerDate
	case det.CustomerCol >= 0:
		det.Strategy = KeyCustomer
	case det.DateCol >= 0:
		det.Strategy = KeyDate
	default:
		det.Strategy = KeyRowGroup
	}

	return det
}

// highestCardinalityColumn picks the column with the most distinct non-empty
// values, skipping columns already claimed as order/customer/date.
func highestCardinalityColumn(headers []string, rows [][]string, det Detection) int {
	best, bestCount := -1, 0
	for col := range headers {
		if col == det.OrderCol || col == det.CustomerCol || col == det.DateCol {
			continue
		}
		seen := make(map[string]struct{})
		for _, row := range rows {
			if col < len(row) {
				if v := strings.TrimSpace(row[col]); v != "" {
					seen[v] = struct{}{}
				}
			}
		}
		if len(seen) > bestCount {
			best, bestCount = col, len(seen)
		}
	}
	return best
}
