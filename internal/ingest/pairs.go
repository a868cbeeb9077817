package ingest

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/flowlytics/basket-sift/internal/common"
	"github.com/flowlytics/basket-sift/internal/model"
)

// listSeparators splits packed item-list cells like "milk, bread;eggs|jam".
var listSeparators = regexp.MustCompile(`[,;|]+`)

// rowGroupSize is the fallback basket width when nothing in the file can
// serve as a transaction key: consecutive rows are grouped in fives.
const rowGroupSize = 5

// dateLayouts tried when normalizing a date cell to day precision, so one
// customer's purchases within a day land in one basket.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
}

// Pairs builds the raw pair list from a table using the detected column
// roles. Rows with a blank item cell are skipped; blank key cells fall
// through to the engine's own row filtering.
func Pairs(table *Table, det Detection) ([]model.Pair, error) {
	if det.ItemCol < 0 {
		return nil, common.ErrNoItemColumn
	}

	var pairs []model.Pair
	for i, row := range table.Rows {
		key := transactionKey(row, det, i)

		item := cell(row, det.ItemCol)
		if det.ListMode {
			for _, part := range listSeparators.Split(item, -1) {
				if part = strings.TrimSpace(part); part != "" {
					pairs = append(pairs, model.Pair{TransactionKey: key, ItemLabel: part})
				}
			}
			continue
		}

		if item = strings.TrimSpace(item); item != "" {
			pairs = append(pairs, model.Pair{TransactionKey: key, ItemLabel: item})
		}
	}
	return pairs, nil
}

func transactionKey(row []string, det Detection, rowIndex int) string {
	switch det.Strategy {
	case KeyOrder:
		return cell(row, det.OrderCol)
	case KeyCustomerDate:
		return cell(row, det.CustomerCol) + "|" + normalizeDate(cell(row, det.DateCol))
	case KeyCustomer:
		return cell(row, det.CustomerCol)
	case KeyDate:
		return normalizeDate(cell(row, det.DateCol))
	default:
		return strconv.Itoa(rowIndex / rowGroupSize)
	}
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// normalizeDate reduces a timestamp to its date so baskets are not
// fragmented by time-of-day; unparseable values are used verbatim.
func normalizeDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}
