// Package export renders a finished mining Report into downloadable
// artifacts: a multi-sheet workbook and a flat delimited rules table.
// Metrics are rounded here, at presentation time only; the Report itself
// keeps full precision.
package export

import (
	"strconv"
	"strings"

	"github.com/flowlytics/basket-sift/internal/model"
)

// undefinedConviction is the presentation value for rules at confidence 1,
// where conviction has no finite value.
const undefinedConviction = "undefined"

const metricDecimals = 6

func formatMetric(v float64) string {
	return strconv.FormatFloat(v, 'f', metricDecimals, 64)
}

func formatConviction(r model.RuleEntry) string {
	if !r.ConvictionDefined {
		return undefinedConviction
	}
	return formatMetric(r.Conviction)
}

func joinItems(items []string) string {
	return strings.Join(items, ", ")
}
