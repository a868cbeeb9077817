package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/flowlytics/basket-sift/internal/model"
)

// RulesCSVWriter renders the ranked rules table as a flat CSV file.
type RulesCSVWriter struct {
	Path string
}

// Write implements service.ReportWriter.
func (w RulesCSVWriter) Write(_ context.Context, report *model.Report, _ model.RunMeta) error {
	f, err := os.Create(w.Path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer func() { _ = f.Close() }()

	cw := csv.NewWriter(f)
	if err := writeRules(cw, report.Rules); err != nil {
		return err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return f.Close()
}

func writeRules(cw *csv.Writer, rules []model.RuleEntry) error {
	header := []string{"Rank", "Antecedents", "Consequents", "Support", "Confidence", "Lift", "Conviction"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range rules {
		record := []string{
			strconv.Itoa(r.Rank),
			joinItems(r.Antecedent),
			joinItems(r.Consequent),
			formatMetric(r.Support),
			formatMetric(r.Confidence),
			formatMetric(r.Lift),
			formatConviction(r),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	return nil
}
