package export

import (
	"context"
	"fmt"
	"strconv"

	"github.com/flowlytics/basket-sift/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names, matching the sections users see in the download.
const (
	sheetSummary     = "Summary"
	sheetRules       = "Association Rules"
	sheetSingleRules = "Single Item Rules"
	sheetItemsets    = "Frequent Itemsets"
)

// WorkbookWriter renders the complete Report as a multi-sheet XLSX
// workbook: a summary sheet plus one sheet per result table.
type WorkbookWriter struct {
	Path string
}

// Write implements service.ReportWriter.
func (w WorkbookWriter) Write(_ context.Context, report *model.Report, meta model.RunMeta) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetSummary); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	if err := writeSummary(f, report, meta); err != nil {
		return err
	}
	if err := writeRuleSheet(f, sheetRules, report.Rules); err != nil {
		return err
	}
	if len(report.SingleItemRules) > 0 {
		if err := writeRuleSheet(f, sheetSingleRules, report.SingleItemRules); err != nil {
			return err
		}
	}
	if err := writeItemsetSheet(f, report.Itemsets); err != nil {
		return err
	}

	if err := f.SaveAs(w.Path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, report *model.Report, meta model.RunMeta) error {
	rows := [][]any{
		{"Metric", "Value"},
		{"Run ID", meta.RunID},
		{"Source File", meta.SourceFile},
		{"Generated At", meta.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Min Support", formatMetric(meta.MinSupport)},
		{"Min Confidence", formatMetric(meta.MinConfidence)},
		{"Total Transactions", report.TransactionCount},
		{"Total Items", report.ItemCount},
		{"Total Frequent Itemsets", len(report.Itemsets)},
		{"Total Rules", len(report.Rules)},
	}
	return writeRows(f, sheetSummary, rows)
}

func writeRuleSheet(f *excelize.File, sheet string, rules []model.RuleEntry) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheet, err)
	}

	rows := make([][]any, 0, len(rules)+1)
	rows = append(rows, []any{"Rank", "Antecedents", "Consequents", "Support", "Confidence", "Lift", "Conviction"})
	for _, r := range rules {
		rows = append(rows, []any{
			r.Rank,
			joinItems(r.Antecedent),
			joinItems(r.Consequent),
			formatMetric(r.Support),
			formatMetric(r.Confidence),
			formatMetric(r.Lift),
			formatConviction(r),
		})
	}
	return writeRows(f, sheet, rows)
}

func writeItemsetSheet(f *excelize.File, itemsets []model.ItemsetEntry) error {
	if _, err := f.NewSheet(sheetItemsets); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", sheetItemsets, err)
	}

	rows := make([][]any, 0, len(itemsets)+1)
	rows = append(rows, []any{"Itemset", "Length", "Support"})
	for _, entry := range itemsets {
		rows = append(rows, []any{
			joinItems(entry.Items),
			len(entry.Items),
			formatMetric(entry.Support),
		})
	}
	return writeRows(f, sheetItemsets, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell := "A" + strconv.Itoa(i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %q: %w", i+1, sheet, err)
		}
	}
	return nil
}
