package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/flowlytics/basket-sift/internal/cli"
	"github.com/flowlytics/basket-sift/internal/export"
	"github.com/flowlytics/basket-sift/internal/ingest"
	"github.com/flowlytics/basket-sift/internal/mining"
	"github.com/flowlytics/basket-sift/internal/model"
	"github.com/flowlytics/basket-sift/internal/service"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Mine association rules from a transactions file",
		Long: `Mine association rules from a CSV, TSV or XLSX file of transactions.

Column roles (transaction id, item) are detected from the headers; files
with no usable id column fall back to customer/date grouping.

Examples:
  # Defaults: min_support 0.01, min_confidence 0.3
  sift analyze orders.csv

  # Tighter thresholds, workbook output
  sift analyze orders.xlsx --min-support 0.05 --min-confidence 0.6 --out report.xlsx

  # Semicolon-separated legacy export
  sift analyze dump.txt --sep ';' --encoding windows-874`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().Float64("min-support", 0, "minimum itemset support in (0,1] (default from config)")
	cmd.Flags().Float64("min-confidence", -1, "minimum rule confidence in [0,1] (default from config)")
	cmd.Flags().Int("max-itemset-size", 0, "cap itemset search depth (0 = unlimited)")
	cmd.Flags().Bool("single-item-rules", true, "surface single-item-antecedent rules as a separate view")
	cmd.Flags().Int("workers", 0, "support-counting workers per level (0 = one per CPU)")

	cmd.Flags().String("sep", "auto", "field separator for delimited files")
	cmd.Flags().String("sheet", "", "worksheet name for workbook files (default: first sheet)")
	cmd.Flags().String("encoding", "auto", "text encoding: auto, utf-8, windows-1252, windows-874")

	cmd.Flags().String("out", "", "write the full report workbook to this .xlsx path")
	cmd.Flags().String("csv", "", "write the flat rules table to this .csv path")
	cmd.Flags().Bool("save", true, "persist the run in the run-history database")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	cfg, err := miningConfig(cmd)
	if err != nil {
		return err
	}

	source := ingest.FileSource{
		Path: path,
		Options: ingest.Options{
			Separator: flagString(cmd, "sep"),
			Sheet:     flagString(cmd, "sheet"),
			Encoding:  flagString(cmd, "encoding"),
		},
	}

	pairs, err := source.Pairs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load input: %w", err)
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription("mining itemsets"),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	engine := mining.NewWithProgress(cfg, func(level, candidates, frequent int) {
		bar.Describe(fmt.Sprintf("level %d: %d/%d frequent", level, frequent, candidates))
		_ = bar.Add(1)
	})

	started := time.Now()
	report, err := engine.Mine(ctx, pairs)
	_ = bar.Finish()
	if err != nil {
		return err
	}

	meta := model.RunMeta{
		RunID:         uuid.New().String(),
		SourceFile:    path,
		GeneratedAt:   started,
		MinSupport:    cfg.MinSupport,
		MinConfidence: cfg.MinConfidence,
	}

	fmt.Println(cli.RenderSummary(report, meta))

	if err := exportArtifacts(cmd, report, meta); err != nil {
		return err
	}

	if save, _ := cmd.Flags().GetBool("save"); save {
		if err := saveRun(ctx, &model.Run{Meta: meta, Report: report}); err != nil {
			return err
		}
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("saved as run %s", meta.RunID)))
	}

	return nil
}

// miningConfig layers flag values over the viper-configured defaults.
func miningConfig(cmd *cobra.Command) (mining.Config, error) {
	cfg := mining.Config{
		MinSupport:             viper.GetFloat64("mining.min_support"),
		MinConfidence:          viper.GetFloat64("mining.min_confidence"),
		MaxItemsetSize:         viper.GetInt("mining.max_itemset_size"),
		IncludeSingleItemRules: viper.GetBool("mining.include_single_item_rules"),
	}

	if cmd.Flags().Changed("min-support") {
		cfg.MinSupport, _ = cmd.Flags().GetFloat64("min-support")
	}
	if cmd.Flags().Changed("min-confidence") {
		cfg.MinConfidence, _ = cmd.Flags().GetFloat64("min-confidence")
	}
	if cmd.Flags().Changed("max-itemset-size") {
		cfg.MaxItemsetSize, _ = cmd.Flags().GetInt("max-itemset-size")
	}
	if cmd.Flags().Changed("single-item-rules") {
		cfg.IncludeSingleItemRules, _ = cmd.Flags().GetBool("single-item-rules")
	}
	cfg.Workers, _ = cmd.Flags().GetInt("workers")

	return cfg, cfg.Validate()
}

func exportArtifacts(cmd *cobra.Command, report *model.Report, meta model.RunMeta) error {
	ctx := cmd.Context()

	var writers []service.ReportWriter
	if out := flagString(cmd, "out"); out != "" {
		writers = append(writers, export.WorkbookWriter{Path: out})
	}
	if out := flagString(cmd, "csv"); out != "" {
		writers = append(writers, export.RulesCSVWriter{Path: out})
	}

	for _, w := range writers {
		if err := w.Write(ctx, report, meta); err != nil {
			return fmt.Errorf("failed to export report: %w", err)
		}
	}
	if len(writers) > 0 {
		slog.Info("exported report artifacts", "count", len(writers))
	}
	return nil
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
