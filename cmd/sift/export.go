package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flowlytics/basket-sift/internal/common"
	"github.com/flowlytics/basket-sift/internal/export"
	"github.com/flowlytics/basket-sift/internal/service"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "Re-export a saved run to a workbook or CSV",
		Long: `Re-export a saved mining run without re-running the analysis.

The output format follows the file extension: .xlsx produces the full
multi-sheet workbook, .csv the flat rules table.`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
	cmd.Flags().String("out", "", "output path (.xlsx or .csv)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := flagString(cmd, "out")

	var writer service.ReportWriter
	switch strings.ToLower(filepath.Ext(out)) {
	case ".xlsx":
		writer = export.WorkbookWriter{Path: out}
	case ".csv":
		writer = export.RulesCSVWriter{Path: out}
	default:
		return fmt.Errorf("%w: output %q must end in .xlsx or .csv", common.ErrUnsupportedFormat, out)
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.GetRun(ctx, args[0])
	if err != nil {
		return err
	}

	if err := writer.Write(ctx, run.Report, run.Meta); err != nil {
		return fmt.Errorf("failed to export run: %w", err)
	}

	fmt.Printf("exported run %s to %s\n", run.Meta.RunID, out)
	return nil
}
