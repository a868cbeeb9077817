package main

import (
	"fmt"

	"github.com/flowlytics/basket-sift/internal/cli"
	"github.com/spf13/cobra"
)

func runsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect past mining runs",
	}
	cmd.AddCommand(runsListCmd())
	cmd.AddCommand(runsShowCmd())
	return cmd
}

func runsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved mining runs, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summaries, err := store.ListRuns(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			if len(summaries) == 0 {
				fmt.Println(cli.SubtleStyle.Render("no saved runs"))
				return nil
			}

			fmt.Println(cli.TableHeaderStyle.Render(
				fmt.Sprintf("%-36s %-20s %-24s %6s %6s", "Run", "Generated", "Source", "Rules", "Sets")))
			for _, s := range summaries {
				fmt.Printf("%-36s %-20s %-24s %6d %6d\n",
					s.Meta.RunID,
					s.Meta.GeneratedAt.Format("2006-01-02 15:04:05"),
					s.Meta.SourceFile,
					s.RuleCount,
					s.ItemsetCount)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "maximum runs to list (0 = all)")
	return cmd
}

func runsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show the summary of one saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			run, err := store.GetRun(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.RenderSummary(run.Report, run.Meta))
			return nil
		},
	}
}
