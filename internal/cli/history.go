package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit int
	flagHistoryOut   string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded upload runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent upload runs",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyExportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Write an XLSX report for a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryExport,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyExportCmd)
	historyListCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of runs")
	historyExportCmd.Flags().StringVarP(&flagHistoryOut, "out", "o", "", "Output path (default run-<id>.xlsx)")
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()
	if a.runs == nil {
		return fmt.Errorf("upload history is disabled")
	}

	runs, err := a.runs.ListRuns(ctx, flagHistoryLimit)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tCREATED\tSOURCE\tOK/TOTAL")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\n", r.ID, r.CreatedAt.Local().Format(time.DateTime), r.Source, r.Succeeded, r.Total)
	}
	return tw.Flush()
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	b, err := a.export.ExportRunXLSX(ctx, args[0])
	if err != nil {
		return err
	}
	out := flagHistoryOut
	if out == "" {
		out = "run-" + args[0] + ".xlsx"
	}
	if err := writeFile(out, b); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", out)
	return nil
}
