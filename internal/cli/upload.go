package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/resumes-tracker/internal/records"
)

var (
	flagDryRun bool
	flagReport string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <records.json|records.yaml>",
	Short: "Upload one record or a list of records to the database",
	Long: `Upload reads a JSON or YAML file holding one record object or a list of them,
maps each onto the database schema and creates one page per record, in order.
Records without a name are reported and skipped; the batch never stops early.

Examples:
  resumes-tracker upload candidates.json
  resumes-tracker upload candidates.yaml --dry-run
  resumes-tracker upload candidates.json --report result.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the mapped properties without creating pages")
	uploadCmd.Flags().StringVar(&flagReport, "report", "", "Write an XLSX report of the batch to this path")
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	recs, err := records.LoadFile(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(ctx, !flagDryRun)
	if err != nil {
		return err
	}
	defer a.close()
	if err := a.requireDestination(); err != nil {
		return err
	}

	if flagDryRun {
		previews, err := a.service.Preview(ctx, recs, a.cfg.Notion.APIKey, a.cfg.Notion.DatabaseID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), previews)
	}

	res, err := a.service.UploadRecords(ctx, recs, a.cfg.Notion.APIKey, a.cfg.Notion.DatabaseID)
	if err != nil {
		return err
	}
	printBatch(cmd.OutOrStdout(), res)

	if flagReport != "" {
		b, err := a.export.BatchXLSX(res)
		if err != nil {
			return err
		}
		if err := writeFile(flagReport, b); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", flagReport)
	}
	return nil
}
