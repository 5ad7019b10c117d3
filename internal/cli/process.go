package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/resumes-tracker/internal/llm"
	"github.com/joseph-ayodele/resumes-tracker/internal/pipeline"
)

var flagShowRecord bool

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Extract a résumé document and upload it as one page",
	Args:  cobra.ExactArgs(1),
	RunE:  runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().BoolVar(&flagShowRecord, "show-record", false, "Print the extracted record before the result")
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()
	if err := a.requireDestination(); err != nil {
		return err
	}

	doc, err := llm.LoadDocument(args[0], a.cfg.LLM.MaxDocumentMB)
	if err != nil {
		return err
	}
	ext, err := a.extractor(ctx)
	if err != nil {
		return err
	}

	out, err := pipeline.NewProcessor(ext, a.service, a.log).
		ProcessDocument(ctx, doc, a.cfg.Notion.APIKey, a.cfg.Notion.DatabaseID)
	if err != nil {
		return err
	}
	if flagShowRecord {
		if err := printJSON(cmd.OutOrStdout(), out.Record); err != nil {
			return err
		}
	}
	printBatch(cmd.OutOrStdout(), out.Batch)
	if !out.Batch.AllSucceeded() {
		return fmt.Errorf("%s was not uploaded", doc.Filename)
	}
	return nil
}
