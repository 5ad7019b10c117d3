package cli

import (
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/resumes-tracker/internal/llm"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract résumé fields from an image or PDF and print them as JSON",
	Long: `Extract sends the document to the configured vision model (LLM_PROVIDER)
and prints the sanitized record. Nothing is uploaded.

Examples:
  resumes-tracker extract resume.pdf
  LLM_PROVIDER=openai resumes-tracker extract scan.png`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.close()

	doc, err := llm.LoadDocument(args[0], a.cfg.LLM.MaxDocumentMB)
	if err != nil {
		return err
	}
	ext, err := a.extractor(ctx)
	if err != nil {
		return err
	}
	rec, _, err := ext.Extract(ctx, doc)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), rec)
}
