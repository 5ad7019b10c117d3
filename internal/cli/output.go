package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
	"github.com/joseph-ayodele/resumes-tracker/internal/pipeline"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func printBatch(w io.Writer, res entity.BatchResult) {
	for _, r := range res.Results {
		mark := "✗"
		if r.Success {
			mark = "✓"
		}
		fmt.Fprintf(w, "%s [%d] %s: %s\n", mark, r.Index, r.Identifier, r.Message)
	}
	fmt.Fprintln(w, pipeline.Summary(res))
	if res.RunID != "" {
		fmt.Fprintf(w, "run id: %s\n", res.RunID)
	}
}

func writeFile(path string, b []byte) error {
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
