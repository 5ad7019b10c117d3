package openai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
	"github.com/joseph-ayodele/resumes-tracker/internal/llm"
)

// Extract implements llm.Extractor with a vision chat/completions call.
// Images go as data-URL image_url parts, PDFs as file parts.
func (c *Client) Extract(ctx context.Context, doc llm.Document) (entity.RawRecord, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"provider", "openai",
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"filename", doc.Filename,
		"format", doc.Format,
		"bytes", len(doc.Data),
	)

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": llm.SchemaPrompt()},
			{"role": "user", "content": []map[string]any{
				{"type": "text", "text": llm.BuildUserPrompt(doc)},
				documentPart(doc),
			}},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}
	raw, status, httpErr := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.log)
	if httpErr != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "status", status, "error", httpErr,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, common.NewExtractionError("openai request failed", httpErr)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, common.NewExtractionError("decode openai response", err)
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, raw, common.NewExtractionError("no choices in openai response", nil)
	}

	rec, content, err := llm.ParseExtraction([]byte(cc.Choices[0].Message.Content), c.log)
	if err != nil {
		c.log.Error("llm.extract.schema_validation_failed",
			"req_id", rid, "error", err, "content", string(content),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, content, err
	}

	name, _ := rec.Value(constants.FieldName)
	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"name", name,
		"fields", len(rec),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, content, nil
}

func documentPart(doc llm.Document) map[string]any {
	if doc.Format == constants.PDF {
		return map[string]any{
			"type": "file",
			"file": map[string]any{
				"filename":  doc.Filename,
				"file_data": doc.DataURL(),
			},
		}
	}
	return map[string]any{
		"type":      "image_url",
		"image_url": map[string]any{"url": doc.DataURL()},
	}
}

var _ llm.Extractor = (*Client)(nil)
