// Package gemini implements llm.Extractor on Google's Gemini models through langchaingo.
package gemini

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/common"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
	"github.com/joseph-ayodele/resumes-tracker/internal/llm"
)

// Config for the Gemini client.
type Config struct {
	APIKey      string
	Model       string // default "gemini-2.0-flash"
	Temperature float32
	Timeout     time.Duration // per extraction
}

// generator is the slice of llms.Model we call.
type generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

type Client struct {
	cfg Config
	gen generator
	log *slog.Logger
}

// NewClient dials the Gemini API.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, common.NewAppError(common.CodeConfig, "init gemini client", common.ErrExtraction, err)
	}
	return newWithGenerator(cfg, model, logger), nil
}

func newWithGenerator(cfg Config, gen generator, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	return &Client{cfg: cfg, gen: gen, log: logger}
}

// Extract sends the instruction, the output schema and the document bytes as
// one human turn in JSON mode.
func (c *Client) Extract(ctx context.Context, doc llm.Document) (entity.RawRecord, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"provider", "gemini",
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"filename", doc.Filename,
		"format", doc.Format,
		"bytes", len(doc.Data),
	)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	msgs := []llms.MessageContent{{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextPart(llm.BuildUserPrompt(doc)),
			llms.TextPart(llm.SchemaPrompt()),
			llms.BinaryPart(doc.MIMEType, doc.Data),
		},
	}}
	resp, err := c.gen.GenerateContent(ctx, msgs,
		llms.WithModel(c.cfg.Model),
		llms.WithJSONMode(),
		llms.WithTemperature(float64(c.cfg.Temperature)),
	)
	if err != nil {
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, common.NewExtractionError("gemini request failed", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, nil, common.NewExtractionError("no choices in gemini response", nil)
	}

	rec, content, err := llm.ParseExtraction([]byte(resp.Choices[0].Content), c.log)
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

var _ llm.Extractor = (*Client)(nil)
