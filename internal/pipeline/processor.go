package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
	"github.com/joseph-ayodele/resumes-tracker/internal/llm"
)

// DocumentResult is the outcome of processing one résumé document.
type DocumentResult struct {
	Record  entity.RawRecord   `json:"record"`
	RawJSON []byte             `json:"-"`
	Batch   entity.BatchResult `json:"batch"`
}

// Processor coordinates extraction then upload for a single document.
type Processor struct {
	extractor llm.Extractor
	service   *Service
	log       *slog.Logger
}

func NewProcessor(extractor llm.Extractor, service *Service, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{extractor: extractor, service: service, log: logger}
}

// ProcessDocument connects first so a bad credential fails before the model
// call, then extracts one record and uploads it as a batch of one.
// Connection and extraction errors are returned; an upload failure is not.
func (p *Processor) ProcessDocument(ctx context.Context, doc llm.Document, credential, databaseID string) (DocumentResult, error) {
	start := time.Now()
	if _, err := p.service.Connect(ctx, credential, databaseID); err != nil {
		p.log.Error("processor.connect.failed", "filename", doc.Filename, "err", err)
		return DocumentResult{}, err
	}

	rec, raw, err := p.extractor.Extract(ctx, doc)
	if err != nil {
		p.log.Error("processor.extract.failed", "filename", doc.Filename, "err", err)
		return DocumentResult{RawJSON: raw}, err
	}
	p.log.Info("processor.extract.ok", "filename", doc.Filename, "fields", len(rec))

	batch, err := p.service.run(ctx, constants.RunSourceDocument, []entity.RawRecord{rec}, credential, databaseID)
	if err != nil {
		p.log.Error("processor.upload.failed", "filename", doc.Filename, "err", err)
		return DocumentResult{Record: rec, RawJSON: raw}, err
	}
	p.log.Info("processor.upload.done",
		"filename", doc.Filename,
		"run_id", batch.RunID,
		"succeeded", batch.Succeeded(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return DocumentResult{Record: rec, RawJSON: raw, Batch: batch}, nil
}

// Extract runs the model only.
func (p *Processor) Extract(ctx context.Context, doc llm.Document) (entity.RawRecord, []byte, error) {
	return p.extractor.Extract(ctx, doc)
}
