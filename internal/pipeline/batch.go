package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
	"github.com/joseph-ayodele/resumes-tracker/internal/mapper"
)

// Batcher maps and uploads records one at a time, in input order.
type Batcher struct {
	mapper   *mapper.Mapper
	uploader *Uploader
	schema   entity.DestinationSchema
	log      *slog.Logger
}

func NewBatcher(m *mapper.Mapper, u *Uploader, schema entity.DestinationSchema, logger *slog.Logger) *Batcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Batcher{mapper: m, uploader: u, schema: schema, log: logger}
}

// Run processes every record and never stops early. The result has exactly
// one entry per input record, in the same order.
func (b *Batcher) Run(ctx context.Context, records []entity.RawRecord) entity.BatchResult {
	start := time.Now()
	b.log.Info("pipeline.batch.start", "records", len(records), "schema_properties", b.schema.Len())

	results := make([]entity.RecordResult, 0, len(records))
	for i, rec := range records {
		results = append(results, b.runOne(ctx, i+1, rec))
	}

	out := entity.BatchResult{Results: results}
	b.log.Info("pipeline.batch.done",
		"total", out.Total(),
		"succeeded", out.Succeeded(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out
}

func (b *Batcher) runOne(ctx context.Context, index int, rec entity.RawRecord) entity.RecordResult {
	name, ok := mapper.DisplayName(rec)
	if !ok {
		name = Identifier(index)
	}

	props, err := b.mapper.Build(rec, b.schema)
	if err != nil {
		b.log.Warn("pipeline.batch.invalid_record", "index", index, "error", err)
		return entity.RecordResult{
			Index:      index,
			Identifier: name,
			Message:    err.Error(),
			Invalid:    true,
		}
	}

	res := b.uploader.Upload(ctx, name, props)
	res.Index = index
	return res
}

// Identifier labels a record that has no usable name.
func Identifier(index int) string {
	return fmt.Sprintf("record #%d", index)
}
