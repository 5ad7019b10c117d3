package llm

import (
	"context"

	"github.com/joseph-ayodele/resumes-tracker/constants"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

// Document is one résumé file handed to a vision model.
type Document struct {
	Filename string
	Format   constants.DocumentFormat
	MIMEType string
	Data     []byte
}

// Extractor is the interface our pipeline depends on.
// The returned bytes are the sanitized JSON the record was decoded from.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (entity.RawRecord, []byte, error)
}
