package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/resumes-tracker/internal/destination"
	"github.com/joseph-ayodele/resumes-tracker/internal/entity"
)

// Uploader creates one page per call. It never returns an error: every
// failure, including a panicking destination, becomes a failed result.
type Uploader struct {
	dest       destination.Destination
	databaseID string
	log        *slog.Logger
}

func NewUploader(dest destination.Destination, databaseID string, logger *slog.Logger) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{dest: dest, databaseID: databaseID, log: logger}
}

func (u *Uploader) Upload(ctx context.Context, name string, props entity.PropertySet) (res entity.RecordResult) {
	start := time.Now()
	res.Identifier = name

	defer func() {
		if r := recover(); r != nil {
			u.log.Error("pipeline.upload.panic", "name", name, "panic", r)
			res.Success = false
			res.Message = fmt.Sprintf("upload failed: %v", r)
		}
	}()

	ref, err := u.dest.CreatePage(ctx, u.databaseID, props)
	if err != nil {
		u.log.Warn("pipeline.upload.failed",
			"name", name, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		res.Message = fmt.Sprintf("upload failed: %v", err)
		return res
	}

	u.log.Info("pipeline.upload.ok",
		"name", name, "page_id", ref.ID,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	res.Success = true
	res.Message = fmt.Sprintf("'%s' uploaded", name)
	res.PageID = ref.ID
	res.PageURL = ref.URL
	return res
}
