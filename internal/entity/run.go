package entity

import (
	"time"

	"github.com/joseph-ayodele/resumes-tracker/constants"
)

// UploadRun is a stored batch together with its per-record outcomes.
type UploadRun struct {
	ID         string              `json:"id"`
	Source     constants.RunSource `json:"source"`
	DatabaseID string              `json:"database_id"`
	Total      int                 `json:"total"`
	Succeeded  int                 `json:"succeeded"`
	CreatedAt  time.Time           `json:"created_at"`
	Results    []RecordResult      `json:"results,omitempty"`
}

// Batch returns the run's outcomes as a BatchResult.
func (r UploadRun) Batch() BatchResult {
	return BatchResult{RunID: r.ID, Results: r.Results}
}

// Status classifies a record outcome for storage.
func (r RecordResult) Status() constants.RecordStatus {
	switch {
	case r.Success:
		return constants.RecordStatusUploaded
	case r.Invalid:
		return constants.RecordStatusInvalid
	default:
		return constants.RecordStatusFailed
	}
}
