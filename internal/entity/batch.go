package entity

// PageRef identifies a page created in the destination.
type PageRef struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// RecordResult is the outcome of processing one record of a batch.
type RecordResult struct {
	Index      int    `json:"index"` // 1-based input position
	Identifier string `json:"identifier"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Invalid    bool   `json:"invalid,omitempty"` // rejected before upload
	PageID     string `json:"page_id,omitempty"`
	PageURL    string `json:"page_url,omitempty"`
}

// BatchResult is the ordered per-record outcome list of one batch.
type BatchResult struct {
	RunID   string         `json:"run_id,omitempty"`
	Results []RecordResult `json:"results"`
}

// Total is the number of records processed.
func (b BatchResult) Total() int { return len(b.Results) }

// Succeeded is the number of records uploaded.
func (b BatchResult) Succeeded() int {
	n := 0
	for _, r := range b.Results {
		if r.Success {
			n++
		}
	}
	return n
}

// AllSucceeded reports whether every record was uploaded.
func (b BatchResult) AllSucceeded() bool {
	return b.Succeeded() == b.Total()
}
