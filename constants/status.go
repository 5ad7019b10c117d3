package constants

// RecordStatus is the persisted outcome of one record in an upload run.
type RecordStatus string

// Stable values (store these exact strings in DB).
const (
	RecordStatusUploaded RecordStatus = "UPLOADED" // page created
	RecordStatusInvalid  RecordStatus = "INVALID"  // rejected before upload (missing name)
	RecordStatusFailed   RecordStatus = "FAILED"   // destination rejected the page
)

// RunSource records how a batch entered the system.
type RunSource string

const (
	RunSourceRecords  RunSource = "RECORDS"
	RunSourceDocument RunSource = "DOCUMENT"
)
