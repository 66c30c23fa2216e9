package ingest

// Status names the stage a receipt reached in the ingestion pipeline.
//
// The happy path runs RECEIVED, EXTRACTING, EXTRACTED, READY, ARCHIVED,
// RECORDED. DUPLICATE and INCOMPLETE are terminal non-error outcomes
// after extraction; FAILED is terminal from any stage. Dry runs stop at
// READY.
type Status string

const (
	StatusReceived   Status = "RECEIVED"
	StatusExtracting Status = "EXTRACTING"
	StatusExtracted  Status = "EXTRACTED"
	StatusDuplicate  Status = "DUPLICATE"
	StatusIncomplete Status = "INCOMPLETE"
	StatusReady      Status = "READY"
	StatusArchived   Status = "ARCHIVED"
	StatusRecorded   Status = "RECORDED"
	StatusFailed     Status = "FAILED"
)

// String returns the status name.
func (s Status) String() string {
	return string(s)
}

// Terminal reports whether the pipeline stops at this status.
func (s Status) Terminal() bool {
	switch s {
	case StatusDuplicate, StatusIncomplete, StatusRecorded, StatusFailed:
		return true
	}
	return false
}
