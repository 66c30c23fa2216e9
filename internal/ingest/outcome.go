package ingest

import "hsaledger/internal/models"

// Outcome describes where a single receipt ended up.
//
// Record is populated as soon as extraction yields anything, even for
// INCOMPLETE and DUPLICATE outcomes, so callers can show what was read
// off the receipt. ReceiptURL is the ledger-relative archive path; on a
// dry run it is the planned path and no file exists there.
type Outcome struct {
	Status      Status                `json:"status"`
	SourcePath  string                `json:"source_path"`
	Record      *models.ExpenseRecord `json:"record,omitempty"`
	ReceiptURL  string                `json:"receipt_url,omitempty"`
	DuplicateOf string                `json:"duplicate_of,omitempty"`
	Missing     []string              `json:"missing,omitempty"`
	DryRun      bool                  `json:"dry_run,omitempty"`
}
