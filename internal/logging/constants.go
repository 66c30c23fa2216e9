package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldComponent = "component"
	FieldFile      = "file_path"
	FieldDirectory = "directory"
	FieldYear      = "year"
	FieldPartition = "partition"
	FieldReceiptID = "receipt_id"
	FieldProvider  = "provider"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldStatus    = "status"
	FieldSource    = "source"
	FieldReason    = "reason"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldCount     = "count"
	FieldRow       = "row"
	FieldRunID     = "run_id"
	FieldDryRun    = "dry_run"
	FieldModel     = "model"
)
