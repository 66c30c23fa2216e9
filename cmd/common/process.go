// Package common contains shared functionality for command handlers
package common

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"hsaledger/internal/batch"
	"hsaledger/internal/currencyutils"
	"hsaledger/internal/ingest"
)

// WriteJSON writes v to w as indented JSON, the form every command's
// --json flag produces.
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// FormatOutcome renders a single receipt's pipeline outcome for a
// terminal.
func FormatOutcome(o *ingest.Outcome) string {
	var b strings.Builder

	switch o.Status {
	case ingest.StatusRecorded:
		fmt.Fprintf(&b, "Recorded %s\n", o.Record.ReceiptID)
		writeRecordLines(&b, o)
		fmt.Fprintf(&b, "  archived: %s\n", o.ReceiptURL)
	case ingest.StatusReady:
		// Dry runs stop at READY.
		b.WriteString("Dry run: would record\n")
		writeRecordLines(&b, o)
		fmt.Fprintf(&b, "  would archive to: %s\n", o.ReceiptURL)
	case ingest.StatusDuplicate:
		fmt.Fprintf(&b, "Duplicate of %s: nothing written\n", o.DuplicateOf)
		writeRecordLines(&b, o)
	case ingest.StatusIncomplete:
		fmt.Fprintf(&b, "Incomplete extraction (missing: %s), receipt needs manual entry\n",
			strings.Join(o.Missing, ", "))
		writeRecordLines(&b, o)
	default:
		fmt.Fprintf(&b, "%s: %s\n", o.Status, o.SourcePath)
	}

	return b.String()
}

func writeRecordLines(b *strings.Builder, o *ingest.Outcome) {
	if o.Record == nil {
		return
	}
	rec := o.Record
	provider := rec.Provider
	if provider == "" {
		provider = "(unknown provider)"
	}
	fmt.Fprintf(b, "  %s  %s", orDash(rec.Date), provider)
	if rec.Amount != "" {
		fmt.Fprintf(b, "  $%s", rec.Amount)
	}
	if rec.Category != "" {
		fmt.Fprintf(b, "  %s", rec.Category)
	}
	b.WriteString("\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// FormatSummary renders a batch run's summary for a terminal.
func FormatSummary(s *batch.Summary) string {
	var b strings.Builder

	if s.DryRun {
		fmt.Fprintf(&b, "Batch dry run over %s\n", s.Directory)
	} else {
		fmt.Fprintf(&b, "Batch run over %s\n", s.Directory)
	}
	fmt.Fprintf(&b, "  processed:  %d (%s)\n", len(s.Processed), currencyutils.FormatUSD(s.TotalAmount))
	fmt.Fprintf(&b, "  duplicates: %d\n", len(s.Duplicates))
	fmt.Fprintf(&b, "  skipped:    %d\n", len(s.Skipped))
	fmt.Fprintf(&b, "  errors:     %d\n", len(s.Errors))

	for _, outcome := range s.Processed {
		if outcome.Record != nil {
			fmt.Fprintf(&b, "    recorded %s  %s  $%s\n",
				outcome.Record.ReceiptID, outcome.Record.Date, outcome.Record.Amount)
		}
	}
	for _, file := range s.Duplicates {
		fmt.Fprintf(&b, "    duplicate: %s\n", file)
	}
	for _, file := range s.Skipped {
		fmt.Fprintf(&b, "    incomplete: %s\n", file)
	}
	for _, fe := range s.Errors {
		fmt.Fprintf(&b, "    error: %s: %s\n", fe.File, fe.Error)
	}

	return b.String()
}
