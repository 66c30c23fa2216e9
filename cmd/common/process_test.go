package common

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsaledger/internal/batch"
	"hsaledger/internal/ingest"
	"hsaledger/internal/models"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteJSON(&buf, map[string]string{"status": "RECORDED"})
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "RECORDED", decoded["status"])
}

func TestFormatOutcomeRecorded(t *testing.T) {
	out := FormatOutcome(&ingest.Outcome{
		Status:     ingest.StatusRecorded,
		SourcePath: "incoming/receipt.jpg",
		ReceiptURL: "receipts/2024/2024-06-01_acme_clinic_75.jpg",
		Record: &models.ExpenseRecord{
			Date:      "2024-06-01",
			Provider:  "Acme Clinic",
			Amount:    "75.00",
			Category:  "Medical",
			ReceiptID: "MED1234567890",
		},
	})

	assert.Contains(t, out, "Recorded MED1234567890")
	assert.Contains(t, out, "Acme Clinic")
	assert.Contains(t, out, "$75.00")
	assert.Contains(t, out, "archived: receipts/2024/2024-06-01_acme_clinic_75.jpg")
}

func TestFormatOutcomeDryRun(t *testing.T) {
	out := FormatOutcome(&ingest.Outcome{
		Status:     ingest.StatusReady,
		DryRun:     true,
		ReceiptURL: "receipts/2024/2024-06-01_acme_clinic_75.jpg",
		Record: &models.ExpenseRecord{
			Date:     "2024-06-01",
			Provider: "Acme Clinic",
			Amount:   "75.00",
		},
	})

	assert.Contains(t, out, "Dry run: would record")
	assert.Contains(t, out, "would archive to: receipts/2024/2024-06-01_acme_clinic_75.jpg")
}

func TestFormatOutcomeDuplicate(t *testing.T) {
	out := FormatOutcome(&ingest.Outcome{
		Status:      ingest.StatusDuplicate,
		DuplicateOf: "MED1234567890",
		Record:      &models.ExpenseRecord{Date: "2024-06-01", Amount: "75.00"},
	})

	assert.Contains(t, out, "Duplicate of MED1234567890")
	assert.Contains(t, out, "nothing written")
}

func TestFormatOutcomeIncomplete(t *testing.T) {
	out := FormatOutcome(&ingest.Outcome{
		Status:  ingest.StatusIncomplete,
		Missing: []string{"amount"},
		Record:  &models.ExpenseRecord{Date: "2024-06-01", Provider: "Acme Clinic"},
	})

	assert.Contains(t, out, "missing: amount")
	assert.Contains(t, out, "manual entry")
}

func TestFormatSummary(t *testing.T) {
	out := FormatSummary(&batch.Summary{
		Directory: "incoming",
		Processed: []*ingest.Outcome{
			{
				Status: ingest.StatusRecorded,
				Record: &models.ExpenseRecord{ReceiptID: "MEDAAAAAAAAAA", Date: "2024-06-01", Amount: "75.00"},
			},
		},
		Duplicates:  []string{"incoming/dup.jpg"},
		Skipped:     []string{"incoming/blurry.jpg"},
		Errors:      []batch.FileError{{File: "incoming/broken.pdf", Error: "conversion failed"}},
		TotalAmount: decimal.RequireFromString("75.00"),
	})

	assert.Contains(t, out, "processed:  1")
	assert.Contains(t, out, "duplicates: 1")
	assert.Contains(t, out, "skipped:    1")
	assert.Contains(t, out, "errors:     1")
	assert.Contains(t, out, "recorded MEDAAAAAAAAAA")
	assert.Contains(t, out, "duplicate: incoming/dup.jpg")
	assert.Contains(t, out, "incomplete: incoming/blurry.jpg")
	assert.Contains(t, out, "error: incoming/broken.pdf: conversion failed")
}
