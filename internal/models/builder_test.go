package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpenseBuilder(t *testing.T) {
	builder := NewExpenseBuilder()

	assert.NotNil(t, builder)
	assert.Nil(t, builder.err)
	assert.Equal(t, string(CategoryOther), builder.rec.Category)
	assert.Equal(t, string(SourceManual), builder.rec.Source)
}

func TestExpenseBuilder_WithDate(t *testing.T) {
	tests := []struct {
		name         string
		dateStr      string
		expectError  bool
		expectedDate string
	}{
		{
			name:         "valid ISO date",
			dateStr:      "2024-01-15",
			expectError:  false,
			expectedDate: "2024-01-15",
		},
		{
			name:         "surrounding whitespace trimmed",
			dateStr:      " 2024-01-15 ",
			expectError:  false,
			expectedDate: "2024-01-15",
		},
		{
			name:        "european format rejected",
			dateStr:     "15.01.2024",
			expectError: true,
		},
		{
			name:        "empty date",
			dateStr:     "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewExpenseBuilder().WithDate(tt.dateStr)

			if tt.expectError {
				assert.NotNil(t, builder.err)
			} else {
				assert.Nil(t, builder.err)
				assert.Equal(t, tt.expectedDate, builder.rec.Date)
			}
		})
	}
}

func TestExpenseBuilder_WithDateFromTime(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	builder := NewExpenseBuilder().WithDateFromTime(date)

	assert.Nil(t, builder.err)
	assert.Equal(t, "2024-01-15", builder.rec.Date)
}

func TestExpenseBuilder_WithDateFromTime_ZeroTime(t *testing.T) {
	builder := NewExpenseBuilder().WithDateFromTime(time.Time{})

	assert.NotNil(t, builder.err)
	assert.Contains(t, builder.err.Error(), "date cannot be zero")
}

func TestExpenseBuilder_WithAmount(t *testing.T) {
	builder := NewExpenseBuilder().WithAmount(decimal.NewFromFloat(42.5))

	assert.Nil(t, builder.err)
	assert.Equal(t, "42.50", builder.rec.Amount)
}

func TestExpenseBuilder_WithAmount_Negative(t *testing.T) {
	builder := NewExpenseBuilder().WithAmount(decimal.NewFromFloat(-10))

	assert.NotNil(t, builder.err)
	assert.Contains(t, builder.err.Error(), "negative amount")
}

func TestExpenseBuilder_WithAmountFromString(t *testing.T) {
	tests := []struct {
		name           string
		amountStr      string
		expectError    bool
		expectedAmount string
	}{
		{
			name:           "plain decimal",
			amountStr:      "123.45",
			expectedAmount: "123.45",
		},
		{
			name:           "dollar sign and separators",
			amountStr:      "$1,234.5",
			expectedAmount: "1234.50",
		},
		{
			name:           "integer padded to two places",
			amountStr:      "75",
			expectedAmount: "75.00",
		},
		{
			name:        "empty amount",
			amountStr:   "",
			expectError: true,
		},
		{
			name:        "negative amount",
			amountStr:   "-5.00",
			expectError: true,
		},
		{
			name:        "non-numeric",
			amountStr:   "abc",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewExpenseBuilder().WithAmountFromString(tt.amountStr)

			if tt.expectError {
				assert.NotNil(t, builder.err)
			} else {
				assert.Nil(t, builder.err)
				assert.Equal(t, tt.expectedAmount, builder.rec.Amount)
			}
		})
	}
}

func TestExpenseBuilder_WithCategory(t *testing.T) {
	builder := NewExpenseBuilder().WithCategory(CategoryDental)
	assert.Nil(t, builder.err)
	assert.Equal(t, "Dental", builder.rec.Category)

	builder = NewExpenseBuilder().WithCategory(Category("Veterinary"))
	assert.NotNil(t, builder.err)
}

func TestExpenseBuilder_WithRawCategory(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"exact match", "Prescription", "Prescription"},
		{"unknown falls back to Other", "Veterinary", "Other"},
		{"case mismatch falls back to Other", "medical", "Other"},
		{"empty falls back to Other", "", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewExpenseBuilder().WithRawCategory(tt.raw)
			assert.Nil(t, builder.err)
			assert.Equal(t, tt.expected, builder.rec.Category)
		})
	}
}

func TestExpenseBuilder_WithSource(t *testing.T) {
	builder := NewExpenseBuilder().WithSource(SourceScan)
	assert.Nil(t, builder.err)
	assert.Equal(t, "scan", builder.rec.Source)

	builder = NewExpenseBuilder().WithSource(Source("import"))
	assert.NotNil(t, builder.err)
}

func TestExpenseBuilder_ErrorsStick(t *testing.T) {
	// An earlier error must survive later valid calls
	builder := NewExpenseBuilder().
		WithDate("not-a-date").
		WithProvider("Dr. Smith").
		WithAmount(decimal.NewFromFloat(42.5))

	_, err := builder.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}

func TestExpenseBuilder_Build(t *testing.T) {
	rec, err := NewExpenseBuilder().
		WithDate("2024-01-15").
		WithProvider("Dr. Smith & Assoc.").
		WithAmount(decimal.NewFromFloat(42.5)).
		WithCategory(CategoryMedical).
		WithReceiptID("MED3F2A9C1B4E").
		WithReceiptURL("receipts/2024/2024-01-15_dr__smith___assoc__42.5.jpg").
		WithNotes("copay").
		WithSource(SourceScan).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", rec.Date)
	assert.Equal(t, "Dr. Smith & Assoc.", rec.Provider)
	assert.Equal(t, "42.50", rec.Amount)
	assert.Equal(t, "Medical", rec.Category)
	assert.Equal(t, "MED3F2A9C1B4E", rec.ReceiptID)
	assert.Equal(t, "receipts/2024/2024-01-15_dr__smith___assoc__42.5.jpg", rec.ReceiptURL)
	assert.Equal(t, "copay", rec.Notes)
	assert.Equal(t, "scan", rec.Source)
}

func TestExpenseBuilder_Build_Validation(t *testing.T) {
	// Missing date
	_, err := NewExpenseBuilder().WithAmount(decimal.NewFromInt(10)).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "date is required")

	// Missing amount
	_, err = NewExpenseBuilder().WithDate("2024-01-15").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount is required")

	// Defaults fill category and source
	rec, err := NewExpenseBuilder().
		WithDate("2024-01-15").
		WithAmount(decimal.NewFromInt(10)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, "Other", rec.Category)
	assert.Equal(t, "manual", rec.Source)
	assert.Empty(t, rec.Provider)
}
