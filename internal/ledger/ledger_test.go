package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hsaledger/internal/logging"
	"hsaledger/internal/models"
)

const ledgerHeader = "Date,Provider,Amount,Category,Receipt_ID,Receipt_URL,Notes,Source"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), &logging.MockLogger{})
}

func readPartition(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) // #nosec G304 - test-owned temp path
	require.NoError(t, err)
	return string(data)
}

func TestPartitionPath(t *testing.T) {
	store := NewStore("/ledger/data", &logging.MockLogger{})

	assert.Equal(t, filepath.Join("/ledger/data", "hsa_expenses_2024.csv"), store.PartitionPath("2024"))
	assert.Equal(t, filepath.Join("/ledger/data", "hsa_expenses_2024.csv"), store.PartitionFor("2024-01-15"))
	assert.Equal(t, "/ledger/data", store.DataDir())
}

func TestLoadMissingPartition(t *testing.T) {
	store := newTestStore(t)

	records, err := store.Load("2024")

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendCreatesPartitionWithHeader(t *testing.T) {
	store := newTestStore(t)
	rec := models.ExpenseRecord{
		Date:      "2024-01-15",
		Provider:  "Dr. Smith",
		Amount:    "42.50",
		Category:  "Medical",
		ReceiptID: "MED67836864F9",
		Source:    "scan",
	}

	require.NoError(t, store.Append(rec))

	content := readPartition(t, store.PartitionPath("2024"))
	assert.Equal(t, ledgerHeader+"\n2024-01-15,Dr. Smith,42.50,Medical,MED67836864F9,,,scan\n", content)
}

func TestAppendWritesHeaderOnlyOnce(t *testing.T) {
	store := newTestStore(t)
	first := models.ExpenseRecord{Date: "2024-01-15", Provider: "Dr. Smith", Amount: "42.50", Category: "Medical", Source: "scan"}
	second := models.ExpenseRecord{Date: "2024-03-01", Provider: "Eye Clinic", Amount: "75.00", Category: "Vision", Source: "manual"}

	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	content := readPartition(t, store.PartitionPath("2024"))
	assert.Equal(t, 1, strings.Count(content, "Date,Provider"))

	records, err := store.Load("2024")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Dr. Smith", records[0].Provider)
	assert.Equal(t, "Eye Clinic", records[1].Provider)
}

func TestAppendRoutesByYear(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Append(models.ExpenseRecord{Date: "2023-12-31", Provider: "Old Year Clinic", Amount: "10.00", Category: "Medical"}))
	require.NoError(t, store.Append(models.ExpenseRecord{Date: "2024-01-01", Provider: "New Year Clinic", Amount: "20.00", Category: "Medical"}))

	older, err := store.Load("2023")
	require.NoError(t, err)
	newer, err := store.Load("2024")
	require.NoError(t, err)

	require.Len(t, older, 1)
	require.Len(t, newer, 1)
	assert.Equal(t, "Old Year Clinic", older[0].Provider)
	assert.Equal(t, "New Year Clinic", newer[0].Provider)
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  models.ExpenseRecord
	}{
		{
			name: "malformed date",
			rec:  models.ExpenseRecord{Date: "01/15/2024", Amount: "42.50"},
		},
		{
			name: "unparseable amount",
			rec:  models.ExpenseRecord{Date: "2024-01-15", Amount: "forty-two"},
		},
		{
			name: "negative amount",
			rec:  models.ExpenseRecord{Date: "2024-01-15", Amount: "-42.50"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newTestStore(t)

			err := store.Append(tc.rec)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid record")

			entries, globErr := filepath.Glob(filepath.Join(store.DataDir(), "*"))
			require.NoError(t, globErr)
			assert.Empty(t, entries, "a rejected record must not create a partition")
		})
	}
}

func TestYears(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append(models.ExpenseRecord{Date: "2025-02-01", Amount: "1.00", Category: "Other"}))
	require.NoError(t, store.Append(models.ExpenseRecord{Date: "2023-02-01", Amount: "1.00", Category: "Other"}))
	require.NoError(t, store.Append(models.ExpenseRecord{Date: "2024-02-01", Amount: "1.00", Category: "Other"}))

	// Unrelated files in the data directory are not partitions.
	require.NoError(t, os.WriteFile(filepath.Join(store.DataDir(), "notes.txt"), []byte("x"), 0600))

	years, err := store.Years()

	require.NoError(t, err)
	assert.Equal(t, []string{"2023", "2024", "2025"}, years)
}

func TestYearsEmptyDataDir(t *testing.T) {
	store := newTestStore(t)

	years, err := store.Years()

	require.NoError(t, err)
	assert.Empty(t, years)
}

func TestLoadAll(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append(models.ExpenseRecord{Date: "2023-05-01", Provider: "A", Amount: "10.00", Category: "Medical"}))
	require.NoError(t, store.Append(models.ExpenseRecord{Date: "2024-05-01", Provider: "B", Amount: "20.00", Category: "Dental"}))
	require.NoError(t, store.Append(models.ExpenseRecord{Date: "2024-06-01", Provider: "C", Amount: "30.00", Category: "Vision"}))

	all, err := store.LoadAll()

	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Len(t, all["2023"], 1)
	assert.Len(t, all["2024"], 2)
	assert.Equal(t, "C", all["2024"][1].Provider)
}

func TestRewrite(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append(models.ExpenseRecord{Date: "2024-01-15", Provider: "Dr. Smith", Amount: "42.50", Category: "Other"}))

	updated := []models.ExpenseRecord{
		{Date: "2024-01-15", Provider: "Dr. Smith", Amount: "42.50", Category: "Medical"},
	}
	require.NoError(t, store.Rewrite("2024", updated))

	records, err := store.Load("2024")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Medical", records[0].Category)

	content := readPartition(t, store.PartitionPath("2024"))
	assert.Equal(t, 1, strings.Count(content, "Date,Provider"))
}

func TestRewriteNilClearsPartitionToHeader(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Append(models.ExpenseRecord{Date: "2024-01-15", Amount: "42.50", Category: "Other"}))

	require.NoError(t, store.Rewrite("2024", nil))

	content := readPartition(t, store.PartitionPath("2024"))
	assert.Equal(t, ledgerHeader+"\n", content)
}
