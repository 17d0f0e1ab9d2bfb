package infrastructure

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store := NewSnapshotStore()
	path := filepath.Join(t.TempDir(), "backup.json")

	end := time.Date(2024, time.May, 31, 12, 0, 0, 0, time.Local)
	snapshot := domain.Snapshot{
		Transactions: []domain.Transaction{
			{
				ID:          "rent",
				Amount:      decimal.RequireFromString("1200"),
				Type:        "expense",
				Category:    "Housing",
				Date:        time.Date(2024, time.January, 31, 12, 0, 0, 0, time.Local),
				IsRecurring: true,
				Frequency:   domain.FrequencyMonthly,
				SeriesID:    "rent",
				EndDate:     &end,
			},
		},
		DebtAccounts: []domain.DebtAccount{
			{
				ID:         "card",
				Name:       "Visa",
				Kind:       domain.DebtKindRevolving,
				Balance:    decimal.RequireFromString("500"),
				APR:        decimal.RequireFromString("24"),
				MinPayment: decimal.RequireFromString("100"),
				DueDate:    time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local),
			},
		},
		Categories: []domain.Category{{ID: "1", Name: "Housing", Type: "expense"}},
		Settings:   domain.DefaultSettings(),
	}

	err := store.Save(path, snapshot)
	assert.NoError(t, err)

	loaded, err := store.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "json_snapshot", loaded.Meta.Storage)
	assert.Equal(t, snapshotVersion, loaded.Meta.Version)
	assert.False(t, loaded.Meta.Timestamp.IsZero())

	assert.Len(t, loaded.Transactions, 1)
	assert.True(t, loaded.Transactions[0].Amount.Equal(decimal.RequireFromString("1200")))
	assert.NotNil(t, loaded.Transactions[0].EndDate)
	assert.Len(t, loaded.DebtAccounts, 1)
	assert.Equal(t, "Visa", loaded.DebtAccounts[0].Name)
	assert.Equal(t, "USD", loaded.Settings.Currency)
}

func TestSaveSnapshot_LeavesNoTempFileBehind(t *testing.T) {
	store := NewSnapshotStore()
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	err := store.Save(path, domain.Snapshot{Settings: domain.DefaultSettings()})
	assert.NoError(t, err)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "backup.json", entries[0].Name())
}

func TestLoadSnapshot_MissingFile(t *testing.T) {
	_, err := NewSnapshotStore().Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
