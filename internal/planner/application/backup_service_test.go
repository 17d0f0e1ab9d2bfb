package application

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/infrastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackupService() *BackupService {
	return NewBackupService(
		&infrastructure.MockTransactionRepository{
			Transactions: []domain.Transaction{newTestMaster("rent", "1200", domain.FrequencyMonthly, localNoon(2024, time.January, 31))},
		},
		&infrastructure.MockDebtRepository{
			Accounts: []domain.DebtAccount{{
				ID: "card", Name: "Visa", Kind: domain.DebtKindRevolving,
				Balance: dec("500"), MinPayment: dec("100"),
				DueDate: localNoon(2024, time.March, 15),
			}},
		},
		&infrastructure.MockCategoryRepository{Categories: defaultCategories()},
		infrastructure.NewMockSettingsRepository(domain.DefaultSettings()),
		infrastructure.NewSnapshotStore(),
	)
}

func TestBuildSnapshot(t *testing.T) {
	snapshot, err := newBackupService().BuildSnapshot()
	require.NoError(t, err)

	assert.Len(t, snapshot.Transactions, 1)
	assert.Len(t, snapshot.DebtAccounts, 1)
	assert.NotEmpty(t, snapshot.Categories)
	assert.Equal(t, "USD", snapshot.Settings.Currency)
}

func TestExportSnapshot_RoundTripsThroughStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	service := newBackupService()

	require.NoError(t, service.ExportSnapshot(path))

	loaded, err := infrastructure.NewSnapshotStore().Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded.Transactions, 1)
	assert.Equal(t, "Visa", loaded.DebtAccounts[0].Name)
	assert.False(t, loaded.Meta.Timestamp.IsZero())
}
