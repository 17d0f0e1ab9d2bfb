package application

import (
	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
)

// BackupService assembles the full planner state into a snapshot and back.
// The database stays the source of truth; snapshots exist so the user can
// carry their data between installations.
type BackupService struct {
	transactions domain.TransactionRepository
	debts        domain.DebtRepository
	categories   domain.CategoryRepository
	settings     domain.SettingsRepository
	store        domain.SnapshotStore
}

func NewBackupService(
	transactions domain.TransactionRepository,
	debts domain.DebtRepository,
	categories domain.CategoryRepository,
	settings domain.SettingsRepository,
	store domain.SnapshotStore,
) *BackupService {
	return &BackupService{
		transactions: transactions,
		debts:        debts,
		categories:   categories,
		settings:     settings,
		store:        store,
	}
}

func (s *BackupService) BuildSnapshot() (*domain.Snapshot, error) {
	transactions, err := s.transactions.FindAll()
	if err != nil {
		return nil, err
	}
	debts, err := s.debts.FindAll()
	if err != nil {
		return nil, err
	}
	categories, err := s.categories.FindAll()
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	return &domain.Snapshot{
		Transactions: transactions,
		DebtAccounts: debts,
		Categories:   categories,
		Settings:     settings,
	}, nil
}

func (s *BackupService) ExportSnapshot(path string) error {
	snapshot, err := s.BuildSnapshot()
	if err != nil {
		return err
	}
	return s.store.Save(path, *snapshot)
}
