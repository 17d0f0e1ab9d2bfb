package infrastructure

import (
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
)

// MockTransactionRepository is the in-memory repository used by unit tests.
type MockTransactionRepository struct {
	Transactions []domain.Transaction
}

func (m *MockTransactionRepository) Save(transaction domain.Transaction) error {
	m.Transactions = append(m.Transactions, transaction)
	return nil
}

func (m *MockTransactionRepository) Update(transaction domain.Transaction) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transaction.ID {
			m.Transactions[i] = transaction
			return nil
		}
	}
	return plannerErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Delete(transactionID string) error {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return plannerErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) FindByID(transactionID string) (*domain.Transaction, error) {
	for i := range m.Transactions {
		if m.Transactions[i].ID == transactionID {
			found := m.Transactions[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockTransactionRepository) FindAll() ([]domain.Transaction, error) {
	return append([]domain.Transaction{}, m.Transactions...), nil
}

func (m *MockTransactionRepository) FindMasters() ([]domain.Transaction, error) {
	var masters []domain.Transaction
	for i := range m.Transactions {
		if m.Transactions[i].IsMaster() {
			masters = append(masters, m.Transactions[i])
		}
	}
	return masters, nil
}

func (m *MockTransactionRepository) FindBySeries(seriesID string) ([]domain.Transaction, error) {
	var family []domain.Transaction
	for i := range m.Transactions {
		if m.Transactions[i].SeriesID == seriesID || m.Transactions[i].ID == seriesID {
			family = append(family, m.Transactions[i])
		}
	}
	return family, nil
}

func (m *MockTransactionRepository) MaterializeInstances(instances []domain.Transaction, checkpoints map[string]time.Time) error {
	m.Transactions = append(m.Transactions, instances...)
	for i := range m.Transactions {
		if checkpoint, ok := checkpoints[m.Transactions[i].ID]; ok {
			cp := checkpoint
			m.Transactions[i].LastGenerated = &cp
		}
	}
	return nil
}
