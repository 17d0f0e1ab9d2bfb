package interfaces

import (
	"errors"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/application"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
)

type MockTransactionService struct {
	transactions  []domain.Transaction
	splitClosed   *domain.Transaction
	splitNew      *domain.Transaction
	splitErr      error
	lastCutover   time.Time
	lastEdits     application.SeriesEdits
	shouldFail    bool
	validationErr error
}

func (m *MockTransactionService) CreateTransaction(transaction *domain.Transaction) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	if m.validationErr != nil {
		return m.validationErr
	}
	transaction.ID = "generated-id"
	m.transactions = append(m.transactions, *transaction)
	return nil
}

func (m *MockTransactionService) GetTransaction(transactionID string) (*domain.Transaction, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	for i := range m.transactions {
		if m.transactions[i].ID == transactionID {
			return &m.transactions[i], nil
		}
	}
	return nil, nil
}

func (m *MockTransactionService) ListTransactions() ([]domain.Transaction, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.transactions, nil
}

func (m *MockTransactionService) UpdateTransaction(transaction domain.Transaction) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	for i := range m.transactions {
		if m.transactions[i].ID == transaction.ID {
			m.transactions[i] = transaction
			return nil
		}
	}
	return plannerErrors.ErrTransactionNotFound
}

func (m *MockTransactionService) DeleteTransaction(transactionID string) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	return nil
}

func (m *MockTransactionService) SplitSeries(masterID string, cutover time.Time, edits application.SeriesEdits) (*domain.Transaction, *domain.Transaction, error) {
	m.lastCutover = cutover
	m.lastEdits = edits
	if m.splitErr != nil {
		return nil, nil, m.splitErr
	}
	return m.splitClosed, m.splitNew, nil
}

type MockProjectionService struct {
	occurrences []domain.Occurrence
	created     int
	shouldFail  bool
}

func (m *MockProjectionService) UpcomingOccurrences(windowStart, windowEnd time.Time) ([]domain.Occurrence, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.occurrences, nil
}

func (m *MockProjectionService) MaterializeDue(asOf time.Time) (int, error) {
	if m.shouldFail {
		return 0, errors.New("service error")
	}
	return m.created, nil
}
