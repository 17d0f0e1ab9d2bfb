package infrastructure

import (
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
	"github.com/shopspring/decimal"
)

type MockDebtRepository struct {
	Accounts []domain.DebtAccount
}

func (m *MockDebtRepository) Save(account domain.DebtAccount) error {
	m.Accounts = append(m.Accounts, account)
	return nil
}

func (m *MockDebtRepository) Update(account domain.DebtAccount) error {
	for i := range m.Accounts {
		if m.Accounts[i].ID == account.ID {
			m.Accounts[i] = account
			return nil
		}
	}
	return plannerErrors.ErrDebtNotFound
}

func (m *MockDebtRepository) Delete(accountID string) error {
	for i := range m.Accounts {
		if m.Accounts[i].ID == accountID {
			m.Accounts = append(m.Accounts[:i], m.Accounts[i+1:]...)
			return nil
		}
	}
	return plannerErrors.ErrDebtNotFound
}

func (m *MockDebtRepository) FindByID(accountID string) (*domain.DebtAccount, error) {
	for i := range m.Accounts {
		if m.Accounts[i].ID == accountID {
			found := m.Accounts[i]
			found.History = append([]domain.PaymentRecord{}, m.Accounts[i].History...)
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MockDebtRepository) FindAll() ([]domain.DebtAccount, error) {
	return append([]domain.DebtAccount{}, m.Accounts...), nil
}

func (m *MockDebtRepository) AppendPayment(accountID string, payment domain.PaymentRecord, newBalance decimal.Decimal, newDueDate *time.Time) error {
	for i := range m.Accounts {
		if m.Accounts[i].ID == accountID {
			m.Accounts[i].History = append(m.Accounts[i].History, payment)
			m.Accounts[i].Balance = newBalance
			if newDueDate != nil {
				m.Accounts[i].DueDate = *newDueDate
			}
			return nil
		}
	}
	return plannerErrors.ErrDebtNotFound
}
