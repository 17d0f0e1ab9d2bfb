package interfaces

import (
	"errors"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
	"github.com/shopspring/decimal"
)

type MockDebtService struct {
	accounts   []domain.DebtAccount
	paymentErr error
	shouldFail bool
}

func (m *MockDebtService) CreateDebt(account *domain.DebtAccount) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	account.ID = "generated-id"
	m.accounts = append(m.accounts, *account)
	return nil
}

func (m *MockDebtService) GetDebt(accountID string) (*domain.DebtAccount, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	for i := range m.accounts {
		if m.accounts[i].ID == accountID {
			return &m.accounts[i], nil
		}
	}
	return nil, plannerErrors.ErrDebtNotFound
}

func (m *MockDebtService) ListDebts() ([]domain.DebtAccount, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.accounts, nil
}

func (m *MockDebtService) UpdateDebt(account domain.DebtAccount) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	for i := range m.accounts {
		if m.accounts[i].ID == account.ID {
			m.accounts[i] = account
			return nil
		}
	}
	return plannerErrors.ErrDebtNotFound
}

func (m *MockDebtService) DeleteDebt(accountID string) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	return nil
}

func (m *MockDebtService) RecordPayment(accountID string, amount decimal.Decimal, date time.Time, note string, override bool) (*domain.DebtAccount, error) {
	if m.paymentErr != nil {
		return nil, m.paymentErr
	}
	account, err := m.GetDebt(accountID)
	if err != nil {
		return nil, err
	}
	account.Balance = account.Balance.Sub(amount)
	return account, nil
}
