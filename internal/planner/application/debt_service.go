package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
	"github.com/shopspring/decimal"
)

var (
	decHundred       = decimal.NewFromInt(100)
	decMonthsPerYear = decimal.NewFromInt(12)
)

type DebtService struct {
	repo   domain.DebtRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewDebtService(repo domain.DebtRepository, logger zerolog.Logger) *DebtService {
	return &DebtService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *DebtService) CreateDebt(account *domain.DebtAccount) error {
	account.ID = uuid.NewString()
	account.DueDate = domain.NormalizeToNoon(account.DueDate)
	account.CreatedAt = s.now()
	if err := account.Validate(); err != nil {
		return err
	}
	return s.repo.Save(*account)
}

func (s *DebtService) GetDebt(accountID string) (*domain.DebtAccount, error) {
	account, err := s.repo.FindByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, plannerErrors.ErrDebtNotFound
	}
	return account, nil
}

func (s *DebtService) ListDebts() ([]domain.DebtAccount, error) {
	return s.repo.FindAll()
}

func (s *DebtService) UpdateDebt(account domain.DebtAccount) error {
	existing, err := s.repo.FindByID(account.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return plannerErrors.ErrDebtNotFound
	}
	account.DueDate = domain.NormalizeToNoon(account.DueDate)
	account.CreatedAt = existing.CreatedAt
	if err := account.Validate(); err != nil {
		return err
	}
	return s.repo.Update(account)
}

func (s *DebtService) DeleteDebt(accountID string) error {
	return s.repo.Delete(accountID)
}

// RecordPayment applies a manual payment. A payment larger than the
// current balance is rejected, naming both figures, unless the caller
// passes override. The balance is clamped at zero either way.
func (s *DebtService) RecordPayment(accountID string, amount decimal.Decimal, date time.Time, note string, override bool) (*domain.DebtAccount, error) {
	if !amount.IsPositive() {
		return nil, plannerErrors.NewValidationError("Payment amount must be greater than zero")
	}
	account, err := s.GetDebt(accountID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(account.Balance) && !override {
		return nil, plannerErrors.NewPaymentExceedsBalanceError(amount, account.Balance)
	}

	newBalance := account.Balance.Sub(amount)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}
	payment := domain.PaymentRecord{
		ID:     uuid.NewString(),
		Date:   domain.NormalizeToNoon(date),
		Amount: amount,
		Note:   note,
	}
	if err := s.repo.AppendPayment(accountID, payment, newBalance, nil); err != nil {
		return nil, err
	}

	account.Balance = newBalance
	account.History = append(account.History, payment)
	return account, nil
}

// ApplyAutopay runs the at-most-once-per-due-date automatic payment state
// transition. It is a no-op (returning false) unless autopay is on, the
// balance is positive, asOf is the due date, and no autopay record exists
// for that calendar day yet. Monthly interest accrues before the minimum
// payment is taken, the due date advances one clamped month, and the
// history gains an "Autopay" record.
func (s *DebtService) ApplyAutopay(account *domain.DebtAccount, asOf time.Time) (*domain.DebtAccount, bool, error) {
	asOf = domain.NormalizeToNoon(asOf)
	if !account.Autopay || !account.Balance.IsPositive() {
		return account, false, nil
	}
	if !domain.SameCalendarDay(asOf, account.DueDate) {
		return account, false, nil
	}
	if account.HasPaymentOn(asOf, domain.PaymentNoteAutopay) {
		return account, false, nil
	}

	interest := account.Balance.Mul(account.APR).Div(decHundred).Div(decMonthsPerYear).Round(2)
	newBalance := account.Balance.Add(interest).Sub(account.MinPayment)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}
	newDueDate := domain.AddMonthsClamped(account.DueDate, 1)

	payment := domain.PaymentRecord{
		ID:     uuid.NewString(),
		Date:   asOf,
		Amount: account.MinPayment,
		Note:   domain.PaymentNoteAutopay,
	}
	if err := s.repo.AppendPayment(account.ID, payment, newBalance, &newDueDate); err != nil {
		return nil, false, err
	}

	updated := *account
	updated.Balance = newBalance
	updated.DueDate = newDueDate
	updated.History = append(append([]domain.PaymentRecord{}, account.History...), payment)

	s.logger.Info().
		Str("account", account.Name).
		Str("interest", interest.StringFixed(2)).
		Str("payment", account.MinPayment.StringFixed(2)).
		Str("balance", newBalance.StringFixed(2)).
		Msg("autopay applied")
	return &updated, true, nil
}

// RunAutopay checks every account against asOf. It is the daily tick; the
// idempotency check in ApplyAutopay makes re-running it on the same day
// harmless.
func (s *DebtService) RunAutopay(asOf time.Time) (int, error) {
	accounts, err := s.repo.FindAll()
	if err != nil {
		return 0, err
	}
	applied := 0
	for i := range accounts {
		_, ok, err := s.ApplyAutopay(&accounts[i], asOf)
		if err != nil {
			return applied, err
		}
		if ok {
			applied++
		}
	}
	return applied, nil
}
