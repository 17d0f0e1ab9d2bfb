package domain

import (
	"strings"
	"time"

	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
	"github.com/shopspring/decimal"
)

const (
	DebtKindRevolving   = "revolving"   // credit card
	DebtKindInstallment = "installment" // loan
)

// PaymentNoteAutopay tags history records written by the autopay engine and
// is what makes the engine idempotent per due date.
const PaymentNoteAutopay = "Autopay"

type DebtRepository interface {
	Save(account DebtAccount) error
	Update(account DebtAccount) error
	Delete(accountID string) error
	FindByID(accountID string) (*DebtAccount, error)
	FindAll() ([]DebtAccount, error)
	// AppendPayment stores the payment record and the resulting balance
	// (and, for autopay, the advanced due date) atomically.
	AppendPayment(accountID string, payment PaymentRecord, newBalance decimal.Decimal, newDueDate *time.Time) error
}

// PaymentRecord is one entry in a debt account's payment history.
type PaymentRecord struct {
	ID     string          `json:"id"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// DebtAccount is a credit card or loan tracked by the planner.
type DebtAccount struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Kind       string          `json:"kind"` // "revolving" or "installment"
	Limit      decimal.Decimal `json:"limit"`
	Balance    decimal.Decimal `json:"balance"`
	APR        decimal.Decimal `json:"apr"` // percent
	MinPayment decimal.Decimal `json:"minPayment"`
	DueDate    time.Time       `json:"dueDate"`
	Autopay    bool            `json:"autopay"`
	History    []PaymentRecord `json:"history,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func (d *DebtAccount) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return plannerErrors.NewValidationError("Name is required")
	}
	if d.Kind != DebtKindRevolving && d.Kind != DebtKindInstallment {
		return plannerErrors.NewValidationError("Kind must be 'revolving' or 'installment'")
	}
	if d.Balance.IsNegative() {
		return plannerErrors.NewValidationError("Balance must not be negative")
	}
	if d.APR.IsNegative() {
		return plannerErrors.NewValidationError("Interest rate must not be negative")
	}
	if d.MinPayment.IsNegative() {
		return plannerErrors.NewValidationError("Minimum payment must not be negative")
	}
	if d.DueDate.IsZero() {
		return plannerErrors.NewValidationError("Due date is required")
	}
	return nil
}

// HasPaymentOn reports whether a history record with the given note exists
// on the given calendar day.
func (d *DebtAccount) HasPaymentOn(day time.Time, note string) bool {
	for _, payment := range d.History {
		if payment.Note == note && SameCalendarDay(payment.Date, day) {
			return true
		}
	}
	return false
}
