package errors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

// NewPaymentExceedsBalanceError names both figures so the caller can show
// the user exactly what conflicted.
func NewPaymentExceedsBalanceError(payment, balance decimal.Decimal) error {
	return &ValidationError{Msg: fmt.Sprintf(
		"Payment %s exceeds current balance %s; pass override to proceed",
		payment.StringFixed(2), balance.StringFixed(2),
	)}
}

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrSeriesNotFound      = errors.New("recurring series not found")
	ErrDebtNotFound        = errors.New("debt account not found")

	// ErrNotificationPermission marks the silently-degraded state where the
	// host denied notification scheduling. It is never fatal.
	ErrNotificationPermission = errors.New("notification permission denied")
)
