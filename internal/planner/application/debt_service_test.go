package application

import (
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/infrastructure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newDebtService(accounts ...domain.DebtAccount) (*DebtService, *infrastructure.MockDebtRepository) {
	repo := &infrastructure.MockDebtRepository{Accounts: accounts}
	return NewDebtService(repo, zerolog.New(io.Discard)), repo
}

func testCard() domain.DebtAccount {
	return domain.DebtAccount{
		ID:         "card",
		Name:       "Visa",
		Kind:       domain.DebtKindRevolving,
		Limit:      dec("2000"),
		Balance:    dec("500"),
		APR:        dec("24"),
		MinPayment: dec("100"),
		DueDate:    localNoon(2024, time.March, 15),
		Autopay:    true,
	}
}

func TestApplyAutopay(t *testing.T) {
	service, repo := newDebtService(testCard())
	account, _ := repo.FindByID("card")

	updated, applied, err := service.ApplyAutopay(account, localNoon(2024, time.March, 15))
	assert.NoError(t, err)
	assert.True(t, applied)

	// 500 * 24% / 12 = 10 interest, then the 100 minimum payment.
	assert.True(t, updated.Balance.Equal(dec("410")), "expected 410, got %s", updated.Balance)
	assert.Equal(t, localNoon(2024, time.April, 15), updated.DueDate)
	assert.Len(t, updated.History, 1)
	assert.Equal(t, domain.PaymentNoteAutopay, updated.History[0].Note)
	assert.True(t, updated.History[0].Amount.Equal(dec("100")))

	stored, _ := repo.FindByID("card")
	assert.True(t, stored.Balance.Equal(dec("410")))
	assert.Equal(t, localNoon(2024, time.April, 15), stored.DueDate)
}

func TestApplyAutopay_AtMostOncePerDueDate(t *testing.T) {
	service, repo := newDebtService(testCard())

	first, _ := repo.FindByID("card")
	_, applied, err := service.ApplyAutopay(first, localNoon(2024, time.March, 15))
	assert.NoError(t, err)
	assert.True(t, applied)

	// Same day again, e.g. the scheduler restarted. The history record
	// keeps it a no-op even if the due date had not advanced.
	second, _ := repo.FindByID("card")
	second.DueDate = localNoon(2024, time.March, 15)
	_, applied, err = service.ApplyAutopay(second, localNoon(2024, time.March, 15))
	assert.NoError(t, err)
	assert.False(t, applied)

	stored, _ := repo.FindByID("card")
	assert.Len(t, stored.History, 1)
	assert.True(t, stored.Balance.Equal(dec("410")))
}

func TestApplyAutopay_SkipConditions(t *testing.T) {
	service, _ := newDebtService()

	offDay := testCard()
	_, applied, err := service.ApplyAutopay(&offDay, localNoon(2024, time.March, 14))
	assert.NoError(t, err)
	assert.False(t, applied, "not the due date")

	disabled := testCard()
	disabled.Autopay = false
	_, applied, err = service.ApplyAutopay(&disabled, localNoon(2024, time.March, 15))
	assert.NoError(t, err)
	assert.False(t, applied, "autopay off")

	paidOff := testCard()
	paidOff.Balance = decimal.Zero
	_, applied, err = service.ApplyAutopay(&paidOff, localNoon(2024, time.March, 15))
	assert.NoError(t, err)
	assert.False(t, applied, "zero balance")
}

func TestApplyAutopay_ClampsBalanceAtZero(t *testing.T) {
	card := testCard()
	card.Balance = dec("50")
	service, repo := newDebtService(card)
	account, _ := repo.FindByID("card")

	updated, applied, err := service.ApplyAutopay(account, localNoon(2024, time.March, 15))
	assert.NoError(t, err)
	assert.True(t, applied)
	assert.True(t, updated.Balance.IsZero(), "50 + 1 interest - 100 minimum clamps to zero")
}

func TestRunAutopay(t *testing.T) {
	due := testCard()
	notDue := testCard()
	notDue.ID = "loan"
	notDue.Name = "Loan"
	notDue.DueDate = localNoon(2024, time.March, 20)

	service, _ := newDebtService(due, notDue)

	applied, err := service.RunAutopay(localNoon(2024, time.March, 15))
	assert.NoError(t, err)
	assert.Equal(t, 1, applied)

	applied, err = service.RunAutopay(localNoon(2024, time.March, 15))
	assert.NoError(t, err)
	assert.Zero(t, applied, "the daily tick is idempotent")
}

func TestRecordPayment(t *testing.T) {
	service, repo := newDebtService(testCard())

	account, err := service.RecordPayment("card", dec("150"), localNoon(2024, time.March, 10), "extra", false)
	assert.NoError(t, err)
	assert.True(t, account.Balance.Equal(dec("350")))

	stored, _ := repo.FindByID("card")
	assert.Len(t, stored.History, 1)
	assert.Equal(t, "extra", stored.History[0].Note)
	assert.Equal(t, localNoon(2024, time.March, 15), stored.DueDate, "manual payments do not move the due date")
}

func TestRecordPayment_ExceedsBalance(t *testing.T) {
	service, repo := newDebtService(testCard())

	_, err := service.RecordPayment("card", dec("600"), localNoon(2024, time.March, 10), "", false)
	assert.Error(t, err)
	assert.EqualError(t, err, "Payment 600.00 exceeds current balance 500.00; pass override to proceed")

	stored, _ := repo.FindByID("card")
	assert.True(t, stored.Balance.Equal(dec("500")), "rejected payment must not touch the account")
	assert.Empty(t, stored.History)
}

func TestRecordPayment_OverrideClampsToZero(t *testing.T) {
	service, _ := newDebtService(testCard())

	account, err := service.RecordPayment("card", dec("600"), localNoon(2024, time.March, 10), "", true)
	assert.NoError(t, err)
	assert.True(t, account.Balance.IsZero())
}

func TestRecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	service, _ := newDebtService(testCard())

	_, err := service.RecordPayment("card", decimal.Zero, localNoon(2024, time.March, 10), "", false)
	assert.Error(t, err)

	_, err = service.RecordPayment("card", dec("-5"), localNoon(2024, time.March, 10), "", false)
	assert.Error(t, err)
}

func TestRecordPayment_UnknownAccount(t *testing.T) {
	service, _ := newDebtService()

	_, err := service.RecordPayment("missing", dec("10"), localNoon(2024, time.March, 10), "", false)
	assert.ErrorIs(t, err, plannerErrors.ErrDebtNotFound)
}

func TestCreateDebt_Validation(t *testing.T) {
	service, _ := newDebtService()

	invalid := testCard()
	invalid.Name = "  "
	err := service.CreateDebt(&invalid)
	assert.Error(t, err)

	negative := testCard()
	negative.Balance = dec("-10")
	err = service.CreateDebt(&negative)
	assert.Error(t, err)

	valid := testCard()
	valid.ID = ""
	err = service.CreateDebt(&valid)
	assert.NoError(t, err)
	assert.NotEmpty(t, valid.ID)
}
