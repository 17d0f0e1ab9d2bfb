package application

import (
	"testing"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/infrastructure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func defaultCategories() []domain.Category {
	return []domain.Category{
		{ID: "1", Name: "Salary", Type: "income"},
		{ID: "2", Name: "Housing", Type: "expense", NotificationsEnabled: true},
		{ID: "3", Name: "Groceries", Type: "expense"},
		{ID: "4", Name: "Subscriptions", Type: "expense", NotificationsEnabled: true},
	}
}

func newForecastService(transactions []domain.Transaction, debts []domain.DebtAccount) *ForecastService {
	transactionRepo := &infrastructure.MockTransactionRepository{Transactions: transactions}
	debtRepo := &infrastructure.MockDebtRepository{Accounts: debts}
	categoryService := NewCategoryService(&infrastructure.MockCategoryRepository{Categories: defaultCategories()})
	return NewForecastService(transactionRepo, debtRepo, categoryService)
}

func TestMonthlyEquivalent(t *testing.T) {
	hundred := dec("100")
	assert.True(t, MonthlyEquivalent(hundred, domain.FrequencyWeekly).Equal(dec("400")))
	assert.True(t, MonthlyEquivalent(hundred, domain.FrequencyBiweekly).Equal(dec("200")))
	assert.True(t, MonthlyEquivalent(hundred, domain.FrequencyMonthly).Equal(dec("100")))
	assert.True(t, MonthlyEquivalent(hundred, domain.FrequencyYearly).Round(2).Equal(dec("8.33")))
	assert.True(t, MonthlyEquivalent(hundred, domain.Frequency("daily")).IsZero())
}

func TestMonthlyProjection_ScenarioMix(t *testing.T) {
	transactions := []domain.Transaction{
		{
			ID: "salary", Amount: dec("2500"), Type: "income", Category: "Salary",
			Date: localNoon(2024, time.January, 1), IsRecurring: true,
			Frequency: domain.FrequencyBiweekly, SeriesID: "salary",
		},
		{
			ID: "rent", Amount: dec("1200"), Type: "expense", Category: "Housing",
			Date: localNoon(2024, time.January, 31), IsRecurring: true,
			Frequency: domain.FrequencyMonthly, SeriesID: "rent",
		},
		{
			ID: "groceries", Amount: dec("150"), Type: "expense", Category: "Groceries",
			Date: localNoon(2024, time.January, 5), IsRecurring: true,
			Frequency: domain.FrequencyWeekly, SeriesID: "groceries",
		},
		{
			ID: "insurance", Amount: dec("100"), Type: "expense", Category: "Subscriptions",
			Date: localNoon(2024, time.January, 10), IsRecurring: true,
			Frequency: domain.FrequencyYearly, SeriesID: "insurance",
		},
	}
	categoryTypes := domain.CategoryTypeMap(defaultCategories())

	forecast := MonthlyProjection(transactions, localNoon(2024, time.March, 15), categoryTypes)

	assert.Equal(t, "2024-03", forecast.Month)
	assert.True(t, forecast.TotalIncome.Equal(dec("5000")), "biweekly 2500 counts twice, got %s", forecast.TotalIncome)
	assert.True(t, forecast.TotalExpenses.Equal(dec("1808.33")), "1200 + 150x4 + 100/12, got %s", forecast.TotalExpenses)
	assert.True(t, forecast.CategoryTotals["Housing"].Equal(dec("1200")))
	assert.True(t, forecast.CategoryTotals["Groceries"].Equal(dec("600")))
	assert.True(t, forecast.CategoryTotals["Subscriptions"].Equal(dec("8.33")))
}

func TestMonthlyProjection_MastersOnlyNoDoubleCount(t *testing.T) {
	master := domain.Transaction{
		ID: "rent", Amount: dec("1200"), Type: "expense", Category: "Housing",
		Date: localNoon(2024, time.January, 1), IsRecurring: true,
		Frequency: domain.FrequencyMonthly, SeriesID: "rent",
	}
	instance := domain.Transaction{
		ID: "rent-feb", Amount: dec("1200"), Type: "expense", Category: "Housing",
		Date: localNoon(2024, time.February, 1), SeriesID: "rent",
	}
	categoryTypes := domain.CategoryTypeMap(defaultCategories())

	forecast := MonthlyProjection([]domain.Transaction{master, instance}, localNoon(2024, time.February, 15), categoryTypes)
	assert.True(t, forecast.TotalExpenses.Equal(dec("1200")),
		"generated instances must not add on top of their master, got %s", forecast.TotalExpenses)
}

func TestMonthlyProjection_SkipsPausedFutureAndEnded(t *testing.T) {
	end := localNoon(2024, time.February, 10)
	transactions := []domain.Transaction{
		{
			ID: "paused", Amount: dec("50"), Type: "expense", Category: "Groceries",
			Date: localNoon(2024, time.January, 1), IsRecurring: true, Paused: true,
			Frequency: domain.FrequencyMonthly, SeriesID: "paused",
		},
		{
			ID: "future", Amount: dec("75"), Type: "expense", Category: "Groceries",
			Date: localNoon(2024, time.June, 1), IsRecurring: true,
			Frequency: domain.FrequencyMonthly, SeriesID: "future",
		},
		{
			ID: "ended", Amount: dec("90"), Type: "expense", Category: "Groceries",
			Date: localNoon(2023, time.June, 1), IsRecurring: true,
			Frequency: domain.FrequencyMonthly, SeriesID: "ended", EndDate: &end,
		},
	}
	categoryTypes := domain.CategoryTypeMap(defaultCategories())

	forecast := MonthlyProjection(transactions, localNoon(2024, time.March, 15), categoryTypes)
	assert.True(t, forecast.TotalExpenses.IsZero(),
		"paused, not-yet-started and ended series contribute nothing, got %s", forecast.TotalExpenses)
}

func TestMonthlyProjection_EndDateMonthStillCounts(t *testing.T) {
	end := localNoon(2024, time.March, 10)
	master := domain.Transaction{
		ID: "gym", Amount: dec("30"), Type: "expense", Category: "Groceries",
		Date: localNoon(2024, time.January, 1), IsRecurring: true,
		Frequency: domain.FrequencyMonthly, SeriesID: "gym", EndDate: &end,
	}
	categoryTypes := domain.CategoryTypeMap(defaultCategories())

	forecast := MonthlyProjection([]domain.Transaction{master}, localNoon(2024, time.March, 20), categoryTypes)
	assert.True(t, forecast.TotalExpenses.Equal(dec("30")),
		"a series ending mid-month still counts for that month")
}

func TestMonthlyProjection_CategoryMapOverridesStoredType(t *testing.T) {
	// The record says expense, but the category has since been reassigned
	// to income. The category map must win.
	master := domain.Transaction{
		ID: "refund", Amount: dec("200"), Type: "expense", Category: "Salary",
		Date: localNoon(2024, time.January, 1), IsRecurring: true,
		Frequency: domain.FrequencyMonthly, SeriesID: "refund",
	}
	categoryTypes := domain.CategoryTypeMap(defaultCategories())

	forecast := MonthlyProjection([]domain.Transaction{master}, localNoon(2024, time.February, 1), categoryTypes)
	assert.True(t, forecast.TotalIncome.Equal(dec("200")))
	assert.True(t, forecast.TotalExpenses.IsZero())
}

func TestMonthlyProjection_UnknownCategoryFallsBackToStoredType(t *testing.T) {
	master := domain.Transaction{
		ID: "misc", Amount: dec("40"), Type: "expense", Category: "Hobby",
		Date: localNoon(2024, time.January, 1), IsRecurring: true,
		Frequency: domain.FrequencyMonthly, SeriesID: "misc",
	}

	forecast := MonthlyProjection([]domain.Transaction{master}, localNoon(2024, time.February, 1), nil)
	assert.True(t, forecast.TotalExpenses.Equal(dec("40")))
	assert.True(t, forecast.CategoryTotals["Hobby"].Equal(dec("40")))
}

func TestForecastForMonth_SubtractsDebtMinimums(t *testing.T) {
	transactions := []domain.Transaction{
		{
			ID: "salary", Amount: dec("3000"), Type: "income", Category: "Salary",
			Date: localNoon(2024, time.January, 1), IsRecurring: true,
			Frequency: domain.FrequencyMonthly, SeriesID: "salary",
		},
		{
			ID: "rent", Amount: dec("1200"), Type: "expense", Category: "Housing",
			Date: localNoon(2024, time.January, 1), IsRecurring: true,
			Frequency: domain.FrequencyMonthly, SeriesID: "rent",
		},
	}
	debts := []domain.DebtAccount{
		{ID: "card", Name: "Card", Kind: domain.DebtKindRevolving, Balance: dec("500"), MinPayment: dec("100"), DueDate: localNoon(2024, time.March, 15)},
		{ID: "paidoff", Name: "Old loan", Kind: domain.DebtKindInstallment, Balance: decimal.Zero, MinPayment: dec("250"), DueDate: localNoon(2024, time.March, 1)},
	}
	service := newForecastService(transactions, debts)

	forecast, err := service.ForecastForMonth(localNoon(2024, time.March, 15))
	assert.NoError(t, err)
	assert.True(t, forecast.DebtMinimums.Equal(dec("100")), "paid-off accounts owe nothing")
	assert.True(t, forecast.Net.Equal(dec("1700")), "3000 - 1200 - 100, got %s", forecast.Net)
}

func TestForecastForYear(t *testing.T) {
	transactions := []domain.Transaction{
		{
			ID: "salary", Amount: dec("3000"), Type: "income", Category: "Salary",
			Date: localNoon(2024, time.January, 1), IsRecurring: true,
			Frequency: domain.FrequencyMonthly, SeriesID: "salary",
		},
	}
	service := newForecastService(transactions, nil)

	year, err := service.ForecastForYear(2024)
	assert.NoError(t, err)
	assert.Len(t, year.Months, 12)
	assert.True(t, year.TotalIncome.Equal(dec("36000")))
	assert.True(t, year.Net.Equal(dec("36000")))
}

func TestSnapshotForMonth(t *testing.T) {
	transactions := []domain.Transaction{
		{ID: "pay1", Amount: dec("1500"), Type: "income", Category: "Salary", Date: localNoon(2024, time.March, 1)},
		{ID: "pay2", Amount: dec("1500"), Type: "income", Category: "Salary", Date: localNoon(2024, time.March, 25)},
		{ID: "rent", Amount: dec("1200"), Type: "expense", Category: "Housing", Date: localNoon(2024, time.March, 5)},
		{ID: "web", Amount: dec("15"), Type: "expense", Category: "Subscriptions", Date: localNoon(2024, time.March, 20)},
		{ID: "card", Amount: dec("100"), Type: "expense", Category: "Debt Payment", Date: localNoon(2024, time.March, 10)},
		{ID: "other", Amount: dec("999"), Type: "expense", Category: "Housing", Date: localNoon(2024, time.April, 5)},
	}
	debts := []domain.DebtAccount{
		{
			ID: "loan", Name: "Loan", Kind: domain.DebtKindInstallment,
			Balance: dec("4000"), MinPayment: dec("250"), DueDate: localNoon(2024, time.March, 28),
			History: []domain.PaymentRecord{
				{ID: "p1", Date: localNoon(2024, time.March, 10), Amount: dec("100")},
			},
		},
	}
	service := newForecastService(transactions, debts)

	snapshot, err := service.SnapshotForMonth(localNoon(2024, time.March, 1), localNoon(2024, time.March, 12))
	assert.NoError(t, err)
	assert.Equal(t, "2024-03", snapshot.Month)
	assert.True(t, snapshot.Earned.Equal(dec("1500")))
	assert.True(t, snapshot.ToEarn.Equal(dec("1500")))
	assert.True(t, snapshot.PaidBills.Equal(dec("1200")), "debt payments are not bills")
	assert.True(t, snapshot.LeftToPayBills.Equal(dec("15")))
	assert.True(t, snapshot.PaidDebt.Equal(dec("100")))
	assert.True(t, snapshot.LeftToPayDebt.Equal(dec("150")), "250 minimum less the 100 already paid")
	assert.True(t, snapshot.TotalSpent.Equal(dec("1300")))

	assert.NotEmpty(t, snapshot.Categories)
	assert.Equal(t, "Housing", snapshot.Categories[0].Name, "categories sorted by amount descending")
}
