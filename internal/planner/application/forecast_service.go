package application

import (
	"sort"
	"strings"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	"github.com/shopspring/decimal"
)

// Forecast is the monthly projection of recurring income and expenses,
// broken down by expense category.
type Forecast struct {
	Month          string                     `json:"month"` // "2006-01"
	TotalIncome    decimal.Decimal            `json:"totalIncome"`
	TotalExpenses  decimal.Decimal            `json:"totalExpenses"`
	CategoryTotals map[string]decimal.Decimal `json:"categoryTotals"`
}

// NetForecast adds the always-due debt obligations on top of the category
// forecast. Debt minimums are not a category; they are subtracted
// separately.
type NetForecast struct {
	Forecast
	DebtMinimums decimal.Decimal `json:"debtMinimums"`
	Net          decimal.Decimal `json:"net"`
}

// YearForecast is twelve monthly forecasts plus their totals.
type YearForecast struct {
	Year          int             `json:"year"`
	Months        []NetForecast   `json:"months"`
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	Net           decimal.Decimal `json:"net"`
}

var (
	decTwo    = decimal.NewFromInt(2)
	decFour   = decimal.NewFromInt(4)
	decTwelve = decimal.NewFromInt(12)
)

// MonthlyEquivalent converts a recurring amount to its forecast
// contribution for one calendar month using fixed multipliers: weekly x4,
// biweekly x2, monthly x1, yearly /12. This is a deliberate approximation
// (a month has ~4.33 weeks); exact day-weighted averages would make the
// forecast jitter between months, so the fixed factors are kept on purpose.
func MonthlyEquivalent(amount decimal.Decimal, frequency domain.Frequency) decimal.Decimal {
	switch frequency {
	case domain.FrequencyWeekly:
		return amount.Mul(decFour)
	case domain.FrequencyBiweekly:
		return amount.Mul(decTwo)
	case domain.FrequencyMonthly:
		return amount
	case domain.FrequencyYearly:
		return amount.Div(decTwelve)
	default:
		return decimal.Zero
	}
}

// MonthlyProjection aggregates recurring masters into a forecast for the
// month containing target. Only non-paused masters with a recognized
// frequency qualify; generated instances are excluded so a series is never
// counted twice through its own children. The effective type comes from
// the category map first and falls back to the stored type. Pure function
// of its inputs.
func MonthlyProjection(transactions []domain.Transaction, target time.Time, categoryTypes map[string]string) Forecast {
	monthStart := domain.StartOfMonth(target)
	monthEnd := domain.EndOfMonth(target)

	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	categoryTotals := make(map[string]decimal.Decimal)

	for i := range transactions {
		t := &transactions[i]
		if !t.IsMaster() || t.Paused || !t.Frequency.IsValid() {
			continue
		}

		anchor := domain.NormalizeToNoon(t.Date)
		if anchor.After(monthEnd) {
			continue
		}
		if t.EndDate != nil && domain.NormalizeToNoon(*t.EndDate).Before(monthStart) {
			continue
		}

		projected := MonthlyEquivalent(t.Amount, t.Frequency)

		resolvedType := categoryTypes[strings.ToLower(t.Category)]
		if resolvedType == "" {
			resolvedType = t.Type
		}
		if resolvedType == "income" {
			totalIncome = totalIncome.Add(projected)
			continue
		}

		totalExpenses = totalExpenses.Add(projected)
		category := t.Category
		if category == "" {
			category = "Uncategorized"
		}
		categoryTotals[category] = categoryTotals[category].Add(projected)
	}

	for category, total := range categoryTotals {
		categoryTotals[category] = total.Round(2)
	}
	return Forecast{
		Month:          monthStart.Format("2006-01"),
		TotalIncome:    totalIncome.Round(2),
		TotalExpenses:  totalExpenses.Round(2),
		CategoryTotals: categoryTotals,
	}
}

type ForecastService struct {
	transactions    domain.TransactionRepository
	debts           domain.DebtRepository
	categoryService CategoryServiceInterface
}

func NewForecastService(transactions domain.TransactionRepository, debts domain.DebtRepository, categoryService CategoryServiceInterface) *ForecastService {
	return &ForecastService{
		transactions:    transactions,
		debts:           debts,
		categoryService: categoryService,
	}
}

func (s *ForecastService) ForecastForMonth(target time.Time) (*NetForecast, error) {
	transactions, err := s.transactions.FindAll()
	if err != nil {
		return nil, err
	}
	categoryTypes, err := s.categoryService.TypeMap()
	if err != nil {
		return nil, err
	}
	debts, err := s.debts.FindAll()
	if err != nil {
		return nil, err
	}

	forecast := MonthlyProjection(transactions, target, categoryTypes)

	minimums := decimal.Zero
	for _, debt := range debts {
		if debt.Balance.IsPositive() {
			minimums = minimums.Add(debt.MinPayment)
		}
	}
	minimums = minimums.Round(2)

	return &NetForecast{
		Forecast:     forecast,
		DebtMinimums: minimums,
		Net:          forecast.TotalIncome.Sub(forecast.TotalExpenses).Sub(minimums).Round(2),
	}, nil
}

func (s *ForecastService) ForecastForYear(year int) (*YearForecast, error) {
	result := &YearForecast{
		Year:          year,
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		Net:           decimal.Zero,
	}
	for month := time.January; month <= time.December; month++ {
		target := time.Date(year, month, 1, 12, 0, 0, 0, time.Local)
		monthly, err := s.ForecastForMonth(target)
		if err != nil {
			return nil, err
		}
		result.Months = append(result.Months, *monthly)
		result.TotalIncome = result.TotalIncome.Add(monthly.TotalIncome)
		result.TotalExpenses = result.TotalExpenses.Add(monthly.TotalExpenses)
		result.Net = result.Net.Add(monthly.Net)
	}
	result.TotalIncome = result.TotalIncome.Round(2)
	result.TotalExpenses = result.TotalExpenses.Round(2)
	result.Net = result.Net.Round(2)
	return result, nil
}

// CategoryAmount is one slice of the actual-spending breakdown.
type CategoryAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// MonthSnapshot reports actuals for a month: what already happened versus
// what is still ahead, from the recorded transactions and debt payment
// history rather than from recurrence rules.
type MonthSnapshot struct {
	Month          string           `json:"month"`
	Earned         decimal.Decimal  `json:"earned"`
	ToEarn         decimal.Decimal  `json:"toEarn"`
	PaidBills      decimal.Decimal  `json:"paidBills"`
	LeftToPayBills decimal.Decimal  `json:"leftToPayBills"`
	PaidDebt       decimal.Decimal  `json:"paidDebt"`
	LeftToPayDebt  decimal.Decimal  `json:"leftToPayDebt"`
	TotalSpent     decimal.Decimal  `json:"totalSpent"`
	Categories     []CategoryAmount `json:"categories"`
}

// Debt payments recorded as transactions carry this category and are
// reported under debt, not under bills.
const debtPaymentCategory = "Debt Payment"

func (s *ForecastService) SnapshotForMonth(target, now time.Time) (*MonthSnapshot, error) {
	transactions, err := s.transactions.FindAll()
	if err != nil {
		return nil, err
	}
	debts, err := s.debts.FindAll()
	if err != nil {
		return nil, err
	}

	monthStart := domain.StartOfMonth(target)
	monthEnd := domain.EndOfMonth(target)
	today := domain.NormalizeToNoon(now)

	snapshot := &MonthSnapshot{
		Month:          monthStart.Format("2006-01"),
		Earned:         decimal.Zero,
		ToEarn:         decimal.Zero,
		PaidBills:      decimal.Zero,
		LeftToPayBills: decimal.Zero,
		PaidDebt:       decimal.Zero,
		LeftToPayDebt:  decimal.Zero,
	}
	categoryTotals := make(map[string]decimal.Decimal)

	for i := range transactions {
		t := &transactions[i]
		date := domain.NormalizeToNoon(t.Date)
		if date.Before(monthStart) || date.After(monthEnd) {
			continue
		}
		past := !date.After(today)

		switch {
		case t.Type == "income":
			if past {
				snapshot.Earned = snapshot.Earned.Add(t.Amount)
			} else {
				snapshot.ToEarn = snapshot.ToEarn.Add(t.Amount)
			}
		case t.Type == "expense" && t.Category != debtPaymentCategory:
			if past {
				snapshot.PaidBills = snapshot.PaidBills.Add(t.Amount)
			} else {
				snapshot.LeftToPayBills = snapshot.LeftToPayBills.Add(t.Amount)
			}
			category := t.Category
			if category == "" {
				category = "Uncategorized"
			}
			categoryTotals[category] = categoryTotals[category].Add(t.Amount)
		}
	}

	for _, debt := range debts {
		paid := decimal.Zero
		for _, payment := range debt.History {
			date := domain.NormalizeToNoon(payment.Date)
			if date.Before(monthStart) || date.After(monthEnd) || date.After(today) {
				continue
			}
			paid = paid.Add(payment.Amount)
		}
		remaining := debt.MinPayment.Sub(paid)
		if remaining.IsNegative() {
			remaining = decimal.Zero
		}
		snapshot.PaidDebt = snapshot.PaidDebt.Add(paid)
		snapshot.LeftToPayDebt = snapshot.LeftToPayDebt.Add(remaining)
	}

	for name, amount := range categoryTotals {
		snapshot.Categories = append(snapshot.Categories, CategoryAmount{Name: name, Amount: amount.Round(2)})
	}
	sort.Slice(snapshot.Categories, func(i, j int) bool {
		if !snapshot.Categories[i].Amount.Equal(snapshot.Categories[j].Amount) {
			return snapshot.Categories[i].Amount.GreaterThan(snapshot.Categories[j].Amount)
		}
		return snapshot.Categories[i].Name < snapshot.Categories[j].Name
	})

	snapshot.Earned = snapshot.Earned.Round(2)
	snapshot.ToEarn = snapshot.ToEarn.Round(2)
	snapshot.PaidBills = snapshot.PaidBills.Round(2)
	snapshot.LeftToPayBills = snapshot.LeftToPayBills.Round(2)
	snapshot.PaidDebt = snapshot.PaidDebt.Round(2)
	snapshot.LeftToPayDebt = snapshot.LeftToPayDebt.Round(2)
	snapshot.TotalSpent = snapshot.PaidBills.Add(snapshot.PaidDebt).Round(2)
	return snapshot, nil
}
