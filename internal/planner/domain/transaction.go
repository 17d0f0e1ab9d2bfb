package domain

import (
	"strings"
	"time"

	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyYearly   Frequency = "yearly"
)

// NormalizeFrequency maps UI and legacy spellings onto the four supported
// frequencies. It returns an empty Frequency for anything unrecognized.
func NormalizeFrequency(raw string) Frequency {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "weekly":
		return FrequencyWeekly
	case "biweekly", "byweekly", "bi-weekly":
		return FrequencyBiweekly
	case "monthly":
		return FrequencyMonthly
	case "yearly":
		return FrequencyYearly
	default:
		return ""
	}
}

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

type TransactionRepository interface {
	Save(transaction Transaction) error
	Update(transaction Transaction) error
	Delete(transactionID string) error
	FindByID(transactionID string) (*Transaction, error)
	FindAll() ([]Transaction, error)
	FindMasters() ([]Transaction, error)
	FindBySeries(seriesID string) ([]Transaction, error)
	// MaterializeInstances persists newly generated instances together with
	// the updated last-generated checkpoints of their masters in a single
	// database transaction, so a crash cannot leave a checkpoint ahead of
	// the instances it accounts for.
	MaterializeInstances(instances []Transaction, checkpoints map[string]time.Time) error
}

// Transaction is an income or expense event. A record with IsRecurring set
// is the master of a recurring series; generated instances carry the
// master's SeriesID and never have IsRecurring set themselves.
type Transaction struct {
	ID            string          `json:"id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"` // "income" or "expense"
	Category      string          `json:"category"`
	Date          time.Time       `json:"date"`
	Note          string          `json:"note,omitempty"`
	IsRecurring   bool            `json:"isRecurring"`
	Frequency     Frequency       `json:"frequency,omitempty"`
	SeriesID      string          `json:"seriesId,omitempty"`
	EndDate       *time.Time      `json:"endDate,omitempty"`
	Paused        bool            `json:"paused,omitempty"`
	LastGenerated *time.Time      `json:"lastGenerated,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// IsMaster reports whether this record is the originating master of a
// recurring series.
func (t *Transaction) IsMaster() bool {
	return t.IsRecurring && (t.SeriesID == "" || t.SeriesID == t.ID)
}

// IsGeneratedInstance reports whether this record was materialized from a
// recurring series rather than entered directly.
func (t *Transaction) IsGeneratedInstance() bool {
	return !t.IsRecurring && t.SeriesID != "" && t.SeriesID != t.ID
}

func (t *Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return plannerErrors.NewValidationError("Amount must not be negative")
	}
	if t.Type != "income" && t.Type != "expense" {
		return plannerErrors.NewValidationError("Type must be 'income' or 'expense'")
	}
	if strings.TrimSpace(t.Category) == "" {
		return plannerErrors.NewValidationError("Category is required")
	}
	if t.Date.IsZero() {
		return plannerErrors.NewValidationError("Date is required")
	}
	if t.IsRecurring && !t.Frequency.IsValid() {
		return plannerErrors.NewValidationError("Recurring transactions need a frequency of weekly, biweekly, monthly or yearly")
	}
	if t.EndDate != nil && t.EndDate.Before(t.Date) {
		return plannerErrors.NewValidationError("End date must not be before the start date")
	}
	if len(t.Note) > 200 {
		return plannerErrors.NewValidationError("Note must be of length less than 200")
	}
	return nil
}

// RecurrenceRule is the derived scheduling view of a series master. It is
// never persisted on its own; all of its fields live on the master record.
type RecurrenceRule struct {
	SeriesID      string
	Anchor        time.Time
	Frequency     Frequency
	EndDate       *time.Time
	Paused        bool
	LastGenerated *time.Time
}

// Rule projects the scheduling fields of a series master. The second return
// value is false when the transaction is not a usable rule source (not a
// master, or no recognized frequency).
func (t *Transaction) Rule() (RecurrenceRule, bool) {
	if !t.IsMaster() || !t.Frequency.IsValid() {
		return RecurrenceRule{}, false
	}
	seriesID := t.SeriesID
	if seriesID == "" {
		seriesID = t.ID
	}
	rule := RecurrenceRule{
		SeriesID:      seriesID,
		Anchor:        NormalizeToNoon(t.Date),
		Frequency:     t.Frequency,
		Paused:        t.Paused,
		LastGenerated: t.LastGenerated,
	}
	if t.EndDate != nil {
		end := NormalizeToNoon(*t.EndDate)
		rule.EndDate = &end
	}
	return rule, true
}

// NthOccurrence returns the date of the n-th occurrence of the rule, where
// n = 0 is the anchor itself. Monthly and yearly steps are always computed
// from the anchor so a Jan 31 series hits Feb 28/29 and then Mar 31 again
// instead of drifting to the 28th for good.
func (r RecurrenceRule) NthOccurrence(n int) time.Time {
	switch r.Frequency {
	case FrequencyWeekly:
		return AddDays(r.Anchor, 7*n)
	case FrequencyBiweekly:
		return AddDays(r.Anchor, 14*n)
	case FrequencyMonthly:
		return AddMonthsClamped(r.Anchor, n)
	case FrequencyYearly:
		return AddYearsClamped(r.Anchor, n)
	default:
		return r.Anchor
	}
}

// Ended reports whether the rule no longer generates occurrences on the
// given date because its end date lies before it.
func (r RecurrenceRule) Ended(date time.Time) bool {
	return r.EndDate != nil && date.After(*r.EndDate)
}
