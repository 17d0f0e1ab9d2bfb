package application

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sebuszqo/BudgetPlanner/internal/currency"
	"github.com/sebuszqo/BudgetPlanner/internal/notify"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	"github.com/shopspring/decimal"
)

// How many upcoming occurrences are scheduled per reminder source.
const reminderLookaheadOccurrences = 6

type NotificationService struct {
	transactions    domain.TransactionRepository
	debts           domain.DebtRepository
	categoryService CategoryServiceInterface
	settings        domain.SettingsRepository
	host            notify.Host
	logger          zerolog.Logger
	now             func() time.Time

	dismissed map[string]bool
}

func NewNotificationService(
	transactions domain.TransactionRepository,
	debts domain.DebtRepository,
	categoryService CategoryServiceInterface,
	settings domain.SettingsRepository,
	host notify.Host,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		transactions:    transactions,
		debts:           debts,
		categoryService: categoryService,
		settings:        settings,
		host:            host,
		logger:          logger,
		now:             time.Now,
		dismissed:       make(map[string]bool),
	}
}

// ComputeSchedule produces the complete fresh reminder set: the next six
// occurrences of every reminder-enabled recurring bill, due-date reminders
// for debts without autopay, and same-day alerts for debts with autopay.
// Reminder IDs are deterministic so identical inputs schedule identical
// sets. Pure function of its inputs.
func ComputeSchedule(
	masters []domain.Transaction,
	debts []domain.DebtAccount,
	categories []domain.Category,
	settings domain.Settings,
	now time.Time,
) []notify.Notification {
	hour, minute := parseDailyTime(settings.Notifications.DailyTime)
	var reminders []notify.Notification

	if settings.Notifications.BillReminders {
		categoryByName := make(map[string]domain.Category, len(categories))
		for _, category := range categories {
			categoryByName[strings.ToLower(category.Name)] = category
		}

		for i := range masters {
			master := &masters[i]
			rule, ok := master.Rule()
			if !ok || rule.Paused || master.Type != "expense" {
				continue
			}
			category, found := categoryByName[strings.ToLower(master.Category)]
			if !found || !category.NotificationsEnabled {
				continue
			}

			// A future anchor is itself the first due date and gets a reminder.
			n := firstOccurrenceAtOrAfter(rule, domain.NormalizeToNoon(now))
			for !atTime(rule.NthOccurrence(n), hour, minute).After(now) {
				n++
			}
			for emitted := 0; emitted < reminderLookaheadOccurrences; emitted++ {
				date := rule.NthOccurrence(n + emitted)
				if rule.Ended(date) {
					break
				}
				fireAt := atTime(date, hour, minute)
				reminders = append(reminders, notify.Notification{
					ID:    fmt.Sprintf("bill:%s:%s", rule.SeriesID, domain.DayKey(date)),
					Title: "Bill due: " + master.Category,
					Body: fmt.Sprintf("Friendly reminder: time to pay %s (%s)",
						master.Category, currency.Format(master.Amount, settings.Currency)),
					FireAt: fireAt,
				})
			}
		}
	}

	if settings.Notifications.DebtDueReminders {
		bufferDays := settings.Notifications.DebtNotifyDays
		for _, debt := range debts {
			if debt.Autopay {
				continue
			}
			for _, due := range upcomingDueDates(debt.DueDate, now, hour, minute) {
				fireAt := due.AddDate(0, 0, -bufferDays)
				if !fireAt.After(now) {
					continue
				}
				reminders = append(reminders, notify.Notification{
					ID:    fmt.Sprintf("debt:%s:%s", debt.ID, domain.DayKey(due)),
					Title: "Payment due",
					Body: fmt.Sprintf("Payment for %s is due in %d days (%s minimum)",
						debt.Name, bufferDays, currency.Format(debt.MinPayment, settings.Currency)),
					FireAt: fireAt,
				})
			}
		}
	}

	if settings.Notifications.AutopayAlerts {
		for _, debt := range debts {
			if !debt.Autopay {
				continue
			}
			for _, due := range upcomingDueDates(debt.DueDate, now, hour, minute) {
				if !due.After(now) {
					continue
				}
				reminders = append(reminders, notify.Notification{
					ID:    fmt.Sprintf("autopay:%s:%s", debt.ID, domain.DayKey(due)),
					Title: "Upcoming autopay",
					Body: fmt.Sprintf("%s will be autopaid today (%s). Ensure funds are available.",
						debt.Name, currency.Format(debt.MinPayment, settings.Currency)),
					FireAt: due,
				})
			}
		}
	}

	sort.Slice(reminders, func(i, j int) bool {
		if !reminders[i].FireAt.Equal(reminders[j].FireAt) {
			return reminders[i].FireAt.Before(reminders[j].FireAt)
		}
		return reminders[i].ID < reminders[j].ID
	})
	return reminders
}

// Reconcile recomputes the full reminder set and replaces whatever the
// host currently has scheduled. Denied permission degrades to a no-op; the
// rest of the planner keeps working without reminders. Safe to re-trigger
// at any time, last write wins.
func (s *NotificationService) Reconcile(ctx context.Context) error {
	granted, err := s.host.RequestPermission(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("notification permission check failed, skipping reminder scheduling")
		return nil
	}
	if !granted {
		s.logger.Info().Msg("notification permission denied, reminders unavailable")
		return nil
	}

	settings, err := s.settings.Get()
	if err != nil {
		return err
	}
	masters, err := s.transactions.FindMasters()
	if err != nil {
		return err
	}
	debts, err := s.debts.FindAll()
	if err != nil {
		return err
	}
	categories, err := s.categoryService.GetAllCategories()
	if err != nil {
		return err
	}

	schedule := ComputeSchedule(masters, debts, categories, settings, s.now())
	if err := s.host.CancelAll(ctx); err != nil {
		return err
	}
	if err := s.host.ScheduleAll(ctx, schedule); err != nil {
		return err
	}
	s.logger.Info().Int("reminders", len(schedule)).Msg("reminder schedule reconciled")
	return nil
}

// Alert is an in-app "due today" banner, separate from host notifications.
type Alert struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Note   string          `json:"note"`
	Amount decimal.Decimal `json:"amount"`
	Kind   string          `json:"kind"` // "bill" or "debt"
}

// DailyReminders lists the bills and debt payments that hit today, minus
// anything the user dismissed this session.
func (s *NotificationService) DailyReminders(now time.Time) ([]Alert, error) {
	settings, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	var alerts []Alert

	if settings.Notifications.BillReminders {
		masters, err := s.transactions.FindMasters()
		if err != nil {
			return nil, err
		}
		categories, err := s.categoryService.GetAllCategories()
		if err != nil {
			return nil, err
		}
		enabled := make(map[string]bool, len(categories))
		for _, category := range categories {
			enabled[strings.ToLower(category.Name)] = category.NotificationsEnabled
		}
		for i := range masters {
			master := &masters[i]
			if !master.IsRecurring || master.Type != "expense" || master.Paused {
				continue
			}
			if !enabled[strings.ToLower(master.Category)] {
				continue
			}
			if master.Date.Day() != now.Day() {
				continue
			}
			note := master.Note
			if note == "" {
				note = "Payment due"
			}
			alerts = append(alerts, Alert{
				ID:     master.ID,
				Name:   master.Category,
				Note:   note,
				Amount: master.Amount,
				Kind:   "bill",
			})
		}
	}

	if settings.Notifications.DebtDueReminders {
		debts, err := s.debts.FindAll()
		if err != nil {
			return nil, err
		}
		buffer := settings.Notifications.DebtNotifyDays
		for _, debt := range debts {
			if debt.DueDate.Day()-buffer != now.Day() {
				continue
			}
			alerts = append(alerts, Alert{
				ID:     debt.ID,
				Name:   debt.Name,
				Note:   fmt.Sprintf("Due in %d days", buffer),
				Amount: debt.MinPayment,
				Kind:   "debt",
			})
		}
	}

	visible := alerts[:0]
	for _, alert := range alerts {
		if !s.dismissed[alert.ID] {
			visible = append(visible, alert)
		}
	}
	return visible, nil
}

func (s *NotificationService) DismissReminder(id string) {
	s.dismissed[id] = true
}

// upcomingDueDates expands a due date's day-of-month over the next six
// months, clamped per month, at the daily notification time.
func upcomingDueDates(dueDate, now time.Time, hour, minute int) []time.Time {
	day := dueDate.Day()
	dates := make([]time.Time, 0, reminderLookaheadOccurrences)
	for k := 0; len(dates) < reminderLookaheadOccurrences && k < reminderLookaheadOccurrences+2; k++ {
		month := domain.AddMonthsClamped(domain.StartOfMonth(now), k)
		clamped := day
		if last := domain.DaysInMonth(month.Year(), month.Month()); clamped > last {
			clamped = last
		}
		due := time.Date(month.Year(), month.Month(), clamped, hour, minute, 0, 0, time.Local)
		if due.Before(now) && !domain.SameCalendarDay(due, now) {
			continue
		}
		dates = append(dates, due)
	}
	return dates
}

func atTime(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.Local)
}

func parseDailyTime(raw string) (int, int) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 6, 0
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 6, 0
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 6, 0
	}
	return hour, minute
}
