package infrastructure

import (
	"database/sql"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
)

// SettingsRepository stores the single settings row; missing rows fall
// back to the defaults so a fresh database behaves sensibly.
type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) Get() (domain.Settings, error) {
	row := r.db.QueryRow(
		`SELECT currency, bill_reminders, debt_due_reminders, autopay_alerts, debt_notify_days, daily_time
        FROM settings WHERE id = 1`)

	var settings domain.Settings
	err := row.Scan(
		&settings.Currency,
		&settings.Notifications.BillReminders,
		&settings.Notifications.DebtDueReminders,
		&settings.Notifications.AutopayAlerts,
		&settings.Notifications.DebtNotifyDays,
		&settings.Notifications.DailyTime,
	)
	if err == sql.ErrNoRows {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

func (r *SettingsRepository) Update(settings domain.Settings) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (id, currency, bill_reminders, debt_due_reminders, autopay_alerts, debt_notify_days, daily_time)
        VALUES (1, $1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE SET
        currency = $1, bill_reminders = $2, debt_due_reminders = $3,
        autopay_alerts = $4, debt_notify_days = $5, daily_time = $6`,
		settings.Currency,
		settings.Notifications.BillReminders,
		settings.Notifications.DebtDueReminders,
		settings.Notifications.AutopayAlerts,
		settings.Notifications.DebtNotifyDays,
		settings.Notifications.DailyTime,
	)
	return err
}
