package domain

type SettingsRepository interface {
	Get() (Settings, error)
	Update(settings Settings) error
}

// Settings holds the user preferences the planner acts on. Theme and
// language stay with the UI collaborator and are not modeled here.
type Settings struct {
	Currency      string               `json:"currency"`
	Notifications NotificationSettings `json:"notifications"`
}

type NotificationSettings struct {
	BillReminders    bool   `json:"billReminders"`
	DebtDueReminders bool   `json:"debtDueReminders"`
	AutopayAlerts    bool   `json:"autopayAlerts"`
	DebtNotifyDays   int    `json:"debtNotifyDays"`
	DailyTime        string `json:"dailyTime"` // "HH:MM", local time
}

func DefaultSettings() Settings {
	return Settings{
		Currency: "USD",
		Notifications: NotificationSettings{
			BillReminders:    true,
			DebtDueReminders: true,
			AutopayAlerts:    false,
			DebtNotifyDays:   3,
			DailyTime:        "06:00",
		},
	}
}
