package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/application"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
)

type NotificationServiceInterface interface {
	Reconcile(ctx context.Context) error
	DailyReminders(now time.Time) ([]application.Alert, error)
	DismissReminder(id string)
}

type SettingsHandler struct {
	settings      domain.SettingsRepository
	notifications NotificationServiceInterface
	respondJSON   func(w http.ResponseWriter, status int, payload interface{})
	respondError  func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewSettingsHandler(
	settings domain.SettingsRepository,
	notifications NotificationServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *SettingsHandler {
	return &SettingsHandler{
		settings:      settings,
		notifications: notifications,
		respondJSON:   respondJSON,
		respondError:  respondError,
	}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   settings,
	})
}

// UpdateSettings stores the new preferences and reconciles the reminder
// schedule, since toggles and the daily time change what should be
// scheduled.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.settings.Update(settings); err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	if err := h.notifications.Reconcile(r.Context()); err != nil {
		log.Println("Error during reminder reconciliation:", err.Error())
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Settings successfully updated.",
		"data":    settings,
	})
}

func (h *SettingsHandler) GetDailyReminders(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.notifications.DailyReminders(time.Now())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve reminders")
		return
	}
	if alerts == nil {
		alerts = []application.Alert{}
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Reminders retrieved successfully.",
		"data":    alerts,
	})
}

func (h *SettingsHandler) DismissReminder(w http.ResponseWriter, r *http.Request) {
	h.notifications.DismissReminder(r.PathValue("reminderID"))
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Reminder dismissed.",
	})
}
