package interfaces

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/application"
)

type ForecastServiceInterface interface {
	ForecastForMonth(target time.Time) (*application.NetForecast, error)
	ForecastForYear(year int) (*application.YearForecast, error)
	SnapshotForMonth(target, now time.Time) (*application.MonthSnapshot, error)
}

type ForecastHandler struct {
	service      ForecastServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewForecastHandler(
	service ForecastServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ForecastHandler {
	return &ForecastHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// parseMonth accepts "2006-01" and returns mid-month local noon, so the
// result is unambiguous regardless of timezone.
func parseMonth(raw string) (time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01", raw, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(parsed.Year(), parsed.Month(), 15, 12, 0, 0, 0, time.Local), nil
}

func (h *ForecastHandler) GetMonthForecast(w http.ResponseWriter, r *http.Request) {
	target := time.Now()
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := parseMonth(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid month format, expected YYYY-MM")
			return
		}
		target = parsed
	}

	forecast, err := h.service.ForecastForMonth(target)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to compute forecast")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Forecast computed successfully.",
		"data":    forecast,
	})
}

func (h *ForecastHandler) GetYearForecast(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			h.respondError(w, http.StatusBadRequest, "Invalid year value")
			return
		}
		year = parsed
	}

	forecast, err := h.service.ForecastForYear(year)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to compute forecast")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Forecast computed successfully.",
		"data":    forecast,
	})
}

func (h *ForecastHandler) GetMonthSnapshot(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	target := now
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := parseMonth(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid month format, expected YYYY-MM")
			return
		}
		target = parsed
	}

	snapshot, err := h.service.SnapshotForMonth(target, now)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to compute month snapshot")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Month snapshot computed successfully.",
		"data":    snapshot,
	})
}
