package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
	"github.com/shopspring/decimal"
)

type DebtServiceInterface interface {
	CreateDebt(account *domain.DebtAccount) error
	GetDebt(accountID string) (*domain.DebtAccount, error)
	ListDebts() ([]domain.DebtAccount, error)
	UpdateDebt(account domain.DebtAccount) error
	DeleteDebt(accountID string) error
	RecordPayment(accountID string, amount decimal.Decimal, date time.Time, note string, override bool) (*domain.DebtAccount, error)
}

type DebtHandler struct {
	service      DebtServiceInterface
	reminders    ReminderReconcilerInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewDebtHandler(
	service DebtServiceInterface,
	reminders ReminderReconcilerInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *DebtHandler {
	if service == nil || reminders == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &DebtHandler{
		service:      service,
		reminders:    reminders,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *DebtHandler) reconcileReminders(r *http.Request) {
	if err := h.reminders.Reconcile(r.Context()); err != nil {
		log.Println("Error during reminder reconciliation:", err.Error())
	}
}

func (h *DebtHandler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var account domain.DebtAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateDebt(&account); err != nil {
		if plannerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during debt creation:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create debt account")
		return
	}
	h.reconcileReminders(r)
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Debt account successfully created.",
		"data":    account,
	})
}

func (h *DebtHandler) GetDebt(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.GetDebt(r.PathValue("accountID"))
	if err != nil {
		if errors.Is(err, plannerErrors.ErrDebtNotFound) {
			h.respondError(w, http.StatusNotFound, "Debt account not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve debt account")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   account,
	})
}

func (h *DebtHandler) ListDebts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListDebts()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve debt accounts")
		return
	}
	if accounts == nil {
		accounts = []domain.DebtAccount{}
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Debt accounts retrieved successfully.",
		"data":    accounts,
	})
}

func (h *DebtHandler) UpdateDebt(w http.ResponseWriter, r *http.Request) {
	var account domain.DebtAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	account.ID = r.PathValue("accountID")

	if err := h.service.UpdateDebt(account); err != nil {
		if errors.Is(err, plannerErrors.ErrDebtNotFound) {
			h.respondError(w, http.StatusNotFound, "Debt account not found")
			return
		}
		if plannerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update debt account")
		return
	}
	h.reconcileReminders(r)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Debt account successfully updated.",
	})
}

func (h *DebtHandler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDebt(r.PathValue("accountID")); err != nil {
		if errors.Is(err, plannerErrors.ErrDebtNotFound) {
			h.respondError(w, http.StatusNotFound, "Debt account not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete debt account")
		return
	}
	h.reconcileReminders(r)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Debt account successfully deleted.",
	})
}

type recordPaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Note     string          `json:"note"`
	Override bool            `json:"override"`
}

func (h *DebtHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	date := time.Now()
	if req.Date != "" {
		parsed, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid payment date format")
			return
		}
		date = parsed
	}

	account, err := h.service.RecordPayment(r.PathValue("accountID"), req.Amount, date, req.Note, req.Override)
	if err != nil {
		if errors.Is(err, plannerErrors.ErrDebtNotFound) {
			h.respondError(w, http.StatusNotFound, "Debt account not found")
			return
		}
		if plannerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during payment recording:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to record payment")
		return
	}
	h.reconcileReminders(r)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Payment successfully recorded.",
		"data":    account,
	})
}
