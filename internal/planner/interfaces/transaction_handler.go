package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/application"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type TransactionServiceInterface interface {
	CreateTransaction(transaction *domain.Transaction) error
	GetTransaction(transactionID string) (*domain.Transaction, error)
	ListTransactions() ([]domain.Transaction, error)
	UpdateTransaction(transaction domain.Transaction) error
	DeleteTransaction(transactionID string) error
	SplitSeries(masterID string, cutover time.Time, edits application.SeriesEdits) (*domain.Transaction, *domain.Transaction, error)
}

type ProjectionServiceInterface interface {
	UpcomingOccurrences(windowStart, windowEnd time.Time) ([]domain.Occurrence, error)
	MaterializeDue(asOf time.Time) (int, error)
}

// ReminderReconcilerInterface rebuilds the scheduled reminder set. Every
// successful data mutation triggers it so the schedule never outlives the
// records it was computed from.
type ReminderReconcilerInterface interface {
	Reconcile(ctx context.Context) error
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	projection   ProjectionServiceInterface
	reminders    ReminderReconcilerInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	projection ProjectionServiceInterface,
	reminders ReminderReconcilerInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *TransactionHandler {
	if service == nil || projection == nil || reminders == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	if respondJSON == nil || respondError == nil {
		log.Fatal("Respond functions must not be nil")
		return nil
	}
	return &TransactionHandler{
		service:      service,
		projection:   projection,
		reminders:    reminders,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// Reconciliation failures never fail the mutation that triggered them; the
// daily tick retries the schedule anyway.
func (h *TransactionHandler) reconcileReminders(r *http.Request) {
	if err := h.reminders.Reconcile(r.Context()); err != nil {
		log.Println("Error during reminder reconciliation:", err.Error())
	}
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var transaction domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateTransaction(&transaction); err != nil {
		if plannerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during transaction creation:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	h.reconcileReminders(r)
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    transaction,
	})
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.service.GetTransaction(r.PathValue("transactionID"))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transaction")
		return
	}
	if transaction == nil {
		h.respondError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   transaction,
	})
}

func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.service.ListTransactions()
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transactions retrieved successfully.",
		"data":    transactions,
	})
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var transaction domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	transaction.ID = r.PathValue("transactionID")

	if err := h.service.UpdateTransaction(transaction); err != nil {
		if errors.Is(err, plannerErrors.ErrTransactionNotFound) {
			h.respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		if plannerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}
	h.reconcileReminders(r)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully updated.",
	})
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteTransaction(r.PathValue("transactionID")); err != nil {
		if errors.Is(err, plannerErrors.ErrTransactionNotFound) {
			h.respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}
	h.reconcileReminders(r)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully deleted.",
	})
}

type splitSeriesRequest struct {
	Cutover   string           `json:"cutover"`
	Amount    *decimal.Decimal `json:"amount"`
	Type      *string          `json:"type"`
	Category  *string          `json:"category"`
	Note      *string          `json:"note"`
	Frequency *string          `json:"frequency"`
	EndDate   *string          `json:"endDate"`
}

// SplitSeries changes a recurring series "from this date forward": the
// existing master is closed at cutover-1 and a new master opens at cutover
// with the requested edits.
func (h *TransactionHandler) SplitSeries(w http.ResponseWriter, r *http.Request) {
	var req splitSeriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cutover, err := time.ParseInLocation(dateLayout, req.Cutover, time.Local)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid cutover date format")
		return
	}

	edits := application.SeriesEdits{
		Amount:   req.Amount,
		Type:     req.Type,
		Category: req.Category,
		Note:     req.Note,
	}
	if req.Frequency != nil {
		frequency := domain.NormalizeFrequency(*req.Frequency)
		edits.Frequency = &frequency
	}
	if req.EndDate != nil {
		endDate, err := time.ParseInLocation(dateLayout, *req.EndDate, time.Local)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid end date format")
			return
		}
		edits.EndDate = &endDate
	}

	closed, successor, err := h.service.SplitSeries(r.PathValue("transactionID"), cutover, edits)
	if err != nil {
		if errors.Is(err, plannerErrors.ErrSeriesNotFound) {
			h.respondError(w, http.StatusNotFound, "Recurring series not found")
			return
		}
		if plannerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during series split:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to split series")
		return
	}

	h.reconcileReminders(r)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Series successfully split.",
		"data": map[string]interface{}{
			"closed":    closed,
			"successor": successor,
		},
	})
}

// GetOccurrences lists projected (not persisted) occurrences between
// start and end, defaulting to the next three months.
func (h *TransactionHandler) GetOccurrences(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	windowStart := now
	windowEnd := now.AddDate(0, 3, 0)
	var err error

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		windowStart, err = time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid start date format")
			return
		}
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		windowEnd, err = time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid end date format")
			return
		}
	}

	occurrences, err := h.projection.UpcomingOccurrences(windowStart, windowEnd)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to project occurrences")
		return
	}
	if occurrences == nil {
		occurrences = []domain.Occurrence{}
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Occurrences projected successfully.",
		"data":    occurrences,
	})
}

// Materialize converts every occurrence due as of today into a stored
// transaction. The scheduler calls the same service nightly; this endpoint
// exists for catch-up after the app was closed.
func (h *TransactionHandler) Materialize(w http.ResponseWriter, r *http.Request) {
	created, err := h.projection.MaterializeDue(time.Now())
	if err != nil {
		log.Println("Error during materialization:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to materialize due occurrences")
		return
	}
	h.reconcileReminders(r)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Due occurrences materialized.",
		"data":    map[string]int{"created": created},
	})
}
