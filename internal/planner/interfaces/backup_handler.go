package interfaces

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
)

type BackupServiceInterface interface {
	BuildSnapshot() (*domain.Snapshot, error)
	ExportSnapshot(path string) error
}

type BackupHandler struct {
	service      BackupServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewBackupHandler(
	service BackupServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *BackupHandler {
	return &BackupHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// GetBackup returns the full planner state as a downloadable snapshot.
func (h *BackupHandler) GetBackup(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.BuildSnapshot()
	if err != nil {
		log.Println("Error building backup snapshot:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to build backup snapshot")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="budget-planner-backup.json"`)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(snapshot)
}

type exportBackupRequest struct {
	Path string `json:"path"`
}

// ExportBackup writes the snapshot to a file on the server host.
func (h *BackupHandler) ExportBackup(w http.ResponseWriter, r *http.Request) {
	var req exportBackupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Path == "" {
		h.respondError(w, http.StatusBadRequest, "Export path is required")
		return
	}
	if err := h.service.ExportSnapshot(req.Path); err != nil {
		log.Println("Error exporting backup snapshot:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to export backup snapshot")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Backup exported successfully.",
	})
}
