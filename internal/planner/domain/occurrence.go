package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Occurrence is a projected, not-yet-persisted instance of a recurring
// series ("ghost"). It carries the master's payload but is a distinct type
// from Transaction on purpose: ghosts never reach the repository unless
// they are explicitly materialized.
type Occurrence struct {
	SeriesID string          `json:"seriesId"`
	MasterID string          `json:"masterId"`
	Date     time.Time       `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Note     string          `json:"note,omitempty"`
}

// NewOccurrence copies the master's payload onto a ghost for the given date.
func NewOccurrence(master *Transaction, date time.Time) Occurrence {
	seriesID := master.SeriesID
	if seriesID == "" {
		seriesID = master.ID
	}
	return Occurrence{
		SeriesID: seriesID,
		MasterID: master.ID,
		Date:     date,
		Amount:   master.Amount,
		Type:     master.Type,
		Category: master.Category,
		Note:     master.Note,
	}
}

// Materialize converts the ghost into a persistable generated instance.
// The caller assigns the identifier.
func (o Occurrence) Materialize(id string, createdAt time.Time) Transaction {
	return Transaction{
		ID:          id,
		Amount:      o.Amount,
		Type:        o.Type,
		Category:    o.Category,
		Date:        o.Date,
		Note:        o.Note,
		IsRecurring: false,
		SeriesID:    o.SeriesID,
		CreatedAt:   createdAt,
	}
}
