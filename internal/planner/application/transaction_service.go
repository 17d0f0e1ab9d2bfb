package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
	"github.com/shopspring/decimal"
)

type TransactionService struct {
	repo            domain.TransactionRepository
	categoryService CategoryServiceInterface
	now             func() time.Time
}

func NewTransactionService(repo domain.TransactionRepository, categoryService CategoryServiceInterface) *TransactionService {
	return &TransactionService{
		repo:            repo,
		categoryService: categoryService,
		now:             time.Now,
	}
}

func (s *TransactionService) CreateTransaction(transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.Date = domain.NormalizeToNoon(transaction.Date)
	if transaction.EndDate != nil {
		end := domain.NormalizeToNoon(*transaction.EndDate)
		transaction.EndDate = &end
	}
	if transaction.IsRecurring {
		// A master is the root of its own family.
		transaction.SeriesID = transaction.ID
	}
	transaction.CreatedAt = s.now()

	if err := transaction.Validate(); err != nil {
		return err
	}
	exists, err := s.categoryService.DoesCategoryExist(transaction.Category)
	if err != nil {
		return err
	}
	if !exists {
		return plannerErrors.NewValidationError("Unknown category: " + transaction.Category)
	}
	return s.repo.Save(*transaction)
}

func (s *TransactionService) GetTransaction(transactionID string) (*domain.Transaction, error) {
	return s.repo.FindByID(transactionID)
}

func (s *TransactionService) ListTransactions() ([]domain.Transaction, error) {
	return s.repo.FindAll()
}

func (s *TransactionService) UpdateTransaction(transaction domain.Transaction) error {
	existing, err := s.repo.FindByID(transaction.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return plannerErrors.ErrTransactionNotFound
	}
	transaction.Date = domain.NormalizeToNoon(transaction.Date)
	if transaction.EndDate != nil {
		end := domain.NormalizeToNoon(*transaction.EndDate)
		transaction.EndDate = &end
	}
	transaction.SeriesID = existing.SeriesID
	transaction.CreatedAt = existing.CreatedAt
	if err := transaction.Validate(); err != nil {
		return err
	}
	return s.repo.Update(transaction)
}

func (s *TransactionService) DeleteTransaction(transactionID string) error {
	return s.repo.Delete(transactionID)
}

// SeriesEdits carries the fields a user may change when a series is split.
// Nil fields keep the old master's value.
type SeriesEdits struct {
	Amount    *decimal.Decimal
	Type      *string
	Category  *string
	Note      *string
	Frequency *domain.Frequency
	EndDate   *time.Time
}

// SplitSeries closes a recurring series the day before cutover and opens a
// new master at cutover carrying the edits. This is how "my rent changes
// starting next month" is recorded: everything before the cutover stays
// attributed to the old series, untouched, and only its future projection
// is truncated.
func (s *TransactionService) SplitSeries(masterID string, cutover time.Time, edits SeriesEdits) (*domain.Transaction, *domain.Transaction, error) {
	master, err := s.repo.FindByID(masterID)
	if err != nil {
		return nil, nil, err
	}
	if master == nil {
		return nil, nil, plannerErrors.ErrSeriesNotFound
	}
	if !master.IsMaster() {
		return nil, nil, plannerErrors.NewValidationError("Only a recurring series master can be split")
	}

	cutover = domain.NormalizeToNoon(cutover)
	anchor := domain.NormalizeToNoon(master.Date)
	if !cutover.After(anchor) {
		return nil, nil, plannerErrors.NewValidationError("Cutover date must be after the series start date")
	}

	closed := *master
	endDate := domain.AddDays(cutover, -1)
	closed.EndDate = &endDate
	if err := s.repo.Update(closed); err != nil {
		return nil, nil, err
	}

	successor := domain.Transaction{
		ID:          uuid.NewString(),
		Amount:      master.Amount,
		Type:        master.Type,
		Category:    master.Category,
		Date:        cutover,
		Note:        master.Note,
		IsRecurring: true,
		Frequency:   master.Frequency,
		CreatedAt:   s.now(),
	}
	successor.SeriesID = successor.ID
	if edits.Amount != nil {
		successor.Amount = *edits.Amount
	}
	if edits.Type != nil {
		successor.Type = *edits.Type
	}
	if edits.Category != nil {
		successor.Category = *edits.Category
	}
	if edits.Note != nil {
		successor.Note = *edits.Note
	}
	if edits.Frequency != nil {
		successor.Frequency = *edits.Frequency
	}
	if edits.EndDate != nil {
		end := domain.NormalizeToNoon(*edits.EndDate)
		successor.EndDate = &end
	}

	if err := successor.Validate(); err != nil {
		// Roll the closure back so a rejected edit leaves no partial
		// mutation behind.
		if restoreErr := s.repo.Update(*master); restoreErr != nil {
			return nil, nil, errors.Join(err, restoreErr)
		}
		return nil, nil, err
	}
	if err := s.repo.Save(successor); err != nil {
		if restoreErr := s.repo.Update(*master); restoreErr != nil {
			return nil, nil, errors.Join(err, restoreErr)
		}
		return nil, nil, err
	}
	return &closed, &successor, nil
}
