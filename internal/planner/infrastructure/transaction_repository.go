package infrastructure

import (
	"database/sql"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, amount, type, category, date, note, is_recurring, frequency, series_id, end_date, paused, last_generated, created_at`

func (r *TransactionRepository) Save(transaction domain.Transaction) error {
	_, err := r.db.Exec(
		`INSERT INTO transactions
        (id, amount, type, category, date, note, is_recurring, frequency, series_id, end_date, paused, last_generated, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		transaction.ID, transaction.Amount.String(), transaction.Type, transaction.Category,
		transaction.Date, nullableString(transaction.Note), transaction.IsRecurring,
		nullableString(string(transaction.Frequency)), nullableString(transaction.SeriesID),
		transaction.EndDate, transaction.Paused, transaction.LastGenerated, transaction.CreatedAt,
	)
	return err
}

func (r *TransactionRepository) Update(transaction domain.Transaction) error {
	result, err := r.db.Exec(
		`UPDATE transactions SET
        amount = $2, type = $3, category = $4, date = $5, note = $6, is_recurring = $7,
        frequency = $8, series_id = $9, end_date = $10, paused = $11, last_generated = $12
        WHERE id = $1`,
		transaction.ID, transaction.Amount.String(), transaction.Type, transaction.Category,
		transaction.Date, nullableString(transaction.Note), transaction.IsRecurring,
		nullableString(string(transaction.Frequency)), nullableString(transaction.SeriesID),
		transaction.EndDate, transaction.Paused, transaction.LastGenerated,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return plannerErrors.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(transactionID string) error {
	result, err := r.db.Exec(`DELETE FROM transactions WHERE id = $1`, transactionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return plannerErrors.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) FindByID(transactionID string) (*domain.Transaction, error) {
	row := r.db.QueryRow(`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, transactionID)
	transaction, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return transaction, nil
}

func (r *TransactionRepository) FindAll() ([]domain.Transaction, error) {
	return r.queryTransactions(`SELECT ` + transactionColumns + ` FROM transactions ORDER BY date, created_at`)
}

func (r *TransactionRepository) FindMasters() ([]domain.Transaction, error) {
	return r.queryTransactions(`SELECT ` + transactionColumns + ` FROM transactions WHERE is_recurring = TRUE ORDER BY date, created_at`)
}

func (r *TransactionRepository) FindBySeries(seriesID string) ([]domain.Transaction, error) {
	return r.queryTransactions(
		`SELECT `+transactionColumns+` FROM transactions WHERE series_id = $1 OR id = $1 ORDER BY date, created_at`,
		seriesID,
	)
}

func (r *TransactionRepository) MaterializeInstances(instances []domain.Transaction, checkpoints map[string]time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, instance := range instances {
		_, err := tx.Exec(
			`INSERT INTO transactions
            (id, amount, type, category, date, note, is_recurring, frequency, series_id, end_date, paused, last_generated, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			instance.ID, instance.Amount.String(), instance.Type, instance.Category,
			instance.Date, nullableString(instance.Note), instance.IsRecurring,
			nullableString(string(instance.Frequency)), nullableString(instance.SeriesID),
			instance.EndDate, instance.Paused, instance.LastGenerated, instance.CreatedAt,
		)
		if err != nil {
			return err
		}
	}
	for masterID, checkpoint := range checkpoints {
		if _, err := tx.Exec(`UPDATE transactions SET last_generated = $2 WHERE id = $1`, masterID, checkpoint); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *TransactionRepository) queryTransactions(query string, args ...interface{}) ([]domain.Transaction, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *transaction)
	}
	return transactions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		transaction   domain.Transaction
		amount        string
		note          sql.NullString
		frequency     sql.NullString
		seriesID      sql.NullString
		endDate       sql.NullTime
		lastGenerated sql.NullTime
	)
	err := row.Scan(
		&transaction.ID, &amount, &transaction.Type, &transaction.Category, &transaction.Date,
		&note, &transaction.IsRecurring, &frequency, &seriesID, &endDate,
		&transaction.Paused, &lastGenerated, &transaction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	transaction.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	transaction.Date = domain.NormalizeToNoon(transaction.Date)
	transaction.Note = note.String
	transaction.Frequency = domain.Frequency(frequency.String)
	transaction.SeriesID = seriesID.String
	if endDate.Valid {
		end := domain.NormalizeToNoon(endDate.Time)
		transaction.EndDate = &end
	}
	if lastGenerated.Valid {
		checkpoint := domain.NormalizeToNoon(lastGenerated.Time)
		transaction.LastGenerated = &checkpoint
	}
	return &transaction, nil
}

func nullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
