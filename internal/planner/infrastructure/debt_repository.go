package infrastructure

import (
	"database/sql"
	"time"

	"github.com/sebuszqo/BudgetPlanner/internal/planner/domain"
	plannerErrors "github.com/sebuszqo/BudgetPlanner/internal/planner/errors"
	"github.com/shopspring/decimal"
)

type DebtRepository struct {
	db *sql.DB
}

func NewDebtRepository(db *sql.DB) *DebtRepository {
	return &DebtRepository{db: db}
}

func (r *DebtRepository) Save(account domain.DebtAccount) error {
	_, err := r.db.Exec(
		`INSERT INTO debt_accounts
        (id, name, kind, credit_limit, balance, apr, min_payment, due_date, autopay, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		account.ID, account.Name, account.Kind, account.Limit.String(), account.Balance.String(),
		account.APR.String(), account.MinPayment.String(), account.DueDate, account.Autopay, account.CreatedAt,
	)
	return err
}

func (r *DebtRepository) Update(account domain.DebtAccount) error {
	result, err := r.db.Exec(
		`UPDATE debt_accounts SET
        name = $2, kind = $3, credit_limit = $4, balance = $5, apr = $6,
        min_payment = $7, due_date = $8, autopay = $9
        WHERE id = $1`,
		account.ID, account.Name, account.Kind, account.Limit.String(), account.Balance.String(),
		account.APR.String(), account.MinPayment.String(), account.DueDate, account.Autopay,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return plannerErrors.ErrDebtNotFound
	}
	return nil
}

func (r *DebtRepository) Delete(accountID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM debt_payments WHERE account_id = $1`, accountID); err != nil {
		return err
	}
	result, err := tx.Exec(`DELETE FROM debt_accounts WHERE id = $1`, accountID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return plannerErrors.ErrDebtNotFound
	}
	return tx.Commit()
}

func (r *DebtRepository) FindByID(accountID string) (*domain.DebtAccount, error) {
	row := r.db.QueryRow(
		`SELECT id, name, kind, credit_limit, balance, apr, min_payment, due_date, autopay, created_at
        FROM debt_accounts WHERE id = $1`, accountID)
	account, err := scanDebtAccount(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadHistory(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (r *DebtRepository) FindAll() ([]domain.DebtAccount, error) {
	rows, err := r.db.Query(
		`SELECT id, name, kind, credit_limit, balance, apr, min_payment, due_date, autopay, created_at
        FROM debt_accounts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []domain.DebtAccount
	for rows.Next() {
		account, err := scanDebtAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range accounts {
		if err := r.loadHistory(&accounts[i]); err != nil {
			return nil, err
		}
	}
	return accounts, nil
}

func (r *DebtRepository) AppendPayment(accountID string, payment domain.PaymentRecord, newBalance decimal.Decimal, newDueDate *time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO debt_payments (id, account_id, date, amount, note) VALUES ($1, $2, $3, $4, $5)`,
		payment.ID, accountID, payment.Date, payment.Amount.String(), nullableString(payment.Note),
	)
	if err != nil {
		return err
	}

	var result sql.Result
	if newDueDate != nil {
		result, err = tx.Exec(`UPDATE debt_accounts SET balance = $2, due_date = $3 WHERE id = $1`,
			accountID, newBalance.String(), *newDueDate)
	} else {
		result, err = tx.Exec(`UPDATE debt_accounts SET balance = $2 WHERE id = $1`,
			accountID, newBalance.String())
	}
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return plannerErrors.ErrDebtNotFound
	}
	return tx.Commit()
}

func (r *DebtRepository) loadHistory(account *domain.DebtAccount) error {
	rows, err := r.db.Query(
		`SELECT id, date, amount, note FROM debt_payments WHERE account_id = $1 ORDER BY date, id`,
		account.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			payment domain.PaymentRecord
			amount  string
			note    sql.NullString
		)
		if err := rows.Scan(&payment.ID, &payment.Date, &amount, &note); err != nil {
			return err
		}
		payment.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return err
		}
		payment.Date = domain.NormalizeToNoon(payment.Date)
		payment.Note = note.String
		account.History = append(account.History, payment)
	}
	return rows.Err()
}

func scanDebtAccount(row rowScanner) (*domain.DebtAccount, error) {
	var (
		account    domain.DebtAccount
		limit      string
		balance    string
		apr        string
		minPayment string
	)
	err := row.Scan(
		&account.ID, &account.Name, &account.Kind, &limit, &balance,
		&apr, &minPayment, &account.DueDate, &account.Autopay, &account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if account.Limit, err = decimal.NewFromString(limit); err != nil {
		return nil, err
	}
	if account.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, err
	}
	if account.APR, err = decimal.NewFromString(apr); err != nil {
		return nil, err
	}
	if account.MinPayment, err = decimal.NewFromString(minPayment); err != nil {
		return nil, err
	}
	account.DueDate = domain.NormalizeToNoon(account.DueDate)
	return &account, nil
}
