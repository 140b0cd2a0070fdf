package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ansdeepu/xpensemanager-sub000/internal/ledger"
)

// TransactionFilters defines list filters. Zero values are off.
type TransactionFilters struct {
	Type      ledger.TxType
	AccountID string // matches account_id, from_account_id or to_account_id
	Category  string
	Month     time.Time // use first day of month; zero time = no month filter
	Search    string
}

// TransactionRepo handles transaction rows.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

func (r *TransactionRepo) Insert(ctx context.Context, t ledger.Transaction) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(
	 id, date, amount, type, description, category, subcategory,
	 account_id, payment_method, from_account_id, to_account_id, loan_transaction_id,
	 created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`,
		t.ID, t.Date, toCents(t.Amount), string(t.Type), t.Description, t.Category, t.Subcategory,
		t.AccountID, string(t.PaymentMethod), t.FromAccountID, t.ToAccountID, t.LoanTransactionID)
	return err
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	return err
}

func (r *TransactionRepo) Get(ctx context.Context, id string) (*ledger.Transaction, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const selectColumns = `SELECT id, date, amount, type, description, category, subcategory,
 account_id, payment_method, from_account_id, to_account_id, loan_transaction_id`

func (r *TransactionRepo) List(ctx context.Context, f TransactionFilters) ([]ledger.Transaction, error) {
	var where []string
	var args []interface{}

	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(f.Type))
	}
	if f.AccountID != "" {
		where = append(where, "(account_id = ? OR from_account_id = ? OR to_account_id = ?)")
		args = append(args, f.AccountID, f.AccountID, f.AccountID)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	if !f.Month.IsZero() {
		start := time.Date(f.Month.Year(), f.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		where = append(where, "date >= ? AND date < ?")
		args = append(args, start, end)
	}
	if f.Search != "" {
		where = append(where, "description LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}

	query := selectColumns + " FROM transactions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date ASC, created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (ledger.Transaction, error) {
	var (
		t             ledger.Transaction
		cents         int64
		txType        string
		paymentMethod string
	)
	err := row.Scan(&t.ID, &t.Date, &cents, &txType, &t.Description, &t.Category, &t.Subcategory,
		&t.AccountID, &paymentMethod, &t.FromAccountID, &t.ToAccountID, &t.LoanTransactionID)
	if err != nil {
		return ledger.Transaction{}, err
	}
	t.Amount = fromCents(cents)
	t.Type = ledger.TxType(txType)
	t.PaymentMethod = ledger.PaymentMethod(paymentMethod)
	return t, nil
}
