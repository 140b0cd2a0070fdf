package repository

import (
	"context"
	"database/sql"

	"github.com/ansdeepu/xpensemanager-sub000/internal/ledger"
)

// LoanRepo handles loans and their sub-transactions.
type LoanRepo struct {
	db *sql.DB
}

func NewLoanRepo(db *sql.DB) *LoanRepo { return &LoanRepo{db: db} }

func (r *LoanRepo) Upsert(ctx context.Context, l ledger.Loan) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO loans(id, person_name, type, created_at, updated_at)
	VALUES(?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 person_name=excluded.person_name,
	 type=excluded.type,
	 updated_at=CURRENT_TIMESTAMP;
	`, l.ID, l.PersonName, string(l.Type))
	return err
}

func (r *LoanRepo) AddTransaction(ctx context.Context, loanID string, lt ledger.LoanTransaction) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO loan_transactions(id, loan_id, date, amount, type, account_id)
	VALUES(?, ?, ?, ?, ?, ?);
	`, lt.ID, loanID, lt.Date, toCents(lt.Amount), string(lt.Type), lt.AccountID)
	return err
}

// List returns all loans with their sub-transactions ordered by date.
// Loan balances are never stored; callers derive them via Loan.Totals.
func (r *LoanRepo) List(ctx context.Context) ([]ledger.Loan, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, person_name, type FROM loans ORDER BY person_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Loan
	for rows.Next() {
		var (
			l        ledger.Loan
			loanType string
		)
		if err := rows.Scan(&l.ID, &l.PersonName, &loanType); err != nil {
			return nil, err
		}
		l.Type = ledger.LoanType(loanType)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		txs, err := r.fetchTransactions(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Transactions = txs
	}
	return out, nil
}

func (r *LoanRepo) fetchTransactions(ctx context.Context, loanID string) ([]ledger.LoanTransaction, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, date, amount, type, account_id FROM loan_transactions
	WHERE loan_id = ? ORDER BY date ASC, id ASC`, loanID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.LoanTransaction
	for rows.Next() {
		var (
			lt     ledger.LoanTransaction
			cents  int64
			ltType string
		)
		if err := rows.Scan(&lt.ID, &lt.Date, &cents, &ltType, &lt.AccountID); err != nil {
			return nil, err
		}
		lt.Amount = fromCents(cents)
		lt.Type = ledger.LoanTxType(ltType)
		out = append(out, lt)
	}
	return out, rows.Err()
}
