package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ansdeepu/xpensemanager-sub000/internal/ledger"
)

// AccountRepo handles account rows.
type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) Upsert(ctx context.Context, a ledger.Account) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO accounts(id, name, type, is_primary, sort_order, credit_limit, linked_account_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 type=excluded.type,
	 is_primary=excluded.is_primary,
	 sort_order=excluded.sort_order,
	 credit_limit=excluded.credit_limit,
	 linked_account_id=excluded.linked_account_id,
	 updated_at=CURRENT_TIMESTAMP;
	`, a.ID, a.Name, string(a.Type), a.IsPrimary, a.Order, toCents(a.Limit), a.LinkedAccountID)
	return err
}

// SetPrimary flags one account primary and clears the flag everywhere
// else, preserving the at-most-one invariant.
func (r *AccountRepo) SetPrimary(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET is_primary = 0, updated_at=CURRENT_TIMESTAMP WHERE is_primary = 1`); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE accounts SET is_primary = 1, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, id); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Reorder rewrites sort_order to match the given id sequence.
func (r *AccountRepo) Reorder(ctx context.Context, ids []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for i, id := range ids {
		if _, err := tx.ExecContext(ctx, `UPDATE accounts SET sort_order = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, i, id); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SetActualBalance records a user-entered reconciliation snapshot.
func (r *AccountRepo) SetActualBalance(ctx context.Context, id string, balance decimal.Decimal, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE accounts SET actual_balance = ?, actual_balance_date = ?, updated_at=CURRENT_TIMESTAMP WHERE id = ?`,
		toCents(balance), at, id)
	return err
}

// ClearActualBalance removes the reconciliation snapshot.
func (r *AccountRepo) ClearActualBalance(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE accounts SET actual_balance = NULL, actual_balance_date = NULL, updated_at=CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

func (r *AccountRepo) List(ctx context.Context) ([]ledger.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, name, type, is_primary, sort_order, credit_limit, linked_account_id, actual_balance, actual_balance_date
	FROM accounts ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Account
	for rows.Next() {
		var (
			a           ledger.Account
			accountType string
			limitCents  int64
			actual      sql.NullInt64
			actualDate  sql.NullTime
		)
		if err := rows.Scan(&a.ID, &a.Name, &accountType, &a.IsPrimary, &a.Order, &limitCents, &a.LinkedAccountID, &actual, &actualDate); err != nil {
			return nil, err
		}
		a.Type = ledger.AccountType(accountType)
		a.Limit = fromCents(limitCents)
		if actual.Valid {
			v := fromCents(actual.Int64)
			a.ActualBalance = &v
		}
		if actualDate.Valid {
			t := actualDate.Time
			a.ActualBalanceDate = &t
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
