package repository

import (
	"context"
	"database/sql"

	"github.com/ansdeepu/xpensemanager-sub000/internal/ledger"
)

// WalletPrefsRepo handles the singleton wallet-preferences row.
type WalletPrefsRepo struct {
	db *sql.DB
}

func NewWalletPrefsRepo(db *sql.DB) *WalletPrefsRepo { return &WalletPrefsRepo{db: db} }

// Get returns the stored wallet reconciliation snapshots. A missing row
// is not an error; it means nothing has been recorded yet.
func (r *WalletPrefsRepo) Get(ctx context.Context) (ledger.WalletPreferences, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT cash_balance, cash_date, digital_balance, digital_date, reconciliation_date
	FROM wallet_prefs WHERE id = 1`)

	var (
		prefs        ledger.WalletPreferences
		cashCents    sql.NullInt64
		cashDate     sql.NullTime
		digitalCents sql.NullInt64
		digitalDate  sql.NullTime
		reconDate    sql.NullTime
	)
	err := row.Scan(&cashCents, &cashDate, &digitalCents, &digitalDate, &reconDate)
	if err == sql.ErrNoRows {
		return ledger.WalletPreferences{}, nil
	}
	if err != nil {
		return ledger.WalletPreferences{}, err
	}

	if cashCents.Valid && cashDate.Valid {
		prefs.Cash = &ledger.WalletSnapshot{Balance: fromCents(cashCents.Int64), Date: cashDate.Time}
	}
	if digitalCents.Valid && digitalDate.Valid {
		prefs.Digital = &ledger.WalletSnapshot{Balance: fromCents(digitalCents.Int64), Date: digitalDate.Time}
	}
	if reconDate.Valid {
		prefs.ReconciliationDate = reconDate.Time
	}
	return prefs, nil
}

// Save upserts the singleton row.
func (r *WalletPrefsRepo) Save(ctx context.Context, prefs ledger.WalletPreferences) error {
	var (
		cashCents    interface{}
		cashDate     interface{}
		digitalCents interface{}
		digitalDate  interface{}
		reconDate    interface{}
	)
	if prefs.Cash != nil {
		cashCents = toCents(prefs.Cash.Balance)
		cashDate = prefs.Cash.Date
	}
	if prefs.Digital != nil {
		digitalCents = toCents(prefs.Digital.Balance)
		digitalDate = prefs.Digital.Date
	}
	if !prefs.ReconciliationDate.IsZero() {
		reconDate = prefs.ReconciliationDate
	}

	_, err := r.db.ExecContext(ctx, `
	INSERT INTO wallet_prefs(id, cash_balance, cash_date, digital_balance, digital_date, reconciliation_date)
	VALUES(1, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 cash_balance=excluded.cash_balance,
	 cash_date=excluded.cash_date,
	 digital_balance=excluded.digital_balance,
	 digital_date=excluded.digital_date,
	 reconciliation_date=excluded.reconciliation_date;
	`, cashCents, cashDate, digitalCents, digitalDate, reconDate)
	return err
}
