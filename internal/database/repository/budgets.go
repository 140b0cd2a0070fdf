package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
)

// BudgetRepo handles per-category monthly budget amounts.
type BudgetRepo struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepo { return &BudgetRepo{db: db} }

func (r *BudgetRepo) Set(ctx context.Context, category string, amount decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO budgets(category, amount) VALUES(?, ?)
	ON CONFLICT(category) DO UPDATE SET amount=excluded.amount;
	`, category, toCents(amount))
	return err
}

func (r *BudgetRepo) Delete(ctx context.Context, category string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE category = ?`, category)
	return err
}

func (r *BudgetRepo) All(ctx context.Context) (map[string]decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, amount FROM budgets`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]decimal.Decimal{}
	for rows.Next() {
		var (
			category string
			cents    int64
		)
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, err
		}
		out[category] = fromCents(cents)
	}
	return out, rows.Err()
}
