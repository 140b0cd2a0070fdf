package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const monthKeyFormat = "2006-01"

// MonthSummary is one month's income/expense breakdown.
type MonthSummary struct {
	Month   string // "2006-01"
	Income  decimal.Decimal
	Expense decimal.Decimal

	// SpendByCategory holds expense magnitudes keyed by category.
	SpendByCategory map[string]decimal.Decimal
}

// MonthlyBreakdown groups income and expense transactions by calendar
// month, oldest first. Transfers move money around but are neither income
// nor spend, so they are excluded.
func MonthlyBreakdown(txs []Transaction) []MonthSummary {
	byMonth := map[string]*MonthSummary{}
	for _, tx := range txs {
		if !validForAccumulation(tx) {
			continue
		}
		key := tx.Date.Format(monthKeyFormat)
		m, ok := byMonth[key]
		if !ok {
			m = &MonthSummary{
				Month:           key,
				Income:          decimal.Zero,
				Expense:         decimal.Zero,
				SpendByCategory: map[string]decimal.Decimal{},
			}
			byMonth[key] = m
		}
		switch tx.Type {
		case TxIncome:
			m.Income = m.Income.Add(tx.Amount)
		case TxExpense:
			m.Expense = m.Expense.Add(tx.Amount)
			cat := tx.Category
			if cat == "" {
				cat = "Uncategorised"
			}
			m.SpendByCategory[cat] = m.SpendByCategory[cat].Add(tx.Amount)
		}
	}

	out := make([]MonthSummary, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// BudgetLine is one category's budget-vs-actual position for a month.
type BudgetLine struct {
	Category   string
	Budgeted   decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	OverBudget bool
}

// BudgetLines compares per-category budgets against the month's actual
// expense spend. Categories with spend but no budget are included with a
// zero budget so overspend is never hidden.
func BudgetLines(budgets map[string]decimal.Decimal, txs []Transaction, month time.Time) []BudgetLine {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	spent := map[string]decimal.Decimal{}
	for _, tx := range txs {
		if tx.Type != TxExpense || !validForAccumulation(tx) {
			continue
		}
		if tx.Date.Before(start) || !tx.Date.Before(end) {
			continue
		}
		cat := tx.Category
		if cat == "" {
			cat = "Uncategorised"
		}
		spent[cat] = spent[cat].Add(tx.Amount)
	}

	names := map[string]struct{}{}
	for c := range budgets {
		names[c] = struct{}{}
	}
	for c := range spent {
		names[c] = struct{}{}
	}

	out := make([]BudgetLine, 0, len(names))
	for c := range names {
		budgeted := budgets[c]
		line := BudgetLine{
			Category:  c,
			Budgeted:  budgeted,
			Spent:     spent[c],
			Remaining: budgeted.Sub(spent[c]),
		}
		line.OverBudget = line.Remaining.IsNegative()
		out = append(out, line)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
