// Package repository persists ledger entities in sqlite. Amounts are
// stored as integer minor units (cents) and converted to decimals at the
// boundary, so the database never holds float money.
package repository

import "github.com/shopspring/decimal"

func toCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}
