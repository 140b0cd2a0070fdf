package ledger

import "github.com/shopspring/decimal"

// reconcileEpsilon suppresses float noise below one cent. Amounts are
// currency with two decimal places; residues under 0.01 are a match.
var reconcileEpsilon = decimal.New(1, -2)

// Diff compares a computed balance against a user-entered actual balance.
// nil actual returns nil (nothing recorded). Positive delta means the
// ledger exceeds the real-world figure (missing income or phantom
// expense); negative means the reverse.
func Diff(computed decimal.Decimal, actual *decimal.Decimal) *decimal.Decimal {
	if actual == nil {
		return nil
	}
	delta := computed.Sub(*actual)
	if delta.Abs().LessThan(reconcileEpsilon) {
		delta = decimal.Zero
	}
	return &delta
}
