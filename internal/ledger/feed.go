package ledger

import "github.com/shopspring/decimal"

// FeedRow is one annotated line of a view's transaction feed.
type FeedRow struct {
	Tx             Transaction
	Classification Classification

	// Running is the view's balance after this transaction, folded in
	// ascending ledger order.
	Running decimal.Decimal

	// Effect is the signed amount this row applied to the view.
	Effect decimal.Decimal
}

// ViewFeed produces the newest-first annotated feed for the view selected
// by viewID: membership filter, one total order shared between fold and
// display, running balance, classification labels.
func ViewFeed(viewID string, accounts []Account, txs []Transaction, loans []Loan) []FeedRow {
	view := ResolveView(viewID, accounts)
	ix := indexAccounts(accounts)

	primaryID := ""
	if p, ok := PrimaryAccount(accounts); ok {
		primaryID = p.ID
	}
	classify := NewClassifier(loans, primaryID)

	var members []Transaction
	for _, tx := range txs {
		if view.contains(tx, ix) {
			members = append(members, tx)
		}
	}

	ordered := SortLedger(members, classify, DefaultTiebreak)
	rows := make([]FeedRow, 0, len(ordered))
	running := decimal.Zero
	for _, tx := range ordered {
		effect := view.effect(tx, ix)
		running = running.Add(effect)
		rows = append(rows, FeedRow{
			Tx:             tx,
			Classification: classify(tx),
			Running:        running,
			Effect:         effect,
		})
	}

	// newest first, same total order reversed
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}
