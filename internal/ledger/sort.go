package ledger

import "sort"

// TiebreakPolicy assigns a same-day ordering priority to a classified
// transaction; lower sorts earlier in the day. The ordering is a policy,
// not a law: swap it out if exact compatibility is not required.
type TiebreakPolicy func(Classification) int

// DefaultTiebreak reproduces the conceptual order money moves within one
// calendar day: outflows before inflows, loans given before loans taken,
// so intra-day running balances read naturally.
func DefaultTiebreak(c Classification) int {
	switch c.DisplayType {
	case DisplayReturn:
		return 1
	case DisplayTransfer:
		return 2
	case DisplayRepaymentMade:
		return 3
	case DisplayLoanGiven:
		return 4
	case DisplayExpense:
		return 5
	case DisplayIssue:
		return 6
	case DisplayRepaymentReceived:
		return 7
	case DisplayLoanTaken:
		return 8
	case DisplayIncome:
		return 9
	default:
		return 99
	}
}

// SortLedger returns a copy of txs in ascending total order
// (date, tiebreak priority, amount ascending) for running-balance folds.
func SortLedger(txs []Transaction, classify Classifier, policy TiebreakPolicy) []Transaction {
	out := sortCopy(txs, classify, policy)
	return out
}

// SortDisplay returns a copy in the exact reverse of SortLedger's order.
// Display and running-balance computation share one total order so the
// two can never silently diverge.
func SortDisplay(txs []Transaction, classify Classifier, policy TiebreakPolicy) []Transaction {
	out := sortCopy(txs, classify, policy)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func sortCopy(txs []Transaction, classify Classifier, policy TiebreakPolicy) []Transaction {
	if policy == nil {
		policy = DefaultTiebreak
	}
	out := make([]Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		pa, pb := policy(classify(a)), policy(classify(b))
		if pa != pb {
			return pa < pb
		}
		return a.Amount.LessThan(b.Amount)
	})
	return out
}
