package ledger

import "github.com/shopspring/decimal"

// Balances is the absolute position of every account and wallet after
// folding a full transaction snapshot.
type Balances struct {
	// PerAccount maps account id to balance. For cards the value is
	// accumulated debt (positive = owed).
	PerAccount map[string]decimal.Decimal

	Cash    decimal.Decimal
	Digital decimal.Decimal

	// Skipped counts transactions rejected by validity checks (negative
	// magnitude, self-transfer). One bad row degrades, never crashes.
	Skipped int
}

// Account returns the balance for id, zero when unknown.
func (b Balances) Account(id string) decimal.Decimal {
	if v, ok := b.PerAccount[id]; ok {
		return v
	}
	return decimal.Zero
}

// Wallet returns the balance of the given wallet ref, zero otherwise.
func (b Balances) Wallet(r AccountRef) decimal.Decimal {
	switch r.Kind {
	case RefCashWallet:
		return b.Cash
	case RefDigitalWallet:
		return b.Digital
	}
	return decimal.Zero
}

// ComputeBalances folds the transaction snapshot into per-account and
// wallet balances. The fold is additive, so the result does not depend on
// transaction order; only intra-day running balances (see ViewFeed) do.
// Account ids referenced by a transaction but absent from accounts are
// ignored for that side of the effect.
func ComputeBalances(accounts []Account, txs []Transaction) Balances {
	ix := indexAccounts(accounts)
	b := Balances{
		PerAccount: make(map[string]decimal.Decimal, len(accounts)),
		Cash:       decimal.Zero,
		Digital:    decimal.Zero,
	}
	for _, a := range accounts {
		b.PerAccount[a.ID] = decimal.Zero
	}

	for _, tx := range txs {
		if !validForAccumulation(tx) {
			b.Skipped++
			continue
		}
		switch tx.Type {
		case TxIncome:
			// income never posts to a card
			if ref := ParseRef(tx.AccountID); !(ref.Kind == RefAccount && ix.isCard(ref.AccountID)) {
				b.credit(ix, ref, tx.Amount)
			}
		case TxExpense:
			switch tx.PaymentMethod {
			case PayCash:
				b.Cash = b.Cash.Sub(tx.Amount)
			case PayDigital:
				b.Digital = b.Digital.Sub(tx.Amount)
			case PayOnline:
				b.debit(ix, ParseRef(tx.AccountID), tx.Amount)
			}
		case TxTransfer:
			b.debit(ix, ParseRef(tx.FromAccountID), tx.Amount)
			b.credit(ix, ParseRef(tx.ToAccountID), tx.Amount)
		}
	}
	return b
}

// credit applies money arriving at ref. Money arriving at a card pays
// down debt. Plain income never reaches here for cards; the caller drops
// it first.
func (b *Balances) credit(ix accountIndex, ref AccountRef, amount decimal.Decimal) {
	switch ref.Kind {
	case RefCashWallet:
		b.Cash = b.Cash.Add(amount)
	case RefDigitalWallet:
		b.Digital = b.Digital.Add(amount)
	case RefAccount:
		a, ok := ix.lookup(ref.AccountID)
		if !ok {
			return
		}
		if a.IsCard() {
			// paying down debt
			b.PerAccount[a.ID] = b.PerAccount[a.ID].Sub(amount)
			return
		}
		b.PerAccount[a.ID] = b.PerAccount[a.ID].Add(amount)
	}
	// RefNone and RefLoanVirtual carry no tracked balance.
}

// debit applies money leaving ref. For a card this is spend or a cash
// advance, which increases debt.
func (b *Balances) debit(ix accountIndex, ref AccountRef, amount decimal.Decimal) {
	switch ref.Kind {
	case RefCashWallet:
		b.Cash = b.Cash.Sub(amount)
	case RefDigitalWallet:
		b.Digital = b.Digital.Sub(amount)
	case RefAccount:
		a, ok := ix.lookup(ref.AccountID)
		if !ok {
			return
		}
		if a.IsCard() {
			b.PerAccount[a.ID] = b.PerAccount[a.ID].Add(amount)
			return
		}
		b.PerAccount[a.ID] = b.PerAccount[a.ID].Sub(amount)
	}
}

// validForAccumulation rejects rows that would corrupt the fold. The
// write boundary should never produce these, but partial or hand-edited
// data must degrade to a skip, not a crash.
func validForAccumulation(tx Transaction) bool {
	if tx.Amount.IsNegative() {
		return false
	}
	if tx.Type == TxTransfer && tx.FromAccountID == tx.ToAccountID {
		return false
	}
	return true
}
