package ledger

import "github.com/shopspring/decimal"

// ViewKind tags a View.
type ViewKind int

const (
	ViewAccount ViewKind = iota
	ViewCashWallet
	ViewDigitalWallet
	ViewPrimary

	// ViewNone matches nothing. An empty view id resolves here so it
	// cannot alias the wallet expenses whose AccountID is also empty.
	ViewNone
)

// View selects which slice of the ledger a feed is computed over. The
// primary view is the union ecosystem: primary bank account + both
// wallets, with associated credit cards included for display only.
type View struct {
	Kind ViewKind

	// AccountID is set for ViewAccount and ViewPrimary (the primary
	// account's id).
	AccountID string
}

// ResolveView maps a raw view id to a View. Selecting the primary
// account's id selects the whole primary ecosystem.
func ResolveView(id string, accounts []Account) View {
	if id == "" {
		return View{Kind: ViewNone}
	}
	switch id {
	case CashWalletID:
		return View{Kind: ViewCashWallet}
	case DigitalWalletID:
		return View{Kind: ViewDigitalWallet}
	}
	if p, ok := PrimaryAccount(accounts); ok && p.ID == id {
		return View{Kind: ViewPrimary, AccountID: id}
	}
	return View{Kind: ViewAccount, AccountID: id}
}

// walletMethod pairs a wallet view with its expense payment method.
func (v View) walletMethod() (PaymentMethod, bool) {
	switch v.Kind {
	case ViewCashWallet:
		return PayCash, true
	case ViewDigitalWallet:
		return PayDigital, true
	}
	return "", false
}

func (v View) walletID() string {
	switch v.Kind {
	case ViewCashWallet:
		return CashWalletID
	case ViewDigitalWallet:
		return DigitalWalletID
	}
	return ""
}

// associatedCard reports whether id is a credit card riding with the
// primary account: explicitly linked to it, or unlinked (default).
func associatedCard(ix accountIndex, id, primaryID string) bool {
	a, ok := ix.lookup(id)
	if !ok || !a.IsCard() {
		return false
	}
	return a.LinkedAccountID == "" || a.LinkedAccountID == primaryID
}

// inEcosystem reports whether ref is part of the primary ecosystem's
// liquid balance: the primary account itself or either wallet. Cards are
// deliberately not liquid members; their debt is shown alongside, never
// netted in.
func inEcosystem(ref AccountRef, primaryID string) bool {
	if ref.IsWallet() {
		return true
	}
	return ref.Kind == RefAccount && ref.AccountID == primaryID
}

// Contains reports whether tx belongs to the view's feed.
func (v View) Contains(tx Transaction, accounts []Account) bool {
	return v.contains(tx, indexAccounts(accounts))
}

func (v View) contains(tx Transaction, ix accountIndex) bool {
	switch v.Kind {
	case ViewAccount:
		switch tx.Type {
		case TxTransfer:
			return tx.FromAccountID == v.AccountID || tx.ToAccountID == v.AccountID
		default:
			return tx.AccountID == v.AccountID
		}

	case ViewCashWallet, ViewDigitalWallet:
		wid := v.walletID()
		method, _ := v.walletMethod()
		switch tx.Type {
		case TxTransfer:
			return tx.FromAccountID == wid || tx.ToAccountID == wid
		case TxExpense:
			return tx.PaymentMethod == method || tx.AccountID == wid
		default:
			return tx.AccountID == wid
		}

	case ViewPrimary:
		switch tx.Type {
		case TxTransfer:
			return v.primarySide(tx.FromAccountID, ix) || v.primarySide(tx.ToAccountID, ix)
		case TxExpense:
			if tx.PaymentMethod == PayCash || tx.PaymentMethod == PayDigital {
				return true
			}
			return tx.AccountID == v.AccountID || associatedCard(ix, tx.AccountID, v.AccountID)
		default:
			ref := ParseRef(tx.AccountID)
			return tx.AccountID == v.AccountID || ref.IsWallet() || associatedCard(ix, tx.AccountID, v.AccountID)
		}
	}
	return false
}

// primarySide reports whether one end of a transfer touches the primary
// ecosystem, wallets and associated cards included (cards count for
// membership/display even though they carry zero liquid effect).
func (v View) primarySide(id string, ix accountIndex) bool {
	ref := ParseRef(id)
	if inEcosystem(ref, v.AccountID) {
		return true
	}
	return associatedCard(ix, id, v.AccountID)
}

// Effect returns the signed amount tx applies to the view's running
// balance, zero for non-members, washes and card isolation cases.
func (v View) Effect(tx Transaction, accounts []Account) decimal.Decimal {
	return v.effect(tx, indexAccounts(accounts))
}

func (v View) effect(tx Transaction, ix accountIndex) decimal.Decimal {
	if !validForAccumulation(tx) {
		return decimal.Zero
	}
	switch v.Kind {
	case ViewAccount:
		return v.accountEffect(tx, ix)
	case ViewCashWallet, ViewDigitalWallet:
		return v.walletEffect(tx)
	case ViewPrimary:
		return v.primaryEffect(tx, ix)
	}
	return decimal.Zero
}

func (v View) accountEffect(tx Transaction, ix accountIndex) decimal.Decimal {
	card := ix.isCard(v.AccountID)
	switch tx.Type {
	case TxIncome:
		if tx.AccountID == v.AccountID && !card {
			return tx.Amount
		}
	case TxExpense:
		if tx.PaymentMethod == PayOnline && tx.AccountID == v.AccountID {
			if card {
				return tx.Amount // debt up
			}
			return tx.Amount.Neg()
		}
	case TxTransfer:
		if tx.FromAccountID == v.AccountID {
			if card {
				return tx.Amount // cash advance, debt up
			}
			return tx.Amount.Neg()
		}
		if tx.ToAccountID == v.AccountID {
			if card {
				return tx.Amount.Neg() // payment, debt down
			}
			return tx.Amount
		}
	}
	return decimal.Zero
}

func (v View) walletEffect(tx Transaction) decimal.Decimal {
	wid := v.walletID()
	method, _ := v.walletMethod()
	switch tx.Type {
	case TxIncome:
		if tx.AccountID == wid {
			return tx.Amount
		}
	case TxExpense:
		if tx.PaymentMethod == method || tx.AccountID == wid {
			return tx.Amount.Neg()
		}
	case TxTransfer:
		if tx.FromAccountID == wid {
			return tx.Amount.Neg()
		}
		if tx.ToAccountID == wid {
			return tx.Amount
		}
	}
	return decimal.Zero
}

// primaryEffect answers "how much liquid money moved" for the primary
// ecosystem. Internal transfers are a wash; card expenses are isolated
// from the liquid balance by design.
func (v View) primaryEffect(tx Transaction, ix accountIndex) decimal.Decimal {
	switch tx.Type {
	case TxIncome:
		ref := ParseRef(tx.AccountID)
		if tx.AccountID == v.AccountID || ref.IsWallet() {
			return tx.Amount
		}
	case TxExpense:
		if ParseRef(tx.AccountID).Kind == RefAccount && ix.isCard(tx.AccountID) {
			return decimal.Zero
		}
		if tx.PaymentMethod == PayCash || tx.PaymentMethod == PayDigital {
			return tx.Amount.Neg()
		}
		if tx.AccountID == v.AccountID {
			return tx.Amount.Neg()
		}
	case TxTransfer:
		fromIn := inEcosystem(ParseRef(tx.FromAccountID), v.AccountID)
		toIn := inEcosystem(ParseRef(tx.ToAccountID), v.AccountID)
		switch {
		case fromIn && toIn:
			return decimal.Zero // wash
		case fromIn:
			return tx.Amount.Neg()
		case toIn:
			return tx.Amount
		}
	}
	return decimal.Zero
}
