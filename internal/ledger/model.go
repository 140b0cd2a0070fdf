// Package ledger derives balances, ordered transaction feeds and
// reconciliation deltas from immutable account/transaction/loan snapshots.
// Everything in this package is pure: no I/O, no shared state, identical
// inputs produce identical outputs.
package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Wallet pseudo-account ids. These are fixed singletons per user and are
// never stored as account rows; their balances are always derived.
const (
	CashWalletID    = "cash-wallet"
	DigitalWalletID = "digital-wallet"
)

// LoanVirtualPrefix marks synthetic account ids representing a person in a
// loan relationship, so loan-linked transfers reuse the transfer shape.
const LoanVirtualPrefix = "loan-virtual-account-"

// AccountType distinguishes bank accounts from credit cards. A card's
// balance is accumulated debt (positive = owed), not available money.
type AccountType string

const (
	AccountBank AccountType = "bank"
	AccountCard AccountType = "card"
)

// Account is a real bank or card account owned by one user.
type Account struct {
	ID        string
	Name      string
	Type      AccountType
	IsPrimary bool
	Order     int

	// Limit is the credit limit, cards only. Available credit is
	// Limit minus the accumulated debt balance.
	Limit decimal.Decimal

	// LinkedAccountID associates a card with a bank account. Empty means
	// the card rides with whichever account is primary.
	LinkedAccountID string

	// ActualBalance is the user-entered reconciliation snapshot.
	ActualBalance     *decimal.Decimal
	ActualBalanceDate *time.Time
}

// IsCard reports whether the account is a credit card.
func (a Account) IsCard() bool { return a.Type == AccountCard }

// AvailableCredit returns Limit - debt for a card. Meaningless for banks.
func (a Account) AvailableCredit(debt decimal.Decimal) decimal.Decimal {
	return a.Limit.Sub(debt)
}

// TxType is the transaction kind.
type TxType string

const (
	TxIncome   TxType = "income"
	TxExpense  TxType = "expense"
	TxTransfer TxType = "transfer"
)

// PaymentMethod says how an expense was paid.
type PaymentMethod string

const (
	PayOnline  PaymentMethod = "online"
	PayCash    PaymentMethod = "cash"
	PayDigital PaymentMethod = "digital"
)

// Transaction is an atomic financial event. Amount is always a
// non-negative magnitude; direction is derived from Type, PaymentMethod
// and account role, never stored.
type Transaction struct {
	ID          string
	Date        time.Time
	Amount      decimal.Decimal
	Type        TxType
	Description string
	Category    string
	Subcategory string

	// income: destination. expense with PayOnline: paying account.
	AccountID string

	// expense only.
	PaymentMethod PaymentMethod

	// transfer only. Each may be an account id, a wallet id or a
	// loan-virtual id. FromAccountID != ToAccountID.
	FromAccountID string
	ToAccountID   string

	// LoanTransactionID links a transfer to a sub-transaction inside a
	// Loan record.
	LoanTransactionID string
}

// LoanType says which direction the person-level ledger runs.
type LoanType string

const (
	LoanTaken LoanType = "taken"
	LoanGiven LoanType = "given"
)

// LoanTxType is the kind of a loan sub-transaction.
type LoanTxType string

const (
	LoanTxLoan      LoanTxType = "loan"
	LoanTxRepayment LoanTxType = "repayment"
)

// LoanTransaction is one movement inside a Loan.
type LoanTransaction struct {
	ID        string
	Date      time.Time
	Amount    decimal.Decimal
	Type      LoanTxType
	AccountID string
}

// Loan is a person-level ledger of money lent or borrowed.
type Loan struct {
	ID           string
	PersonName   string
	Type         LoanType
	Transactions []LoanTransaction
}

// LoanTotals is the derived position of a Loan. Balance is always
// recomputed, never stored.
type LoanTotals struct {
	TotalLoan      decimal.Decimal
	TotalRepayment decimal.Decimal
	Balance        decimal.Decimal
}

// Totals sums the loan's sub-transactions.
func (l Loan) Totals() LoanTotals {
	t := LoanTotals{
		TotalLoan:      decimal.Zero,
		TotalRepayment: decimal.Zero,
	}
	for _, lt := range l.Transactions {
		switch lt.Type {
		case LoanTxLoan:
			t.TotalLoan = t.TotalLoan.Add(lt.Amount)
		case LoanTxRepayment:
			t.TotalRepayment = t.TotalRepayment.Add(lt.Amount)
		}
	}
	t.Balance = t.TotalLoan.Sub(t.TotalRepayment)
	return t
}

// WalletSnapshot is a user-entered reconciliation point for one wallet.
type WalletSnapshot struct {
	Balance decimal.Decimal
	Date    time.Time
}

// WalletPreferences holds the per-user wallet reconciliation snapshots.
type WalletPreferences struct {
	Cash               *WalletSnapshot
	Digital            *WalletSnapshot
	ReconciliationDate time.Time
}

// RefKind tags an AccountRef.
type RefKind int

const (
	RefNone RefKind = iota
	RefAccount
	RefCashWallet
	RefDigitalWallet
	RefLoanVirtual
)

// AccountRef resolves the stringly-typed account-id namespace into a
// tagged value so effect and membership logic can match exhaustively.
type AccountRef struct {
	Kind RefKind

	// AccountID is set for RefAccount; PersonKey for RefLoanVirtual.
	AccountID string
	PersonKey string
}

// ParseRef classifies a raw account-id string.
func ParseRef(id string) AccountRef {
	switch {
	case id == "":
		return AccountRef{Kind: RefNone}
	case id == CashWalletID:
		return AccountRef{Kind: RefCashWallet}
	case id == DigitalWalletID:
		return AccountRef{Kind: RefDigitalWallet}
	case strings.HasPrefix(id, LoanVirtualPrefix):
		return AccountRef{Kind: RefLoanVirtual, PersonKey: strings.TrimPrefix(id, LoanVirtualPrefix)}
	default:
		return AccountRef{Kind: RefAccount, AccountID: id}
	}
}

// IsWallet reports whether the ref is one of the two wallet singletons.
func (r AccountRef) IsWallet() bool {
	return r.Kind == RefCashWallet || r.Kind == RefDigitalWallet
}

// accountIndex provides account lookups during folding. Unknown ids
// resolve to nil and degrade to no-ops rather than errors.
type accountIndex map[string]Account

func indexAccounts(accounts []Account) accountIndex {
	ix := make(accountIndex, len(accounts))
	for _, a := range accounts {
		ix[a.ID] = a
	}
	return ix
}

func (ix accountIndex) lookup(id string) (Account, bool) {
	a, ok := ix[id]
	return a, ok
}

func (ix accountIndex) isCard(id string) bool {
	a, ok := ix[id]
	return ok && a.IsCard()
}

// PrimaryAccount returns the account flagged primary, or false when the
// user has none. Callers must fall back to per-account views in that case.
func PrimaryAccount(accounts []Account) (Account, bool) {
	for _, a := range accounts {
		if a.IsPrimary {
			return a, true
		}
	}
	return Account{}, false
}
