// Package service composes repositories and the pure ledger engine into
// application operations.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ansdeepu/xpensemanager-sub000/internal/database/repository"
	"github.com/ansdeepu/xpensemanager-sub000/internal/ledger"
)

// LedgerService loads full snapshots and derives everything the UI
// shows. Any upstream mutation is followed by a fresh Snapshot call;
// there is no incremental state to keep in sync.
type LedgerService struct {
	Accounts     *repository.AccountRepo
	Transactions *repository.TransactionRepo
	Loans        *repository.LoanRepo
	WalletPrefs  *repository.WalletPrefsRepo
	Budgets      *repository.BudgetRepo
}

// AccountPosition is one account's derived state for display.
type AccountPosition struct {
	Account ledger.Account
	Balance decimal.Decimal

	// AvailableCredit is set for cards only.
	AvailableCredit decimal.Decimal

	// Delta is the reconciliation difference against the user's actual
	// balance snapshot; nil when none is recorded.
	Delta *decimal.Decimal
}

// WalletPosition is one wallet's derived state for display.
type WalletPosition struct {
	ID      string
	Name    string
	Balance decimal.Decimal
	Delta   *decimal.Decimal
}

// Snapshot is a full recomputation over the current store contents.
type Snapshot struct {
	Accounts []ledger.Account
	Loans    []ledger.Loan
	Budgets  map[string]decimal.Decimal

	Balances  ledger.Balances
	Positions []AccountPosition
	Wallets   []WalletPosition

	// PrimaryLiquid is primary account + cash + digital, the "how much
	// liquid money do I have" figure. Valid only when HasPrimary.
	HasPrimary    bool
	Primary       ledger.Account
	PrimaryLiquid decimal.Decimal

	transactions []ledger.Transaction
}

// Snapshot loads everything and re-derives balances, positions and
// reconciliation deltas from scratch.
func (s *LedgerService) Snapshot(ctx context.Context) (*Snapshot, error) {
	accounts, err := s.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := s.Transactions.List(ctx, repository.TransactionFilters{})
	if err != nil {
		return nil, err
	}
	loans, err := s.Loans.List(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.WalletPrefs.Get(ctx)
	if err != nil {
		return nil, err
	}
	budgets := map[string]decimal.Decimal{}
	if s.Budgets != nil {
		if budgets, err = s.Budgets.All(ctx); err != nil {
			return nil, err
		}
	}

	snap := &Snapshot{
		Accounts:     accounts,
		Loans:        loans,
		Budgets:      budgets,
		Balances:     ledger.ComputeBalances(accounts, txs),
		transactions: txs,
	}

	for _, a := range accounts {
		pos := AccountPosition{
			Account: a,
			Balance: snap.Balances.Account(a.ID),
			Delta:   ledger.Diff(snap.Balances.Account(a.ID), a.ActualBalance),
		}
		if a.IsCard() {
			pos.AvailableCredit = a.AvailableCredit(pos.Balance)
		}
		snap.Positions = append(snap.Positions, pos)
	}

	snap.Wallets = []WalletPosition{
		{ID: ledger.CashWalletID, Name: "Cash Wallet", Balance: snap.Balances.Cash,
			Delta: walletDelta(snap.Balances.Cash, prefs.Cash)},
		{ID: ledger.DigitalWalletID, Name: "Digital Wallet", Balance: snap.Balances.Digital,
			Delta: walletDelta(snap.Balances.Digital, prefs.Digital)},
	}

	if p, ok := ledger.PrimaryAccount(accounts); ok {
		snap.HasPrimary = true
		snap.Primary = p
		snap.PrimaryLiquid = snap.Balances.Account(p.ID).
			Add(snap.Balances.Cash).
			Add(snap.Balances.Digital)
	}
	return snap, nil
}

func walletDelta(computed decimal.Decimal, snapshot *ledger.WalletSnapshot) *decimal.Decimal {
	if snapshot == nil {
		return nil
	}
	return ledger.Diff(computed, &snapshot.Balance)
}

// Feed returns the annotated newest-first feed for the selected view.
func (s *Snapshot) Feed(viewID string) []ledger.FeedRow {
	return ledger.ViewFeed(viewID, s.Accounts, s.transactions, s.Loans)
}

// Months returns the monthly income/expense breakdown.
func (s *Snapshot) Months() []ledger.MonthSummary {
	return ledger.MonthlyBreakdown(s.transactions)
}

// BudgetLines compares stored budgets against the given month's spend.
func (s *Snapshot) BudgetLines(month time.Time) []ledger.BudgetLine {
	return ledger.BudgetLines(s.Budgets, s.transactions, month)
}

// LoanPositions pairs each loan with its derived totals.
func (s *Snapshot) LoanPositions() []LoanPosition {
	out := make([]LoanPosition, 0, len(s.Loans))
	for _, l := range s.Loans {
		out = append(out, LoanPosition{Loan: l, Totals: l.Totals()})
	}
	return out
}

// LoanPosition is a loan plus its recomputed totals.
type LoanPosition struct {
	Loan   ledger.Loan
	Totals ledger.LoanTotals
}
