package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ansdeepu/xpensemanager-sub000/internal/database/repository"
	"github.com/ansdeepu/xpensemanager-sub000/internal/ledger"
)

// SeedDemo populates an empty database with a small demo dataset: a
// primary bank account, a linked card, a loan and a handful of
// transactions. It is idempotent and does nothing once accounts exist.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	acctRepo := repository.NewAccountRepo(db)
	existing, err := acctRepo.List(ctx)
	if err == nil && len(existing) > 0 {
		return nil
	}

	id := func(key string) string {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte("demo:"+key)).String()
	}
	money := decimal.RequireFromString

	primary := ledger.Account{ID: id("acct:salary"), Name: "Salary Account", Type: ledger.AccountBank, IsPrimary: true, Order: 0}
	savings := ledger.Account{ID: id("acct:savings"), Name: "Savings Account", Type: ledger.AccountBank, Order: 1}
	cc := ledger.Account{ID: id("acct:card"), Name: "Credit Card", Type: ledger.AccountCard, Order: 2, Limit: money("50000")}
	for _, a := range []ledger.Account{primary, savings, cc} {
		if err := acctRepo.Upsert(ctx, a); err != nil {
			return err
		}
	}

	loanRepo := repository.NewLoanRepo(db)
	loan := ledger.Loan{ID: id("loan:ravi"), PersonName: "Ravi", Type: ledger.LoanGiven}
	if err := loanRepo.Upsert(ctx, loan); err != nil {
		return err
	}
	loanTx := ledger.LoanTransaction{
		ID:        id("loantx:ravi:1"),
		Date:      demoDay(3),
		Amount:    money("2000"),
		Type:      ledger.LoanTxLoan,
		AccountID: primary.ID,
	}
	if err := loanRepo.AddTransaction(ctx, loan.ID, loanTx); err != nil {
		return err
	}

	txRepo := repository.NewTransactionRepo(db)
	demo := []ledger.Transaction{
		{ID: id("tx:salary"), Date: demoDay(1), Amount: money("55000"), Type: ledger.TxIncome,
			Description: "Monthly salary", Category: "Income", AccountID: primary.ID},
		{ID: id("tx:rent"), Date: demoDay(2), Amount: money("15000"), Type: ledger.TxExpense,
			Description: "Rent", Category: "Housing", PaymentMethod: ledger.PayOnline, AccountID: primary.ID},
		{ID: id("tx:groceries"), Date: demoDay(4), Amount: money("2400"), Type: ledger.TxExpense,
			Description: "Groceries", Category: "Food", PaymentMethod: ledger.PayCash},
		{ID: id("tx:card-fuel"), Date: demoDay(5), Amount: money("1800"), Type: ledger.TxExpense,
			Description: "Fuel", Category: "Transport", PaymentMethod: ledger.PayOnline, AccountID: cc.ID},
		{ID: id("tx:atm"), Date: demoDay(6), Amount: money("5000"), Type: ledger.TxTransfer,
			Description: "ATM withdrawal", FromAccountID: primary.ID, ToAccountID: ledger.CashWalletID},
		{ID: id("tx:loan-out"), Date: demoDay(3), Amount: money("2000"), Type: ledger.TxTransfer,
			Description: "Loan to Ravi", FromAccountID: primary.ID,
			ToAccountID:       ledger.LoanVirtualPrefix + "ravi",
			LoanTransactionID: loanTx.ID},
	}
	for _, tx := range demo {
		if err := txRepo.Insert(ctx, tx); err != nil {
			return err
		}
	}

	budgetRepo := repository.NewBudgetRepo(db)
	budgets := map[string]string{"Food": "8000", "Transport": "4000", "Housing": "15000"}
	for category, amount := range budgets {
		if err := budgetRepo.Set(ctx, category, money(amount)); err != nil {
			return err
		}
	}
	return nil
}

// demoDay returns a recent stable day so the demo data lands in the
// current month regardless of when it is seeded.
func demoDay(n int) time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), n, 12, 0, 0, 0, time.UTC)
}
