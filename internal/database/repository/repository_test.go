package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ansdeepu/xpensemanager-sub000/internal/database"
	"github.com/ansdeepu/xpensemanager-sub000/internal/database/repository"
	"github.com/ansdeepu/xpensemanager-sub000/internal/ledger"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))

	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func TestAccountRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewAccountRepo(openTestDB(t))

	card := ledger.Account{
		ID: "cc", Name: "Visa", Type: ledger.AccountCard,
		Order: 2, Limit: dec(t, "50000"), LinkedAccountID: "main",
	}
	require.NoError(t, repo.Upsert(ctx, card))
	require.NoError(t, repo.Upsert(ctx, ledger.Account{ID: "main", Name: "Main", Type: ledger.AccountBank, IsPrimary: true, Order: 1}))

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	require.Equal(t, "main", accounts[0].ID, "ordered by display order")
	require.Equal(t, "cc", accounts[1].ID)
	require.True(t, accounts[1].Limit.Equal(dec(t, "50000")))
	require.Equal(t, "main", accounts[1].LinkedAccountID)
	require.Nil(t, accounts[0].ActualBalance)

	// upsert updates in place
	card.Name = "Visa Platinum"
	require.NoError(t, repo.Upsert(ctx, card))
	accounts, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	require.Equal(t, "Visa Platinum", accounts[1].Name)
}

func TestAccountActualBalance(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewAccountRepo(openTestDB(t))
	require.NoError(t, repo.Upsert(ctx, ledger.Account{ID: "a", Name: "A", Type: ledger.AccountBank}))

	at := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SetActualBalance(ctx, "a", dec(t, "1234.56"), at))

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotNil(t, accounts[0].ActualBalance)
	require.True(t, accounts[0].ActualBalance.Equal(dec(t, "1234.56")))
	require.NotNil(t, accounts[0].ActualBalanceDate)
	require.True(t, accounts[0].ActualBalanceDate.Equal(at))

	require.NoError(t, repo.ClearActualBalance(ctx, "a"))
	accounts, err = repo.List(ctx)
	require.NoError(t, err)
	require.Nil(t, accounts[0].ActualBalance)
	require.Nil(t, accounts[0].ActualBalanceDate)
}

func TestAccountReorder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewAccountRepo(openTestDB(t))
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Upsert(ctx, ledger.Account{ID: id, Name: id, Type: ledger.AccountBank, Order: i}))
	}

	require.NoError(t, repo.Reorder(ctx, []string{"c", "a", "b"}))

	accounts, err := repo.List(ctx)
	require.NoError(t, err)
	got := []string{accounts[0].ID, accounts[1].ID, accounts[2].ID}
	require.Equal(t, []string{"c", "a", "b"}, got)
}

func TestTransactionFilters(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewTransactionRepo(openTestDB(t))

	day := func(m, d int) time.Time { return time.Date(2024, time.Month(m), d, 0, 0, 0, 0, time.UTC) }
	txs := []ledger.Transaction{
		{ID: "t1", Date: day(3, 1), Amount: dec(t, "100"), Type: ledger.TxExpense,
			Description: "coffee beans", Category: "Food", PaymentMethod: ledger.PayCash},
		{ID: "t2", Date: day(3, 5), Amount: dec(t, "50"), Type: ledger.TxExpense,
			Description: "bus pass", Category: "Transport", PaymentMethod: ledger.PayOnline, AccountID: "main"},
		{ID: "t3", Date: day(4, 1), Amount: dec(t, "500"), Type: ledger.TxTransfer,
			Description: "to savings", FromAccountID: "main", ToAccountID: "sav"},
	}
	for _, tx := range txs {
		require.NoError(t, repo.Insert(ctx, tx))
	}

	all, err := repo.List(ctx, repository.TransactionFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "t1", all[0].ID, "date ascending")
	require.True(t, all[0].Amount.Equal(dec(t, "100")), "cents round-trip")

	byType, err := repo.List(ctx, repository.TransactionFilters{Type: ledger.TxExpense})
	require.NoError(t, err)
	require.Len(t, byType, 2)

	// account filter matches any of the three id columns
	byAccount, err := repo.List(ctx, repository.TransactionFilters{AccountID: "main"})
	require.NoError(t, err)
	require.Len(t, byAccount, 2)

	byMonth, err := repo.List(ctx, repository.TransactionFilters{Month: day(3, 15)})
	require.NoError(t, err)
	require.Len(t, byMonth, 2)

	bySearch, err := repo.List(ctx, repository.TransactionFilters{Search: "coffee"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	require.Equal(t, "t1", bySearch[0].ID)

	byCategory, err := repo.List(ctx, repository.TransactionFilters{Category: "Transport"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
}

func TestTransactionGetAndDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewTransactionRepo(openTestDB(t))

	tx := ledger.Transaction{
		ID: "t1", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount: dec(t, "19.99"), Type: ledger.TxExpense,
		Description: "subscription", Category: "Entertainment",
		PaymentMethod: ledger.PayOnline, AccountID: "main",
	}
	require.NoError(t, repo.Insert(ctx, tx))

	got, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.True(t, got.Amount.Equal(dec(t, "19.99")))
	require.Equal(t, ledger.PayOnline, got.PaymentMethod)

	require.NoError(t, repo.Delete(ctx, "t1"))
	got, err = repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestLoanRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewLoanRepo(openTestDB(t))

	loan := ledger.Loan{ID: "l1", PersonName: "Anita", Type: ledger.LoanTaken}
	require.NoError(t, repo.Upsert(ctx, loan))
	require.NoError(t, repo.AddTransaction(ctx, "l1", ledger.LoanTransaction{
		ID: "lt2", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Amount: dec(t, "5000"), Type: ledger.LoanTxLoan}))
	require.NoError(t, repo.AddTransaction(ctx, "l1", ledger.LoanTransaction{
		ID: "lt1", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount: dec(t, "1000"), Type: ledger.LoanTxRepayment}))

	loans, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	require.Equal(t, "Anita", loans[0].PersonName)
	require.Len(t, loans[0].Transactions, 2)
	require.Equal(t, "lt1", loans[0].Transactions[0].ID, "sub-transactions ordered by date")

	totals := loans[0].Totals()
	require.True(t, totals.TotalLoan.Equal(dec(t, "5000")))
	require.True(t, totals.TotalRepayment.Equal(dec(t, "1000")))
	require.True(t, totals.Balance.Equal(dec(t, "4000")))
}

func TestWalletPrefsRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewWalletPrefsRepo(openTestDB(t))

	// empty store returns empty prefs, not an error
	prefs, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, prefs.Cash)
	require.Nil(t, prefs.Digital)

	at := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, ledger.WalletPreferences{
		Cash:               &ledger.WalletSnapshot{Balance: dec(t, "320.50"), Date: at},
		ReconciliationDate: at,
	}))

	prefs, err = repo.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, prefs.Cash)
	require.True(t, prefs.Cash.Balance.Equal(dec(t, "320.50")))
	require.Nil(t, prefs.Digital, "unset wallet stays nil")
	require.True(t, prefs.ReconciliationDate.Equal(at))

	// save again replaces the singleton row
	require.NoError(t, repo.Save(ctx, ledger.WalletPreferences{
		Digital: &ledger.WalletSnapshot{Balance: dec(t, "10"), Date: at},
	}))
	prefs, err = repo.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, prefs.Cash)
	require.NotNil(t, prefs.Digital)
}

func TestBudgetRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewBudgetRepo(openTestDB(t))

	require.NoError(t, repo.Set(ctx, "Food", dec(t, "8000")))
	require.NoError(t, repo.Set(ctx, "Food", dec(t, "9000")))
	require.NoError(t, repo.Set(ctx, "Transport", dec(t, "4000")))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.True(t, all["Food"].Equal(dec(t, "9000")), "set replaces")

	require.NoError(t, repo.Delete(ctx, "Transport"))
	all, err = repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
