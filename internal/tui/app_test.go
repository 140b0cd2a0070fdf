package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ansdeepu/xpensemanager-sub000/internal/config"
	"github.com/ansdeepu/xpensemanager-sub000/internal/database"
	"github.com/ansdeepu/xpensemanager-sub000/internal/database/repository"
	"github.com/ansdeepu/xpensemanager-sub000/internal/ledger"
	"github.com/ansdeepu/xpensemanager-sub000/internal/service"
	"github.com/ansdeepu/xpensemanager-sub000/internal/taxonomy"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("../database/migrations")
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(dbPath, migrations))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ledgerSvc := &service.LedgerService{
		Accounts:     repository.NewAccountRepo(db),
		Transactions: repository.NewTransactionRepo(db),
		Loans:        repository.NewLoanRepo(db),
		WalletPrefs:  repository.NewWalletPrefsRepo(db),
		Budgets:      repository.NewBudgetRepo(db),
	}
	services := Services{
		Ledger:      ledgerSvc,
		Maintenance: &service.MaintenanceService{DB: db},
	}

	ctx := context.Background()
	require.NoError(t, database.SeedDemo(ctx, db))

	cfg := config.Config{}
	cfg.UI.CurrencySymbol = "₹"
	cfg.UI.DateFormat = "02 Jan 2006"
	tax := taxonomy.Taxonomy{Categories: []taxonomy.Category{
		{Key: "food", Name: "Food", Color: "#94e2d5", SortOrder: 1},
		{Key: "loan", Name: "Loan", Color: "#fab387", SortOrder: 2},
	}}
	return New(ctx, cfg, services, tax, time.UTC)
}

// sync drives Init and applies the resulting snapshot message.
func sync(t *testing.T, a *App) {
	t.Helper()
	msg := a.Init()()
	if err, ok := msg.(errMsg); ok {
		t.Fatalf("snapshot: %v", err)
	}
	_, _ = a.Update(msg)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboardRendersPositions(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	sync(t, a)

	view := ansi.Strip(a.View())
	require.Contains(t, view, "Liquid balance")
	require.Contains(t, view, "Salary Account")
	require.Contains(t, view, "Credit Card")
	require.Contains(t, view, "Cash Wallet")
	require.Contains(t, view, "available", "card shows available credit")
}

func TestFeedViewCyclesAndAnnotates(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	sync(t, a)

	_, _ = a.Update(key("t"))
	view := ansi.Strip(a.View())
	require.Contains(t, view, "Salary Account (primary)")
	require.Contains(t, view, "Loan to Ravi", "loan transfer is relabelled")
	require.Contains(t, view, "Monthly salary")

	// cycle through every target and back
	n := len(a.views)
	require.Greater(t, n, 2)
	for i := 0; i < n; i++ {
		_, _ = a.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	view = ansi.Strip(a.View())
	require.Contains(t, view, "Salary Account (primary)")
}

func TestReconcileBalanceEntry(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	sync(t, a)

	_, _ = a.Update(key("r"))
	view := ansi.Strip(a.View())
	require.Contains(t, view, "computed")
	require.Contains(t, view, "(not recorded)")

	// open the entry modal for the first account and type a balance
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modalBalanceEntry, a.modal)
	for _, r := range "12345.67" {
		_, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modalNone, a.modal)
	require.NotNil(t, cmd)

	// run the save, then reload
	for _, msg := range drain(cmd) {
		_, _ = a.Update(msg)
	}
	sync(t, a)
	view = ansi.Strip(a.View())
	require.Contains(t, view, "12345.67")
}

func TestAddExpenseFlow(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	sync(t, a)

	_, _ = a.Update(key("t"))
	before := len(a.feed)

	_, _ = a.Update(key("a"))
	require.Equal(t, modalAddTx, a.modal)

	// expense, paid cash
	_, _ = a.Update(key("e"))
	_, _ = a.Update(key("c"))
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for _, r := range "250" {
		_, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for _, r := range "tea" {
		_, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, _ = a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	// typo still suggests the right category
	for _, r := range "Fod" {
		_, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	require.Equal(t, "Food", a.form.suggestion)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modalNone, a.modal)
	for _, msg := range drain(cmd) {
		_, _ = a.Update(msg)
	}
	sync(t, a)

	_, _ = a.Update(key("t"))
	require.Len(t, a.feed, before+1)
	var added *ledger.FeedRow
	for i := range a.feed {
		if a.feed[i].Tx.Description == "tea" {
			added = &a.feed[i]
		}
	}
	require.NotNil(t, added)
	require.Equal(t, "Food", added.Tx.Category)
	require.True(t, added.Tx.Amount.Equal(decimal.RequireFromString("250")))
	require.Equal(t, ledger.PayCash, added.Tx.PaymentMethod)
}

func TestResetRequiresConfirmation(t *testing.T) {
	t.Parallel()

	a := newTestApp(t)
	sync(t, a)

	_, _ = a.Update(key("p"))
	_, _ = a.Update(key("X"))
	require.Equal(t, modalConfirmReset, a.modal)

	// declining leaves data alone
	_, _ = a.Update(key("n"))
	require.Equal(t, modalNone, a.modal)
	sync(t, a)
	require.NotEmpty(t, a.snapshot.Accounts)

	_, _ = a.Update(key("X"))
	_, cmd := a.Update(key("y"))
	for _, msg := range drain(cmd) {
		_, _ = a.Update(msg)
	}
	sync(t, a)
	require.Empty(t, a.snapshot.Accounts)
}

// drain executes a command tree and collects the produced messages.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch m := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, m...)
		case nil:
		default:
			out = append(out, msg)
		}
	}
	return out
}
