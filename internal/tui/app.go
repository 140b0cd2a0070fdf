package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ansdeepu/xpensemanager-sub000/internal/config"
	"github.com/ansdeepu/xpensemanager-sub000/internal/ledger"
	"github.com/ansdeepu/xpensemanager-sub000/internal/service"
	"github.com/ansdeepu/xpensemanager-sub000/internal/taxonomy"
)

// App ties together views.
type App struct {
	ctx      context.Context
	services Services
	cfg      config.Config
	tax      taxonomy.Taxonomy
	state    appState

	snapshot *service.Snapshot
	feed     []ledger.FeedRow
	views    []feedTarget // cyclable feed targets: accounts then wallets
	viewIdx  int

	feedCursor      int
	loanCursor      int
	reconcileCursor int
	accountCursor   int

	month  time.Time
	status string
	tz     *time.Location

	modal   modalState
	input   textinput.Model
	balance reconcileTarget

	// add-transaction form
	form addForm

	currency   string
	dateFormat string
}

// Services bundles everything the TUI calls into.
type Services struct {
	Ledger      *service.LedgerService
	Maintenance *service.MaintenanceService
}

type appState string

const (
	viewDashboard appState = "dashboard"
	viewFeed      appState = "feed"
	viewLoans     appState = "loans"
	viewReconcile appState = "reconcile"
	viewBudgets   appState = "budgets"
	viewSettings  appState = "settings"
)

type modalState string

const (
	modalNone         modalState = ""
	modalBalanceEntry modalState = "balanceEntry"
	modalAddTx        modalState = "addTransaction"
	modalConfirmReset modalState = "confirmReset"
)

// feedTarget is one selectable entry of the feed view cycle.
type feedTarget struct {
	ID   string
	Name string
}

// reconcileTarget identifies the row an actual balance is being entered for.
type reconcileTarget struct {
	AccountID string // empty for wallets
	WalletID  string
	Name      string
}

// addForm is the staged add-transaction input.
type addForm struct {
	stage      addStage
	txType     ledger.TxType
	method     ledger.PaymentMethod
	amount     decimal.Decimal
	desc       string
	category   string
	suggestion string
}

type addStage int

const (
	stageType addStage = iota
	stageAmount
	stageDescription
	stageCategory
)

func New(ctx context.Context, cfg config.Config, services Services, tax taxonomy.Taxonomy, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	ti := textinput.New()
	ti.CharLimit = 64
	return &App{
		ctx:        ctx,
		services:   services,
		cfg:        cfg,
		tax:        tax,
		month:      time.Now().UTC(),
		tz:         tz,
		input:      ti,
		currency:   cfg.UI.CurrencySymbol,
		dateFormat: cfg.UI.DateFormat,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadSnapshot()
}

// loadSnapshot re-derives everything from the store. All mutations are
// followed by this; the UI never patches derived state in place.
func (a *App) loadSnapshot() tea.Cmd {
	return func() tea.Msg {
		snap, err := a.services.Ledger.Snapshot(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return snapshotMsg{snap}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch m.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		case "d":
			a.state = viewDashboard
		case "t":
			a.state = viewFeed
		case "l":
			a.state = viewLoans
		case "r":
			a.state = viewReconcile
		case "b":
			a.state = viewBudgets
		case "p":
			a.state = viewSettings
			a.status = ""
		case "tab", "]":
			if a.state == viewFeed && len(a.views) > 0 {
				a.viewIdx = (a.viewIdx + 1) % len(a.views)
				a.feedCursor = 0
				a.refreshFeed()
			}
		case "shift+tab", "[":
			if a.state == viewFeed && len(a.views) > 0 {
				a.viewIdx = (a.viewIdx + len(a.views) - 1) % len(a.views)
				a.feedCursor = 0
				a.refreshFeed()
			}
		case "up", "k":
			a.moveCursor(-1)
		case "down", "j":
			a.moveCursor(1)
		case "left", "h":
			if a.state == viewBudgets {
				a.month = a.month.AddDate(0, -1, 0)
			}
		case "right":
			if a.state == viewBudgets {
				a.month = a.month.AddDate(0, 1, 0)
			}
		case "a":
			if a.state == viewFeed || a.state == viewDashboard {
				a.openAddTx()
			}
		case "x":
			if a.state == viewFeed && len(a.feed) > 0 {
				id := a.feed[a.feedCursor].Tx.ID
				return a, a.deleteTxCmd(id)
			}
		case "enter":
			if a.state == viewReconcile {
				a.openBalanceEntry()
				return a, textinput.Blink
			}
			if a.state == viewSettings {
				return a, a.setPrimaryCmd()
			}
		case "backspace", "delete":
			if a.state == viewReconcile {
				return a, a.clearBalanceCmd()
			}
		case "X":
			if a.state == viewSettings {
				a.modal = modalConfirmReset
			}
		}
	case snapshotMsg:
		a.snapshot = m.snap
		a.rebuildViews()
		a.refreshFeed()
		a.clampCursors()
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) moveCursor(delta int) {
	clamp := func(cur *int, n int) {
		next := *cur + delta
		if next >= 0 && next < n {
			*cur = next
		}
	}
	switch a.state {
	case viewFeed:
		clamp(&a.feedCursor, len(a.feed))
	case viewLoans:
		if a.snapshot != nil {
			clamp(&a.loanCursor, len(a.snapshot.Loans))
		}
	case viewReconcile:
		clamp(&a.reconcileCursor, len(a.reconcileRows()))
	case viewSettings:
		if a.snapshot != nil {
			clamp(&a.accountCursor, len(a.snapshot.Accounts))
		}
	}
}

func (a *App) clampCursors() {
	if a.snapshot == nil {
		return
	}
	if a.feedCursor >= len(a.feed) {
		a.feedCursor = 0
	}
	if a.loanCursor >= len(a.snapshot.Loans) {
		a.loanCursor = 0
	}
	if a.reconcileCursor >= len(a.reconcileRows()) {
		a.reconcileCursor = 0
	}
	if a.accountCursor >= len(a.snapshot.Accounts) {
		a.accountCursor = 0
	}
}

// rebuildViews recomputes the feed cycle: each account, then the two
// wallets. The primary account slot doubles as the whole-ecosystem view.
func (a *App) rebuildViews() {
	a.views = a.views[:0]
	for _, acct := range a.snapshot.Accounts {
		name := acct.Name
		if acct.IsPrimary {
			name += " (primary)"
		}
		a.views = append(a.views, feedTarget{ID: acct.ID, Name: name})
	}
	a.views = append(a.views,
		feedTarget{ID: ledger.CashWalletID, Name: "Cash Wallet"},
		feedTarget{ID: ledger.DigitalWalletID, Name: "Digital Wallet"},
	)
	if a.viewIdx >= len(a.views) {
		a.viewIdx = 0
	}
}

func (a *App) refreshFeed() {
	if a.snapshot == nil || len(a.views) == 0 {
		a.feed = nil
		return
	}
	a.feed = a.snapshot.Feed(a.views[a.viewIdx].ID)
	if a.feedCursor >= len(a.feed) {
		a.feedCursor = 0
	}
}

// reconcileRows lists accounts then wallets for the reconcile view.
func (a *App) reconcileRows() []reconcileRow {
	if a.snapshot == nil {
		return nil
	}
	rows := make([]reconcileRow, 0, len(a.snapshot.Positions)+len(a.snapshot.Wallets))
	for _, p := range a.snapshot.Positions {
		rows = append(rows, reconcileRow{
			Name:     p.Account.Name,
			Computed: p.Balance,
			Actual:   p.Account.ActualBalance,
			Delta:    p.Delta,
			Target:   reconcileTarget{AccountID: p.Account.ID, Name: p.Account.Name},
		})
	}
	for _, w := range a.snapshot.Wallets {
		rows = append(rows, reconcileRow{
			Name:     w.Name,
			Computed: w.Balance,
			Delta:    w.Delta,
			Target:   reconcileTarget{WalletID: w.ID, Name: w.Name},
		})
	}
	return rows
}

type reconcileRow struct {
	Name     string
	Computed decimal.Decimal
	Actual   *decimal.Decimal
	Delta    *decimal.Decimal
	Target   reconcileTarget
}

func (a *App) openBalanceEntry() {
	rows := a.reconcileRows()
	if len(rows) == 0 {
		a.status = "no accounts"
		return
	}
	a.balance = rows[a.reconcileCursor].Target
	a.input.SetValue("")
	a.input.Placeholder = "actual balance"
	a.input.Focus()
	a.modal = modalBalanceEntry
}

func (a *App) openAddTx() {
	a.form = addForm{stage: stageType, txType: ledger.TxExpense, method: ledger.PayOnline}
	a.input.SetValue("")
	a.input.Placeholder = ""
	a.modal = modalAddTx
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalConfirmReset:
		switch m.String() {
		case "y", "Y":
			a.modal = modalNone
			return a, a.resetCmd()
		case "n", "N", "esc":
			a.modal = modalNone
		}
		return a, nil
	case modalBalanceEntry:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.input.Blur()
			return a, nil
		case tea.KeyEnter:
			text := strings.TrimSpace(a.input.Value())
			a.modal = modalNone
			a.input.Blur()
			if text == "" {
				return a, nil
			}
			amount, err := decimal.NewFromString(text)
			if err != nil {
				a.status = "not a number: " + text
				return a, nil
			}
			return a, a.saveBalanceCmd(a.balance, amount)
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(m)
		return a, cmd
	case modalAddTx:
		return a.handleAddTxKey(m)
	}
	return a, nil
}

func (a *App) handleAddTxKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Type == tea.KeyEsc {
		a.modal = modalNone
		a.input.Blur()
		return a, nil
	}

	switch a.form.stage {
	case stageType:
		switch m.String() {
		case "i":
			a.form.txType = ledger.TxIncome
		case "e":
			a.form.txType = ledger.TxExpense
		case "c":
			a.form.method = ledger.PayCash
		case "o":
			a.form.method = ledger.PayOnline
		case "g":
			a.form.method = ledger.PayDigital
		case "enter":
			a.form.stage = stageAmount
			a.input.SetValue("")
			a.input.Placeholder = "amount"
			a.input.Focus()
			return a, textinput.Blink
		}
		return a, nil
	case stageAmount:
		if m.Type == tea.KeyEnter {
			amount, err := decimal.NewFromString(strings.TrimSpace(a.input.Value()))
			if err != nil || amount.Sign() <= 0 {
				a.status = "enter a positive amount"
				return a, nil
			}
			a.form.amount = amount
			a.form.stage = stageDescription
			a.input.SetValue("")
			a.input.Placeholder = "description"
			return a, nil
		}
	case stageDescription:
		if m.Type == tea.KeyEnter {
			a.form.desc = strings.TrimSpace(a.input.Value())
			a.form.stage = stageCategory
			a.input.SetValue("")
			a.input.Placeholder = "category"
			return a, nil
		}
	case stageCategory:
		switch m.Type {
		case tea.KeyEnter:
			category := strings.TrimSpace(a.input.Value())
			if a.form.suggestion != "" {
				category = a.form.suggestion
			}
			a.modal = modalNone
			a.input.Blur()
			return a, a.insertTxCmd(a.form, category)
		case tea.KeyTab:
			if a.form.suggestion != "" {
				a.input.SetValue(a.form.suggestion)
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(m)
	if a.form.stage == stageCategory {
		if s, ok := service.SuggestCategory(a.input.Value(), a.tax.Names()); ok {
			a.form.suggestion = s
		} else {
			a.form.suggestion = ""
		}
	}
	return a, cmd
}

// commands

func (a *App) insertTxCmd(form addForm, category string) tea.Cmd {
	accountID := ""
	if form.txType == ledger.TxIncome || form.method == ledger.PayOnline {
		if a.snapshot != nil && a.snapshot.HasPrimary {
			accountID = a.snapshot.Primary.ID
		}
	}
	tx := ledger.Transaction{
		ID:            uuid.NewString(),
		Date:          time.Now().In(a.tz),
		Amount:        form.amount,
		Type:          form.txType,
		Description:   form.desc,
		Category:      category,
		PaymentMethod: form.method,
		AccountID:     accountID,
	}
	if form.txType == ledger.TxIncome {
		tx.PaymentMethod = ""
	}
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Ledger.Transactions.Insert(a.ctx, tx); err != nil {
				return errMsg{err}
			}
			return statusMsg("added " + string(form.txType))
		},
		a.loadSnapshot(),
	)
}

func (a *App) deleteTxCmd(id string) tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Ledger.Transactions.Delete(a.ctx, id); err != nil {
				return errMsg{err}
			}
			return statusMsg("deleted")
		},
		a.loadSnapshot(),
	)
}

func (a *App) saveBalanceCmd(target reconcileTarget, amount decimal.Decimal) tea.Cmd {
	now := time.Now().In(a.tz)
	return tea.Batch(
		func() tea.Msg {
			if target.AccountID != "" {
				if err := a.services.Ledger.Accounts.SetActualBalance(a.ctx, target.AccountID, amount, now); err != nil {
					return errMsg{err}
				}
				return statusMsg("balance recorded for " + target.Name)
			}
			prefs, err := a.services.Ledger.WalletPrefs.Get(a.ctx)
			if err != nil {
				return errMsg{err}
			}
			snap := &ledger.WalletSnapshot{Balance: amount, Date: now}
			switch target.WalletID {
			case ledger.CashWalletID:
				prefs.Cash = snap
			case ledger.DigitalWalletID:
				prefs.Digital = snap
			}
			prefs.ReconciliationDate = now
			if err := a.services.Ledger.WalletPrefs.Save(a.ctx, prefs); err != nil {
				return errMsg{err}
			}
			return statusMsg("balance recorded for " + target.Name)
		},
		a.loadSnapshot(),
	)
}

func (a *App) clearBalanceCmd() tea.Cmd {
	rows := a.reconcileRows()
	if len(rows) == 0 {
		return nil
	}
	target := rows[a.reconcileCursor].Target
	return tea.Batch(
		func() tea.Msg {
			if target.AccountID != "" {
				if err := a.services.Ledger.Accounts.ClearActualBalance(a.ctx, target.AccountID); err != nil {
					return errMsg{err}
				}
				return statusMsg("cleared " + target.Name)
			}
			prefs, err := a.services.Ledger.WalletPrefs.Get(a.ctx)
			if err != nil {
				return errMsg{err}
			}
			switch target.WalletID {
			case ledger.CashWalletID:
				prefs.Cash = nil
			case ledger.DigitalWalletID:
				prefs.Digital = nil
			}
			if err := a.services.Ledger.WalletPrefs.Save(a.ctx, prefs); err != nil {
				return errMsg{err}
			}
			return statusMsg("cleared " + target.Name)
		},
		a.loadSnapshot(),
	)
}

func (a *App) setPrimaryCmd() tea.Cmd {
	if a.snapshot == nil || len(a.snapshot.Accounts) == 0 {
		return nil
	}
	acct := a.snapshot.Accounts[a.accountCursor]
	if acct.IsCard() {
		return func() tea.Msg { return statusMsg("a card cannot be primary") }
	}
	return tea.Batch(
		func() tea.Msg {
			if err := a.services.Ledger.Accounts.SetPrimary(a.ctx, acct.ID); err != nil {
				return errMsg{err}
			}
			return statusMsg(acct.Name + " is now primary")
		},
		a.loadSnapshot(),
	)
}

func (a *App) resetCmd() tea.Cmd {
	return tea.Batch(
		func() tea.Msg {
			if a.services.Maintenance == nil {
				return statusMsg("maintenance not configured")
			}
			if err := a.services.Maintenance.Reset(a.ctx); err != nil {
				return errMsg{err}
			}
			a.feedCursor, a.loanCursor, a.reconcileCursor, a.accountCursor = 0, 0, 0, 0
			a.viewIdx = 0
			return statusMsg("database reset (empty)")
		},
		a.loadSnapshot(),
	)
}

// messages

type snapshotMsg struct{ snap *service.Snapshot }

type statusMsg string

type errMsg struct{ error }
