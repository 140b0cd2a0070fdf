package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/ansdeepu/xpensemanager-sub000/internal/ledger"
)

// styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	redStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8"))
	greenStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1"))
	yellowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
)

var _ tea.Model = (*App)(nil)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewFeed:
		body = a.renderFeed()
	case viewLoans:
		body = a.renderLoans()
	case viewReconcile:
		body = a.renderReconcile()
	case viewBudgets:
		body = a.renderBudgets()
	case viewSettings:
		body = a.renderSettings()
	default:
		body = a.renderDashboard()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	return body
}

func (a *App) money(v decimal.Decimal) string {
	return a.currency + v.StringFixed(2)
}

// signed renders a reconciliation delta: any nonzero mismatch in red
// with its sign, a zero delta as a green match.
func (a *App) signed(v decimal.Decimal) string {
	switch v.Sign() {
	case 1:
		return redStyle.Render("+" + a.money(v))
	case -1:
		return redStyle.Render("-" + a.money(v.Neg()))
	default:
		return greenStyle.Render("✓ matched")
	}
}

func (a *App) categoryColored(name string) string {
	if name == "" {
		return faintStyle.Render("[uncategorised]")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(a.tax.ColorFor(name))).Render(name)
}

func (a *App) renderDashboard() string {
	title := titleStyle.Render("Expense Manager - " + a.month.Format("January 2006"))
	if a.snapshot == nil {
		return title + "\nloading..."
	}
	snap := a.snapshot

	out := title + "\n"
	if snap.HasPrimary {
		out += fmt.Sprintf("Liquid balance: %s  (%s + wallets)\n", a.money(snap.PrimaryLiquid), snap.Primary.Name)
	} else {
		out += yellowStyle.Render("No primary account set - pick one in Settings") + "\n"
	}
	if snap.Balances.Skipped > 0 {
		out += yellowStyle.Render(fmt.Sprintf("%d invalid rows skipped", snap.Balances.Skipped)) + "\n"
	}

	out += "\nAccounts\n"
	for _, p := range snap.Positions {
		line := fmt.Sprintf("  %-24s %12s", p.Account.Name, a.money(p.Balance))
		if p.Account.IsCard() {
			line = fmt.Sprintf("  %-24s %12s  available %s", p.Account.Name,
				redStyle.Render(a.money(p.Balance)+" owed"), a.money(p.AvailableCredit))
		}
		out += line + "\n"
	}
	for _, w := range snap.Wallets {
		out += fmt.Sprintf("  %-24s %12s\n", w.Name, a.money(w.Balance))
	}

	months := snap.Months()
	if len(months) > 0 {
		latest := months[len(months)-1]
		out += fmt.Sprintf("\n%s: income %s, spend %s\n", latest.Month,
			greenStyle.Render(a.money(latest.Income)), redStyle.Render(a.money(latest.Expense)))
	}

	out += "\n[t] Transactions  [l] Loans  [r] Reconcile  [b] Budgets  [a] Add  [p] Settings  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderFeed() string {
	name := "Transactions"
	if len(a.views) > 0 {
		name = a.views[a.viewIdx].Name
	}
	title := titleStyle.Render("Transactions - " + name)
	out := title + "\n"
	if len(a.feed) == 0 {
		out += faintStyle.Render("(no transactions)") + "\n"
	}
	for i, row := range a.feed {
		marker := " "
		if i == a.feedCursor {
			marker = "▶"
		}
		label := row.Classification.DisplayDescription
		if label == "" {
			label = row.Tx.Description
		}
		effect := faintStyle.Render("     -    ")
		switch row.Effect.Sign() {
		case 1:
			effect = greenStyle.Render(fmt.Sprintf("%10s", "+"+a.money(row.Effect)))
		case -1:
			effect = redStyle.Render(fmt.Sprintf("%10s", "-"+a.money(row.Effect.Neg())))
		}
		out += fmt.Sprintf("%s %s  %-32s %-12s %s  bal %s  %s\n",
			marker,
			row.Tx.Date.In(a.tz).Format(a.dateFormat),
			label,
			row.Classification.DisplayType,
			effect,
			a.money(row.Running),
			a.categoryColored(row.Classification.DisplayCategory),
		)
	}
	out += "[tab] Next view  [a] Add  [x] Delete  [d] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderLoans() string {
	title := titleStyle.Render("Loans")
	out := title + "\n"
	if a.snapshot == nil || len(a.snapshot.Loans) == 0 {
		return out + faintStyle.Render("(no loans)") + "\n[d] Dashboard  [q] Quit"
	}
	for i, pos := range a.snapshot.LoanPositions() {
		marker := " "
		if i == a.loanCursor {
			marker = "▶"
		}
		direction := "to"
		if pos.Loan.Type == ledger.LoanTaken {
			direction = "from"
		}
		out += fmt.Sprintf("%s Loan %s %-16s  lent %s  repaid %s  outstanding %s\n",
			marker, direction, pos.Loan.PersonName,
			a.money(pos.Totals.TotalLoan), a.money(pos.Totals.TotalRepayment),
			yellowStyle.Render(a.money(pos.Totals.Balance)))
		for _, lt := range pos.Loan.Transactions {
			kind := "loan"
			if lt.Type == ledger.LoanTxRepayment {
				kind = "repayment"
			}
			out += faintStyle.Render(fmt.Sprintf("    %s  %-9s %s",
				lt.Date.In(a.tz).Format(a.dateFormat), kind, a.money(lt.Amount))) + "\n"
		}
	}
	out += "[d] Dashboard  [t] Transactions  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderReconcile() string {
	title := titleStyle.Render("Reconcile")
	out := title + "\n"
	rows := a.reconcileRows()
	if len(rows) == 0 {
		return out + faintStyle.Render("(no accounts)") + "\n[d] Dashboard  [q] Quit"
	}
	for i, row := range rows {
		marker := " "
		if i == a.reconcileCursor {
			marker = "▶"
		}
		actual := faintStyle.Render("(not recorded)")
		if row.Actual != nil {
			actual = a.money(*row.Actual)
		}
		delta := ""
		if row.Delta != nil {
			delta = "  " + a.signed(*row.Delta)
		}
		out += fmt.Sprintf("%s %-24s computed %12s  actual %12s%s\n",
			marker, row.Name, a.money(row.Computed), actual, delta)
	}
	out += "[enter] Record actual balance  [backspace] Clear  [d] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderBudgets() string {
	title := titleStyle.Render("Budgets - " + a.month.Format("January 2006"))
	out := title + "\n"
	if a.snapshot == nil {
		return out + "loading..."
	}
	lines := a.snapshot.BudgetLines(a.month)
	if len(lines) == 0 {
		out += faintStyle.Render("(no budgets and no spend this month)") + "\n"
	}
	for _, l := range lines {
		remaining := greenStyle.Render(a.money(l.Remaining) + " left")
		if l.OverBudget {
			remaining = redStyle.Render(a.money(l.Remaining.Neg()) + " over")
		}
		budgeted := faintStyle.Render("(no budget)")
		if !l.Budgeted.IsZero() {
			budgeted = a.money(l.Budgeted)
		}
		out += fmt.Sprintf("  %-20s spent %10s of %10s  %s\n",
			a.categoryColored(l.Category), a.money(l.Spent), budgeted, remaining)
	}
	out += "[←/→] Month  [d] Dashboard  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderSettings() string {
	title := titleStyle.Render("Settings")
	out := title + "\n"
	out += "Accounts ([enter] make primary)\n"
	if a.snapshot == nil || len(a.snapshot.Accounts) == 0 {
		out += faintStyle.Render("  (no accounts yet)") + "\n"
	} else {
		for i, acct := range a.snapshot.Accounts {
			marker := " "
			if i == a.accountCursor {
				marker = "▶"
			}
			tag := ""
			if acct.IsPrimary {
				tag = greenStyle.Render("  primary")
			}
			if acct.IsCard() {
				tag += faintStyle.Render("  card")
			}
			out += fmt.Sprintf("%s %s%s\n", marker, acct.Name, tag)
		}
	}
	out += "\n[X] Reset database (clears everything)\n"
	out += "[d] Dashboard  [t] Transactions  [q] Quit"
	if a.status != "" {
		out += "\n" + a.status
	}
	return out
}

func (a *App) renderModal() string {
	switch a.modal {
	case modalConfirmReset:
		return titleStyle.Render("Reset database?") + "\nThis will delete all data.\n[y] Yes  [n] No"
	case modalBalanceEntry:
		return titleStyle.Render("Actual balance for "+a.balance.Name) +
			"\n" + a.input.View() + "\n[enter] Save  [esc] Cancel"
	case modalAddTx:
		return a.renderAddTx()
	default:
		return ""
	}
}

func (a *App) renderAddTx() string {
	out := titleStyle.Render("Add transaction") + "\n"
	switch a.form.stage {
	case stageType:
		out += fmt.Sprintf("type: %s   method: %s\n", a.form.txType, a.form.method)
		out += "[i] income  [e] expense  [c] cash  [o] online  [g] digital  [enter] Next  [esc] Cancel"
	case stageAmount:
		out += "amount: " + a.input.View() + "\n[enter] Next  [esc] Cancel"
	case stageDescription:
		out += "description: " + a.input.View() + "\n[enter] Next  [esc] Cancel"
	case stageCategory:
		out += "category: " + a.input.View() + "\n"
		if a.form.suggestion != "" {
			out += faintStyle.Render("suggestion: "+a.form.suggestion+" (tab to accept)") + "\n"
		}
		out += "[enter] Save  [esc] Cancel"
	}
	return out
}
