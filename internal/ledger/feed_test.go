package ledger

import "testing"

func TestViewFeedPrimaryEcosystemWashScenario(t *testing.T) {
	accounts := []Account{primaryBank("A")}
	txs := []Transaction{
		{ID: "t1", Date: day(t, "2024-07-01"), Type: TxIncome, Amount: d(t, "1000"), AccountID: "A"},
		{ID: "t2", Date: day(t, "2024-07-02"), Type: TxTransfer, Amount: d(t, "200"),
			FromAccountID: "A", ToAccountID: CashWalletID},
	}

	primaryRows := ViewFeed("A", accounts, txs, nil)
	if len(primaryRows) != 2 {
		t.Fatalf("primary feed len = %d, want 2", len(primaryRows))
	}
	// newest first: the internal transfer leaves the running balance flat
	if got := primaryRows[0].Running; !got.Equal(d(t, "1000")) {
		t.Fatalf("running after wash = %s, want 1000", got)
	}
	if !primaryRows[0].Effect.IsZero() {
		t.Fatalf("wash effect = %s, want 0", primaryRows[0].Effect)
	}
	if primaryRows[0].Classification.DisplayType != DisplayIssue {
		t.Fatalf("wash row classified %q, want issue", primaryRows[0].Classification.DisplayType)
	}

	cashRows := ViewFeed(CashWalletID, accounts, txs, nil)
	if len(cashRows) != 1 {
		t.Fatalf("cash feed len = %d, want 1", len(cashRows))
	}
	if got := cashRows[0].Running; !got.Equal(d(t, "200")) {
		t.Fatalf("cash running = %s, want 200", got)
	}
}

func TestViewFeedRunningBalanceIntraDayOrder(t *testing.T) {
	accounts := []Account{primaryBank("A")}
	sameDay := day(t, "2024-07-05")
	txs := []Transaction{
		{ID: "income", Date: sameDay, Type: TxIncome, Amount: d(t, "100"), AccountID: "A"},
		{ID: "spend", Date: sameDay, Type: TxExpense, Amount: d(t, "30"), PaymentMethod: PayOnline, AccountID: "A"},
	}

	rows := ViewFeed("A", accounts, txs, nil)
	// ledger order: expense (priority 5) before income (9); display reversed
	if rows[0].Tx.ID != "income" || rows[1].Tx.ID != "spend" {
		t.Fatalf("display order = %s, %s; want income, spend", rows[0].Tx.ID, rows[1].Tx.ID)
	}
	if got := rows[1].Running; !got.Equal(d(t, "-30")) {
		t.Fatalf("running after spend = %s, want -30 (outflows fold first)", got)
	}
	if got := rows[0].Running; !got.Equal(d(t, "70")) {
		t.Fatalf("final running = %s, want 70", got)
	}
}

func TestViewFeedLoanRowsAnnotated(t *testing.T) {
	accounts := []Account{primaryBank("main")}
	loans := sampleLoans(t)
	txs := []Transaction{
		{ID: "t1", Date: day(t, "2024-01-01"), Type: TxTransfer, Amount: d(t, "1000"),
			FromAccountID: LoanVirtualPrefix + "ravi", ToAccountID: "main", LoanTransactionID: "lt1"},
	}

	rows := ViewFeed("main", accounts, txs, loans)
	if len(rows) != 1 {
		t.Fatalf("feed len = %d, want 1", len(rows))
	}
	c := rows[0].Classification
	if !c.IsLoan || c.DisplayDescription != "Loan from Ravi" || c.DisplayCategory != LoanCategory {
		t.Fatalf("loan row annotation = %+v", c)
	}
	if got := rows[0].Running; !got.Equal(d(t, "1000")) {
		t.Fatalf("running = %s, want 1000", got)
	}
}

func TestViewFeedDeterministic(t *testing.T) {
	accounts := []Account{primaryBank("A"), bank("B"), card("C", "5000")}
	sameDay := day(t, "2024-07-08")
	txs := []Transaction{
		{ID: "t1", Date: sameDay, Type: TxIncome, Amount: d(t, "100"), AccountID: "A"},
		{ID: "t2", Date: sameDay, Type: TxExpense, Amount: d(t, "100"), PaymentMethod: PayCash},
		{ID: "t3", Date: sameDay, Type: TxExpense, Amount: d(t, "100"), PaymentMethod: PayDigital},
		{ID: "t4", Date: sameDay, Type: TxTransfer, Amount: d(t, "100"), FromAccountID: "A", ToAccountID: "B"},
	}

	first := ViewFeed("A", accounts, txs, nil)
	second := ViewFeed("A", accounts, txs, nil)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Tx.ID != second[i].Tx.ID || !first[i].Running.Equal(second[i].Running) {
			t.Fatalf("row %d diverged between identical recomputations", i)
		}
	}
}

func TestViewFeedEmptyViewID(t *testing.T) {
	accounts := []Account{bank("A")}
	txs := []Transaction{
		{ID: "t1", Date: day(t, "2024-07-01"), Type: TxIncome, Amount: d(t, "10"), AccountID: "A"},
	}
	rows := ViewFeed("no-such-account", accounts, txs, nil)
	if len(rows) != 0 {
		t.Fatalf("feed for unknown view = %d rows, want 0", len(rows))
	}
}
