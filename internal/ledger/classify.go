package ledger

import "fmt"

// Display types produced by classification. Plain transactions keep their
// TxType string; the rest are derived labels.
const (
	DisplayIncome   = "income"
	DisplayExpense  = "expense"
	DisplayTransfer = "transfer"

	// issue: primary account -> wallet (cash withdrawal).
	// return: wallet -> primary account (cash deposit).
	DisplayIssue  = "issue"
	DisplayReturn = "return"

	DisplayLoanTaken         = "loan-taken"
	DisplayLoanGiven         = "loan-given"
	DisplayRepaymentMade     = "repayment-made"
	DisplayRepaymentReceived = "repayment-received"
)

// LoanCategory is the category assigned to loan-linked transfers.
const LoanCategory = "Loan"

// Classification is the derived display annotation for one transaction.
type Classification struct {
	IsLoan             bool
	DisplayType        string
	DisplayCategory    string
	DisplayDescription string
}

// Classifier annotates transactions for display and sorting. Build one
// per snapshot with NewClassifier; it carries the loan index and primary
// account id it needs.
type Classifier func(tx Transaction) Classification

// loanRef locates a loan sub-transaction and its owning loan.
type loanRef struct {
	loan Loan
	tx   LoanTransaction
}

// NewClassifier returns a Classifier over the given loan snapshot.
// primaryID may be empty when the user has no primary account; the
// issue/return rule is then never triggered.
func NewClassifier(loans []Loan, primaryID string) Classifier {
	byLoanTx := make(map[string]loanRef)
	for _, l := range loans {
		for _, lt := range l.Transactions {
			byLoanTx[lt.ID] = loanRef{loan: l, tx: lt}
		}
	}

	return func(tx Transaction) Classification {
		// Rule 1: loan-linked transfer. Takes precedence over all else.
		if tx.Type == TxTransfer && tx.LoanTransactionID != "" {
			if ref, ok := byLoanTx[tx.LoanTransactionID]; ok {
				return classifyLoan(ref)
			}
			// dangling link: fall through to plain transfer
		}

		// Rule 2: issue/return between the primary account and a wallet.
		if tx.Type == TxTransfer && primaryID != "" {
			from, to := ParseRef(tx.FromAccountID), ParseRef(tx.ToAccountID)
			if tx.FromAccountID == primaryID && to.IsWallet() {
				return Classification{
					DisplayType:        DisplayIssue,
					DisplayCategory:    tx.Category,
					DisplayDescription: tx.Description,
				}
			}
			if from.IsWallet() && tx.ToAccountID == primaryID {
				return Classification{
					DisplayType:        DisplayReturn,
					DisplayCategory:    tx.Category,
					DisplayDescription: tx.Description,
				}
			}
		}

		// Rule 3: pass through.
		return Classification{
			DisplayType:        string(tx.Type),
			DisplayCategory:    tx.Category,
			DisplayDescription: tx.Description,
		}
	}
}

func classifyLoan(ref loanRef) Classification {
	c := Classification{IsLoan: true, DisplayCategory: LoanCategory}
	person := ref.loan.PersonName
	switch {
	case ref.loan.Type == LoanTaken && ref.tx.Type == LoanTxLoan:
		c.DisplayType = DisplayLoanTaken
		c.DisplayDescription = fmt.Sprintf("Loan from %s", person)
	case ref.loan.Type == LoanTaken && ref.tx.Type == LoanTxRepayment:
		c.DisplayType = DisplayRepaymentMade
		c.DisplayDescription = fmt.Sprintf("Repayment to %s", person)
	case ref.loan.Type == LoanGiven && ref.tx.Type == LoanTxLoan:
		c.DisplayType = DisplayLoanGiven
		c.DisplayDescription = fmt.Sprintf("Loan to %s", person)
	default:
		c.DisplayType = DisplayRepaymentReceived
		c.DisplayDescription = fmt.Sprintf("Repayment from %s", person)
	}
	return c
}
