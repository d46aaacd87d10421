package model

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeIncome marks transactions that add to the balance.
	TypeIncome TransactionType = "income"
	// TypeExpense marks transactions that draw from the balance.
	TypeExpense TransactionType = "expense"
)

// Transaction is a categorized ledger entry. Amounts are stored unsigned;
// the direction lives in Type.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	Description string
	Merchant    string
	AccountType string
	SourceID    string
	Category    Category
	Type        TransactionType
	ID          int64
	Amount      float64
	Recurring   bool
	Imported    bool
}
