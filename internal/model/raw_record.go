package model

import "time"

// RawRecord is an externally-sourced transaction candidate before
// categorization. Amount keeps the sign convention of the source; merchant
// and account type may be empty. DeclaredType is empty when the source does
// not tag income versus expense.
type RawRecord struct {
	Date         time.Time
	Description  string
	Merchant     string
	AccountType  string
	DeclaredType TransactionType
	Amount       float64
}

// ResolveType returns the record's transaction type. A declared type wins;
// otherwise the sign of the amount decides, with positive amounts treated as
// income.
func (r RawRecord) ResolveType() TransactionType {
	switch r.DeclaredType {
	case TypeIncome, TypeExpense:
		return r.DeclaredType
	}
	if r.Amount > 0 {
		return TypeIncome
	}
	return TypeExpense
}

// Magnitude returns the unsigned amount.
func (r RawRecord) Magnitude() float64 {
	if r.Amount < 0 {
		return -r.Amount
	}
	return r.Amount
}
