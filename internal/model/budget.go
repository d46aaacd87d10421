package model

import "time"

// BudgetPeriod is the window a budget limit applies to.
type BudgetPeriod string

const (
	// PeriodWeekly resets the budget every week.
	PeriodWeekly BudgetPeriod = "weekly"
	// PeriodMonthly resets the budget every month.
	PeriodMonthly BudgetPeriod = "monthly"
	// PeriodYearly resets the budget every year.
	PeriodYearly BudgetPeriod = "yearly"
)

// Valid reports whether p is a known budget period.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Budget is a spending limit for one category. Spent is derived from the
// transaction table, not entered by hand.
type Budget struct {
	CreatedAt   time.Time
	Description string
	Category    Category
	Period      BudgetPeriod
	ID          int64
	Limit       float64
	Spent       float64
}

// Remaining returns the unspent portion of the limit, which may be negative
// when the budget is exceeded.
func (b Budget) Remaining() float64 {
	return b.Limit - b.Spent
}

// Exceeded reports whether spending has passed the limit.
func (b Budget) Exceeded() bool {
	return b.Spent > b.Limit
}
