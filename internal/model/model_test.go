package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_AllValid(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 9)
	for _, c := range cats {
		assert.True(t, c.Valid(), "category %q", c)
	}
}

func TestCategory_MetaExhaustive(t *testing.T) {
	for _, c := range Categories() {
		meta := c.Meta()
		assert.NotEmpty(t, meta.Icon, "icon for %q", c)
		assert.NotEmpty(t, meta.Color, "color for %q", c)
	}
}

func TestCategory_MetaPanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		Category("Bribes").Meta()
	})
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Food & Dining")
	require.NoError(t, err)
	assert.Equal(t, CategoryFoodDining, c)

	_, err = ParseCategory("food & dining")
	require.Error(t, err, "parsing is case sensitive, labels are stored verbatim")

	_, err = ParseCategory("")
	require.Error(t, err)
}

func TestRawRecord_ResolveType(t *testing.T) {
	tests := []struct {
		name   string
		record RawRecord
		want   TransactionType
	}{
		{name: "declared income wins", record: RawRecord{DeclaredType: TypeIncome, Amount: -50}, want: TypeIncome},
		{name: "declared expense wins over positive amount", record: RawRecord{DeclaredType: TypeExpense, Amount: 120}, want: TypeExpense},
		{name: "positive amount means income", record: RawRecord{Amount: 120}, want: TypeIncome},
		{name: "negative amount means expense", record: RawRecord{Amount: -120}, want: TypeExpense},
		{name: "zero amount means expense", record: RawRecord{}, want: TypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.ResolveType())
		})
	}
}

func TestRawRecord_Magnitude(t *testing.T) {
	assert.Equal(t, 45.67, RawRecord{Amount: -45.67}.Magnitude())
	assert.Equal(t, 45.67, RawRecord{Amount: 45.67}.Magnitude())
	assert.Equal(t, 0.0, RawRecord{}.Magnitude())
}

func TestBudget_RemainingAndExceeded(t *testing.T) {
	budget := Budget{Limit: 100, Spent: 80}
	assert.Equal(t, 20.0, budget.Remaining())
	assert.False(t, budget.Exceeded())

	budget.Spent = 130
	assert.Equal(t, -30.0, budget.Remaining())
	assert.True(t, budget.Exceeded())

	// Spending exactly the limit is not over budget.
	budget.Spent = 100
	assert.False(t, budget.Exceeded())
}

func TestBudgetPeriod_Valid(t *testing.T) {
	assert.True(t, PeriodWeekly.Valid())
	assert.True(t, PeriodMonthly.Valid())
	assert.True(t, PeriodYearly.Valid())
	assert.False(t, BudgetPeriod("daily").Valid())
	assert.False(t, BudgetPeriod("").Valid())
}

func TestGoal_Progress(t *testing.T) {
	goal := Goal{TargetAmount: 2000, CurrentAmount: 500}
	assert.Equal(t, 0.25, goal.Progress())
	assert.False(t, goal.Reached())

	goal.CurrentAmount = 2500
	assert.Equal(t, 1.0, goal.Progress(), "progress is clamped at 1")
	assert.True(t, goal.Reached())

	// A goal with no target never reports progress.
	empty := Goal{CurrentAmount: 100}
	assert.Equal(t, 0.0, empty.Progress())
	assert.False(t, empty.Reached())
}

func TestGoal_TargetDateOptional(t *testing.T) {
	goal := Goal{Name: "Rainy day", TargetAmount: 1000}
	assert.True(t, goal.TargetDate.IsZero())

	goal.TargetDate = time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, goal.TargetDate.IsZero())
}
