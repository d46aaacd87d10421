// Package storage provides the data persistence layer for the centsible
// application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mwhite/centsible/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidDateRange = errors.New("start date must be before end date")
	ErrInvalidAmount    = errors.New("amount must not be negative")
	ErrInvalidBudget    = errors.New("invalid budget")
	ErrInvalidGoal      = errors.New("invalid goal")
	ErrInvalidRecord    = errors.New("invalid transaction")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDateRange ensures start does not come after end.
func validateDateRange(start, end time.Time) error {
	if end.Before(start) {
		return fmt.Errorf("%w: %v after %v", ErrInvalidDateRange, start, end)
	}
	return nil
}

// validateTransaction validates a single transaction before persistence.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	if strings.TrimSpace(txn.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidRecord)
	}
	if txn.Amount < 0 {
		return fmt.Errorf("%w: %f", ErrInvalidAmount, txn.Amount)
	}
	if txn.Type != model.TypeIncome && txn.Type != model.TypeExpense {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRecord, txn.Type)
	}
	if !txn.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidRecord, txn.Category)
	}
	return nil
}

// validateBudget validates a budget before persistence.
func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if !budget.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidBudget, budget.Category)
	}
	if !budget.Period.Valid() {
		return fmt.Errorf("%w: unknown period %q", ErrInvalidBudget, budget.Period)
	}
	if budget.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive", ErrInvalidBudget)
	}
	return nil
}

// validateGoal validates a goal before persistence.
func validateGoal(goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal", ErrNilParameter)
	}
	if strings.TrimSpace(goal.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidGoal)
	}
	if goal.TargetAmount <= 0 {
		return fmt.Errorf("%w: target amount must be positive", ErrInvalidGoal)
	}
	if goal.CurrentAmount < 0 {
		return fmt.Errorf("%w: current amount must not be negative", ErrInvalidGoal)
	}
	return nil
}
