package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mwhite/centsible/internal/common"
	"github.com/mwhite/centsible/internal/model"
)

const budgetColumns = `id, category, period, limit_amount, spent, description, created_at`

// ListBudgets returns all budgets ordered by category.
func (s *SQLiteStorage) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		budget, scanErr := scanBudget(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", scanErr)
		}
		budgets = append(budgets, *budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}
	return budgets, nil
}

// GetBudgetByCategory retrieves the budget for one category.
func (s *SQLiteStorage) GetBudgetByCategory(ctx context.Context, category model.Category) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE category = ?`, string(category))

	budget, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: budget for %s", common.ErrNotFound, category)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}
	return budget, nil
}

// SaveBudget creates or replaces the budget for a category. One budget per
// category; saving again overwrites the limit, period, and description.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, budget *model.Budget) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateBudget(budget); err != nil {
		return nil, err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (category, period, limit_amount, spent, description)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(category) DO UPDATE SET
			period = excluded.period,
			limit_amount = excluded.limit_amount,
			description = excluded.description`,
		string(budget.Category), string(budget.Period), budget.Limit,
		budget.Spent, budget.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	return s.GetBudgetByCategory(ctx, budget.Category)
}

// DeleteBudget removes the budget for a category, reporting whether one
// existed.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, category model.Category) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx,
		"DELETE FROM budgets WHERE category = ?", string(category))
	if err != nil {
		return false, fmt.Errorf("failed to delete budget: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return affected > 0, nil
}

// RecalculateSpent recomputes every budget's spent column from the expense
// transactions inside its current period window, anchored at now.
func (s *SQLiteStorage) RecalculateSpent(ctx context.Context, now time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	budgets, err := s.ListBudgets(ctx)
	if err != nil {
		return err
	}

	for _, budget := range budgets {
		start := periodStart(budget.Period, now)

		var spent sql.NullFloat64
		err := s.db.QueryRowContext(ctx, `
			SELECT SUM(amount) FROM transactions
			WHERE category = ? AND type = ? AND date >= ? AND date <= ?`,
			string(budget.Category), string(model.TypeExpense), start, now,
		).Scan(&spent)
		if err != nil {
			return fmt.Errorf("failed to sum spending for %s: %w", budget.Category, err)
		}

		_, err = s.db.ExecContext(ctx,
			"UPDATE budgets SET spent = ? WHERE category = ?",
			spent.Float64, string(budget.Category))
		if err != nil {
			return fmt.Errorf("failed to update spent for %s: %w", budget.Category, err)
		}
	}
	return nil
}

// periodStart returns the calendar boundary the budget window opens at:
// Monday for weekly budgets, the first of the month for monthly, January 1
// for yearly.
func periodStart(period model.BudgetPeriod, now time.Time) time.Time {
	switch period {
	case model.PeriodWeekly:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		day := now.AddDate(0, 0, -(weekday - 1))
		return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	case model.PeriodYearly:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

func scanBudget(row rowScanner) (*model.Budget, error) {
	var budget model.Budget
	var category, period string
	var description sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(&budget.ID, &category, &period, &budget.Limit,
		&budget.Spent, &description, &createdAt)
	if err != nil {
		return nil, err
	}

	budget.Category = model.Category(category)
	budget.Period = model.BudgetPeriod(period)
	budget.Description = description.String
	if createdAt.Valid {
		budget.CreatedAt = createdAt.Time
	}
	return &budget, nil
}
