package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mwhite/centsible/internal/common"
	"github.com/mwhite/centsible/internal/model"
)

const goalColumns = `id, name, target_amount, current_amount, target_date, icon, notes, created_at`

// ListGoals returns all savings goals, oldest first.
func (s *SQLiteStorage) ListGoals(ctx context.Context) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		goal, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", scanErr)
		}
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goals: %w", err)
	}
	return goals, nil
}

// GetGoalByID retrieves a single goal.
func (s *SQLiteStorage) GetGoalByID(ctx context.Context, id int64) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)

	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: goal %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return goal, nil
}

// CreateGoal persists a new savings goal and returns it with its assigned ID.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (name, target_amount, current_amount, target_date, icon, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		goal.Name, goal.TargetAmount, goal.CurrentAmount,
		goal.TargetDate, goal.Icon, goal.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert goal: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get goal id: %w", err)
	}

	return s.GetGoalByID(ctx, id)
}

// AddGoalProgress adds a contribution to a goal and returns the updated goal.
// Negative amounts withdraw, but the balance never drops below zero.
func (s *SQLiteStorage) AddGoalProgress(ctx context.Context, id int64, amount float64) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE goals SET current_amount = MAX(0, current_amount + ?) WHERE id = ?`,
		amount, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal progress: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: goal %d", common.ErrNotFound, id)
	}

	return s.GetGoalByID(ctx, id)
}

// DeleteGoal removes a goal, reporting whether it existed.
func (s *SQLiteStorage) DeleteGoal(ctx context.Context, id int64) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete goal: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return affected > 0, nil
}

func scanGoal(row rowScanner) (*model.Goal, error) {
	var goal model.Goal
	var targetDate, createdAt sql.NullTime
	var icon, notes sql.NullString

	err := row.Scan(&goal.ID, &goal.Name, &goal.TargetAmount,
		&goal.CurrentAmount, &targetDate, &icon, &notes, &createdAt)
	if err != nil {
		return nil, err
	}

	goal.Icon = icon.String
	goal.Notes = notes.String
	if targetDate.Valid {
		goal.TargetDate = targetDate.Time
	}
	if createdAt.Valid {
		goal.CreatedAt = createdAt.Time
	}
	return &goal, nil
}
