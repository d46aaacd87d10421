package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/mwhite/centsible/internal/model"
	"github.com/mwhite/centsible/internal/service"
)

// CategorySummary aggregates transaction counts and amounts per category for
// the date range, both income and expenses.
func (s *SQLiteStorage) CategorySummary(ctx context.Context, start, end time.Time) (map[model.Category]service.CategorySummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*), SUM(amount)
		FROM transactions
		WHERE date >= ? AND date <= ?
		GROUP BY category`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query category summary: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summary := make(map[model.Category]service.CategorySummary)
	for rows.Next() {
		var category string
		var entry service.CategorySummary
		if err := rows.Scan(&category, &entry.Count, &entry.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		summary[model.Category(category)] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate category summary: %w", err)
	}
	return summary, nil
}

// CashFlow totals income against expenses for the date range and breaks the
// expense side down by category.
func (s *SQLiteStorage) CashFlow(ctx context.Context, start, end time.Time) (*service.CashFlowSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}

	summary := &service.CashFlowSummary{
		ExpensesByCategory: make(map[model.Category]service.CategorySummary),
		DateRange:          service.DateRange{Start: start, End: end},
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT type, category, COUNT(*), SUM(amount)
		FROM transactions
		WHERE date >= ? AND date <= ?
		GROUP BY type, category`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash flow: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var txnType, category string
		var entry service.CategorySummary
		if err := rows.Scan(&txnType, &category, &entry.Count, &entry.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan cash flow row: %w", err)
		}
		switch model.TransactionType(txnType) {
		case model.TypeIncome:
			summary.TotalIncome += entry.Amount
		case model.TypeExpense:
			summary.TotalExpenses += entry.Amount
			summary.ExpensesByCategory[model.Category(category)] = entry
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cash flow: %w", err)
	}

	summary.NetCashFlow = summary.TotalIncome - summary.TotalExpenses
	return summary, nil
}
