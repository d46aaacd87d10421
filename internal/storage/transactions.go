package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mwhite/centsible/internal/common"
	"github.com/mwhite/centsible/internal/model"
	"github.com/mwhite/centsible/internal/service"
)

const transactionColumns = `id, date, amount, type, category, description,
	merchant, account_type, source_id, recurring, imported, created_at`

// CreateTransaction persists a new transaction and returns it with its
// assigned ID.
func (s *SQLiteStorage) CreateTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTransaction(txn); err != nil {
		return nil, err
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (date, amount, type, category, description,
			merchant, account_type, source_id, recurring, imported)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.Date, txn.Amount, string(txn.Type), string(txn.Category),
		txn.Description, txn.Merchant, txn.AccountType, txn.SourceID,
		txn.Recurring, txn.Imported,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction id: %w", err)
	}

	return s.GetTransactionByID(ctx, id)
}

// GetTransactionByID retrieves a single transaction.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// ListTransactions retrieves transactions matching the filter, newest first.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, string(filter.Category))
	}
	if filter.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.SourceID != "" {
		conditions = append(conditions, "source_id = ?")
		args = append(args, filter.SourceID)
	}
	if filter.ImportedOnly {
		conditions = append(conditions, "imported = 1")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}

// UpdateTransaction applies the non-nil patch fields and returns the updated
// row.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, id int64, patch service.TransactionPatch) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var sets []string
	var args []any

	if patch.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *patch.Date)
	}
	if patch.Amount != nil {
		if *patch.Amount < 0 {
			return nil, fmt.Errorf("%w: %f", ErrInvalidAmount, *patch.Amount)
		}
		sets = append(sets, "amount = ?")
		args = append(args, *patch.Amount)
	}
	if patch.Type != nil {
		if *patch.Type != model.TypeIncome && *patch.Type != model.TypeExpense {
			return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidRecord, *patch.Type)
		}
		sets = append(sets, "type = ?")
		args = append(args, string(*patch.Type))
	}
	if patch.Category != nil {
		if !patch.Category.Valid() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidRecord, *patch.Category)
		}
		sets = append(sets, "category = ?")
		args = append(args, string(*patch.Category))
	}
	if patch.Description != nil {
		if err := validateString(*patch.Description, "description"); err != nil {
			return nil, err
		}
		sets = append(sets, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Merchant != nil {
		sets = append(sets, "merchant = ?")
		args = append(args, *patch.Merchant)
	}
	if patch.Recurring != nil {
		sets = append(sets, "recurring = ?")
		args = append(args, *patch.Recurring)
	}

	if len(sets) == 0 {
		return s.GetTransactionByID(ctx, id)
	}

	args = append(args, id)
	result, err := s.db.ExecContext(ctx,
		"UPDATE transactions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: transaction %d", common.ErrNotFound, id)
	}

	return s.GetTransactionByID(ctx, id)
}

// DeleteTransaction removes a transaction, reporting whether a row existed.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return affected > 0, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var txnType, category string
	var merchant, accountType, sourceID sql.NullString
	var createdAt sql.NullTime

	err := row.Scan(&txn.ID, &txn.Date, &txn.Amount, &txnType, &category,
		&txn.Description, &merchant, &accountType, &sourceID,
		&txn.Recurring, &txn.Imported, &createdAt)
	if err != nil {
		return nil, err
	}

	txn.Type = model.TransactionType(txnType)
	txn.Category = model.Category(category)
	txn.Merchant = merchant.String
	txn.AccountType = accountType.String
	txn.SourceID = sourceID.String
	if createdAt.Valid {
		txn.CreatedAt = createdAt.Time
	} else {
		txn.CreatedAt = time.Time{}
	}
	return &txn, nil
}
