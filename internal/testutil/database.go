// Package testutil provides shared test helpers: migrated in-memory
// databases and seed data builders.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/mwhite/centsible/internal/model"
	"github.com/mwhite/centsible/internal/service"
	"github.com/mwhite/centsible/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database. It automatically
// handles migrations and cleanup.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// SeedTransactions inserts the given transactions, failing the test on any
// error, and returns them as stored (with IDs assigned).
func (db *TestDB) SeedTransactions(txns ...model.Transaction) []model.Transaction {
	db.t.Helper()

	stored := make([]model.Transaction, 0, len(txns))
	for i := range txns {
		created, err := db.Storage.CreateTransaction(context.Background(), &txns[i])
		if err != nil {
			db.t.Fatalf("failed to seed transaction %d: %v", i, err)
		}
		stored = append(stored, *created)
	}
	return stored
}

// Expense builds an expense transaction for seed data.
func Expense(date time.Time, amount float64, category model.Category, description string) model.Transaction {
	return model.Transaction{
		Date:        date,
		Amount:      amount,
		Type:        model.TypeExpense,
		Category:    category,
		Description: description,
	}
}

// Income builds an income transaction for seed data.
func Income(date time.Time, amount float64, description string) model.Transaction {
	return model.Transaction{
		Date:        date,
		Amount:      amount,
		Type:        model.TypeIncome,
		Category:    model.CategoryIncome,
		Description: description,
	}
}
