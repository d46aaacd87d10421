package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite/centsible/internal/common"
	"github.com/mwhite/centsible/internal/model"
	"github.com/mwhite/centsible/internal/service"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)

	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func testTransaction(date time.Time) *model.Transaction {
	return &model.Transaction{
		Date:        date,
		Amount:      45.67,
		Type:        model.TypeExpense,
		Category:    model.CategoryFoodDining,
		Description: "Starbucks Coffee #1234",
		Merchant:    "Starbucks",
	}
}

func TestMigrate_FreshDatabase(t *testing.T) {
	store := createTestStorage(t)

	var version int
	err := store.db.QueryRow("PRAGMA user_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Migrate(context.Background()))
}

func TestCreateTransaction(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	created, err := store.CreateTransaction(ctx, testTransaction(date))
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotZero(t, created.ID)
	assert.Equal(t, 45.67, created.Amount)
	assert.Equal(t, model.CategoryFoodDining, created.Category)
	assert.Equal(t, model.TypeExpense, created.Type)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := store.GetTransactionByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Description, fetched.Description)
}

func TestCreateTransaction_Invalid(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		mutate func(*model.Transaction)
		name   string
	}{
		{name: "zero date", mutate: func(txn *model.Transaction) { txn.Date = time.Time{} }},
		{name: "empty description", mutate: func(txn *model.Transaction) { txn.Description = " " }},
		{name: "negative amount", mutate: func(txn *model.Transaction) { txn.Amount = -1 }},
		{name: "unknown type", mutate: func(txn *model.Transaction) { txn.Type = "transfer" }},
		{name: "unknown category", mutate: func(txn *model.Transaction) { txn.Category = "Gambling" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := testTransaction(date)
			tt.mutate(txn)
			_, err := store.CreateTransaction(ctx, txn)
			require.Error(t, err)
		})
	}
}

func TestGetTransactionByID_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetTransactionByID(context.Background(), 9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListTransactions_Filters(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	seed := []model.Transaction{
		{Date: base, Amount: 45.67, Type: model.TypeExpense, Category: model.CategoryFoodDining, Description: "Starbucks", SourceID: "chase", Imported: true},
		{Date: base.AddDate(0, 0, 5), Amount: 89.23, Type: model.TypeExpense, Category: model.CategoryTransportation, Description: "Shell", SourceID: "chase", Imported: true},
		{Date: base.AddDate(0, 0, 10), Amount: 2500, Type: model.TypeIncome, Category: model.CategoryIncome, Description: "Payroll", SourceID: "bofa", Imported: true},
		{Date: base.AddDate(0, 0, 15), Amount: 12.50, Type: model.TypeExpense, Category: model.CategoryFoodDining, Description: "Manual lunch entry"},
	}
	for i := range seed {
		_, err := store.CreateTransaction(ctx, &seed[i])
		require.NoError(t, err)
	}

	all, err := store.ListTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	// Newest first.
	assert.Equal(t, "Manual lunch entry", all[0].Description)

	food, err := store.ListTransactions(ctx, service.TransactionFilter{Category: model.CategoryFoodDining})
	require.NoError(t, err)
	assert.Len(t, food, 2)

	income, err := store.ListTransactions(ctx, service.TransactionFilter{Type: model.TypeIncome})
	require.NoError(t, err)
	require.Len(t, income, 1)
	assert.Equal(t, "Payroll", income[0].Description)

	chase, err := store.ListTransactions(ctx, service.TransactionFilter{SourceID: "chase"})
	require.NoError(t, err)
	assert.Len(t, chase, 2)

	imported, err := store.ListTransactions(ctx, service.TransactionFilter{ImportedOnly: true})
	require.NoError(t, err)
	assert.Len(t, imported, 3)

	mid := base.AddDate(0, 0, 4)
	late := base.AddDate(0, 0, 12)
	windowed, err := store.ListTransactions(ctx, service.TransactionFilter{StartDate: &mid, EndDate: &late})
	require.NoError(t, err)
	assert.Len(t, windowed, 2)

	paged, err := store.ListTransactions(ctx, service.TransactionFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 2)
	assert.Equal(t, "Payroll", paged[0].Description)
}

func TestUpdateTransaction(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateTransaction(ctx, testTransaction(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	newCategory := model.CategoryShopping
	newAmount := 50.00
	recurring := true
	updated, err := store.UpdateTransaction(ctx, created.ID, service.TransactionPatch{
		Category:  &newCategory,
		Amount:    &newAmount,
		Recurring: &recurring,
	})
	require.NoError(t, err)

	assert.Equal(t, model.CategoryShopping, updated.Category)
	assert.Equal(t, 50.00, updated.Amount)
	assert.True(t, updated.Recurring)
	// Untouched fields survive.
	assert.Equal(t, created.Description, updated.Description)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	store := createTestStorage(t)

	amount := 10.0
	_, err := store.UpdateTransaction(context.Background(), 777, service.TransactionPatch{Amount: &amount})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateTransaction_RejectsInvalidPatch(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateTransaction(ctx, testTransaction(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	negative := -5.0
	_, err = store.UpdateTransaction(ctx, created.ID, service.TransactionPatch{Amount: &negative})
	require.Error(t, err)

	bogus := model.Category("Bribes")
	_, err = store.UpdateTransaction(ctx, created.ID, service.TransactionPatch{Category: &bogus})
	require.Error(t, err)
}

func TestDeleteTransaction(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateTransaction(ctx, testTransaction(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	deleted, err := store.DeleteTransaction(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = store.DeleteTransaction(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = store.GetTransactionByID(ctx, created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
