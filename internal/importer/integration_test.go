package importer_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite/centsible/internal/bank"
	"github.com/mwhite/centsible/internal/importer"
	"github.com/mwhite/centsible/internal/model"
	"github.com/mwhite/centsible/internal/service"
	"github.com/mwhite/centsible/internal/testutil"
)

// The full pipeline against a real database: connect, import, and verify the
// rows landed categorized.
func TestImportPipeline_EndToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	auth := bank.NewAuthenticator(bank.AuthConfig{})
	fetcher := bank.NewFetcher(bank.FetchConfig{
		Now: func() time.Time { return time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC) },
	})
	session := importer.NewSession(auth, fetcher, db.Storage)
	defer session.Close()

	_, err := session.Connect(ctx, "chase", service.Credentials{
		Username: "user",
		Password: "hunter2",
	})
	require.NoError(t, err)

	summary, err := session.ImportTransactions(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, summary.Count)

	stored, err := db.Storage.ListTransactions(ctx, service.TransactionFilter{
		ImportedOnly: true,
		SourceID:     "chase",
	})
	require.NoError(t, err)
	require.Len(t, stored, 4)

	// Newest first: the payroll deposit is the oldest sample record.
	assert.Equal(t, model.CategoryIncome, stored[3].Category)
	assert.Equal(t, model.TypeIncome, stored[3].Type)
	assert.Equal(t, 2500.00, stored[3].Amount)

	// Reports see the imported batch immediately.
	flow, err := db.Storage.CashFlow(ctx,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.InDelta(t, 2500.00, flow.TotalIncome, 0.001)
	assert.InDelta(t, 291.68, flow.TotalExpenses, 0.001)
}

func TestImportPipeline_BudgetReflectsImport(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := db.Storage.SaveBudget(ctx, &model.Budget{
		Category: model.CategoryFoodDining,
		Period:   model.PeriodMonthly,
		Limit:    40,
	})
	require.NoError(t, err)

	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	fetcher := bank.NewFetcher(bank.FetchConfig{Now: func() time.Time { return now }})
	session := importer.NewSession(bank.NewAuthenticator(bank.AuthConfig{}), fetcher, db.Storage)
	defer session.Close()

	_, err = session.Connect(ctx, "bofa", service.Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)
	_, err = session.ImportTransactions(ctx)
	require.NoError(t, err)

	require.NoError(t, db.Storage.RecalculateSpent(ctx, now))

	budget, err := db.Storage.GetBudgetByCategory(ctx, model.CategoryFoodDining)
	require.NoError(t, err)
	// The 45.67 coffee run blew the 40.00 dining budget.
	assert.Equal(t, 45.67, budget.Spent)
	assert.True(t, budget.Exceeded())
}
