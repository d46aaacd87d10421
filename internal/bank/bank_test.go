package bank

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite/centsible/internal/common"
	"github.com/mwhite/centsible/internal/model"
	"github.com/mwhite/centsible/internal/service"
)

func testCreds() service.Credentials {
	return service.Credentials{Username: "user", Password: "hunter2"}
}

func TestAuthenticator_Success(t *testing.T) {
	auth := NewAuthenticator(AuthConfig{})

	grant, err := auth.Authenticate(context.Background(), "chase", testCreds())
	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.GreaterOrEqual(t, grant.AccountsFound, 1)
	assert.LessOrEqual(t, grant.AccountsFound, 3)
}

func TestAuthenticator_UnknownSource(t *testing.T) {
	auth := NewAuthenticator(AuthConfig{})

	_, err := auth.Authenticate(context.Background(), "not-a-bank", testCreds())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidSource)
}

func TestAuthenticator_FailureInjection(t *testing.T) {
	auth := NewAuthenticator(AuthConfig{
		FailureRate: 1.0,
		Rand:        rand.New(rand.NewSource(1)),
	})

	_, err := auth.Authenticate(context.Background(), "chase", testCreds())
	require.Error(t, err)

	known := false
	for _, reason := range failureReasons {
		if errors.Is(err, reason) {
			known = true
		}
	}
	assert.True(t, known, "failure reason must come from the fixed set, got %v", err)
}

func TestAuthenticator_ZeroFailureRateNeverFails(t *testing.T) {
	auth := NewAuthenticator(AuthConfig{
		FailureRate: 0,
		Rand:        rand.New(rand.NewSource(42)),
	})

	for i := 0; i < 50; i++ {
		_, err := auth.Authenticate(context.Background(), "bofa", testCreds())
		require.NoError(t, err)
	}
}

func TestAuthenticator_UnavailableIsRetryable(t *testing.T) {
	// Seed chosen so the first roll selects a failure; scan seeds until the
	// retryable reason comes up to pin the classification.
	for seed := int64(0); seed < 64; seed++ {
		auth := NewAuthenticator(AuthConfig{
			FailureRate: 1.0,
			Rand:        rand.New(rand.NewSource(seed)),
		})
		_, err := auth.Authenticate(context.Background(), "citi", testCreds())
		require.Error(t, err)
		if errors.Is(err, ErrTemporarilyDown) {
			assert.True(t, common.IsRetryable(err))
			return
		}
	}
	t.Fatal("no seed in range produced the temporarily-unavailable reason")
}

func TestAuthenticator_RespectsCancellation(t *testing.T) {
	auth := NewAuthenticator(AuthConfig{Latency: time.Minute})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := auth.Authenticate(ctx, "chase", testCreds())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetcher_SampleBatch(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	fetcher := NewFetcher(FetchConfig{Now: func() time.Time { return now }})

	records, err := fetcher.FetchRecords(context.Background(), "chase")
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Starbucks Coffee #1234", records[0].Description)
	assert.Equal(t, 45.67, records[0].Amount)
	assert.Equal(t, model.TypeExpense, records[0].DeclaredType)

	assert.Equal(t, "Direct Deposit - Payroll", records[3].Description)
	assert.Equal(t, 2500.00, records[3].Amount)
	assert.Equal(t, model.TypeIncome, records[3].DeclaredType)

	// Dates walk backwards one day per record.
	for i := 1; i < len(records); i++ {
		assert.True(t, records[i].Date.Before(records[i-1].Date))
	}
}

func TestFetcher_UnknownSource(t *testing.T) {
	fetcher := NewFetcher(FetchConfig{})

	_, err := fetcher.FetchRecords(context.Background(), "ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidSource)
}

func TestLookupInstitution(t *testing.T) {
	inst, ok := LookupInstitution("wellsfargo")
	require.True(t, ok)
	assert.Equal(t, "Wells Fargo", inst.Name)

	_, ok = LookupInstitution("monopoly-bank")
	assert.False(t, ok)
}
