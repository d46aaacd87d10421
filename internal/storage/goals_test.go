package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite/centsible/internal/common"
	"github.com/mwhite/centsible/internal/model"
)

func TestCreateGoal(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	goal := &model.Goal{
		Name:         "Emergency fund",
		TargetAmount: 10000,
		TargetDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Icon:         "shield",
		Notes:        "six months of expenses",
	}
	created, err := store.CreateGoal(ctx, goal)
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Emergency fund", created.Name)
	assert.Equal(t, 0.0, created.CurrentAmount)
	assert.Equal(t, "shield", created.Icon)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestCreateGoal_Invalid(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateGoal(ctx, &model.Goal{TargetAmount: 100})
	require.Error(t, err)

	_, err = store.CreateGoal(ctx, &model.Goal{Name: "no target"})
	require.Error(t, err)

	_, err = store.CreateGoal(ctx, &model.Goal{Name: "negative start", TargetAmount: 100, CurrentAmount: -5})
	require.Error(t, err)
}

func TestAddGoalProgress(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateGoal(ctx, &model.Goal{Name: "Vacation", TargetAmount: 2000})
	require.NoError(t, err)

	updated, err := store.AddGoalProgress(ctx, created.ID, 500)
	require.NoError(t, err)
	assert.Equal(t, 500.0, updated.CurrentAmount)
	assert.Equal(t, 0.25, updated.Progress())
	assert.False(t, updated.Reached())

	updated, err = store.AddGoalProgress(ctx, created.ID, 1500)
	require.NoError(t, err)
	assert.True(t, updated.Reached())

	// Withdrawals never push the balance below zero.
	updated, err = store.AddGoalProgress(ctx, created.ID, -5000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, updated.CurrentAmount)
}

func TestAddGoalProgress_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.AddGoalProgress(context.Background(), 404, 50)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListAndDeleteGoals(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first, err := store.CreateGoal(ctx, &model.Goal{Name: "Car", TargetAmount: 15000})
	require.NoError(t, err)
	_, err = store.CreateGoal(ctx, &model.Goal{Name: "House", TargetAmount: 60000})
	require.NoError(t, err)

	goals, err := store.ListGoals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "Car", goals[0].Name)

	deleted, err := store.DeleteGoal(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	goals, err = store.ListGoals(ctx)
	require.NoError(t, err)
	assert.Len(t, goals, 1)

	deleted, err = store.DeleteGoal(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
