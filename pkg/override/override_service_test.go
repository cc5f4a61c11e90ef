package override

import (
	"context"
	"testing"

	"github.com/clearpiggy/clearpiggy/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var overrideRepoStub = NewStubOverrideRepo()

func setup(t *testing.T) (Service, context.Context, func()) {
	service := NewOverrideService(overrideRepoStub)
	ctx := workspace.WithWorkspace(context.Background(), workspace.Workspace{Id: 1, Uid: "ws-1"})
	return service, ctx, func() {
		overrideRepoStub.Cleanup()
	}
}

func TestOverrideService_Create(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// when
	created, err := service.Create(ctx, TransactionOverride{
		BudgetId:      1,
		BudgetLineId:  10,
		TransactionId: "t1",
		Reason:        "weekly meal prep order",
	})

	// then
	require.NoError(t, err)
	assert.NotZero(t, created.Id)

	overrides, err := service.GetAllForBudget(ctx, 1)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, "t1", overrides[0].TransactionId)
}

func TestOverrideService_CreateReplacesExistingPin(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given a transaction already pinned to line 10
	first, err := service.Create(ctx, TransactionOverride{BudgetId: 1, BudgetLineId: 10, TransactionId: "t1"})
	require.NoError(t, err)

	// when the same transaction is pinned again to line 11
	second, err := service.Create(ctx, TransactionOverride{BudgetId: 1, BudgetLineId: 11, TransactionId: "t1"})
	require.NoError(t, err)

	// then the pin moved instead of duplicating
	assert.Equal(t, first.Id, second.Id)
	overrides, err := service.GetAllForBudget(ctx, 1)
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, 11, overrides[0].BudgetLineId)
}

func TestOverrideService_SameTransactionDifferentBudgets(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	// given the same transaction pinned in two budgets
	_, err := service.Create(ctx, TransactionOverride{BudgetId: 1, BudgetLineId: 10, TransactionId: "t1"})
	require.NoError(t, err)
	_, err = service.Create(ctx, TransactionOverride{BudgetId: 2, BudgetLineId: 20, TransactionId: "t1"})
	require.NoError(t, err)

	// then each budget keeps its own pin
	forFirst, _ := service.GetAllForBudget(ctx, 1)
	forSecond, _ := service.GetAllForBudget(ctx, 2)
	assert.Len(t, forFirst, 1)
	assert.Len(t, forSecond, 1)
}

func TestOverrideService_Delete(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	created, err := service.Create(ctx, TransactionOverride{BudgetId: 1, BudgetLineId: 10, TransactionId: "t1"})
	require.NoError(t, err)

	// when
	deleted, err := service.Delete(ctx, created.Id)

	// then
	require.NoError(t, err)
	assert.True(t, deleted)
	overrides, _ := service.GetAllForBudget(ctx, 1)
	assert.Empty(t, overrides)
}

func TestOverrideService_DeleteNotFound(t *testing.T) {
	service, ctx, teardown := setup(t)
	defer teardown()

	_, err := service.Delete(ctx, 42)
	assert.ErrorIs(t, err, ErrOverrideNotFound)
}
