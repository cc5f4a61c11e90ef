package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/clearpiggy/clearpiggy/internal/utils"
	"github.com/clearpiggy/clearpiggy/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ledgerRepoStub = NewStubLedgerRepo()
var ledgerClock = &utils.MockClock{FixedNow: time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)}

func setupLedger(t *testing.T) (Service, context.Context, func()) {
	service := NewLedgerService(ledgerRepoStub, ledgerClock, 90, 500_000)
	ctx := workspace.WithWorkspace(context.Background(), workspace.Workspace{Id: 1, Uid: "ws-1", Name: "Test Workspace"})
	return service, ctx, func() {
		ledgerRepoStub.Cleanup()
	}
}

func TestLedgerService_Transactions_InvalidRange(t *testing.T) {
	service, ctx, teardown := setupLedger(t)
	defer teardown()

	// given
	from := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	// when
	_, err := service.Transactions(ctx, from, to, nil)

	// then
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestLedgerService_Transactions_RequiresWorkspace(t *testing.T) {
	service, _, teardown := setupLedger(t)
	defer teardown()

	// when called without a workspace in context
	_, err := service.Transactions(context.Background(), time.Now().AddDate(0, -1, 0), time.Now(), nil)

	// then
	assert.ErrorIs(t, err, workspace.ErrNoWorkspace)
}

func TestLedgerService_SpendingHistory_OutflowsInWindowOnly(t *testing.T) {
	service, ctx, teardown := setupLedger(t)
	defer teardown()

	// given
	inWindow := ledgerClock.Now().AddDate(0, 0, -30)
	outOfWindow := ledgerClock.Now().AddDate(0, 0, -120)
	ledgerRepoStub.AddFact(LedgerFact{Id: "t1", WorkspaceId: 1, CategoryKey: "RENT", AmountCents: -150_000, Direction: DirectionOutflow, Posted: true, Date: inWindow})
	ledgerRepoStub.AddFact(LedgerFact{Id: "t2", WorkspaceId: 1, CategoryKey: "SALARY", AmountCents: 400_000, Direction: DirectionInflow, Posted: true, Date: inWindow})
	ledgerRepoStub.AddFact(LedgerFact{Id: "t3", WorkspaceId: 1, CategoryKey: "RENT", AmountCents: -150_000, Direction: DirectionOutflow, Posted: true, Date: outOfWindow})

	// when
	facts, err := service.SpendingHistory(ctx)

	// then only the in-window outflow remains
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "t1", facts[0].Id)
}

func TestLedgerService_EstimateMonthlyIncome(t *testing.T) {
	service, ctx, teardown := setupLedger(t)
	defer teardown()

	// given three monthly salary inflows over the 90-day window
	for i := 1; i <= 3; i++ {
		ledgerRepoStub.AddFact(LedgerFact{
			Id:          string(rune('a' + i)),
			WorkspaceId: 1,
			CategoryKey: "SALARY",
			AmountCents: 420_000,
			Direction:   DirectionInflow,
			Posted:      true,
			Date:        ledgerClock.Now().AddDate(0, 0, -i*28),
		})
	}

	// when
	income, err := service.EstimateMonthlyIncome(ctx)

	// then round(1260000 * 30 / 90) = 420000
	require.NoError(t, err)
	assert.Equal(t, int64(420_000), income)
}

func TestLedgerService_EstimateMonthlyIncome_DefaultWhenNoInflows(t *testing.T) {
	service, ctx, teardown := setupLedger(t)
	defer teardown()

	// given only outflows in the ledger
	ledgerRepoStub.AddFact(LedgerFact{Id: "t1", WorkspaceId: 1, CategoryKey: "RENT", AmountCents: -150_000, Direction: DirectionOutflow, Posted: true, Date: ledgerClock.Now().AddDate(0, 0, -10)})

	// when
	income, err := service.EstimateMonthlyIncome(ctx)

	// then the configured default is used instead of zero
	require.NoError(t, err)
	assert.Equal(t, int64(500_000), income)
}
