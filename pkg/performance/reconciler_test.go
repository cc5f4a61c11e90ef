package performance

import (
	"testing"
	"time"

	"github.com/clearpiggy/clearpiggy/pkg/budget"
	"github.com/clearpiggy/clearpiggy/pkg/ledger"
	"github.com/clearpiggy/clearpiggy/pkg/override"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var periodStart = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
var periodEnd = time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)

func testBudget() budget.Budget {
	return budget.Budget{
		Id:          1,
		WorkspaceId: 1,
		Name:        "June",
		StartDate:   periodStart,
		EndDate:     periodEnd,
		Strategy:    budget.StrategyEnvelope,
		Active:      true,
	}
}

func outflow(id, category string, cents int64, day int) ledger.LedgerFact {
	return ledger.LedgerFact{
		Id:          id,
		WorkspaceId: 1,
		CategoryKey: category,
		AmountCents: -cents,
		Direction:   ledger.DirectionOutflow,
		Posted:      true,
		Date:        periodStart.AddDate(0, 0, day-1),
	}
}

func TestReconcile_AttributesByCategory(t *testing.T) {
	// given
	lines := []budget.BudgetLine{
		{Id: 10, BudgetId: 1, CategoryKey: "RENT", BudgetedCents: 150_000},
		{Id: 11, BudgetId: 1, CategoryKey: "DINING", BudgetedCents: 20_000},
	}
	facts := []ledger.LedgerFact{
		outflow("t1", "RENT", 150_000, 2),
		outflow("t2", "DINING", 4_500, 5),
		outflow("t3", "DINING", 6_000, 9),
		outflow("t4", "UNBUDGETED_THING", 9_999, 9), // no matching line
	}

	// when
	result := Reconcile(testBudget(), lines, facts, nil, periodStart.AddDate(0, 0, 14))

	// then
	require.Len(t, result.PerLine, 2)
	assert.Equal(t, int64(150_000), result.PerLine[0].SpentCents)
	assert.Equal(t, int64(0), result.PerLine[0].RemainingCents)
	assert.False(t, result.PerLine[0].OverBudget)
	assert.Equal(t, int64(10_500), result.PerLine[1].SpentCents)
	assert.Equal(t, int64(9_500), result.PerLine[1].RemainingCents)
	assert.Equal(t, int64(170_000), result.Summary.TotalBudgetedCents)
	assert.Equal(t, int64(160_500), result.Summary.TotalSpentCents)
	assert.Equal(t, int64(9_500), result.Summary.TotalRemainingCents)
}

func TestReconcile_OverridePinWinsOverCategory(t *testing.T) {
	// given a dining transaction pinned to the groceries line
	lines := []budget.BudgetLine{
		{Id: 10, BudgetId: 1, CategoryKey: "GROCERIES", BudgetedCents: 50_000},
		{Id: 11, BudgetId: 1, CategoryKey: "DINING", BudgetedCents: 20_000},
	}
	facts := []ledger.LedgerFact{outflow("t1", "DINING", 8_000, 3)}
	overrides := []override.TransactionOverride{
		{Id: 1, BudgetId: 1, BudgetLineId: 10, TransactionId: "t1", Reason: "weekly meal prep order"},
	}

	// when
	result := Reconcile(testBudget(), lines, facts, overrides, periodEnd)

	// then
	assert.Equal(t, int64(8_000), result.PerLine[0].SpentCents)
	assert.Equal(t, int64(0), result.PerLine[1].SpentCents)
}

func TestReconcile_OverrideForOtherBudgetIgnored(t *testing.T) {
	// given an override that belongs to a different budget
	lines := []budget.BudgetLine{
		{Id: 10, BudgetId: 1, CategoryKey: "GROCERIES", BudgetedCents: 50_000},
		{Id: 11, BudgetId: 1, CategoryKey: "DINING", BudgetedCents: 20_000},
	}
	facts := []ledger.LedgerFact{outflow("t1", "DINING", 8_000, 3)}
	overrides := []override.TransactionOverride{
		{Id: 1, BudgetId: 99, BudgetLineId: 10, TransactionId: "t1"},
	}

	// when
	result := Reconcile(testBudget(), lines, facts, overrides, periodEnd)

	// then attribution falls back to the category match
	assert.Equal(t, int64(0), result.PerLine[0].SpentCents)
	assert.Equal(t, int64(8_000), result.PerLine[1].SpentCents)
}

func TestReconcile_SkipsPendingAndOutOfPeriodFacts(t *testing.T) {
	// given
	lines := []budget.BudgetLine{
		{Id: 10, BudgetId: 1, CategoryKey: "RENT", BudgetedCents: 150_000},
	}
	pending := outflow("t1", "RENT", 50_000, 2)
	pending.Posted = false
	before := outflow("t2", "RENT", 50_000, 1)
	before.Date = periodStart.AddDate(0, 0, -1)
	after := outflow("t3", "RENT", 50_000, 1)
	after.Date = periodEnd.AddDate(0, 0, 1)
	inflow := outflow("t4", "RENT", 50_000, 5)
	inflow.Direction = ledger.DirectionInflow

	// when
	result := Reconcile(testBudget(), lines, []ledger.LedgerFact{pending, before, after, inflow}, nil, periodEnd)

	// then none of them count as spend
	assert.Equal(t, int64(0), result.PerLine[0].SpentCents)
}

func TestReconcile_ZeroBudgetedLineOverspent(t *testing.T) {
	// given a line budgeted at zero with real spend
	lines := []budget.BudgetLine{
		{Id: 10, BudgetId: 1, CategoryKey: "DINING", BudgetedCents: 0},
	}
	facts := []ledger.LedgerFact{outflow("t1", "DINING", 5_000, 3)}

	// when
	result := Reconcile(testBudget(), lines, facts, nil, periodEnd)

	// then
	assert.Equal(t, int64(-5_000), result.PerLine[0].RemainingCents)
	assert.True(t, result.PerLine[0].OverBudget)
	// nothing budgeted anywhere, so utilization is 0, never NaN
	assert.Equal(t, float64(0), result.Summary.UtilizationPct)
	assert.Equal(t, 1, result.Summary.CategoriesOverBudget)
}

func TestReconcile_OverBudgetCountBounds(t *testing.T) {
	// given every line overspent
	lines := []budget.BudgetLine{
		{Id: 10, BudgetId: 1, CategoryKey: "RENT", BudgetedCents: 1_000},
		{Id: 11, BudgetId: 1, CategoryKey: "DINING", BudgetedCents: 1_000},
	}
	facts := []ledger.LedgerFact{
		outflow("t1", "RENT", 2_000, 2),
		outflow("t2", "DINING", 2_000, 2),
	}

	// when
	result := Reconcile(testBudget(), lines, facts, nil, periodEnd)

	// then the count is exact and bounded by the line count
	assert.Equal(t, 2, result.Summary.CategoriesOverBudget)
	assert.LessOrEqual(t, result.Summary.CategoriesOverBudget, len(lines))
}

func TestReconcile_OnTrackPacing(t *testing.T) {
	lines := []budget.BudgetLine{
		{Id: 10, BudgetId: 1, CategoryKey: "RENT", BudgetedCents: 300_000},
	}

	// given 50% utilization at the half-way point (day 15 of 30 -> 50% pace)
	halfway := periodStart.AddDate(0, 0, 14)
	onPace := Reconcile(testBudget(), lines, []ledger.LedgerFact{outflow("t1", "RENT", 150_000, 3)}, nil, halfway)
	assert.InDelta(t, 50.0, onPace.Summary.ExpectedUtilizationPct, 0.001)
	assert.True(t, onPace.Summary.OnTrack)

	// given 90% utilization at the same point: more than 5 points ahead of pace
	ahead := Reconcile(testBudget(), lines, []ledger.LedgerFact{outflow("t1", "RENT", 270_000, 3)}, nil, halfway)
	assert.False(t, ahead.Summary.OnTrack)

	// given 54% utilization: ahead of pace but within the 5-point tolerance
	slightlyAhead := Reconcile(testBudget(), lines, []ledger.LedgerFact{outflow("t1", "RENT", 162_000, 3)}, nil, halfway)
	assert.True(t, slightlyAhead.Summary.OnTrack)
}

func TestReconcile_PacingClampedToPeriod(t *testing.T) {
	lines := []budget.BudgetLine{
		{Id: 10, BudgetId: 1, CategoryKey: "RENT", BudgetedCents: 300_000},
	}

	// asOf after the period end clamps to 100% pace
	late := Reconcile(testBudget(), lines, nil, nil, periodEnd.AddDate(0, 1, 0))
	assert.InDelta(t, 100.0, late.Summary.ExpectedUtilizationPct, 0.001)

	// asOf before the period start clamps to 0%
	early := Reconcile(testBudget(), lines, nil, nil, periodStart.AddDate(0, -1, 0))
	assert.InDelta(t, 0.0, early.Summary.ExpectedUtilizationPct, 0.001)
}
