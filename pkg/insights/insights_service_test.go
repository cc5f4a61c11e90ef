package insights

import (
	"context"
	"testing"
	"time"

	"github.com/clearpiggy/clearpiggy/internal/event_bus"
	"github.com/clearpiggy/clearpiggy/internal/utils"
	"github.com/clearpiggy/clearpiggy/pkg/budget"
	"github.com/clearpiggy/clearpiggy/pkg/performance"
	"github.com/clearpiggy/clearpiggy/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPerformanceService counts how often reconciliation actually runs, so
// cache hits are observable.
type stubPerformanceService struct {
	calls  int
	result performance.BudgetPerformance
	err    error
}

func (s *stubPerformanceService) ForBudget(ctx context.Context, budgetId int) (performance.BudgetPerformance, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubPerformanceService) ForActiveBudget(ctx context.Context) (performance.BudgetPerformance, error) {
	s.calls++
	return s.result, s.err
}

func reconciledJuneBudget() performance.BudgetPerformance {
	b := budget.Budget{
		Id:        7,
		Name:      "June",
		StartDate: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC),
		Strategy:  budget.StrategyEnvelope,
		Active:    true,
	}
	line := budget.BudgetLine{Id: 1, BudgetId: 7, CategoryKey: "DINING", BudgetedCents: 20_000}
	return performance.BudgetPerformance{
		Budget: b,
		PerLine: []performance.LinePerformance{
			{Line: line, SpentCents: 12_000, RemainingCents: 8_000},
		},
		Summary: performance.PerformanceSummary{
			TotalBudgetedCents:     20_000,
			TotalSpentCents:        12_000,
			TotalRemainingCents:    8_000,
			UtilizationPct:         60,
			ExpectedUtilizationPct: 50,
			OnTrack:                false,
		},
	}
}

func setupInsights(t *testing.T) (*ServiceImpl, *stubPerformanceService, *utils.MockClock, context.Context) {
	perfStub := &stubPerformanceService{result: reconciledJuneBudget()}
	clock := &utils.MockClock{FixedNow: time.Date(2026, time.June, 16, 9, 0, 0, 0, time.UTC)}
	cache := NewTTLCache[SpendingInsights](5*time.Minute, clock)
	service := NewInsightsService(perfStub, NewRuleSummarizer(), cache)
	ctx := workspace.WithWorkspace(context.Background(), workspace.Workspace{Id: 1, Uid: "ws-1"})
	return service, perfStub, clock, ctx
}

func TestInsightsService_CachesPerWorkspace(t *testing.T) {
	service, perfStub, _, ctx := setupInsights(t)

	// when asked twice in quick succession
	first, err := service.ForCurrentWorkspace(ctx)
	require.NoError(t, err)
	second, err := service.ForCurrentWorkspace(ctx)
	require.NoError(t, err)

	// then reconciliation ran once and both responses are identical
	assert.Equal(t, 1, perfStub.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, 7, first.BudgetId)
	assert.NotEmpty(t, first.Insights)
}

func TestInsightsService_RecomputesAfterTTL(t *testing.T) {
	service, perfStub, clock, ctx := setupInsights(t)

	// given a cached result
	_, err := service.ForCurrentWorkspace(ctx)
	require.NoError(t, err)

	// when the TTL elapses
	clock.Advance(6 * time.Minute)
	_, err = service.ForCurrentWorkspace(ctx)
	require.NoError(t, err)

	// then reconciliation ran again
	assert.Equal(t, 2, perfStub.calls)
}

func TestInsightsService_InvalidatedByConversionEvent(t *testing.T) {
	service, perfStub, _, ctx := setupInsights(t)
	bus := event_bus.NewEventBus()
	service.SubscribeToConversions(bus)

	// given a cached result
	_, err := service.ForCurrentWorkspace(ctx)
	require.NoError(t, err)

	// when the workspace's strategy converts
	err = bus.Publish(event_bus.NewEvent(ctx, event_bus.StrategyConvertedEvent, event_bus.StrategyConverted{
		WorkspaceID: 1,
		BudgetID:    7,
		OldStrategy: "envelope",
		NewStrategy: "50_30_20",
	}))
	require.NoError(t, err)

	// then the next read recomputes
	_, err = service.ForCurrentWorkspace(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, perfStub.calls)
}

func TestInsightsService_RequiresWorkspace(t *testing.T) {
	service, _, _, _ := setupInsights(t)

	_, err := service.ForCurrentWorkspace(context.Background())
	assert.ErrorIs(t, err, workspace.ErrNoWorkspace)
}

func TestRuleSummarizer_Deterministic(t *testing.T) {
	summarizer := NewRuleSummarizer()
	perf := reconciledJuneBudget()

	first := summarizer.Summarize(perf)
	second := summarizer.Summarize(perf)
	assert.Equal(t, first, second)
}

func TestRuleSummarizer_OffTrackMessage(t *testing.T) {
	summarizer := NewRuleSummarizer()

	insights := summarizer.Summarize(reconciledJuneBudget())

	require.NotEmpty(t, insights)
	assert.Equal(t, "pacing", insights[0].Kind)
	assert.Contains(t, insights[0].Message, "ahead of plan")
}
