package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/clearpiggy/clearpiggy/internal/event_bus"
	"github.com/clearpiggy/clearpiggy/pkg/performance"
	"github.com/clearpiggy/clearpiggy/pkg/workspace"
	log "github.com/sirupsen/logrus"
)

type Insight struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type SpendingInsights struct {
	BudgetId    int       `json:"budgetId"`
	GeneratedAt time.Time `json:"generatedAt"`
	Insights    []Insight `json:"insights"`
}

// Summarizer turns a reconciled budget into human-readable insights. The
// built-in implementation is deterministic; an LLM-backed one can be dropped
// in behind the same interface.
type Summarizer interface {
	Summarize(perf performance.BudgetPerformance) []Insight
}

type Service interface {
	// ForCurrentWorkspace returns spending insights for the workspace's
	// active budget, served from cache while fresh.
	ForCurrentWorkspace(ctx context.Context) (SpendingInsights, error)
}

type ServiceImpl struct {
	perfService performance.Service
	summarizer  Summarizer
	cache       Cache[SpendingInsights]
}

func NewInsightsService(perfService performance.Service, summarizer Summarizer, cache Cache[SpendingInsights]) *ServiceImpl {
	return &ServiceImpl{
		perfService: perfService,
		summarizer:  summarizer,
		cache:       cache,
	}
}

func (s *ServiceImpl) ForCurrentWorkspace(ctx context.Context) (SpendingInsights, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return SpendingInsights{}, fmt.Errorf("failed to get current workspace: %w", err)
	}

	if cached, ok := s.cache.Get(workspaceId); ok {
		log.Tracef("serving cached insights for workspace %d", workspaceId)
		return cached, nil
	}

	perf, err := s.perfService.ForActiveBudget(ctx)
	if err != nil {
		return SpendingInsights{}, err
	}

	result := SpendingInsights{
		BudgetId:    perf.Budget.Id,
		GeneratedAt: time.Now(),
		Insights:    s.summarizer.Summarize(perf),
	}
	s.cache.Set(workspaceId, result)
	return result, nil
}

// SubscribeToConversions drops the cached insights for a workspace whenever
// its budget strategy changes, so stale summaries never outlive a conversion.
func (s *ServiceImpl) SubscribeToConversions(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.StrategyConvertedEvent,
		func(e event_bus.EventT[event_bus.StrategyConverted]) error {
			s.cache.Invalidate(e.Data.WorkspaceID)
			return nil
		})
}
