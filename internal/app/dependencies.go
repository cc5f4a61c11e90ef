package app

import (
	"time"

	"github.com/clearpiggy/clearpiggy/internal/config"
	"github.com/clearpiggy/clearpiggy/internal/event_bus"
	"github.com/clearpiggy/clearpiggy/internal/utils"
	"github.com/clearpiggy/clearpiggy/pkg/budget"
	"github.com/clearpiggy/clearpiggy/pkg/insights"
	"github.com/clearpiggy/clearpiggy/pkg/ledger"
	"github.com/clearpiggy/clearpiggy/pkg/override"
	"github.com/clearpiggy/clearpiggy/pkg/performance"
	"github.com/clearpiggy/clearpiggy/pkg/strategy"
	"github.com/clearpiggy/clearpiggy/pkg/workspace"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	WorkspaceRepo    workspace.Repo
	WorkspaceService workspace.Service
	WorkspaceHandler *workspace.Handler

	LedgerRepo    ledger.Repo
	LedgerService ledger.Service
	LedgerHandler *ledger.Handler

	BudgetRepo    budget.Repo
	BudgetService budget.Service
	BudgetHandler *budget.Handler

	OverrideRepo    override.Repo
	OverrideService override.Service
	OverrideHandler *override.Handler

	ConversionService strategy.ConversionService
	ConversionHandler *strategy.Handler

	PerformanceService *performance.ServiceImpl
	PerformanceHandler *performance.Handler

	InsightsService *insights.ServiceImpl
	InsightsHandler *insights.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.WorkspaceRepo = workspace.NewWorkspaceRepo(db)
	deps.WorkspaceService = workspace.NewWorkspaceService(deps.WorkspaceRepo)
	deps.WorkspaceHandler = workspace.NewHandler(deps.WorkspaceService)

	deps.LedgerRepo = ledger.NewLedgerRepo(db)
	deps.LedgerService = ledger.NewLedgerService(deps.LedgerRepo, deps.Clock,
		cfg.Budget.SpendingWindowDays, cfg.Budget.DefaultMonthlyIncomeCents)
	deps.LedgerHandler = ledger.NewHandler(deps.LedgerService, deps.EventBus)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.OverrideRepo = override.NewOverrideRepo(db)
	deps.OverrideService = override.NewOverrideService(deps.OverrideRepo)
	deps.OverrideHandler = override.NewHandler(deps.OverrideService)

	deps.ConversionService = strategy.NewConversionService(deps.BudgetRepo, deps.LedgerService, deps.EventBus, deps.Clock)
	deps.ConversionHandler = strategy.NewHandler(deps.ConversionService)

	deps.PerformanceService = performance.NewPerformanceService(
		deps.BudgetRepo, deps.LedgerRepo, deps.OverrideRepo, deps.Clock,
		time.Duration(cfg.Budget.ReconcileDebounceMillis)*time.Millisecond)
	deps.PerformanceHandler = performance.NewHandler(deps.PerformanceService)
	deps.PerformanceService.SubscribeToLedger(deps.EventBus)

	insightsCache := insights.NewTTLCache[insights.SpendingInsights](
		time.Duration(cfg.Insights.CacheTTLSeconds)*time.Second, deps.Clock)
	deps.InsightsService = insights.NewInsightsService(deps.PerformanceService, insights.NewRuleSummarizer(), insightsCache)
	deps.InsightsHandler = insights.NewHandler(deps.InsightsService)
	deps.InsightsService.SubscribeToConversions(deps.EventBus)

	return deps
}
