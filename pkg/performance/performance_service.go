package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/clearpiggy/clearpiggy/internal/event_bus"
	"github.com/clearpiggy/clearpiggy/internal/utils"
	"github.com/clearpiggy/clearpiggy/pkg/budget"
	"github.com/clearpiggy/clearpiggy/pkg/ledger"
	"github.com/clearpiggy/clearpiggy/pkg/override"
	"github.com/clearpiggy/clearpiggy/pkg/workspace"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// ForBudget reconciles a specific budget against the ledger.
	ForBudget(ctx context.Context, budgetId int) (BudgetPerformance, error)
	// ForActiveBudget reconciles the workspace's active budget.
	ForActiveBudget(ctx context.Context) (BudgetPerformance, error)
}

type ServiceImpl struct {
	budgetRepo   budget.Repo
	ledgerRepo   ledger.Repo
	overrideRepo override.Repo
	clock        utils.Clock
	debounce     *debouncer
}

func NewPerformanceService(
	budgetRepo budget.Repo,
	ledgerRepo ledger.Repo,
	overrideRepo override.Repo,
	clock utils.Clock,
	debounceWindow time.Duration,
) *ServiceImpl {
	return &ServiceImpl{
		budgetRepo:   budgetRepo,
		ledgerRepo:   ledgerRepo,
		overrideRepo: overrideRepo,
		clock:        clock,
		debounce:     newDebouncer(debounceWindow),
	}
}

func (s *ServiceImpl) ForBudget(ctx context.Context, budgetId int) (BudgetPerformance, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return BudgetPerformance{}, fmt.Errorf("failed to get current workspace: %w", err)
	}
	b, err := s.budgetRepo.Get(ctx, workspaceId, budgetId)
	if err != nil {
		return BudgetPerformance{}, err
	}
	return s.reconcileBudget(ctx, workspaceId, b)
}

func (s *ServiceImpl) ForActiveBudget(ctx context.Context) (BudgetPerformance, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return BudgetPerformance{}, fmt.Errorf("failed to get current workspace: %w", err)
	}
	b, err := s.budgetRepo.GetActive(ctx, workspaceId)
	if err != nil {
		return BudgetPerformance{}, err
	}
	return s.reconcileBudget(ctx, workspaceId, b)
}

func (s *ServiceImpl) reconcileBudget(ctx context.Context, workspaceId int, b budget.Budget) (BudgetPerformance, error) {
	lines, err := s.budgetRepo.GetLines(ctx, workspaceId, b.Id)
	if err != nil {
		return BudgetPerformance{}, err
	}
	outflow := ledger.DirectionOutflow
	facts, err := s.ledgerRepo.FindInRange(ctx, workspaceId, b.StartDate, b.EndDate, &outflow)
	if err != nil {
		return BudgetPerformance{}, err
	}
	overrides, err := s.overrideRepo.GetAllForBudget(ctx, workspaceId, b.Id)
	if err != nil {
		return BudgetPerformance{}, err
	}
	return Reconcile(b, lines, facts, overrides, s.clock.Now()), nil
}

// SubscribeToLedger wires the fire-and-forget reconciliation path: ledger
// change notifications re-reconcile the workspace's active budget after a
// debounce window. Failures are logged, never surfaced to users.
func (s *ServiceImpl) SubscribeToLedger(bus *event_bus.EventBus) (unsubscribe func()) {
	return event_bus.SubscribeTyped(bus, event_bus.TransactionPostedEvent,
		func(e event_bus.EventT[event_bus.TransactionPosted]) error {
			workspaceId := e.Data.WorkspaceID
			s.debounce.trigger(workspaceId, func() {
				s.refresh(workspaceId)
			})
			return nil
		})
}

func (s *ServiceImpl) refresh(workspaceId int) {
	ctx := workspace.WithWorkspace(context.Background(), workspace.Workspace{Id: workspaceId})
	perf, err := s.ForActiveBudget(ctx)
	if err != nil {
		log.Warnf("background reconciliation for workspace %d failed: %v", workspaceId, err)
		return
	}
	log.Debugf("reconciled active budget %d for workspace %d: spent %d of %d cents (%.1f%%)",
		perf.Budget.Id, workspaceId,
		perf.Summary.TotalSpentCents, perf.Summary.TotalBudgetedCents, perf.Summary.UtilizationPct)
}

// Close cancels any pending debounced reconciliations.
func (s *ServiceImpl) Close() {
	s.debounce.stop()
}
