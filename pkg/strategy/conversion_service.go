package strategy

import (
	"context"
	"errors"
	"fmt"

	"github.com/clearpiggy/clearpiggy/internal/event_bus"
	"github.com/clearpiggy/clearpiggy/internal/utils"
	"github.com/clearpiggy/clearpiggy/pkg/budget"
	"github.com/clearpiggy/clearpiggy/pkg/ledger"
	"github.com/clearpiggy/clearpiggy/pkg/workspace"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrNoBudgetLines = errors.New("budget has no lines to convert")

// ConversionResult is the change-set summary returned to the caller. A
// failed persistence attempt yields Success=false with an explanatory
// message and no changes applied; the conversion transaction guarantees no
// partial mutation.
type ConversionResult struct {
	Success          bool
	Changes          []budget.LineChange
	TotalBudgetCents int64
	Message          string
}

type ConversionService interface {
	// Convert recomputes every line's budgeted amount for the new strategy
	// and persists the result atomically, appending one audit record.
	// Re-running with unchanged budget and ledger state produces the same
	// change set.
	Convert(ctx context.Context, budgetId int, newStrategy budget.Strategy, actorId string) (ConversionResult, error)
}

type ConversionServiceImpl struct {
	budgetRepo budget.Repo
	ledger     ledger.Service
	bus        *event_bus.EventBus
	clock      utils.Clock
}

func NewConversionService(budgetRepo budget.Repo, ledgerService ledger.Service, bus *event_bus.EventBus, clock utils.Clock) *ConversionServiceImpl {
	return &ConversionServiceImpl{
		budgetRepo: budgetRepo,
		ledger:     ledgerService,
		bus:        bus,
		clock:      clock,
	}
}

func (s *ConversionServiceImpl) Convert(ctx context.Context, budgetId int, newStrategy budget.Strategy, actorId string) (ConversionResult, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return ConversionResult{}, fmt.Errorf("failed to get current workspace: %w", err)
	}
	if !newStrategy.Valid() {
		return ConversionResult{}, budget.ErrInvalidStrategy
	}

	b, err := s.budgetRepo.Get(ctx, workspaceId, budgetId)
	if err != nil {
		return ConversionResult{}, err
	}
	lines, err := s.budgetRepo.GetLines(ctx, workspaceId, budgetId)
	if err != nil {
		return ConversionResult{}, err
	}
	if len(lines) == 0 {
		return ConversionResult{}, ErrNoBudgetLines
	}

	var monthlyIncome int64
	var spendingFacts []ledger.LedgerFact
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		monthlyIncome, err = s.ledger.EstimateMonthlyIncome(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		spendingFacts, err = s.ledger.SpendingHistory(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Errorf("ledger read failed during conversion of budget %d: %v", budgetId, err)
		return ConversionResult{
			Success: false,
			Message: fmt.Sprintf("could not read ledger history: %v", err),
		}, nil
	}

	categorySpending := ledger.AggregateByCategory(spendingFacts)
	changeSet := Allocate(newStrategy, lines, categorySpending, monthlyIncome)

	if actorId == "" {
		actorId = "system"
	}
	record := budget.StrategyChange{
		Uid:         uuid.NewString(),
		BudgetId:    budgetId,
		OldStrategy: b.Strategy,
		NewStrategy: newStrategy,
		ActorId:     actorId,
		CreatedAt:   s.clock.Now(),
		Notes: budget.ConversionNotes{
			MonthlyIncomeCents: monthlyIncome,
			ChangeSet:          changeSet,
		},
	}

	if err := s.budgetRepo.ApplyConversion(ctx, workspaceId, budgetId, newStrategy, changeSet, record); err != nil {
		log.Errorf("failed to persist conversion of budget %d: %v", budgetId, err)
		return ConversionResult{
			Success: false,
			Message: fmt.Sprintf("conversion was not applied: %v", err),
		}, nil
	}

	event := event_bus.NewEvent(ctx, event_bus.StrategyConvertedEvent, event_bus.StrategyConverted{
		WorkspaceID: workspaceId,
		BudgetID:    budgetId,
		OldStrategy: string(b.Strategy),
		NewStrategy: string(newStrategy),
		TotalCents:  changeSet.TotalNewBudgetCents,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Warnf("strategy converted event delivery failed: %v", err)
	}

	return ConversionResult{
		Success:          true,
		Changes:          changeSet.Changes,
		TotalBudgetCents: changeSet.TotalNewBudgetCents,
		Message:          fmt.Sprintf("budget converted to %s", newStrategy),
	}, nil
}
