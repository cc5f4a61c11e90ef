package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/clearpiggy/clearpiggy/internal/utils"
	"github.com/clearpiggy/clearpiggy/pkg/workspace"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Transactions returns posted ledger facts for the current workspace
	// with dates inside [from, to].
	Transactions(ctx context.Context, from, to time.Time, direction *Direction) ([]LedgerFact, error)
	// SpendingHistory returns posted outflow facts over the trailing window.
	SpendingHistory(ctx context.Context) ([]LedgerFact, error)
	// EstimateMonthlyIncome averages posted inflows over the trailing window
	// down to a single month. When the ledger holds no inflow facts at all,
	// the configured default income is returned instead of zero so that
	// allocation never divides by nothing.
	EstimateMonthlyIncome(ctx context.Context) (int64, error)
}

type ServiceImpl struct {
	repo                 Repo
	clock                utils.Clock
	windowDays           int
	defaultMonthlyIncome int64
}

func NewLedgerService(repo Repo, clock utils.Clock, windowDays int, defaultMonthlyIncome int64) *ServiceImpl {
	return &ServiceImpl{
		repo:                 repo,
		clock:                clock,
		windowDays:           windowDays,
		defaultMonthlyIncome: defaultMonthlyIncome,
	}
}

func (s *ServiceImpl) Transactions(ctx context.Context, from, to time.Time, direction *Direction) ([]LedgerFact, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current workspace: %w", err)
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	return s.repo.FindInRange(ctx, workspaceId, from, to, direction)
}

func (s *ServiceImpl) SpendingHistory(ctx context.Context) ([]LedgerFact, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current workspace: %w", err)
	}
	from, to := s.window()
	outflow := DirectionOutflow
	return s.repo.FindInRange(ctx, workspaceId, from, to, &outflow)
}

func (s *ServiceImpl) EstimateMonthlyIncome(ctx context.Context) (int64, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current workspace: %w", err)
	}
	from, to := s.window()
	inflow := DirectionInflow
	facts, err := s.repo.FindInRange(ctx, workspaceId, from, to, &inflow)
	if err != nil {
		return 0, err
	}
	if len(facts) == 0 {
		log.Debugf("no inflow facts for workspace %d, falling back to default income %d", workspaceId, s.defaultMonthlyIncome)
		return s.defaultMonthlyIncome, nil
	}

	var total int64
	for _, fact := range facts {
		total += utils.Abs(fact.AmountCents)
	}
	// Average the window total down to one month (30-day months).
	return utils.RoundDiv(total*30, int64(s.windowDays)), nil
}

func (s *ServiceImpl) window() (time.Time, time.Time) {
	now := s.clock.Now()
	return now.AddDate(0, 0, -s.windowDays), now
}
