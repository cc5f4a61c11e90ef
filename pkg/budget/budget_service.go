package budget

import (
	"context"
	"fmt"

	"github.com/clearpiggy/clearpiggy/pkg/workspace"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, budget Budget, lines []BudgetLine) (Budget, error)
	Get(ctx context.Context, budgetId int) (Budget, error)
	GetWithLines(ctx context.Context, budgetId int) (Budget, []BudgetLine, error)
	GetAll(ctx context.Context, includeInactive bool) ([]Budget, error)
	GetActive(ctx context.Context) (Budget, error)
	Update(ctx context.Context, budget Budget) (bool, error)
	SetLineAmount(ctx context.Context, lineId int, amountCents int64) (bool, error)
	Delete(ctx context.Context, budgetId int) (bool, error)
	StrategyHistory(ctx context.Context, budgetId int) ([]StrategyChange, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewBudgetService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, budget Budget, lines []BudgetLine) (Budget, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current workspace: %w", err)
	}
	if budget.Strategy == "" {
		budget.Strategy = StrategyEnvelope
	}
	if err := budget.Validate(); err != nil {
		return Budget{}, err
	}
	for _, line := range lines {
		if line.BudgetedCents < 0 {
			return Budget{}, ErrNegativeAmount
		}
	}
	return s.repo.Create(ctx, workspaceId, budget, lines)
}

func (s *ServiceImpl) Get(ctx context.Context, budgetId int) (Budget, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current workspace: %w", err)
	}
	return s.repo.Get(ctx, workspaceId, budgetId)
}

func (s *ServiceImpl) GetWithLines(ctx context.Context, budgetId int) (Budget, []BudgetLine, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return Budget{}, nil, fmt.Errorf("failed to get current workspace: %w", err)
	}
	budget, err := s.repo.Get(ctx, workspaceId, budgetId)
	if err != nil {
		return Budget{}, nil, err
	}
	lines, err := s.repo.GetLines(ctx, workspaceId, budgetId)
	if err != nil {
		return Budget{}, nil, err
	}
	return budget, lines, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context, includeInactive bool) ([]Budget, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current workspace: %w", err)
	}
	return s.repo.GetAll(ctx, workspaceId, includeInactive)
}

func (s *ServiceImpl) GetActive(ctx context.Context) (Budget, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("failed to get current workspace: %w", err)
	}
	return s.repo.GetActive(ctx, workspaceId)
}

func (s *ServiceImpl) Update(ctx context.Context, budget Budget) (bool, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current workspace: %w", err)
	}
	if budget.EndDate.Before(budget.StartDate) {
		return false, ErrInvalidPeriod
	}
	updated, err := s.repo.Update(ctx, workspaceId, budget)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("budget %d not updated, it may not exist in workspace %d", budget.Id, workspaceId)
		return false, ErrBudgetNotFound
	}
	return true, nil
}

// SetLineAmount is the direct user-edit path for a single line. Strategy
// conversions go through the conversion service instead.
func (s *ServiceImpl) SetLineAmount(ctx context.Context, lineId int, amountCents int64) (bool, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current workspace: %w", err)
	}
	if amountCents < 0 {
		return false, ErrNegativeAmount
	}
	return s.repo.UpdateLineAmount(ctx, workspaceId, lineId, amountCents)
}

func (s *ServiceImpl) Delete(ctx context.Context, budgetId int) (bool, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current workspace: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, workspaceId, budgetId)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("budget %d not deleted, it may not exist in workspace %d", budgetId, workspaceId)
		return false, ErrBudgetNotFound
	}
	return true, nil
}

func (s *ServiceImpl) StrategyHistory(ctx context.Context, budgetId int) ([]StrategyChange, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current workspace: %w", err)
	}
	if _, err := s.repo.Get(ctx, workspaceId, budgetId); err != nil {
		return nil, err
	}
	return s.repo.StrategyHistory(ctx, workspaceId, budgetId)
}
