package override

import (
	"context"
	"fmt"

	"github.com/clearpiggy/clearpiggy/pkg/workspace"
)

type Service interface {
	Create(ctx context.Context, o TransactionOverride) (TransactionOverride, error)
	GetAllForBudget(ctx context.Context, budgetId int) ([]TransactionOverride, error)
	Delete(ctx context.Context, overrideId int) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewOverrideService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Create(ctx context.Context, o TransactionOverride) (TransactionOverride, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return TransactionOverride{}, fmt.Errorf("failed to get current workspace: %w", err)
	}
	id, err := s.repo.Store(ctx, workspaceId, o)
	if err != nil {
		return TransactionOverride{}, err
	}
	o.Id = id
	return o, nil
}

func (s *ServiceImpl) GetAllForBudget(ctx context.Context, budgetId int) ([]TransactionOverride, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current workspace: %w", err)
	}
	return s.repo.GetAllForBudget(ctx, workspaceId, budgetId)
}

func (s *ServiceImpl) Delete(ctx context.Context, overrideId int) (bool, error) {
	workspaceId, err := workspace.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current workspace: %w", err)
	}
	deleted, err := s.repo.Delete(ctx, workspaceId, overrideId)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, ErrOverrideNotFound
	}
	return true, nil
}
