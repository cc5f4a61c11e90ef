package workspace

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	GetCurrent(ctx context.Context) (Workspace, error)
	GetByUid(ctx context.Context, uid string) (Workspace, error)
	Create(ctx context.Context, ws Workspace) (Workspace, error)
	GetAll(ctx context.Context) ([]Workspace, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewWorkspaceService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetCurrent(ctx context.Context) (Workspace, error) {
	ws, err := Current(ctx)
	if err != nil {
		return Workspace{}, fmt.Errorf("failed to get current workspace: %w", err)
	}
	return ws, nil
}

func (s *ServiceImpl) GetByUid(ctx context.Context, uid string) (Workspace, error) {
	return s.repo.GetByUid(ctx, uid)
}

func (s *ServiceImpl) Create(ctx context.Context, ws Workspace) (Workspace, error) {
	if ws.Uid == "" {
		ws.Uid = uuid.NewString()
	}
	if ws.Currency == "" {
		ws.Currency = "USD"
	}
	id, err := s.repo.Create(ctx, ws)
	if err != nil {
		return Workspace{}, err
	}
	ws.Id = id
	return ws, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Workspace, error) {
	return s.repo.GetAll(ctx)
}
