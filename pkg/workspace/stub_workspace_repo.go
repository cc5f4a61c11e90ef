package workspace

import (
	"context"
)

type StubWorkspaceRepo struct {
	nextId int
	data   map[int]Workspace
}

func NewStubWorkspaceRepo() *StubWorkspaceRepo {
	return &StubWorkspaceRepo{nextId: 0, data: map[int]Workspace{}}
}

func (s *StubWorkspaceRepo) Create(ctx context.Context, ws Workspace) (int, error) {
	s.nextId++
	ws.Id = s.nextId
	s.data[ws.Id] = ws
	return ws.Id, nil
}

func (s *StubWorkspaceRepo) Get(ctx context.Context, id int) (Workspace, error) {
	ws, ok := s.data[id]
	if !ok {
		return Workspace{}, ErrWorkspaceNotFound
	}
	return ws, nil
}

func (s *StubWorkspaceRepo) GetByUid(ctx context.Context, uid string) (Workspace, error) {
	for _, ws := range s.data {
		if ws.Uid == uid {
			return ws, nil
		}
	}
	return Workspace{}, ErrWorkspaceNotFound
}

func (s *StubWorkspaceRepo) GetAll(ctx context.Context) ([]Workspace, error) {
	workspaces := make([]Workspace, 0, len(s.data))
	for _, ws := range s.data {
		workspaces = append(workspaces, ws)
	}
	return workspaces, nil
}

func (s *StubWorkspaceRepo) Cleanup() {
	s.data = map[int]Workspace{}
}
