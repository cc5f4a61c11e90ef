package workspace

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const WorkspaceKey contextKey = "workspace"

var ErrNoWorkspace = errors.New("workspace not found in context")

// CurrentId retrieves the current workspace's ID from the context.
// Returns ErrNoWorkspace if no workspace is present.
func CurrentId(ctx context.Context) (int, error) {
	ws, ok := ctx.Value(WorkspaceKey).(Workspace)
	if !ok {
		log.Trace("workspace not found in context")
		return 0, ErrNoWorkspace
	}
	return ws.Id, nil
}

func Current(ctx context.Context) (Workspace, error) {
	ws, ok := ctx.Value(WorkspaceKey).(Workspace)
	if !ok {
		log.Trace("workspace not found in context")
		return Workspace{}, ErrNoWorkspace
	}
	return ws, nil
}

func WithWorkspace(ctx context.Context, ws Workspace) context.Context {
	return context.WithValue(ctx, WorkspaceKey, ws)
}
