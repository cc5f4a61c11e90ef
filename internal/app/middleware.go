package app

import (
	"errors"
	"net/http"

	"github.com/clearpiggy/clearpiggy/internal/config"
	"github.com/clearpiggy/clearpiggy/pkg/workspace"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Propagate X-Workspace-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			workspaceUid := req.Header.Get("X-Workspace-Id")
			ctx := req.Context()

			if workspaceUid != "" {
				ws, err := deps.WorkspaceService.GetByUid(ctx, workspaceUid)
				if err != nil {
					if errors.Is(err, workspace.ErrWorkspaceNotFound) {
						log.Debugf("workspace not found: %s", workspaceUid)
						http.Error(w, "workspace not found", http.StatusForbidden)
						return
					}
					log.Errorf("failed to get workspace: %v", err)
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				ctx = workspace.WithWorkspace(ctx, ws)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
