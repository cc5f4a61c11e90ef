package workspace

import "errors"

var ErrWorkspaceNotFound = errors.New("workspace not found")

// Workspace is the tenant boundary. All financial data is scoped to exactly
// one workspace.
type Workspace struct {
	Id       int
	Uid      string
	Name     string
	Currency string
}
