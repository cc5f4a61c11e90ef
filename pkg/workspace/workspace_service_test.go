package workspace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = NewStubWorkspaceRepo()

func setup(t *testing.T) (Service, func()) {
	return NewWorkspaceService(repoStub), func() {
		repoStub.Cleanup()
	}
}

func TestWorkspaceService_CreateFillsDefaults(t *testing.T) {
	service, teardown := setup(t)
	defer teardown()

	// when created with only a name
	created, err := service.Create(context.Background(), Workspace{Name: "Family"})

	// then a uid and currency are assigned
	require.NoError(t, err)
	assert.NotZero(t, created.Id)
	assert.NotEmpty(t, created.Uid)
	assert.Equal(t, "USD", created.Currency)
}

func TestWorkspaceService_GetCurrent(t *testing.T) {
	service, teardown := setup(t)
	defer teardown()

	// given a workspace in the context
	ws := Workspace{Id: 3, Uid: "ws-3", Name: "Family", Currency: "EUR"}
	ctx := WithWorkspace(context.Background(), ws)

	// when
	current, err := service.GetCurrent(ctx)

	// then
	require.NoError(t, err)
	assert.Equal(t, ws, current)
}

func TestWorkspaceService_GetCurrent_NoWorkspace(t *testing.T) {
	service, teardown := setup(t)
	defer teardown()

	_, err := service.GetCurrent(context.Background())
	assert.ErrorIs(t, err, ErrNoWorkspace)
}

func TestCurrentId(t *testing.T) {
	ctx := WithWorkspace(context.Background(), Workspace{Id: 9})

	id, err := CurrentId(ctx)
	require.NoError(t, err)
	assert.Equal(t, 9, id)

	_, err = CurrentId(context.Background())
	assert.ErrorIs(t, err, ErrNoWorkspace)
}
