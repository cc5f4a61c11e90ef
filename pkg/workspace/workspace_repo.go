package workspace

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Create(ctx context.Context, ws Workspace) (int, error)
	Get(ctx context.Context, id int) (Workspace, error)
	GetByUid(ctx context.Context, uid string) (Workspace, error)
	GetAll(ctx context.Context) ([]Workspace, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewWorkspaceRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Create(ctx context.Context, ws Workspace) (int, error) {
	query := `INSERT INTO workspace (uid, name, currency) VALUES ($1, $2, $3) RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, ws.Uid, ws.Name, ws.Currency).Scan(&id)
	if err != nil {
		log.Errorf("failed to create workspace: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) Get(ctx context.Context, id int) (Workspace, error) {
	query := `SELECT id, uid, name, currency FROM workspace WHERE id = $1`
	var ws Workspace
	err := r.db.QueryRow(ctx, query, id).Scan(&ws.Id, &ws.Uid, &ws.Name, &ws.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return Workspace{}, ErrWorkspaceNotFound
	}
	if err != nil {
		log.Errorf("failed to get workspace %d: %v", id, err)
		return Workspace{}, err
	}
	return ws, nil
}

func (r *RepoImpl) GetByUid(ctx context.Context, uid string) (Workspace, error) {
	query := `SELECT id, uid, name, currency FROM workspace WHERE uid = $1`
	var ws Workspace
	err := r.db.QueryRow(ctx, query, uid).Scan(&ws.Id, &ws.Uid, &ws.Name, &ws.Currency)
	if errors.Is(err, pgx.ErrNoRows) {
		return Workspace{}, ErrWorkspaceNotFound
	}
	if err != nil {
		log.Errorf("failed to get workspace by uid %s: %v", uid, err)
		return Workspace{}, err
	}
	return ws, nil
}

func (r *RepoImpl) GetAll(ctx context.Context) ([]Workspace, error) {
	query := `SELECT id, uid, name, currency FROM workspace ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to list workspaces: %v", err)
		return nil, err
	}
	defer rows.Close()

	var workspaces []Workspace
	for rows.Next() {
		var ws Workspace
		if err := rows.Scan(&ws.Id, &ws.Uid, &ws.Name, &ws.Currency); err != nil {
			log.Errorf("failed to scan workspace: %v", err)
			return nil, err
		}
		workspaces = append(workspaces, ws)
	}
	return workspaces, rows.Err()
}
