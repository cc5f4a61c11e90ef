package override

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// Store inserts the override, replacing any existing override for the
	// same transaction within the same budget.
	Store(ctx context.Context, workspaceId int, o TransactionOverride) (int, error)
	GetAllForBudget(ctx context.Context, workspaceId int, budgetId int) ([]TransactionOverride, error)
	Delete(ctx context.Context, workspaceId int, overrideId int) (bool, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewOverrideRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, workspaceId int, o TransactionOverride) (int, error) {
	query := `INSERT INTO transaction_override (budget_id, budget_line_id, transaction_uid, reason)
				SELECT $1, $2, $3, $4
				WHERE EXISTS (SELECT 1 FROM budget WHERE id = $1 AND workspace_id = $5)
				ON CONFLICT (budget_id, transaction_uid)
				DO UPDATE SET budget_line_id = EXCLUDED.budget_line_id, reason = EXCLUDED.reason
				RETURNING id`
	var id int
	err := r.db.QueryRow(ctx, query, o.BudgetId, o.BudgetLineId, o.TransactionId, o.Reason, workspaceId).Scan(&id)
	if err != nil {
		log.Errorf("failed to store transaction override: %v", err)
		return 0, err
	}
	return id, nil
}

func (r *RepoImpl) GetAllForBudget(ctx context.Context, workspaceId int, budgetId int) ([]TransactionOverride, error) {
	query := `SELECT o.id, o.budget_id, o.budget_line_id, o.transaction_uid, o.reason
				FROM transaction_override o JOIN budget b ON b.id = o.budget_id
				WHERE o.budget_id = $1 AND b.workspace_id = $2 ORDER BY o.id`
	rows, err := r.db.Query(ctx, query, budgetId, workspaceId)
	if err != nil {
		log.Errorf("failed to query transaction overrides: %v", err)
		return nil, err
	}
	defer rows.Close()

	var overrides []TransactionOverride
	for rows.Next() {
		var o TransactionOverride
		if err := rows.Scan(&o.Id, &o.BudgetId, &o.BudgetLineId, &o.TransactionId, &o.Reason); err != nil {
			log.Errorf("failed to scan transaction override: %v", err)
			return nil, err
		}
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}

func (r *RepoImpl) Delete(ctx context.Context, workspaceId int, overrideId int) (bool, error) {
	query := `DELETE FROM transaction_override
				WHERE id = $1 AND budget_id IN (SELECT id FROM budget WHERE workspace_id = $2)`
	tag, err := r.db.Exec(ctx, query, overrideId, workspaceId)
	if err != nil {
		log.Errorf("failed to delete transaction override %d: %v", overrideId, err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
