package ledger

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	// FindInRange returns posted transactions for the workspace with a date
	// inside [from, to]. Pending transactions never surface here. A nil
	// direction returns both inflows and outflows.
	FindInRange(ctx context.Context, workspaceId int, from, to time.Time, direction *Direction) ([]LedgerFact, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewLedgerRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) FindInRange(ctx context.Context, workspaceId int, from, to time.Time, direction *Direction) ([]LedgerFact, error) {
	query := `SELECT uid, workspace_id, category_key, amount_cents, direction, posted, transaction_date
				FROM ledger_transaction
				WHERE workspace_id = $1 AND posted AND transaction_date >= $2 AND transaction_date <= $3`
	args := []any{workspaceId, from.Format("2006-01-02"), to.Format("2006-01-02")}
	if direction != nil {
		query += ` AND direction = $4`
		args = append(args, string(*direction))
	}
	query += ` ORDER BY transaction_date, uid`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Errorf("failed to query ledger transactions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var facts []LedgerFact
	for rows.Next() {
		var fact LedgerFact
		if err := rows.Scan(
			&fact.Id,
			&fact.WorkspaceId,
			&fact.CategoryKey,
			&fact.AmountCents,
			&fact.Direction,
			&fact.Posted,
			&fact.Date,
		); err != nil {
			log.Errorf("failed to scan ledger transaction: %v", err)
			return nil, err
		}
		facts = append(facts, fact)
	}
	return facts, rows.Err()
}
