package budget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Create(ctx context.Context, workspaceId int, budget Budget, lines []BudgetLine) (Budget, error)
	Get(ctx context.Context, workspaceId int, budgetId int) (Budget, error)
	GetAll(ctx context.Context, workspaceId int, includeInactive bool) ([]Budget, error)
	GetActive(ctx context.Context, workspaceId int) (Budget, error)
	GetLines(ctx context.Context, workspaceId int, budgetId int) ([]BudgetLine, error)
	Update(ctx context.Context, workspaceId int, budget Budget) (bool, error)
	UpdateLineAmount(ctx context.Context, workspaceId int, lineId int, amountCents int64) (bool, error)
	Delete(ctx context.Context, workspaceId int, budgetId int) (bool, error)
	// ApplyConversion persists a strategy conversion atomically: every line's
	// new amount, the budget's total and strategy tag, and the audit record
	// commit together or not at all. A per-budget advisory lock serializes
	// concurrent conversions of the same budget.
	ApplyConversion(ctx context.Context, workspaceId int, budgetId int, newStrategy Strategy, changeSet ChangeSet, record StrategyChange) error
	// StrategyHistory returns the budget's conversion audit trail, newest
	// first.
	StrategyHistory(ctx context.Context, workspaceId int, budgetId int) ([]StrategyChange, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewBudgetRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Create(ctx context.Context, workspaceId int, budget Budget, lines []BudgetLine) (Budget, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Budget{}, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if budget.Active {
		if _, err := tx.Exec(ctx, `UPDATE budget SET active = false WHERE workspace_id = $1 AND active`, workspaceId); err != nil {
			log.Errorf("failed to deactivate previous budgets: %v", err)
			return Budget{}, err
		}
	}

	var total int64
	for _, line := range lines {
		total += line.BudgetedCents
	}
	budget.TotalCents = total

	query := `INSERT INTO budget (workspace_id, name, start_date, end_date, strategy, total_cents, active)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err = tx.QueryRow(ctx, query,
		workspaceId,
		budget.Name,
		budget.StartDate,
		budget.EndDate,
		string(budget.Strategy),
		budget.TotalCents,
		budget.Active,
	).Scan(&budget.Id)
	if err != nil {
		log.Errorf("failed to create budget: %v", err)
		return Budget{}, err
	}
	budget.WorkspaceId = workspaceId

	for _, line := range lines {
		err := tx.QueryRow(ctx,
			`INSERT INTO budget_line (budget_id, category_key, budgeted_cents) VALUES ($1, $2, $3) RETURNING id`,
			budget.Id, line.CategoryKey, line.BudgetedCents,
		).Scan(&line.Id)
		if err != nil {
			log.Errorf("failed to create budget line: %v", err)
			return Budget{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Budget{}, fmt.Errorf("could not commit budget creation: %w", err)
	}
	return budget, nil
}

func (r *RepoImpl) Get(ctx context.Context, workspaceId int, budgetId int) (Budget, error) {
	query := `SELECT id, workspace_id, name, start_date, end_date, strategy, total_cents, active
				FROM budget WHERE id = $1 AND workspace_id = $2`
	budget, err := scanBudget(r.db.QueryRow(ctx, query, budgetId, workspaceId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	}
	if err != nil {
		log.Errorf("failed to get budget %d: %v", budgetId, err)
		return Budget{}, err
	}
	return budget, nil
}

func (r *RepoImpl) GetActive(ctx context.Context, workspaceId int) (Budget, error) {
	query := `SELECT id, workspace_id, name, start_date, end_date, strategy, total_cents, active
				FROM budget WHERE workspace_id = $1 AND active`
	budget, err := scanBudget(r.db.QueryRow(ctx, query, workspaceId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, ErrNoActiveBudget
	}
	if err != nil {
		log.Errorf("failed to get active budget for workspace %d: %v", workspaceId, err)
		return Budget{}, err
	}
	return budget, nil
}

func (r *RepoImpl) GetAll(ctx context.Context, workspaceId int, includeInactive bool) ([]Budget, error) {
	query := `SELECT id, workspace_id, name, start_date, end_date, strategy, total_cents, active
				FROM budget WHERE workspace_id = $1`
	if !includeInactive {
		query += ` AND active`
	}
	query += ` ORDER BY start_date DESC, id DESC`

	rows, err := r.db.Query(ctx, query, workspaceId)
	if err != nil {
		log.Errorf("failed to query budgets: %v", err)
		return nil, err
	}
	defer rows.Close()

	var budgets []Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			log.Errorf("failed to scan budget: %v", err)
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

func (r *RepoImpl) GetLines(ctx context.Context, workspaceId int, budgetId int) ([]BudgetLine, error) {
	query := `SELECT l.id, l.budget_id, l.category_key, l.budgeted_cents
				FROM budget_line l JOIN budget b ON b.id = l.budget_id
				WHERE l.budget_id = $1 AND b.workspace_id = $2 ORDER BY l.id`
	rows, err := r.db.Query(ctx, query, budgetId, workspaceId)
	if err != nil {
		log.Errorf("failed to query budget lines: %v", err)
		return nil, err
	}
	defer rows.Close()

	var lines []BudgetLine
	for rows.Next() {
		var line BudgetLine
		if err := rows.Scan(&line.Id, &line.BudgetId, &line.CategoryKey, &line.BudgetedCents); err != nil {
			log.Errorf("failed to scan budget line: %v", err)
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *RepoImpl) Update(ctx context.Context, workspaceId int, budget Budget) (bool, error) {
	query := `UPDATE budget SET name = $1, start_date = $2, end_date = $3, active = $4
				WHERE id = $5 AND workspace_id = $6`
	tag, err := r.db.Exec(ctx, query,
		budget.Name,
		budget.StartDate,
		budget.EndDate,
		budget.Active,
		budget.Id,
		workspaceId,
	)
	if err != nil {
		log.Errorf("failed to update budget %d: %v", budget.Id, err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) UpdateLineAmount(ctx context.Context, workspaceId int, lineId int, amountCents int64) (bool, error) {
	query := `UPDATE budget_line SET budgeted_cents = $1
				WHERE id = $2 AND budget_id IN (SELECT id FROM budget WHERE workspace_id = $3)`
	tag, err := r.db.Exec(ctx, query, amountCents, lineId, workspaceId)
	if err != nil {
		log.Errorf("failed to update budget line %d: %v", lineId, err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, workspaceId int, budgetId int) (bool, error) {
	// budget_line rows cascade with the budget
	tag, err := r.db.Exec(ctx, `DELETE FROM budget WHERE id = $1 AND workspace_id = $2`, budgetId, workspaceId)
	if err != nil {
		log.Errorf("failed to delete budget %d: %v", budgetId, err)
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RepoImpl) ApplyConversion(
	ctx context.Context,
	workspaceId int,
	budgetId int,
	newStrategy Strategy,
	changeSet ChangeSet,
	record StrategyChange,
) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize conversions of the same budget. The lock is released when the
	// transaction ends.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(budgetId)); err != nil {
		return fmt.Errorf("could not acquire budget lock: %w", err)
	}

	for _, change := range changeSet.Changes {
		tag, err := tx.Exec(ctx,
			`UPDATE budget_line SET budgeted_cents = $1
				WHERE budget_id = $2 AND category_key = $3`,
			change.NewAmountCents, budgetId, change.CategoryKey,
		)
		if err != nil {
			log.Errorf("failed to update budget line %q: %v", change.CategoryKey, err)
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("budget line %q not found during conversion", change.CategoryKey)
		}
	}

	tag, err := tx.Exec(ctx,
		`UPDATE budget SET strategy = $1, total_cents = $2 WHERE id = $3 AND workspace_id = $4`,
		string(newStrategy), changeSet.TotalNewBudgetCents, budgetId, workspaceId,
	)
	if err != nil {
		log.Errorf("failed to update budget totals: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBudgetNotFound
	}

	notes, err := json.Marshal(record.Notes)
	if err != nil {
		return fmt.Errorf("could not serialize conversion notes: %w", err)
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO budget_strategy_change (uid, budget_id, old_strategy, new_strategy, actor_id, created_at, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		record.Uid,
		budgetId,
		string(record.OldStrategy),
		string(record.NewStrategy),
		record.ActorId,
		record.CreatedAt,
		notes,
	)
	if err != nil {
		log.Errorf("failed to append strategy change record: %v", err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("could not commit conversion: %w", err)
	}
	return nil
}

func (r *RepoImpl) StrategyHistory(ctx context.Context, workspaceId int, budgetId int) ([]StrategyChange, error) {
	query := `SELECT c.uid, c.budget_id, c.old_strategy, c.new_strategy, c.actor_id, c.created_at, c.notes
				FROM budget_strategy_change c JOIN budget b ON b.id = c.budget_id
				WHERE c.budget_id = $1 AND b.workspace_id = $2
				ORDER BY c.created_at DESC, c.uid DESC`
	rows, err := r.db.Query(ctx, query, budgetId, workspaceId)
	if err != nil {
		log.Errorf("failed to query strategy history: %v", err)
		return nil, err
	}
	defer rows.Close()

	var history []StrategyChange
	for rows.Next() {
		var record StrategyChange
		var notes []byte
		if err := rows.Scan(
			&record.Uid,
			&record.BudgetId,
			&record.OldStrategy,
			&record.NewStrategy,
			&record.ActorId,
			&record.CreatedAt,
			&notes,
		); err != nil {
			log.Errorf("failed to scan strategy change: %v", err)
			return nil, err
		}
		if err := json.Unmarshal(notes, &record.Notes); err != nil {
			log.Errorf("failed to parse conversion notes: %v", err)
			return nil, err
		}
		history = append(history, record)
	}
	return history, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBudget(row rowScanner) (Budget, error) {
	var budget Budget
	var strategy string
	err := row.Scan(
		&budget.Id,
		&budget.WorkspaceId,
		&budget.Name,
		&budget.StartDate,
		&budget.EndDate,
		&strategy,
		&budget.TotalCents,
		&budget.Active,
	)
	if err != nil {
		return Budget{}, err
	}
	budget.Strategy = Strategy(strategy)
	return budget, nil
}
