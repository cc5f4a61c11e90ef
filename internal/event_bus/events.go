package event_bus

import "time"

const (
	// TransactionPostedEvent fires when a new ledger transaction has been
	// ingested for a workspace. Subscribers recompute derived state (budget
	// performance) on a debounced schedule.
	TransactionPostedEvent EventType = "ledger.transaction_posted"

	// StrategyConvertedEvent fires after a budget strategy conversion has
	// been committed.
	StrategyConvertedEvent EventType = "budget.strategy_converted"
)

type TransactionPosted struct {
	WorkspaceID   int
	TransactionID string
	CategoryKey   string
	AmountCents   int64
	Date          time.Time
}

type StrategyConverted struct {
	WorkspaceID int
	BudgetID    int
	OldStrategy string
	NewStrategy string
	TotalCents  int64
}
