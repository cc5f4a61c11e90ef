package override

import "errors"

var ErrOverrideNotFound = errors.New("transaction override not found")

// TransactionOverride pins a specific ledger transaction to a specific budget
// line regardless of the transaction's category key. At most one override is
// active per transaction per budget; creating a second one replaces the
// first.
type TransactionOverride struct {
	Id            int
	BudgetId      int
	BudgetLineId  int
	TransactionId string
	Reason        string
}
