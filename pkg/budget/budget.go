package budget

import (
	"errors"
	"time"
)

var (
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrNoActiveBudget  = errors.New("no active budget for workspace")
	ErrInvalidPeriod   = errors.New("budget end date is before start date")
	ErrInvalidStrategy = errors.New("unknown budget strategy")
	ErrNegativeAmount  = errors.New("budgeted amount must not be negative")
)

// Strategy is the allocation methodology governing how budgeted amounts are
// computed.
type Strategy string

const (
	StrategyEnvelope  Strategy = "envelope"
	Strategy503020    Strategy = "50_30_20"
	StrategyZeroBased Strategy = "zero_based"
	StrategyCustom    Strategy = "custom"
)

func (s Strategy) Valid() bool {
	switch s {
	case StrategyEnvelope, Strategy503020, StrategyZeroBased, StrategyCustom:
		return true
	}
	return false
}

// Budget is a named spending plan over an inclusive date period, composed of
// budget lines. Exactly one budget is active per workspace at a time.
type Budget struct {
	Id          int
	WorkspaceId int
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	Strategy    Strategy
	// TotalCents is the sum of the budget's line amounts. The conversion
	// path keeps it exactly equal to that sum.
	TotalCents int64
	Active     bool
}

func (b Budget) Validate() error {
	if b.EndDate.Before(b.StartDate) {
		return ErrInvalidPeriod
	}
	if !b.Strategy.Valid() {
		return ErrInvalidStrategy
	}
	return nil
}

// ContainsDate reports whether the calendar date falls inside the budget's
// inclusive [start, end] period.
func (b Budget) ContainsDate(date time.Time) bool {
	return !date.Before(b.StartDate) && !date.After(b.EndDate)
}

// BudgetLine is one category's allocated amount within a budget. Lines are
// owned by their budget and deleted with it.
type BudgetLine struct {
	Id            int
	BudgetId      int
	CategoryKey   string
	BudgetedCents int64
}

// LineChange is one category's amount change produced by a strategy
// conversion.
type LineChange struct {
	CategoryKey    string `json:"categoryKey"`
	OldAmountCents int64  `json:"oldAmountCents"`
	NewAmountCents int64  `json:"newAmountCents"`
	DeltaCents     int64  `json:"deltaCents"`
}

// ChangeSet is the ordered list of per-category changes produced by a
// strategy conversion. TotalNewBudgetCents is the exact sum of the rounded
// per-line new amounts, never recomputed from allocation pools.
type ChangeSet struct {
	Changes             []LineChange `json:"changes"`
	TotalNewBudgetCents int64        `json:"totalNewBudgetCents"`
}

// ConversionNotes is the opaque payload stored on a strategy change record
// for replay and debugging.
type ConversionNotes struct {
	MonthlyIncomeCents int64     `json:"monthlyIncomeCents"`
	ChangeSet          ChangeSet `json:"changeSet"`
}

// StrategyChange is the append-only audit record written once per successful
// conversion. It is never mutated or deleted.
type StrategyChange struct {
	Uid         string
	BudgetId    int
	OldStrategy Strategy
	NewStrategy Strategy
	ActorId     string
	CreatedAt   time.Time
	Notes       ConversionNotes
}
