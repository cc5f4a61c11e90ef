package performance

import (
	"github.com/clearpiggy/clearpiggy/pkg/budget"
)

// LinePerformance compares one budget line's allocation against its actual
// attributed spend for the budget period.
type LinePerformance struct {
	Line           budget.BudgetLine
	SpentCents     int64
	RemainingCents int64
	OverBudget     bool
}

// PerformanceSummary is the workspace-level aggregate over all lines of a
// budget.
type PerformanceSummary struct {
	TotalBudgetedCents   int64
	TotalSpentCents      int64
	TotalRemainingCents  int64
	CategoriesOverBudget int
	// UtilizationPct is spent/budgeted as a percentage, 0 when nothing is
	// budgeted.
	UtilizationPct float64
	// ExpectedUtilizationPct is the pace implied by how much of the budget
	// period has elapsed.
	ExpectedUtilizationPct float64
	// OnTrack uses the time-aware pacing rule: actual utilization may run at
	// most five points ahead of the elapsed-days pace.
	OnTrack bool
}

type BudgetPerformance struct {
	Budget  budget.Budget
	PerLine []LinePerformance
	Summary PerformanceSummary
}
