package performance

import (
	"time"

	"github.com/clearpiggy/clearpiggy/internal/utils"
	"github.com/clearpiggy/clearpiggy/pkg/budget"
	"github.com/clearpiggy/clearpiggy/pkg/ledger"
	"github.com/clearpiggy/clearpiggy/pkg/override"
)

// onTrackTolerancePoints is how many percentage points actual utilization may
// run ahead of the elapsed-time pace before a budget counts as off track.
const onTrackTolerancePoints = 5.0

// Reconcile attributes ledger facts to budget lines and produces per-line
// and aggregate performance. It is a pure function of its inputs and never
// mutates budget state.
//
// A fact is attributed to a line when an override pins that transaction to
// the line, or else when the fact's category key equals the line's key
// exactly. Only posted outflow facts dated inside the budget's inclusive
// period count as spend.
func Reconcile(
	b budget.Budget,
	lines []budget.BudgetLine,
	facts []ledger.LedgerFact,
	overrides []override.TransactionOverride,
	asOf time.Time,
) BudgetPerformance {
	pinnedLine := make(map[string]int, len(overrides))
	for _, o := range overrides {
		if o.BudgetId == b.Id {
			pinnedLine[o.TransactionId] = o.BudgetLineId
		}
	}

	lineIdx := make(map[int]int, len(lines))
	categoryIdx := make(map[string]int, len(lines))
	perLine := make([]LinePerformance, len(lines))
	for i, line := range lines {
		perLine[i] = LinePerformance{Line: line}
		lineIdx[line.Id] = i
		categoryIdx[line.CategoryKey] = i
	}

	for _, fact := range facts {
		if !fact.Posted || fact.Direction != ledger.DirectionOutflow {
			continue
		}
		if !b.ContainsDate(fact.Date) {
			continue
		}
		idx := -1
		if lineId, pinned := pinnedLine[fact.Id]; pinned {
			if i, ok := lineIdx[lineId]; ok {
				idx = i
			}
		} else if i, ok := categoryIdx[fact.CategoryKey]; ok {
			idx = i
		}
		if idx < 0 {
			continue
		}
		perLine[idx].SpentCents += utils.Abs(fact.AmountCents)
	}

	summary := PerformanceSummary{}
	for i := range perLine {
		perLine[i].RemainingCents = perLine[i].Line.BudgetedCents - perLine[i].SpentCents
		perLine[i].OverBudget = perLine[i].SpentCents > perLine[i].Line.BudgetedCents

		summary.TotalBudgetedCents += perLine[i].Line.BudgetedCents
		summary.TotalSpentCents += perLine[i].SpentCents
		if perLine[i].OverBudget {
			summary.CategoriesOverBudget++
		}
	}
	summary.TotalRemainingCents = summary.TotalBudgetedCents - summary.TotalSpentCents
	if summary.TotalBudgetedCents > 0 {
		summary.UtilizationPct = float64(summary.TotalSpentCents) / float64(summary.TotalBudgetedCents) * 100
	}
	summary.ExpectedUtilizationPct = expectedUtilization(b, asOf)
	summary.OnTrack = summary.UtilizationPct <= summary.ExpectedUtilizationPct+onTrackTolerancePoints

	return BudgetPerformance{Budget: b, PerLine: perLine, Summary: summary}
}

// expectedUtilization is daysElapsed/totalDays as a percentage, with both
// period bounds inclusive and elapsed days clamped to the period.
func expectedUtilization(b budget.Budget, asOf time.Time) float64 {
	totalDays := int(b.EndDate.Sub(b.StartDate).Hours()/24) + 1
	if totalDays <= 0 {
		return 0
	}
	elapsed := int(asOf.Sub(b.StartDate).Hours()/24) + 1
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > totalDays {
		elapsed = totalDays
	}
	return float64(elapsed) / float64(totalDays) * 100
}
