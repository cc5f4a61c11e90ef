// Package strategy computes budget allocations for the supported budgeting
// methodologies and orchestrates strategy conversions.
package strategy

import (
	"github.com/clearpiggy/clearpiggy/internal/utils"
	"github.com/clearpiggy/clearpiggy/pkg/budget"
	"github.com/clearpiggy/clearpiggy/pkg/category"
)

// noHistoryFloorCents stands in for the historical-spend weight of a category
// with no ledger history at all when distributing a 50/30/20 pool. A category
// with confirmed zero spend keeps its zero weight; only truly absent history
// gets the floor.
const noHistoryFloorCents = 10_000

// Allocate computes the new budgeted amount for every line under the target
// strategy. categorySpending maps category key to total outflow over the
// trailing window (absent means no history, not zero). All amounts are
// integer cents and every division is rounded half-up before it feeds any
// subsequent sum; TotalNewBudgetCents is the exact sum of the rounded
// per-line amounts.
//
// An empty line slice yields an empty change set with total 0.
func Allocate(target budget.Strategy, lines []budget.BudgetLine, categorySpending map[string]int64, monthlyIncomeCents int64) budget.ChangeSet {
	if len(lines) == 0 {
		return budget.ChangeSet{Changes: []budget.LineChange{}}
	}

	newAmounts := make([]int64, len(lines))
	switch target {
	case budget.Strategy503020:
		allocate503020(lines, categorySpending, monthlyIncomeCents, newAmounts)
	case budget.StrategyZeroBased:
		for i, line := range lines {
			newAmounts[i] = utils.RoundDiv(categorySpending[line.CategoryKey], 3)
		}
	case budget.StrategyEnvelope:
		for i, line := range lines {
			if line.BudgetedCents != 0 {
				newAmounts[i] = line.BudgetedCents
			} else {
				// A zeroed envelope (e.g. fresh from a zero_based
				// conversion) is restored to one month's average spend plus
				// a 10% buffer.
				newAmounts[i] = monthlyWithBuffer(categorySpending[line.CategoryKey])
			}
		}
	default:
		// custom keeps whatever the user has; only the strategy tag moves.
		for i, line := range lines {
			newAmounts[i] = line.BudgetedCents
		}
	}

	changeSet := budget.ChangeSet{Changes: make([]budget.LineChange, 0, len(lines))}
	for i, line := range lines {
		changeSet.Changes = append(changeSet.Changes, budget.LineChange{
			CategoryKey:    line.CategoryKey,
			OldAmountCents: line.BudgetedCents,
			NewAmountCents: newAmounts[i],
			DeltaCents:     newAmounts[i] - line.BudgetedCents,
		})
		changeSet.TotalNewBudgetCents += newAmounts[i]
	}
	return changeSet
}

func allocate503020(lines []budget.BudgetLine, categorySpending map[string]int64, incomeCents int64, newAmounts []int64) {
	pools := map[category.Bucket]int64{
		category.BucketNeeds:   utils.RoundDiv(incomeCents*50, 100),
		category.BucketWants:   utils.RoundDiv(incomeCents*30, 100),
		category.BucketSavings: utils.RoundDiv(incomeCents*20, 100),
	}

	buckets := make([]category.Bucket, len(lines))
	weights := make([]int64, len(lines))
	weightSums := map[category.Bucket]int64{}
	for i, line := range lines {
		buckets[i] = category.Classify(line.CategoryKey)
		weight, ok := categorySpending[line.CategoryKey]
		if !ok {
			weight = noHistoryFloorCents
		}
		weights[i] = weight
		weightSums[buckets[i]] += weight
	}

	for i, line := range lines {
		bucket := buckets[i]
		var amount int64
		if weightSums[bucket] > 0 {
			amount = utils.RoundDiv(pools[bucket]*weights[i], weightSums[bucket])
		}
		if bucket == category.BucketNeeds {
			// Needs are never funded below near-historical necessity, even
			// when the proportional split would underfund them.
			if floor := monthlyWithBuffer(categorySpending[line.CategoryKey]); amount < floor {
				amount = floor
			}
		}
		newAmounts[i] = amount
	}
}

// monthlyWithBuffer turns a 90-day spend total into one month's average plus
// a 10% buffer: round(spend / 3 * 1.1).
func monthlyWithBuffer(windowSpendCents int64) int64 {
	return utils.RoundDiv(windowSpendCents*11, 30)
}
