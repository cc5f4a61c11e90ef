package ledger

import "github.com/clearpiggy/clearpiggy/internal/utils"

// AggregateByCategory sums the absolute amounts of the given facts per
// category key. Categories with no facts are absent from the map, not
// zero-valued: callers treat "missing" (no history) and "zero" (confirmed no
// spend) differently.
func AggregateByCategory(facts []LedgerFact) map[string]int64 {
	totals := make(map[string]int64, len(facts))
	for _, fact := range facts {
		totals[fact.CategoryKey] += utils.Abs(fact.AmountCents)
	}
	return totals
}
