package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAggregateByCategory(t *testing.T) {
	// given outflows stored as negative amounts
	day := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	facts := []LedgerFact{
		{Id: "t1", CategoryKey: "RENT", AmountCents: -150_000, Direction: DirectionOutflow, Posted: true, Date: day},
		{Id: "t2", CategoryKey: "DINING", AmountCents: -4_500, Direction: DirectionOutflow, Posted: true, Date: day},
		{Id: "t3", CategoryKey: "DINING", AmountCents: -5_500, Direction: DirectionOutflow, Posted: true, Date: day},
	}

	// when
	totals := AggregateByCategory(facts)

	// then amounts are summed at absolute value
	assert.Equal(t, int64(150_000), totals["RENT"])
	assert.Equal(t, int64(10_000), totals["DINING"])
}

func TestAggregateByCategory_MissingIsAbsentNotZero(t *testing.T) {
	// given
	totals := AggregateByCategory([]LedgerFact{
		{Id: "t1", CategoryKey: "RENT", AmountCents: -1, Date: time.Now()},
	})

	// then a category with no facts does not appear in the map at all
	_, present := totals["GROCERIES"]
	assert.False(t, present)
	assert.Len(t, totals, 1)
}

func TestAggregateByCategory_Empty(t *testing.T) {
	totals := AggregateByCategory(nil)
	assert.Empty(t, totals)
}
