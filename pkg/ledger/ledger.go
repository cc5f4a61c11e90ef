package ledger

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end date is before start date")

type Direction string

const (
	DirectionInflow  Direction = "inflow"
	DirectionOutflow Direction = "outflow"
)

// LedgerFact is an immutable record of a financial transaction as delivered
// by the banking aggregator. This service only ever reads ledger facts; it
// never creates, updates, or deletes them.
type LedgerFact struct {
	Id          string
	WorkspaceId int
	CategoryKey string
	// AmountCents is signed: outflows are negative, inflows positive.
	AmountCents int64
	Direction   Direction
	Posted      bool
	Date        time.Time
}
