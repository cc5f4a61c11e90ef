package ledger

import (
	"context"
	"time"
)

type StubLedgerRepo struct {
	facts []LedgerFact
}

func NewStubLedgerRepo() *StubLedgerRepo {
	return &StubLedgerRepo{}
}

func (s *StubLedgerRepo) AddFact(fact LedgerFact) {
	s.facts = append(s.facts, fact)
}

func (s *StubLedgerRepo) FindInRange(ctx context.Context, workspaceId int, from, to time.Time, direction *Direction) ([]LedgerFact, error) {
	var found []LedgerFact
	for _, fact := range s.facts {
		if fact.WorkspaceId != workspaceId || !fact.Posted {
			continue
		}
		if fact.Date.Before(from) || fact.Date.After(to) {
			continue
		}
		if direction != nil && fact.Direction != *direction {
			continue
		}
		found = append(found, fact)
	}
	return found, nil
}

func (s *StubLedgerRepo) Cleanup() {
	s.facts = nil
}
