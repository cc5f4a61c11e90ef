package override

import (
	"context"
)

type StubOverrideRepo struct {
	nextId int
	data   map[int]TransactionOverride
}

func NewStubOverrideRepo() *StubOverrideRepo {
	return &StubOverrideRepo{data: map[int]TransactionOverride{}}
}

func (s *StubOverrideRepo) Store(ctx context.Context, workspaceId int, o TransactionOverride) (int, error) {
	for id, existing := range s.data {
		if existing.BudgetId == o.BudgetId && existing.TransactionId == o.TransactionId {
			o.Id = id
			s.data[id] = o
			return id, nil
		}
	}
	s.nextId++
	o.Id = s.nextId
	s.data[o.Id] = o
	return o.Id, nil
}

func (s *StubOverrideRepo) GetAllForBudget(ctx context.Context, workspaceId int, budgetId int) ([]TransactionOverride, error) {
	var overrides []TransactionOverride
	for _, o := range s.data {
		if o.BudgetId == budgetId {
			overrides = append(overrides, o)
		}
	}
	return overrides, nil
}

func (s *StubOverrideRepo) Delete(ctx context.Context, workspaceId int, overrideId int) (bool, error) {
	if _, ok := s.data[overrideId]; !ok {
		return false, nil
	}
	delete(s.data, overrideId)
	return true, nil
}

func (s *StubOverrideRepo) Cleanup() {
	s.nextId = 0
	s.data = map[int]TransactionOverride{}
}
