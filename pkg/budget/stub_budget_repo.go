package budget

import (
	"context"
	"fmt"
)

type StubBudgetRepo struct {
	nextBudgetId int
	nextLineId   int
	budgets      map[int]Budget
	lines        map[int][]BudgetLine
	history      map[int][]StrategyChange
	// FailConversion makes ApplyConversion return an error without mutating
	// anything, for exercising the orchestrator's failure path.
	FailConversion bool
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{
		budgets: map[int]Budget{},
		lines:   map[int][]BudgetLine{},
		history: map[int][]StrategyChange{},
	}
}

func (s *StubBudgetRepo) Create(ctx context.Context, workspaceId int, budget Budget, lines []BudgetLine) (Budget, error) {
	s.nextBudgetId++
	budget.Id = s.nextBudgetId
	budget.WorkspaceId = workspaceId
	budget.TotalCents = 0
	if budget.Active {
		for id, b := range s.budgets {
			if b.WorkspaceId == workspaceId && b.Active {
				b.Active = false
				s.budgets[id] = b
			}
		}
	}
	for _, line := range lines {
		s.nextLineId++
		line.Id = s.nextLineId
		line.BudgetId = budget.Id
		s.lines[budget.Id] = append(s.lines[budget.Id], line)
		budget.TotalCents += line.BudgetedCents
	}
	s.budgets[budget.Id] = budget
	return budget, nil
}

func (s *StubBudgetRepo) Get(ctx context.Context, workspaceId int, budgetId int) (Budget, error) {
	budget, ok := s.budgets[budgetId]
	if !ok || budget.WorkspaceId != workspaceId {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (s *StubBudgetRepo) GetAll(ctx context.Context, workspaceId int, includeInactive bool) ([]Budget, error) {
	var budgets []Budget
	for _, budget := range s.budgets {
		if budget.WorkspaceId != workspaceId {
			continue
		}
		if !budget.Active && !includeInactive {
			continue
		}
		budgets = append(budgets, budget)
	}
	return budgets, nil
}

func (s *StubBudgetRepo) GetActive(ctx context.Context, workspaceId int) (Budget, error) {
	for _, budget := range s.budgets {
		if budget.WorkspaceId == workspaceId && budget.Active {
			return budget, nil
		}
	}
	return Budget{}, ErrNoActiveBudget
}

func (s *StubBudgetRepo) GetLines(ctx context.Context, workspaceId int, budgetId int) ([]BudgetLine, error) {
	budget, ok := s.budgets[budgetId]
	if !ok || budget.WorkspaceId != workspaceId {
		return nil, nil
	}
	return append([]BudgetLine(nil), s.lines[budgetId]...), nil
}

func (s *StubBudgetRepo) Update(ctx context.Context, workspaceId int, budget Budget) (bool, error) {
	existing, ok := s.budgets[budget.Id]
	if !ok || existing.WorkspaceId != workspaceId {
		return false, nil
	}
	budget.WorkspaceId = workspaceId
	budget.Strategy = existing.Strategy
	budget.TotalCents = existing.TotalCents
	s.budgets[budget.Id] = budget
	return true, nil
}

func (s *StubBudgetRepo) UpdateLineAmount(ctx context.Context, workspaceId int, lineId int, amountCents int64) (bool, error) {
	for budgetId, lines := range s.lines {
		if s.budgets[budgetId].WorkspaceId != workspaceId {
			continue
		}
		for i, line := range lines {
			if line.Id == lineId {
				delta := amountCents - line.BudgetedCents
				lines[i].BudgetedCents = amountCents
				budget := s.budgets[budgetId]
				budget.TotalCents += delta
				s.budgets[budgetId] = budget
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *StubBudgetRepo) Delete(ctx context.Context, workspaceId int, budgetId int) (bool, error) {
	budget, ok := s.budgets[budgetId]
	if !ok || budget.WorkspaceId != workspaceId {
		return false, nil
	}
	delete(s.budgets, budgetId)
	delete(s.lines, budgetId)
	return true, nil
}

func (s *StubBudgetRepo) ApplyConversion(
	ctx context.Context,
	workspaceId int,
	budgetId int,
	newStrategy Strategy,
	changeSet ChangeSet,
	record StrategyChange,
) error {
	if s.FailConversion {
		return fmt.Errorf("stubbed conversion failure")
	}
	budget, ok := s.budgets[budgetId]
	if !ok || budget.WorkspaceId != workspaceId {
		return ErrBudgetNotFound
	}
	lines := s.lines[budgetId]
	for _, change := range changeSet.Changes {
		for i, line := range lines {
			if line.CategoryKey == change.CategoryKey {
				lines[i].BudgetedCents = change.NewAmountCents
			}
		}
	}
	budget.Strategy = newStrategy
	budget.TotalCents = changeSet.TotalNewBudgetCents
	s.budgets[budgetId] = budget
	s.history[budgetId] = append([]StrategyChange{record}, s.history[budgetId]...)
	return nil
}

func (s *StubBudgetRepo) StrategyHistory(ctx context.Context, workspaceId int, budgetId int) ([]StrategyChange, error) {
	return append([]StrategyChange(nil), s.history[budgetId]...), nil
}

func (s *StubBudgetRepo) Cleanup() {
	s.nextBudgetId = 0
	s.nextLineId = 0
	s.budgets = map[int]Budget{}
	s.lines = map[int][]BudgetLine{}
	s.history = map[int][]StrategyChange{}
	s.FailConversion = false
}
