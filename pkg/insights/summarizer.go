package insights

import (
	"fmt"
	"sort"

	"github.com/clearpiggy/clearpiggy/pkg/performance"
)

// RuleSummarizer produces insights from budget performance with fixed rules.
// Output depends only on the input, so repeated calls over an unchanged
// ledger yield identical insights.
type RuleSummarizer struct{}

func NewRuleSummarizer() *RuleSummarizer {
	return &RuleSummarizer{}
}

func (s *RuleSummarizer) Summarize(perf performance.BudgetPerformance) []Insight {
	insights := make([]Insight, 0, 4)
	summary := perf.Summary

	if summary.OnTrack {
		insights = append(insights, Insight{
			Kind: "pacing",
			Message: fmt.Sprintf("Spending is on track: %.0f%% of the budget used with %.0f%% of the period elapsed.",
				summary.UtilizationPct, summary.ExpectedUtilizationPct),
		})
	} else {
		insights = append(insights, Insight{
			Kind: "pacing",
			Message: fmt.Sprintf("Spending is running ahead of plan: %.0f%% of the budget used but only %.0f%% of the period has elapsed.",
				summary.UtilizationPct, summary.ExpectedUtilizationPct),
		})
	}

	if summary.CategoriesOverBudget > 0 {
		insights = append(insights, Insight{
			Kind:    "over_budget",
			Message: fmt.Sprintf("%d of %d categories are over budget.", summary.CategoriesOverBudget, len(perf.PerLine)),
		})
	}

	if top, ok := topSpender(perf.PerLine); ok {
		insights = append(insights, Insight{
			Kind: "top_category",
			Message: fmt.Sprintf("Largest spend so far is %s at %s of a %s allocation.",
				top.Line.CategoryKey, formatCents(top.SpentCents), formatCents(top.Line.BudgetedCents)),
		})
	}

	if summary.TotalRemainingCents > 0 {
		insights = append(insights, Insight{
			Kind:    "remaining",
			Message: fmt.Sprintf("%s remains across the budget for this period.", formatCents(summary.TotalRemainingCents)),
		})
	}

	return insights
}

// topSpender returns the line with the most attributed spend, breaking ties
// by category key so the result is stable.
func topSpender(perLine []performance.LinePerformance) (performance.LinePerformance, bool) {
	withSpend := make([]performance.LinePerformance, 0, len(perLine))
	for _, lp := range perLine {
		if lp.SpentCents > 0 {
			withSpend = append(withSpend, lp)
		}
	}
	if len(withSpend) == 0 {
		return performance.LinePerformance{}, false
	}
	sort.Slice(withSpend, func(i, j int) bool {
		if withSpend[i].SpentCents != withSpend[j].SpentCents {
			return withSpend[i].SpentCents > withSpend[j].SpentCents
		}
		return withSpend[i].Line.CategoryKey < withSpend[j].Line.CategoryKey
	})
	return withSpend[0], true
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
