package performance

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/clearpiggy/clearpiggy/pkg/budget"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type LinePerformanceDTO struct {
	LineId         int    `json:"lineId"`
	CategoryKey    string `json:"categoryKey"`
	BudgetedCents  int64  `json:"budgetedCents"`
	SpentCents     int64  `json:"spentCents"`
	RemainingCents int64  `json:"remainingCents"`
	OverBudget     bool   `json:"overBudget"`
}

type PerformanceSummaryDTO struct {
	TotalBudgetedCents     int64   `json:"totalBudgetedCents"`
	TotalSpentCents        int64   `json:"totalSpentCents"`
	TotalRemainingCents    int64   `json:"totalRemainingCents"`
	CategoriesOverBudget   int     `json:"categoriesOverBudget"`
	UtilizationPct         float64 `json:"utilizationPct"`
	ExpectedUtilizationPct float64 `json:"expectedUtilizationPct"`
	OnTrack                bool    `json:"onTrack"`
}

type BudgetPerformanceDTO struct {
	BudgetId   int                   `json:"budgetId"`
	BudgetName string                `json:"budgetName"`
	Strategy   string                `json:"strategy"`
	StartDate  string                `json:"startDate"`
	EndDate    string                `json:"endDate"`
	PerLine    []LinePerformanceDTO  `json:"perLine"`
	Summary    PerformanceSummaryDTO `json:"summary"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) GetForBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetId, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Debugf("Reconciling performance for budget %d", budgetId)

	perf, err := h.service.ForBudget(r.Context(), budgetId)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(perf)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetForActiveBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	perf, err := h.service.ForActiveBudget(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(perf)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, budget.ErrBudgetNotFound), errors.Is(err, budget.ErrNoActiveBudget):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(perf BudgetPerformance) BudgetPerformanceDTO {
	dto := BudgetPerformanceDTO{
		BudgetId:   perf.Budget.Id,
		BudgetName: perf.Budget.Name,
		Strategy:   string(perf.Budget.Strategy),
		StartDate:  perf.Budget.StartDate.Format("2006-01-02"),
		EndDate:    perf.Budget.EndDate.Format("2006-01-02"),
		PerLine:    make([]LinePerformanceDTO, 0, len(perf.PerLine)),
		Summary: PerformanceSummaryDTO{
			TotalBudgetedCents:     perf.Summary.TotalBudgetedCents,
			TotalSpentCents:        perf.Summary.TotalSpentCents,
			TotalRemainingCents:    perf.Summary.TotalRemainingCents,
			CategoriesOverBudget:   perf.Summary.CategoriesOverBudget,
			UtilizationPct:         perf.Summary.UtilizationPct,
			ExpectedUtilizationPct: perf.Summary.ExpectedUtilizationPct,
			OnTrack:                perf.Summary.OnTrack,
		},
	}
	for _, line := range perf.PerLine {
		dto.PerLine = append(dto.PerLine, LinePerformanceDTO{
			LineId:         line.Line.Id,
			CategoryKey:    line.Line.CategoryKey,
			BudgetedCents:  line.Line.BudgetedCents,
			SpentCents:     line.SpentCents,
			RemainingCents: line.RemainingCents,
			OverBudget:     line.OverBudget,
		})
	}
	return dto
}
