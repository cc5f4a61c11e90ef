package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BudgetDTO struct {
	Id         int             `json:"id"`
	Name       string          `json:"name"`
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	Strategy   string          `json:"strategy"`
	TotalCents int64           `json:"totalCents"`
	Active     bool            `json:"active"`
	Lines      []BudgetLineDTO `json:"lines,omitempty"`
}

type BudgetLineDTO struct {
	Id            int    `json:"id"`
	CategoryKey   string `json:"categoryKey"`
	BudgetedCents int64  `json:"budgetedCents"`
}

type StrategyChangeDTO struct {
	Uid         string          `json:"uid"`
	OldStrategy string          `json:"oldStrategy"`
	NewStrategy string          `json:"newStrategy"`
	ActorId     string          `json:"actorId"`
	CreatedAt   time.Time       `json:"createdAt"`
	Notes       ConversionNotes `json:"notes"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new budget")
	w.Header().Set("Content-Type", "application/json")

	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	budget, lines, err := fromDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), budget, lines)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created, nil)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	includeInactive := r.URL.Query().Has("includeInactive")

	budgets, err := h.service.GetAll(r.Context(), includeInactive)
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]BudgetDTO, 0, len(budgets))
	for _, budget := range budgets {
		dtos = append(dtos, toDTO(budget, nil))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	budget, lines, err := h.service.GetWithLines(r.Context(), budgetId)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(budget, lines)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	budget, err := h.service.GetActive(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	_, lines, err := h.service.GetWithLines(r.Context(), budget.Id)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(toDTO(budget, lines)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto BudgetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.Id == 0 || dto.Id != budgetId {
		http.Error(w, "Invalid budget id in request body", http.StatusBadRequest)
		return
	}

	budget, _, err := fromDTO(dto)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.service.Update(r.Context(), budget); err != nil {
		writeError(w, err)
		return
	}
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) SetLineAmount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	lineId, err := strconv.Atoi(vars["lineId"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto struct {
		BudgetedCents int64 `json:"budgetedCents"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.service.SetLineAmount(r.Context(), lineId, dto.BudgetedCents)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		http.Error(w, "Budget line not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	budgetId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.service.Delete(r.Context(), budgetId); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) StrategyHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	budgetId, err := pathId(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	history, err := h.service.StrategyHistory(r.Context(), budgetId)
	if err != nil {
		writeError(w, err)
		return
	}

	dtos := make([]StrategyChangeDTO, 0, len(history))
	for _, record := range history {
		dtos = append(dtos, StrategyChangeDTO{
			Uid:         record.Uid,
			OldStrategy: string(record.OldStrategy),
			NewStrategy: string(record.NewStrategy),
			ActorId:     record.ActorId,
			CreatedAt:   record.CreatedAt,
			Notes:       record.Notes,
		})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func pathId(r *http.Request) (int, error) {
	return strconv.Atoi(mux.Vars(r)["id"])
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBudgetNotFound), errors.Is(err, ErrNoActiveBudget):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidPeriod), errors.Is(err, ErrInvalidStrategy), errors.Is(err, ErrNegativeAmount):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(budget Budget, lines []BudgetLine) BudgetDTO {
	dto := BudgetDTO{
		Id:         budget.Id,
		Name:       budget.Name,
		StartDate:  budget.StartDate.Format("2006-01-02"),
		EndDate:    budget.EndDate.Format("2006-01-02"),
		Strategy:   string(budget.Strategy),
		TotalCents: budget.TotalCents,
		Active:     budget.Active,
	}
	for _, line := range lines {
		dto.Lines = append(dto.Lines, BudgetLineDTO{
			Id:            line.Id,
			CategoryKey:   line.CategoryKey,
			BudgetedCents: line.BudgetedCents,
		})
	}
	return dto
}

func fromDTO(dto BudgetDTO) (Budget, []BudgetLine, error) {
	startDate, err := time.Parse("2006-01-02", dto.StartDate)
	if err != nil {
		return Budget{}, nil, err
	}
	endDate, err := time.Parse("2006-01-02", dto.EndDate)
	if err != nil {
		return Budget{}, nil, err
	}

	budget := Budget{
		Id:        dto.Id,
		Name:      dto.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Strategy:  Strategy(dto.Strategy),
		Active:    dto.Active,
	}
	lines := make([]BudgetLine, 0, len(dto.Lines))
	for _, line := range dto.Lines {
		lines = append(lines, BudgetLine{
			Id:            line.Id,
			CategoryKey:   line.CategoryKey,
			BudgetedCents: line.BudgetedCents,
		})
	}
	return budget, lines, nil
}
