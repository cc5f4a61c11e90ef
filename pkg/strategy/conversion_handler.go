package strategy

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/clearpiggy/clearpiggy/pkg/budget"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ConvertRequestDTO struct {
	Strategy string `json:"strategy"`
	ActorId  string `json:"actorId,omitempty"`
}

type ConversionResultDTO struct {
	Success          bool                `json:"success"`
	Changes          []budget.LineChange `json:"changes"`
	TotalBudgetCents int64               `json:"totalBudgetCents"`
	Message          string              `json:"message,omitempty"`
}

type Handler struct {
	service ConversionService
}

func NewHandler(service ConversionService) *Handler {
	return &Handler{service}
}

func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	budgetId, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto ConvertRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Debugf("Converting budget %d to strategy %q", budgetId, dto.Strategy)

	result, err := h.service.Convert(r.Context(), budgetId, budget.Strategy(dto.Strategy), dto.ActorId)
	if err != nil {
		switch {
		case errors.Is(err, budget.ErrBudgetNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, budget.ErrInvalidStrategy), errors.Is(err, ErrNoBudgetLines):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	changes := result.Changes
	if changes == nil {
		changes = []budget.LineChange{}
	}
	response := ConversionResultDTO{
		Success:          result.Success,
		Changes:          changes,
		TotalBudgetCents: result.TotalBudgetCents,
		Message:          result.Message,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
