package override

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type OverrideDTO struct {
	Id            int    `json:"id"`
	BudgetId      int    `json:"budgetId"`
	BudgetLineId  int    `json:"budgetLineId"`
	TransactionId string `json:"transactionId"`
	Reason        string `json:"reason,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto OverrideDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.BudgetId == 0 || dto.BudgetLineId == 0 || dto.TransactionId == "" {
		http.Error(w, "budgetId, budgetLineId and transactionId are required", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), TransactionOverride{
		BudgetId:      dto.BudgetId,
		BudgetLineId:  dto.BudgetLineId,
		TransactionId: dto.TransactionId,
		Reason:        dto.Reason,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dto.Id = created.Id

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAllForBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	budgetId, err := strconv.Atoi(r.URL.Query().Get("budgetId"))
	if err != nil {
		http.Error(w, "invalid budgetId", http.StatusBadRequest)
		return
	}

	overrides, err := h.service.GetAllForBudget(r.Context(), budgetId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]OverrideDTO, 0, len(overrides))
	for _, o := range overrides {
		dtos = append(dtos, OverrideDTO{
			Id:            o.Id,
			BudgetId:      o.BudgetId,
			BudgetLineId:  o.BudgetLineId,
			TransactionId: o.TransactionId,
			Reason:        o.Reason,
		})
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	overrideId, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.service.Delete(r.Context(), overrideId); err != nil {
		if errors.Is(err, ErrOverrideNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
