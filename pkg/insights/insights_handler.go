package insights

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clearpiggy/clearpiggy/pkg/budget"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	result, err := h.service.ForCurrentWorkspace(r.Context())
	if err != nil {
		if errors.Is(err, budget.ErrNoActiveBudget) || errors.Is(err, budget.ErrBudgetNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
