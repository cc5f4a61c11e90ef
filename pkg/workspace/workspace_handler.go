package workspace

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type WorkspaceDTO struct {
	Id       int    `json:"id"`
	Uid      string `json:"uid"`
	Name     string `json:"name"`
	Currency string `json:"currency,omitempty"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CurrentWorkspace(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ws, err := h.service.GetCurrent(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	if err := json.NewEncoder(w).Encode(toDTO(ws)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new workspace")
	w.Header().Set("Content-Type", "application/json")

	var dto WorkspaceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), Workspace{
		Name:     dto.Name,
		Currency: dto.Currency,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAvailableWorkspaces(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	workspaces, err := h.service.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]WorkspaceDTO, 0, len(workspaces))
	for _, ws := range workspaces {
		dtos = append(dtos, toDTO(ws))
	}
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func toDTO(ws Workspace) WorkspaceDTO {
	return WorkspaceDTO{
		Id:       ws.Id,
		Uid:      ws.Uid,
		Name:     ws.Name,
		Currency: ws.Currency,
	}
}
