package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/clearpiggy/clearpiggy/internal/event_bus"
	"github.com/clearpiggy/clearpiggy/pkg/workspace"
	log "github.com/sirupsen/logrus"
)

type LedgerFactDTO struct {
	Id          string `json:"id"`
	CategoryKey string `json:"categoryKey"`
	AmountCents int64  `json:"amountCents"`
	Direction   string `json:"direction"`
	Date        string `json:"date"`
}

type TransactionNotificationDTO struct {
	TransactionId string `json:"transactionId"`
	CategoryKey   string `json:"categoryKey"`
	AmountCents   int64  `json:"amountCents"`
	Date          string `json:"date"`
}

type Handler struct {
	service Service
	bus     *event_bus.EventBus
}

func NewHandler(service Service, bus *event_bus.EventBus) *Handler {
	return &Handler{service: service, bus: bus}
}

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		http.Error(w, "invalid from date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		http.Error(w, "invalid to date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	var direction *Direction
	if d := r.URL.Query().Get("direction"); d != "" {
		if d != string(DirectionInflow) && d != string(DirectionOutflow) {
			http.Error(w, "invalid direction", http.StatusBadRequest)
			return
		}
		dir := Direction(d)
		direction = &dir
	}

	facts, err := h.service.Transactions(r.Context(), from, to, direction)
	if err != nil {
		if errors.Is(err, ErrInvalidRange) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]LedgerFactDTO, 0, len(facts))
	for _, fact := range facts {
		dtos = append(dtos, LedgerFactDTO{
			Id:          fact.Id,
			CategoryKey: fact.CategoryKey,
			AmountCents: fact.AmountCents,
			Direction:   string(fact.Direction),
			Date:        fact.Date.Format("2006-01-02"),
		})
	}

	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Notify is the webhook the banking aggregator calls after posting a new
// transaction to the ledger. The transaction itself already lives in the
// ledger store; this endpoint only publishes the change so derived state
// gets recomputed.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	workspaceId, err := workspace.CurrentId(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var dto TransactionNotificationDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", dto.Date)
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	event := event_bus.NewEvent(r.Context(), event_bus.TransactionPostedEvent, event_bus.TransactionPosted{
		WorkspaceID:   workspaceId,
		TransactionID: dto.TransactionId,
		CategoryKey:   dto.CategoryKey,
		AmountCents:   dto.AmountCents,
		Date:          date,
	})
	if err := h.bus.Publish(event); err != nil {
		log.Warnf("failed to publish transaction notification: %v", err)
	}
	w.WriteHeader(http.StatusAccepted)
}
