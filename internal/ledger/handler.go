package ledger

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"cashbox/internal/transport"
	"cashbox/internal/user"
	"cashbox/pkg/logger"
)

type ServiceAPI interface {
	List() ([]*Transaction, error)
	Create(dto CreateTransactionDTO, actingUser *user.User) (*Transaction, error)
	SetStatus(id string, newStatus Status, actingUser *user.User) (*Transaction, error)
	Metrics() (Metrics, error)
	Breakdown() ([]CategoryTotal, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.LoggerWrapper()),
		Service:     service,
	}
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Service.List()
	if err != nil {
		h.Logger.Error("ListTransactions: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"transactions": txs})
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	actingUser, ok := user.FromContext(r.Context())
	if !ok || actingUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	t, err := h.Service.Create(dto, actingUser)
	if err != nil {
		h.Logger.Error("CreateTransaction: service error", "error", err, "user_id", actingUser.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) ApproveTransaction(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, StatusApproved)
}

func (h *Handler) RejectTransaction(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, StatusRejected)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status Status) {
	actingUser, ok := user.FromContext(r.Context())
	if !ok || actingUser == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")

	t, err := h.Service.SetStatus(id, status, actingUser)
	if err != nil {
		h.Logger.Error("setStatus: service error", "error", err, "transaction_id", id, "status", status)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, t)
}

func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.Service.Metrics()
	if err != nil {
		h.Logger.Error("GetMetrics: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.Service.Breakdown()
	if err != nil {
		h.Logger.Error("GetBreakdown: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"breakdown": breakdown})
}
