package leave

import (
	"context"
	"net/http"

	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, req *CreateLeaveRequest) (*store.InsertResult, error)
	ByEmail(ctx context.Context, email string) ([]*Leave, error)
	All(ctx context.Context) ([]*Leave, error)
	Pending(ctx context.Context, email string) ([]*Leave, error)
	Approve(ctx context.Context, id string) (*store.UpdateResult, error)
	Reject(ctx context.Context, id string) (*store.UpdateResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) AddLeave(w http.ResponseWriter, r *http.Request) {
	var req CreateLeaveRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) GetLeavesByEmail(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, func(ctx context.Context) ([]*Leave, error) {
		return h.Service.ByEmail(ctx, r.URL.Query().Get("email"))
	})
}

func (h *Handler) GetLeaves(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.Service.All)
}

func (h *Handler) GetPendingLeaves(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, func(ctx context.Context) ([]*Leave, error) {
		return h.Service.Pending(ctx, r.URL.Query().Get("email"))
	})
}

func (h *Handler) ApproveLeave(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) RejectLeave(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, list func(context.Context) ([]*Leave, error)) {
	leaves, err := list(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, leaves)
}
