package target

import (
	"context"
	"net/http"

	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, f Filter) ([]*Target, error)
	Create(ctx context.Context, req *CreateTargetRequest) (*store.InsertResult, error)
	Update(ctx context.Context, id string, req *UpdateTargetRequest) (*store.UpdateResult, error)
	Delete(ctx context.Context, id string) (*store.DeleteResult, error)
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

func (h *Handler) GetTargets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	targets, err := h.Service.List(r.Context(), Filter{
		UserEmail:    q.Get("userEmail"),
		ManagerEmail: q.Get("managerEmail"),
		Month:        q.Get("month"),
		Year:         q.Get("year"),
	})
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, targets)
}

func (h *Handler) CreateTarget(w http.ResponseWriter, r *http.Request) {
	var req CreateTargetRequest
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

func (h *Handler) UpdateTarget(w http.ResponseWriter, r *http.Request) {
	var req UpdateTargetRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) DeleteTarget(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}
