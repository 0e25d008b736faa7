package teamstructure

import (
	"context"
	"net/http"

	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context) ([]*Member, error)
	BatchUpdate(ctx context.Context, req *BatchUpdateRequest) (*BatchUpdateResult, error)
	Update(ctx context.Context, req *UpdateMemberRequest) (*UpsertResult, error)
	Remove(ctx context.Context, userEmail string) (*RemoveResult, error)
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

func (h *Handler) GetTeamStructure(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.List(r.Context())
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, members)
}

func (h *Handler) BatchUpdate(w http.ResponseWriter, r *http.Request) {
	var req BatchUpdateRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.Service.BatchUpdate(r.Context(), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	var req UpdateMemberRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.Service.Update(r.Context(), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

// RemoveMember serves both DELETE /team-structure/{userEmail} and the RSM variant.
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Remove(r.Context(), chi.URLParam(r, "userEmail"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}
