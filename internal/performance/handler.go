package performance

import (
	"context"
	"net/http"

	"github.com/frahmantamala/office-management/internal/transport"
)

type ServiceAPI interface {
	Performance(ctx context.Context, userEmail, month, year string) (*Report, error)
	TeamPerformance(ctx context.Context, managerEmail, month, year string) ([]*MemberReport, error)
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

func (h *Handler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.Service.Performance(r.Context(), q.Get("userEmail"), q.Get("month"), q.Get("year"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) GetTeamPerformance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	reports, err := h.Service.TeamPerformance(r.Context(), q.Get("managerEmail"), q.Get("month"), q.Get("year"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, reports)
}
