package attendance

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/transport"
)

type ServiceAPI interface {
	CheckIn(ctx context.Context, req *CheckInRequest) (*CheckInResult, error)
	CheckOut(ctx context.Context, req *CheckOutRequest) (*store.UpdateResult, error)
	ChangeLocation(ctx context.Context, req *LocationChangeRequest) (*store.InsertResult, error)
	Status(ctx context.Context, email, day string) (*StatusView, error)
	CheckAutoAbsent(ctx context.Context, email string) (*AutoAbsentResult, error)
	LocationChanges(ctx context.Context, email, day string) ([]*LocationChange, error)
	History(ctx context.Context, email, from, to string) ([]*RecordView, error)
	All(ctx context.Context, day, status string) ([]*RecordView, error)
	ByMonth(ctx context.Context, from, to string) ([]*MonthSummary, error)
	MarkAbsent(ctx context.Context, day string) (*MarkAbsentResult, error)
	AutoOut(ctx context.Context, req *AutoOutRequest) (*AutoOutResult, error)
	AutoAbsentSweep(ctx context.Context, now time.Time) (int, error)
	AutoCheckoutSweep(ctx context.Context, now time.Time) (int, error)
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

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req CheckInRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	result, err := h.Service.CheckIn(r.Context(), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req CheckOutRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	result, err := h.Service.CheckOut(r.Context(), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) ChangeLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationChangeRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	result, err := h.Service.ChangeLocation(r.Context(), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) LocationChanges(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	changes, err := h.Service.LocationChanges(r.Context(), q.Get("email"), q.Get("date"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, changes)
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.Service.Status(r.Context(), q.Get("email"), q.Get("date"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	if !view.IsCheckedIn {
		h.WriteJSON(w, http.StatusOK, map[string]bool{"isCheckedIn": false})
		return
	}
	h.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) CheckAutoAbsent(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.CheckAutoAbsent(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := h.Service.History(r.Context(), q.Get("email"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) All(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := h.Service.All(r.Context(), q.Get("date"), q.Get("status"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) ByMonth(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	months, err := h.Service.ByMonth(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, months)
}

func (h *Handler) MarkAbsent(w http.ResponseWriter, r *http.Request) {
	var req MarkAbsentRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	result, err := h.Service.MarkAbsent(r.Context(), req.Date)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) AutoOut(w http.ResponseWriter, r *http.Request) {
	var req AutoOutRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	result, err := h.Service.AutoOut(r.Context(), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}
