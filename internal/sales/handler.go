package sales

import (
	"context"
	"io"
	"net/http"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/go-chi/chi"
)

const maxImportSize = 10 << 20

type ServiceAPI interface {
	List(ctx context.Context, f Filter) ([]*Entry, error)
	All(ctx context.Context, f Filter) ([]*Entry, error)
	Create(ctx context.Context, req *EntryRequest) (*store.InsertResult, error)
	Update(ctx context.Context, id string, req *EntryRequest) (*store.UpdateResult, error)
	Delete(ctx context.Context, id string) (*store.DeleteResult, error)
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)
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

func filterFrom(r *http.Request) Filter {
	q := r.URL.Query()
	return Filter{
		UserEmail: q.Get("userEmail"),
		UserRole:  q.Get("userRole"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}
}

// GetSales handles GET /sales
func (h *Handler) GetSales(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.List(r.Context(), filterFrom(r))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entries)
}

// GetAllSales handles GET /sales/all
func (h *Handler) GetAllSales(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.All(r.Context(), filterFrom(r))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, entries)
}

// CreateSales handles POST /sales
func (h *Handler) CreateSales(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
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

// UpdateSales handles PUT /sales/{id}
func (h *Handler) UpdateSales(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
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

// DeleteSales handles DELETE /sales/{id}
func (h *Handler) DeleteSales(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

// ImportSales handles POST /sales/import with a multipart "file" field.
func (h *Handler) ImportSales(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		h.WriteServiceError(w, r, internal.ErrInvalidFile.WithCause(err))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		h.WriteServiceError(w, r, internal.ErrInvalidFile.WithCause(err))
		return
	}
	defer file.Close()

	res, err := h.Service.Import(r.Context(), file)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}
