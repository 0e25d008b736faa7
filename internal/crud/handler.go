package crud

import (
	"io"
	"net/http"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/go-chi/chi"
)

type Handler[T any] struct {
	*transport.BaseHandler
	Service *Service[T]
}

func NewHandler[T any](baseHandler *transport.BaseHandler, service *Service[T]) *Handler[T] {
	return &Handler[T]{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// Routes returns the sub-router mounted under the resource path.
func (h *Handler[T]) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	if h.Service.resource.StatusField != "" {
		r.Patch("/{id}/status", h.SetStatus)
	}
	return r
}

func (h *Handler[T]) List(w http.ResponseWriter, r *http.Request) {
	docs, err := h.Service.List(r.Context(), r.URL.Query())
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, docs)
}

func (h *Handler[T]) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler[T]) Create(w http.ResponseWriter, r *http.Request) {
	doc := new(T)
	if err := h.DecodeJSON(r, doc); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.Service.Create(r.Context(), doc)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler[T]) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.WriteServiceError(w, r, internal.NewValidationError("Invalid request body", internal.ErrCodeInvalidBody).WithCause(err))
		return
	}

	res, err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler[T]) SetStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.Service.SetStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}
