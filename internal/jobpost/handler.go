package jobpost

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreatePost(ctx context.Context, req *CreatePostRequest) (*store.InsertResult, error)
	ListPosts(ctx context.Context, f PostFilter) ([]*Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	UpdatePost(ctx context.Context, id string, req *UpdatePostRequest) (*store.UpdateResult, error)
	DeletePost(ctx context.Context, id string) (*store.DeleteResult, error)
	ArchivePost(ctx context.Context, id string) (*store.UpdateResult, error)
	CloseExpired(ctx context.Context, now time.Time) (int, error)
	Submit(ctx context.Context, req *SubmitApplicationRequest) (*store.InsertResult, error)
	ListApplications(ctx context.Context, f ApplicationFilter) ([]*Application, error)
	GetApplication(ctx context.Context, id string) (*Application, error)
	SetApplicationStatus(ctx context.Context, id string, req *StatusRequest) (*store.UpdateResult, error)
	GenerateReport(ctx context.Context, req *ReportRequest) (*ReportResult, error)
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

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.Service.CreatePost(r.Context(), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	posts, err := h.Service.ListPosts(r.Context(), PostFilter{
		Status:        q.Get("status"),
		PostedByEmail: q.Get("postedByEmail"),
	})
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, posts)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.Service.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	var req UpdatePostRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.Service.UpdatePost(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.DeletePost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) ArchivePost(w http.ResponseWriter, r *http.Request) {
	res, err := h.Service.ArchivePost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req SubmitApplicationRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.Service.Submit(r.Context(), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) GetApplications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	apps, err := h.Service.ListApplications(r.Context(), ApplicationFilter{
		JobPostID:     q.Get("jobPostId"),
		Status:        q.Get("status"),
		Sort:          q.Get("sort"),
		SortDirection: q.Get("sortDirection"),
	})
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, apps)
}

func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.Service.GetApplication(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, app)
}

func (h *Handler) SetApplicationStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.Service.SetApplicationStatus(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.WriteServiceError(w, r, err)
		return
	}

	res, err := h.Service.GenerateReport(r.Context(), &req)
	if err != nil {
		h.WriteServiceError(w, r, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, res)
}
