package jobpost

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/office-management/internal"
	jobDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/jobpost"
	"github.com/frahmantamala/office-management/internal/core/events"
	"github.com/frahmantamala/office-management/internal/store"
)

type Repositories struct {
	Posts        store.Repository[jobDatamodel.Post]
	Applications store.Repository[jobDatamodel.Application]
}

type Service struct {
	posts        store.Repository[jobDatamodel.Post]
	applications store.Repository[jobDatamodel.Application]
	bus          *events.EventBus
	logger       *slog.Logger
	now          func() time.Time
}

// NewService subscribes the post application counter to bus. A nil bus gets a
// private one so submissions are still counted.
func NewService(repos Repositories, bus *events.EventBus, logger *slog.Logger) *Service {
	if bus == nil {
		bus = events.NewEventBus(logger)
	}
	s := &Service{
		posts:        repos.Posts,
		applications: repos.Applications,
		bus:          bus,
		logger:       logger,
		now:          store.Now,
	}
	bus.Subscribe(events.EventTypeApplicationSubmitted, s.countApplication)
	return s
}

func (s *Service) countApplication(ctx context.Context, event events.Event) error {
	submitted, ok := event.(*events.ApplicationSubmittedEvent)
	if !ok {
		return nil
	}
	_, err := s.posts.Increment(ctx, submitted.JobPostID, jobDatamodel.FieldApplications, 1)
	return err
}

func (s *Service) CreatePost(ctx context.Context, req *CreatePostRequest) (*store.InsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	post, err := req.ToDataModel()
	if err != nil {
		return nil, err
	}
	res, err := s.posts.Insert(ctx, post)
	if err != nil {
		s.logger.Error("failed to create job post", "title", req.Title, "error", err)
		return nil, err
	}
	s.logger.Info("job post created", "id", res.InsertedID, "posted_by", req.PostedByEmail)
	return res, nil
}

// ListPosts treats status "all" the same as no status.
func (s *Service) ListPosts(ctx context.Context, f PostFilter) ([]*Post, error) {
	status := f.Status
	if status == "all" {
		status = ""
	}
	return s.posts.Find(ctx, store.NewQuery().
		EqIf("status", status).
		EqIf("posted_by_email", f.PostedByEmail).
		Desc("created_at"))
}

func (s *Service) GetPost(ctx context.Context, id string) (*Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, internal.ErrJobPostNotFound
	}
	return post, nil
}

func (s *Service) UpdatePost(ctx context.Context, id string, req *UpdatePostRequest) (*store.UpdateResult, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := req.apply(post); err != nil {
		return nil, err
	}
	return s.posts.Replace(ctx, id, post)
}

// DeletePost refuses while any application references the post.
func (s *Service) DeletePost(ctx context.Context, id string) (*store.DeleteResult, error) {
	n, err := s.applications.Count(ctx, store.NewQuery().Eq("job_post_id", id))
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, internal.ErrJobPostHasApplications
	}
	res, err := s.posts.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.DeletedCount == 0 {
		return nil, internal.ErrJobPostNotFound
	}
	s.logger.Info("job post deleted", "id", id)
	return res, nil
}

func (s *Service) ArchivePost(ctx context.Context, id string) (*store.UpdateResult, error) {
	if _, err := s.GetPost(ctx, id); err != nil {
		return nil, err
	}
	return s.posts.Update(ctx, id, store.Fields{"status": jobDatamodel.PostArchived})
}

// CloseExpired closes every active post whose deadline is before now.
func (s *Service) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	res, err := s.posts.UpdateMany(ctx, store.NewQuery().
		Eq("status", jobDatamodel.PostActive).
		Lt("deadline", now.UTC()),
		store.Fields{"status": jobDatamodel.PostClosed})
	if err != nil {
		return 0, err
	}
	return int(res.ModifiedCount), nil
}

func (s *Service) Submit(ctx context.Context, req *SubmitApplicationRequest) (*store.InsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	post, err := s.GetPost(ctx, req.JobPostID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := CanApply(post, now); err != nil {
		return nil, err
	}

	res, err := s.applications.Insert(ctx, req.ToDataModel(post, now))
	if err != nil {
		s.logger.Error("failed to store application", "job_post_id", post.ID, "error", err)
		return nil, err
	}
	if err := s.bus.PublishSync(ctx, events.NewApplicationSubmittedEvent(res.InsertedID, post.ID)); err != nil {
		s.logger.Error("failed to count application", "job_post_id", post.ID, "error", err)
		return nil, err
	}
	s.logger.Info("application submitted", "id", res.InsertedID, "job_post_id", post.ID)
	return res, nil
}

// ListApplications orders by appliedAt, newest first, unless a known sort key
// is given.
func (s *Service) ListApplications(ctx context.Context, f ApplicationFilter) ([]*Application, error) {
	if f.JobPostID == "" {
		return nil, internal.ErrJobPostIDRequired
	}
	apps, err := s.applications.Find(ctx, store.NewQuery().
		Eq("job_post_id", f.JobPostID).
		EqIf("status", f.Status).
		Desc("applied_at"))
	if err != nil {
		return nil, err
	}
	SortApplications(apps, f.Sort, f.SortDirection)
	return apps, nil
}

func (s *Service) GetApplication(ctx context.Context, id string) (*Application, error) {
	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, internal.ErrApplicationNotFound
	}
	return app, nil
}

func (s *Service) SetApplicationStatus(ctx context.Context, id string, req *StatusRequest) (*store.UpdateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.GetApplication(ctx, id); err != nil {
		return nil, err
	}
	res, err := s.applications.Update(ctx, id, store.Fields{"status": req.Status})
	if err != nil {
		return nil, err
	}
	if err := s.bus.Publish(ctx, events.NewApplicationStatusEvent(id, req.Status)); err != nil {
		s.logger.Warn("failed to publish application status event", "application_id", id, "error", err)
	}
	return res, nil
}

// GenerateReport only acknowledges the request; rendering happens elsewhere.
func (s *Service) GenerateReport(ctx context.Context, req *ReportRequest) (*ReportResult, error) {
	if req.JobPostID == "" {
		return nil, internal.ErrJobPostIDRequired
	}
	s.logger.InfoContext(ctx, "report requested", "job_post_id", req.JobPostID, "sort_by", req.SortBy)
	return &ReportResult{
		Message:   "Report generation initiated",
		Status:    "processing",
		ReportURL: fmt.Sprintf("/reports/%s_%d.pdf", req.JobPostID, s.now().UnixMilli()),
	}, nil
}
