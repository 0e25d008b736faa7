package sales

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/office-management/internal"
	salesDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/sales"
	"github.com/frahmantamala/office-management/internal/store"
)

type Service struct {
	repo   store.Repository[salesDatamodel.Entry]
	logger *slog.Logger
}

func NewService(repo store.Repository[salesDatamodel.Entry], logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns one user's entries, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]*Entry, error) {
	if f.UserEmail == "" {
		return nil, internal.ErrUserEmailRequired
	}
	return s.repo.Find(ctx, store.NewQuery().
		Eq("user_email", f.UserEmail).
		Between("date", f.StartDate, f.EndDate).
		Desc("date"))
}

// All is the admin listing across users.
func (s *Service) All(ctx context.Context, f Filter) ([]*Entry, error) {
	return s.repo.Find(ctx, store.NewQuery().
		EqIf("user_role", f.UserRole).
		Between("date", f.StartDate, f.EndDate).
		Desc("date"))
}

func (s *Service) Create(ctx context.Context, req *EntryRequest) (*store.InsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindOne(ctx, store.NewQuery().
		Eq("user_email", req.UserEmail).
		Eq("date", req.Date))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.ErrSalesExists
	}

	res, err := s.repo.Insert(ctx, req.ToDataModel())
	if errors.Is(err, store.ErrDuplicate) {
		return nil, internal.ErrSalesExists
	}
	if err != nil {
		s.logger.Error("failed to create sales entry", "user_email", req.UserEmail, "date", req.Date, "error", err)
		return nil, err
	}
	return res, nil
}

// Update replaces every metric of the entry; fields missing from the body
// become zero and the derived totals are recomputed.
func (s *Service) Update(ctx context.Context, id string, req *EntryRequest) (*store.UpdateResult, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, internal.ErrSalesNotFound
	}

	e := req.ToDataModel()
	e.UserEmail = existing.UserEmail
	e.UserName = existing.UserName
	e.UserRole = existing.UserRole
	e.Date = existing.Date
	e.CreatedAt = existing.CreatedAt

	res, err := s.repo.Replace(ctx, id, e)
	if err != nil {
		s.logger.Error("failed to update sales entry", "id", id, "error", err)
		return nil, err
	}
	return res, nil
}

func (s *Service) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	return s.repo.Delete(ctx, id)
}
