package target

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/frahmantamala/office-management/internal"
	targetDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/target"
	"github.com/frahmantamala/office-management/internal/store"
)

type Service struct {
	repo   store.Repository[targetDatamodel.Target]
	logger *slog.Logger
}

func NewService(repo store.Repository[targetDatamodel.Target], logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List filters by user and manager; month and year only apply together.
func (s *Service) List(ctx context.Context, f Filter) ([]*Target, error) {
	q := store.NewQuery().
		EqIf("user_email", f.UserEmail).
		EqIf("manager_email", f.ManagerEmail)

	if f.Month != "" && f.Year != "" {
		month, errM := strconv.Atoi(f.Month)
		year, errY := strconv.Atoi(f.Year)
		if errM == nil && errY == nil {
			q.Eq("month", month).Eq("year", year)
		}
	}
	return s.repo.Find(ctx, q)
}

func (s *Service) Create(ctx context.Context, req *CreateTargetRequest) (*store.InsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindOne(ctx, store.NewQuery().
		Eq("user_email", req.UserEmail).
		Eq("month", req.Month).
		Eq("year", req.Year))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, internal.ErrTargetExists
	}

	res, err := s.repo.Insert(ctx, req.ToDataModel())
	if errors.Is(err, store.ErrDuplicate) {
		return nil, internal.ErrTargetExists
	}
	if err != nil {
		s.logger.Error("failed to create target", "user_email", req.UserEmail, "error", err)
		return nil, err
	}

	s.logger.Info("target set", "user_email", req.UserEmail, "month", req.Month, "year", req.Year)
	return res, nil
}

func (s *Service) Update(ctx context.Context, id string, req *UpdateTargetRequest) (*store.UpdateResult, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, internal.ErrTargetNotFound
	}
	return s.repo.Update(ctx, id, req.Fields())
}

func (s *Service) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	return s.repo.Delete(ctx, id)
}
