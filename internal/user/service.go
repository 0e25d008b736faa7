package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/office-management/internal"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/store"
)

type Service struct {
	repo   store.Repository[userDatamodel.User]
	logger *slog.Logger
}

func NewService(repo store.Repository[userDatamodel.User], logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context, email string) ([]*User, error) {
	users, err := s.repo.Find(ctx, store.NewQuery().EqIf("email_address", email))
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) ByEmail(ctx context.Context, email string) (*User, error) {
	if email == "" {
		return nil, internal.ErrEmailRequired
	}
	u, err := s.repo.FindOne(ctx, store.NewQuery().Eq("email_address", email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*store.InsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	res, err := s.repo.Insert(ctx, req.ToDataModel())
	if errors.Is(err, store.ErrDuplicate) {
		return nil, internal.ErrUserExists
	}
	if err != nil {
		s.logger.Error("failed to create user", "email", req.EmailAddress, "error", err)
		return nil, err
	}

	s.logger.Info("user onboarded", "email", req.EmailAddress, "id", res.InsertedID)
	return res, nil
}

// Upsert merges the body into the user, creating it under id when absent.
func (s *Service) Upsert(ctx context.Context, id string, req *UpdateUserRequest) (*UpsertResult, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		res, err := s.repo.Update(ctx, id, req.Fields())
		if errors.Is(err, store.ErrDuplicate) {
			return nil, internal.ErrUserExists
		}
		if err != nil {
			return nil, err
		}
		return &UpsertResult{
			Acknowledged:  res.Acknowledged,
			MatchedCount:  res.MatchedCount,
			ModifiedCount: res.ModifiedCount,
		}, nil
	}

	u := req.ToDataModel()
	u.ID = id
	if _, err := s.repo.Insert(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, internal.ErrUserExists
		}
		return nil, err
	}
	return &UpsertResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
}

func (s *Service) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	return s.repo.Delete(ctx, id)
}

// Approve sets the role and marks the user approved.
func (s *Service) Approve(ctx context.Context, id string, req *ApproveRequest) (*store.UpdateResult, error) {
	res, err := s.repo.Update(ctx, id, store.Fields{
		"user_role": req.UserRole,
		"status":    userDatamodel.StatusApproved,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("user approved", "id", id, "role", req.UserRole, "matched", res.MatchedCount)
	return res, nil
}
