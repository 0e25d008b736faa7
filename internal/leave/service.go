package leave

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/office-management/internal"
	leaveDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/office-management/internal/store"
)

type Service struct {
	repo   store.Repository[leaveDatamodel.Leave]
	logger *slog.Logger
}

func NewService(repo store.Repository[leaveDatamodel.Leave], logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, req *CreateLeaveRequest) (*store.InsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	res, err := s.repo.Insert(ctx, req.ToDataModel())
	if err != nil {
		s.logger.Error("failed to file leave", "email", req.Email, "error", err)
		return nil, err
	}
	s.logger.Info("leave filed", "email", req.Email, "id", res.InsertedID)
	return res, nil
}

func (s *Service) ByEmail(ctx context.Context, email string) ([]*Leave, error) {
	if email == "" {
		return nil, internal.ErrEmailRequired
	}
	return s.repo.Find(ctx, store.NewQuery().Eq("email", email))
}

func (s *Service) All(ctx context.Context) ([]*Leave, error) {
	return s.repo.Find(ctx, store.NewQuery())
}

// Pending lists pending requests, for one user when email is given.
func (s *Service) Pending(ctx context.Context, email string) ([]*Leave, error) {
	return s.repo.Find(ctx, store.NewQuery().
		EqIf("email", email).
		Eq("status", leaveDatamodel.StatusPending))
}

func (s *Service) Approve(ctx context.Context, id string) (*store.UpdateResult, error) {
	return s.decide(ctx, id, leaveDatamodel.StatusApproved)
}

func (s *Service) Reject(ctx context.Context, id string) (*store.UpdateResult, error) {
	return s.decide(ctx, id, leaveDatamodel.StatusRejected)
}

func (s *Service) decide(ctx context.Context, id, status string) (*store.UpdateResult, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, internal.ErrLeaveNotFound
	}

	res, err := s.repo.Update(ctx, id, store.Fields{"status": status})
	if err != nil {
		return nil, err
	}
	s.logger.Info("leave decided", "id", id, "email", existing.Email, "status", status)
	return res, nil
}
