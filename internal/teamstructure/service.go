package teamstructure

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/office-management/internal"
	teamDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/teamstructure"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/store"
)

type Repositories struct {
	Members store.Repository[teamDatamodel.Member]
	Users   store.Repository[userDatamodel.User]
}

type Service struct {
	repos  Repositories
	logger *slog.Logger
}

func NewService(repos Repositories, logger *slog.Logger) *Service {
	return &Service{repos: repos, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]*Member, error) {
	return s.repos.Members.Find(ctx, store.NewQuery())
}

// BatchUpdate places every known user from the id list under the manager.
// Per-user failures are collected rather than aborting the batch.
func (s *Service) BatchUpdate(ctx context.Context, req *BatchUpdateRequest) (*BatchUpdateResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ids := make([]any, len(req.UserIDs))
	for i, id := range req.UserIDs {
		ids[i] = id
	}
	users, err := s.repos.Users.Find(ctx, store.NewQuery().In(store.FieldID, ids...))
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, internal.ErrNoValidUsers
	}

	manager := req.manager()
	results := BatchResults{Errors: []BatchError{}}
	for _, u := range users {
		created, err := s.place(ctx, &Member{
			UserEmail: u.EmailAddress,
			UserName:  u.FullName,
			UserRole:  u.UserRole,
		}, manager)
		switch {
		case err != nil:
			s.logger.Warn("team structure update failed", "user_email", u.EmailAddress, "error", err)
			results.Errors = append(results.Errors, BatchError{UserEmail: u.EmailAddress, Error: err.Error()})
		case created:
			results.Created++
		default:
			results.Updated++
		}
	}

	s.logger.Info("team structure batch updated", "manager_email", manager.Email,
		"updated", results.Updated, "created", results.Created, "errors", len(results.Errors))
	return newBatchUpdateResult(results), nil
}

func (s *Service) Update(ctx context.Context, req *UpdateMemberRequest) (*UpsertResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.findMember(ctx, req.UserEmail)
	if err != nil {
		return nil, err
	}
	manager := Manager{Email: req.ManagerEmail, Name: req.ManagerName, Role: req.ManagerRole}

	if existing != nil {
		res, err := s.repos.Members.Update(ctx, existing.ID, manager.fields())
		if err != nil {
			return nil, err
		}
		return &UpsertResult{Acknowledged: true, MatchedCount: res.MatchedCount, ModifiedCount: res.ModifiedCount}, nil
	}

	res, err := s.repos.Members.Insert(ctx, newMember(req.UserEmail, req.UserName, req.UserRole, manager))
	if err != nil {
		return nil, err
	}
	return &UpsertResult{Acknowledged: true, InsertedID: res.InsertedID}, nil
}

// Remove deletes the member; its own reports keep pointing at it.
func (s *Service) Remove(ctx context.Context, userEmail string) (*RemoveResult, error) {
	if userEmail == "" {
		return nil, internal.ErrUserEmailRequired
	}

	existing, err := s.findMember(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, internal.ErrTeamMemberMissing
	}

	res, err := s.repos.Members.DeleteMany(ctx, store.NewQuery().Eq("user_email", userEmail))
	if err != nil {
		return nil, err
	}
	if res.DeletedCount == 0 {
		return nil, internal.ErrTeamMemberMissing
	}
	return &RemoveResult{Message: "User removed from team structure", Result: res}, nil
}

func (s *Service) place(ctx context.Context, m *Member, manager Manager) (bool, error) {
	existing, err := s.findMember(ctx, m.UserEmail)
	if err != nil {
		return false, err
	}
	if existing != nil {
		_, err := s.repos.Members.Update(ctx, existing.ID, manager.fields())
		return false, err
	}
	_, err = s.repos.Members.Insert(ctx, newMember(m.UserEmail, m.UserName, m.UserRole, manager))
	return err == nil, err
}

func (s *Service) findMember(ctx context.Context, userEmail string) (*Member, error) {
	return s.repos.Members.FindOne(ctx, store.NewQuery().Eq("user_email", userEmail))
}

func newMember(email, name, role string, manager Manager) *Member {
	return &Member{
		UserEmail:    email,
		UserName:     name,
		UserRole:     role,
		ManagerEmail: manager.Email,
		ManagerName:  manager.Name,
		ManagerRole:  manager.Role,
	}
}
