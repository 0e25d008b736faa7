package crud

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/url"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/store"
)

type Service[T any] struct {
	repo     store.Repository[T]
	resource Resource[T]
	logger   *slog.Logger
}

func NewService[T any](repo store.Repository[T], resource Resource[T], logger *slog.Logger) *Service[T] {
	return &Service[T]{
		repo:     repo,
		resource: resource,
		logger:   logger.With("resource", resource.Name),
	}
}

func (s *Service[T]) List(ctx context.Context, params url.Values) ([]*T, error) {
	return s.repo.Find(ctx, s.resource.query(params))
}

func (s *Service[T]) Get(ctx context.Context, id string) (*T, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, s.resource.notFound()
	}
	return doc, nil
}

func (s *Service[T]) Create(ctx context.Context, doc *T) (*store.InsertResult, error) {
	if d, ok := any(doc).(store.Document); ok {
		d.SetID("")
	}
	if s.resource.Prepare != nil {
		if err := s.resource.Prepare(doc); err != nil {
			return nil, err
		}
	}

	res, err := s.repo.Insert(ctx, doc)
	if err != nil {
		s.logger.Error("failed to create document", "error", err)
		return nil, err
	}
	s.logger.Debug("document created", "id", res.InsertedID)
	return res, nil
}

// Update merges a JSON body into the stored document. Keys absent from the
// body keep their stored values.
func (s *Service[T]) Update(ctx context.Context, id string, body []byte) (*store.UpdateResult, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, doc); err != nil {
			return nil, internal.NewValidationError("Invalid request body", internal.ErrCodeInvalidBody).WithCause(err)
		}
	}

	res, err := s.repo.Replace(ctx, id, doc)
	if err != nil {
		s.logger.Error("failed to update document", "id", id, "error", err)
		return nil, err
	}
	return res, nil
}

func (s *Service[T]) SetStatus(ctx context.Context, id, status string) (*store.UpdateResult, error) {
	if status == "" {
		return nil, internal.ErrStatusRequired
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, store.Fields{s.resource.StatusField: status})
}

func (s *Service[T]) Delete(ctx context.Context, id string) (*store.DeleteResult, error) {
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.DeletedCount == 0 {
		return nil, s.resource.notFound()
	}
	return res, nil
}
