package store

import (
	"context"
	"time"
)

// Repository is the storage contract for one collection of T.
// Lookups return (nil, nil) when nothing matches.
type Repository[T any] interface {
	Insert(ctx context.Context, doc *T) (*InsertResult, error)
	FindByID(ctx context.Context, id string) (*T, error)
	FindOne(ctx context.Context, q *Query) (*T, error)
	Find(ctx context.Context, q *Query) ([]*T, error)
	Count(ctx context.Context, q *Query) (int64, error)
	Update(ctx context.Context, id string, set Fields) (*UpdateResult, error)
	UpdateMany(ctx context.Context, q *Query, set Fields) (*UpdateResult, error)
	Replace(ctx context.Context, id string, doc *T) (*UpdateResult, error)
	Increment(ctx context.Context, id, field string, by int) (*UpdateResult, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
	DeleteMany(ctx context.Context, q *Query) (*DeleteResult, error)
}

// Document is implemented by every stored entity through the embedded Model.
type Document interface {
	GetID() string
	SetID(id string)
	Touch(now time.Time)
}

// Model carries the identifier and timestamps shared by every entity.
type Model struct {
	ID        string    `json:"_id" bson:"_id" gorm:"column:id;primaryKey;size:24"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at" gorm:"column:updated_at"`
}

func (m *Model) GetID() string {
	return m.ID
}

func (m *Model) SetID(id string) {
	m.ID = id
}

func (m *Model) Touch(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}
