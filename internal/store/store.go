package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"gorm.io/gorm"
)

const (
	DriverMongoDB  = "mongodb"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// FieldID is the logical name of the identifier field. The MongoDB backend maps it to _id.
const FieldID = "id"

var (
	ErrDuplicate       = errors.New("store: duplicate key")
	ErrUnsupported     = errors.New("store: unsupported driver")
	ErrInvalidDocument = errors.New("store: document has no identifier")
)

type Config struct {
	Driver       string
	URI          string
	Name         string
	Source       string
	MaxOpenConns int
	MaxIdleConns int
}

// Store owns the single database connection shared by every repository.
type Store struct {
	driver string
	mongo  *MongoDB
	sql    *gorm.DB
}

func Open(ctx context.Context, cfg Config) (*Store, error) {
	switch cfg.Driver {
	case DriverMongoDB, "":
		db, err := NewMongoDB(ctx, cfg.URI, cfg.Name)
		if err != nil {
			return nil, err
		}
		return &Store{driver: DriverMongoDB, mongo: db}, nil
	case DriverSQLite, DriverPostgres:
		db, err := OpenSQL(cfg)
		if err != nil {
			return nil, err
		}
		return &Store{driver: cfg.Driver, sql: db}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, cfg.Driver)
	}
}

// FromGorm wraps an already opened gorm connection.
func FromGorm(db *gorm.DB) *Store {
	return &Store{driver: db.Dialector.Name(), sql: db}
}

func (s *Store) Driver() string {
	return s.driver
}

func (s *Store) Ping(ctx context.Context) error {
	if s.mongo != nil {
		return s.mongo.Ping(ctx)
	}
	sqlDB, err := s.sql.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.mongo != nil {
		return s.mongo.Close(ctx)
	}
	sqlDB, err := s.sql.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Index describes a secondary index on a collection. Keys are field names, ascending.
type Index struct {
	Keys   []string
	Unique bool
}

// NewRepository returns the repository for one collection, creating its indexes
// (and, on SQL backends, its table) first.
func NewRepository[T any](ctx context.Context, s *Store, collection string, indexes ...Index) (Repository[T], error) {
	if s.mongo != nil {
		return newMongoRepository[T](ctx, s.mongo, collection, indexes)
	}
	return newGormRepository[T](ctx, s.sql, collection, indexes)
}

func NewID() string {
	return bson.NewObjectID().Hex()
}

type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Fields is a partial document used for $set style updates, keyed by stored field name.
type Fields map[string]any

func prepareInsert(doc any, now time.Time) (string, error) {
	d, ok := doc.(Document)
	if !ok {
		return "", ErrInvalidDocument
	}
	if d.GetID() == "" {
		d.SetID(NewID())
	}
	d.Touch(now)
	return d.GetID(), nil
}

func withUpdatedAt(set Fields, now time.Time) Fields {
	out := make(Fields, len(set)+1)
	for k, v := range set {
		out[k] = v
	}
	out["updated_at"] = now
	return out
}

// Now is the clock used to stamp documents; tests may replace it.
var Now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
