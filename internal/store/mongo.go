package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoDB(ctx context.Context, uri, database string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	slog.Info("connected to mongodb", "database", database)

	return &MongoDB{
		client: client,
		db:     client.Database(database),
	}, nil
}

func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

func (m *MongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

type mongoRepository[T any] struct {
	name string
	coll *mongo.Collection
}

func newMongoRepository[T any](ctx context.Context, db *MongoDB, collection string, indexes []Index) (*mongoRepository[T], error) {
	coll := db.Collection(collection)

	if len(indexes) > 0 {
		models := make([]mongo.IndexModel, 0, len(indexes))
		for _, idx := range indexes {
			keys := bson.D{}
			for _, k := range idx.Keys {
				keys = append(keys, bson.E{Key: mongoField(k), Value: 1})
			}
			model := mongo.IndexModel{Keys: keys}
			if idx.Unique {
				model.Options = options.Index().SetUnique(true)
			}
			models = append(models, model)
		}
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return nil, fmt.Errorf("create %s indexes: %w", collection, err)
		}
	}

	return &mongoRepository[T]{name: collection, coll: coll}, nil
}

func (r *mongoRepository[T]) Insert(ctx context.Context, doc *T) (*InsertResult, error) {
	id, err := prepareInsert(doc, Now())
	if err != nil {
		return nil, err
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, r.wrap("insert", err)
	}
	return &InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *mongoRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return r.FindOne(ctx, NewQuery().Eq(FieldID, id))
}

func (r *mongoRepository[T]) FindOne(ctx context.Context, q *Query) (*T, error) {
	opts := options.FindOne()
	if sort := mongoSort(q); len(sort) > 0 {
		opts.SetSort(sort)
	}

	var doc T
	err := r.coll.FindOne(ctx, mongoFilter(q), opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap("find", err)
	}
	return &doc, nil
}

func (r *mongoRepository[T]) Find(ctx context.Context, q *Query) ([]*T, error) {
	opts := options.Find()
	if sort := mongoSort(q); len(sort) > 0 {
		opts.SetSort(sort)
	}
	if n := q.limitValue(); n > 0 {
		opts.SetLimit(n)
	}

	cursor, err := r.coll.Find(ctx, mongoFilter(q), opts)
	if err != nil {
		return nil, r.wrap("find", err)
	}
	results := []*T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, r.wrap("decode", err)
	}
	return results, nil
}

func (r *mongoRepository[T]) Count(ctx context.Context, q *Query) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, mongoFilter(q))
	if err != nil {
		return 0, r.wrap("count", err)
	}
	return n, nil
}

func (r *mongoRepository[T]) Update(ctx context.Context, id string, set Fields) (*UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M(withUpdatedAt(set, Now()))})
	if err != nil {
		return nil, r.wrap("update", err)
	}
	return updateResult(res), nil
}

func (r *mongoRepository[T]) UpdateMany(ctx context.Context, q *Query, set Fields) (*UpdateResult, error) {
	res, err := r.coll.UpdateMany(ctx, mongoFilter(q), bson.M{"$set": bson.M(withUpdatedAt(set, Now()))})
	if err != nil {
		return nil, r.wrap("update", err)
	}
	return updateResult(res), nil
}

func (r *mongoRepository[T]) Replace(ctx context.Context, id string, doc *T) (*UpdateResult, error) {
	d, ok := any(doc).(Document)
	if !ok {
		return nil, ErrInvalidDocument
	}
	d.SetID(id)
	d.Touch(Now())

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return nil, r.wrap("replace", err)
	}
	return updateResult(res), nil
}

func (r *mongoRepository[T]) Increment(ctx context.Context, id, field string, by int) (*UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{field: by},
		"$set": bson.M{"updated_at": Now()},
	})
	if err != nil {
		return nil, r.wrap("increment", err)
	}
	return updateResult(res), nil
}

func (r *mongoRepository[T]) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, r.wrap("delete", err)
	}
	return &DeleteResult{Acknowledged: res.Acknowledged, DeletedCount: res.DeletedCount}, nil
}

func (r *mongoRepository[T]) DeleteMany(ctx context.Context, q *Query) (*DeleteResult, error) {
	res, err := r.coll.DeleteMany(ctx, mongoFilter(q))
	if err != nil {
		return nil, r.wrap("delete", err)
	}
	return &DeleteResult{Acknowledged: res.Acknowledged, DeletedCount: res.DeletedCount}, nil
}

func (r *mongoRepository[T]) wrap(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s %s: %w", op, r.name, ErrDuplicate)
	}
	return fmt.Errorf("%s %s: %w", op, r.name, err)
}

func updateResult(res *mongo.UpdateResult) *UpdateResult {
	return &UpdateResult{
		Acknowledged:  res.Acknowledged,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}
}

func mongoField(field string) string {
	if field == FieldID {
		return "_id"
	}
	return field
}

var mongoOps = map[Op]string{
	OpNe:  "$ne",
	OpGt:  "$gt",
	OpGte: "$gte",
	OpLt:  "$lt",
	OpLte: "$lte",
	OpIn:  "$in",
}

func mongoFilter(q *Query) bson.M {
	filter := bson.M{}
	if q == nil {
		return filter
	}

	for _, c := range q.conds {
		field := mongoField(c.Field)
		if c.Op == OpEq {
			filter[field] = c.Value
			continue
		}
		ops, ok := filter[field].(bson.M)
		if !ok {
			ops = bson.M{}
			if existing, set := filter[field]; set {
				ops["$eq"] = existing
			}
			filter[field] = ops
		}
		ops[mongoOps[c.Op]] = c.Value
	}

	groups := q.orGroups()
	if len(groups) == 0 {
		return filter
	}

	and := bson.A{}
	for _, group := range groups {
		alts := bson.A{}
		for _, alt := range group {
			alts = append(alts, mongoFilter(alt))
		}
		and = append(and, bson.M{"$or": alts})
	}
	if len(and) == 1 {
		filter["$or"] = and[0].(bson.M)["$or"]
	} else {
		filter["$and"] = and
	}
	return filter
}

func mongoSort(q *Query) bson.D {
	sorts := q.Sorts()
	if len(sorts) == 0 {
		return nil
	}
	sort := make(bson.D, 0, len(sorts))
	for _, s := range sorts {
		dir := 1
		if s.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: mongoField(s.Field), Value: dir})
	}
	return sort
}
