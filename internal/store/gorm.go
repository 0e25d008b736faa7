package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// OpenSQL opens the relational backend. The sqlite pool is pinned to one
// connection so in-memory databases are shared by every query.
func OpenSQL(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.Source)
	case DriverPostgres:
		dialector = postgres.Open(cfg.Source)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
	}
	return db, nil
}

type gormRepository[T any] struct {
	db    *gorm.DB
	table string
}

func newGormRepository[T any](ctx context.Context, db *gorm.DB, table string, indexes []Index) (*gormRepository[T], error) {
	if err := db.WithContext(ctx).Table(table).AutoMigrate(new(T)); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", table, err)
	}

	for _, idx := range indexes {
		name := fmt.Sprintf("idx_%s_%s", table, strings.Join(idx.Keys, "_"))
		kind := "INDEX"
		if idx.Unique {
			name = "u" + name
			kind = "UNIQUE INDEX"
		}
		cols := make([]interface{}, len(idx.Keys))
		for i, key := range idx.Keys {
			cols[i] = clause.Column{Name: key}
		}
		stmt := fmt.Sprintf("CREATE %s IF NOT EXISTS ? ON ? ?", kind)
		if err := db.WithContext(ctx).Exec(stmt, clause.Column{Name: name}, clause.Table{Name: table}, cols).Error; err != nil {
			return nil, fmt.Errorf("create %s indexes: %w", table, err)
		}
	}

	return &gormRepository[T]{db: db, table: table}, nil
}

func (r *gormRepository[T]) tx(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *gormRepository[T]) Insert(ctx context.Context, doc *T) (*InsertResult, error) {
	id, err := prepareInsert(doc, Now())
	if err != nil {
		return nil, err
	}
	if err := r.tx(ctx).Create(doc).Error; err != nil {
		return nil, r.wrap("insert", err)
	}
	return &InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (r *gormRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	return r.FindOne(ctx, NewQuery().Eq(FieldID, id))
}

func (r *gormRepository[T]) FindOne(ctx context.Context, q *Query) (*T, error) {
	var doc T
	err := applySorts(applyFilter(r.tx(ctx), q), q).Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.wrap("find", err)
	}
	return &doc, nil
}

func (r *gormRepository[T]) Find(ctx context.Context, q *Query) ([]*T, error) {
	tx := applySorts(applyFilter(r.tx(ctx), q), q)
	if n := q.limitValue(); n > 0 {
		tx = tx.Limit(int(n))
	}

	results := []*T{}
	if err := tx.Find(&results).Error; err != nil {
		return nil, r.wrap("find", err)
	}
	return results, nil
}

func (r *gormRepository[T]) Count(ctx context.Context, q *Query) (int64, error) {
	var n int64
	if err := applyFilter(r.tx(ctx).Model(new(T)), q).Count(&n).Error; err != nil {
		return 0, r.wrap("count", err)
	}
	return n, nil
}

// Update sets scalar columns only; documents with list or map fields change
// those through Replace.
func (r *gormRepository[T]) Update(ctx context.Context, id string, set Fields) (*UpdateResult, error) {
	res := r.tx(ctx).Model(new(T)).
		Where(clause.Eq{Column: clause.Column{Name: FieldID}, Value: id}).
		Updates(map[string]any(withUpdatedAt(set, Now())))
	if res.Error != nil {
		return nil, r.wrap("update", res.Error)
	}
	return rowsUpdated(res.RowsAffected), nil
}

func (r *gormRepository[T]) UpdateMany(ctx context.Context, q *Query, set Fields) (*UpdateResult, error) {
	tx := r.tx(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Model(new(T))
	res := applyFilter(tx, q).Updates(map[string]any(withUpdatedAt(set, Now())))
	if res.Error != nil {
		return nil, r.wrap("update", res.Error)
	}
	return rowsUpdated(res.RowsAffected), nil
}

func (r *gormRepository[T]) Replace(ctx context.Context, id string, doc *T) (*UpdateResult, error) {
	d, ok := any(doc).(Document)
	if !ok {
		return nil, ErrInvalidDocument
	}
	d.SetID(id)
	d.Touch(Now())

	res := r.tx(ctx).
		Where(clause.Eq{Column: clause.Column{Name: FieldID}, Value: id}).
		Select("*").
		Updates(doc)
	if res.Error != nil {
		return nil, r.wrap("replace", res.Error)
	}
	return rowsUpdated(res.RowsAffected), nil
}

func (r *gormRepository[T]) Increment(ctx context.Context, id, field string, by int) (*UpdateResult, error) {
	res := r.tx(ctx).Model(new(T)).
		Where(clause.Eq{Column: clause.Column{Name: FieldID}, Value: id}).
		UpdateColumns(map[string]any{
			field:        gorm.Expr("? + ?", clause.Column{Name: field}, by),
			"updated_at": Now(),
		})
	if res.Error != nil {
		return nil, r.wrap("increment", res.Error)
	}
	return rowsUpdated(res.RowsAffected), nil
}

func (r *gormRepository[T]) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	res := r.tx(ctx).
		Where(clause.Eq{Column: clause.Column{Name: FieldID}, Value: id}).
		Delete(new(T))
	if res.Error != nil {
		return nil, r.wrap("delete", res.Error)
	}
	return &DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}

func (r *gormRepository[T]) DeleteMany(ctx context.Context, q *Query) (*DeleteResult, error) {
	tx := r.tx(ctx).Session(&gorm.Session{AllowGlobalUpdate: true})
	res := applyFilter(tx, q).Delete(new(T))
	if res.Error != nil {
		return nil, r.wrap("delete", res.Error)
	}
	return &DeleteResult{Acknowledged: true, DeletedCount: res.RowsAffected}, nil
}

func (r *gormRepository[T]) wrap(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%s %s: %w", op, r.table, ErrDuplicate)
	}
	return fmt.Errorf("%s %s: %w", op, r.table, err)
}

func rowsUpdated(n int64) *UpdateResult {
	return &UpdateResult{Acknowledged: true, MatchedCount: n, ModifiedCount: n}
}

func applyFilter(tx *gorm.DB, q *Query) *gorm.DB {
	if q.IsEmpty() {
		return tx
	}
	return tx.Clauses(clause.Where{Exprs: sqlExprs(q)})
}

func applySorts(tx *gorm.DB, q *Query) *gorm.DB {
	for _, s := range q.Sorts() {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: s.Field}, Desc: s.Desc})
	}
	return tx
}

func sqlExprs(q *Query) []clause.Expression {
	exprs := make([]clause.Expression, 0, len(q.Conds()))
	for _, c := range q.Conds() {
		col := clause.Column{Name: c.Field}
		switch c.Op {
		case OpEq:
			exprs = append(exprs, clause.Eq{Column: col, Value: c.Value})
		case OpNe:
			exprs = append(exprs, clause.Neq{Column: col, Value: c.Value})
		case OpGt:
			exprs = append(exprs, clause.Gt{Column: col, Value: c.Value})
		case OpGte:
			exprs = append(exprs, clause.Gte{Column: col, Value: c.Value})
		case OpLt:
			exprs = append(exprs, clause.Lt{Column: col, Value: c.Value})
		case OpLte:
			exprs = append(exprs, clause.Lte{Column: col, Value: c.Value})
		case OpIn:
			values, _ := c.Value.([]any)
			exprs = append(exprs, clause.IN{Column: col, Values: values})
		}
	}

group:
	for _, alts := range q.orGroups() {
		ors := make([]clause.Expression, 0, len(alts))
		for _, alt := range alts {
			if alt.IsEmpty() {
				continue group
			}
			ors = append(ors, clause.And(sqlExprs(alt)...))
		}
		// a one-element OrConditions is joined with OR by gorm, so unwrap it
		if len(ors) == 1 {
			exprs = append(exprs, ors[0])
			continue
		}
		exprs = append(exprs, clause.Or(ors...))
	}
	return exprs
}
