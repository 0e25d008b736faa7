package store

type Op string

const (
	OpEq  Op = "eq"
	OpNe  Op = "ne"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

type Cond struct {
	Field string
	Op    Op
	Value any
}

type Sort struct {
	Field string
	Desc  bool
}

// Query is a backend-neutral filter: conditions are ANDed, each Or group
// matches when any of its alternatives matches. A nil *Query matches everything.
type Query struct {
	conds []Cond
	or    [][]*Query
	sorts []Sort
	limit int64
}

func NewQuery() *Query {
	return &Query{}
}

// Eq matches field == value. A nil value matches a missing or null field.
func (q *Query) Eq(field string, value any) *Query {
	return q.add(field, OpEq, value)
}

func (q *Query) Ne(field string, value any) *Query {
	return q.add(field, OpNe, value)
}

func (q *Query) Gt(field string, value any) *Query {
	return q.add(field, OpGt, value)
}

func (q *Query) Gte(field string, value any) *Query {
	return q.add(field, OpGte, value)
}

func (q *Query) Lt(field string, value any) *Query {
	return q.add(field, OpLt, value)
}

func (q *Query) Lte(field string, value any) *Query {
	return q.add(field, OpLte, value)
}

func (q *Query) In(field string, values ...any) *Query {
	return q.add(field, OpIn, values)
}

// EqIf adds the equality only when value is non-empty.
func (q *Query) EqIf(field, value string) *Query {
	if value == "" {
		return q
	}
	return q.Eq(field, value)
}

// Between adds an inclusive range; empty bounds are skipped.
func (q *Query) Between(field, from, to string) *Query {
	if from != "" {
		q.Gte(field, from)
	}
	if to != "" {
		q.Lte(field, to)
	}
	return q
}

func (q *Query) Or(alternatives ...*Query) *Query {
	q.or = append(q.or, alternatives)
	return q
}

func (q *Query) Asc(field string) *Query {
	q.sorts = append(q.sorts, Sort{Field: field})
	return q
}

func (q *Query) Desc(field string) *Query {
	q.sorts = append(q.sorts, Sort{Field: field, Desc: true})
	return q
}

func (q *Query) Limit(n int64) *Query {
	q.limit = n
	return q
}

func (q *Query) Conds() []Cond {
	if q == nil {
		return nil
	}
	return q.conds
}

func (q *Query) Sorts() []Sort {
	if q == nil {
		return nil
	}
	return q.sorts
}

func (q *Query) IsEmpty() bool {
	return q == nil || (len(q.conds) == 0 && len(q.or) == 0)
}

func (q *Query) add(field string, op Op, value any) *Query {
	q.conds = append(q.conds, Cond{Field: field, Op: op, Value: value})
	return q
}

func (q *Query) orGroups() [][]*Query {
	if q == nil {
		return nil
	}
	return q.or
}

func (q *Query) limitValue() int64 {
	if q == nil {
		return 0
	}
	return q.limit
}
