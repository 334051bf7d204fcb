package querybuilder

// Condition is one predicate of a WHERE clause; a clause ANDs its conditions together.
type Condition interface {
	writeTo(w *sqlWriter)
}

type compare struct {
	column string
	op     string
	value  any
}

func (c compare) writeTo(w *sqlWriter) {
	w.raw(c.column, " ", c.op, " ")
	w.bind(c.value)
}

func Eq(column string, value any) Condition  { return compare{column, "=", value} }
func Ne(column string, value any) Condition  { return compare{column, "<>", value} }
func Gte(column string, value any) Condition { return compare{column, ">=", value} }
func Lte(column string, value any) Condition { return compare{column, "<=", value} }

type membership struct {
	column string
	values []any
}

// In matches any of values. An empty set matches nothing.
func In(column string, values []any) Condition {
	return membership{column: column, values: values}
}

func (m membership) writeTo(w *sqlWriter) {
	if len(m.values) == 0 {
		w.raw("1=0")
		return
	}
	w.raw(m.column, " IN (")
	w.list(m.values)
	w.raw(")")
}

type span struct {
	column string
	lo, hi any
	negate bool
}

func Between(column string, lo, hi any) Condition {
	return span{column: column, lo: lo, hi: hi}
}

func NotBetween(column string, lo, hi any) Condition {
	return span{column: column, lo: lo, hi: hi, negate: true}
}

func (s span) writeTo(w *sqlWriter) {
	if s.negate {
		w.raw("NOT (")
	}
	w.raw(s.column, " BETWEEN ")
	w.bind(s.lo)
	w.raw(" AND ")
	w.bind(s.hi)
	if s.negate {
		w.raw(")")
	}
}

type fragment struct {
	sql  string
	args []any
}

// Expr is a raw predicate; each ? is bound to the next of args.
func Expr(sql string, args ...any) Condition {
	return fragment{sql: sql, args: args}
}

func (f fragment) writeTo(w *sqlWriter) {
	w.expr(f.sql, f.args)
}

type exists struct {
	sub *SelectBuilder
}

// Exists wraps a correlated subquery. Its placeholders continue the numbering of the outer query.
func Exists(sub *SelectBuilder) Condition {
	return exists{sub: sub}
}

func (e exists) writeTo(w *sqlWriter) {
	w.raw("EXISTS (")
	e.sub.writeTo(w)
	w.raw(")")
}
