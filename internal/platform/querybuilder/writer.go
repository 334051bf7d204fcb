// Package querybuilder assembles the postgres statements the repositories run.
// Every bound value becomes a numbered $n placeholder in the order it is written.
package querybuilder

import (
	"strconv"
	"strings"
)

// sqlWriter accumulates statement text and its bound values.
type sqlWriter struct {
	sb   strings.Builder
	args []any
}

func (w *sqlWriter) raw(parts ...string) {
	for _, p := range parts {
		w.sb.WriteString(p)
	}
}

// bind appends v to the args and writes its placeholder.
func (w *sqlWriter) bind(v any) {
	w.args = append(w.args, v)
	w.sb.WriteByte('$')
	w.sb.WriteString(strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) list(values []any) {
	for i, v := range values {
		if i > 0 {
			w.sb.WriteString(", ")
		}
		w.bind(v)
	}
}

// expr writes a fragment whose ? marks take values from vals in order.
// Marks beyond len(vals) are left as they are.
func (w *sqlWriter) expr(fragment string, vals []any) {
	for len(fragment) > 0 {
		i := strings.IndexByte(fragment, '?')
		if i < 0 || len(vals) == 0 {
			w.sb.WriteString(fragment)
			return
		}
		w.sb.WriteString(fragment[:i])
		w.bind(vals[0])
		vals = vals[1:]
		fragment = fragment[i+1:]
	}
}

func (w *sqlWriter) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.sb.WriteString(" WHERE ")
		} else {
			w.sb.WriteString(" AND ")
		}
		c.writeTo(w)
	}
}

func (w *sqlWriter) clause(keyword, body string) {
	if body == "" {
		return
	}
	w.raw(" ", keyword, body)
}

func (w *sqlWriter) done() (string, []any, error) {
	return w.sb.String(), w.args, nil
}
