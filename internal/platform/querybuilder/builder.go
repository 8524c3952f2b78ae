// Package querybuilder renders the handful of PostgreSQL statement shapes the
// repositories need, with positional $n arguments.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates SQL text and the arguments bound so far.
type writer struct {
	sb   strings.Builder
	args []any
}

func (w *writer) str(parts ...string) {
	for _, p := range parts {
		w.sb.WriteString(p)
	}
}

func (w *writer) bind(v any) {
	w.args = append(w.args, v)
	w.sb.WriteByte('$')
	w.sb.WriteString(strconv.Itoa(len(w.args)))
}

// expr copies raw, replacing each '?' with the next bound argument. Extra
// '?' characters without an argument are kept.
func (w *writer) expr(raw string, args []any) {
	for i := 0; i < len(raw); i++ {
		if raw[i] == '?' && len(args) > 0 {
			w.bind(args[0])
			args = args[1:]
			continue
		}
		w.sb.WriteByte(raw[i])
	}
}

func (w *writer) list(keyword string, items []string) {
	if len(items) > 0 {
		w.str(" ", keyword, " ", strings.Join(items, ", "))
	}
}

func (w *writer) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.str(" WHERE ")
		} else {
			w.str(" AND ")
		}
		c.render(w)
	}
}

func (w *writer) done() (string, []any, error) {
	return w.sb.String(), w.args, nil
}

// Condition is one predicate of a WHERE clause. Conditions are ANDed.
type Condition interface {
	render(w *writer)
}

type condFunc func(w *writer)

func (f condFunc) render(w *writer) { f(w) }

func Eq(column string, value any) Condition {
	return condFunc(func(w *writer) {
		w.str(column, " = ")
		w.bind(value)
	})
}

// AnyOf renders "column = ANY($n)" with value bound as a single array argument.
func AnyOf(column string, value any) Condition {
	return condFunc(func(w *writer) {
		w.str(column, " = ANY(")
		w.bind(value)
		w.str(")")
	})
}

// Expr is a raw predicate with '?' placeholders.
func Expr(raw string, args ...any) Condition {
	return condFunc(func(w *writer) { w.expr(raw, args) })
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, columns...)
	return b
}

func (b *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

// Limit of zero or less means no LIMIT clause.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	switch {
	case len(b.columns) == 0:
		return "", nil, errors.New("select: no columns")
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("select: no table")
	}

	var w writer
	w.str("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	w.list("GROUP BY", b.groupBy)
	w.list("ORDER BY", b.orderBy)
	if b.limit > 0 {
		w.str(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.done()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values adds one row. Call it again for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix is appended verbatim, e.g. an ON CONFLICT or RETURNING clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("insert: no table")
	case len(b.columns) == 0:
		return "", nil, errors.New("insert: no columns")
	case len(b.rows) == 0:
		return "", nil, errors.New("insert: no rows")
	}

	var w writer
	w.str("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert: row %d has %d values for %d columns", i, len(row), len(b.columns))
		}
		if i > 0 {
			w.str(", ")
		}
		w.str("(")
		for j, v := range row {
			if j > 0 {
				w.str(", ")
			}
			w.bind(v)
		}
		w.str(")")
	}
	if b.suffix != "" {
		w.str(" ", b.suffix)
	}
	return w.done()
}

type assignment struct {
	column string
	render func(w *writer)
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, render: func(w *writer) { w.bind(value) }})
	return b
}

// SetExpr assigns a raw expression such as NOW() or "count + ?".
func (b *UpdateBuilder) SetExpr(column, raw string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, render: func(w *writer) { w.expr(raw, args) }})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, errors.New("update: no table")
	case len(b.sets) == 0:
		return "", nil, errors.New("update: no assignments")
	}

	var w writer
	w.str("UPDATE ", b.table, " SET ")
	for i, a := range b.sets {
		if i > 0 {
			w.str(", ")
		}
		w.str(a.column, " = ")
		a.render(&w)
	}
	w.where(b.where)
	return w.done()
}
