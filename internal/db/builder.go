package db

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// identRegex accepts plain lower-case SQL identifiers, optionally schema-qualified.
var identRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)?$`)

// Direction is an ORDER BY direction.
type Direction string

// Supported sort directions.
const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type predicate struct {
	column string
	value  any
}

type orderTerm struct {
	column    string
	dir       Direction
	nullsLast bool
}

// SelectBuilder is a fluent builder for read-only SELECT statements.
// Identifiers are checked against identRegex and every value, including
// LIMIT, is emitted as a positional argument.
type SelectBuilder struct {
	table   string
	columns []string
	where   []predicate
	order   []orderTerm
	limit   int
}

// Select starts building a SELECT of the given columns.
func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

// From sets the source table.
func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// WhereEq adds a "column = $n" predicate. Predicates are joined with AND.
func (b *SelectBuilder) WhereEq(column string, value any) *SelectBuilder {
	b.where = append(b.where, predicate{column: column, value: value})
	return b
}

// OrderBy adds a sort term. NULL placement is the server default
// (Postgres: NULLS FIRST for DESC).
func (b *SelectBuilder) OrderBy(column string, dir Direction) *SelectBuilder {
	b.order = append(b.order, orderTerm{column: column, dir: dir})
	return b
}

// OrderByNullsLast adds a sort term that places NULLs after every value.
func (b *SelectBuilder) OrderByNullsLast(column string, dir Direction) *SelectBuilder {
	b.order = append(b.order, orderTerm{column: column, dir: dir, nullsLast: true})
	return b
}

// Limit caps the number of returned rows. Zero means no LIMIT clause.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

// Build validates and renders the statement.
func (b *SelectBuilder) Build() (*Query, error) {
	if err := b.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	var sb strings.Builder
	args := make([]any, 0, len(b.where)+1)

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(b.columns, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)

	for i, p := range b.where {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, p.value)
		sb.WriteString(p.column)
		sb.WriteString(" = $")
		sb.WriteString(strconv.Itoa(len(args)))
	}

	for i, o := range b.order {
		if i == 0 {
			sb.WriteString(" ORDER BY ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(o.column)
		sb.WriteByte(' ')
		sb.WriteString(string(o.dir))
		if o.nullsLast {
			sb.WriteString(" NULLS LAST")
		}
	}

	if b.limit > 0 {
		args = append(args, b.limit)
		sb.WriteString(" LIMIT $")
		sb.WriteString(strconv.Itoa(len(args)))
	}

	return &Query{SQL: sb.String(), Args: args}, nil
}

// MustBuild is like Build but panics on error (for tests and static queries).
func (b *SelectBuilder) MustBuild() *Query {
	q, err := b.Build()
	if err != nil {
		panic(err)
	}
	return q
}

func (b *SelectBuilder) validate() error {
	if b.table == "" {
		return fmt.Errorf("table is required")
	}
	if !identRegex.MatchString(b.table) {
		return fmt.Errorf("invalid table %q", b.table)
	}
	if len(b.columns) == 0 {
		return fmt.Errorf("at least one column is required")
	}
	for _, c := range b.columns {
		if !identRegex.MatchString(c) {
			return fmt.Errorf("invalid column %q", c)
		}
	}
	for _, p := range b.where {
		if !identRegex.MatchString(p.column) {
			return fmt.Errorf("invalid filter column %q", p.column)
		}
	}
	for _, o := range b.order {
		if !identRegex.MatchString(o.column) {
			return fmt.Errorf("invalid order column %q", o.column)
		}
		if o.dir != Asc && o.dir != Desc {
			return fmt.Errorf("invalid order direction %q", o.dir)
		}
	}
	if b.limit < 0 {
		return fmt.Errorf("limit must not be negative, got %d", b.limit)
	}
	return nil
}
