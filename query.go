// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// query.go — fluent Query builder for parameterised SELECTs over the level
// archive, consumed by SearchArchive and CountArchived.

package gdsave

import (
	"fmt"
	"slices"
	"strings"
)

// Query specifies archive search parameters.
type Query struct {
	Where   string
	Args    []any
	OrderBy string
	Desc    bool
	Limit   int
	Offset  int
}

// queryBuilder is the fluent builder for Query.
type queryBuilder struct{ q Query }

// Q returns a new fluent query builder.
func Q() *queryBuilder { return &queryBuilder{} }

// Where replaces the condition. Placeholders are $1..$n matching args.
func (b *queryBuilder) Where(clause string, args ...any) *queryBuilder {
	b.q.Where = clause
	b.q.Args = args
	return b
}

// and appends a single-argument condition; format holds one %d for the
// placeholder number.
func (b *queryBuilder) and(format string, arg any) *queryBuilder {
	b.q.Args = append(b.q.Args, arg)
	cond := fmt.Sprintf(format, len(b.q.Args))
	if b.q.Where == "" {
		b.q.Where = cond
	} else {
		b.q.Where = "(" + b.q.Where + ") AND " + cond
	}
	return b
}

// Title matches titles containing s, ignoring case.
func (b *queryBuilder) Title(s string) *queryBuilder {
	return b.and("title ILIKE $%d", "%"+escapeLike(s)+"%")
}

// Author matches an exact author name, ignoring case.
func (b *queryBuilder) Author(name string) *queryBuilder {
	return b.and("lower(author) = lower($%d)", name)
}

// Song matches a custom song id.
func (b *queryBuilder) Song(id int64) *queryBuilder { return b.and("song = $%d", id) }

// Snapshot restricts results to one archive snapshot.
func (b *queryBuilder) Snapshot(id string) *queryBuilder { return b.and("snapshot_id = $%d", id) }

func (b *queryBuilder) OrderBy(col string) *queryBuilder { b.q.OrderBy = col; return b }
func (b *queryBuilder) Desc() *queryBuilder              { b.q.Desc = true; return b }
func (b *queryBuilder) Limit(n int) *queryBuilder        { b.q.Limit = n; return b }
func (b *queryBuilder) Offset(n int) *queryBuilder       { b.q.Offset = n; return b }
func (b *queryBuilder) Build() Query                     { return b.q }

// ToSQL converts q into a SELECT over table.
func (q Query) ToSQL(table string, columns []string, defaultLimit int) (string, []any) {
	cols := "*"
	if len(columns) > 0 {
		cols = strings.Join(columns, ", ")
	}
	sql := fmt.Sprintf("SELECT %s FROM %s", cols, table)
	args := q.Args
	if args == nil {
		args = []any{}
	}
	if q.Where != "" {
		sql += " WHERE " + q.Where
	}
	if q.OrderBy != "" {
		sql += " ORDER BY " + q.OrderBy
		if q.Desc {
			sql += " DESC"
		}
	}
	limit := q.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d", limit)
	}
	if q.Offset > 0 {
		sql += fmt.Sprintf(" OFFSET %d", q.Offset)
	}
	return sql, args
}

// validate rejects orderings outside the given columns and negative paging.
func (q Query) validate(columns []string) error {
	if q.OrderBy != "" && !slices.Contains(columns, q.OrderBy) {
		return fmt.Errorf("%w: cannot order by %q", ErrInvalidQuery, q.OrderBy)
	}
	if q.Limit < 0 || q.Offset < 0 {
		return fmt.Errorf("%w: negative limit or offset", ErrInvalidQuery)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
