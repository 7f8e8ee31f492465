// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// l3.go — PostgreSQL level archive adapter: pool lifecycle, parameterised
// queries against the archive table, bulk COPY of level snapshots,
// transactions for migrations, and Count/Delete helpers.

// Package l3 provides the PostgreSQL archive tier adapter.
package l3

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrBadTable is returned for a table name that is not a plain identifier.
var ErrBadTable = errors.New("l3: invalid table name")

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ValidTable reports whether name can be interpolated into SQL as a table.
func ValidTable(name string) bool {
	return identRe.MatchString(name)
}

// Store is the archive adapter bound to one table.
type Store struct {
	pool  *pgxpool.Pool
	table string
}

// New creates a Store from an existing pool.
func New(pool *pgxpool.Pool, table string) (*Store, error) {
	if !ValidTable(table) {
		return nil, fmt.Errorf("%w: %q", ErrBadTable, table)
	}
	return &Store{pool: pool, table: table}, nil
}

// Connect opens a pool for dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn, table string) (*Store, error) {
	if !ValidTable(table) {
		return nil, fmt.Errorf("%w: %q", ErrBadTable, table)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("l3 connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("l3 ping: %w", err)
	}
	return &Store{pool: pool, table: table}, nil
}

// Table returns the archive table name.
func (s *Store) Table() string { return s.table }

// Ping verifies the pool is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Query runs a parameterised SELECT.
func (s *Store) Query(ctx context.Context, sql string, args []any) (pgx.Rows, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("l3 query: %w", err)
	}
	return rows, nil
}

// QueryRow runs a single-row query.
func (s *Store) QueryRow(ctx context.Context, sql string, args []any) pgx.Row {
	return s.pool.QueryRow(ctx, sql, args...)
}

// Exec executes a statement.
func (s *Store) Exec(ctx context.Context, sql string, args []any) error {
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("l3 exec: %w", err)
	}
	return nil
}

// CopyFromRows bulk-loads rows into the archive table with COPY.
func (s *Store) CopyFromRows(ctx context.Context, columns []string, rows pgx.CopyFromSource) (int64, error) {
	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{s.table}, columns, rows)
	if err != nil {
		return 0, fmt.Errorf("l3 copy %s: %w", s.table, err)
	}
	return n, nil
}

// CopyFromSlice wraps a slice of row values for CopyFromRows.
func CopyFromSlice(rows [][]any) pgx.CopyFromSource {
	return pgx.CopyFromRows(rows)
}

// BeginTx starts a transaction.
func (s *Store) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("l3 begin: %w", err)
	}
	return tx, nil
}

// Count returns the number of archive rows matching where.
func (s *Store) Count(ctx context.Context, where string, args []any) (int64, error) {
	sql := "SELECT COUNT(*) FROM " + s.table
	if where != "" {
		sql += " WHERE " + where
	}
	var n int64
	if err := s.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("l3 count %s: %w", s.table, err)
	}
	return n, nil
}

// Delete removes archive rows matching where and returns how many went.
// An empty where is rejected.
func (s *Store) Delete(ctx context.Context, where string, args []any) (int64, error) {
	if where == "" {
		return 0, fmt.Errorf("l3 delete %s: empty where clause", s.table)
	}
	tag, err := s.pool.Exec(ctx, "DELETE FROM "+s.table+" WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("l3 delete %s: %w", s.table, err)
	}
	return tag.RowsAffected(), nil
}

// IsNoRows reports whether err means a single-row query matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// Close shuts down the pool.
func (s *Store) Close() { s.pool.Close() }
