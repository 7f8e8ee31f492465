// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// archive.go — PostgreSQL level archive: versioned DDL with a migrations
// ledger, bulk COPY of whole-document snapshots, search, restore and prune.

package gdsave

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/AndrewDonelson/gdsave/internal/clock"
	"github.com/AndrewDonelson/gdsave/internal/l3"
	"github.com/AndrewDonelson/gdsave/internal/metrics"
	"github.com/oklog/ulid/v2"
)

const migrationTable = "_gdsave_migrations"

// archiveColumns are the searchable columns; the payload is read only by
// restore.
var archiveColumns = []string{
	"id", "snapshot_id", "position", "title", "author", "song",
	"object_count", "sealed", "archived_at",
}

var copyColumns = []string{
	"snapshot_id", "position", "title", "author", "song",
	"object_count", "sealed", "payload", "archived_at",
}

type migration struct {
	name string
	ddl  string // %[1]s is the archive table
}

var archiveMigrations = []migration{
	{"001_create_archive", `CREATE TABLE IF NOT EXISTS %[1]s (
  id           BIGSERIAL PRIMARY KEY,
  snapshot_id  TEXT NOT NULL,
  position     INTEGER NOT NULL,
  title        TEXT NOT NULL DEFAULT '',
  author       TEXT NOT NULL DEFAULT '',
  song         BIGINT NOT NULL DEFAULT 0,
  object_count INTEGER NOT NULL DEFAULT -1,
  sealed       BOOLEAN NOT NULL DEFAULT false,
  payload      BYTEA NOT NULL,
  archived_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`},
	{"002_snapshot_index", `CREATE UNIQUE INDEX IF NOT EXISTS %[1]s_snapshot_idx ON %[1]s (snapshot_id, position)`},
	{"003_title_index", `CREATE INDEX IF NOT EXISTS %[1]s_title_idx ON %[1]s (lower(title))`},
}

// MigrationRecord describes a single applied migration.
type MigrationRecord struct {
	ID        int
	Name      string
	AppliedAt time.Time
}

// ArchivedLevel is one archived level's metadata.
type ArchivedLevel struct {
	ID          int64
	SnapshotID  string
	Position    int
	Title       string
	Author      string
	Song        int64
	ObjectCount int // -1 when the level was not decoded at archive time
	Sealed      bool
	ArchivedAt  time.Time
}

// snapshotIDs generates monotonic ULIDs from the configured clock.
type snapshotIDs struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newSnapshotIDs() *snapshotIDs {
	return &snapshotIDs{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (s *snapshotIDs) next(now time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(now), s.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// ────────────────────────────────────────────────────────────────────────────
// Migrations
// ────────────────────────────────────────────────────────────────────────────

// Migrate creates or upgrades the archive table (idempotent).
func (e *Editor) Migrate(ctx context.Context) error {
	if err := e.archiveReady(); err != nil {
		return err
	}
	if err := e.ensureMigrationTable(ctx); err != nil {
		return err
	}
	for _, m := range archiveMigrations {
		name := e.archive.Table() + "/" + m.name
		if err := e.applyMigration(ctx, name, fmt.Sprintf(m.ddl, e.archive.Table())); err != nil {
			return err
		}
	}
	return nil
}

// MigrateFrom applies extra SQL files from dir in NNN_description.sql order.
// Each file runs once and is recorded in the migrations ledger.
func (e *Editor) MigrateFrom(ctx context.Context, dir string) error {
	if err := e.archiveReady(); err != nil {
		return err
	}
	if err := e.ensureMigrationTable(ctx); err != nil {
		return err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("%w: migrate-from readdir %q: %w", ErrIO, dir, err)
	}
	var files []string
	for _, ent := range entries {
		if !ent.IsDir() && strings.HasSuffix(ent.Name(), ".sql") {
			files = append(files, ent.Name())
		}
	}
	sort.Strings(files)
	for _, fname := range files {
		content, err := os.ReadFile(filepath.Join(dir, fname))
		if err != nil {
			return fmt.Errorf("%w: migrate-from read %q: %w", ErrIO, fname, err)
		}
		if err := e.applyMigration(ctx, "file/"+fname, string(content)); err != nil {
			return err
		}
	}
	return nil
}

// MigrationStatus lists applied migrations in order.
func (e *Editor) MigrationStatus(ctx context.Context) ([]MigrationRecord, error) {
	if err := e.archiveReady(); err != nil {
		return nil, err
	}
	rows, err := e.archive.Query(ctx,
		"SELECT id, name, applied_at FROM "+migrationTable+" ORDER BY id", nil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []MigrationRecord
	for rows.Next() {
		var r MigrationRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.AppliedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (e *Editor) ensureMigrationTable(ctx context.Context) error {
	return e.archive.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (
id         SERIAL PRIMARY KEY,
name       TEXT NOT NULL UNIQUE,
applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, nil)
}

func (e *Editor) applyMigration(ctx context.Context, name, ddl string) error {
	applied, err := e.isMigrationApplied(ctx, name)
	if err != nil || applied {
		return err
	}
	tx, err := e.archive.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("migrate %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, ddl); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("migrate %s: %w", name, err)
	}
	if _, err := tx.Exec(ctx, "INSERT INTO "+migrationTable+" (name) VALUES ($1)", name); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("migrate %s: record: %w", name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("migrate %s: commit: %w", name, err)
	}
	e.logger.Info("gdsave: migration applied", "name", name)
	return nil
}

func (e *Editor) isMigrationApplied(ctx context.Context, name string) (bool, error) {
	var dummy int
	err := e.archive.QueryRow(ctx,
		"SELECT 1 FROM "+migrationTable+" WHERE name = $1", []any{name}).Scan(&dummy)
	if err != nil {
		if l3.IsNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Archive / search / restore
// ────────────────────────────────────────────────────────────────────────────

// Archive copies every level of doc into the archive as one snapshot and
// returns the snapshot id and row count. Each level is stored as its .gmd
// plist, sealed when an encryption key is configured.
func (e *Editor) Archive(ctx context.Context, doc *SaveDocument) (string, int64, error) {
	if err := e.archiveReady(); err != nil {
		return "", 0, err
	}
	now := e.cfg.Clock.Now()
	snapshot, err := e.snapshots.next(now)
	if err != nil {
		return "", 0, fmt.Errorf("archive: snapshot id: %w", err)
	}
	rows := make([][]any, 0, doc.Len())
	for i, l := range doc.Levels {
		var buf bytes.Buffer
		if err := l.WriteGMD(&buf); err != nil {
			return "", 0, fmt.Errorf("archive level %d: %w", i, err)
		}
		payload := buf.Bytes()
		if e.encryptor != nil {
			if payload, err = e.encryptor.Encrypt(payload, archiveAAD(snapshot, i)); err != nil {
				return "", 0, fmt.Errorf("archive level %d: seal: %w", i, err)
			}
		}
		count := -1
		if l.State() == StateDecrypted {
			count = len(l.data.Objects)
		}
		rows = append(rows, []any{
			snapshot, i, l.Title, l.Author, l.Song,
			count, e.encryptor != nil, payload, now,
		})
	}

	start := e.cfg.Clock.Now()
	n, err := e.archive.CopyFromRows(ctx, copyColumns, l3.CopyFromSlice(rows))
	e.metrics.RecordLatency(metrics.TierArchive, "copy", clock.Since(e.cfg.Clock, start))
	if err != nil {
		e.fail(metrics.TierArchive, "copy")
		return "", 0, fmt.Errorf("archive: %w", err)
	}
	e.stats.Archived.Add(n)
	e.logger.Info("gdsave: archive written", "snapshot", snapshot, "levels", n)
	return snapshot, n, nil
}

// SearchArchive returns archived level metadata matching q (nil q = all,
// newest first, at most 100 rows).
func (e *Editor) SearchArchive(ctx context.Context, q *Query) ([]ArchivedLevel, error) {
	if err := e.archiveReady(); err != nil {
		return nil, err
	}
	if q == nil {
		def := Q().OrderBy("id").Desc().Build()
		q = &def
	}
	if err := q.validate(archiveColumns); err != nil {
		return nil, err
	}
	sql, args := q.ToSQL(e.archive.Table(), archiveColumns, 100)
	rows, err := e.archive.Query(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ArchivedLevel
	for rows.Next() {
		var a ArchivedLevel
		if err := rows.Scan(&a.ID, &a.SnapshotID, &a.Position, &a.Title, &a.Author,
			&a.Song, &a.ObjectCount, &a.Sealed, &a.ArchivedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountArchived returns the number of archived levels matching q (nil q = all).
func (e *Editor) CountArchived(ctx context.Context, q *Query) (int64, error) {
	if err := e.archiveReady(); err != nil {
		return 0, err
	}
	where := ""
	var args []any
	if q != nil {
		where = q.Where
		args = q.Args
	}
	return e.archive.Count(ctx, where, args)
}

// RestoreLevel rebuilds the level stored in archive row id.
func (e *Editor) RestoreLevel(ctx context.Context, id int64) (*Level, error) {
	if err := e.archiveReady(); err != nil {
		return nil, err
	}
	var (
		snapshot string
		position int
		sealed   bool
		payload  []byte
	)
	err := e.archive.QueryRow(ctx,
		"SELECT snapshot_id, position, sealed, payload FROM "+e.archive.Table()+" WHERE id = $1",
		[]any{id}).Scan(&snapshot, &position, &sealed, &payload)
	if err != nil {
		if l3.IsNoRows(err) {
			return nil, fmt.Errorf("%w: archive row %d", ErrLevelNotFound, id)
		}
		return nil, fmt.Errorf("restore %d: %w", id, err)
	}
	return e.openArchived(snapshot, position, sealed, payload)
}

// RestoreSnapshot rebuilds a document holding every level of a snapshot in
// its original order.
func (e *Editor) RestoreSnapshot(ctx context.Context, snapshot string) (*SaveDocument, error) {
	if err := e.archiveReady(); err != nil {
		return nil, err
	}
	rows, err := e.archive.Query(ctx,
		"SELECT position, sealed, payload FROM "+e.archive.Table()+" WHERE snapshot_id = $1 ORDER BY position",
		[]any{snapshot})
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	doc := NewSaveDocument()
	for rows.Next() {
		var (
			position int
			sealed   bool
			payload  []byte
		)
		if err := rows.Scan(&position, &sealed, &payload); err != nil {
			return nil, err
		}
		l, err := e.openArchived(snapshot, position, sealed, payload)
		if err != nil {
			return nil, err
		}
		doc.Levels = append(doc.Levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if doc.Len() == 0 {
		return nil, fmt.Errorf("%w: snapshot %s", ErrLevelNotFound, snapshot)
	}
	return doc, nil
}

// PruneSnapshot deletes a snapshot and returns how many levels it held.
func (e *Editor) PruneSnapshot(ctx context.Context, snapshot string) (int64, error) {
	if err := e.archiveReady(); err != nil {
		return 0, err
	}
	return e.archive.Delete(ctx, "snapshot_id = $1", []any{snapshot})
}

func (e *Editor) openArchived(snapshot string, position int, sealed bool, payload []byte) (*Level, error) {
	if sealed {
		if e.encryptor == nil {
			return nil, fmt.Errorf("%w: archived level is sealed but no encryption key is configured", ErrInvalidConfig)
		}
		var err error
		if payload, err = e.encryptor.Decrypt(payload, archiveAAD(snapshot, position)); err != nil {
			return nil, fmt.Errorf("restore %s/%d: %w", snapshot, position, err)
		}
	}
	return ReadGMD(bytes.NewReader(payload))
}

func (e *Editor) archiveReady() error {
	if e.closed.Load() {
		return ErrClosed
	}
	if e.archive == nil {
		return ErrArchiveUnavailable
	}
	return nil
}

func archiveAAD(snapshot string, position int) []byte {
	return []byte(snapshot + ":" + strconv.Itoa(position))
}
