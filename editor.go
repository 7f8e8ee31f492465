// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// editor.go — Editor, the long-lived entry point for tools that repeatedly
// open the save file: loading and saving with backups, tiered level decoding
// (in-process, Redis, full decode), and the optional PostgreSQL archive.

package gdsave

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/AndrewDonelson/gdsave/internal/clock"
	"github.com/AndrewDonelson/gdsave/internal/l1"
	"github.com/AndrewDonelson/gdsave/internal/l2"
	"github.com/AndrewDonelson/gdsave/internal/l3"
	"github.com/AndrewDonelson/gdsave/internal/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// ────────────────────────────────────────────────────────────────────────────
// Stats
// ────────────────────────────────────────────────────────────────────────────

type editorStats struct {
	Loads       atomic.Int64
	Saves       atomic.Int64
	Decodes     atomic.Int64
	L1Hits      atomic.Int64
	L2Hits      atomic.Int64
	FullDecodes atomic.Int64
	Archived    atomic.Int64
	Errors      atomic.Int64
}

// Stats is the snapshot returned by Editor.Stats().
type Stats struct {
	Loads       int64
	Saves       int64
	Decodes     int64 // levels moved to the decrypted state
	L1Hits      int64
	L2Hits      int64
	FullDecodes int64 // decodes that ran the inflate pipeline
	Archived    int64 // levels copied into the archive
	Errors      int64
	L1Entries   int64
}

// ────────────────────────────────────────────────────────────────────────────
// Editor
// ────────────────────────────────────────────────────────────────────────────

// Editor loads, decodes and saves Geometry Dash save files. It is safe for
// concurrent use; a Level and a SaveDocument are not, so callers must not
// decode or mutate the same level from two goroutines.
type Editor struct {
	cfg       Config
	l1        *l1.Store[*LevelData]
	l2        *l2.Store
	redis     redis.UniversalClient
	archive   *l3.Store
	encryptor Encryptor
	snapshots *snapshotIDs
	stats     editorStats
	metrics   metrics.MetricsRecorder
	logger    Logger
	closed    atomic.Bool
}

// NewEditor creates an Editor from cfg. Redis and PostgreSQL tiers are
// enabled by RedisAddr and PostgresDSN; neither is dialled until first use.
func NewEditor(cfg Config) (*Editor, error) {
	cfg.defaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	e := &Editor{
		cfg:       cfg,
		snapshots: newSnapshotIDs(),
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}

	// Encryption
	if len(cfg.EncryptionKey) > 0 {
		enc, err := NewAES256GCM(cfg.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("gdsave: encryption init: %w", err)
		}
		e.encryptor = enc
	}

	// L1
	e.l1 = l1.New[*LevelData](l1.Options{
		MaxEntries: cfg.L1.MaxEntries,
		TTL:        cfg.L1.TTL,
		Eviction:   cfg.L1.Eviction.toL1(),
		Clock:      cfg.Clock,
		OnEvict: func(fp string) {
			e.logger.Debug("gdsave: l1 evicted level", "fingerprint", fp)
		},
	})

	// L2
	if cfg.RedisAddr != "" {
		e.redis = redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.L2Pool.PoolSize,
			DialTimeout:  cfg.L2Pool.DialTimeout,
			ReadTimeout:  cfg.L2Pool.ReadTimeout,
			WriteTimeout: cfg.L2Pool.WriteTimeout,
		})
		e.l2 = l2.New(l2.Options{
			Client:    e.redis,
			Codec:     cfg.Codec,
			KeyPrefix: cfg.L2KeyPrefix,
		})
	}

	// Archive
	if cfg.PostgresDSN != "" {
		pgCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN)
		if err != nil {
			e.closeClients()
			return nil, fmt.Errorf("%w: postgres dsn: %w", ErrInvalidConfig, err)
		}
		pgCfg.MaxConns = cfg.ArchivePool.MaxConns
		pgCfg.MinConns = cfg.ArchivePool.MinConns
		pgCfg.MaxConnLifetime = cfg.ArchivePool.MaxConnLifetime
		pgCfg.MaxConnIdleTime = cfg.ArchivePool.MaxConnIdleTime

		pool, err := pgxpool.NewWithConfig(context.Background(), pgCfg)
		if err != nil {
			e.closeClients()
			return nil, fmt.Errorf("gdsave: postgres pool: %w", err)
		}
		if e.archive, err = l3.New(pool, cfg.ArchiveTable); err != nil {
			pool.Close()
			e.closeClients()
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	e.logger.Debug("gdsave: editor ready",
		"version", Version(),
		"l2", e.l2 != nil, "archive", e.archive != nil, "sealed", e.encryptor != nil,
		"workers", cfg.DecodeWorkers)
	return e, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Load / Save
// ────────────────────────────────────────────────────────────────────────────

// Load reads Config.SavePath, or the game's local levels file when unset.
func (e *Editor) Load(ctx context.Context) (*SaveDocument, error) {
	path, err := e.savePath()
	if err != nil {
		return nil, err
	}
	return e.LoadFile(ctx, path)
}

// LoadFile reads and decodes the save file at path. Levels stay encrypted
// until passed to Decode.
func (e *Editor) LoadFile(ctx context.Context, path string) (*SaveDocument, error) {
	if err := e.ready(ctx); err != nil {
		return nil, err
	}
	start := e.cfg.Clock.Now()
	doc, err := ReadSaveFile(path)
	e.metrics.RecordLatency(metrics.TierFile, "load", clock.Since(e.cfg.Clock, start))
	if err != nil {
		e.fail(metrics.TierFile, "load")
		return nil, err
	}
	e.stats.Loads.Add(1)
	e.logger.Info("gdsave: document loaded", "path", path, "levels", doc.Len())
	return doc, nil
}

// Save writes doc to Config.SavePath, or the game's local levels file when
// unset.
func (e *Editor) Save(ctx context.Context, doc *SaveDocument) error {
	path, err := e.savePath()
	if err != nil {
		return err
	}
	return e.SaveFile(ctx, doc, path)
}

// SaveFile encodes doc and writes it to path, first copying the existing
// file to path+BackupSuffix unless DisableBackup is set.
func (e *Editor) SaveFile(ctx context.Context, doc *SaveDocument, path string) error {
	if err := e.ready(ctx); err != nil {
		return err
	}
	suffix := e.cfg.BackupSuffix
	if e.cfg.DisableBackup {
		suffix = ""
	}
	start := e.cfg.Clock.Now()
	err := WriteSaveFile(path, doc, suffix)
	e.metrics.RecordLatency(metrics.TierFile, "save", clock.Since(e.cfg.Clock, start))
	if err != nil {
		e.fail(metrics.TierFile, "save")
		return err
	}
	e.stats.Saves.Add(1)
	e.logger.Info("gdsave: save completed", "path", path, "levels", doc.Len(), "backup", suffix != "")
	return nil
}

func (e *Editor) savePath() (string, error) {
	if e.cfg.SavePath != "" {
		return e.cfg.SavePath, nil
	}
	return LocalLevelsPath()
}

// ────────────────────────────────────────────────────────────────────────────
// Stats / Close
// ────────────────────────────────────────────────────────────────────────────

// Stats returns a snapshot of operational counters.
func (e *Editor) Stats() Stats {
	return Stats{
		Loads:       e.stats.Loads.Load(),
		Saves:       e.stats.Saves.Load(),
		Decodes:     e.stats.Decodes.Load(),
		L1Hits:      e.stats.L1Hits.Load(),
		L2Hits:      e.stats.L2Hits.Load(),
		FullDecodes: e.stats.FullDecodes.Load(),
		Archived:    e.stats.Archived.Load(),
		Errors:      e.stats.Errors.Load(),
		L1Entries:   e.l1.Stats().Entries,
	}
}

// Ping checks every configured remote tier.
func (e *Editor) Ping(ctx context.Context) error {
	if err := e.ready(ctx); err != nil {
		return err
	}
	if e.l2 != nil {
		if err := e.l2.Ping(ctx); err != nil {
			return fmt.Errorf("gdsave: redis: %w", err)
		}
	}
	if e.archive != nil {
		if err := e.archive.Ping(ctx); err != nil {
			return fmt.Errorf("gdsave: postgres: %w", err)
		}
	}
	return nil
}

// Close releases the Redis client and the archive pool. Later calls return
// ErrClosed from every operation; Close itself is idempotent.
func (e *Editor) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return nil
	}
	e.l1.Flush()
	return e.closeClients()
}

func (e *Editor) closeClients() error {
	var err error
	if e.redis != nil {
		err = e.redis.Close()
	}
	if e.archive != nil {
		e.archive.Close()
	}
	return err
}

func (e *Editor) ready(ctx context.Context) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return ctx.Err()
}

func (e *Editor) fail(tier, op string) {
	e.stats.Errors.Add(1)
	e.metrics.RecordError(tier, op)
}
