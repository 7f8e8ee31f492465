// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// cache.go — tiered level decode: L1 (in-process) → L2 (Redis) → full
// base64/inflate/parse, with back-fill of the upper tiers. Cache tier
// failures are logged and counted but never fail a decode.

package gdsave

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/AndrewDonelson/gdsave/internal/clock"
	"github.com/AndrewDonelson/gdsave/internal/l2"
	"github.com/AndrewDonelson/gdsave/internal/metrics"
	"github.com/cespare/xxhash/v2"
)

// levelPayload is the shared-cache form of a decoded level: the header and
// the object records exactly as they appear in the level text, so a hit
// skips base64 and inflate and parses to the same objects.
type levelPayload struct {
	Header  string   `json:"h" msgpack:"h"`
	Records []string `json:"r" msgpack:"r"`
}

func (p levelPayload) parse(workers int) (*LevelData, error) {
	data, err := parseRecords(p.Header, p.Records, workers)
	if err != nil {
		return nil, classify("parse level", err)
	}
	return data, nil
}

// Fingerprint returns the cache key for an encoded level record: its
// xxHash64 in hex followed by its length.
func Fingerprint(record string) string {
	return strconv.FormatUint(xxhash.Sum64String(record), 16) + "-" + strconv.Itoa(len(record))
}

// ────────────────────────────────────────────────────────────────────────────
// Read path
// ────────────────────────────────────────────────────────────────────────────

// Decode returns the decoded objects of l, moving it to the decrypted state.
// An already decrypted level is returned as is; an empty one fails with
// ErrNoLevelData.
func (e *Editor) Decode(ctx context.Context, l *Level) (*LevelData, error) {
	if err := e.ready(ctx); err != nil {
		return nil, err
	}
	switch l.State() {
	case StateDecrypted:
		return l.data, nil
	case StateEmpty:
		return nil, ErrNoLevelData
	}

	fp := Fingerprint(l.record)

	// L1 hit
	if data, ok := e.l1.Get(fp); ok {
		e.metrics.RecordHit(metrics.TierL1, "decode")
		e.stats.L1Hits.Add(1)
		return e.decoded(l, data.Clone(), metrics.TierL1), nil
	}
	e.metrics.RecordMiss(metrics.TierL1, "decode")

	// L2 hit
	if e.l2 != nil {
		data, err := e.getL2(ctx, fp)
		switch {
		case err == nil:
			e.metrics.RecordHit(metrics.TierL2, "decode")
			e.stats.L2Hits.Add(1)
			e.l1.Set(fp, data.Clone(), 0)
			return e.decoded(l, data, metrics.TierL2), nil
		case errors.Is(err, ErrCacheMiss):
			e.metrics.RecordMiss(metrics.TierL2, "decode")
		default:
			e.tierFailure(metrics.TierL2, "get", fp, err)
		}
	}

	// Full decode
	start := e.cfg.Clock.Now()
	p, err := unpackRecord(l.record)
	var data *LevelData
	if err == nil {
		data, err = p.parse(e.cfg.DecodeWorkers)
	}
	e.metrics.RecordLatency(metrics.TierDecode, "level", clock.Since(e.cfg.Clock, start))
	if err != nil {
		e.fail(metrics.TierDecode, "level")
		return nil, err
	}
	e.stats.FullDecodes.Add(1)
	e.metrics.RecordObjects(int64(len(data.Objects)))

	// back-fill L2 then L1
	if e.l2 != nil {
		if err := e.setL2(ctx, fp, p); err != nil {
			e.tierFailure(metrics.TierL2, "set", fp, err)
		}
	}
	e.l1.Set(fp, data.Clone(), 0)
	return e.decoded(l, data, metrics.TierDecode), nil
}

// DecodeAll decodes every encrypted level of doc. Remote cache entries for
// all levels are fetched in one round trip first.
func (e *Editor) DecodeAll(ctx context.Context, doc *SaveDocument) error {
	if err := e.ready(ctx); err != nil {
		return err
	}
	e.prefetch(ctx, doc)
	for i, l := range doc.Levels {
		if l.State() != StateEncrypted {
			continue
		}
		if _, err := e.Decode(ctx, l); err != nil {
			return fmt.Errorf("level %d %q: %w", i, l.Title, err)
		}
	}
	return nil
}

// PurgeCache drops every cached level from L1 and, when configured, L2.
// It returns the number of Redis keys removed.
func (e *Editor) PurgeCache(ctx context.Context) (int, error) {
	if err := e.ready(ctx); err != nil {
		return 0, err
	}
	e.l1.Flush()
	if e.l2 == nil {
		return 0, nil
	}
	n, err := e.l2.InvalidateAll(ctx)
	if err != nil {
		e.fail(metrics.TierL2, "purge")
		return n, err
	}
	return n, nil
}

func (e *Editor) decoded(l *Level, data *LevelData, tier string) *LevelData {
	l.setDecoded(data)
	e.stats.Decodes.Add(1)
	e.logger.Debug("gdsave: level decoded", "title", l.Title, "objects", len(data.Objects), "tier", tier)
	return data
}

// prefetch warms L1 from L2 for every encrypted level not already in L1.
func (e *Editor) prefetch(ctx context.Context, doc *SaveDocument) {
	if e.l2 == nil {
		return
	}
	var fps []string
	for _, l := range doc.Levels {
		if l.State() != StateEncrypted {
			continue
		}
		fp := Fingerprint(l.record)
		if _, ok := e.l1.Get(fp); !ok {
			fps = append(fps, fp)
		}
	}
	if len(fps) == 0 {
		return
	}
	raws, err := e.l2.GetMany(ctx, fps)
	if err != nil {
		e.tierFailure(metrics.TierL2, "get-many", "", err)
		return
	}
	for fp, raw := range raws {
		data, err := e.openPayload(fp, raw)
		if err != nil {
			e.tierFailure(metrics.TierL2, "get-many", fp, err)
			continue
		}
		e.l1.Set(fp, data, 0)
	}
}

// ────────────────────────────────────────────────────────────────────────────
// L2 helpers
// ────────────────────────────────────────────────────────────────────────────

// getL2 returns the cached level for fp, or ErrCacheMiss.
func (e *Editor) getL2(ctx context.Context, fp string) (*LevelData, error) {
	if e.encryptor == nil {
		var p levelPayload
		if err := e.l2.Get(ctx, fp, &p); err != nil {
			return nil, missOr(err)
		}
		return p.parse(e.cfg.DecodeWorkers)
	}
	raw, err := e.l2.GetRaw(ctx, fp)
	if err != nil {
		return nil, missOr(err)
	}
	return e.openPayload(fp, raw)
}

// setL2 caches p under fp, sealed when an encryption key is configured.
func (e *Editor) setL2(ctx context.Context, fp string, p levelPayload) error {
	if e.encryptor == nil {
		return e.l2.Set(ctx, fp, p, e.cfg.L2TTL)
	}
	b, err := e.l2.Codec().Marshal(p)
	if err != nil {
		return err
	}
	sealed, err := e.encryptor.Encrypt(b, []byte(fp))
	if err != nil {
		return err
	}
	return e.l2.SetRaw(ctx, fp, sealed, e.cfg.L2TTL)
}

// openPayload turns raw L2 bytes back into level data.
func (e *Editor) openPayload(fp string, raw []byte) (*LevelData, error) {
	var err error
	if e.encryptor != nil {
		if raw, err = e.encryptor.Decrypt(raw, []byte(fp)); err != nil {
			return nil, err
		}
	}
	var p levelPayload
	if err := e.l2.Codec().Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p.parse(e.cfg.DecodeWorkers)
}

func missOr(err error) error {
	if errors.Is(err, l2.ErrMiss) {
		return ErrCacheMiss
	}
	return err
}

func (e *Editor) tierFailure(tier, op, fp string, err error) {
	e.stats.Errors.Add(1)
	e.metrics.RecordError(tier, op)
	e.logger.Warn("gdsave: cache tier failure", "tier", tier, "op", op, "fingerprint", fp, "error", err)
}
