// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// l2.go — Redis-backed decoded-level cache shared between editor processes:
// codec and raw get/set keyed by level-record fingerprint, pipelined batch
// reads, prefix invalidation, and the ErrMiss sentinel that drives tier
// fallthrough in the editor.

// Package l2 provides the Redis tier of the decoded-level cache.
package l2

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AndrewDonelson/gdsave/internal/codec"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned by Get and GetRaw when the fingerprint is not cached.
var ErrMiss = errors.New("l2: miss")

// DefaultPrefix namespaces keys when Options.KeyPrefix is empty.
const DefaultPrefix = "gdsave"

// setArgsPool pools the argument slice built for every SET so the hot path
// does not allocate one per call.
var setArgsPool = sync.Pool{
	New: func() any {
		s := make([]interface{}, 0, 6) // "set", key, value, "ex"/"px", ttl, (spare)
		return &s
	},
}

// Store is the Redis level cache adapter.
type Store struct {
	client redis.UniversalClient
	codec  codec.Codec
	base   string // "<prefix>:level:"
	hits   atomic.Int64
	misses atomic.Int64
}

// Options configures a Store.
type Options struct {
	Client    redis.UniversalClient
	Codec     codec.Codec
	KeyPrefix string
}

// New creates a Store.
func New(opts Options) *Store {
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultPrefix
	}
	return &Store{client: opts.Client, codec: opts.Codec, base: opts.KeyPrefix + ":level:"}
}

// Key returns the Redis key for a level fingerprint.
func (s *Store) Key(fingerprint string) string {
	return s.base + fingerprint
}

// Codec returns the payload codec.
func (s *Store) Codec() codec.Codec { return s.codec }

// set sends SET with a pooled argument slice.
//   - ttl < 1s  → PX
//   - ttl >= 1s → EX
//   - ttl <= 0  → no expiry
func (s *Store) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ap := setArgsPool.Get().(*[]interface{})
	args := (*ap)[:0]
	switch {
	case ttl > 0 && ttl < time.Second:
		args = append(args, "set", key, value, "px", ttl.Milliseconds())
	case ttl > 0:
		args = append(args, "set", key, value, "ex", int64(ttl.Seconds()))
	default:
		args = append(args, "set", key, value)
	}
	err := s.client.Do(ctx, args...).Err()
	for i := range args {
		args[i] = nil
	}
	*ap = args[:0]
	setArgsPool.Put(ap)
	return err
}

// Set encodes value with the store codec and caches it under fingerprint.
func (s *Store) Set(ctx context.Context, fingerprint string, value any, ttl time.Duration) error {
	b, err := s.codec.Marshal(value)
	if err != nil {
		return fmt.Errorf("l2 marshal: %w", err)
	}
	return s.SetRaw(ctx, fingerprint, b, ttl)
}

// Get decodes the payload cached under fingerprint into dest.
func (s *Store) Get(ctx context.Context, fingerprint string, dest any) error {
	b, err := s.GetRaw(ctx, fingerprint)
	if err != nil {
		return err
	}
	if err := s.codec.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("l2 unmarshal: %w", err)
	}
	return nil
}

// SetRaw caches pre-encoded bytes under fingerprint.
func (s *Store) SetRaw(ctx context.Context, fingerprint string, data []byte, ttl time.Duration) error {
	k := s.Key(fingerprint)
	if err := s.set(ctx, k, data, ttl); err != nil {
		return fmt.Errorf("l2 set %s: %w", k, err)
	}
	return nil
}

// GetRaw returns the bytes cached under fingerprint, or ErrMiss.
func (s *Store) GetRaw(ctx context.Context, fingerprint string) ([]byte, error) {
	k := s.Key(fingerprint)
	b, err := s.client.Get(ctx, k).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.misses.Add(1)
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("l2 get %s: %w", k, err)
	}
	s.hits.Add(1)
	return b, nil
}

// GetMany fetches several fingerprints in one pipeline round trip.
// Missing fingerprints are absent from the result.
func (s *Store) GetMany(ctx context.Context, fingerprints []string) (map[string][]byte, error) {
	if len(fingerprints) == 0 {
		return map[string][]byte{}, nil
	}
	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(fingerprints))
	for i, fp := range fingerprints {
		cmds[i] = pipe.Get(ctx, s.Key(fp))
	}
	_, _ = pipe.Exec(ctx)
	out := make(map[string][]byte, len(fingerprints))
	for i, cmd := range cmds {
		b, err := cmd.Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				s.misses.Add(1)
				continue
			}
			return nil, fmt.Errorf("l2 get-many %s: %w", fingerprints[i], err)
		}
		s.hits.Add(1)
		out[fingerprints[i]] = b
	}
	return out, nil
}

// Exists reports whether fingerprint is cached.
func (s *Store) Exists(ctx context.Context, fingerprint string) (bool, error) {
	k := s.Key(fingerprint)
	n, err := s.client.Exists(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("l2 exists %s: %w", k, err)
	}
	return n > 0, nil
}

// Delete removes fingerprint from the cache.
func (s *Store) Delete(ctx context.Context, fingerprint string) error {
	k := s.Key(fingerprint)
	if err := s.client.Del(ctx, k).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("l2 delete %s: %w", k, err)
	}
	return nil
}

// InvalidateAll removes every cached level under this store's prefix using
// SCAN+DEL and returns the number of keys deleted.
func (s *Store) InvalidateAll(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.base+"*", 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("l2 scan: %w", err)
		}
		if len(keys) > 0 {
			n, err := s.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("l2 del: %w", err)
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

// Ping checks that Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Stats holds hit and miss counts.
type Stats struct {
	Hits   int64
	Misses int64
}

// Stats returns current statistics.
func (s *Store) Stats() Stats {
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load()}
}
