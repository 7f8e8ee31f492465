// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// l1.go — sharded in-process cache for decoded levels, keyed by record
// fingerprint, with TTL and LRU/LFU/FIFO eviction.

// Package l1 provides a sharded, concurrent in-memory cache with TTL and eviction.
// Expired entries are dropped lazily on access or by an explicit Sweep; the
// store runs no goroutines of its own.
package l1

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/AndrewDonelson/gdsave/internal/clock"
)

const defaultShards = 16

// EvictionPolicy determines which entry is removed when a shard is full.
type EvictionPolicy int

const (
	LRU  EvictionPolicy = iota // Least Recently Used
	LFU                        // Least Frequently Used
	FIFO                       // First In, First Out
)

// String returns the lower-case policy name.
func (p EvictionPolicy) String() string {
	switch p {
	case LRU:
		return "lru"
	case LFU:
		return "lfu"
	case FIFO:
		return "fifo"
	}
	return "unknown"
}

// Options configures a Store.
type Options struct {
	TTL        time.Duration
	MaxEntries int // total across shards; 0 means unbounded
	Shards     int // defaults to 16
	Eviction   EvictionPolicy
	Clock      clock.Clock
	OnEvict    func(key string)
}

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	freq      int
	elem      *list.Element
}

type shard[V any] struct {
	mu         sync.Mutex
	items      map[string]*entry[V]
	order      *list.List
	maxEntries int
	policy     EvictionPolicy
	onEvict    func(key string)
}

// Store is the sharded in-memory cache.
type Store[V any] struct {
	shards []*shard[V]
	ttl    time.Duration
	clock  clock.Clock
	hits   atomic.Int64
	misses atomic.Int64
	evicts atomic.Int64
}

// New creates a Store.
func New[V any](opts Options) *Store[V] {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.Shards <= 0 {
		opts.Shards = defaultShards
	}
	// A small cap gets one entry per shard at most.
	if opts.MaxEntries > 0 && opts.MaxEntries < opts.Shards {
		opts.Shards = opts.MaxEntries
	}
	perShard := 0
	if opts.MaxEntries > 0 {
		perShard = (opts.MaxEntries + opts.Shards - 1) / opts.Shards
	}
	s := &Store[V]{
		shards: make([]*shard[V], opts.Shards),
		ttl:    opts.TTL,
		clock:  opts.Clock,
	}
	for i := range s.shards {
		sh := &shard[V]{
			items:      make(map[string]*entry[V]),
			order:      list.New(),
			maxEntries: perShard,
			policy:     opts.Eviction,
		}
		sh.onEvict = func(key string) {
			s.evicts.Add(1)
			if opts.OnEvict != nil {
				opts.OnEvict(key)
			}
		}
		s.shards[i] = sh
	}
	return s
}

func (s *Store[V]) shardFor(key string) *shard[V] {
	return s.shards[xxhash.Sum64String(key)%uint64(len(s.shards))]
}

// Set stores value under key. A zero ttl uses the store default; a
// negative ttl stores without expiry.
func (s *Store[V]) Set(key string, value V, ttl time.Duration) {
	if ttl == 0 {
		ttl = s.ttl
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.clock.Now().Add(ttl)
	}

	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if e, ok := sh.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		e.freq++
		if sh.policy == LRU {
			sh.order.MoveToFront(e.elem)
		}
		return
	}
	if sh.maxEntries > 0 && len(sh.items) >= sh.maxEntries {
		sh.evict()
	}
	e := &entry[V]{key: key, value: value, expiresAt: expiresAt, freq: 1}
	e.elem = sh.order.PushFront(e)
	sh.items[key] = e
}

// Get returns the value stored under key.
func (s *Store[V]) Get(key string) (V, bool) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	var zero V
	e, ok := sh.items[key]
	if !ok {
		s.misses.Add(1)
		return zero, false
	}
	if e.expired(s.clock.Now()) {
		sh.remove(e)
		s.misses.Add(1)
		return zero, false
	}
	e.freq++
	if sh.policy == LRU {
		sh.order.MoveToFront(e.elem)
	}
	s.hits.Add(1)
	return e.value, true
}

// Delete removes key.
func (s *Store[V]) Delete(key string) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if e, ok := sh.items[key]; ok {
		sh.remove(e)
	}
}

// Flush removes every entry.
func (s *Store[V]) Flush() {
	for _, sh := range s.shards {
		sh.mu.Lock()
		sh.items = make(map[string]*entry[V])
		sh.order.Init()
		sh.mu.Unlock()
	}
}

// Sweep drops expired entries and returns how many were removed.
func (s *Store[V]) Sweep() int {
	now := s.clock.Now()
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for _, e := range sh.items {
			if e.expired(now) {
				sh.remove(e)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// Stats holds hit, miss, eviction and entry counts.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Entries   int64
}

// Stats returns current statistics.
func (s *Store[V]) Stats() Stats {
	var total int64
	for _, sh := range s.shards {
		sh.mu.Lock()
		total += int64(len(sh.items))
		sh.mu.Unlock()
	}
	return Stats{
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Evictions: s.evicts.Load(),
		Entries:   total,
	}
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

func (sh *shard[V]) evict() {
	var victim *entry[V]
	switch sh.policy {
	case LRU, FIFO:
		if back := sh.order.Back(); back != nil {
			victim = back.Value.(*entry[V])
		}
	case LFU:
		// Ties go to the oldest entry.
		for el := sh.order.Back(); el != nil; el = el.Prev() {
			e := el.Value.(*entry[V])
			if victim == nil || e.freq < victim.freq {
				victim = e
			}
		}
	}
	if victim == nil {
		return
	}
	sh.remove(victim)
	sh.onEvict(victim.key)
}

func (sh *shard[V]) remove(e *entry[V]) {
	delete(sh.items, e.key)
	sh.order.Remove(e.elem)
}
