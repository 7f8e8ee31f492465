// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// metrics.go — recorder hooks for the decode cache tiers and the archive.

// Package metrics provides the MetricsRecorder interface, a no-op recorder and
// an in-memory counter set.
package metrics

import (
	"sync"
	"time"
)

// Tier names passed to the recorder.
const (
	TierL1      = "l1"
	TierL2      = "l2"
	TierDecode  = "decode"
	TierArchive = "archive"
	TierFile    = "file"
)

// MetricsRecorder receives operational measurements from the editor.
type MetricsRecorder interface {
	RecordHit(tier, op string)
	RecordMiss(tier, op string)
	RecordLatency(tier, op string, d time.Duration)
	RecordError(tier, op string)
	RecordObjects(count int64)
}

// Noop is a MetricsRecorder that discards all data.
type Noop struct{}

func (Noop) RecordHit(tier, op string)                      {}
func (Noop) RecordMiss(tier, op string)                     {}
func (Noop) RecordLatency(tier, op string, d time.Duration) {}
func (Noop) RecordError(tier, op string)                    {}
func (Noop) RecordObjects(count int64)                      {}

// Counters is an in-memory MetricsRecorder keyed by "tier/op".
type Counters struct {
	mu      sync.Mutex
	hits    map[string]int64
	misses  map[string]int64
	errors  map[string]int64
	latency map[string]time.Duration
	objects int64
}

// NewCounters returns an empty counter set.
func NewCounters() *Counters {
	return &Counters{
		hits:    make(map[string]int64),
		misses:  make(map[string]int64),
		errors:  make(map[string]int64),
		latency: make(map[string]time.Duration),
	}
}

func key(tier, op string) string { return tier + "/" + op }

func (c *Counters) RecordHit(tier, op string) {
	c.mu.Lock()
	c.hits[key(tier, op)]++
	c.mu.Unlock()
}

func (c *Counters) RecordMiss(tier, op string) {
	c.mu.Lock()
	c.misses[key(tier, op)]++
	c.mu.Unlock()
}

func (c *Counters) RecordLatency(tier, op string, d time.Duration) {
	c.mu.Lock()
	c.latency[key(tier, op)] += d
	c.mu.Unlock()
}

func (c *Counters) RecordError(tier, op string) {
	c.mu.Lock()
	c.errors[key(tier, op)]++
	c.mu.Unlock()
}

func (c *Counters) RecordObjects(count int64) {
	c.mu.Lock()
	c.objects += count
	c.mu.Unlock()
}

// Hits returns the hit count recorded for tier/op.
func (c *Counters) Hits(tier, op string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits[key(tier, op)]
}

// Misses returns the miss count recorded for tier/op.
func (c *Counters) Misses(tier, op string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses[key(tier, op)]
}

// Errors returns the error count recorded for tier/op.
func (c *Counters) Errors(tier, op string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors[key(tier, op)]
}

// Latency returns the accumulated latency for tier/op.
func (c *Counters) Latency(tier, op string) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latency[key(tier, op)]
}

// Objects returns the total number of decoded objects reported.
func (c *Counters) Objects() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.objects
}
