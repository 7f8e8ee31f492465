package gdsave_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/AndrewDonelson/gdsave"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Load: hot level (all goroutines decode the same record) ──────────────────

func TestLoad_HotLevel(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	e := newTestEditor(t, gdsave.Config{RedisAddr: mr.Addr()})
	raw := savedBytes(t, 1, 200)

	const goroutines = 32
	var errs atomic.Int64
	var wg sync.WaitGroup
	ctx := context.Background()

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := gdsave.DecodeSaveDocument(raw)
			if err != nil {
				errs.Add(1)
				return
			}
			d, err := e.Decode(ctx, doc.Levels[0])
			if err != nil || len(d.Objects) != 200 {
				errs.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, errs.Load())
	s := e.Stats()
	assert.Equal(t, int64(goroutines), s.Decodes)
	assert.Equal(t, int64(goroutines), s.L1Hits+s.L2Hits+s.FullDecodes)
	assert.Len(t, mr.Keys(), 1)
}

// ── Load: purge under heavy traffic ──────────────────────────────────────────

func TestLoad_PurgeConcurrent(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	e := newTestEditor(t, gdsave.Config{RedisAddr: mr.Addr()})
	raw := savedBytes(t, 5, 20)
	ctx := context.Background()

	var errs atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(gid int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if gid == 0 {
					if _, err := e.PurgeCache(ctx); err != nil {
						errs.Add(1)
					}
					continue
				}
				doc, err := gdsave.DecodeSaveDocument(raw)
				if err != nil {
					errs.Add(1)
					continue
				}
				if err := e.DecodeAll(ctx, doc); err != nil {
					errs.Add(1)
				}
			}
		}(g)
	}
	wg.Wait()
	assert.Zero(t, errs.Load())
	assert.Equal(t, int64(15*10*5), e.Stats().Decodes)
}

// ── Load: concurrent load/save on separate files ─────────────────────────────

func TestLoad_ConcurrentSaveLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	e := newTestEditor(t, gdsave.Config{})
	ctx := context.Background()

	const goroutines = 8
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(gid int) {
			defer wg.Done()
			path := filepath.Join(dir, fmt.Sprintf("save-%d.dat", gid))
			for i := 0; i < 5; i++ {
				doc := gdsave.NewSaveDocument()
				doc.AddLevel(gdsave.NewLevel(fmt.Sprintf("g%d-%d", gid, i), "load", "", 0))
				if !assert.NoError(t, e.SaveFile(ctx, doc, path)) {
					return
				}
				back, err := e.LoadFile(ctx, path)
				if assert.NoError(t, err) {
					assert.Equal(t, fmt.Sprintf("g%d-%d", gid, i), back.Levels[0].Title)
				}
			}
		}(g)
	}
	wg.Wait()

	s := e.Stats()
	require.Equal(t, int64(goroutines*5), s.Saves)
	assert.Equal(t, int64(goroutines*5), s.Loads)
}
