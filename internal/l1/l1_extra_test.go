package l1_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AndrewDonelson/gdsave/internal/l1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Single-shard stores make eviction order deterministic.
func singleShard(policy l1.EvictionPolicy, max int, onEvict func(string)) *l1.Store[int] {
	return l1.New[int](l1.Options{
		MaxEntries: max,
		Shards:     1,
		TTL:        time.Hour,
		Eviction:   policy,
		OnEvict:    onEvict,
	})
}

func TestL1_LRU_Eviction(t *testing.T) {
	s := singleShard(l1.LRU, 2, nil)
	s.Set("a", 1, 0)
	s.Set("b", 2, 0)
	s.Get("a")
	s.Set("c", 3, 0)

	_, okA := s.Get("a")
	_, okB := s.Get("b")
	_, okC := s.Get("c")
	assert.True(t, okA)
	assert.False(t, okB, "least recently used entry is evicted")
	assert.True(t, okC)
	assert.Equal(t, int64(1), s.Stats().Evictions)
}

func TestL1_FIFO_Eviction(t *testing.T) {
	s := singleShard(l1.FIFO, 2, nil)
	s.Set("a", 1, 0)
	s.Set("b", 2, 0)
	s.Get("a")
	s.Set("c", 3, 0)

	_, okA := s.Get("a")
	_, okB := s.Get("b")
	assert.False(t, okA, "first inserted entry is evicted despite access")
	assert.True(t, okB)
}

func TestL1_LFU_Eviction(t *testing.T) {
	s := singleShard(l1.LFU, 2, nil)
	s.Set("a", 1, 0)
	s.Set("b", 2, 0)
	s.Get("a")
	s.Get("a")
	s.Get("b")
	s.Set("c", 3, 0)

	_, okA := s.Get("a")
	_, okB := s.Get("b")
	assert.True(t, okA)
	assert.False(t, okB, "least frequently used entry is evicted")
}

func TestL1_LFU_TieEvictsOldest(t *testing.T) {
	s := singleShard(l1.LFU, 2, nil)
	s.Set("old", 1, 0)
	s.Set("new", 2, 0)
	s.Set("newest", 3, 0)
	_, okOld := s.Get("old")
	_, okNew := s.Get("new")
	assert.False(t, okOld)
	assert.True(t, okNew)
}

func TestL1_OnEvict_Callback(t *testing.T) {
	var evicted []string
	s := singleShard(l1.LRU, 1, func(key string) { evicted = append(evicted, key) })
	s.Set("first", 1, 0)
	s.Set("second", 2, 0)
	s.Delete("second")
	assert.Equal(t, []string{"first"}, evicted, "delete is not an eviction")
}

func TestL1_UpdateExisting(t *testing.T) {
	s := singleShard(l1.LRU, 1, nil)
	s.Set("k", 1, 0)
	s.Set("k", 2, 0)
	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, int64(0), s.Stats().Evictions)
}

func TestL1_MaxEntriesSpreadsAcrossShards(t *testing.T) {
	s := l1.New[int](l1.Options{MaxEntries: 64, Shards: 4})
	for i := 0; i < 1000; i++ {
		s.Set(fmt.Sprintf("level-%d", i), i, 0)
	}
	assert.LessOrEqual(t, s.Stats().Entries, int64(64))
}

func TestL1_SmallCapIsExact(t *testing.T) {
	s := l1.New[int](l1.Options{MaxEntries: 2})
	for i := 0; i < 50; i++ {
		s.Set(fmt.Sprintf("level-%d", i), i, 0)
	}
	assert.Equal(t, int64(2), s.Stats().Entries)
}

func TestL1_Concurrent_SetGet(t *testing.T) {
	s := l1.New[int](l1.Options{MaxEntries: 10000})
	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("g%d-%d", g, i)
				s.Set(key, i, 0)
				v, ok := s.Get(key)
				if assert.True(t, ok) {
					assert.Equal(t, i, v)
				}
			}
		}(g)
	}
	wg.Wait()
	assert.Equal(t, int64(16*200), s.Stats().Entries)
}

func TestL1_Concurrent_Delete(t *testing.T) {
	s := l1.New[int](l1.Options{})
	for i := 0; i < 500; i++ {
		s.Set(fmt.Sprintf("k%d", i), i, 0)
	}
	var wg sync.WaitGroup
	for i := 0; i < 500; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Delete(fmt.Sprintf("k%d", i))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int64(0), s.Stats().Entries)
}

func BenchmarkL1_Set(b *testing.B) {
	s := l1.New[int](l1.Options{MaxEntries: 100000})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Set(fmt.Sprintf("k%d", i%10000), i, 0)
	}
}

func BenchmarkL1_Get_Hit(b *testing.B) {
	s := l1.New[int](l1.Options{})
	s.Set("hot", 1, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Get("hot")
	}
}

func BenchmarkL1_Get_Parallel(b *testing.B) {
	s := l1.New[int](l1.Options{})
	for i := 0; i < 1000; i++ {
		s.Set(fmt.Sprintf("k%d", i), i, 0)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			s.Get(fmt.Sprintf("k%d", i%1000))
			i++
		}
	})
}
