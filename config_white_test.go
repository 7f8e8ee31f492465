package gdsave

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/AndrewDonelson/gdsave/internal/clock"
	"github.com/AndrewDonelson/gdsave/internal/codec"
	"github.com/AndrewDonelson/gdsave/internal/l1"
	"github.com/AndrewDonelson/gdsave/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	var c Config
	c.defaults()
	assert.Equal(t, DefaultBackupSuffix, c.BackupSuffix)
	assert.Equal(t, runtime.GOMAXPROCS(0), c.DecodeWorkers)
	assert.Equal(t, 256, c.L1.MaxEntries)
	assert.Equal(t, 30*time.Minute, c.L1.TTL)
	assert.Equal(t, 24*time.Hour, c.L2TTL)
	assert.Equal(t, "gdsave", c.L2KeyPrefix)
	assert.Equal(t, DefaultArchiveTable, c.ArchiveTable)
	assert.Equal(t, int32(4), c.ArchivePool.MaxConns)
	assert.Equal(t, codec.Default, c.Codec)
	assert.IsType(t, clock.Real{}, c.Clock)
	assert.IsType(t, metrics.Noop{}, c.Metrics)
	assert.IsType(t, noopLogger{}, c.Logger)
	require.NoError(t, c.validate())
}

func TestConfig_DefaultsKeepExplicitValues(t *testing.T) {
	mc := clock.NewMock(time.Time{})
	c := Config{BackupSuffix: ".old", DecodeWorkers: 1, L2KeyPrefix: "x", Clock: mc}
	c.defaults()
	assert.Equal(t, ".old", c.BackupSuffix)
	assert.Equal(t, 1, c.DecodeWorkers)
	assert.Equal(t, "x", c.L2KeyPrefix)
	assert.Same(t, mc, c.Clock)
}

func TestEvictionPolicy_MapsToL1(t *testing.T) {
	assert.Equal(t, l1.LRU, EvictLRU.toL1())
	assert.Equal(t, l1.LFU, EvictLFU.toL1())
	assert.Equal(t, l1.FIFO, EvictFIFO.toL1())
	assert.Equal(t, l1.LRU, EvictionPolicy(42).toL1())
}

func TestVersion(t *testing.T) {
	v := Version()
	assert.True(t, strings.HasSuffix(v, "-"+BuildEnv), v)
	assert.True(t, strings.HasPrefix(v, BuildDate), v)
}
