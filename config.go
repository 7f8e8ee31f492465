// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// config.go — Editor configuration: save-file location and backups, decode
// parallelism, the three storage tiers, payload sealing, and YAML loading.

package gdsave

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/AndrewDonelson/gdsave/internal/clock"
	"github.com/AndrewDonelson/gdsave/internal/codec"
	"github.com/AndrewDonelson/gdsave/internal/l1"
	"github.com/AndrewDonelson/gdsave/internal/l3"
	"github.com/AndrewDonelson/gdsave/internal/metrics"
	"gopkg.in/yaml.v3"
)

// Re-export types so callers only import this package.
type MetricsRecorder = metrics.MetricsRecorder
type Codec = codec.Codec

// DefaultArchiveTable is the archive table used when Config.ArchiveTable is empty.
const DefaultArchiveTable = "gd_level_archive"

// ────────────────────────────────────────────────────────────────────────────
// Eviction policy
// ────────────────────────────────────────────────────────────────────────────

// EvictionPolicy determines which decoded level leaves the in-process cache
// when it is full.
type EvictionPolicy int

const (
	EvictLRU EvictionPolicy = iota
	EvictLFU
	EvictFIFO
)

func (p EvictionPolicy) toL1() l1.EvictionPolicy {
	switch p {
	case EvictLFU:
		return l1.LFU
	case EvictFIFO:
		return l1.FIFO
	}
	return l1.LRU
}

// String returns "lru", "lfu" or "fifo".
func (p EvictionPolicy) String() string { return p.toL1().String() }

// UnmarshalText accepts the policy name in any case.
func (p *EvictionPolicy) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "", "lru":
		*p = EvictLRU
	case "lfu":
		*p = EvictLFU
	case "fifo":
		*p = EvictFIFO
	default:
		return fmt.Errorf("%w: eviction policy %q", ErrInvalidConfig, b)
	}
	return nil
}

// MarshalText returns the policy name.
func (p EvictionPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// ────────────────────────────────────────────────────────────────────────────
// Config
// ────────────────────────────────────────────────────────────────────────────

// L1Config configures the in-process decoded-level cache.
type L1Config struct {
	MaxEntries int
	TTL        time.Duration
	Eviction   EvictionPolicy
}

// L2PoolConfig configures the Redis client.
type L2PoolConfig struct {
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ArchivePoolConfig configures the PostgreSQL connection pool.
type ArchivePoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Config contains all Editor configuration.
type Config struct {
	// Save file
	SavePath      string // empty resolves LocalLevelsPath at load time
	BackupSuffix  string
	DisableBackup bool

	// Decoding
	DecodeWorkers int

	// L1
	L1 L1Config

	// L2
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	L2TTL         time.Duration
	L2KeyPrefix   string
	L2Pool        L2PoolConfig

	// Archive
	PostgresDSN  string
	ArchiveTable string
	ArchivePool  ArchivePoolConfig

	// Encryption key (must be 32 bytes for AES-256-GCM; nil = disabled).
	EncryptionKey []byte

	// Optional overrideable components
	Codec   codec.Codec
	Clock   clock.Clock
	Metrics metrics.MetricsRecorder
	Logger  Logger
}

func (c *Config) defaults() {
	if c.BackupSuffix == "" {
		c.BackupSuffix = DefaultBackupSuffix
	}
	if c.DecodeWorkers == 0 {
		c.DecodeWorkers = runtime.GOMAXPROCS(0)
	}
	if c.L1.MaxEntries == 0 {
		c.L1.MaxEntries = 256
	}
	if c.L1.TTL == 0 {
		c.L1.TTL = 30 * time.Minute
	}
	if c.L2TTL == 0 {
		c.L2TTL = 24 * time.Hour
	}
	if c.L2KeyPrefix == "" {
		c.L2KeyPrefix = "gdsave"
	}
	if c.ArchiveTable == "" {
		c.ArchiveTable = DefaultArchiveTable
	}
	if c.ArchivePool.MaxConns == 0 {
		c.ArchivePool.MaxConns = 4
	}
	if c.ArchivePool.MaxConnLifetime == 0 {
		c.ArchivePool.MaxConnLifetime = 30 * time.Minute
	}
	if c.ArchivePool.MaxConnIdleTime == 0 {
		c.ArchivePool.MaxConnIdleTime = 5 * time.Minute
	}
	if c.Codec == nil {
		c.Codec = codec.Default
	}
	if c.Clock == nil {
		c.Clock = clock.Real{}
	}
	if c.Metrics == nil {
		c.Metrics = metrics.Noop{}
	}
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
}

// validate reports every problem at once, each wrapped in ErrInvalidConfig.
func (c *Config) validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}
	if c.DecodeWorkers < 0 {
		bad("decode workers must not be negative (got %d)", c.DecodeWorkers)
	}
	if c.L1.MaxEntries < 0 {
		bad("l1 max entries must not be negative (got %d)", c.L1.MaxEntries)
	}
	if c.L1.TTL < 0 || c.L2TTL < 0 {
		bad("cache ttl must not be negative")
	}
	if n := len(c.EncryptionKey); n != 0 && n != KeySize {
		bad("encryption key must be %d bytes (got %d)", KeySize, n)
	}
	if !l3.ValidTable(c.ArchiveTable) {
		bad("archive table %q is not a plain identifier", c.ArchiveTable)
	}
	if c.ArchivePool.MinConns > c.ArchivePool.MaxConns {
		bad("archive min conns %d exceeds max conns %d", c.ArchivePool.MinConns, c.ArchivePool.MaxConns)
	}
	if strings.ContainsAny(c.BackupSuffix, `/\`) {
		bad("backup suffix %q must not contain a path separator", c.BackupSuffix)
	}
	return errors.Join(errs...)
}

// ────────────────────────────────────────────────────────────────────────────
// YAML
// ────────────────────────────────────────────────────────────────────────────

// fileConfig is the serialisable subset of Config.
type fileConfig struct {
	SavePath      string       `yaml:"save_path"`
	BackupSuffix  string       `yaml:"backup_suffix"`
	DisableBackup bool         `yaml:"disable_backup"`
	DecodeWorkers int          `yaml:"decode_workers"`
	Codec         string       `yaml:"codec"`
	EncryptionKey string       `yaml:"encryption_key"`
	L1            fileL1Config `yaml:"l1"`
	Redis         fileRedis    `yaml:"redis"`
	Postgres      filePostgres `yaml:"postgres"`
}

type fileL1Config struct {
	MaxEntries int            `yaml:"max_entries"`
	TTL        time.Duration  `yaml:"ttl"`
	Eviction   EvictionPolicy `yaml:"eviction"`
}

type fileRedis struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	TTL          time.Duration `yaml:"ttl"`
	KeyPrefix    string        `yaml:"key_prefix"`
	PoolSize     int           `yaml:"pool_size"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type filePostgres struct {
	DSN             string        `yaml:"dsn"`
	Table           string        `yaml:"table"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
}

// LoadConfig reads a YAML config file. ${VAR} references are expanded from
// the environment before parsing so secrets can stay out of the file.
// Unset fields keep their defaults when the config reaches NewEditor.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return ParseConfig(raw)
}

// ParseConfig decodes YAML config bytes. Unknown keys are rejected.
func ParseConfig(raw []byte) (Config, error) {
	var fc fileConfig
	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(raw))))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg := Config{
		SavePath:      fc.SavePath,
		BackupSuffix:  fc.BackupSuffix,
		DisableBackup: fc.DisableBackup,
		DecodeWorkers: fc.DecodeWorkers,
		L1: L1Config{
			MaxEntries: fc.L1.MaxEntries,
			TTL:        fc.L1.TTL,
			Eviction:   fc.L1.Eviction,
		},
		RedisAddr:     fc.Redis.Addr,
		RedisPassword: fc.Redis.Password,
		RedisDB:       fc.Redis.DB,
		L2TTL:         fc.Redis.TTL,
		L2KeyPrefix:   fc.Redis.KeyPrefix,
		L2Pool: L2PoolConfig{
			PoolSize:     fc.Redis.PoolSize,
			DialTimeout:  fc.Redis.DialTimeout,
			ReadTimeout:  fc.Redis.ReadTimeout,
			WriteTimeout: fc.Redis.WriteTimeout,
		},
		PostgresDSN:  fc.Postgres.DSN,
		ArchiveTable: fc.Postgres.Table,
		ArchivePool: ArchivePoolConfig{
			MaxConns:        fc.Postgres.MaxConns,
			MinConns:        fc.Postgres.MinConns,
			MaxConnLifetime: fc.Postgres.MaxConnLifetime,
			MaxConnIdleTime: fc.Postgres.MaxConnIdleTime,
		},
	}
	if fc.Codec != "" {
		c, err := codec.ByName(fc.Codec)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		cfg.Codec = c
	}
	key, err := ParseEncryptionKey(fc.EncryptionKey)
	if err != nil {
		return Config{}, err
	}
	cfg.EncryptionKey = key
	return cfg, nil
}
