package compilecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/classwise/timetabler/internal/engine"
	"github.com/classwise/timetabler/internal/metrics"
	appErrors "github.com/classwise/timetabler/pkg/errors"
)

// Cache fronts constraint compilation with a Redis-backed lookaside cache,
// keyed by a hash of the catalog version and configuration. Compiling
// requirement/desire filters against a large catalog is deterministic and
// reusable across many search runs over the same inputs.
type Cache struct {
	repo       Repository
	metrics    *metrics.Metrics
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// Config governs Cache behaviour.
type Config struct {
	DefaultTTL time.Duration
	Enabled    bool
}

// New constructs a Cache. A nil repo or Enabled=false make every call a
// pass-through miss, so callers never need a nil check of their own.
func New(repo Repository, m *metrics.Metrics, logger *zap.Logger, cfg Config) *Cache {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{repo: repo, metrics: m, defaultTTL: cfg.DefaultTTL, logger: logger, enabled: cfg.Enabled}
}

func (c *Cache) enabledWithRepo() bool {
	return c != nil && c.enabled && c.repo != nil
}

// Key derives the cache key for a given catalog version tag and
// configuration; callers own what "catalog version" means (an upload id,
// a content hash, a timestamp).
func Key(catalogVersion string, cfg engine.Configuration) string {
	payload, _ := json.Marshal(struct {
		Version string
		Config  engine.Configuration
	}{catalogVersion, cfg})
	sum := sha256.Sum256(payload)
	return "compiled:" + hex.EncodeToString(sum[:])
}

// Get looks up a previously compiled result. The bool return reports a hit.
func (c *Cache) Get(ctx context.Context, key string) (*engine.CompiledConstraints, bool) {
	if !c.enabledWithRepo() {
		return nil, false
	}
	start := time.Now()
	var cc engine.CompiledConstraints
	err := c.repo.Get(ctx, key, &cc)
	hit := err == nil
	if c.metrics != nil {
		c.metrics.RecordCacheOperation(hit, time.Since(start))
	}
	if err != nil {
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			c.logger.Warn("compile cache get failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return &cc, true
}

// Put stores a compiled result for reuse by subsequent runs over the same
// catalog version and configuration.
func (c *Cache) Put(ctx context.Context, key string, cc *engine.CompiledConstraints) {
	if !c.enabledWithRepo() {
		return
	}
	start := time.Now()
	err := c.repo.Set(ctx, key, cc, c.defaultTTL)
	if c.metrics != nil {
		c.metrics.ObserveCacheWrite(time.Since(start))
	}
	if err != nil {
		c.logger.Warn("compile cache set failed", zap.String("key", key), zap.Error(err))
	}
}
