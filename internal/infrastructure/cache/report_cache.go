package cache

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pantry/backend/internal/domain/reconciliation"
)

// DefaultTTL is how long a cached report stays fresh
const DefaultTTL = time.Minute

// ReportEntry is one cached reconciliation report, tagged with the
// fiscal period label it was computed for
type ReportEntry struct {
	PeriodLabel string
	Rows        []reconciliation.Row
	Totals      reconciliation.Totals
	Skipped     []reconciliation.SkippedEntry
	ComputedAt  time.Time
}

// ReportCache holds at most one report at a time. A lookup hits only
// when both the period label matches and the entry is younger than the
// TTL; a report for a different period evicts the slot immediately.
// Ledger and catalog writes do not invalidate the slot; reports may be
// stale for up to one TTL after a write.
type ReportCache struct {
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
	slot   *ReportEntry
	logger *zap.Logger
}

// Option configures a ReportCache
type Option func(*ReportCache)

// WithTTL overrides the default freshness window
func WithTTL(ttl time.Duration) Option {
	return func(c *ReportCache) {
		c.ttl = ttl
	}
}

// WithClock injects a clock, used by tests to control entry age
func WithClock(now func() time.Time) Option {
	return func(c *ReportCache) {
		c.now = now
	}
}

// WithLogger attaches a logger for hit/miss diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(c *ReportCache) {
		c.logger = logger.Named("report_cache")
	}
}

// NewReportCache creates an empty cache
func NewReportCache(opts ...Option) *ReportCache {
	c := &ReportCache{
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the cached report for the given period label, or
// invokes compute and stores the result. The bool reports whether the
// value came from cache. compute runs outside the lock, so concurrent
// misses may compute in parallel; the last writer wins, which is
// acceptable because the computation is deterministic for a period.
func (c *ReportCache) GetOrCompute(label string, compute func() (*ReportEntry, error)) (*ReportEntry, bool, error) {
	if entry := c.lookup(label); entry != nil {
		c.logger.Debug("cache hit", zap.String("period", label))
		return entry, true, nil
	}

	c.logger.Debug("cache miss", zap.String("period", label))
	entry, err := compute()
	if err != nil {
		return nil, false, err
	}
	entry.PeriodLabel = label
	entry.ComputedAt = c.now()

	c.mu.Lock()
	c.slot = entry
	c.mu.Unlock()

	return entry, false, nil
}

// lookup returns the slot if it matches the label and is still fresh
func (c *ReportCache) lookup(label string) *ReportEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.slot == nil || c.slot.PeriodLabel != label {
		return nil
	}
	if c.now().Sub(c.slot.ComputedAt) >= c.ttl {
		return nil
	}
	return c.slot
}
