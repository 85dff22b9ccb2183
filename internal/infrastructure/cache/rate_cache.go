package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/damon-houk/ecb-currency-exchange/internal/domain/entity"
	"github.com/damon-houk/ecb-currency-exchange/internal/domain/repository"
	"github.com/damon-houk/ecb-currency-exchange/internal/domain/service"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/logger"
	"github.com/damon-houk/ecb-currency-exchange/internal/infrastructure/metrics"
)

const (
	// DefaultBaseCurrency is the currency every ECB rate is quoted against
	DefaultBaseCurrency = "EUR"
	// DefaultMinFetchInterval is the minimum time between two successful upstream calls
	DefaultMinFetchInterval = time.Hour
	// DefaultMaxSnapshotAge is how far a publication date may lag behind now
	DefaultMaxSnapshotAge = 24 * time.Hour
)

// RateCacheOptions configures a RateCache. Zero values fall back to the defaults.
type RateCacheOptions struct {
	BaseCurrency     string
	MinFetchInterval time.Duration
	MaxSnapshotAge   time.Duration
	Now              func() time.Time
	Metrics          *metrics.Metrics
	Logger           logger.Logger
}

// RateCache owns the single cached rate snapshot. It decides when the
// snapshot is stale, refreshes it from upstream and answers rate lookups.
type RateCache struct {
	fetcher service.FeedFetcher
	parser  service.FeedParser
	store   repository.SnapshotRepository

	base             string
	minFetchInterval time.Duration
	maxSnapshotAge   time.Duration
	now              func() time.Time
	metrics          *metrics.Metrics
	logger           logger.Logger

	// snapshot and lastFetch are always replaced together
	mutex     sync.RWMutex
	snapshot  *entity.RateSnapshot
	lastFetch time.Time

	// refreshMutex serialises restore and check-fetch-persist-swap
	refreshMutex sync.Mutex
	restored     bool
}

// NewRateCache creates a new rate cache
func NewRateCache(fetcher service.FeedFetcher, parser service.FeedParser, store repository.SnapshotRepository, opts RateCacheOptions) *RateCache {
	if opts.BaseCurrency == "" {
		opts.BaseCurrency = DefaultBaseCurrency
	}
	if opts.MinFetchInterval <= 0 {
		opts.MinFetchInterval = DefaultMinFetchInterval
	}
	if opts.MaxSnapshotAge <= 0 {
		opts.MaxSnapshotAge = DefaultMaxSnapshotAge
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.GetDefaultLogger()
	}

	return &RateCache{
		fetcher:          fetcher,
		parser:           parser,
		store:            store,
		base:             entity.NormalizeCode(opts.BaseCurrency),
		minFetchInterval: opts.MinFetchInterval,
		maxSnapshotAge:   opts.MaxSnapshotAge,
		now:              opts.Now,
		metrics:          opts.Metrics,
		logger:           opts.Logger,
	}
}

// BaseCurrency returns the code all cached rates are relative to
func (c *RateCache) BaseCurrency() string {
	return c.base
}

// Restore loads the persisted snapshot without contacting upstream. The
// last-call timestamp is not persisted, so a restored snapshot is refreshed
// as soon as its publication date is stale.
func (c *RateCache) Restore(ctx context.Context) error {
	c.refreshMutex.Lock()
	defer c.refreshMutex.Unlock()

	return c.restoreLocked(ctx)
}

func (c *RateCache) restoreLocked(ctx context.Context) error {
	if c.restored {
		return nil
	}
	if c.current() != nil {
		c.restored = true
		return nil
	}

	document, err := c.store.Load(ctx)
	if errors.Is(err, repository.ErrSnapshotNotFound) {
		c.restored = true
		c.logger.Info("No persisted rate snapshot found", nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to restore snapshot: %w", err)
	}
	c.restored = true

	snap, err := c.parser.Parse(document)
	if err != nil {
		c.logger.Warn("Discarding unreadable persisted snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	c.mutex.Lock()
	c.snapshot = snap
	c.mutex.Unlock()
	c.publish(snap)

	c.logger.Info("Rate snapshot restored", map[string]interface{}{
		"snapshot_date": snap.Date.Format(entity.DateLayout),
		"currencies":    len(snap.Rates),
	})

	return nil
}

// EnsureFresh replaces the snapshot when it is missing, or when it is stale
// and the last successful upstream call is older than the minimum fetch
// interval. Concurrent callers share a single upstream fetch.
func (c *RateCache) EnsureFresh(ctx context.Context) error {
	due, suppressed := c.refreshDue()
	if suppressed && c.metrics != nil {
		c.metrics.RefreshSkippedTotal.Inc()
	}
	if !due {
		return nil
	}

	c.refreshMutex.Lock()
	defer c.refreshMutex.Unlock()

	if err := c.restoreLocked(ctx); err != nil {
		c.logger.Warn("Failed to read persisted snapshot", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Another caller may have refreshed while we waited
	if due, _ = c.refreshDue(); !due {
		return nil
	}

	return c.refreshLocked(ctx)
}

// refreshDue reports whether a refresh is required, and whether a stale
// snapshot is being kept only because of the minimum fetch interval.
func (c *RateCache) refreshDue() (due bool, suppressed bool) {
	c.mutex.RLock()
	snap, lastFetch := c.snapshot, c.lastFetch
	c.mutex.RUnlock()

	if snap == nil {
		return true, false
	}

	now := c.now()
	stale := now.Sub(snap.Date) > c.maxSnapshotAge

	if !lastFetch.IsZero() && now.Sub(lastFetch) < c.minFetchInterval {
		return false, stale
	}

	return stale, false
}

func (c *RateCache) refreshLocked(ctx context.Context) error {
	start := time.Now()
	document, err := c.fetcher.FetchFeed(ctx)
	if c.metrics != nil {
		c.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		c.countFetch("error")
		c.logger.Error("Rate feed fetch failed", map[string]interface{}{
			"error": err.Error(),
		})
		return &entity.UpstreamFetchError{Err: err}
	}

	snap, err := c.parser.Parse(document)
	if err != nil {
		c.countFetch("invalid")
		c.logger.Error("Rate feed document rejected", map[string]interface{}{
			"error": err.Error(),
		})
		return &entity.UpstreamFetchError{Err: fmt.Errorf("failed to parse feed: %w", err)}
	}

	// Persist first: the last-call guard must never be set without a stored snapshot.
	// A caller that went away after the fetch must not discard the document.
	if err := c.store.Save(context.WithoutCancel(ctx), document); err != nil {
		c.countFetch("persist_error")
		c.logger.Error("Failed to persist rate snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	fetchedAt := c.now()
	c.mutex.Lock()
	c.snapshot = snap
	c.lastFetch = fetchedAt
	c.mutex.Unlock()

	c.countFetch("success")
	c.publish(snap)

	c.logger.Info("Rate snapshot refreshed", map[string]interface{}{
		"snapshot_date": snap.Date.Format(entity.DateLayout),
		"currencies":    len(snap.Rates),
		"duration_ms":   time.Since(start).Milliseconds(),
	})

	return nil
}

// Rate returns the rate of code relative to the base currency
func (c *RateCache) Rate(ctx context.Context, code string) (float64, error) {
	code = entity.NormalizeCode(code)
	if code == c.base {
		return 1.0, nil
	}

	snap, err := c.readable(ctx)
	if err != nil {
		return 0, err
	}

	return c.rateIn(snap, code)
}

// Quote returns the rates of both codes and the publication date, all read
// from the same snapshot
func (c *RateCache) Quote(ctx context.Context, from, to string) (*entity.Quote, error) {
	from, to = entity.NormalizeCode(from), entity.NormalizeCode(to)

	if from == c.base && to == c.base {
		return &entity.Quote{FromRate: 1.0, ToRate: 1.0, RateDate: c.SnapshotDate()}, nil
	}

	snap, err := c.readable(ctx)
	if err != nil {
		return nil, err
	}

	fromRate, err := c.rateIn(snap, from)
	if err != nil {
		return nil, err
	}

	toRate, err := c.rateIn(snap, to)
	if err != nil {
		return nil, err
	}

	date := snap.Date
	return &entity.Quote{
		FromRate: fromRate,
		ToRate:   toRate,
		RateDate: &date,
	}, nil
}

// SnapshotDate returns the publication date of the cached snapshot, or nil.
// It never triggers a fetch.
func (c *RateCache) SnapshotDate() *time.Time {
	snap := c.current()
	if snap == nil {
		return nil
	}

	date := snap.Date
	return &date
}

// readable refreshes if needed and returns the snapshot to answer from. A
// failed refresh is tolerated while a previous snapshot exists.
func (c *RateCache) readable(ctx context.Context) (*entity.RateSnapshot, error) {
	err := c.EnsureFresh(ctx)
	snap := c.current()

	if err != nil {
		if snap == nil {
			return nil, err
		}
		c.logger.Warn("Serving previous rate snapshot after failed refresh", map[string]interface{}{
			"snapshot_date": snap.Date.Format(entity.DateLayout),
			"error":         err.Error(),
		})
	}

	if snap == nil {
		return nil, &entity.UpstreamFetchError{Err: errors.New("no rate snapshot available")}
	}

	return snap, nil
}

func (c *RateCache) rateIn(snap *entity.RateSnapshot, code string) (float64, error) {
	if code == c.base {
		return 1.0, nil
	}

	rate, ok := snap.Rate(code)
	if !ok {
		return 0, &entity.CurrencyNotInFeedError{Code: code}
	}

	return rate, nil
}

func (c *RateCache) current() *entity.RateSnapshot {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return c.snapshot
}

func (c *RateCache) countFetch(result string) {
	if c.metrics != nil {
		c.metrics.FeedFetchesTotal.WithLabelValues(result).Inc()
	}
}

func (c *RateCache) publish(snap *entity.RateSnapshot) {
	if c.metrics != nil {
		c.metrics.SnapshotPublishedAt.Set(float64(snap.Date.Unix()))
	}
}
