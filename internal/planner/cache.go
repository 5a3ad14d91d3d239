package planner

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Gateway fetches raw documents from the upstream transit API. Implemented
// by the TfL client; tests substitute call-counting stubs.
type Gateway interface {
	// SearchStopPoints queries stop-point search by free-text name.
	SearchStopPoints(ctx context.Context, query string) (Document, error)

	// JourneyResults fetches journey options between two stop identifiers,
	// restricted to the given comma-separated mode set.
	JourneyResults(ctx context.Context, fromID, toID, modesCSV string) (Document, error)
}

// CacheMetrics records cache hit and miss counts per operation.
// Satisfied by the middleware ProviderMetrics instruments.
type CacheMetrics interface {
	RecordCacheHit(provider, operation string)
	RecordCacheMiss(provider, operation string)
}

// journeyKey is the structured cache key for journey lookups. A struct key
// cannot collide on delimiter characters in station-derived input.
type journeyKey struct {
	FromID string
	ToID   string
	Bucket string
	Modes  string
}

type cacheEntry struct {
	doc       Document
	expiresAt time.Time
}

// CacheConfig holds configuration for the bucketed gateway cache.
type CacheConfig struct {
	// Gateway is the upstream API client (required).
	Gateway Gateway

	// Logger for cache operations.
	Logger zerolog.Logger

	// JourneyTTL is how long journey documents are retained (default: 5 minutes).
	JourneyTTL time.Duration

	// StopSearchTTL is how long stop-point search results are retained
	// (default: 90 minutes; stop identifiers do not change minute-to-minute).
	StopSearchTTL time.Duration

	// CleanupInterval is how often expired entries are swept (default: 5 minutes).
	CleanupInterval time.Duration

	// Provider names the upstream for metrics attribution.
	Provider string

	// Metrics records cache hits and misses (optional).
	Metrics CacheMetrics
}

// Cache memoizes gateway calls. Journey results are keyed by the full
// (from, to, time bucket, mode signature) tuple; stop searches are keyed by
// the lower-cased name only. Errors are never cached.
type Cache struct {
	gateway         Gateway
	logger          zerolog.Logger
	journeyTTL      time.Duration
	stopSearchTTL   time.Duration
	cleanupInterval time.Duration
	provider        string
	metrics         CacheMetrics

	mu           sync.RWMutex
	journeys     map[journeyKey]*cacheEntry
	stopSearches map[string]*cacheEntry
	lastCleanup  time.Time
}

// NewCache creates a new gateway cache.
func NewCache(cfg CacheConfig) *Cache {
	journeyTTL := cfg.JourneyTTL
	if journeyTTL == 0 {
		journeyTTL = 5 * time.Minute
	}

	stopSearchTTL := cfg.StopSearchTTL
	if stopSearchTTL == 0 {
		stopSearchTTL = 90 * time.Minute
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval == 0 {
		cleanupInterval = 5 * time.Minute
	}

	return &Cache{
		gateway:         cfg.Gateway,
		logger:          cfg.Logger,
		journeyTTL:      journeyTTL,
		stopSearchTTL:   stopSearchTTL,
		cleanupInterval: cleanupInterval,
		provider:        cfg.Provider,
		metrics:         cfg.Metrics,
		journeys:        make(map[journeyKey]*cacheEntry),
		stopSearches:    make(map[string]*cacheEntry),
		lastCleanup:     time.Now(),
	}
}

func (c *Cache) recordHit(operation string) {
	if c.metrics != nil {
		c.metrics.RecordCacheHit(c.provider, operation)
	}
}

func (c *Cache) recordMiss(operation string) {
	if c.metrics != nil {
		c.metrics.RecordCacheMiss(c.provider, operation)
	}
}

// StopSearch returns the stop-point search document for name, fetching it
// from the gateway at most once per retention window.
func (c *Cache) StopSearch(ctx context.Context, name string) (Document, error) {
	key := strings.ToLower(name)

	c.mu.RLock()
	if entry, ok := c.stopSearches[key]; ok && time.Now().Before(entry.expiresAt) {
		c.mu.RUnlock()
		c.logger.Debug().Str("name", key).Msg("stop search cache hit")
		c.recordHit("stop_search")
		return entry.doc, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check under the write lock so concurrent misses collapse into
	// a single gateway call.
	if entry, ok := c.stopSearches[key]; ok && time.Now().Before(entry.expiresAt) {
		c.recordHit("stop_search")
		return entry.doc, nil
	}

	c.recordMiss("stop_search")
	doc, err := c.gateway.SearchStopPoints(ctx, name)
	if err != nil {
		return nil, err
	}

	c.stopSearches[key] = &cacheEntry{doc: doc, expiresAt: time.Now().Add(c.stopSearchTTL)}
	c.cleanupLocked()

	return doc, nil
}

// Journey returns the journey-options document for the given key tuple,
// fetching it from the gateway at most once per retention window.
func (c *Cache) Journey(ctx context.Context, fromID, toID, bucket, modesSignature string) (Document, error) {
	key := journeyKey{FromID: fromID, ToID: toID, Bucket: bucket, Modes: modesSignature}

	c.mu.RLock()
	if entry, ok := c.journeys[key]; ok && time.Now().Before(entry.expiresAt) {
		c.mu.RUnlock()
		c.logger.Debug().
			Str("from", fromID).
			Str("to", toID).
			Str("bucket", bucket).
			Msg("journey cache hit")
		c.recordHit("journey")
		return entry.doc, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.journeys[key]; ok && time.Now().Before(entry.expiresAt) {
		c.recordHit("journey")
		return entry.doc, nil
	}

	c.recordMiss("journey")
	c.logger.Debug().
		Str("from", fromID).
		Str("to", toID).
		Str("bucket", bucket).
		Str("modes", modesSignature).
		Msg("fetching journey results from gateway")

	doc, err := c.gateway.JourneyResults(ctx, fromID, toID, modesSignature)
	if err != nil {
		return nil, err
	}

	c.journeys[key] = &cacheEntry{doc: doc, expiresAt: time.Now().Add(c.journeyTTL)}
	c.cleanupLocked()

	return doc, nil
}

// cleanupLocked sweeps expired entries. Caller must hold the write lock.
func (c *Cache) cleanupLocked() {
	now := time.Now()
	if now.Sub(c.lastCleanup) < c.cleanupInterval {
		return
	}
	c.lastCleanup = now

	removed := 0
	for key, entry := range c.journeys {
		if now.After(entry.expiresAt) {
			delete(c.journeys, key)
			removed++
		}
	}
	for key, entry := range c.stopSearches {
		if now.After(entry.expiresAt) {
			delete(c.stopSearches, key)
			removed++
		}
	}

	if removed > 0 {
		c.logger.Debug().Int("removed", removed).Msg("cache cleanup")
	}
}
