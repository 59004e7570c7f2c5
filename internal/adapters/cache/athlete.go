package cache

import (
	"fmt"
	"sync"

	"github.com/hashmark/spotlight/internal/domain/model"
	"github.com/hashmark/spotlight/pkg/metrics"
)

// Default athlete cache bound.
const (
	defaultAthleteCacheSize = 256
)

// AthletePackage bundles an athlete's profile fields with their season
// splits. A nil Splits is a valid state: the provider exposes no statistics
// reference for some athletes.
type AthletePackage struct {
	AthleteID string
	Season    int
	Name      string
	Headshot  string
	Link      string
	Splits    *model.SeasonSplits
}

// AthleteCache holds athlete packages keyed by (season, athleteID), bounded
// by FIFO eviction so a long-running process cannot grow it without limit.
type AthleteCache struct {
	mu      sync.Mutex
	entries map[string]*AthletePackage
	order   []string // insertion order, oldest first
	maxSize int
}

// NewAthleteCache creates a bounded athlete package cache.
func NewAthleteCache(opts ...AthleteOption) *AthleteCache {
	c := &AthleteCache{
		entries: make(map[string]*AthletePackage),
		maxSize: defaultAthleteCacheSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func athleteKey(season int, athleteID string) string {
	return fmt.Sprintf("%d:%s", season, athleteID)
}

// Get returns the cached package for (season, athleteID), if present.
func (c *AthleteCache) Get(season int, athleteID string) (*AthletePackage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pkg, ok := c.entries[athleteKey(season, athleteID)]
	return pkg, ok
}

// Put stores pkg, evicting the oldest entry when the bound is reached.
func (c *AthleteCache) Put(pkg *AthletePackage) {
	key := athleteKey(pkg.Season, pkg.AthleteID)

	c.mu.Lock()
	if _, exists := c.entries[key]; !exists {
		for len(c.entries) >= c.maxSize && len(c.order) > 0 {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = pkg
	size := len(c.entries)
	c.mu.Unlock()

	metrics.UpdateAthleteCacheSize(size)
}

// Len returns the number of cached packages.
func (c *AthleteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every cached package.
func (c *AthleteCache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]*AthletePackage)
	c.order = nil
	c.mu.Unlock()
	metrics.UpdateAthleteCacheSize(0)
}
