package dashboard

import (
	"errors"
	"fmt"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultCacheSizeBytes = 10 * 1024 * 1024

	// generations roll over on reload, expiry only bounds entries of long-lived snapshots
	cacheExpireSeconds = 60 * 60
)

// responseCache holds rendered responses per snapshot generation. A reload bumps the
// generation, so entries of older snapshots are never read again and age out.
type responseCache struct {
	cache *freecache.Cache
}

func newResponseCache(sizeBytes int) *responseCache {
	if sizeBytes <= 0 {
		sizeBytes = DefaultCacheSizeBytes
	}
	return &responseCache{
		cache: freecache.NewCache(sizeBytes),
	}
}

func cacheKey(generation uint64, view string) []byte {
	return []byte(fmt.Sprintf("%d::%s", generation, view))
}

func (c *responseCache) get(generation uint64, view string) ([]byte, bool) {
	resp, err := c.cache.Get(cacheKey(generation, view))
	if err != nil {
		if !errors.Is(err, freecache.ErrNotFound) {
			log.Warnf("dashboard cache: get [%s]: %s", view, err)
		}
		return nil, false
	}
	return resp, true
}

func (c *responseCache) set(generation uint64, view string, resp []byte) {
	if err := c.cache.Set(cacheKey(generation, view), resp, cacheExpireSeconds); err != nil {
		// too large entries are simply not cached
		log.Debugf("dashboard cache: set [%s]: %s", view, err)
	}
}
