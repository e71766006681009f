package cache

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"pocket-lite/models"
)

// TTL is how long a cached page stays valid after it is written.
const TTL = 3600 * time.Second

// Pages is the process-wide page cache fronting paginated reads. It is a
// best-effort accelerator, never a source of truth: ingestion does not
// invalidate it, so a page written just before a sync can stay stale for
// up to TTL.
type Pages struct {
	inner *gocache.Cache
}

func New() *Pages {
	return &Pages{inner: gocache.New(TTL, 10*time.Minute)}
}

// Key builds the cache key for one (page, tag) read.
func Key(page int, tag string) string {
	return fmt.Sprintf("page=%d&tag=%s", page, tag)
}

// Get returns the cached page for key, reporting a miss when the key is
// absent or expired.
func (p *Pages) Get(key string) (models.Page, bool) {
	v, ok := p.inner.Get(key)
	if !ok {
		return models.Page{}, false
	}
	page, ok := v.(models.Page)
	return page, ok
}

// Set stores a page under key, expiring ttl after the write.
func (p *Pages) Set(key string, page models.Page, ttl time.Duration) {
	p.inner.Set(key, page, ttl)
}
