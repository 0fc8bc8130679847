package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// InsightCache keeps recent AI analysis results per lead so reopening a
// lead workspace does not re-bill the provider for the same answer.
type InsightCache struct {
	cache *cache.Cache
}

func NewInsightCache() *InsightCache {
	// Default expiration of 1 hour, expired entries purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &InsightCache{
		cache: c,
	}
}

func (r *InsightCache) Save(key string, insight string) {
	r.cache.Set(key, insight, cache.DefaultExpiration)
}

func (r *InsightCache) Get(key string) (string, bool) {
	if x, found := r.cache.Get(key); found {
		return x.(string), true
	}
	return "", false
}

func (r *InsightCache) Delete(key string) {
	r.cache.Delete(key)
}
