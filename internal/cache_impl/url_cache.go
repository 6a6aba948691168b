package cache_impl

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
)

type CacheI[K comparable, V any] interface {
	Get(key K) (value V, ok bool)
	Add(key K, value V) (evicted bool)
}

// URLCache memoises resolved image URLs keyed by the catalog image reference.
type URLCache struct {
	cache CacheI[string, string]
	log   logger.Logger
}

func NewURLCache(
	cache CacheI[string, string],
	log logger.Logger,
) *URLCache {
	return &URLCache{
		cache: cache,
		log:   log,
	}
}

// NewExpirableURLCache backs a URLCache with a size bounded LRU whose entries expire after ttl.
func NewExpirableURLCache(size int, ttl time.Duration, log logger.Logger) *URLCache {
	return NewURLCache(expirable.NewLRU[string, string](size, nil, ttl), log)
}

func (c *URLCache) Add(key string, value string) (evicted bool) {
	const op = "cache_impl.URLCache.Add"

	evicted = c.cache.Add(key, value)
	if evicted {
		c.log.Debug(op, logger.String("message", "cache size was exceeded"))
	}

	return evicted
}

func (c *URLCache) Get(key string) (value string, ok bool) {
	return c.cache.Get(key)
}
