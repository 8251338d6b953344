package headers

import (
	"github.com/VictoriaMetrics/fastcache"
	"github.com/vmihailenco/msgpack"
)

// Cache is an in-memory cache of `Headers` keyed by strings, such as the
// response headers of URLs. It is safe for concurrent use.
//
// The `Headers` are stored encoded, so a stored `Headers` is never shared:
// every `Get` returns a fresh instance owned by the caller.
type Cache struct {
	cache *fastcache.Cache
}

// NewCache returns a new instance of the `Cache` that holds up to the
// maxBytes. The `CacheMaxBytes` is used when the maxBytes is not positive.
func NewCache(maxBytes int) *Cache {
	if maxBytes <= 0 {
		maxBytes = CacheMaxBytes
	}

	return &Cache{
		cache: fastcache.New(maxBytes),
	}
}

// Set stores a snapshot of the h under the key. Entries larger than 64 KB are
// silently dropped by the underlying cache.
func (c *Cache) Set(key string, h *Headers) error {
	b, err := msgpack.Marshal(h)
	if err != nil {
		return err
	}

	c.cache.Set([]byte(key), b)

	return nil
}

// Get returns the `Headers` stored under the key. The bool reports whether
// the key is present.
func (c *Cache) Get(key string) (*Headers, bool) {
	b := c.cache.Get(nil, []byte(key))
	if len(b) == 0 {
		return nil, false
	}

	h := &Headers{}
	if err := msgpack.Unmarshal(b, h); err != nil {
		ERROR(
			"headers: failed to decode cached headers",
			map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			},
		)

		return nil, false
	}

	return h, true
}

// Del deletes the key from the c.
func (c *Cache) Del(key string) {
	c.cache.Del([]byte(key))
}

// Reset removes all keys from the c.
func (c *Cache) Reset() {
	c.cache.Reset()
}
