package fileops

import (
	"os"
	"sync"
	"time"
)

// stamp identifies one version of a file on disk
type stamp struct {
	modTime time.Time
	size    int64
}

func stampOf(info os.FileInfo) stamp {
	return stamp{modTime: info.ModTime(), size: info.Size()}
}

type cachedHeader struct {
	content string
	stamp   stamp
}

// CacheStats counts how header reads were served
type CacheStats struct {
	Hits   int
	Misses int
}

// HeaderCache keeps header contents for the length of a run. Rule discovery and
// injection read the same files, so the second read comes from memory unless the
// file's size or modification time moved.
type HeaderCache struct {
	mu      sync.Mutex
	headers map[string]cachedHeader
	stats   CacheStats
}

// NewHeaderCache creates an empty cache
func NewHeaderCache() *HeaderCache {
	return &HeaderCache{headers: make(map[string]cachedHeader)}
}

// lookup returns the cached content of path when info still matches the stored stamp
func (c *HeaderCache) lookup(path string, info os.FileInfo) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.headers[path]
	if ok && entry.stamp == stampOf(info) {
		c.stats.Hits++
		return entry.content, true
	}
	if ok {
		delete(c.headers, path)
	}
	c.stats.Misses++
	return "", false
}

func (c *HeaderCache) store(path, content string, info os.FileInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.headers[path] = cachedHeader{content: content, stamp: stampOf(info)}
}

// Forget drops path from the cache
func (c *HeaderCache) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.headers, path)
}

// Len returns the number of cached headers
func (c *HeaderCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.headers)
}

// Stats returns the hit and miss counts so far
func (c *HeaderCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
