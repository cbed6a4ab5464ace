package imaging

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/ironsheep/garment-palette-mcp/internal/extract"
)

// DefaultCacheEntries bounds a Cache created with a non-positive size.
const DefaultCacheEntries = 64

// Cache memoises decoded uploads and their colour analyses by content hash.
//
// Entries are keyed by the SHA-256 of the file contents plus the working
// width, so the same photo uploaded under different paths is decoded once,
// and a file rewritten in place is decoded again. When the cache is full the
// oldest entry is evicted.
//
// A Cache is owned by its caller (the MCP server holds one); the colour
// engine itself keeps no state. Cache is safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	entries    map[string]*cacheEntry
	order      []string
}

type cacheEntry struct {
	decoded *Decoded
	results map[extract.Algorithm]*extract.Result
}

// NewCache creates an empty cache holding at most maxEntries images.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheEntries
	}
	return &Cache{
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
	}
}

func cacheKey(hash string, workingWidth int) string {
	return fmt.Sprintf("%s/%d", hash, workingWidth)
}

// Load reads path and returns its decoded form, decoding only when the
// contents have not been seen at this working width.
func (c *Cache) Load(path string, workingWidth int) (*Decoded, error) {
	data, err := os.ReadFile(path) // #nosec G304 - caller-supplied image path
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return c.LoadBytes(data, workingWidth)
}

// LoadBytes is Load for an in-memory upload.
func (c *Cache) LoadBytes(data []byte, workingWidth int) (*Decoded, error) {
	if workingWidth <= 0 {
		workingWidth = DefaultWorkingWidth
	}
	key := cacheKey(contentHash(data), workingWidth)

	c.mu.Lock()
	if e, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return e.decoded, nil
	}
	c.mu.Unlock()

	d, err := Decode(data, workingWidth)
	if err != nil {
		return nil, err
	}
	d.cacheKey = key

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.decoded, nil
	}
	c.insertLocked(key, &cacheEntry{decoded: d, results: make(map[extract.Algorithm]*extract.Result)})
	return d, nil
}

// Analyze returns the colour analysis of d, computing it at most once per
// algorithm while d is cached. Images not loaded through this cache are
// analysed without memoisation.
func (c *Cache) Analyze(d *Decoded, alg extract.Algorithm) (*extract.Result, error) {
	c.mu.Lock()
	if e, ok := c.entries[d.cacheKey]; ok && e.decoded == d {
		if res, ok := e.results[alg]; ok {
			c.mu.Unlock()
			return res, nil
		}
	}
	c.mu.Unlock()

	res, err := extract.AnalyzeColors(d.Working, alg)
	if err != nil {
		// A raster that cannot be analysed is dropped so the next load
		// decodes the upload again.
		if d.cacheKey != "" && !errors.Is(err, extract.ErrUnknownAlgorithm) {
			c.Evict(d.Hash)
		}
		return nil, err
	}

	c.mu.Lock()
	if e, ok := c.entries[d.cacheKey]; ok && e.decoded == d {
		e.results[alg] = res
	}
	c.mu.Unlock()
	return res, nil
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Evict removes every cached entry for the given content hash.
func (c *Cache) Evict(hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.order[:0]
	for _, key := range c.order {
		if e := c.entries[key]; e != nil && e.decoded.Hash == hash {
			delete(c.entries, key)
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept
}

func (c *Cache) insertLocked(key string, e *cacheEntry) {
	for len(c.order) >= c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = e
	c.order = append(c.order, key)
}
