package fetcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cache stores raw chart responses on disk, one file per
// (ticker, range, interval) combination. A stored response is reused only
// while its file modification time is within MaxAge; after that the next
// Fetch goes back to the network. The cache is a latency optimization,
// never a correctness dependency.
type Cache struct {
	Dir    string
	MaxAge time.Duration
}

// NewCache creates a file cache rooted at dir.
func NewCache(dir string, maxAge time.Duration) *Cache {
	return &Cache{Dir: dir, MaxAge: maxAge}
}

func (c *Cache) path(symbol, rng, interval string) string {
	// index symbols like ^GSPC are not filename-safe
	safe := strings.ReplaceAll(symbol, "^", "_")
	return filepath.Join(c.Dir, fmt.Sprintf("%s_%s_%s.json", safe, rng, interval))
}

// Load returns the cached response for the key if it is still fresh.
func (c *Cache) Load(symbol, rng, interval string) ([]byte, bool) {
	p := c.path(symbol, rng, interval)
	fi, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	if time.Since(fi.ModTime()) > c.MaxAge {
		return nil, false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Store writes the raw response verbatim under the key.
func (c *Cache) Store(symbol, rng, interval string, data []byte) error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	return os.WriteFile(c.path(symbol, rng, interval), data, 0644)
}
