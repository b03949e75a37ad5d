package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"shapegen/internal/facts"
)

// Current schema version - increment when CacheEntry format changes
const cacheSchemaVersion uint16 = 1

// Cache stores successful expansions on disk, keyed by a digest of the
// generator version, the effective configuration and the input source.
// Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CacheEntry is one cached expansion. Resources are revalidated on every
// hit, since file_words! output depends on files outside the key.
type CacheEntry struct {
	Schema    uint16
	Path      string
	Code      []byte
	Resources []facts.Resource
}

// OpenCache opens the cache in dir. An empty dir selects
// $XDG_CACHE_HOME/shapegen, or ~/.cache/shapegen.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "shapegen")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, "expansions", key[:2], key+".mp")
}

// Put writes entry atomically.
func (c *Cache) Put(key string, entry *CacheEntry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.Schema = cacheSchemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(entry); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the entry for key. Entries of another schema are misses.
func (c *Cache) Get(key string, out *CacheEntry) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == cacheSchemaVersion, nil
}

// Fresh reports whether every resource of entry still has its recorded
// digest.
func (e *CacheEntry) Fresh(read facts.ReadFunc) bool {
	if read == nil {
		read = os.ReadFile
	}
	for _, r := range e.Resources {
		data, err := read(r.Path)
		if err != nil || facts.Digest(data) != r.Digest {
			return false
		}
	}
	return true
}
