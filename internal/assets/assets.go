// Package assets handles mesh import and caching.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/lighthouse/internal/logger"
)

// Manager loads asset files from a file system and caches their contents.
type Manager struct {
	fsys  fs.FS
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates an asset manager reading from fsys.
func NewManager(fsys fs.FS) *Manager {
	return &Manager{
		fsys:  fsys,
		cache: NewCache(),
	}
}

// NewDirManager creates an asset manager rooted at dir.
func NewDirManager(dir string) (*Manager, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening asset dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("asset path %s is not a directory", dir)
	}
	return NewManager(os.DirFS(dir)), nil
}

// Load loads a file, consulting the cache first.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := fs.ReadFile(m.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", path, err)
	}
	m.cache.Set(path, data)

	logger.Debug("asset loaded", zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}

// ImportMesh loads and decodes "<name>.json".
func (m *Manager) ImportMesh(name string) (*Mesh, error) {
	data, err := m.Load(name + ".json")
	if err != nil {
		return nil, err
	}
	mesh, err := ParseMesh(data)
	if err != nil {
		return nil, fmt.Errorf("importing mesh %s: %w", name, err)
	}
	return mesh, nil
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Close drops cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
