// Package assets resolves texture names against asset directories and caches
// the decoded results.
package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/framecore/internal/engine/texture"
)

// ErrNotFound is returned when no directory holds the requested asset.
var ErrNotFound = errors.New("asset not found")

// Manager loads assets from a stack of directories.
type Manager struct {
	dirs     []fs.FS
	names    []string
	files    *Cache[[]byte]
	textures *Cache[*texture.Image]
	log      *zap.Logger
	mu       sync.RWMutex
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		files:    NewCache[[]byte](),
		textures: NewCache[*texture.Image](),
		log:      zap.NewNop(),
	}
}

// SetLogger replaces the no-op logger. A nil logger is ignored.
func (m *Manager) SetLogger(log *zap.Logger) {
	if log != nil {
		m.log = log
	}
}

// AddDir adds a directory to the search path.
// Directories are searched in reverse order (last added = highest priority).
func (m *Manager) AddDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("opening asset dir %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("opening asset dir %s: not a directory", path)
	}
	m.AddFS(path, os.DirFS(path))
	m.log.Info("asset dir added", zap.String("path", path))
	return nil
}

// AddFS adds a file system to the search path under a display name.
func (m *Manager) AddFS(name string, fsys fs.FS) {
	m.mu.Lock()
	m.dirs = append(m.dirs, fsys)
	m.names = append(m.names, name)
	m.mu.Unlock()
}

// Load reads a file by its slash-separated path.
func (m *Manager) Load(path string) ([]byte, error) {
	if data, ok := m.files.Get(path); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.dirs) - 1; i >= 0; i-- {
		data, err := fs.ReadFile(m.dirs[i], path)
		if err == nil {
			m.files.Set(path, data)
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
}

// Texture resolves name to a decoded image. A name without an extension is
// tried with each of texture.Extensions in order. Names are case-insensitive:
// the exact spelling is tried first, then any directory entry that matches
// ignoring case.
func (m *Manager) Texture(name string) (*texture.Image, error) {
	key := strings.ToLower(name)
	if img, ok := m.textures.Get(key); ok {
		return img, nil
	}

	candidates := []string{name}
	if filepath.Ext(name) == "" {
		candidates = candidates[:0]
		for _, ext := range texture.Extensions {
			candidates = append(candidates, name+ext)
		}
	}

	for _, c := range candidates {
		data, err := m.loadFold(c)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		img, err := texture.Decode(c, data)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", name, err)
		}
		m.textures.Set(key, img)
		m.log.Debug("texture loaded",
			zap.String("name", c),
			zap.Int("width", img.Width),
			zap.Int("height", img.Height))
		return img, nil
	}
	m.log.Debug("texture not found", zap.String("name", name))
	return nil, fmt.Errorf("texture %s: %w", name, ErrNotFound)
}

// loadFold reads p like Load, falling back to a case-insensitive match of the
// file name within its directory.
func (m *Manager) loadFold(p string) ([]byte, error) {
	data, err := m.Load(p)
	if !errors.Is(err, ErrNotFound) {
		return data, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	dir, base := path.Split(p)
	dir = strings.TrimSuffix(dir, "/")
	if dir == "" {
		dir = "."
	}
	for i := len(m.dirs) - 1; i >= 0; i-- {
		entries, err := fs.ReadDir(m.dirs[i], dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(e.Name(), base) {
				continue
			}
			data, err := fs.ReadFile(m.dirs[i], path.Join(dir, e.Name()))
			if err != nil {
				return nil, err
			}
			m.files.Set(p, data)
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
}

// Dirs returns the search path, lowest priority first.
func (m *Manager) Dirs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.names...)
}

// Stats returns the texture cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.textures.Stats()
}

// Close drops the search path and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.dirs = nil
	m.names = nil
	m.files.Clear()
	m.textures.Clear()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache[V any] struct {
	data map[string]V
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{
		data: make(map[string]V),
	}
}

// Get retrieves an item from cache.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Set stores an item in cache.
func (c *Cache[V]) Set(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = v
}

// Clear clears the cache.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]V)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache[V]) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
