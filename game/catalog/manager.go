package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrCatalogNotFound = errors.New("catalog not found")
	ErrInvalidCatalog  = errors.New("invalid catalog")
)

// Info summarizes one loadable catalog for listings.
type Info struct {
	Filename    string `json:"filename"`
	CatalogID   string `json:"catalog_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rows        int    `json:"rows"`
	Cols        int    `json:"cols"`
	TaskCount   int    `json:"task_count"`
}

// Manager loads and caches catalogs from a directory of JSON files. The
// built-in Default catalog is used when the directory has nothing usable.
type Manager struct {
	catalogDir     string
	defaultCatalog *Catalog
	catalogs       map[string]*Catalog
	mu             sync.RWMutex
}

// NewManager creates a catalog manager rooted at catalogDir. The directory
// may be empty; the built-in default is always available.
func NewManager(catalogDir string) (*Manager, error) {
	if catalogDir != "" {
		if err := os.MkdirAll(catalogDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	m := &Manager{
		catalogDir: catalogDir,
		catalogs:   make(map[string]*Catalog),
	}
	m.loadDefault()
	return m, nil
}

// Load loads a catalog by name, consulting the cache first.
func (m *Manager) Load(name string) (*Catalog, error) {
	m.mu.RLock()
	if c, exists := m.catalogs[name]; exists {
		m.mu.RUnlock()
		return c, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock.
	if c, exists := m.catalogs[name]; exists {
		return c, nil
	}

	if m.catalogDir == "" {
		return nil, ErrCatalogNotFound
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := os.ReadFile(filepath.Join(m.catalogDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCatalogNotFound
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := Validate(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	m.catalogs[name] = &c
	return &c, nil
}

// List returns information about every valid catalog in the directory.
func (m *Manager) List() ([]*Info, error) {
	infos := []*Info{
		catalogInfo("", m.GetDefault()),
	}

	if m.catalogDir == "" {
		return infos, nil
	}

	entries, err := os.ReadDir(m.catalogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		c, err := m.Load(name)
		if err != nil {
			// Skip invalid catalogs
			continue
		}

		info := catalogInfo(name, c)
		info.Filename = entry.Name()
		infos = append(infos, info)
	}

	return infos, nil
}

// GetDefault returns the default catalog.
func (m *Manager) GetDefault() *Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultCatalog
}

// Save writes a catalog to disk and updates the cache.
func (m *Manager) Save(name string, c *Catalog) error {
	if err := Validate(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if m.catalogDir == "" {
		return fmt.Errorf("no catalog directory configured")
	}

	filename := name
	if !strings.HasSuffix(filename, ".json") {
		filename = name + ".json"
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.WriteFile(filepath.Join(m.catalogDir, filename), data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}

	m.mu.Lock()
	m.catalogs[name] = c
	m.mu.Unlock()

	return nil
}

func (m *Manager) loadDefault() {
	// A file named bakery.json overrides the built-in default.
	if m.catalogDir != "" {
		if c, err := m.Load("bakery"); err == nil {
			m.mu.Lock()
			m.defaultCatalog = c
			m.mu.Unlock()
			return
		}
	}

	m.mu.Lock()
	m.defaultCatalog = Default()
	m.mu.Unlock()
}

func catalogInfo(id string, c *Catalog) *Info {
	if id == "" {
		id = "default"
	}
	return &Info{
		CatalogID:   id,
		Name:        c.Name,
		Description: c.Description,
		Rows:        c.Rows,
		Cols:        c.Cols,
		TaskCount:   len(c.Tasks),
	}
}
