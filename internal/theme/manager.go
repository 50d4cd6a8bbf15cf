package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/axnav/internal/logger"
)

// Manager holds the loaded themes and the active one. Names are matched
// case-insensitively.
type Manager struct {
	mu     sync.RWMutex
	themes map[string]*Theme
	active *Theme
}

// NewManager registers the built-in themes, loads every *.toml file of
// themesDir (skipped when empty or missing) and activates Dark.
func NewManager(themesDir string) *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	m.add(&Dark)
	m.add(&Light)
	m.active = &Dark

	if themesDir != "" {
		if err := m.LoadDir(themesDir); err != nil {
			logger.Warnf("Error loading themes from '%s': %v", themesDir, err)
		}
	}
	return m
}

func (m *Manager) add(t *Theme) {
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Warnf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadDir loads the theme files of dir. A missing directory is not an error.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.Debugf("Theme directory '%s' does not exist", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".toml") {
			continue
		}
		t, err := LoadThemeFromFile(filepath.Join(dir, e.Name()))
		if err != nil {
			logger.Warnf("Skipping theme: %v", err)
			continue
		}
		m.add(t)
		loaded++
	}
	logger.Debugf("Loaded %d themes from '%s'", loaded, dir)
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// SetTheme activates the theme called name.
func (m *Manager) SetTheme(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	m.active = t
	logger.Debugf("Active theme set to: %s", t.Name)
	return nil
}

// Next activates the theme following the current one in name order and
// returns it.
func (m *Manager) Next() *Theme {
	names := m.ListThemes()
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, n := range names {
		if strings.EqualFold(n, m.active.Name) {
			m.active = m.themes[strings.ToLower(names[(i+1)%len(names)])]
			break
		}
	}
	return m.active
}

// ListThemes returns the theme names, sorted.
func (m *Manager) ListThemes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
