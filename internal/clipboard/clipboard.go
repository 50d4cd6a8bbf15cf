// Package clipboard holds copied range text, mirroring it to the system
// clipboard when that is enabled and available.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/axnav/internal/logger"
)

// ErrUnavailable is returned when the system clipboard cannot be written.
// The text is still kept in the internal register.
var ErrUnavailable = errors.New("system clipboard unavailable")

// Manager is the copy register of the navigator.
type Manager struct {
	mu       sync.Mutex
	register string
	system   bool

	writeAll func(string) error
	readAll  func() (string, error)
}

// NewManager creates a manager; system selects mirroring to the OS
// clipboard.
func NewManager(system bool) *Manager {
	return &Manager{
		system:   system && !clipboard.Unsupported,
		writeAll: clipboard.WriteAll,
		readAll:  clipboard.ReadAll,
	}
}

// System reports whether copies go to the OS clipboard.
func (m *Manager) System() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.system
}

// Copy stores text. An empty text is ignored and reports false.
func (m *Manager) Copy(text string) (bool, error) {
	if text == "" {
		return false, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.register = text
	logger.DebugTagf("clipboard", "copied %d bytes", len(text))
	if !m.system {
		return true, nil
	}
	if err := m.writeAll(text); err != nil {
		logger.Warnf("Clipboard: system copy failed, keeping text internally: %v", err)
		return true, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return true, nil
}

// Text returns the last copied text, preferring the system clipboard.
func (m *Manager) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.system {
		if s, err := m.readAll(); err == nil && s != "" {
			return s
		}
	}
	return m.register
}
