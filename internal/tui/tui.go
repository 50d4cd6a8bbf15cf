// Package tui owns the terminal screen of the interactive navigator.
package tui

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen    tcell.Screen
	closeOnce sync.Once
}

// New creates and initializes the terminal screen with a default style.
func New(style tcell.Style) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	return NewWithScreen(s, style)
}

// NewWithScreen initializes s, typically a tcell.SimulationScreen in tests.
func NewWithScreen(s tcell.Screen, style tcell.Style) (*TUI, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	s.SetStyle(style)
	s.HideCursor()
	return &TUI{screen: s}, nil
}

// Close finalizes the screen. Later calls do nothing.
func (t *TUI) Close() {
	t.closeOnce.Do(t.screen.Fini)
}

func (t *TUI) PollEvent() tcell.Event { return t.screen.PollEvent() }

// SetStyle changes the style of cleared cells.
func (t *TUI) SetStyle(style tcell.Style) { t.screen.SetStyle(style) }

func (t *TUI) Clear() { t.screen.Clear() }

func (t *TUI) Show() { t.screen.Show() }

// Sync redraws every cell after a resize.
func (t *TUI) Sync() { t.screen.Sync() }

func (t *TUI) Size() (int, int) { return t.screen.Size() }

// GetScreen exposes the screen to the drawing packages.
func (t *TUI) GetScreen() tcell.Screen { return t.screen }
