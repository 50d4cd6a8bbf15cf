// Package app runs the interactive navigator: a document on screen, a text
// range moved around it by unit, and a status bar describing the range.
package app

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/axnav/internal/bookmark"
	"github.com/bethropolis/axnav/internal/clipboard"
	"github.com/bethropolis/axnav/internal/input"
	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/render"
	"github.com/bethropolis/axnav/internal/statusbar"
	"github.com/bethropolis/axnav/internal/textrange"
	"github.com/bethropolis/axnav/internal/theme"
	"github.com/bethropolis/axnav/internal/tracking"
	"github.com/bethropolis/axnav/internal/tui"
	"github.com/bethropolis/axnav/internal/types"
)

// MarkName is the bookmark the mark is persisted under.
const MarkName = "mark"

// Config wires an App. Navigator, Tree and Themes are required.
type Config struct {
	Navigator *position.Navigator
	Tree      types.TreeID
	// Document names the document in the status bar and the bookmark store.
	Document string
	Unit     textrange.Unit
	// Placeholder is styled apart when non-zero.
	Placeholder rune

	Themes    *theme.Manager
	Clipboard *clipboard.Manager
	// Bookmarks persists the mark across sessions when set.
	Bookmarks *bookmark.Store
	// Screen replaces the terminal, e.g. with a tcell.SimulationScreen.
	Screen tcell.Screen
}

// App encapsulates the components and main loop of the navigator.
type App struct {
	tuiManager *tui.TUI
	statusBar  *statusbar.StatusBar
	input      *input.InputProcessor
	themes     *theme.Manager
	clipboard  *clipboard.Manager
	bookmarks  *bookmark.Store

	nav         *position.Navigator
	tree        types.TreeID
	document    string
	placeholder rune

	view *render.View
	rng  textrange.Range
	unit textrange.Unit
	top  int

	tracker *tracking.Tracker
	mark    *tracking.Handle

	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp initializes the screen and places the range on the first unit of
// the document.
func NewApp(cfg Config) (*App, error) {
	if cfg.Navigator == nil || cfg.Themes == nil {
		return nil, errors.New("app: navigator and themes are required")
	}
	if _, ok := cfg.Navigator.Source().Root(cfg.Tree); !ok {
		return nil, fmt.Errorf("app: unknown tree %s", cfg.Tree)
	}

	style := cfg.Themes.Current().GetStyle(theme.StyleDefault)
	var (
		tuiManager *tui.TUI
		err        error
	)
	if cfg.Screen != nil {
		tuiManager, err = tui.NewWithScreen(cfg.Screen, style)
	} else {
		tuiManager, err = tui.New(style)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	cb := cfg.Clipboard
	if cb == nil {
		cb = clipboard.NewManager(false)
	}

	a := &App{
		tuiManager:    tuiManager,
		statusBar:     statusbar.New(statusbar.DefaultMessageTimeout),
		input:         input.NewInputProcessor(),
		themes:        cfg.Themes,
		clipboard:     cb,
		bookmarks:     cfg.Bookmarks,
		nav:           cfg.Navigator,
		tree:          cfg.Tree,
		document:      cfg.Document,
		placeholder:   cfg.Placeholder,
		view:          render.NewView(cfg.Navigator, cfg.Tree),
		unit:          cfg.Unit,
		tracker:       tracking.NewTracker(cfg.Navigator, cfg.Tree),
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}
	start := a.nav.CreatePositionAtStartOfDocument(a.tree)
	a.rng = textrange.Degenerate(a.nav, start).ExpandToEnclosingUnit(a.unit)
	a.statusBar.SetDocument(a.document)
	return a, nil
}

// Run draws the document and handles keys until a quit action.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.tracker.Close()

	go a.eventLoop()

	a.statusBar.SetTemporaryMessage("Tab unit | ←/→ move | Shift extend | y copy | m mark | q quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			logger.Debugf("App: quitting")
			return nil
		case <-a.redrawRequest:
			a.draw()
		}
	}
}

// eventLoop turns terminal events into actions. It ends when the screen is
// finalized.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.Sync()
			needsRedraw = true
		case *tcell.EventKey:
			action := a.input.ProcessEvent(ev)
			if action == input.ActionQuit {
				close(a.quit)
				return
			}
			needsRedraw = a.HandleAction(action)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// requestRedraw sends a redraw signal without blocking.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// Range returns the current range.
func (a *App) Range() textrange.Range { return a.rng }

// Unit returns the active navigation unit.
func (a *App) Unit() textrange.Unit { return a.unit }
