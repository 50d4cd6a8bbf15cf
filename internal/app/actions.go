package app

import (
	"errors"

	"github.com/bethropolis/axnav/internal/bookmark"
	"github.com/bethropolis/axnav/internal/clipboard"
	"github.com/bethropolis/axnav/internal/input"
	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/textrange"
	"github.com/bethropolis/axnav/internal/theme"
)

// HandleAction applies action to the range and reports whether the screen
// needs a redraw. ActionQuit is handled by the event loop.
func (a *App) HandleAction(action input.Action) bool {
	logger.DebugTagf("app", "action %s", action)

	switch action {
	case input.ActionMoveNext:
		a.move(a.unit, 1)
	case input.ActionMovePrevious:
		a.move(a.unit, -1)
	case input.ActionLineDown:
		a.move(textrange.UnitLine, 1)
	case input.ActionLineUp:
		a.move(textrange.UnitLine, -1)
	case input.ActionDocumentStart:
		a.collapseTo(a.nav.CreatePositionAtStartOfDocument(a.tree))
	case input.ActionDocumentEnd:
		a.collapseTo(a.nav.CreatePositionAtEndOfDocument(a.tree))
	case input.ActionExtendNext:
		a.extend(1)
	case input.ActionExtendPrevious:
		a.extend(-1)
	case input.ActionNextUnit:
		a.cycleUnit(1)
	case input.ActionPreviousUnit:
		a.cycleUnit(-1)
	case input.ActionExpand:
		a.collapseTo(a.rng.Start)
	case input.ActionCopy:
		a.copyRange()
	case input.ActionMark:
		a.setMark()
	case input.ActionJumpToMark:
		a.jumpToMark()
	case input.ActionNextTheme:
		t := a.themes.Next()
		a.tuiManager.SetStyle(t.GetStyle(theme.StyleDefault))
		a.statusBar.SetTemporaryMessage("Theme: %s", t.Name)
	default:
		return false
	}
	return true
}

// move shifts the range by count units of u and re-expands it to the
// active unit.
func (a *App) move(u textrange.Unit, count int) {
	r, moved := a.rng.Move(u, count)
	if moved == 0 {
		if count > 0 {
			a.statusBar.SetTemporaryMessage("No next %s", u)
		} else {
			a.statusBar.SetTemporaryMessage("No previous %s", u)
		}
		return
	}
	a.collapseTo(r.Start)
}

func (a *App) collapseTo(p position.Position) {
	r := textrange.Degenerate(a.nav, p).ExpandToEnclosingUnit(a.unit)
	if r.IsNull() {
		logger.Warnf("App: cannot place range at %s", p)
		return
	}
	a.rng = r
}

func (a *App) extend(count int) {
	r, moved := a.rng.MoveEndpoint(textrange.EndEndpoint, a.unit, count)
	if moved == 0 {
		a.statusBar.SetTemporaryMessage("Cannot extend by %s", a.unit)
		return
	}
	a.rng = r
}

func (a *App) cycleUnit(step int) {
	units := textrange.Units()
	i := 0
	for j, u := range units {
		if u == a.unit {
			i = j
			break
		}
	}
	a.unit = units[(i+step+len(units))%len(units)]
	a.collapseTo(a.rng.Start)
}

func (a *App) copyRange() {
	text := a.rng.Text()
	ok, err := a.clipboard.Copy(text)
	switch {
	case errors.Is(err, clipboard.ErrUnavailable):
		a.statusBar.SetTemporaryMessage("Copied %d characters internally: %v", len([]rune(text)), err)
	case err != nil:
		a.statusBar.SetTemporaryMessage("Copy failed: %v", err)
	case !ok:
		a.statusBar.SetTemporaryMessage("Nothing to copy")
	default:
		a.statusBar.SetTemporaryMessage("Copied %d characters", len([]rune(text)))
	}
}

func (a *App) setMark() {
	if a.mark == nil {
		a.mark = a.tracker.Track(a.rng.Start)
	} else {
		a.mark.Set(a.rng.Start)
	}
	if a.bookmarks != nil {
		if err := a.bookmarks.Put(a.document, MarkName, a.rng.Start); err != nil {
			a.statusBar.SetTemporaryMessage("Mark set, not saved: %v", err)
			return
		}
	}
	a.statusBar.SetTemporaryMessage("Mark set")
}

func (a *App) jumpToMark() {
	p := position.Null
	if a.mark != nil {
		p = a.mark.Position()
	}
	if p.IsNull() && a.bookmarks != nil {
		stored, err := a.bookmarks.Get(a.nav, a.document, MarkName)
		if err != nil && !errors.Is(err, bookmark.ErrNotFound) {
			a.statusBar.SetTemporaryMessage("Cannot read mark: %v", err)
			return
		}
		p = a.nav.AsValidPosition(stored)
	}
	if p.IsNull() {
		a.statusBar.SetTemporaryMessage("No mark")
		return
	}
	a.collapseTo(p)
}
