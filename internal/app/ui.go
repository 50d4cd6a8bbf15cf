package app

import (
	"github.com/bethropolis/axnav/internal/render"
)

// draw clears the screen and redraws every component.
func (a *App) draw() {
	width, height := a.tuiManager.Size()
	viewHeight := height - 1

	start, end := a.view.Span(a.rng)
	line, _ := a.view.Locate(start)
	a.top = render.ScrollTop(a.top, line, viewHeight)

	a.updateStatusBarContent()

	t := a.themes.Current()
	screen := a.tuiManager.GetScreen()
	a.tuiManager.Clear()
	render.Document(screen, render.Frame{
		View:        a.view,
		Top:         a.top,
		RangeStart:  start,
		RangeEnd:    end,
		Placeholder: a.placeholder,
		Theme:       t,
	}, width, viewHeight)
	a.statusBar.Draw(screen, width, height, t)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes the range state to the status bar.
func (a *App) updateStatusBarContent() {
	a.statusBar.SetUnit(a.unit.String())
	a.statusBar.SetDescription(a.nav.Describe(a.nav.AsLeafTextPosition(a.rng.Start)))
}
