// Package theme holds the named tcell styles used by the interactive
// navigator and loads additional themes from TOML files.
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/axnav/internal/logger"
)

// Style names looked up by the renderer and the status bar.
const (
	StyleDefault          = "Default"
	StyleRange            = "Range"
	StyleCaret            = "Range.Caret"
	StylePlaceholder      = "Placeholder"
	StyleLineNumber       = "LineNumber"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarUnit    = "StatusBar.Unit"
	StyleStatusBarMessage = "StatusBar.Message"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle returns the style called name. A dotted name falls back to its
// base ("Range.Caret" -> "Range"), then to "Default", then to tcell's default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dot := strings.Index(name, "."); dot != -1 {
		if style, ok := t.Styles[name[:dot]]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, name[:dot])
			return style
		}
	}

	if def, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return def
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Built-in themes.
var (
	Dark  Theme
	Light Theme
)

func init() {
	fg := tcell.NewHexColor(0xc5cdd9)
	bar := tcell.NewHexColor(0x2a2f38)
	muted := tcell.NewHexColor(0x5c6370)
	yellow := tcell.NewHexColor(0xe5c07b)
	blue := tcell.NewHexColor(0x61afef)
	cyan := tcell.NewHexColor(0x56b6c2)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	Dark = Theme{
		Name:   "Axnav Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:          base,
			StyleRange:            base.Background(blue).Foreground(tcell.ColorBlack),
			StyleCaret:            base.Reverse(true),
			StylePlaceholder:      base.Foreground(cyan).Italic(true),
			StyleLineNumber:       base.Foreground(muted),
			StyleStatusBar:        tcell.StyleDefault.Background(bar).Foreground(fg),
			StyleStatusBarUnit:    tcell.StyleDefault.Background(bar).Foreground(yellow).Bold(true),
			StyleStatusBarMessage: tcell.StyleDefault.Background(bar).Foreground(fg).Bold(true),
		},
	}

	ink := tcell.NewHexColor(0x383a42)
	paper := tcell.NewHexColor(0xe5e5e6)
	lightBase := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(ink)
	Light = Theme{
		Name: "Axnav Light",
		Styles: map[string]tcell.Style{
			StyleDefault:          lightBase,
			StyleRange:            lightBase.Background(tcell.NewHexColor(0xbfd7ff)),
			StyleCaret:            lightBase.Reverse(true),
			StylePlaceholder:      lightBase.Foreground(tcell.NewHexColor(0x0184bc)).Italic(true),
			StyleLineNumber:       lightBase.Foreground(tcell.NewHexColor(0xa0a1a7)),
			StyleStatusBar:        tcell.StyleDefault.Background(paper).Foreground(ink),
			StyleStatusBarUnit:    tcell.StyleDefault.Background(paper).Foreground(tcell.NewHexColor(0xa626a4)).Bold(true),
			StyleStatusBarMessage: tcell.StyleDefault.Background(paper).Foreground(ink).Bold(true),
		},
	}
}
