package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/axnav/internal/theme"
)

const tabWidth = 4

// Frame is what one redraw shows.
type Frame struct {
	View *View
	// Top is the first visible line.
	Top int
	// RangeStart and RangeEnd are document offsets; equal values draw a caret.
	RangeStart, RangeEnd int
	// Placeholder is the embedded object character, styled apart. Zero disables.
	Placeholder rune
	Theme       *theme.Theme
}

// gutterWidth returns the width of the line number column, or 0 when the
// screen is too narrow for it.
func gutterWidth(lines, width int) int {
	if lines < 1 {
		lines = 1
	}
	w := int(math.Log10(float64(lines))) + 2
	if w >= width {
		return 0
	}
	return w
}

// Document draws f over rows [0, height) of screen.
func Document(screen tcell.Screen, f Frame, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	t := f.Theme
	defaultStyle := t.GetStyle(theme.StyleDefault)
	numberStyle := t.GetStyle(theme.StyleLineNumber)
	rangeStyle := t.GetStyle(theme.StyleRange)
	caretStyle := t.GetStyle(theme.StyleCaret)
	placeholderStyle := t.GetStyle(theme.StylePlaceholder)

	lines := f.View.Lines
	gutter := gutterWidth(len(lines), width)
	collapsed := f.RangeStart == f.RangeEnd

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, defaultStyle)
		}
		idx := f.Top + y
		if idx < 0 || idx >= len(lines) {
			continue
		}
		line := lines[idx]

		if gutter > 0 {
			for i, r := range fmt.Sprintf("%*d", gutter-1, idx+1) {
				screen.SetContent(i, y, r, nil, numberStyle)
			}
		}

		x := gutter
		offset := line.Start
		gr := uniseg.NewGraphemes(string(line.Text))
		for gr.Next() && x < width {
			runes := gr.Runes()
			w := gr.Width()

			style := defaultStyle
			if f.Placeholder != 0 && runes[0] == f.Placeholder {
				style = placeholderStyle
			}
			if offset >= f.RangeStart && offset < f.RangeEnd {
				style = rangeStyle
			} else if collapsed && offset == f.RangeStart {
				style = caretStyle
			}

			switch runes[0] {
			case '\t':
				w = tabWidth - (x-gutter)%tabWidth
				for i := 0; i < w && x+i < width; i++ {
					screen.SetContent(x+i, y, ' ', nil, style)
				}
			case '\n', '\u2028', '\u2029':
				w = 1
				screen.SetContent(x, y, ' ', nil, style)
			default:
				if w < 1 {
					w = 1
				}
				screen.SetContent(x, y, runes[0], runes[1:], style)
				for i := 1; i < w && x+i < width; i++ {
					screen.SetContent(x+i, y, ' ', nil, style)
				}
			}
			x += w
			offset += len(runes)
		}

		// A caret past the last character sits on the cell after it.
		if collapsed && f.RangeStart == line.End() && x < width && lineOf(f.View, f.RangeStart) == idx {
			screen.SetContent(x, y, ' ', nil, caretStyle)
		}
	}
}

func lineOf(v *View, offset int) int {
	line, _ := v.Locate(offset)
	return line
}
