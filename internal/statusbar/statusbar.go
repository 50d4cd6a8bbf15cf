// Package statusbar draws the navigator's bottom line.
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/axnav/internal/theme"
)

// DefaultMessageTimeout is how long a temporary message stays visible.
const DefaultMessageTimeout = 4 * time.Second

// StatusBar shows the document name, the active unit and a description of
// the current range, or a temporary message in their place.
type StatusBar struct {
	mu sync.Mutex

	timeout time.Duration
	now     func() time.Time

	document    string
	unit        string
	description string

	message     string
	messageTime time.Time
}

// New creates a status bar whose messages expire after timeout.
func New(timeout time.Duration) *StatusBar {
	return &StatusBar{timeout: timeout, now: time.Now}
}

func (sb *StatusBar) SetDocument(name string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.document = name
}

func (sb *StatusBar) SetUnit(unit string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.unit = unit
}

// SetDescription sets the text following the unit, usually a description of
// the range's start.
func (sb *StatusBar) SetDescription(text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.description = text
}

// SetTemporaryMessage displays a message until the timeout passes.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...any) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.message = fmt.Sprintf(format, args...)
	sb.messageTime = sb.now()
}

// Text returns the line that Draw would render and whether it is a message.
func (sb *StatusBar) Text() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.messageTime.IsZero() {
		if sb.now().Sub(sb.messageTime) <= sb.timeout {
			return sb.message, true
		}
		sb.message, sb.messageTime = "", time.Time{}
	}

	doc := sb.document
	if doc == "" {
		doc = "[No Name]"
	}
	return fmt.Sprintf("%s [%s] %s", doc, sb.unit, sb.description), false
}

// Draw renders the bar on the last screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, t *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	text, isMessage := sb.Text()
	style := t.GetStyle(theme.StyleStatusBar)
	if isMessage {
		style = t.GetStyle(theme.StyleStatusBarMessage)
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	sb.mu.Lock()
	unitPrefix := len(sb.document) + 2
	if sb.document == "" {
		unitPrefix = len("[No Name]") + 2
	}
	unitLen := len(sb.unit)
	sb.mu.Unlock()

	gr := uniseg.NewGraphemes(text)
	x, b := 0, 0
	for gr.Next() {
		w := gr.Width()
		if x+w > width {
			break
		}
		cellStyle := style
		if !isMessage && b >= unitPrefix && b < unitPrefix+unitLen {
			cellStyle = t.GetStyle(theme.StyleStatusBarUnit)
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], cellStyle)
		x += w
		b += len(gr.Bytes())
	}
}
