package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), ActionMoveNext},
		{"shift right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift), ActionExtendNext},
		{"shift left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), ActionExtendPrevious},
		{"ctrl right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModCtrl), ActionUnknown},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), ActionNextUnit},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), ActionPreviousUnit},
		{"ctrl c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), ActionQuit},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"y", tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone), ActionCopy},
		{"upper L", tcell.NewEventKey(tcell.KeyRune, 'L', tcell.ModShift), ActionExtendNext},
		{"alt y", tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModAlt), ActionUnknown},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), ActionUnknown},
		{"unbound key", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ActionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ProcessEvent(tt.ev))
		})
	}
}

func TestBind(t *testing.T) {
	p := NewInputProcessor()
	p.Bind('z', ActionCopy)
	assert.Equal(t, ActionCopy, p.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone)))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "extend-next", ActionExtendNext.String())
	assert.Equal(t, "unknown", Action(999).String())
}
