package statusbar

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/axnav/internal/theme"
)

func TestTextAndMessageExpiry(t *testing.T) {
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sb := New(time.Second)
	sb.now = func() time.Time { return clock }

	text, msg := sb.Text()
	assert.Equal(t, "[No Name] [] ", text)
	assert.False(t, msg)

	sb.SetDocument("a.html")
	sb.SetUnit("word")
	sb.SetDescription("TextPosition")
	text, _ = sb.Text()
	assert.Equal(t, "a.html [word] TextPosition", text)

	sb.SetTemporaryMessage("copied %d characters", 5)
	text, msg = sb.Text()
	assert.Equal(t, "copied 5 characters", text)
	assert.True(t, msg)

	clock = clock.Add(2 * time.Second)
	text, msg = sb.Text()
	assert.Equal(t, "a.html [word] TextPosition", text)
	assert.False(t, msg)
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(20, 3)

	sb := New(DefaultMessageTimeout)
	sb.SetDocument("doc")
	sb.SetUnit("line")
	sb.SetDescription("a very long description")
	sb.Draw(screen, 20, 3, &theme.Dark)

	row := make([]rune, 0, 20)
	for x := 0; x < 20; x++ {
		r, _, _, _ := screen.GetContent(x, 2)
		row = append(row, r)
	}
	assert.Equal(t, "doc [line] a very lo", string(row))

	_, _, style, _ := screen.GetContent(5, 2)
	assert.Equal(t, theme.Dark.GetStyle(theme.StyleStatusBarUnit), style)
	_, _, style, _ = screen.GetContent(0, 2)
	assert.Equal(t, theme.Dark.GetStyle(theme.StyleStatusBar), style)
}
