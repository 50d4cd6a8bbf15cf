package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/axnav/internal/logger"
)

// ErrInvalidColor is wrapped by errors for unparsable colour values.
var ErrInvalidColor = errors.New("invalid color")

// styleDef is one entry of a theme file's [styles] table. Pointers tell an
// absent attribute apart from false.
type styleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

type themeFile struct {
	Name   string              `toml:"name"`
	IsDark bool                `toml:"is_dark"`
	Styles map[string]styleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML theme. Every style inherits the unset
// attributes of the file's Default style.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	return parseTheme(string(data), filePath)
}

func parseTheme(data, filePath string) (*Theme, error) {
	var tf themeFile
	metadata, err := toml.Decode(data, &tf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys in file '%s': %v", tf.Name, filePath, undecoded)
	}
	if tf.Name == "" {
		tf.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}

	t := &Theme{
		Name:   tf.Name,
		IsDark: tf.IsDark,
		Styles: make(map[string]tcell.Style, len(tf.Styles)+1),
	}

	base := tcell.StyleDefault
	if def, ok := tf.Styles[StyleDefault]; ok {
		if base, err = convertStyle(def, tcell.StyleDefault); err != nil {
			return nil, fmt.Errorf("theme '%s': style 'Default': %w", t.Name, err)
		}
	}
	t.Styles[StyleDefault] = base

	for name, def := range tf.Styles {
		if name == StyleDefault {
			continue
		}
		style, err := convertStyle(def, base)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", t.Name, name, err)
			continue
		}
		t.Styles[name] = style
	}

	logger.Debugf("Loaded theme '%s' from '%s'", t.Name, filePath)
	return t, nil
}

func convertStyle(def styleDef, base tcell.Style) (tcell.Style, error) {
	style := base
	if def.Fg != nil {
		c, err := parseColor(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("foreground: %w", err)
		}
		style = style.Foreground(c)
	}
	if def.Bg != nil {
		c, err := parseColor(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("background: %w", err)
		}
		style = style.Background(c)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// parseColor accepts #RRGGBB, "reset", "default" and the W3C colour names
// tcell knows.
func parseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("%w '%s', must be #RRGGBB", ErrInvalidColor, s)
		}
		v, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("%w '%s': %v", ErrInvalidColor, s, err)
		}
		return tcell.NewHexColor(int32(v)), nil
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("%w '%s'", ErrInvalidColor, s)
}
