// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/textrange"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger     logger.Config    `toml:"logger"`
	Navigation NavigationConfig `toml:"navigation"`
	TUI        TUIConfig        `toml:"tui"`
	Bookmarks  BookmarkConfig   `toml:"bookmarks"`

	// Unrecognized lists keys of the loaded file that matched no field.
	Unrecognized []string `toml:"-"`
}

// NavigationConfig maps onto position.Options.
type NavigationConfig struct {
	EmbeddedObjectPlaceholders bool   `toml:"embedded_object_placeholders"`
	Placeholder                string `toml:"placeholder"`
	ParagraphSeparators        string `toml:"paragraph_separators"`
	WordMode                   string `toml:"word_mode"`
}

// TUIConfig holds settings of the interactive navigator.
type TUIConfig struct {
	Unit            string `toml:"unit"`
	SystemClipboard bool   `toml:"system_clipboard"`
	Theme           string `toml:"theme"`
	// ThemesDir holds extra TOML themes. Empty means ~/.config/axnav/themes.
	ThemesDir string `toml:"themes_dir"`
}

// BookmarkConfig locates the bookmark database. Empty means the default
// file under the user config directory.
type BookmarkConfig struct {
	Database string `toml:"database"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Navigation: NavigationConfig{
			EmbeddedObjectPlaceholders: true,
			Placeholder:                DefaultPlaceholder,
			ParagraphSeparators:        DefaultParagraphSeparators,
			WordMode:                   DefaultWordMode,
		},
		TUI: TUIConfig{
			Unit:            DefaultUnit,
			SystemClipboard: SystemClipboard,
			Theme:           DefaultTheme,
		},
	}
}

// DefaultPath returns ~/.config/axnav/config.toml, or "" when the user config
// directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg; keys absent from the file keep
// their current values. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		logger.Debugf("Config file not found: %s", filePath)
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	for _, key := range metadata.Undecoded() {
		cfg.Unrecognized = append(cfg.Unrecognized, key.String())
	}
	if len(cfg.Unrecognized) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, cfg.Unrecognized)
	}
	return nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		logger.Warnf("Config: invalid log level %q, using %q", c.Logger.LogLevel, defaults.Logger.LogLevel)
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if utf8.RuneCountInString(c.Navigation.Placeholder) != 1 {
		logger.Warnf("Config: placeholder must be one character, got %q", c.Navigation.Placeholder)
		c.Navigation.Placeholder = defaults.Navigation.Placeholder
	}
	if c.Navigation.ParagraphSeparators == "" {
		c.Navigation.ParagraphSeparators = defaults.Navigation.ParagraphSeparators
	}
	if _, err := position.ParseWordMode(c.Navigation.WordMode); err != nil {
		logger.Warnf("Config: %v", err)
		c.Navigation.WordMode = defaults.Navigation.WordMode
	}
	if _, err := textrange.ParseUnit(c.TUI.Unit); err != nil {
		logger.Warnf("Config: %v", err)
		c.TUI.Unit = defaults.TUI.Unit
	}
}

// Options converts the navigation table for position.NewNavigator. The
// config must have been validated.
func (c *Config) Options() position.Options {
	opts := position.DefaultOptions()
	opts.EmbeddedObjectPlaceholders = c.Navigation.EmbeddedObjectPlaceholders
	if r, _ := utf8.DecodeRuneInString(c.Navigation.Placeholder); r != utf8.RuneError {
		opts.Placeholder = r
	}
	opts.ParagraphSeparators = c.Navigation.ParagraphSeparators
	if mode, err := position.ParseWordMode(c.Navigation.WordMode); err == nil {
		opts.WordMode = mode
	}
	return opts
}

// BookmarkPath returns the configured database path or the default one.
func (c *Config) BookmarkPath() string {
	if c.Bookmarks.Database != "" {
		return c.Bookmarks.Database
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultBookmarkFileName
	}
	return filepath.Join(dir, AppName, DefaultBookmarkFileName)
}

// ThemesDir returns the configured theme directory or the default one, ""
// when neither is known.
func (c *Config) ThemesDir() string {
	if c.TUI.ThemesDir != "" {
		return c.TUI.ThemesDir
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultThemesDirName)
}

// Load starts from defaults, decodes the config file over them, applies the
// flags that were set on fs and validates the result. configFilePath "" means
// DefaultPath. A config file error is returned together with a usable config.
func Load(configFilePath string, flags *Flags, fs *pflag.FlagSet) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var loadErr error
	if effectivePath != "" {
		loadErr = loadFromFile(effectivePath, cfg)
	}

	if flags != nil && fs != nil {
		flags.ApplyOverrides(cfg, fs)
	}
	cfg.validate()
	return cfg, loadErr
}
