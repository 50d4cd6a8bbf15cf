// internal/config/flags.go
package config

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bethropolis/axnav/internal/logger"
)

// Flags holds values parsed from command-line flags. Only flags the user set
// explicitly override the config file.
type Flags struct {
	ConfigFilePath string
	LogLevel       string
	LogFilePath    string
	EnableTags     []string
	DisableTags    []string
	EnablePkgs     []string
	DisablePkgs    []string
	DebugLog       bool

	WordMode        string
	NoPlaceholders  bool
	Unit            string
	SystemClipboard bool
	Theme           string
	Database        string
}

// Define registers the flags on fs, typically a cobra command's persistent flags.
func (f *Flags) Define(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "log-level", "", "Log level (debug, info, warn, error) - Overrides config file")
	fs.StringVar(&f.LogFilePath, "log-file", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "Tags to enable - Overrides config file")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "Tags to disable - Overrides config file")
	fs.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "Packages to enable - Overrides config file")
	fs.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "Packages to disable - Overrides config file")
	fs.BoolVar(&f.DebugLog, "debug-log", false, "Print the log filter's decisions to stderr")

	fs.StringVar(&f.WordMode, "word-mode", "", "Word segmentation: unicode or whitespace - Overrides config file")
	fs.BoolVar(&f.NoPlaceholders, "no-placeholders", false, "Do not expose embedded objects as a placeholder character")
	fs.StringVar(&f.Unit, "unit", "", "Default navigation unit - Overrides config file")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", false, "Copy ranges to the system clipboard - Overrides config file")
	fs.StringVar(&f.Theme, "theme", "", "Theme name for the interactive navigator - Overrides config file")
	fs.StringVar(&f.Database, "db", "", "Bookmark database path - Overrides config file")
}

// ApplyOverrides updates cfg with the flags that were set on fs.
func (f *Flags) ApplyOverrides(cfg *Config, fs *pflag.FlagSet) {
	fs.Visit(func(fl *pflag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "log-level":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "log-file":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = f.EnableTags
		case "log-disable-tags":
			cfg.Logger.DisabledTags = f.DisableTags
		case "log-packages":
			cfg.Logger.EnabledPackages = f.EnablePkgs
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = f.DisablePkgs
		case "debug-log":
			logger.SetFilterDebug(f.DebugLog)
		case "word-mode":
			cfg.Navigation.WordMode = f.WordMode
		case "no-placeholders":
			cfg.Navigation.EmbeddedObjectPlaceholders = !f.NoPlaceholders
		case "unit":
			cfg.TUI.Unit = f.Unit
		case "system-clipboard":
			cfg.TUI.SystemClipboard = f.SystemClipboard
		case "theme":
			cfg.TUI.Theme = f.Theme
		case "db":
			cfg.Bookmarks.Database = f.Database
		}
	})
}
