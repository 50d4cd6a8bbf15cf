package logger

import (
	"log/slog"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel specifies the minimum level to log (e.g., "debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// LogFilePath is the path to the output log file. Empty discards, "-" is stderr.
	LogFilePath string `toml:"log_file"`

	// Filters. Each pair is an allow-list and a deny-list; the deny-list
	// wins, and a non-empty allow-list admits only its members. Packages are
	// immediate directory names ("position"), files are base names
	// ("move.go"). Matching ignores case.
	EnabledTags      []string `toml:"enabled_tags"`
	DisabledTags     []string `toml:"disabled_tags"`
	EnabledPackages  []string `toml:"enabled_packages"`
	DisabledPackages []string `toml:"disabled_packages"`
	EnabledFiles     []string `toml:"enabled_files"`
	DisabledFiles    []string `toml:"disabled_files"`

	level    slog.Leveler
	tags     filter
	packages filter
	files    filter
}

// NewConfig returns the defaults: info level, output discarded.
func NewConfig() Config {
	return Config{LogLevel: "info"}
}

// ParseLevel maps a level name to a slog level. Unknown names report false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error", "err":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

func (c *Config) process() {
	level, _ := ParseLevel(c.LogLevel)
	c.level = level
	c.tags = newFilter(c.EnabledTags, c.DisabledTags)
	c.packages = newFilter(c.EnabledPackages, c.DisabledPackages)
	c.files = newFilter(c.EnabledFiles, c.DisabledFiles)
}

type filter struct {
	allow map[string]struct{} // nil admits everything not denied
	deny  map[string]struct{}
}

func newFilter(enabled, disabled []string) filter {
	return filter{allow: lowerSet(enabled), deny: lowerSet(disabled)}
}

func (f filter) restricted() bool { return f.allow != nil }

func (f filter) admits(key string) bool {
	key = strings.ToLower(key)
	if _, denied := f.deny[key]; denied {
		return false
	}
	if f.allow == nil {
		return true
	}
	_, ok := f.allow[key]
	return ok
}

func lowerSet(items []string) map[string]struct{} {
	var set map[string]struct{}
	for _, item := range items {
		if item == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(items))
		}
		set[strings.ToLower(item)] = struct{}{}
	}
	return set
}
