package config

// Base application details
const AppName = "axnav"
const DefaultConfigFileName = "config.toml"
const DefaultBookmarkFileName = "bookmarks.db"
const DefaultLogFileName = "axnav.log"

// Navigation defaults
const DefaultPlaceholder = "\uFFFC"
const DefaultParagraphSeparators = "\n\u2029"
const DefaultWordMode = "unicode"

// TUI defaults
const DefaultUnit = "word"
const SystemClipboard = true
const DefaultTheme = "Axnav Dark"
const DefaultThemesDirName = "themes"
