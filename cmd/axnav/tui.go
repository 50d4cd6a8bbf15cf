package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/bethropolis/axnav/internal/app"
	"github.com/bethropolis/axnav/internal/bookmark"
	"github.com/bethropolis/axnav/internal/clipboard"
	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/textrange"
	"github.com/bethropolis/axnav/internal/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui FILE",
	Short: "Browse a document interactively",
	Long:  "Shows the document with the current range highlighted. Tab cycles the unit, arrows move, Shift+arrows extend, y copies, m and ' set and jump to the mark, q quits.",
	Args:  cobra.ExactArgs(1),
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	unit, err := textrange.ParseUnit(cfg.TUI.Unit)
	if err != nil {
		return err
	}
	doc, err := openDocument(cmd.Context(), args[0], cfg.Options())
	if err != nil {
		return err
	}
	defer doc.Close()

	themes := theme.NewManager(cfg.ThemesDir())
	if err := themes.SetTheme(cfg.TUI.Theme); err != nil {
		logger.Warnf("%v, using %s", err, themes.Current().Name)
	}

	store, err := openStore()
	if err != nil {
		// The navigator works without a mark store.
		logger.Warnf("Bookmarks disabled: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	var placeholder rune
	if cfg.Navigation.EmbeddedObjectPlaceholders {
		placeholder, _ = utf8.DecodeRuneInString(cfg.Navigation.Placeholder)
	}

	a, err := app.NewApp(app.Config{
		Navigator:   doc.nav,
		Tree:        doc.tree.ID(),
		Document:    doc.path,
		Unit:        unit,
		Placeholder: placeholder,
		Themes:      themes,
		Clipboard:   clipboard.NewManager(cfg.TUI.SystemClipboard),
		Bookmarks:   store,
	})
	if err != nil {
		return err
	}
	return a.Run()
}

// openStore opens and migrates the bookmark database, creating its
// directory.
func openStore() (*bookmark.Store, error) {
	path := cfg.BookmarkPath()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	store, err := bookmark.NewStore(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		return nil, errors.Join(err, store.Close())
	}
	return store, nil
}
