package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/bethropolis/axnav/internal/bookmark"
	"github.com/bethropolis/axnav/internal/position"
)

var flagOffset int

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Store and recall positions in a document",
}

var bookmarkPutCmd = &cobra.Command{
	Use:   "put FILE NAME",
	Short: "Store the position at --offset under NAME",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmarkPut,
}

var bookmarkGetCmd = &cobra.Command{
	Use:   "get FILE NAME",
	Short: "Print a stored position",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmarkGet,
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list FILE",
	Short: "List the bookmarks of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkList,
}

var bookmarkDeleteCmd = &cobra.Command{
	Use:   "delete FILE NAME",
	Short: "Delete a bookmark",
	Args:  cobra.ExactArgs(2),
	RunE:  runBookmarkDelete,
}

func init() {
	bookmarkPutCmd.Flags().IntVar(&flagOffset, "offset", 0, "document offset of the position")

	bookmarkCmd.AddCommand(bookmarkPutCmd)
	bookmarkCmd.AddCommand(bookmarkGetCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)
	bookmarkCmd.AddCommand(bookmarkDeleteCmd)
}

// withBookmarks opens the document and the store for fn.
func withBookmarks(cmd *cobra.Command, file string, fn func(*document, *bookmark.Store) error) error {
	doc, err := openDocument(cmd.Context(), file, cfg.Options())
	if err != nil {
		return err
	}
	defer doc.Close()

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening bookmarks: %w", err)
	}
	defer store.Close()
	return fn(doc, store)
}

func runBookmarkPut(cmd *cobra.Command, args []string) error {
	return withBookmarks(cmd, args[0], func(doc *document, store *bookmark.Store) error {
		p := doc.at(flagOffset)
		if p.IsNull() {
			return fmt.Errorf("offset %d is outside the document", flagOffset)
		}
		if err := store.Put(doc.path, args[1], p); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), doc.nav.Describe(p))
		return nil
	})
}

func runBookmarkGet(cmd *cobra.Command, args []string) error {
	return withBookmarks(cmd, args[0], func(doc *document, store *bookmark.Store) error {
		p, err := store.Get(doc.nav, doc.path, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), doc.nav.Describe(doc.nav.AsValidPosition(p)))
		return nil
	})
}

func runBookmarkList(cmd *cobra.Command, args []string) error {
	return withBookmarks(cmd, args[0], func(doc *document, store *bookmark.Store) error {
		marks, err := store.List(doc.path)
		if err != nil {
			return err
		}
		writeBookmarks(cmd.OutOrStdout(), doc.nav, marks)
		return nil
	})
}

func runBookmarkDelete(cmd *cobra.Command, args []string) error {
	return withBookmarks(cmd, args[0], func(doc *document, store *bookmark.Store) error {
		return store.Delete(doc.path, args[1])
	})
}

func writeBookmarks(w io.Writer, nav *position.Navigator, marks []bookmark.Bookmark) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCREATED\tPOSITION")
	for _, m := range marks {
		desc := "<malformed>"
		if p, err := nav.Unmarshal(m.Pos); err == nil {
			desc = nav.Describe(nav.AsValidPosition(p))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Name, m.CreatedAt.Local().Format(time.DateTime), desc)
	}
	tw.Flush()
}
