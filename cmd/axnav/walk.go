package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/textrange"
)

var (
	flagKind   string
	flagDir    string
	flagPolicy string
	flagFrom   int
	flagLimit  int
)

var walkCmd = &cobra.Command{
	Use:   "walk FILE",
	Short: "Print every boundary of a kind, starting at a document offset",
	Args:  cobra.ExactArgs(1),
	RunE:  runWalk,
}

var unitsCmd = &cobra.Command{
	Use:   "units FILE",
	Short: "Print the text of every unit of the document",
	Long:  "Splits the document into ranges of the configured unit (--unit) and prints one per line.",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnits,
}

func init() {
	walkCmd.Flags().StringVar(&flagKind, "kind", "word-start", "boundary kind, e.g. character, word-end, line-start, paragraph-end, page-start")
	walkCmd.Flags().StringVar(&flagDir, "dir", "forward", "direction: forward|backward")
	walkCmd.Flags().StringVar(&flagPolicy, "policy", "cross", "policy: cross|stop-at-anchor|stop-if-already|stop-at-last")
	walkCmd.Flags().IntVar(&flagFrom, "from", 0, "document offset to start at; negative counts from the end")
	walkCmd.Flags().IntVar(&flagLimit, "limit", 1000, "maximum number of moves")
	unitsCmd.Flags().IntVar(&flagLimit, "limit", 1000, "maximum number of units")
}

func runWalk(cmd *cobra.Command, args []string) error {
	kind, err := position.ParseBoundaryKind(flagKind)
	if err != nil {
		return err
	}
	dir, err := position.ParseDirection(flagDir)
	if err != nil {
		return err
	}
	policy, err := position.ParsePolicy(flagPolicy)
	if err != nil {
		return err
	}

	doc, err := openDocument(cmd.Context(), args[0], cfg.Options())
	if err != nil {
		return err
	}
	defer doc.Close()

	from := flagFrom
	if from < 0 {
		end := doc.nav.CreatePositionAtEndOfDocument(doc.tree.ID())
		from += doc.nav.MaxTextOffset(end) + 1
	}
	start := doc.at(from)
	if start.IsNull() {
		return fmt.Errorf("offset %d is outside the document", flagFrom)
	}

	walk(cmd.OutOrStdout(), doc.nav, start, func(p position.Position) position.Position {
		return doc.nav.Move(p, kind, dir, policy)
	}, flagLimit)
	return nil
}

// walk prints the debug form of every position reached by repeating move
// until it yields Null or stops making progress.
func walk(w io.Writer, nav *position.Navigator, p position.Position, move func(position.Position) position.Position, limit int) int {
	fmt.Fprintln(w, nav.Describe(p))
	n := 0
	for ; n < limit; n++ {
		next := move(p)
		if next.IsNull() || nav.Equals(next, p) {
			break
		}
		p = next
		fmt.Fprintln(w, nav.Describe(p))
	}
	return n
}

func runUnits(cmd *cobra.Command, args []string) error {
	unit, err := textrange.ParseUnit(cfg.TUI.Unit)
	if err != nil {
		return err
	}
	doc, err := openDocument(cmd.Context(), args[0], cfg.Options())
	if err != nil {
		return err
	}
	defer doc.Close()

	writeUnits(cmd.OutOrStdout(), doc, unit, flagLimit)
	return nil
}

func writeUnits(w io.Writer, doc *document, unit textrange.Unit, limit int) {
	start := doc.nav.CreatePositionAtStartOfDocument(doc.tree.ID())
	r := textrange.Degenerate(doc.nav, start).ExpandToEnclosingUnit(unit)
	for i := 0; i < limit && !r.IsNull(); i++ {
		fmt.Fprintf(w, "%q\n", r.Text())
		next, moved := r.Move(unit, 1)
		if moved == 0 {
			return
		}
		r = next
	}
}
