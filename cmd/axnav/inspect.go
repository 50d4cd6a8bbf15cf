package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bethropolis/axnav/internal/anchor"
	"github.com/bethropolis/axnav/internal/axtree"
	"github.com/bethropolis/axnav/internal/types"
)

var flagAll bool

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the accessibility tree of a document",
	Long:  "Prints every node with its role and flags, and every text leaf with the debug form of the position at its start.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagAll, "all", false, "include ignored nodes")
}

func runInspect(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(cmd.Context(), args[0], cfg.Options())
	if err != nil {
		return err
	}
	defer doc.Close()

	writeTree(cmd.OutOrStdout(), doc, flagAll)
	return nil
}

func writeTree(w io.Writer, doc *document, all bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tROLE\tFLAGS\tPOSITION")
	doc.tree.Walk(func(n *axtree.Node) {
		if n.IsIgnored() && !all {
			return
		}
		indent := strings.Repeat("  ", anchor.Depth(n))
		pos := ""
		if n.ChildCount() == 0 {
			start := doc.nav.CreateTextPosition(doc.tree.ID(), n.ID(), 0, types.Downstream)
			pos = doc.nav.Describe(start)
		}
		fmt.Fprintf(tw, "%s%d\t%s\t%s\t%s\n", indent, n.ID(), n.Role(), nodeFlags(n), pos)
	})
	tw.Flush()
}

func nodeFlags(n *axtree.Node) string {
	var f []string
	if n.IsIgnored() {
		f = append(f, "ignored")
	}
	if n.IsLineBreaking() {
		f = append(f, "line")
	}
	if n.IsPageBreaking() {
		f = append(f, "page")
	}
	if n.IsEmbeddedObject() {
		f = append(f, "object")
	}
	if len(f) == 0 {
		return "-"
	}
	return strings.Join(f, ",")
}
