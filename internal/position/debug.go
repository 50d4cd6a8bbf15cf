package position

import (
	"fmt"
	"strings"
)

var annotationEscaper = strings.NewReplacer("\n", `\n`, "\t", `\t`)

// Describe renders p with its anchor's text and the position marked inline,
// e.g.
//
//	TextPosition tree_id=… anchor_id=1 text_offset=6 affinity=downstream annotated_text=Line 1<\n>Line 2
//
// The character after the position is wrapped in <>; at the end "<>" is appended.
func (n *Navigator) Describe(p Position) string {
	var sb strings.Builder
	switch p := p.(type) {
	case TreePosition:
		fmt.Fprintf(&sb, "TreePosition tree_id=%s anchor_id=%d child_index=%s", p.tree, p.anchor, childIndexString(p.child))
	case TextPosition:
		fmt.Fprintf(&sb, "TextPosition tree_id=%s anchor_id=%d text_offset=%d affinity=%s", p.tree, p.anchor, p.offset, p.affinity)
	default:
		return "NullPosition"
	}

	a, ok := n.resolve(p)
	if !ok {
		sb.WriteString(" annotated_text=<stale>")
		return sb.String()
	}
	t, ok := n.AsTextPosition(p).(TextPosition)
	if !ok {
		sb.WriteString(" annotated_text=<invalid>")
		return sb.String()
	}
	sb.WriteString(" annotated_text=")
	sb.WriteString(annotate(n.textOf(a), t.offset))
	return sb.String()
}

func annotate(text []rune, offset int) string {
	if offset < 0 || offset > len(text) {
		return annotationEscaper.Replace(string(text))
	}
	var out string
	if offset == len(text) {
		out = string(text) + "<>"
	} else {
		out = string(text[:offset]) + "<" + string(text[offset]) + ">" + string(text[offset+1:])
	}
	return annotationEscaper.Replace(out)
}
