package position

import (
	"testing"

	"github.com/bethropolis/axnav/internal/axtree"
	"github.com/bethropolis/axnav/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMove_WordStartSequence(t *testing.T) {
	f := newFixture(t, linesDoc())
	next := func(p Position) Position { return f.nav.NextWordStart(p, CrossBoundary) }
	prev := func(p Position) Position { return f.nav.PreviousWordStart(p, CrossBoundary) }

	assert.Equal(t, []int{5, 7, 12}, collect(t, f.text(linesRoot, 0), next))
	assert.Equal(t, []int{12, 7, 5, 0}, collect(t, f.text(linesRoot, 13), prev))

	p := f.nav.NextWordStart(f.text(linesRoot, 0), CrossBoundary)
	assert.Equal(t, linesRoot, p.AnchorID())
}

func TestMove_WordEndSequence(t *testing.T) {
	f := newFixture(t, linesDoc())
	next := func(p Position) Position { return f.nav.NextWordEnd(p, CrossBoundary) }

	assert.Equal(t, []int{4, 6, 11, 13}, collect(t, f.text(linesRoot, 0), next))
}

func TestMove_CharacterCountsMatchText(t *testing.T) {
	f := newFixture(t, linesDoc())
	next := func(p Position) Position { return f.nav.NextCharacter(p, CrossBoundary) }
	prev := func(p Position) Position { return f.nav.PreviousCharacter(p, CrossBoundary) }

	tests := []struct {
		name       string
		start, end Position
	}{
		{"root", f.text(linesRoot, 0), f.text(linesRoot, 13)},
		{"leaves", f.text(linesLeaf1, 0), f.text(linesLeaf2, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, collect(t, tt.start, next), 13)
			assert.Len(t, collect(t, tt.end, prev), 13)
		})
	}
}

func TestMove_CharacterCrossesLeaves(t *testing.T) {
	f := newFixture(t, linesDoc())

	assert.Equal(t, f.text(linesBreak, 0), f.nav.NextCharacter(f.text(linesLeaf1, 5), CrossBoundary))
	assert.Equal(t, f.text(linesLeaf2, 0), f.nav.NextCharacter(f.text(linesBreak, 0), CrossBoundary))
	assert.Equal(t, f.text(linesLeaf1, 5), f.nav.PreviousCharacter(f.text(linesBreak, 0), CrossBoundary))

	tp := f.nav.NextCharacter(f.treePos(linesLeaf1, BeforeText), CrossBoundary)
	assert.Equal(t, f.treePos(linesLeaf1, 0), tp)
}

func TestMove_Policies(t *testing.T) {
	f := newFixture(t, linesDoc())
	atSeven := f.text(linesRoot, 7)
	atTwelve := f.text(linesRoot, 12)

	assert.Equal(t, atSeven, f.nav.NextWordStart(atSeven, StopIfAlreadyAtBoundary))
	assert.Equal(t, atTwelve, f.nav.NextWordStart(atSeven, CrossBoundary))
	assert.Equal(t, atTwelve, f.nav.NextWordStart(atTwelve, StopAtLastAnchorBoundary))
	assert.True(t, f.nav.NextWordStart(atTwelve, CrossBoundary).IsNull())
	assert.True(t, f.nav.NextWordStart(atTwelve, StopAtAnchorBoundary).IsNull())

	// Not at a boundary: StopAtLastAnchorBoundary clamps to the document edge.
	assert.Equal(t, f.text(linesRoot, 13), f.nav.NextWordStart(f.text(linesRoot, 13), StopAtLastAnchorBoundary))
	assert.Equal(t, f.text(linesRoot, 0), f.nav.PreviousWordEnd(f.text(linesRoot, 2), StopAtLastAnchorBoundary))

	inLeaf := f.text(linesLeaf1, 5)
	assert.Equal(t, f.textUp(linesLeaf1, 6), f.nav.NextWordStart(inLeaf, StopAtAnchorBoundary))
	assert.Equal(t, f.text(linesLeaf2, 0), f.nav.NextWordStart(inLeaf, CrossBoundary))
	assert.Equal(t, f.text(linesLeaf1, 5), f.nav.NextWordStart(f.text(linesLeaf1, 0), StopAtAnchorBoundary))
	assert.Equal(t, f.text(linesLeaf2, 0), f.nav.PreviousWordStart(f.text(linesLeaf2, 3), StopAtAnchorBoundary))
}

func TestMove_Lines(t *testing.T) {
	f := newFixture(t, linesDoc())
	root := f.text(linesRoot, 0)

	assert.Equal(t, []int{7}, collect(t, root, func(p Position) Position { return f.nav.NextLineStart(p, CrossBoundary) }))
	assert.Equal(t, []int{6, 13}, collect(t, root, func(p Position) Position { return f.nav.NextLineEnd(p, CrossBoundary) }))
	assert.Equal(t, []int{7, 0}, collect(t, f.text(linesRoot, 13), func(p Position) Position {
		return f.nav.PreviousLineStart(p, CrossBoundary)
	}))
	assert.Equal(t, []int{6, 7, 13}, collect(t, root, func(p Position) Position {
		return f.nav.Move(p, LineStartOrEndBoundary, Forward, CrossBoundary)
	}))
}

func TestMove_SoftWrappedLines(t *testing.T) {
	f := newFixture(t, axtree.Doc(axtree.Para(axtree.InlineBox("Hello "), axtree.InlineBox("world"))))

	end := f.nav.NextLineEnd(f.text(1, 0), CrossBoundary)
	assert.Equal(t, f.textUp(1, 6), end)
	assert.True(t, f.nav.AtEndOfLine(end))
	assert.Equal(t, f.text(1, 11), f.nav.NextLineEnd(end, CrossBoundary))

	start := f.nav.NextLineStart(f.text(1, 0), CrossBoundary)
	assert.Equal(t, f.text(1, 6), start)
	assert.True(t, f.nav.AtStartOfLine(start))

	// The wrap offset is a line end upstream and a line start downstream.
	assert.Equal(t, start, f.nav.NextLineStart(end, CrossBoundary))
	assert.Equal(t, start, f.nav.Move(end, LineStartOrEndBoundary, Forward, CrossBoundary))
	assert.Equal(t, start, f.nav.NextWordStart(end, CrossBoundary))
	assert.Equal(t, end, f.nav.PreviousLineEnd(start, CrossBoundary))
	assert.Equal(t, end, f.nav.Move(start, LineStartOrEndBoundary, Backward, CrossBoundary))

	assert.Equal(t, f.text(4, 0), f.nav.NextLineStart(f.textUp(3, 6), CrossBoundary))
	assert.Equal(t, f.textUp(3, 6), f.nav.PreviousLineEnd(f.text(4, 0), CrossBoundary))
}

func TestMove_ParagraphsAcrossBlocks(t *testing.T) {
	f := newFixture(t, axtree.Doc(axtree.Para(axtree.Static("one")), axtree.Para(axtree.Static("two"))))

	start := f.nav.NextParagraphStart(f.text(3, 0), CrossBoundary)
	assert.Equal(t, f.text(5, 0), start)
	assert.True(t, f.nav.AtStartOfParagraph(start))

	end := f.nav.PreviousParagraphEnd(f.text(5, 3), CrossBoundary)
	assert.Equal(t, f.textUp(3, 3), end)
	assert.True(t, f.nav.AtEndOfParagraph(end))

	lines := newFixture(t, linesDoc())
	assert.Equal(t, []int{7}, collect(t, lines.text(linesRoot, 0), func(p Position) Position {
		return lines.nav.NextParagraphStart(p, CrossBoundary)
	}))
}

// Ids of blocksDoc: two paragraphs reading "one" and "two".
const (
	blocksRoot types.NodeID = 1
	blocksOne  types.NodeID = 3
	blocksTwo  types.NodeID = 5
)

func blocksDoc() axtree.NodeSpec {
	return axtree.Doc(axtree.Para(axtree.Static("one")), axtree.Para(axtree.Static("two")))
}

func TestMove_ForwardFromLeafEnd(t *testing.T) {
	f := newFixture(t, blocksDoc())
	starts := []struct {
		name string
		from Position
		want Position
	}{
		{"upstream text", f.textUp(blocksOne, 3), f.text(blocksTwo, 0)},
		{"downstream text", f.text(blocksOne, 3), f.text(blocksTwo, 0)},
		{"after text", f.treePos(blocksOne, 0), f.treePos(blocksTwo, BeforeText)},
	}
	kinds := []BoundaryKind{
		WordStartBoundary,
		LineStartBoundary,
		LineStartOrEndBoundary,
		ParagraphStartBoundary,
		ParagraphStartOrEndBoundary,
		FormatStartBoundary,
	}
	for _, st := range starts {
		for _, kind := range kinds {
			for _, policy := range []Policy{CrossBoundary, StopAtLastAnchorBoundary} {
				got := f.nav.Move(st.from, kind, Forward, policy)
				assert.Equal(t, st.want, got, "%s %s %s", st.name, kind, policy)
			}
		}
		assert.True(t, f.nav.Move(st.from, PageStartBoundary, Forward, CrossBoundary).IsNull(),
			"%s: no page breaks", st.name)
		assert.Equal(t, st.want, f.nav.NextParagraphStart(st.from, StopIfAlreadyAtBoundary), st.name)
		// A leaf end closing a block is already a line end.
		assert.Equal(t, st.from, f.nav.Move(st.from, LineStartOrEndBoundary, Forward, StopIfAlreadyAtBoundary), st.name)
	}
}

func TestMove_BackwardFromLeafStart(t *testing.T) {
	f := newFixture(t, blocksDoc())
	starts := []struct {
		name string
		from Position
		want Position
	}{
		{"downstream text", f.text(blocksTwo, 0), f.textUp(blocksOne, 3)},
		{"before text", f.treePos(blocksTwo, BeforeText), f.treePos(blocksOne, 0)},
	}
	kinds := []BoundaryKind{
		WordEndBoundary,
		LineEndBoundary,
		LineStartOrEndBoundary,
		ParagraphEndBoundary,
		ParagraphStartOrEndBoundary,
		FormatEndBoundary,
	}
	for _, st := range starts {
		for _, kind := range kinds {
			got := f.nav.Move(st.from, kind, Backward, CrossBoundary)
			assert.Equal(t, st.want, got, "%s %s", st.name, kind)
		}
		assert.True(t, f.nav.Move(st.from, PageEndBoundary, Backward, CrossBoundary).IsNull(),
			"%s: no page breaks", st.name)
	}
}

func TestMove_LineChainsAcrossBlocks(t *testing.T) {
	f := newFixture(t, blocksDoc())
	root := f.text(blocksRoot, 0)

	end := f.nav.NextLineEnd(root, CrossBoundary)
	require.Equal(t, f.textUp(blocksRoot, 3), end)
	assert.Equal(t, f.text(blocksRoot, 3), f.nav.NextLineStart(end, CrossBoundary))
	assert.Equal(t, f.text(blocksRoot, 3), f.nav.NextParagraphStart(end, CrossBoundary))

	assert.Equal(t, []int{3, 3, 6}, collect(t, root, func(p Position) Position {
		return f.nav.Move(p, LineStartOrEndBoundary, Forward, CrossBoundary)
	}))
	assert.Equal(t, []int{3, 3, 0}, collect(t, f.text(blocksRoot, 6), func(p Position) Position {
		return f.nav.Move(p, LineStartOrEndBoundary, Backward, CrossBoundary)
	}))
}

func TestMove_SeamAlreadyAtBoundary(t *testing.T) {
	f := newFixture(t, linesDoc())
	// After the line break character is already a line start, so there is
	// nothing further to reach.
	afterBreak := f.text(linesBreak, 1)

	assert.True(t, f.nav.AtStartOfLine(afterBreak))
	assert.True(t, f.nav.NextLineStart(afterBreak, CrossBoundary).IsNull())
	assert.Equal(t, afterBreak, f.nav.NextLineStart(afterBreak, StopIfAlreadyAtBoundary))
	// The end of "Line 1" meets the line break leaf with no boundary between.
	assert.Equal(t, f.text(linesLeaf2, 0), f.nav.NextLineStart(f.textUp(linesLeaf1, 6), CrossBoundary))
}

func TestMove_Format(t *testing.T) {
	f := newFixture(t, axtree.Doc(axtree.Para(
		axtree.Static("plain "),
		axtree.Static("bold").WithAttr("font-weight", "bold"),
		axtree.Static(" tail"),
	)))

	assert.Equal(t, []int{6, 10}, collect(t, f.text(1, 0), func(p Position) Position {
		return f.nav.NextFormatStart(p, CrossBoundary)
	}))
	assert.Equal(t, []int{6, 10, 15}, collect(t, f.text(1, 0), func(p Position) Position {
		return f.nav.NextFormatEnd(p, CrossBoundary)
	}))
	assert.Equal(t, []int{6, 0}, collect(t, f.text(1, 9), func(p Position) Position {
		return f.nav.PreviousFormatStart(p, CrossBoundary)
	}))
}

func TestMove_DocumentWithoutPageBreaks(t *testing.T) {
	f := newFixture(t, linesDoc())
	start := f.nav.CreatePositionAtStartOfDocument(f.tree.ID())
	end := f.nav.CreatePositionAtEndOfDocument(f.tree.ID())

	assert.True(t, f.nav.NextPageStart(end, CrossBoundary).IsNull())
	assert.Equal(t, end, f.nav.NextPageEnd(end, CrossBoundary))
	assert.Equal(t, end, f.nav.NextPageEnd(start, CrossBoundary))
	assert.True(t, f.nav.PreviousPageStart(end, CrossBoundary).IsNull())
	assert.Equal(t, start, f.nav.PreviousPageStart(end, StopAtLastAnchorBoundary))
}

func TestMove_Pages(t *testing.T) {
	f := newFixture(t, axtree.Doc(
		axtree.Section(axtree.Static("one")).AsPageBreaking(),
		axtree.Section(axtree.Static("two")).AsPageBreaking(),
	))
	root := f.text(1, 0)

	assert.Equal(t, []int{3}, collect(t, root, func(p Position) Position { return f.nav.NextPageStart(p, CrossBoundary) }))
	assert.Equal(t, []int{3, 6}, collect(t, root, func(p Position) Position { return f.nav.NextPageEnd(p, CrossBoundary) }))
	assert.Equal(t, []int{3, 0}, collect(t, f.text(1, 6), func(p Position) Position {
		return f.nav.PreviousPageStart(p, CrossBoundary)
	}))
	assert.True(t, f.nav.AtStartOfPage(f.text(1, 3)))
	assert.True(t, f.nav.AtEndOfPage(f.textUp(1, 3)))
}

func TestMove_Document(t *testing.T) {
	f := newFixture(t, linesDoc())
	end := f.nav.DocumentEnd(f.text(linesLeaf1, 2), CrossBoundary)

	assert.Equal(t, f.text(linesLeaf2, 6), end)
	assert.True(t, f.nav.DocumentEnd(end, CrossBoundary).IsNull())
	assert.Equal(t, end, f.nav.DocumentEnd(end, StopAtLastAnchorBoundary))
	assert.Equal(t, f.text(linesRoot, 0), f.nav.DocumentStart(f.text(linesRoot, 9), CrossBoundary))
}

func TestMove_NullAndStale(t *testing.T) {
	f := newFixture(t, linesDoc())
	p := f.text(linesLeaf2, 2)
	require.NoError(t, f.tree.Remove(linesLeaf2))

	assert.True(t, f.nav.NextCharacter(Null, CrossBoundary).IsNull())
	assert.True(t, f.nav.NextCharacter(p, StopAtLastAnchorBoundary).IsNull())
}

func TestParseNames(t *testing.T) {
	for k := CharacterBoundary; k <= DocumentBoundary; k++ {
		got, err := ParseBoundaryKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	for p := CrossBoundary; p <= StopAtLastAnchorBoundary; p++ {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	d, err := ParseDirection("previous")
	require.NoError(t, err)
	assert.Equal(t, Backward, d)

	_, err = ParseBoundaryKind("sentence")
	assert.ErrorIs(t, err, ErrUnknownBoundary)
	_, err = ParsePolicy("never")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
	_, err = ParseWordMode("syllable")
	assert.ErrorIs(t, err, ErrUnknownWordMode)
}
