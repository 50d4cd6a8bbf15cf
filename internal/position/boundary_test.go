package position

import (
	"testing"

	"github.com/bethropolis/axnav/internal/axtree"
	"github.com/bethropolis/axnav/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestBoundary_LineBreakObject(t *testing.T) {
	f := newFixture(t, linesDoc())

	assert.True(t, f.nav.AtStartOfLine(f.text(linesRoot, 0)))
	assert.False(t, f.nav.AtStartOfLine(f.text(linesRoot, 6)))
	assert.True(t, f.nav.AtEndOfLine(f.text(linesRoot, 6)))
	assert.True(t, f.nav.AtEndOfLine(f.textUp(linesRoot, 6)))
	assert.True(t, f.nav.AtStartOfLine(f.text(linesRoot, 7)))
	assert.False(t, f.nav.AtEndOfLine(f.text(linesRoot, 7)))
	assert.True(t, f.nav.AtEndOfLine(f.text(linesRoot, 13)))
	assert.True(t, f.nav.AtStartOfLine(f.treePos(linesLeaf2, BeforeText)))
}

func TestBoundary_BlankLineAtEnd(t *testing.T) {
	f := newFixture(t, axtree.Doc(axtree.Static("abc"), axtree.LineBreak()))
	afterBreak := f.treePos(3, 0)

	assert.True(t, f.nav.AtStartOfLine(afterBreak))
	assert.True(t, f.nav.AtEndOfLine(afterBreak))
	assert.True(t, f.nav.AtEndOfLine(f.text(1, 3)))
	assert.False(t, f.nav.AtStartOfLine(f.text(1, 3)))
}

func TestBoundary_SoftWrapUsesAffinity(t *testing.T) {
	f := newFixture(t, axtree.Doc(axtree.Para(axtree.InlineBox("Hello "), axtree.InlineBox("world"))))

	down := f.text(1, 6)
	up := f.textUp(1, 6)
	assert.True(t, f.nav.AtStartOfLine(down))
	assert.False(t, f.nav.AtEndOfLine(down))
	assert.True(t, f.nav.AtEndOfLine(up))
	assert.False(t, f.nav.AtStartOfLine(up))

	// The same point expressed on the boxes themselves.
	assert.True(t, f.nav.AtEndOfLine(f.treePos(3, 0)))
	assert.True(t, f.nav.AtStartOfLine(f.treePos(4, BeforeText)))
}

func TestBoundary_ExplicitLineLinks(t *testing.T) {
	linked := newFixture(t, axtree.Doc(axtree.Para(
		axtree.InlineBox("Hello ").OnLine(0, 4),
		axtree.InlineBox("world").OnLine(3, 0),
	)))
	assert.False(t, linked.nav.AtStartOfLine(linked.text(1, 6)))
	assert.False(t, linked.nav.AtEndOfLine(linked.textUp(1, 6)))

	// Links win even when the boxes sit in different blocks.
	acrossBlocks := newFixture(t, axtree.Doc(
		axtree.Para(axtree.InlineBox("a").OnLine(0, 5)),
		axtree.Para(axtree.InlineBox("b").OnLine(3, 0)),
	))
	assert.False(t, acrossBlocks.nav.AtStartOfLine(acrossBlocks.text(1, 1)))

	unlinked := newFixture(t, axtree.Doc(axtree.Para(axtree.InlineBox("a")), axtree.Para(axtree.InlineBox("b"))))
	assert.True(t, unlinked.nav.AtStartOfLine(unlinked.text(1, 1)))
}

func TestBoundary_IgnoredSiblingIsTransparent(t *testing.T) {
	plain := newFixture(t, axtree.Doc(
		axtree.Para(axtree.Static("one")),
		axtree.Para(axtree.Static("two")),
	))
	withIgnored := newFixture(t, axtree.Doc(
		axtree.Para(axtree.Static("one")),
		axtree.Para(axtree.Static("gone").AsIgnored()).AsIgnored(),
		axtree.Para(axtree.Static("two")),
	))

	type probe struct {
		name       string
		start, end bool
	}
	probes := []probe{
		{"start of one", true, false},
		{"end of one", false, true},
		{"start of two", true, false},
		{"end of two", false, true},
	}
	cases := []struct {
		name     string
		f        *fixture
		one, two types.NodeID
	}{
		{"plain", plain, 3, 5},
		{"with ignored", withIgnored, 3, 7},
	}
	for _, tc := range cases {
		ps := []Position{tc.f.text(tc.one, 0), tc.f.text(tc.one, 3), tc.f.text(tc.two, 0), tc.f.text(tc.two, 3)}
		for i, pr := range probes {
			assert.Equal(t, pr.start, tc.f.nav.AtStartOfParagraph(ps[i]), "%s: %s", tc.name, pr.name)
			assert.Equal(t, pr.end, tc.f.nav.AtEndOfParagraph(ps[i]), "%s: %s", tc.name, pr.name)
			assert.Equal(t, pr.start, tc.f.nav.AtStartOfLine(ps[i]), "%s: %s", tc.name, pr.name)
		}
	}
}

func TestBoundary_ParagraphSeparatorRun(t *testing.T) {
	f := newFixture(t, axtree.Doc(axtree.Static("a\n\nb")))

	var starts, ends []int
	for g := 0; g <= 4; g++ {
		if f.nav.AtStartOfParagraph(f.text(2, g)) {
			starts = append(starts, g)
		}
		if f.nav.AtEndOfParagraph(f.text(2, g)) {
			ends = append(ends, g)
		}
	}
	assert.Equal(t, []int{0, 3}, starts)
	assert.Equal(t, []int{1, 4}, ends)
}

func TestBoundary_Format(t *testing.T) {
	f := newFixture(t, axtree.Doc(axtree.Para(
		axtree.Static("plain "),
		axtree.Generic(axtree.Static("bold")).WithAttr("font-weight", "bold"),
		axtree.Static(" tail"),
	)))

	assert.True(t, f.nav.AtStartOfFormat(f.text(1, 0)))
	assert.True(t, f.nav.AtStartOfFormat(f.text(1, 6)))
	assert.False(t, f.nav.AtStartOfFormat(f.text(1, 8)))
	assert.True(t, f.nav.AtEndOfFormat(f.textUp(1, 10)))
	assert.True(t, f.nav.AtEndOfFormat(f.text(1, 15)))
}

func TestBoundary_Words(t *testing.T) {
	f := newFixture(t, linesDoc())

	assert.True(t, f.nav.AtStartOfWord(f.text(linesRoot, 5)))
	assert.False(t, f.nav.AtStartOfWord(f.text(linesRoot, 6)))
	assert.True(t, f.nav.AtEndOfWord(f.text(linesRoot, 4)))
	assert.True(t, f.nav.AtStartOfWord(f.text(linesLeaf2, 0)))

	explicit := newFixture(t, axtree.Doc(axtree.Static("abcdef").WithWords([]int{0, 3}, []int{3, 6})))
	assert.True(t, explicit.nav.AtStartOfWord(explicit.text(2, 3)))
	assert.True(t, explicit.nav.AtEndOfWord(explicit.text(2, 3)))
	assert.False(t, explicit.nav.AtStartOfWord(explicit.text(2, 1)))
}

func TestBoundary_WhitespaceWordMode(t *testing.T) {
	f := newFixture(t, axtree.Doc(axtree.Static("can't stop")))
	assert.True(t, f.nav.AtEndOfWord(f.text(2, 5)))

	opts := DefaultOptions()
	opts.WordMode = WordModeWhitespace
	f.nav = NewNavigator(f.reg, opts)
	assert.True(t, f.nav.AtStartOfWord(f.text(2, 6)))
	assert.True(t, f.nav.AtEndOfWord(f.text(2, 5)))
	assert.False(t, f.nav.AtStartOfWord(f.text(2, 3)))
}

func TestBoundary_AnchorEdgesIgnoreAffinity(t *testing.T) {
	f := newFixture(t, linesDoc())

	assert.True(t, f.nav.AtStartOfAnchor(f.textUp(linesLeaf1, 0)))
	assert.True(t, f.nav.AtEndOfAnchor(f.text(linesLeaf1, 6)))
	assert.True(t, f.nav.AtEndOfAnchor(f.treePos(linesRoot, 3)))
	assert.False(t, f.nav.AtEndOfAnchor(f.text(linesRoot, 6)))
	assert.False(t, f.nav.AtStartOfAnchor(Null))
}

func TestBoundary_LastNodeInTree(t *testing.T) {
	f := newFixture(t, linesDoc())

	assert.True(t, f.nav.AtLastNodeInTree(f.text(linesLeaf2, 0)))
	assert.True(t, f.nav.AtLastNodeInTree(f.text(linesRoot, 13)))
	assert.False(t, f.nav.AtLastNodeInTree(f.text(linesLeaf1, 6)))
	assert.False(t, f.nav.AtLastNodeInTree(f.text(linesRoot, 0)))
}

func TestBoundary_PagesWithoutBreaks(t *testing.T) {
	f := newFixture(t, linesDoc())

	assert.True(t, f.nav.AtStartOfPage(f.text(linesRoot, 0)))
	assert.True(t, f.nav.AtEndOfPage(f.text(linesRoot, 13)))
	assert.False(t, f.nav.AtEndOfPage(f.text(linesRoot, 7)))
}
