package position

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// graphemeBounds returns the offsets in l's text at which a grapheme cluster
// starts, plus the text length.
func (l *leafSpan) graphemeBounds() []int {
	if l.graphemes != nil {
		return l.graphemes
	}
	bounds := []int{0}
	off := 0
	gr := uniseg.NewGraphemes(string(l.text))
	for gr.Next() {
		off += len(gr.Runes())
		bounds = append(bounds, off)
	}
	l.graphemes = bounds
	return bounds
}

func (l *leafSpan) isGraphemeBoundary(off int) bool {
	b := l.graphemeBounds()
	i := sort.SearchInts(b, off)
	return i < len(b) && b[i] == off
}

// graphemeFloor snaps off back to the start of the cluster containing it.
func (l *leafSpan) graphemeFloor(off int) int {
	b := l.graphemeBounds()
	i := sort.SearchInts(b, off)
	if i < len(b) && b[i] == off {
		return off
	}
	if i == 0 {
		return 0
	}
	return b[i-1]
}

// graphemeCeil snaps off forward to the end of the cluster containing it.
func (l *leafSpan) graphemeCeil(off int) int {
	b := l.graphemeBounds()
	i := sort.SearchInts(b, off)
	if i == len(b) {
		return len(l.text)
	}
	return b[i]
}

// words returns word start and end offsets for l, explicit lists first.
func (l *leafSpan) words(mode WordMode) (starts, ends []int) {
	if l.wordsDone {
		return l.starts, l.ends
	}
	es, ee := l.a.WordStarts(), l.a.WordEnds()
	if es != nil || ee != nil {
		l.starts = clampOffsets(es, len(l.text))
		l.ends = clampOffsets(ee, len(l.text))
	} else if mode == WordModeWhitespace {
		l.starts, l.ends = whitespaceWords(l.text)
	} else {
		l.starts, l.ends = segmentWords(string(l.text))
	}
	l.wordsDone = true
	return l.starts, l.ends
}

func clampOffsets(offs []int, max int) []int {
	out := make([]int, 0, len(offs))
	for _, o := range offs {
		if o >= 0 && o <= max {
			out = append(out, o)
		}
	}
	sort.Ints(out)
	return out
}

// segmentWords runs UAX #29 word segmentation and keeps the segments that
// contain a letter or a digit.
func segmentWords(s string) (starts, ends []int) {
	state := -1
	off := 0
	for len(s) > 0 {
		var w string
		w, s, state = uniseg.FirstWordInString(s, state)
		n := utf8.RuneCountInString(w)
		if isWordish(w) {
			starts = append(starts, off)
			ends = append(ends, off+n)
		}
		off += n
	}
	return starts, ends
}

func isWordish(w string) bool {
	for _, r := range w {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func whitespaceWords(text []rune) (starts, ends []int) {
	in := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		switch {
		case !space && !in:
			starts = append(starts, i)
			in = true
		case space && in:
			ends = append(ends, i)
			in = false
		}
	}
	if in {
		ends = append(ends, len(text))
	}
	return starts, ends
}

func containsInt(sorted []int, v int) bool {
	i := sort.SearchInts(sorted, v)
	return i < len(sorted) && sorted[i] == v
}
