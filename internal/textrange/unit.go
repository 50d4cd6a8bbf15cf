package textrange

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethropolis/axnav/internal/position"
)

var ErrUnknownUnit = errors.New("unknown text unit")

// Unit is the granularity a range moves and expands by.
type Unit int

const (
	UnitCharacter Unit = iota
	UnitWord
	UnitLine
	UnitParagraph
	UnitFormat
	UnitPage
	UnitDocument
)

var unitNames = []string{
	UnitCharacter: "character",
	UnitWord:      "word",
	UnitLine:      "line",
	UnitParagraph: "paragraph",
	UnitFormat:    "format",
	UnitPage:      "page",
	UnitDocument:  "document",
}

func (u Unit) String() string {
	if u >= 0 && int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit accepts the names printed by String.
func ParseUnit(s string) (Unit, error) {
	for u, name := range unitNames {
		if strings.EqualFold(name, s) {
			return Unit(u), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// Units lists every unit in order.
func Units() []Unit {
	units := make([]Unit, len(unitNames))
	for i := range units {
		units[i] = Unit(i)
	}
	return units
}

// kinds returns the boundaries that open and close one unit.
func (u Unit) kinds() (start, end position.BoundaryKind) {
	switch u {
	case UnitWord:
		return position.WordStartBoundary, position.WordEndBoundary
	case UnitLine:
		return position.LineStartBoundary, position.LineEndBoundary
	case UnitParagraph:
		return position.ParagraphStartBoundary, position.ParagraphEndBoundary
	case UnitFormat:
		return position.FormatStartBoundary, position.FormatEndBoundary
	case UnitPage:
		return position.PageStartBoundary, position.PageEndBoundary
	case UnitDocument:
		return position.DocumentBoundary, position.DocumentBoundary
	}
	return position.CharacterBoundary, position.CharacterBoundary
}
