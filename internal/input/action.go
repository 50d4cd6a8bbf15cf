// Package input translates terminal key events into navigator actions.
package input

// Action is an operation of the interactive navigator.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit

	// Moving the range by the active unit.
	ActionMoveNext
	ActionMovePrevious
	ActionLineDown
	ActionLineUp
	ActionDocumentStart
	ActionDocumentEnd

	// Growing or shrinking the end of the range.
	ActionExtendNext
	ActionExtendPrevious

	ActionNextUnit
	ActionPreviousUnit
	ActionExpand

	ActionCopy
	ActionMark
	ActionJumpToMark
	ActionNextTheme
)

var actionNames = map[Action]string{
	ActionUnknown:        "unknown",
	ActionQuit:           "quit",
	ActionMoveNext:       "move-next",
	ActionMovePrevious:   "move-previous",
	ActionLineDown:       "line-down",
	ActionLineUp:         "line-up",
	ActionDocumentStart:  "document-start",
	ActionDocumentEnd:    "document-end",
	ActionExtendNext:     "extend-next",
	ActionExtendPrevious: "extend-previous",
	ActionNextUnit:       "next-unit",
	ActionPreviousUnit:   "previous-unit",
	ActionExpand:         "expand",
	ActionCopy:           "copy",
	ActionMark:           "mark",
	ActionJumpToMark:     "jump-to-mark",
	ActionNextTheme:      "next-theme",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return actionNames[ActionUnknown]
}
