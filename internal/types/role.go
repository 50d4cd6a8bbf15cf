package types

import "strings"

// Role is the semantic role of an anchor.
type Role int

const (
	RoleUnknown Role = iota
	RoleDocument
	RoleGenericContainer
	RoleSection
	RoleParagraph
	RoleHeading
	RoleList
	RoleListItem
	RoleTable
	RoleRow
	RoleCell
	RoleStaticText
	RoleInlineTextBox
	RoleLineBreak
	RoleLink
	RoleImage
	RoleButton
	RoleTextField
	RoleGroup
	RoleSplitter
	RolePreformatted
	RoleBlockquote
)

var roleNames = map[Role]string{
	RoleUnknown:          "unknown",
	RoleDocument:         "document",
	RoleGenericContainer: "genericContainer",
	RoleSection:          "section",
	RoleParagraph:        "paragraph",
	RoleHeading:          "heading",
	RoleList:             "list",
	RoleListItem:         "listItem",
	RoleTable:            "table",
	RoleRow:              "row",
	RoleCell:             "cell",
	RoleStaticText:       "staticText",
	RoleInlineTextBox:    "inlineTextBox",
	RoleLineBreak:        "lineBreak",
	RoleLink:             "link",
	RoleImage:            "image",
	RoleButton:           "button",
	RoleTextField:        "textField",
	RoleGroup:            "group",
	RoleSplitter:         "splitter",
	RolePreformatted:     "pre",
	RoleBlockquote:       "blockquote",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return roleNames[RoleUnknown]
}

// ParseRole maps a role name (case-insensitive) back to a Role.
// Unrecognized names yield RoleUnknown and false.
func ParseRole(name string) (Role, bool) {
	for r, n := range roleNames {
		if strings.EqualFold(n, name) {
			return r, true
		}
	}
	return RoleUnknown, false
}

// IsText reports whether anchors of this role carry their text directly.
func (r Role) IsText() bool {
	switch r {
	case RoleStaticText, RoleInlineTextBox, RoleLineBreak:
		return true
	}
	return false
}

// IsBlock reports whether the role is laid out as a block by default.
// Tree builders use it to set the line-breaking flag.
func (r Role) IsBlock() bool {
	switch r {
	case RoleDocument, RoleSection, RoleParagraph, RoleHeading, RoleList, RoleListItem,
		RoleTable, RoleRow, RoleCell, RolePreformatted, RoleBlockquote, RoleSplitter:
		return true
	}
	return false
}
