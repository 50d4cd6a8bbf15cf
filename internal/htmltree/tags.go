package htmltree

import "github.com/bethropolis/axnav/internal/types"

var roles = map[string]types.Role{
	"p":          types.RoleParagraph,
	"h1":         types.RoleHeading,
	"h2":         types.RoleHeading,
	"h3":         types.RoleHeading,
	"h4":         types.RoleHeading,
	"h5":         types.RoleHeading,
	"h6":         types.RoleHeading,
	"ul":         types.RoleList,
	"ol":         types.RoleList,
	"li":         types.RoleListItem,
	"section":    types.RoleSection,
	"article":    types.RoleSection,
	"blockquote": types.RoleBlockquote,
	"pre":        types.RolePreformatted,
	"table":      types.RoleTable,
	"tr":         types.RoleRow,
	"td":         types.RoleCell,
	"th":         types.RoleCell,
	"a":          types.RoleLink,
	"button":     types.RoleButton,
	"fieldset":   types.RoleGroup,
}

// blockTags are generic containers that still start a new line.
var blockTags = map[string]bool{
	"div":    true,
	"main":   true,
	"nav":    true,
	"header": true,
	"footer": true,
	"aside":  true,
	"form":   true,
	"dl":     true,
	"dt":     true,
	"dd":     true,
	"figure": true,
	"body":   true,
}

// formats maps inline tags to the text attribute they set.
var formats = map[string][2]string{
	"b":      {"font-weight", "bold"},
	"strong": {"font-weight", "bold"},
	"i":      {"font-style", "italic"},
	"em":     {"font-style", "italic"},
	"u":      {"text-decoration", "underline"},
	"code":   {"font-family", "monospace"},
	"kbd":    {"font-family", "monospace"},
	"mark":   {"background", "highlight"},
}

// skipped elements contribute nothing to the accessibility tree.
var skipped = map[string]bool{
	"head":     true,
	"title":    true,
	"meta":     true,
	"link":     true,
	"script":   true,
	"style":    true,
	"template": true,
	"noscript": true,
}
