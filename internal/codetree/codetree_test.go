package codetree

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bethropolis/axnav/internal/axtree"
	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/textrange"
	"github.com/bethropolis/axnav/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goSource = `package main

import "fmt"

func main() {
	fmt.Println("hi")
}
`

func buildGo(t *testing.T) (*axtree.Tree, *position.Navigator) {
	t.Helper()
	reg := axtree.NewRegistry()
	tree, err := Build(context.Background(), ForFile("main.go"), []byte(goSource), reg, types.NewTreeID())
	require.NoError(t, err)
	return tree, position.NewNavigator(reg, position.DefaultOptions())
}

func TestForFile(t *testing.T) {
	tests := map[string]string{
		"main.go":      "Go",
		"SCRIPT.PY":    "Python",
		"app.mjs":      "JavaScript",
		"data.json":    "JSON",
		"lib/mod.rs":   "Rust",
		"notes.txt":    "",
		"no-extension": "",
	}
	for path, want := range tests {
		lang := ForFile(path)
		if want == "" {
			assert.Nil(t, lang, path)
			continue
		}
		require.NotNil(t, lang, path)
		assert.Equal(t, want, lang.Name, path)
	}
	assert.Equal(t, []string{"Go", "JSON", "JavaScript", "Python", "Rust"}, Languages())
}

func TestParse_Sections(t *testing.T) {
	tree, nav := buildGo(t)

	assert.Equal(t, "Go", tree.Root().Name())
	var names []string
	for _, c := range tree.Root().Children() {
		assert.Equal(t, types.RoleSection, c.Role())
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"package_clause", "import_declaration", "function_declaration main"}, names)

	text := nav.GetText(nav.CreatePositionAtStartOfDocument(tree.ID()))
	assert.Equal(t, "package main"+`import "fmt"`+"func main() {\n\tfmt.Println(\"hi\")\n}", text)
}

func TestParse_Lines(t *testing.T) {
	tree, nav := buildGo(t)
	start := nav.CreatePositionAtStartOfDocument(tree.ID())

	r := textrange.Degenerate(nav, start).ExpandToEnclosingUnit(textrange.UnitLine)
	var lines []string
	for i := 0; i < 10; i++ {
		lines = append(lines, r.Text())
		next, moved := r.Move(textrange.UnitLine, 1)
		if moved == 0 {
			break
		}
		r = next
	}
	assert.Equal(t, []string{"package main", `import "fmt"`, "func main() {", "\tfmt.Println(\"hi\")", "}"}, lines)
}

func TestParse_BlankLinesInsideSection(t *testing.T) {
	src := "func a() {\n\n\treturn\n}\n"
	spec, err := Parse(context.Background(), ForFile("a.go"), []byte(src))
	require.NoError(t, err)
	require.Len(t, spec.Children, 1)

	var roles []types.Role
	for _, c := range spec.Children[0].Children {
		roles = append(roles, c.Role)
	}
	assert.Equal(t, []types.Role{
		types.RoleStaticText, types.RoleLineBreak, types.RoleLineBreak,
		types.RoleStaticText, types.RoleLineBreak, types.RoleStaticText,
	}, roles)
}

func TestBuildFile(t *testing.T) {
	reg := axtree.NewRegistry()
	path := filepath.Join("testdata", "sample.py")
	tree, err := BuildFile(context.Background(), path, reg)
	require.NoError(t, err)
	assert.Equal(t, types.TreeIDFromPath(path), tree.ID())

	var names []string
	for _, c := range tree.Root().Children() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"function_definition greet", "class_definition Box"}, names)

	_, err = BuildFile(context.Background(), "notes.txt", reg)
	assert.ErrorIs(t, err, ErrNoLanguage)
	_, err = BuildFile(context.Background(), filepath.Join("testdata", "missing.go"), reg)
	assert.Error(t, err)
}
