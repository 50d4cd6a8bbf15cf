// Package codetree presents source files as accessibility documents: one
// section per top-level syntax node, one line of text per source line.
package codetree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/axnav/internal/axtree"
	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/types"
)

var (
	// ErrNoLanguage is returned for files no registered grammar reads.
	ErrNoLanguage = errors.New("no language for file")
	// ErrParse is returned when tree-sitter cannot produce a syntax tree.
	ErrParse = errors.New("source parse failed")
)

// Parse converts src into a document spec using lang's grammar.
func Parse(ctx context.Context, lang *Language, src []byte) (axtree.NodeSpec, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(lang.Grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return axtree.NodeSpec{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		logger.Warnf("codetree: %s source has syntax errors", lang.Name)
	}

	lines := strings.Split(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n")
	var sections []axtree.NodeSpec
	next := 0
	for i := 0; i < int(root.NamedChildCount()); i++ {
		c := root.NamedChild(i)
		first, last := int(c.StartPoint().Row), int(c.EndPoint().Row)
		if c.EndPoint().Column == 0 && last > first {
			last--
		}
		if first < next {
			first = next
		}
		if last >= len(lines) {
			last = len(lines) - 1
		}
		if last < first {
			continue
		}
		sections = append(sections, section(label(c, src), lines[first:last+1]))
		next = last + 1
	}

	doc := axtree.Doc(sections...)
	doc.Name = lang.Name
	logger.DebugTagf("codetree", "built %s document with %d section(s)", lang.Name, len(sections))
	return doc, nil
}

// Build parses src and registers the result under id.
func Build(ctx context.Context, lang *Language, src []byte, reg *axtree.Registry, id types.TreeID) (*axtree.Tree, error) {
	spec, err := Parse(ctx, lang, src)
	if err != nil {
		return nil, err
	}
	return reg.NewTree(id, spec)
}

// BuildFile reads path, picks its language by extension and registers the
// document under an id derived from the path.
func BuildFile(ctx context.Context, path string, reg *axtree.Registry) (*axtree.Tree, error) {
	lang := ForFile(path)
	if lang == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoLanguage, path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Build(ctx, lang, src, reg, types.TreeIDFromPath(path))
}

// section holds whole source lines. Blank lines keep their line break so
// line navigation matches the file.
func section(name string, lines []string) axtree.NodeSpec {
	var children []axtree.NodeSpec
	for i, line := range lines {
		if i > 0 {
			children = append(children, axtree.LineBreak())
		}
		if line = strings.TrimRight(line, " \t"); line != "" {
			children = append(children, axtree.Static(line))
		}
	}
	s := axtree.Section(children...)
	s.Name = name
	return s
}

// label names a section after its syntax node and, when the grammar has
// one, the declared identifier.
func label(n *sitter.Node, src []byte) string {
	if id := n.ChildByFieldName("name"); id != nil {
		return n.Type() + " " + id.Content(src)
	}
	return n.Type()
}
