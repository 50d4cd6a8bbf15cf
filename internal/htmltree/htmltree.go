// Package htmltree builds accessibility trees from HTML using tree-sitter.
package htmltree

import (
	"context"
	"errors"
	"fmt"
	"html"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tshtml "github.com/smacker/go-tree-sitter/html"

	"github.com/bethropolis/axnav/internal/axtree"
	"github.com/bethropolis/axnav/internal/logger"
	"github.com/bethropolis/axnav/internal/types"
)

// ErrParse is returned when tree-sitter cannot produce a syntax tree.
var ErrParse = errors.New("html parse failed")

const asciiSpace = " \t\n\r\f"

// Parse converts src into a node spec rooted at a document node.
func Parse(ctx context.Context, src []byte) (axtree.NodeSpec, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(tshtml.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return axtree.NodeSpec{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		logger.Warnf("htmltree: source has syntax errors, building from the recovered tree")
	}
	b := &builder{src: src, blockStart: true}
	doc := axtree.Doc(trimEnd(b.children(root))...)
	logger.DebugTagf("htmltree", "built document with %d top-level node(s)", len(doc.Children))
	return doc, nil
}

// Build parses src and registers the result under id.
func Build(ctx context.Context, src []byte, reg *axtree.Registry, id types.TreeID) (*axtree.Tree, error) {
	spec, err := Parse(ctx, src)
	if err != nil {
		return nil, err
	}
	return reg.NewTree(id, spec)
}

// BuildFile reads path and registers it under an id derived from the path.
func BuildFile(ctx context.Context, path string, reg *axtree.Registry) (*axtree.Tree, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Build(ctx, src, reg, types.TreeIDFromPath(path))
}

// builder carries whitespace state across the walk: HTML collapses runs of
// whitespace between inline content and drops it at block edges.
type builder struct {
	src        []byte
	pre        int
	space      bool
	blockStart bool
}

func (b *builder) children(n *sitter.Node) []axtree.NodeSpec {
	var (
		out []axtree.NodeSpec
		run strings.Builder
	)
	flush := func() {
		if run.Len() > 0 {
			out = append(out, axtree.Static(run.String()))
			run.Reset()
		}
	}

	prev := n.StartByte()
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "start_tag", "self_closing_tag":
			prev = c.EndByte()
			continue
		}
		b.gap(&run, prev, c.StartByte())
		prev = c.EndByte()

		switch c.Type() {
		case "text", "entity":
			b.text(&run, c)
		case "element":
			flush()
			if spec, ok := b.element(c); ok {
				out = append(out, spec)
			}
		}
	}
	b.gap(&run, prev, n.EndByte())
	flush()
	return out
}

// gap handles the source between two sibling nodes, which tree-sitter
// leaves out of text tokens.
func (b *builder) gap(run *strings.Builder, from, to uint32) {
	if to <= from {
		return
	}
	s := string(b.src[from:to])
	if b.pre > 0 {
		if strings.Trim(s, asciiSpace) == "" {
			run.WriteString(s)
			b.blockStart = false
		}
		return
	}
	if strings.ContainsAny(s, asciiSpace) {
		b.whitespace(run)
	}
}

// whitespace records collapsible whitespace: appended to a pending run, or
// remembered for the next text when the run is empty.
func (b *builder) whitespace(run *strings.Builder) {
	if run.Len() == 0 {
		b.space = true
		return
	}
	if !strings.HasSuffix(run.String(), " ") {
		run.WriteByte(' ')
	}
}

func (b *builder) text(run *strings.Builder, n *sitter.Node) {
	raw := n.Content(b.src)
	if raw == "" {
		return
	}
	if b.pre > 0 {
		run.WriteString(html.UnescapeString(raw))
		b.blockStart = false
		return
	}

	lead := strings.ContainsAny(raw[:1], asciiSpace)
	trail := strings.ContainsAny(raw[len(raw)-1:], asciiSpace)
	s := html.UnescapeString(collapse(raw))
	if lead || s == "" {
		b.whitespace(run)
	}
	if s == "" {
		return
	}
	if b.space && run.Len() == 0 && !b.blockStart {
		run.WriteByte(' ')
	}
	b.space, b.blockStart = false, false
	run.WriteString(s)
	if trail {
		run.WriteByte(' ')
	}
}

func (b *builder) breakBlock() {
	b.blockStart, b.space = true, false
}

func (b *builder) element(n *sitter.Node) (axtree.NodeSpec, bool) {
	tag, attrs := b.startTag(n)
	if skipped[tag] {
		return axtree.NodeSpec{}, false
	}

	var spec axtree.NodeSpec
	switch tag {
	case "br":
		b.breakBlock()
		spec = axtree.LineBreak()
	case "img":
		b.blockStart = false
		spec = axtree.Image(attrs["alt"]).AsEmbedded()
	case "input", "textarea":
		b.blockStart = false
		name := attrs["aria-label"]
		if name == "" {
			name = attrs["placeholder"]
		}
		spec = axtree.NodeSpec{Role: types.RoleTextField, Name: name, EmbeddedObject: true}
	case "hr":
		b.breakBlock()
		spec = axtree.NodeSpec{Role: types.RoleSplitter}
	default:
		spec = b.container(n, tag, attrs)
	}

	if _, ok := attrs["hidden"]; ok || attrs["aria-hidden"] == "true" {
		ignoreAll(&spec)
	}
	if _, ok := attrs["data-page"]; ok {
		spec.PageBreaking = true
	}
	return spec, true
}

func (b *builder) container(n *sitter.Node, tag string, attrs map[string]string) axtree.NodeSpec {
	role, ok := roles[tag]
	if !ok {
		role = types.RoleGenericContainer
	}
	spec := axtree.NodeSpec{Role: role, Name: attrs["aria-label"]}
	block := role.IsBlock() || blockTags[tag]
	if block && !role.IsBlock() {
		spec = spec.BreaksLines(true)
	}
	if f, ok := formats[tag]; ok {
		spec = spec.WithAttr(f[0], f[1])
	}
	if style, ok := attrs["style"]; ok && tag == "span" {
		spec = spec.WithAttr("style", style)
	}

	if tag == "pre" {
		b.pre++
		defer func() { b.pre-- }()
	}
	if block {
		b.breakBlock()
	}
	spec.Children = b.children(n)
	if block {
		spec.Children = trimEnd(spec.Children)
		b.breakBlock()
	}

	if role == types.RoleButton && !hasText(spec) {
		spec.EmbeddedObject = true
	}
	return spec
}

// startTag returns the lower-cased tag name and attributes of an element.
func (b *builder) startTag(n *sitter.Node) (string, map[string]string) {
	attrs := make(map[string]string)
	if n.NamedChildCount() == 0 {
		return "", attrs
	}
	tag := n.NamedChild(0)
	if t := tag.Type(); t != "start_tag" && t != "self_closing_tag" {
		return "", attrs
	}
	var name string
	for i := 0; i < int(tag.NamedChildCount()); i++ {
		c := tag.NamedChild(i)
		switch c.Type() {
		case "tag_name":
			name = strings.ToLower(c.Content(b.src))
		case "attribute":
			key, value := b.attribute(c)
			if key != "" {
				attrs[key] = value
			}
		}
	}
	return name, attrs
}

func (b *builder) attribute(n *sitter.Node) (key, value string) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "attribute_name":
			key = strings.ToLower(c.Content(b.src))
		case "attribute_value":
			value = html.UnescapeString(c.Content(b.src))
		case "quoted_attribute_value":
			if c.NamedChildCount() > 0 {
				value = html.UnescapeString(c.NamedChild(0).Content(b.src))
			}
		}
	}
	return key, value
}

// collapse folds runs of ASCII whitespace into one space and trims the
// ends. Non-breaking spaces survive because they are still escaped here.
func collapse(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool {
		return strings.ContainsRune(asciiSpace, r)
	}), " ")
}

// trimEnd drops collapsible trailing whitespace from the last text of a block.
func trimEnd(children []axtree.NodeSpec) []axtree.NodeSpec {
	if len(children) == 0 {
		return children
	}
	last := &children[len(children)-1]
	if last.Role != types.RoleStaticText {
		return children
	}
	last.Text = strings.TrimRight(last.Text, " ")
	if last.Text == "" {
		return children[:len(children)-1]
	}
	return children
}

// ignoreAll hides a subtree: an ignored container alone stays transparent.
func ignoreAll(s *axtree.NodeSpec) {
	s.Ignored = true
	for i := range s.Children {
		ignoreAll(&s.Children[i])
	}
}

func hasText(s axtree.NodeSpec) bool {
	if s.Text != "" {
		return true
	}
	for _, c := range s.Children {
		if hasText(c) {
			return true
		}
	}
	return false
}
