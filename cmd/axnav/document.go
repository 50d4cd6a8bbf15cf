package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bethropolis/axnav/internal/axtree"
	"github.com/bethropolis/axnav/internal/codetree"
	"github.com/bethropolis/axnav/internal/htmltree"
	"github.com/bethropolis/axnav/internal/position"
	"github.com/bethropolis/axnav/internal/tracking"
	"github.com/bethropolis/axnav/internal/types"
)

// ErrUnsupportedFormat is returned for files that are not HTML, YAML
// fixtures or source code in a known language.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// document is one loaded file together with the navigator over it.
type document struct {
	path     string
	reg      *axtree.Registry
	tree     *axtree.Tree
	nav      *position.Navigator
	ancestry *tracking.Ancestry
}

// openDocument loads path by extension. Its tree id is derived from the
// absolute path so that stored positions find it again.
func openDocument(ctx context.Context, path string, opts position.Options) (*document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", path, err)
	}

	reg := axtree.NewRegistry()
	var tree *axtree.Tree
	switch strings.ToLower(filepath.Ext(abs)) {
	case ".html", ".htm":
		tree, err = htmltree.BuildFile(ctx, abs, reg)
	case ".yaml", ".yml":
		var spec axtree.NodeSpec
		if spec, err = axtree.LoadFixtureFile(abs); err == nil {
			tree, err = reg.NewTree(types.TreeIDFromPath(abs), spec)
		}
	default:
		if codetree.ForFile(abs) == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		tree, err = codetree.BuildFile(ctx, abs, reg)
	}
	if err != nil {
		return nil, err
	}

	ancestry := tracking.NewAncestry(reg)
	ancestry.Watch(tree.ID())
	return &document{
		path:     abs,
		reg:      reg,
		tree:     tree,
		nav:      position.NewNavigator(reg, opts).WithAncestry(ancestry),
		ancestry: ancestry,
	}, nil
}

func (d *document) Close() { d.ancestry.Close() }

// at returns the text position at a document offset.
func (d *document) at(offset int) position.Position {
	return d.nav.CreateTextPosition(d.tree.ID(), d.tree.Root().ID(), offset, types.Downstream)
}
