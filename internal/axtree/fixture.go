package axtree

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bethropolis/axnav/internal/types"
)

// ErrUnknownRole indicates a fixture names a role that does not exist.
var ErrUnknownRole = errors.New("unknown role")

// fixtureNode is the YAML shape of a NodeSpec.
type fixtureNode struct {
	ID             int64             `yaml:"id"`
	Role           string            `yaml:"role"`
	Name           string            `yaml:"name"`
	Text           string            `yaml:"text"`
	Attributes     map[string]string `yaml:"attributes"`
	Ignored        bool              `yaml:"ignored"`
	LineBreaking   *bool             `yaml:"line_breaking"`
	PageBreaking   bool              `yaml:"page_breaking"`
	Embedded       bool              `yaml:"embedded"`
	WordStarts     []int             `yaml:"word_starts"`
	WordEnds       []int             `yaml:"word_ends"`
	NextOnLine     int64             `yaml:"next_on_line"`
	PreviousOnLine int64             `yaml:"previous_on_line"`
	Children       []fixtureNode     `yaml:"children"`
}

func (f fixtureNode) spec(path string) (NodeSpec, error) {
	role := types.RoleGenericContainer
	if f.Role != "" {
		r, ok := types.ParseRole(f.Role)
		if !ok {
			return NodeSpec{}, fmt.Errorf("%s: %w %q", path, ErrUnknownRole, f.Role)
		}
		role = r
	}
	s := NodeSpec{
		ID:             types.NodeID(f.ID),
		Role:           role,
		Name:           f.Name,
		Text:           f.Text,
		Ignored:        f.Ignored,
		LineBreaking:   f.LineBreaking,
		PageBreaking:   f.PageBreaking,
		EmbeddedObject: f.Embedded,
		WordStarts:     f.WordStarts,
		WordEnds:       f.WordEnds,
		NextOnLine:     types.NodeID(f.NextOnLine),
		PreviousOnLine: types.NodeID(f.PreviousOnLine),
	}
	if role == types.RoleLineBreak && s.Text == "" {
		s.Text = "\n"
	}
	if len(f.Attributes) > 0 {
		s.Attributes = types.TextAttributes(f.Attributes)
	}
	for i, c := range f.Children {
		cs, err := c.spec(fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return NodeSpec{}, err
		}
		s.Children = append(s.Children, cs)
	}
	return s, nil
}

// LoadFixture decodes a YAML tree description into a root NodeSpec.
func LoadFixture(r io.Reader) (NodeSpec, error) {
	var root fixtureNode
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		return NodeSpec{}, fmt.Errorf("decode fixture: %w", err)
	}
	return root.spec("root")
}

// LoadFixtureFile reads a YAML fixture from disk.
func LoadFixtureFile(path string) (NodeSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return NodeSpec{}, fmt.Errorf("open fixture '%s': %w", path, err)
	}
	defer f.Close()
	spec, err := LoadFixture(f)
	if err != nil {
		return NodeSpec{}, fmt.Errorf("fixture '%s': %w", path, err)
	}
	return spec, nil
}
