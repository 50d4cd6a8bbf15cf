package position

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bethropolis/axnav/internal/types"
)

// ErrMalformedPosition is returned when serialized bytes cannot be decoded.
var ErrMalformedPosition = errors.New("malformed position")

const codecVersion byte = 1

// Marshal encodes p as
//
//	version | kind | tree id (16) | uvarint anchor | varint index-or-offset | affinity
//
// Null encodes as version and kind only.
func Marshal(p Position) []byte {
	buf := []byte{codecVersion, byte(p.Kind())}
	var value int
	switch p := p.(type) {
	case TreePosition:
		value = p.child
	case TextPosition:
		value = p.offset
	default:
		return buf
	}
	tree := uuid.UUID(p.TreeID())
	buf = append(buf, tree[:]...)
	buf = binary.AppendUvarint(buf, uint64(p.AnchorID()))
	buf = binary.AppendVarint(buf, int64(value))
	if t, ok := p.(TextPosition); ok {
		buf = append(buf, byte(t.affinity))
	}
	return buf
}

// Unmarshal decodes bytes written by Marshal. Well-formed bytes that name an
// unknown tree or anchor, or an out-of-range value, decode to Null.
func (n *Navigator) Unmarshal(b []byte) (Position, error) {
	if len(b) < 2 {
		return Null, fmt.Errorf("%w: %d bytes", ErrMalformedPosition, len(b))
	}
	if b[0] != codecVersion {
		return Null, fmt.Errorf("%w: version %d", ErrMalformedPosition, b[0])
	}
	kind := Kind(b[1])
	b = b[2:]
	if kind == KindNull {
		if len(b) != 0 {
			return Null, fmt.Errorf("%w: trailing bytes", ErrMalformedPosition)
		}
		return Null, nil
	}
	if kind != KindTree && kind != KindText {
		return Null, fmt.Errorf("%w: kind %d", ErrMalformedPosition, kind)
	}
	if len(b) < 16 {
		return Null, fmt.Errorf("%w: short tree id", ErrMalformedPosition)
	}
	tree, err := uuid.FromBytes(b[:16])
	if err != nil {
		return Null, fmt.Errorf("%w: %v", ErrMalformedPosition, err)
	}
	b = b[16:]
	id, k := binary.Uvarint(b)
	if k <= 0 {
		return Null, fmt.Errorf("%w: anchor id", ErrMalformedPosition)
	}
	b = b[k:]
	value, k := binary.Varint(b)
	if k <= 0 {
		return Null, fmt.Errorf("%w: index or offset", ErrMalformedPosition)
	}
	b = b[k:]

	if kind == KindTree {
		if len(b) != 0 {
			return Null, fmt.Errorf("%w: trailing bytes", ErrMalformedPosition)
		}
		return n.CreateTreePosition(types.TreeID(tree), types.NodeID(id), int(value)), nil
	}
	if len(b) != 1 || b[0] > byte(types.Upstream) {
		return Null, fmt.Errorf("%w: affinity", ErrMalformedPosition)
	}
	return n.CreateTextPosition(types.TreeID(tree), types.NodeID(id), int(value), types.Affinity(b[0])), nil
}
