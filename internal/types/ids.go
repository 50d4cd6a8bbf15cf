// internal/types/ids.go
package types

import (
	"strconv"

	"github.com/google/uuid"
)

// TreeID identifies one accessibility tree instance.
// Positions carry it so that two positions from different trees never compare equal.
type TreeID uuid.UUID

// UnknownTreeID is the zero tree id carried by null positions.
var UnknownTreeID = TreeID(uuid.Nil)

// NewTreeID returns a fresh random tree id.
func NewTreeID() TreeID {
	return TreeID(uuid.New())
}

// TreeIDFromPath derives a stable tree id for a document loaded from path,
// so serialized positions survive a reload of the same document.
func TreeIDFromPath(path string) TreeID {
	return TreeID(uuid.NewSHA1(uuid.NameSpaceURL, []byte("axnav:"+path)))
}

// ParseTreeID parses the canonical textual form of a tree id.
func ParseTreeID(s string) (TreeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UnknownTreeID, err
	}
	return TreeID(u), nil
}

// IsUnknown reports whether t is the zero tree id.
func (t TreeID) IsUnknown() bool {
	return t == UnknownTreeID
}

func (t TreeID) String() string {
	return uuid.UUID(t).String()
}

// NodeID identifies a node within a single tree.
type NodeID int64

// InvalidNodeID is never assigned to a live node.
const InvalidNodeID NodeID = 0

func (n NodeID) String() string {
	return strconv.FormatInt(int64(n), 10)
}
