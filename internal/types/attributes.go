package types

import (
	"sort"
	"strings"
)

// TextAttributes holds formatting-relevant attributes (font, style, generated
// content markers). A change between adjacent leaves is a format boundary.
type TextAttributes map[string]string

// Merge returns a copy of a overlaid with b; keys in b win.
func (a TextAttributes) Merge(b TextAttributes) TextAttributes {
	if len(b) == 0 {
		return a
	}
	out := make(TextAttributes, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Equal compares two attribute sets; nil and empty are equal.
func (a TextAttributes) Equal(b TextAttributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

// String renders the attributes in key order, e.g. "font-weight=bold;style=x".
func (a TextAttributes) String() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(a[k])
	}
	return sb.String()
}
