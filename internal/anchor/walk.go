package anchor

// IsAncestorOrSelf reports whether a is b or one of b's ancestors.
func IsAncestorOrSelf(a, b Anchor) bool {
	if a == nil || b == nil {
		return false
	}
	for n := b; n != nil; n = n.Parent() {
		if n.ID() == a.ID() && n.TreeID() == a.TreeID() {
			return true
		}
	}
	return false
}

// Ancestors returns a's ancestor chain starting with a itself and ending at the root.
func Ancestors(a Anchor) []Anchor {
	var chain []Anchor
	for n := a; n != nil; n = n.Parent() {
		chain = append(chain, n)
	}
	return chain
}

// LowestCommonAncestor returns the deepest anchor that is an ancestor-or-self
// of both a and b, or nil when they share no root.
func LowestCommonAncestor(a, b Anchor) Anchor {
	if a == nil || b == nil || a.TreeID() != b.TreeID() {
		return nil
	}
	chainA := Ancestors(a)
	chainB := Ancestors(b)
	i, j := len(chainA)-1, len(chainB)-1
	var lca Anchor
	for i >= 0 && j >= 0 && chainA[i].ID() == chainB[j].ID() {
		lca = chainA[i]
		i--
		j--
	}
	return lca
}

// Depth returns the number of ancestors of a.
func Depth(a Anchor) int {
	d := -1
	for n := a; n != nil; n = n.Parent() {
		d++
	}
	return d
}
