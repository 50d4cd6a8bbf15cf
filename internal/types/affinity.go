package types

// Affinity disambiguates a text offset that sits exactly on a soft line break.
type Affinity int

const (
	// Downstream places the offset at the start of the next visual line.
	Downstream Affinity = iota
	// Upstream places the offset at the end of the current visual line.
	Upstream
)

func (a Affinity) String() string {
	if a == Upstream {
		return "upstream"
	}
	return "downstream"
}
