package memo

// Group resets several memoized functions together.
//
// Typical use is a solver that answers two questions over different inputs
// with the same memoized helpers:
//
//	g := memo.NewGroup(countPaths, reachable)
//	partOne := solve(inputA)
//	g.Reset() // drop results that belong to inputA
//	partTwo := solve(inputB)
//
// A Group is not safe for concurrent use.
type Group struct {
	members []Resetter
}

// NewGroup returns a Group holding members (nil members are skipped).
func NewGroup(members ...Resetter) *Group {
	g := &Group{}
	g.Add(members...)
	return g
}

// Add registers more members.
func (g *Group) Add(members ...Resetter) {
	for _, m := range members {
		if m != nil {
			g.members = append(g.members, m)
		}
	}
}

// Reset clears every member in registration order.
func (g *Group) Reset() {
	for _, m := range g.members {
		m.Reset()
	}
}

// Len returns the number of registered members.
func (g *Group) Len() int { return len(g.members) }
