package typeflow

// Transition is a directed edge between two nodes, optionally carrying a
// per-edge filter. Edge filters compose with the destination node's
// filter: a type must satisfy both to be admitted (spec §3, "Transition").
type Transition struct {
	source *Node
	dest   *Node
	filter *Filter
}

// Source returns the transition's origin node.
func (tr *Transition) Source() *Node { return tr.source }

// Destination returns the transition's target node.
func (tr *Transition) Destination() *Node { return tr.dest }

// Deliver implements Consumer so a Transition can sit directly on the
// scheduler's worklist: for each type in the batch, it checks the edge
// filter, then the destination's own filter, and on pass calls
// destination.Propagate(t). Because Propagate only buffers into pending,
// the destination's own consumers and outbound transitions fire in the
// *next* scheduler round, preserving a clean breadth-first frontier
// (spec §4.5).
func (tr *Transition) Deliver(types []*Type) {
	for _, t := range types {
		if !tr.filter.Admits(t) {
			continue
		}
		if !tr.dest.filter.Admits(t) {
			continue
		}
		tr.dest.Propagate(t)
	}
}
