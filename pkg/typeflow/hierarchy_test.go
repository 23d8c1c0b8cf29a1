package typeflow

// fakeHierarchy is a minimal in-memory ClassHierarchy for tests: a map
// from class name to the set of ancestors (including itself) it satisfies.
type fakeHierarchy struct {
	ancestors map[string]map[string]bool
	known     map[string]bool
}

func newFakeHierarchy() *fakeHierarchy {
	return &fakeHierarchy{
		ancestors: map[string]map[string]bool{},
		known:     map[string]bool{},
	}
}

// declare registers descendant as satisfying every name in ancestors
// (typically including descendant itself).
func (h *fakeHierarchy) declare(descendant string, ancestors ...string) *fakeHierarchy {
	set := h.ancestors[descendant]
	if set == nil {
		set = map[string]bool{}
		h.ancestors[descendant] = set
	}
	for _, a := range ancestors {
		set[a] = true
		h.known[a] = true
	}
	h.known[descendant] = true
	return h
}

func (h *fakeHierarchy) IsSubtype(descendantName, ancestorName string) bool {
	set, ok := h.ancestors[descendantName]
	if !ok {
		return false
	}
	return set[ancestorName]
}

func (h *fakeHierarchy) ResolveClass(name string) bool {
	return h.known[name]
}

// fakeConsumer records every delta delivered to it, for assertions.
type fakeConsumer struct {
	batches [][]*Type
}

func (c *fakeConsumer) Deliver(types []*Type) {
	c.batches = append(c.batches, append([]*Type(nil), types...))
}

func (c *fakeConsumer) all() []*Type {
	var out []*Type
	for _, b := range c.batches {
		out = append(out, b...)
	}
	return out
}

func namesOf(types []*Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Name
	}
	return out
}
