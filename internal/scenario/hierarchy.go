package scenario

// memoryHierarchy is a stand-in typeflow.ClassHierarchy built from a
// Scenario's Classes declarations: the transitive closure of "extends"
// edges, computed once at construction since the engine requires the
// oracle to be stable (no retractions) during a run.
type memoryHierarchy struct {
	// ancestors[C] is the set of names C satisfies: itself plus every
	// transitive supertype/interface.
	ancestors map[string]map[string]bool
}

func newMemoryHierarchy(classes []ClassDecl) *memoryHierarchy {
	direct := make(map[string][]string, len(classes))
	known := make(map[string]bool, len(classes))
	for _, c := range classes {
		direct[c.Name] = c.Extends
		known[c.Name] = true
	}

	h := &memoryHierarchy{ancestors: make(map[string]map[string]bool, len(classes))}
	for name := range direct {
		h.ancestors[name] = closure(name, direct, make(map[string]bool))
	}
	// A class referenced only as a supertype (never declared itself) is
	// still resolvable and satisfies only itself.
	for name, supers := range direct {
		for _, s := range supers {
			if _, ok := h.ancestors[s]; !ok {
				h.ancestors[s] = map[string]bool{s: true}
			}
		}
		_ = name
	}
	return h
}

func closure(name string, direct map[string][]string, visiting map[string]bool) map[string]bool {
	result := map[string]bool{name: true}
	if visiting[name] {
		return result // guard against a cyclic "extends" declaration
	}
	visiting[name] = true
	for _, super := range direct[name] {
		for a := range closure(super, direct, visiting) {
			result[a] = true
		}
	}
	return result
}

func (h *memoryHierarchy) IsSubtype(descendantName, ancestorName string) bool {
	set, ok := h.ancestors[descendantName]
	if !ok {
		return descendantName == ancestorName
	}
	return set[ancestorName]
}

func (h *memoryHierarchy) ResolveClass(name string) bool {
	_, ok := h.ancestors[name]
	return ok
}
