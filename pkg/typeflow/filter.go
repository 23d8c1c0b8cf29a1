package typeflow

import "github.com/puzpuzpuz/xsync/v4"

// Filter is a predicate over Types. A node's filter bounds what Types it
// may accept; a transition's filter narrows what flows along one edge. A
// nil *Filter accepts everything.
type Filter struct {
	bound string
	match func(*Type) bool
}

// Admits reports whether t passes the filter. A nil *Filter admits
// everything, matching spec §4.2's "absent bound → accept-all predicate".
func (f *Filter) Admits(t *Type) bool {
	if f == nil || f.match == nil {
		return true
	}
	return f.match(t)
}

// Bound returns the upper-bound class name this filter was built from, or
// "" for the universal filter.
func (f *Filter) Bound() string {
	if f == nil {
		return ""
	}
	return f.bound
}

// filterCache memoises, per declared upper-bound class name, a predicate
// over Types testing subtype membership. It consults the ClassHierarchy
// oracle only on first use per bound, then the predicate is pure and
// shared across every node declaring that same bound (spec §4.2).
type filterCache struct {
	hierarchy   ClassHierarchy
	diagnostics Diagnostics
	byBound     *xsync.Map[string, *Filter]
	subtypeMemo *xsync.Map[subtypeKey, bool]
}

type subtypeKey struct {
	bound string
	typ   int
}

func newFilterCache(hierarchy ClassHierarchy, diagnostics Diagnostics) *filterCache {
	if hierarchy == nil {
		hierarchy = universalHierarchy{}
	}
	if diagnostics == nil {
		diagnostics = noopDiagnostics{}
	}
	return &filterCache{
		hierarchy:   hierarchy,
		diagnostics: diagnostics,
		byBound:     xsync.NewMap[string, *Filter](),
		subtypeMemo: xsync.NewMap[subtypeKey, bool](),
	}
}

// forBound returns (building and caching, if necessary) the Filter for the
// given upper-bound class name. An empty bound means "no filter".
func (c *filterCache) forBound(bound string) *Filter {
	if bound == "" {
		return nil
	}
	if f, ok := c.byBound.Load(bound); ok {
		return f
	}
	if !c.hierarchy.ResolveClass(bound) {
		// Unresolvable bound class: demoted to universal filter, reported
		// via diagnostics, never fatal (spec §4.2, §7.3).
		c.diagnostics.UnresolvableBound(bound)
		universal := &Filter{bound: ""}
		f, _ := c.byBound.LoadOrStore(bound, universal)
		return f
	}
	f := &Filter{
		bound: bound,
		match: func(t *Type) bool {
			key := subtypeKey{bound: bound, typ: t.Index}
			if ok, hit := c.subtypeMemo.Load(key); hit {
				return ok
			}
			result := c.hierarchy.IsSubtype(t.Name, bound)
			c.subtypeMemo.Store(key, result)
			return result
		},
	}
	actual, _ := c.byBound.LoadOrStore(bound, f)
	return actual
}
