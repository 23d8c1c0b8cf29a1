package typeflow

import (
	"log/slog"
	"sync"
)

// Engine owns the type registry, the subtype filter cache, the node
// arena, and the propagation scheduler's worklist. It is the library
// surface an embedding compiler's reachability driver builds a type-flow
// graph against (spec §6).
type Engine struct {
	cfg         Config
	registry    *Registry
	filters     *filterCache
	diagnostics Diagnostics

	mu       sync.Mutex
	nodes    []*Node
	worklist []task
	locked   bool
}

// New creates an Engine. hierarchy and diagnostics may be nil: a nil
// hierarchy accepts every subtype query (no filtering occurs), and a nil
// diagnostics sink discards every report.
func New(hierarchy ClassHierarchy, diagnostics Diagnostics, opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if diagnostics == nil {
		diagnostics = noopDiagnostics{}
	}
	e := &Engine{
		cfg:         cfg,
		registry:    NewRegistry(),
		diagnostics: diagnostics,
	}
	e.filters = newFilterCache(hierarchy, diagnostics)

	if cfg.ShouldLog {
		slog.Debug("typeflow: engine constructed", "shouldTag", cfg.ShouldTag, "maxDegree", cfg.MaxDegree)
	}
	return e
}

// Registry returns the engine's Type Registry, exposed to embedders for
// interning and lookup (spec §6, "Type interning ... provided by the Type
// Registry which is itself part of the core but exposed to the embedder").
func (e *Engine) Registry() *Registry { return e.registry }

// CreateNode allocates a fresh Node. bound may be nil for an unfiltered
// node, ClassBound(name) for an object upper bound, or ArrayBound(item)
// for an array-typed node whose element bound is projected onto its
// array-item satellite when that satellite is created.
func (e *Engine) CreateNode(bound *Bound) *Node {
	n := &Node{engine: e, types: newTypeSet()}

	if bound != nil {
		switch bound.Kind {
		case BoundClass:
			n.filter = e.filters.forBound(bound.Class)
		case BoundArray:
			n.itemBound = bound.Item
		}
	}

	e.mu.Lock()
	n.index = len(e.nodes)
	e.nodes = append(e.nodes, n)
	e.mu.Unlock()
	return n
}

// Filter resolves bound into a *Filter usable as a transition's edge
// filter, sharing this engine's filter cache with every node declaring the
// same class bound. A nil bound (or BoundNone) resolves to nil (no
// filter). BoundArray is invalid for a standalone filter — array bounds
// only make sense as a node's declared bound, where the item bound is
// projected onto the array-item satellite (spec §4.2) — and returns an
// error.
func (e *Engine) Filter(bound *Bound) (*Filter, error) {
	if bound == nil || bound.Kind == BoundNone {
		return nil, nil
	}
	if bound.Kind != BoundClass {
		return nil, errInvalidFilterBound
	}
	return e.filters.forBound(bound.Class), nil
}

// NodeCount returns the number of nodes created so far.
func (e *Engine) NodeCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.nodes)
}

// Node returns the node at the given arena index, or nil if out of range.
func (e *Engine) Node(index int) *Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.nodes) {
		return nil
	}
	return e.nodes[index]
}
