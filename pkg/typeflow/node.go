package typeflow

import (
	"log/slog"
	"sync"
)

// Consumer receives a batch of Type deltas when the Node it is registered
// on learns new types. Implementations must be a comparable type (in
// practice, a pointer to a struct): AddConsumer deduplicates registrations
// by identity, and Go panics if `==` is applied to an interface value
// whose dynamic type is a func — so Consumer intentionally does not offer
// a func-adapter the way http.HandlerFunc does.
//
// A Consumer must not itself call AddConsumer or Connect in a way that
// would violate the monotone-growth invariant once the engine is locked;
// doing so is a programming error in the embedder, not something the
// engine can guard against.
type Consumer interface {
	Deliver(types []*Type)
}

// Node is a vertex in the type-flow graph: a value slot that accumulates a
// monotonically growing set of concrete types. Nodes are created by
// Engine.CreateNode and live for the duration of an analysis run.
type Node struct {
	engine *Engine
	index  int

	mu             sync.Mutex
	filter         *Filter
	itemBound      *Bound // projected onto arrayItemNode when it's created
	types          *typeSet
	pending        *typeSet
	followers      []Consumer
	transitions    []*Transition
	inbound        []*Transition
	arrayItemNode  *Node
	classValueNode *Node
	degree         int
	locked         bool
	method         string
	tag            string
}

// Index returns the node's stable arena handle.
func (n *Node) Index() int { return n.index }

// Degree returns the node's depth in the satellite chain.
func (n *Node) Degree() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.degree
}

// Tag returns the node's debug tag, or "" if none was set.
func (n *Node) Tag() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tag
}

// SetTag sets the node's debug tag, used in diagnostics and, when
// ShouldTag is enabled, propagated to satellite tags ("X" -> "X[" / "X@").
func (n *Node) SetTag(tag string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tag = tag
}

// Method returns the originating method reference recorded for
// diagnostics, or "" if none was set.
func (n *Node) Method() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.method
}

// SetMethod records the originating method reference, surfaced in
// LockViolationError when this node rejects a late propagation.
func (n *Node) SetMethod(method string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.method = method
}

// Filter returns the node's upper-bound filter, or nil if unfiltered.
func (n *Node) Filter() *Filter {
	return n.filter
}

// Propagate buffers t into the node's pending set if degree, membership,
// and filter checks all pass. It never synchronously mutates the
// authoritative type set; the scheduler applies pending buffers at the
// next applyPending sweep (spec §4.4).
func (n *Node) Propagate(t *Type) {
	if t == nil || n.degreeExceeded() {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.containsLocked(t.Index) || !n.filter.Admits(t) {
		return
	}
	n.bufferLocked(t)
}

// PropagateBatch applies the same per-element semantics as Propagate, but
// checks the degree bound once for the whole call rather than once per
// element — resolving the open question noted in spec §9: degree cannot
// change mid-call, so checking it once is equivalent and uniform across
// both the scalar and batch forms.
func (n *Node) PropagateBatch(types []*Type) {
	if n.degreeExceeded() {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, t := range types {
		if t == nil || n.containsLocked(t.Index) || !n.filter.Admits(t) {
			continue
		}
		n.bufferLocked(t)
	}
}

func (n *Node) degreeExceeded() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.degree > n.engine.cfg.MaxDegree
}

// bufferLocked inserts t.Index into pending. Caller must hold n.mu.
func (n *Node) bufferLocked(t *Type) {
	if n.pending == nil {
		n.pending = newTypeSet()
	}
	n.pending.add(t.Index, n.engine.registry.Size())
}

// containsLocked reports authoritative membership. Caller must hold n.mu.
func (n *Node) containsLocked(idx int) bool {
	if n.types == nil {
		return false
	}
	return n.types.contains(idx)
}

// HasType reports whether t is a member of the node's authoritative type
// set.
func (n *Node) HasType(t *Type) bool {
	if t == nil {
		return false
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.containsLocked(t.Index)
}

// HasTypeName reports whether the type registered under name is a member
// of the node's authoritative type set. An unknown name reports false
// (spec §4.7, "unknown type name in query returns not present").
func (n *Node) HasTypeName(name string) bool {
	t := n.engine.registry.GetByName(name)
	if t == nil {
		return false
	}
	return n.HasType(t)
}

// Types enumerates the node's authoritative type names. Every member
// already satisfies the node's filter (invariant 2), so no further
// filtering happens here.
func (n *Node) Types() []string {
	idxs := n.snapshotIndices()
	out := make([]string, 0, len(idxs))
	for _, idx := range idxs {
		if t := n.engine.registry.Get(idx); t != nil {
			out = append(out, t.Name)
		}
	}
	return out
}

// Size returns the number of types currently in the node's authoritative
// set.
func (n *Node) Size() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.types == nil {
		return 0
	}
	return n.types.size()
}

func (n *Node) snapshotIndices() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.types == nil {
		return nil
	}
	return n.types.enumerate()
}

func (n *Node) snapshotTypes() []*Type {
	idxs := n.snapshotIndices()
	out := make([]*Type, 0, len(idxs))
	for _, idx := range idxs {
		if t := n.engine.registry.Get(idx); t != nil {
			out = append(out, t)
		}
	}
	return out
}

// AddConsumer registers c to be delivered every delta this node learns.
// Registration is idempotent: registering the same consumer twice is a
// no-op the second time. If the node already has types, c is given a
// catch-up delivery of the current set (spec invariant 4, testable
// property 6) — queued through the engine while a run is in progress, or
// delivered inline if the engine has already quiesced and no dispatch
// loop remains to drain a queued task.
func (n *Node) AddConsumer(c Consumer) {
	if c == nil {
		return
	}
	n.mu.Lock()
	for _, existing := range n.followers {
		if existing == c {
			n.mu.Unlock()
			return
		}
	}
	n.followers = append(n.followers, c)
	n.mu.Unlock()

	if current := n.snapshotTypes(); len(current) > 0 {
		n.engine.scheduleOrDeliver(task{consumer: c, types: current})
	}
}

// Connect creates a directed transition from n to target, optionally
// narrowed by edgeFilter. Self-connections are silently ignored; a nil
// target is a programmer error (ErrNilTarget). Connecting the same target
// twice is idempotent regardless of edgeFilter (testable property 4); the
// first call wins. A catch-up delivery of n's current set is sent through
// the new transition the same way AddConsumer sends one: queued if a run
// is in progress, delivered inline if the engine already quiesced.
func (n *Node) Connect(target *Node, edgeFilter *Filter) error {
	if target == nil {
		return ErrNilTarget
	}
	if n == target {
		return nil
	}

	n.mu.Lock()
	for _, existing := range n.transitions {
		if existing.dest == target {
			n.mu.Unlock()
			return nil
		}
	}
	tr := &Transition{source: n, dest: target, filter: edgeFilter}
	n.transitions = append(n.transitions, tr)
	n.mu.Unlock()

	target.mu.Lock()
	target.inbound = append(target.inbound, tr)
	target.mu.Unlock()

	if n.engine.cfg.ShouldLog {
		slog.Debug("typeflow: connecting nodes", "from", n.Tag(), "to", target.Tag())
	}

	if current := n.snapshotTypes(); len(current) > 0 {
		n.engine.scheduleOrDeliver(task{transition: tr, types: current})
	}
	return nil
}

// ArrayItem returns the node's array-element satellite, creating it on
// first call. Subsequent calls return the same handle (invariant 5, 6).
// The satellite's filter is the bound's projected item type if this
// node's declared bound was an array; otherwise the satellite is
// unfiltered. Its degree is one greater than the parent's (invariant 7).
func (n *Node) ArrayItem() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.arrayItemNode != nil {
		return n.arrayItemNode
	}
	child := n.engine.CreateNode(n.itemBound)
	child.degree = n.degree + 1
	child.method = n.method
	if n.engine.cfg.ShouldTag && n.tag != "" {
		child.tag = n.tag + "["
	}
	n.arrayItemNode = child
	return child
}

// ClassValue returns the node's class-value satellite, creating it on
// first call: the boxed type referred to by a class-literal value this
// node may hold. Its degree equals the parent's (invariant 7); its own
// class-value is itself, a fixed point.
func (n *Node) ClassValue() *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.classValueNode != nil {
		return n.classValueNode
	}
	child := n.engine.CreateNode(nil)
	child.degree = n.degree
	child.classValueNode = child
	if n.engine.cfg.ShouldTag && n.tag != "" {
		child.tag = n.tag + "@"
	}
	n.classValueNode = child
	return child
}

// HasArrayType reports whether this node's array-item satellite has been
// materialised and contains any type.
func (n *Node) HasArrayType() bool {
	n.mu.Lock()
	child := n.arrayItemNode
	n.mu.Unlock()
	if child == nil {
		return false
	}
	return child.Size() > 0
}

// applyPending drains the pending set into the authoritative set and
// schedules delivery of the delta to followers and outbound transitions.
// If the node is locked and the pending set contains a type not already
// present, this returns a *LockViolationError; the whole pending set has
// already been cleared by then, so the other pending types are discarded
// (the run is expected to abort).
func (n *Node) applyPending() error {
	n.mu.Lock()
	if n.pending == nil || n.pending.size() == 0 {
		n.pending = nil
		n.mu.Unlock()
		return nil
	}
	idxs := n.pending.enumerate()
	n.pending = nil

	var delta []*Type
	for _, idx := range idxs {
		if n.containsLocked(idx) {
			continue
		}
		t := n.engine.registry.Get(idx)
		if n.locked {
			n.mu.Unlock()
			return &LockViolationError{TypeName: t.Name, Method: n.method, Tag: n.tag}
		}
		if n.types == nil {
			n.types = newTypeSet()
		}
		n.types.add(idx, n.engine.registry.Size())
		delta = append(delta, t)
	}
	if len(delta) == 0 {
		n.mu.Unlock()
		return nil
	}

	followers := append([]Consumer(nil), n.followers...)
	transitions := append([]*Transition(nil), n.transitions...)
	tag := n.tag
	shouldLog := n.engine.cfg.ShouldLog
	n.mu.Unlock()

	if shouldLog {
		for _, t := range delta {
			slog.Debug("typeflow: node gained type", "node", tag, "type", t.Name)
		}
	}

	for _, c := range followers {
		n.engine.schedule(task{consumer: c, types: delta})
	}
	for _, tr := range transitions {
		n.engine.schedule(task{transition: tr, types: delta})
	}
	return nil
}

func (n *Node) hasPending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending != nil && n.pending.size() > 0
}

func (n *Node) lock() {
	n.mu.Lock()
	n.locked = true
	n.mu.Unlock()
}
