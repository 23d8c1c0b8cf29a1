package typeflow

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
)

// Type is an interned descriptor with a stable, non-negative index and a
// name. Equality of names is byte-for-byte; the registry never reuses an
// index for a different name, and never shrinks.
type Type struct {
	Index int
	Name  string
}

// Registry interns type descriptors by name into dense, non-negative
// integer indices. Interning is idempotent: calling Intern twice with the
// same name returns the same Type. The registry may be shared across
// goroutines during concurrent graph construction (spec §5, "shared
// read-mostly resources"); a per-registry atomic counter plus a lock-free map
// keep Intern safe to call from multiple goroutines without a mutex,
// mirroring how the teacher's NameCache backs object/type name lookups with
// an xsync.Map rather than a plain map guarded by a mutex.
type Registry struct {
	byName *xsync.Map[string, *Type]
	byIdx  *xsync.Map[int, *Type]
	next   atomic.Int64
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: xsync.NewMap[string, *Type](),
		byIdx:  xsync.NewMap[int, *Type](),
	}
}

// Intern returns the Type for name, creating and assigning it a fresh index
// on first use. Concurrent callers racing to intern the same new name will
// all observe the same winning Type.
func (r *Registry) Intern(name string) *Type {
	if t, ok := r.byName.Load(name); ok {
		return t
	}
	candidate := &Type{Index: int(r.next.Add(1)) - 1, Name: name}
	actual, loaded := r.byName.LoadOrStore(name, candidate)
	if loaded {
		// Someone else won the race; the index we reserved is simply unused.
		return actual
	}
	r.byIdx.Store(actual.Index, actual)
	return actual
}

// Get returns the Type registered at index, or nil if no such index exists.
func (r *Registry) Get(index int) *Type {
	t, _ := r.byIdx.Load(index)
	return t
}

// GetByName returns the Type registered under name, or nil if name has
// never been interned.
func (r *Registry) GetByName(name string) *Type {
	t, _ := r.byName.Load(name)
	return t
}

// Size returns the number of distinct types interned so far. Indices are
// contiguous from zero up to Size()-1; Size only ever grows.
func (r *Registry) Size() int {
	return int(r.next.Load())
}
