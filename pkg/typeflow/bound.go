package typeflow

// BoundKind distinguishes the shape of a declared upper bound for a Node.
type BoundKind int

const (
	// BoundNone means no filter: everything passes.
	BoundNone BoundKind = iota
	// BoundClass means the node accepts only T that is the named class, a
	// subclass of it, or an implementor of it (when the name is an
	// interface).
	BoundClass
	// BoundArray means the node represents an array-typed value; the
	// owning node itself accepts no filter, but Item describes the bound
	// projected onto the node's array-item satellite when it is created
	// (spec §4.2).
	BoundArray
)

// Bound is a declared upper-bound descriptor, the Go-native stand-in for
// spec's "reference/array value-type descriptor". A nil *Bound means no
// filter.
type Bound struct {
	Kind  BoundKind
	Class string // valid when Kind == BoundClass
	Item  *Bound // valid when Kind == BoundArray; may itself be BoundArray
}

// ClassBound declares an upper bound of "T is name, a subclass of name, or
// an implementor of name".
func ClassBound(name string) *Bound {
	return &Bound{Kind: BoundClass, Class: name}
}

// ArrayBound declares the node as holding array values whose element bound
// is item (which may be nil for an unfiltered element type).
func ArrayBound(item *Bound) *Bound {
	return &Bound{Kind: BoundArray, Item: item}
}
