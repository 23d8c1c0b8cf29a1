package typeflow

import "fmt"

// Sentinel errors identify the taxonomy from the engine's failure semantics.
// Embedders should use errors.As/errors.Is to recover the concrete payload.
var (
	// ErrNilTarget is returned by Connect when the destination node is nil.
	ErrNilTarget = fmt.Errorf("typeflow: connect target must not be nil")

	// ErrLocked is the sentinel wrapped by LockViolationError; match on it
	// with errors.Is when the concrete type and tag aren't needed.
	ErrLocked = fmt.Errorf("typeflow: node is locked")

	// errInvalidFilterBound is returned by Engine.Filter when asked to
	// build a standalone filter from a bound that isn't a class bound.
	errInvalidFilterBound = fmt.Errorf("typeflow: filter bound must be a class bound")
)

// LockViolationError reports an attempt to grow a node's type set after the
// engine has declared quiescence and locked every node. It is always fatal:
// it indicates an analysis-phase ordering bug in the embedder.
type LockViolationError struct {
	TypeName string
	Method   string
	Tag      string
}

func (e *LockViolationError) Error() string {
	where := e.Tag
	if where == "" {
		where = e.Method
	}
	if where == "" {
		return fmt.Sprintf("typeflow: cannot propagate type %q: node is locked", e.TypeName)
	}
	return fmt.Sprintf("typeflow: cannot propagate type %q to %q: node is locked", e.TypeName, where)
}

func (e *LockViolationError) Unwrap() error {
	return ErrLocked
}
