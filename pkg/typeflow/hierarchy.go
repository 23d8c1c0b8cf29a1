package typeflow

// ClassHierarchy is the external collaborator consulted by the Subtype
// Filter Cache to resolve "is T a subtype of C" queries. The engine treats
// it as synchronous and stable for the lifetime of an analysis run: no
// retraction of a prior answer is permitted (spec §6).
type ClassHierarchy interface {
	// IsSubtype reports whether descendantName names a class that is C or
	// a subclass of C, or that implements interface C.
	IsSubtype(descendantName, ancestorName string) bool

	// ResolveClass reports whether name names a class the hierarchy
	// knows about at all. When it returns false, the caller demotes the
	// bound to the universal filter rather than failing (spec §4.2, §7.3).
	ResolveClass(name string) bool
}

// Diagnostics receives non-fatal messages from the engine: unresolvable
// upper bounds demoted to the universal filter. Debug traces do not go
// through it; they are emitted with log/slog. New uses a no-op sink when
// passed a nil Diagnostics; SlogDiagnostics is a real one backed by
// log/slog.
type Diagnostics interface {
	// UnresolvableBound reports that name could not be resolved by the
	// ClassHierarchy and the owning node's filter was demoted to
	// universal acceptance.
	UnresolvableBound(name string)
}

// noopDiagnostics discards every report; it is the default sink so embedders
// that don't care about resolution gaps don't need to provide one.
type noopDiagnostics struct{}

func (noopDiagnostics) UnresolvableBound(string) {}

// universalHierarchy answers every subtype query affirmatively and resolves
// every class. It is the hierarchy the filter cache uses when New is given
// a nil ClassHierarchy, so no upper bound filters anything.
type universalHierarchy struct{}

func (universalHierarchy) IsSubtype(string, string) bool { return true }
func (universalHierarchy) ResolveClass(string) bool      { return true }
