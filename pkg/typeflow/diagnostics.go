package typeflow

import "log/slog"

// SlogDiagnostics reports non-fatal engine events through a *slog.Logger,
// in the same idiom the teacher codebase uses for its own analysis
// warnings (log/slog throughout, no bespoke logging abstraction).
type SlogDiagnostics struct {
	Logger *slog.Logger
}

// NewSlogDiagnostics wraps logger (or slog.Default() if nil) as a
// Diagnostics sink.
func NewSlogDiagnostics(logger *slog.Logger) *SlogDiagnostics {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogDiagnostics{Logger: logger}
}

// UnresolvableBound logs a warning that name could not be resolved by the
// ClassHierarchy oracle and was demoted to the universal filter.
func (d *SlogDiagnostics) UnresolvableBound(name string) {
	d.Logger.Warn("typeflow: unresolvable upper bound, demoting to universal filter", "class", name)
}
