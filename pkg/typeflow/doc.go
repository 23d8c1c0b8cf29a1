// Package typeflow implements a whole-program type-propagation engine: a
// directed graph whose nodes hold monotonically growing sets of
// integer-indexed types, whose edges carry filters (subtype tests, array-
// element projection, boxed-class projection), and whose traversal
// converges to a fixed point.
//
// It answers, for every value slot an embedding ahead-of-time compiler
// cares about (method parameters, return values, fields, array elements,
// local variables), which set of concrete runtime types can flow into it
// across the whole program — the basis for devirtualization, dead-code
// elimination, reachable-method discovery, and layout decisions performed
// by later compilation phases.
//
// The engine computes a 0-CFA-style conservative over-approximation per
// value slot; it does not perform flow-, path-, or context-sensitive
// analysis, and it is not incremental across runs. Bytecode parsing,
// AST/IR lowering, method-reachability driving, and code emission are the
// embedder's job — this package only owns the graph and its propagation.
package typeflow
