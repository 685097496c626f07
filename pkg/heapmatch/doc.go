// Package heapmatch is the symbolic-heap pattern matcher for a
// separation-logic shape analyser.
//
// Given a symbolic heap (a conjunction of points-to facts and list-segment
// predicates together with a pure substitution) and a pattern (a conjunction
// of heap predicates with free logical variables), the matcher decides
// whether the heap entails an instance of the pattern. On success it returns
// a witnessing substitution and the "leftover" heap not consumed by the
// match. The package also computes structural isomorphisms between
// sub-heaps and synthesises list-segment parameter bodies from concrete
// shapes, the two operations the shape analyser uses to abstract pairs of
// isomorphic list-shaped regions into a single list-segment predicate.
//
// The matcher is a pure function over immutable inputs: apart from the
// fresh-identifier counter held in its Config (FreshGen), there is no
// shared mutable state, no I/O, and no concurrency inside a single match. Inputs
// flow in one direction — expressions, substitutions, heaps, and patterns —
// and every operation either returns a fresh, independent result or reports
// failure.
//
// Two classes of error are used throughout the package (see errors.go).
// Ordinary unification and matching failure is "recoverable": it is
// reported as a trailing bool, or as a second nil/zero return value, never
// as an error — callers backtrack and try the next alternative. Violations
// of the data-model invariants documented on Hpred, Para, and Subst are
// "contract violations": they indicate a caller bug, not a failed match,
// and are reported by panicking with a ContractViolation.
package heapmatch
