// Package types defines the shared vocabulary of the confkit module: the
// closed set of node kinds, typed errors with stable categories, and the
// positioned ParseError reported by format drivers.
//
// Design goals:
//   - Typed errors with stable categories (usage/format/io/parse) so callers
//     branch on intent rather than message text.
//   - Sentinel values for the structural preconditions (not-a-section,
//     remove-root, placement target, unknown format).
//   - No dependencies beyond the standard library.
package types
