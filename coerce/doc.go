// Package coerce implements the safe-coercion library: typed casts over
// value.Value that either return the coerced value/primitive or raise a
// runtime error. The pure numeric/null/bool coercions live here; the
// object-kind coercions (safe_to_string, safe_to_vector, and so on) live
// in package object, since they need object-kind-specific class
// metadata that would otherwise create an import cycle.
package coerce
