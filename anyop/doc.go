// Package anyop implements the any-typed operator library: tag-dispatched
// arithmetic, comparison, compound-assign, increment/decrement, and unary
// minus over value.Value. Every operator inspects its operand tags at
// call time and raises a type error for any non-numeric combination.
package anyop
