// Package class implements BlueScript's class metadata model: immutable
// per-class records describing instance layout, the inheritance chain,
// property tables mapping compile-time name ids to body-slot indices, and
// a method vtable for compile-time-indexed dispatch.
//
// A Class is a plain Go value built once per compiled class and shared by
// every instance; nothing here allocates on the GC heap. Instance layout
// is read by package heap (object sizing) and package gc (pointer
// scanning); property tables are read by package object for any-typed
// property access.
package class
