// Package core defines the shared types used across the logway facade.
//
// It provides the Level type for severity filtering, the immutable Record
// type that represents a single log event, the Field type for structured
// key-value pairs, and the error taxonomy shared by the dispatch and
// setup packages.
//
// A Record is created once at emission time and never mutated afterwards.
// Sinks that need destination-specific augmentation (an email attachment,
// for example) work on a copy obtained via Clone, so concurrent sinks can
// never observe each other's changes.
package core
