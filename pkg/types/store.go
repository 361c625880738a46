package types

import "errors"

// Store is whole-resource text persistence with fail-soft semantics.
//
// A resource is identified by a path-like name and holds zero or one text
// blob. None of the operations return errors: an unavailable resource is
// reported as false or as the empty string. Read's empty string is a
// sentinel, not a lossless signal; call Exists first when absent and empty
// must be told apart.
//
// Operations block until the underlying storage call completes. They take no
// locks and are not transactional; concurrent writers to the same name have
// undefined interleaving.
type Store interface {
	// Exists reports whether the resource can currently be opened for reading.
	Exists(name string) bool

	// Read returns the full content of the resource, or "" if it cannot be
	// opened.
	Read(name string) string

	// Write truncates or creates the resource and stores exactly text.
	// It returns false only if the resource could not be opened for writing.
	// Write is not atomic: a failure mid-write may leave the resource
	// truncated.
	Write(name, text string) bool

	// Append writes text after any existing content, creating the resource
	// if absent. Success semantics match Write.
	Append(name, text string) bool

	// Delete removes the resource. It returns true iff the removal succeeded;
	// deleting an absent resource returns false.
	Delete(name string) bool
}

// Backend is a Store with an attach/detach lifecycle.
type Backend interface {
	Store

	// Attach connects the backend to the storage described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached if
	// called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Store operations behave as if every resource were
	// unavailable.
	Detach() error
}

// Identifier is implemented by backends that assign each resource a stable
// id when it is first created. The id survives Write and Append and is
// discarded by Delete. ID returns "" for an absent resource.
type Identifier interface {
	ID(name string) string
}

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
)
