// Package domain contains domain-specific interfaces, errors and option types
// for folddb.
//
// This package defines the contracts that must be implemented by adapters, as
// well as functional options for configuring queries and updates.
package domain

import "context"

// Serializer converts values to bytes for storage.
type Serializer interface {
	// Serialize converts a value to bytes for persistence.
	Serialize(context.Context, any) ([]byte, error)
}

// Deserializer converts bytes back to values.
type Deserializer interface {
	// Deserialize reads bytes into the given target, which should be a
	// pointer.
	Deserialize(context.Context, []byte, any) error
}

// Decoder converts between different data representations, for example a
// generic map into a user-defined struct.
type Decoder interface {
	// Decode converts source into target. Target should be a non-nil
	// pointer.
	Decode(source any, target any) error
}

// Storage is the filesystem-facing capability used by collections and
// databases. Every entry is addressed by its parent directory and its name.
// Failures are returned as [ErrIO].
type Storage interface {
	// List returns the names of every entry in dir, in no specific order.
	List(ctx context.Context, dir string) ([]string, error)
	// Read returns the content of an entry. A missing entry results in an
	// error matching [ErrNotFound].
	Read(ctx context.Context, dir, name string) ([]byte, error)
	// Write creates or replaces an entry.
	Write(ctx context.Context, dir, name string, data []byte) error
	// Remove deletes a single entry. A missing entry results in an error
	// matching [ErrNotFound].
	Remove(ctx context.Context, dir, name string) error
	// RemoveAll deletes an entry and everything under it.
	RemoveAll(ctx context.Context, dir, name string) error
	// Clear deletes every entry in dir.
	Clear(ctx context.Context, dir string) error
	// EnsureDir creates dir if it does not exist.
	EnsureDir(ctx context.Context, dir string) error
}

// Matcher evaluates whether a candidate value matches a pattern.
type Matcher interface {
	// Match returns true if the candidate matches the pattern.
	Match(pattern any, candidate any) (bool, error)
}

// IDGenerator is used to create identifiers for new documents.
type IDGenerator interface {
	// GenerateID returns an identifier for a document holding data.
	GenerateID(data any) (string, error)
}
