// Package folddb provides an embedded document store for golang that keeps
// every document in its own JSON file.
//
// A database is a directory and each of its subdirectories is a collection.
// Documents are stored as <root>/<collection>/<id>, with the content
// {"data": ..., "id": "..."}. Nothing is cached in memory: every operation
// reads the directories again, so files can be inspected, edited or copied
// with any tool.
//
// The basic usage starts with opening a [Database] with [Open] and binding a
// typed [Collection] to it with [Collect].
package folddb

import (
	"context"

	"github.com/vinicius-lino-figueiredo/folddb/adapter/collection"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/database"
	"github.com/vinicius-lino-figueiredo/folddb/domain"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is matched by errors returned when a document, a
	// collection or a database directory does not exist.
	ErrNotFound = domain.ErrNotFound
	// ErrTargetNil is returned when user provides a nil value as a target
	// to decode data.
	ErrTargetNil = domain.ErrTargetNil
	// ErrNonPointer is returned when user provides a non pointer value as a
	// target to decode data.
	ErrNonPointer = domain.ErrNonPointer
)

// ErrConfiguration is returned by [Open] and [Import] when no root path is
// given.
type ErrConfiguration = domain.ErrConfiguration

// ErrInvalidName is returned when a collection name or document id cannot be
// used as a file name.
type ErrInvalidName = domain.ErrInvalidName

// ErrValidation is returned when the [Type] of a collection rejects data.
type ErrValidation = domain.ErrValidation

// ErrDecode is returned by [Decoder.Decode] to easily wrap third party decoding
// errors.
type ErrDecode = domain.ErrDecode

// ErrIO is returned when a filesystem operation fails.
type ErrIO = domain.ErrIO

// Database is a directory of collections.
type Database = database.Database

// Collection is a directory of documents of type T.
type Collection[T any] = collection.Collection[T]

// Item is an unsaved document created by [Collection.New].
type Item[T any] = collection.Item[T]

// Document is a stored record and its id.
type Document[T any] = domain.Document[T]

// Type validates and coerces raw data into the document type of a collection.
type Type[T any] = collection.Type[T]

// Serializer converts documents to bytes for storage.
type Serializer = domain.Serializer

// Deserializer converts bytes back to documents.
type Deserializer = domain.Deserializer

// Storage provides the directory operations used by databases and collections.
type Storage = domain.Storage

// Decoder converts between different data representations.
type Decoder = domain.Decoder

// Matcher evaluates whether documents match a pattern.
type Matcher = domain.Matcher

// IDGenerator is used to create ids for new documents.
type IDGenerator = domain.IDGenerator

// Option configures a [Database] through the functional options pattern.
type Option = database.Option

// CollectionOption configures a [Collection] through the functional options
// pattern.
type CollectionOption = collection.Option

// Open returns the database stored at root, creating the directory if it does
// not exist. The following options can be used:
//
// - [WithStorage]: sets the storage implementation for file operations.
//
// - [WithIDGenerator]: sets the generator of new document ids.
//
// - [WithSerializer]: sets the serializer for converting data to bytes.
//
// - [WithDeserializer]: sets the deserializer for converting bytes to data.
//
// - [WithDecoder]: sets the decoder used by the default collection type.
//
// - [WithMatcher]: sets the matcher implementation for queries.
//
// - [WithRecursiveRemoval]: allows removing collections that are not empty.
//
// - [WithLogger]: sets the logger.
func Open(ctx context.Context, root string, options ...Option) (*Database, error) {
	return database.Open(ctx, root, options...)
}

// Import creates a database at root containing the given collections. Each
// record is stored under a newly generated id and the keys of the inner maps
// are discarded. It accepts the same options as [Open].
func Import(ctx context.Context, data map[string]map[string]any, root string, options ...Option) (*Database, error) {
	return database.Import(ctx, data, root, options...)
}

// Collect returns the collection called name in db, creating its directory if
// needed. If typ is nil, data is decoded into T by json field names.
func Collect[T any](ctx context.Context, db *Database, name string, typ Type[T], options ...CollectionOption) (*Collection[T], error) {
	return database.Collect(ctx, db, name, typ, options...)
}

// Decode returns the default [Type] of a collection, decoding data with dec.
func Decode[T any](dec Decoder) Type[T] {
	return collection.Decode[T](dec)
}

// Validate returns a [Type] that decodes data into T and then rejects it if fn
// returns an error.
func Validate[T any](fn func(T) error) Type[T] {
	return collection.Validate(fn)
}

// WithStorage sets the storage implementation for file operations.
func WithStorage(s Storage) Option {
	return database.WithStorage(s)
}

// WithIDGenerator sets the generator of new document ids.
func WithIDGenerator(g IDGenerator) Option {
	return database.WithIDGenerator(g)
}

// WithSerializer sets the serializer for converting documents to bytes.
func WithSerializer(s Serializer) Option {
	return database.WithSerializer(s)
}

// WithDeserializer sets the deserializer for converting bytes to documents.
func WithDeserializer(d Deserializer) Option {
	return database.WithDeserializer(d)
}

// WithDecoder sets the decoder used by the default collection type.
func WithDecoder(d Decoder) Option {
	return database.WithDecoder(d)
}

// WithMatcher sets the matcher implementation for queries.
func WithMatcher(m Matcher) Option {
	return database.WithMatcher(m)
}

// WithRecursiveRemoval makes removals delete directories with their content.
func WithRecursiveRemoval(r bool) Option {
	return database.WithRecursiveRemoval(r)
}

// WithLogger sets the logger of the database and its collections.
func WithLogger(l *zap.Logger) Option {
	return database.WithLogger(l)
}

// WithCollectionIDGenerator sets the id generator of a single collection.
func WithCollectionIDGenerator(g IDGenerator) CollectionOption {
	return collection.WithIDGenerator(g)
}

// QueryOption configures find and remove operations through the functional
// options pattern.
type QueryOption = domain.QueryOption

// WithItem sets the pattern documents are matched against. Falsy values in the
// pattern, like false, 0 or "", do not constrain anything.
func WithItem(p any) QueryOption {
	return domain.WithItem(p)
}

// WithCount caps a find or remove operation.
func WithCount(c int) QueryOption {
	return domain.WithCount(c)
}

// WithExcept selects documents that do not match the pattern.
func WithExcept(e bool) QueryOption {
	return domain.WithExcept(e)
}

// UpdateOption configures update behavior through the functional options
// pattern.
type UpdateOption = domain.UpdateOption

// WithOverride replaces the stored data instead of merging the new value onto
// it.
func WithOverride(o bool) UpdateOption {
	return domain.WithOverride(o)
}
