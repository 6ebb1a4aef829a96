package database

import (
	"github.com/vinicius-lino-figueiredo/folddb/domain"
	"go.uber.org/zap"
)

// Option configures behavior through the functional options pattern.
type Option func(*Database)

// WithStorage sets the storage shared by the database and its collections.
func WithStorage(s domain.Storage) Option {
	return func(db *Database) {
		db.storage = s
	}
}

// WithIDGenerator sets the default id generator of collections and imports.
func WithIDGenerator(g domain.IDGenerator) Option {
	return func(db *Database) {
		db.idGenerator = g
	}
}

// WithSerializer sets the serializer for converting documents to bytes.
func WithSerializer(s domain.Serializer) Option {
	return func(db *Database) {
		db.serializer = s
	}
}

// WithDeserializer sets the deserializer for converting bytes to documents.
func WithDeserializer(d domain.Deserializer) Option {
	return func(db *Database) {
		db.deserializer = d
	}
}

// WithDecoder sets the decoder used by the default collection type.
func WithDecoder(d domain.Decoder) Option {
	return func(db *Database) {
		db.decoder = d
	}
}

// WithMatcher sets the matcher used by collection queries.
func WithMatcher(m domain.Matcher) Option {
	return func(db *Database) {
		db.matcher = m
	}
}

// WithRecursiveRemoval makes Clear, RemoveCollection and Destroy remove
// directories along with their content. By default only empty directories can
// be removed.
func WithRecursiveRemoval(r bool) Option {
	return func(db *Database) {
		db.recursive = r
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(db *Database) {
		if l != nil {
			db.logger = l
		}
	}
}
