package collection

import (
	"github.com/vinicius-lino-figueiredo/folddb/domain"
	"go.uber.org/zap"
)

// Option configures behavior through the functional options pattern.
type Option func(*options)

type options struct {
	storage      domain.Storage
	matcher      domain.Matcher
	idGenerator  domain.IDGenerator
	serializer   domain.Serializer
	deserializer domain.Deserializer
	decoder      domain.Decoder
	logger       *zap.Logger
}

// WithStorage sets the storage used to persist documents.
func WithStorage(s domain.Storage) Option {
	return func(o *options) {
		o.storage = s
	}
}

// WithMatcher sets the matcher used by queries.
func WithMatcher(m domain.Matcher) Option {
	return func(o *options) {
		o.matcher = m
	}
}

// WithIDGenerator sets the generator of new document ids.
func WithIDGenerator(g domain.IDGenerator) Option {
	return func(o *options) {
		o.idGenerator = g
	}
}

// WithSerializer sets the serializer for converting documents to bytes.
func WithSerializer(s domain.Serializer) Option {
	return func(o *options) {
		o.serializer = s
	}
}

// WithDeserializer sets the deserializer for converting bytes to documents.
func WithDeserializer(d domain.Deserializer) Option {
	return func(o *options) {
		o.deserializer = d
	}
}

// WithDecoder sets the decoder used by the default [Type]. It has no effect
// when a type is given to [NewCollection].
func WithDecoder(d domain.Decoder) Option {
	return func(o *options) {
		o.decoder = d
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
