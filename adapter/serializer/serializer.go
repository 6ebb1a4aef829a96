// Package serializer contains the default [domain.Serializer] implementation.
package serializer

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/dolmen-go/contextio"
	"github.com/vinicius-lino-figueiredo/folddb/domain"
)

// Serializer implements [domain.Serializer] producing compact JSON.
type Serializer struct {
	indent string
}

// NewSerializer returns a new instance of domain.Serializer.
func NewSerializer(opts ...Option) domain.Serializer {
	var s Serializer
	for _, opt := range opts {
		opt(&s)
	}
	return &s
}

// Serialize implements [domain.Serializer].
func (s *Serializer) Serialize(ctx context.Context, v any) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(contextio.NewWriter(ctx, &buf))
	enc.SetEscapeHTML(false)
	if s.indent != "" {
		enc.SetIndent("", s.indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Option configures behavior through the functional options pattern.
type Option func(*Serializer)

// WithIndent makes the serializer write indented JSON using the given indent
// string for each level.
func WithIndent(indent string) Option {
	return func(s *Serializer) {
		s.indent = indent
	}
}
