// Package deserializer contains the default [domain.Deserializer]
// implementation.
package deserializer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/dolmen-go/contextio"
	"github.com/vinicius-lino-figueiredo/folddb/domain"
)

// NewDeserializer returns a new instance of domain.Deserializer.
func NewDeserializer() domain.Deserializer {
	return &Deserializer{}
}

// Deserializer implements [domain.Deserializer] reading JSON.
type Deserializer struct{}

// Deserialize implements [domain.Deserializer]. Content after the first JSON
// value is rejected.
func (d *Deserializer) Deserialize(ctx context.Context, b []byte, target any) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if target == nil {
		return domain.ErrTargetNil
	}

	dec := json.NewDecoder(contextio.NewReader(ctx, bytes.NewReader(b)))
	if err := dec.Decode(target); err != nil {
		return err
	}
	if dec.More() {
		return ErrTrailingData
	}
	return nil
}

// ErrTrailingData is returned when the content has more than one JSON value.
var ErrTrailingData = errors.New("unexpected data after top-level value")
