// Package decoder contains the default [domain.Decoder] implementation.
package decoder

import (
	"fmt"
	"time"

	"github.com/goccy/go-reflect"
	"github.com/mitchellh/mapstructure"
	"github.com/vinicius-lino-figueiredo/folddb/domain"
)

// Decoder implements domain.Decoder. Generic values, such as the ones read
// from JSON, are copied into typed targets using their json tags. Strings are
// parsed into [time.Time] fields when they hold RFC 3339 dates.
type Decoder struct {
	weak bool
}

// NewDecoder returns a new implementation of domain.Decoder.
func NewDecoder(opts ...Option) domain.Decoder {
	var d Decoder
	for _, opt := range opts {
		opt(&d)
	}
	return &d
}

// Decode implements domain.Decoder.
func (d *Decoder) Decode(source any, target any) error {
	if target == nil {
		return domain.ErrTargetNil
	}

	value := reflect.ValueNoEscapeOf(target)
	if value.Kind() != reflect.Ptr {
		return domain.ErrNonPointer
	}
	if value.IsNil() {
		return domain.ErrTargetNil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           target,
		WeaklyTypedInput: d.weak,
		Squash:           true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(source); err != nil {
		errDec := domain.ErrDecode{Source: source, Target: target}
		return fmt.Errorf("%w: %w", errDec, err)
	}
	return nil
}

// Option configures behavior through the functional options pattern.
type Option func(*Decoder)

// WithWeakTypes enables weak conversions between primitive values, such as
// "1" into an int field.
func WithWeakTypes(weak bool) Option {
	return func(d *Decoder) {
		d.weak = weak
	}
}
