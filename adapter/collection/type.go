package collection

import (
	"github.com/vinicius-lino-figueiredo/folddb/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/folddb/domain"
)

// Type validates and coerces raw data into the document type of a collection.
// Raw data is whatever callers pass to [Collection.New] or the merged result
// of an update, usually a map[string]any or a value already of type T.
type Type[T any] func(raw any) (T, error)

// Decode returns the default [Type]. Values of type T are returned as they
// are, anything else is decoded into a new T with the given decoder.
func Decode[T any](dec domain.Decoder) Type[T] {
	return func(raw any) (T, error) {
		if t, ok := raw.(T); ok {
			return t, nil
		}
		var t T
		if err := dec.Decode(raw, &t); err != nil {
			return t, err
		}
		return t, nil
	}
}

// Validate returns a [Type] that coerces raw data like [Decode] does and then
// rejects values for which fn returns an error.
func Validate[T any](fn func(T) error) Type[T] {
	typ := Decode[T](decoder.NewDecoder())
	return func(raw any) (T, error) {
		t, err := typ(raw)
		if err != nil {
			return t, err
		}
		return t, fn(t)
	}
}
