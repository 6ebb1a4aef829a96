// Package idgenerator contains the default [domain.IDGenerator] implementation
// using random UUIDs, and an adapter for deterministic ids derived from the
// document data.
package idgenerator

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/vinicius-lino-figueiredo/folddb/domain"
)

// ErrDataType is returned by generators created with [Func] when the data is
// not of the expected type.
type ErrDataType struct {
	Data any
	Want string
}

func (e ErrDataType) Error() string {
	return fmt.Sprintf("cannot generate id for %T, want %s", e.Data, e.Want)
}

// IDGenerator implements [domain.IDGenerator].
type IDGenerator struct {
	reader io.Reader
}

// NewIDGenerator returns a [domain.IDGenerator] that creates version 4 UUIDs in
// their canonical textual form, ignoring the document data.
func NewIDGenerator(opts ...Option) domain.IDGenerator {
	var i IDGenerator
	for _, opt := range opts {
		opt(&i)
	}
	return &i
}

// GenerateID implements [domain.IDGenerator].
func (i *IDGenerator) GenerateID(any) (string, error) {
	if i.reader == nil {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}
	id, err := uuid.NewRandomFromReader(i.reader)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Func adapts a function of the document data into a [domain.IDGenerator], so
// documents can be stored under natural keys. Uniqueness is not checked: two
// documents with the same id are stored in the same file.
func Func[T any](fn func(T) (string, error)) domain.IDGenerator {
	return funcGenerator[T](fn)
}

type funcGenerator[T any] func(T) (string, error)

// GenerateID implements [domain.IDGenerator].
func (f funcGenerator[T]) GenerateID(data any) (string, error) {
	if data == nil {
		var zero T
		return f(zero)
	}
	t, ok := data.(T)
	if !ok {
		var zero T
		return "", ErrDataType{Data: data, Want: fmt.Sprintf("%T", &zero)[1:]}
	}
	return f(t)
}
