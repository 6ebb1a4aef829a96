package domain

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNotFound is returned when a document or entry does not exist.
	ErrNotFound = errors.New("not found")
	// ErrTargetNil is returned when the passed target, which should be a
	// pointer, is passed as a nil value.
	ErrTargetNil = errors.New("target interface is nil")
	// ErrNonPointer is returned when the passed target is not a pointer.
	ErrNonPointer = errors.New("target is not a pointer")
)

// ErrConfiguration is returned when a database cannot be opened with the given
// settings, for example when no root path is given.
type ErrConfiguration struct {
	Reason string
}

func (e ErrConfiguration) Error() string {
	return "invalid configuration: " + e.Reason
}

// ErrInvalidName is returned when a collection name or a document id cannot be
// used as a directory entry.
type ErrInvalidName struct {
	Name string
}

func (e ErrInvalidName) Error() string {
	return fmt.Sprintf("invalid entry name %q", e.Name)
}

// ErrValidation is returned when data is rejected by the type of a
// collection.
type ErrValidation struct {
	Err error
}

func (e ErrValidation) Error() string {
	return "validation failed: " + e.Err.Error()
}

func (e ErrValidation) Unwrap() error { return e.Err }

// ErrDecode is returned by [Decoder.Decode] to wrap third party decoding
// errors.
type ErrDecode struct {
	Source any
	Target any
}

func (e ErrDecode) Error() string {
	return fmt.Sprintf("cannot decode %T into %T", e.Source, e.Target)
}

// ErrIO is returned when an underlying filesystem operation fails.
type ErrIO struct {
	Op   string
	Path string
	Err  error
}

func (e ErrIO) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e ErrIO) Unwrap() error { return e.Err }

// Is reports a missing entry as [ErrNotFound].
func (e ErrIO) Is(target error) bool {
	return target == ErrNotFound && errors.Is(e.Err, fs.ErrNotExist)
}

// ErrFlushToStorage is returned when a written entry could not be synced or
// closed before being moved into place.
type ErrFlushToStorage struct {
	ErrorOnFsync error
	ErrorOnClose error
}

func (e ErrFlushToStorage) Error() string {
	return "storage flush error: " + e.Unwrap().Error()
}

func (e ErrFlushToStorage) Unwrap() error {
	if e.ErrorOnFsync != nil {
		return e.ErrorOnFsync
	}
	return e.ErrorOnClose
}
