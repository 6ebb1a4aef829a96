// Package collection implements a directory of documents, one file per
// document, named after the document id.
//
// A [Collection] keeps no state besides its configuration: every call lists or
// reads the directory again. No lock is taken, so concurrent writes to the
// same id race and the last one wins.
package collection

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"path/filepath"

	"github.com/vinicius-lino-figueiredo/folddb/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/deserializer"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/idgenerator"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/matcher"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/serializer"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/storage"
	"github.com/vinicius-lino-figueiredo/folddb/domain"
	"github.com/vinicius-lino-figueiredo/folddb/pkg/structure"
	"go.uber.org/zap"
)

// Collection stores documents of type T in a single directory.
type Collection[T any] struct {
	dir          string
	name         string
	typ          Type[T]
	storage      domain.Storage
	matcher      domain.Matcher
	idGenerator  domain.IDGenerator
	serializer   domain.Serializer
	deserializer domain.Deserializer
	logger       *zap.Logger
}

// NewCollection returns a collection bound to dir. The directory is not
// created. If typ is nil, data is coerced with [Decode].
func NewCollection[T any](dir string, typ Type[T], opts ...Option) (*Collection[T], error) {
	if dir == "" {
		return nil, domain.ErrConfiguration{Reason: "empty collection path"}
	}
	o := options{
		storage:      storage.NewStorage(),
		matcher:      matcher.NewMatcher(),
		idGenerator:  idgenerator.NewIDGenerator(),
		serializer:   serializer.NewSerializer(),
		deserializer: deserializer.NewDeserializer(),
		decoder:      decoder.NewDecoder(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if typ == nil {
		typ = Decode[T](o.decoder)
	}
	name := filepath.Base(dir)
	return &Collection[T]{
		dir:          dir,
		name:         name,
		typ:          typ,
		storage:      o.storage,
		matcher:      o.matcher,
		idGenerator:  o.idGenerator,
		serializer:   o.serializer,
		deserializer: o.deserializer,
		logger:       o.logger.With(zap.String("collection", name)),
	}, nil
}

// Path returns the directory of the collection.
func (c *Collection[T]) Path() string { return c.dir }

// Name returns the base name of the collection directory.
func (c *Collection[T]) Name() string { return c.name }

// New validates data and returns an unsaved item with a new id. Nothing is
// written until [Item.Save] is called.
func (c *Collection[T]) New(data any) (*Item[T], error) {
	t, err := c.coerce(data)
	if err != nil {
		return nil, err
	}
	id, err := c.idGenerator.GenerateID(t)
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}
	return &Item[T]{Document: domain.Document[T]{Data: t, ID: id}, col: c}, nil
}

// Insert creates and saves a new document.
func (c *Collection[T]) Insert(ctx context.Context, data any) (*Item[T], error) {
	item, err := c.New(data)
	if err != nil {
		return nil, err
	}
	if err := item.Save(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

// IDs returns the ids currently stored. The directory is listed again every
// time the sequence is ranged over. Listing errors are yielded with an empty
// id and end the sequence.
func (c *Collection[T]) IDs(ctx context.Context) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		names, err := c.storage.List(ctx, c.dir)
		if err != nil {
			yield("", err)
			return
		}
		for _, name := range names {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			if !yield(name, nil) {
				return
			}
		}
	}
}

// Select reads the document stored under id. It fails with an error matching
// [domain.ErrNotFound] if there is none.
func (c *Collection[T]) Select(ctx context.Context, id string) (domain.Document[T], error) {
	var doc domain.Document[T]
	b, err := c.storage.Read(ctx, c.dir, id)
	if err != nil {
		return doc, err
	}
	if err := c.deserializer.Deserialize(ctx, b, &doc); err != nil {
		return doc, fmt.Errorf("document %q: %w", id, err)
	}
	// the file name is the id
	if doc.ID == "" {
		doc.ID = id
	}
	return doc, nil
}

// Del removes the document stored under id. It fails with an error matching
// [domain.ErrNotFound] if there is none.
func (c *Collection[T]) Del(ctx context.Context, id string) error {
	return c.storage.Remove(ctx, c.dir, id)
}

// Clear removes every document. Entries that could not be removed are
// reported together.
func (c *Collection[T]) Clear(ctx context.Context) error {
	return c.storage.Clear(ctx, c.dir)
}

// Find returns the documents selected by the given options, in listing order.
// Without a pattern every document is selected.
func (c *Collection[T]) Find(ctx context.Context, opts ...domain.QueryOption) ([]domain.Document[T], error) {
	o := queryOptions(opts)
	res := make([]domain.Document[T], 0)
	for id, err := range c.IDs(ctx) {
		if err != nil {
			return nil, err
		}
		if o.Limited && o.Count >= 0 && len(res) >= o.Count {
			break
		}
		doc, err := c.Select(ctx, id)
		if err != nil {
			return nil, err
		}
		ok, err := c.selects(o, doc.Data)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, doc)
		}
	}
	return res, nil
}

// FindOne returns the first document selected by the given options, or nil if
// there is none. Any count option is ignored.
func (c *Collection[T]) FindOne(ctx context.Context, opts ...domain.QueryOption) (*domain.Document[T], error) {
	opts = append(opts[:len(opts):len(opts)], domain.WithCount(1))
	docs, err := c.Find(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// Remove deletes the documents selected by the given options and returns how
// many were deleted. The count option limits the number of scanned documents,
// not the number of deleted ones. Without a pattern, documents are deleted
// without being read.
func (c *Collection[T]) Remove(ctx context.Context, opts ...domain.QueryOption) (int, error) {
	o := queryOptions(opts)
	budget := o.Count
	unfiltered := structure.Falsy(o.Item)
	removed := 0
	for id, err := range c.IDs(ctx) {
		if err != nil {
			return removed, err
		}
		if o.Limited {
			if budget == 0 {
				break
			}
			budget--
		}
		if !unfiltered {
			doc, err := c.Select(ctx, id)
			if err != nil {
				return removed, err
			}
			ok, err := c.selects(o, doc.Data)
			if err != nil {
				return removed, err
			}
			if !ok {
				continue
			}
		}
		if err := c.Del(ctx, id); err != nil {
			return removed, err
		}
		removed++
	}
	c.logger.Debug("documents removed", zap.Int("count", removed))
	return removed, nil
}

// Update changes the document stored under id. By default value is merged
// onto the stored data, one level deep, if the data is an object or a list.
// Otherwise, or if [domain.WithOverride] is set, value replaces the data. The
// result is validated again before being written.
func (c *Collection[T]) Update(ctx context.Context, id string, value any, opts ...domain.UpdateOption) (*domain.Document[T], error) {
	var o domain.UpdateOptions
	for _, opt := range opts {
		opt(&o)
	}

	doc, err := c.Select(ctx, id)
	if err != nil {
		return nil, err
	}

	raw := value
	if !o.Override {
		raw, err = c.merge(ctx, doc.Data, value)
		if err != nil {
			return nil, err
		}
	}

	t, err := c.coerce(raw)
	if err != nil {
		return nil, err
	}
	doc.Data = t
	if err := c.write(ctx, id, doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Collection[T]) write(ctx context.Context, id string, doc domain.Document[T]) error {
	b, err := c.serializer.Serialize(ctx, doc)
	if err != nil {
		return fmt.Errorf("document %q: %w", id, err)
	}
	if err := c.storage.Write(ctx, c.dir, id, b); err != nil {
		return err
	}
	c.logger.Debug("document written", zap.String("id", id))
	return nil
}

func (c *Collection[T]) coerce(data any) (T, error) {
	t, err := c.typ(data)
	if err != nil {
		if errors.As(err, &domain.ErrValidation{}) {
			return t, err
		}
		return t, domain.ErrValidation{Err: err}
	}
	return t, nil
}

func (c *Collection[T]) selects(o domain.QueryOptions, data T) (bool, error) {
	if structure.Falsy(o.Item) {
		return true, nil
	}
	ok, err := c.matcher.Match(o.Item, data)
	if err != nil {
		return false, err
	}
	return ok != o.Except, nil
}

func queryOptions(opts []domain.QueryOption) domain.QueryOptions {
	var o domain.QueryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
