// Package database groups collections as subdirectories of a root directory.
package database

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/collection"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/decoder"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/deserializer"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/idgenerator"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/matcher"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/serializer"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/storage"
	"github.com/vinicius-lino-figueiredo/folddb/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Database is a root directory holding one subdirectory per collection.
type Database struct {
	root         string
	storage      domain.Storage
	idGenerator  domain.IDGenerator
	serializer   domain.Serializer
	deserializer domain.Deserializer
	decoder      domain.Decoder
	matcher      domain.Matcher
	recursive    bool
	logger       *zap.Logger
}

func newDatabase(root string, opts []Option) (*Database, error) {
	if root == "" {
		return nil, domain.ErrConfiguration{Reason: "empty root path"}
	}
	db := Database{
		root:         filepath.Clean(root),
		idGenerator:  idgenerator.NewIDGenerator(),
		serializer:   serializer.NewSerializer(),
		deserializer: deserializer.NewDeserializer(),
		decoder:      decoder.NewDecoder(),
		matcher:      matcher.NewMatcher(),
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&db)
	}
	if db.storage == nil {
		db.storage = storage.NewStorage(storage.WithLogger(db.logger))
	}
	return &db, nil
}

// Open returns the database stored at root, creating the directory if it does
// not exist.
func Open(ctx context.Context, root string, opts ...Option) (*Database, error) {
	db, err := newDatabase(root, opts)
	if err != nil {
		return nil, err
	}
	if err := db.storage.EnsureDir(ctx, db.root); err != nil {
		return nil, err
	}
	db.logger.Debug("database opened", zap.String("root", db.root))
	return db, nil
}

// Import creates a database at root from a mapping of collection names to
// records. Every record gets a new id, the keys of the inner map are
// discarded, and is written as its own document.
func Import(ctx context.Context, data map[string]map[string]any, root string, opts ...Option) (*Database, error) {
	db, err := Open(ctx, root, opts...)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, name := range slices.Sorted(maps.Keys(data)) {
		if err := storage.ValidateName(name); err != nil {
			return nil, err
		}
		dir := filepath.Join(db.root, name)
		if err := db.storage.EnsureDir(ctx, dir); err != nil {
			return nil, err
		}
		records := data[name]
		for _, key := range slices.Sorted(maps.Keys(records)) {
			if err := db.importRecord(ctx, dir, records[key]); err != nil {
				return nil, fmt.Errorf("import %s/%s: %w", name, key, err)
			}
		}
		total += len(records)
	}
	db.logger.Info("database imported",
		zap.String("root", db.root),
		zap.Int("collections", len(data)),
		zap.Int("documents", total),
	)
	return db, nil
}

func (db *Database) importRecord(ctx context.Context, dir string, record any) error {
	id, err := db.idGenerator.GenerateID(record)
	if err != nil {
		return err
	}
	b, err := db.serializer.Serialize(ctx, domain.Document[any]{Data: record, ID: id})
	if err != nil {
		return err
	}
	return db.storage.Write(ctx, dir, id, b)
}

// Collect returns the collection called name, creating its directory if it
// does not exist. The collection shares the storage, codec and logger of the
// database, which the given options can override. If typ is nil, the default
// decoding type is used.
func Collect[T any](ctx context.Context, db *Database, name string, typ collection.Type[T], opts ...collection.Option) (*collection.Collection[T], error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}
	dir := filepath.Join(db.root, name)
	if err := db.storage.EnsureDir(ctx, dir); err != nil {
		return nil, err
	}
	opts = append([]collection.Option{
		collection.WithStorage(db.storage),
		collection.WithIDGenerator(db.idGenerator),
		collection.WithSerializer(db.serializer),
		collection.WithDeserializer(db.deserializer),
		collection.WithDecoder(db.decoder),
		collection.WithMatcher(db.matcher),
		collection.WithLogger(db.logger),
	}, opts...)
	return collection.NewCollection(dir, typ, opts...)
}

// Root returns the root directory of the database.
func (db *Database) Root() string { return db.root }

// Collections returns the names of the entries of the root directory. If
// pattern is not empty, only names matching it are returned. Patterns follow
// the doublestar syntax.
func (db *Database) Collections(ctx context.Context, pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", doublestar.ErrBadPattern, pattern)
	}
	names, err := db.storage.List(ctx, db.root)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		slices.Sort(names)
		return names, nil
	}
	res := make([]string, 0, len(names))
	for _, name := range names {
		if ok, _ := doublestar.Match(pattern, name); ok {
			res = append(res, name)
		}
	}
	slices.Sort(res)
	return res, nil
}

// Clear removes every entry of the root directory. Unless recursive removal is
// enabled, collections that still hold documents cannot be removed and are
// reported in the returned error.
func (db *Database) Clear(ctx context.Context) error {
	if !db.recursive {
		return db.storage.Clear(ctx, db.root)
	}
	names, err := db.storage.List(ctx, db.root)
	if err != nil {
		return err
	}
	var errs error
	for _, name := range names {
		errs = multierr.Append(errs, db.storage.RemoveAll(ctx, db.root, name))
	}
	if errs != nil {
		return domain.ErrIO{Op: "clear", Path: db.root, Err: errs}
	}
	return nil
}

// RemoveCollection removes the directory of the collection called name.
// Unless recursive removal is enabled, it fails if the collection is not
// empty.
func (db *Database) RemoveCollection(ctx context.Context, name string) error {
	if err := db.remove(ctx, db.root, name); err != nil {
		return err
	}
	db.logger.Info("collection removed", zap.String("collection", name))
	return nil
}

// Destroy removes the root directory. Unless recursive removal is enabled, it
// fails if the database is not empty.
func (db *Database) Destroy(ctx context.Context) error {
	if err := db.remove(ctx, filepath.Dir(db.root), filepath.Base(db.root)); err != nil {
		return err
	}
	db.logger.Info("database destroyed", zap.String("root", db.root))
	return nil
}

func (db *Database) remove(ctx context.Context, dir, name string) error {
	if db.recursive {
		return db.storage.RemoveAll(ctx, dir, name)
	}
	return db.storage.Remove(ctx, dir, name)
}
