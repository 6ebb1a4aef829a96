package database

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/collection"
	"github.com/vinicius-lino-figueiredo/folddb/adapter/idgenerator"
	"github.com/vinicius-lino-figueiredo/folddb/domain"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type M = map[string]any

type user struct {
	Name string `json:"name"`
}

type DatabaseTestSuite struct {
	suite.Suite
	ctx  context.Context
	root string
	db   *Database
}

func (s *DatabaseTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.root = filepath.Join(s.T().TempDir(), "db")

	var err error
	s.db, err = Open(s.ctx, s.root)
	s.Require().NoError(err)
}

func (s *DatabaseTestSuite) Entries(dir string) []string {
	entries, err := os.ReadDir(dir)
	s.Require().NoError(err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func (s *DatabaseTestSuite) TestOpen() {
	s.DirExists(s.root)
	s.Equal(s.root, s.db.Root())

	// opening an existing root is fine
	_, err := Open(s.ctx, s.root+string(filepath.Separator))
	s.NoError(err)
}

func (s *DatabaseTestSuite) TestOpenEmptyRoot() {
	_, err := Open(s.ctx, "")
	s.ErrorAs(err, &domain.ErrConfiguration{})

	_, err = Import(s.ctx, nil, "")
	s.ErrorAs(err, &domain.ErrConfiguration{})
}

func (s *DatabaseTestSuite) TestOpenNested() {
	root := filepath.Join(s.root, "a", "b")
	_, err := Open(s.ctx, root)
	s.NoError(err)
	s.DirExists(root)
}

// Imported records get new ids and the old keys are discarded.
func (s *DatabaseTestSuite) TestImport() {
	root := filepath.Join(s.T().TempDir(), "imported")
	_, err := Import(s.ctx, map[string]map[string]any{
		"users": {"u1": M{"name": "x"}},
	}, root)
	s.NoError(err)

	files := s.Entries(filepath.Join(root, "users"))
	s.Require().Len(files, 1)
	s.NotEqual("u1", files[0])

	b, err := os.ReadFile(filepath.Join(root, "users", files[0]))
	s.NoError(err)
	var doc struct {
		Data M      `json:"data"`
		ID   string `json:"id"`
	}
	s.NoError(json.Unmarshal(b, &doc))
	s.Equal(files[0], doc.ID)
	s.Equal(M{"name": "x"}, doc.Data)
	_, err = uuid.Parse(doc.ID)
	s.NoError(err)
}

// Imported documents can be read from collections.
func (s *DatabaseTestSuite) TestImportCollect() {
	root := filepath.Join(s.T().TempDir(), "imported")
	db, err := Import(s.ctx, map[string]map[string]any{
		"users": {"1": M{"name": "a"}, "2": M{"name": "b"}},
		"empty": {},
	}, root)
	s.NoError(err)

	s.ElementsMatch([]string{"empty", "users"}, s.Entries(root))

	users, err := Collect[user](s.ctx, db, "users", nil)
	s.NoError(err)
	docs, err := users.Find(s.ctx)
	s.NoError(err)
	s.Len(docs, 2)

	doc, err := users.FindOne(s.ctx, domain.WithItem(M{"name": "b"}))
	s.NoError(err)
	s.Require().NotNil(doc)
	s.Equal("b", doc.Data.Name)
}

func (s *DatabaseTestSuite) TestImportIDGenerator() {
	gen := idgenerator.Func(func(m map[string]any) (string, error) {
		return m["name"].(string), nil
	})
	root := filepath.Join(s.T().TempDir(), "imported")
	_, err := Import(s.ctx, map[string]map[string]any{
		"users": {"1": M{"name": "a"}, "2": M{"name": "b"}},
	}, root, WithIDGenerator(gen))
	s.NoError(err)
	s.Equal([]string{"a", "b"}, s.Entries(filepath.Join(root, "users")))
}

func (s *DatabaseTestSuite) TestImportErrors() {
	root := filepath.Join(s.T().TempDir(), "imported")
	_, err := Import(s.ctx, map[string]map[string]any{"../x": {}}, root)
	s.ErrorAs(err, &domain.ErrInvalidName{})

	errID := errors.New("no id")
	gen := idgenerator.Func(func(any) (string, error) { return "", errID })
	_, err = Import(s.ctx, map[string]map[string]any{
		"users": {"u1": M{"name": "x"}},
	}, root, WithIDGenerator(gen))
	s.ErrorIs(err, errID)
	s.ErrorContains(err, "users/u1")
}

func (s *DatabaseTestSuite) TestImportLogs() {
	core, logs := observer.New(zapcore.InfoLevel)
	root := filepath.Join(s.T().TempDir(), "imported")
	_, err := Import(s.ctx, map[string]map[string]any{
		"a": {"1": M{}, "2": M{}},
		"b": {"1": M{}},
	}, root, WithLogger(zap.New(core)))
	s.NoError(err)

	entries := logs.FilterMessage("database imported").All()
	s.Require().Len(entries, 1)
	fields := entries[0].ContextMap()
	s.EqualValues(2, fields["collections"])
	s.EqualValues(3, fields["documents"])
}

func (s *DatabaseTestSuite) TestCollect() {
	users, err := Collect[user](s.ctx, s.db, "users", nil)
	s.NoError(err)
	s.DirExists(filepath.Join(s.root, "users"))
	s.Equal(filepath.Join(s.root, "users"), users.Path())
	s.Equal("users", users.Name())

	item, err := users.Insert(s.ctx, M{"name": "a"})
	s.NoError(err)
	s.FileExists(filepath.Join(s.root, "users", item.ID))

	// collecting again binds to the same directory
	again, err := Collect[user](s.ctx, s.db, "users", nil)
	s.NoError(err)
	doc, err := again.Select(s.ctx, item.ID)
	s.NoError(err)
	s.Equal("a", doc.Data.Name)
}

// The id generator of a collection overrides the one of the database.
func (s *DatabaseTestSuite) TestCollectIDGenerator() {
	users, err := Collect[user](s.ctx, s.db, "users", nil,
		collection.WithIDGenerator(idgenerator.Func(func(u user) (string, error) {
			return u.Name, nil
		})),
	)
	s.NoError(err)
	_, err = users.Insert(s.ctx, user{Name: "ana"})
	s.NoError(err)
	s.FileExists(filepath.Join(s.root, "users", "ana"))
}

func (s *DatabaseTestSuite) TestCollectInvalidName() {
	for _, name := range []string{"", ".", "..", "a/b"} {
		_, err := Collect[user](s.ctx, s.db, name, nil)
		s.ErrorAs(err, &domain.ErrInvalidName{}, name)
	}
}

func (s *DatabaseTestSuite) TestCollections() {
	for _, name := range []string{"users", "orders", "user_logs"} {
		_, err := Collect[M](s.ctx, s.db, name, nil)
		s.Require().NoError(err)
	}

	names, err := s.db.Collections(s.ctx, "")
	s.NoError(err)
	s.Equal([]string{"orders", "user_logs", "users"}, names)

	names, err = s.db.Collections(s.ctx, "user*")
	s.NoError(err)
	s.Equal([]string{"user_logs", "users"}, names)

	names, err = s.db.Collections(s.ctx, "{orders,users}")
	s.NoError(err)
	s.Equal([]string{"orders", "users"}, names)

	_, err = s.db.Collections(s.ctx, "[")
	s.ErrorIs(err, doublestar.ErrBadPattern)
}

// Without recursive removal only empty collections are cleared.
func (s *DatabaseTestSuite) TestClear() {
	_, err := Collect[M](s.ctx, s.db, "empty", nil)
	s.NoError(err)
	full, err := Collect[M](s.ctx, s.db, "full", nil)
	s.NoError(err)
	_, err = full.Insert(s.ctx, M{"a": "1"})
	s.NoError(err)

	err = s.db.Clear(s.ctx)
	s.ErrorAs(err, &domain.ErrIO{})
	s.Equal([]string{"full"}, s.Entries(s.root))
}

func (s *DatabaseTestSuite) TestClearRecursive() {
	db, err := Open(s.ctx, s.root, WithRecursiveRemoval(true))
	s.Require().NoError(err)
	full, err := Collect[M](s.ctx, db, "full", nil)
	s.NoError(err)
	_, err = full.Insert(s.ctx, M{"a": "1"})
	s.NoError(err)

	s.NoError(db.Clear(s.ctx))
	s.Empty(s.Entries(s.root))
	s.DirExists(s.root)
}

func (s *DatabaseTestSuite) TestRemoveCollection() {
	users, err := Collect[M](s.ctx, s.db, "users", nil)
	s.NoError(err)
	_, err = users.Insert(s.ctx, M{"a": "1"})
	s.NoError(err)

	err = s.db.RemoveCollection(s.ctx, "users")
	s.ErrorAs(err, &domain.ErrIO{})
	s.DirExists(users.Path())

	s.NoError(users.Clear(s.ctx))
	s.NoError(s.db.RemoveCollection(s.ctx, "users"))
	s.NoDirExists(users.Path())

	s.ErrorIs(s.db.RemoveCollection(s.ctx, "users"), domain.ErrNotFound)
	s.ErrorAs(s.db.RemoveCollection(s.ctx, ".."), &domain.ErrInvalidName{})
}

func (s *DatabaseTestSuite) TestRemoveCollectionRecursive() {
	db, err := Open(s.ctx, s.root, WithRecursiveRemoval(true))
	s.Require().NoError(err)
	users, err := Collect[M](s.ctx, db, "users", nil)
	s.NoError(err)
	_, err = users.Insert(s.ctx, M{"a": "1"})
	s.NoError(err)

	s.NoError(db.RemoveCollection(s.ctx, "users"))
	s.NoDirExists(users.Path())
	s.ErrorIs(db.RemoveCollection(s.ctx, "users"), domain.ErrNotFound)
}

func (s *DatabaseTestSuite) TestDestroy() {
	_, err := Collect[M](s.ctx, s.db, "users", nil)
	s.NoError(err)

	s.ErrorAs(s.db.Destroy(s.ctx), &domain.ErrIO{})
	s.DirExists(s.root)

	s.NoError(s.db.RemoveCollection(s.ctx, "users"))
	s.NoError(s.db.Destroy(s.ctx))
	s.NoDirExists(s.root)
}

func (s *DatabaseTestSuite) TestDestroyRecursive() {
	db, err := Open(s.ctx, s.root, WithRecursiveRemoval(true))
	s.Require().NoError(err)
	users, err := Collect[M](s.ctx, db, "users", nil)
	s.NoError(err)
	_, err = users.Insert(s.ctx, M{"a": "1"})
	s.NoError(err)

	s.NoError(db.Destroy(s.ctx))
	s.NoDirExists(s.root)
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}
