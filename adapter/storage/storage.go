// Package storage contains the default [domain.Storage] implementation, backed
// by the local filesystem.
package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dolmen-go/contextio"
	"github.com/vinicius-lino-figueiredo/folddb/domain"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultDirMode is used to create missing directories.
	DefaultDirMode os.FileMode = 0o755
	// DefaultFileMode is set on every written entry.
	DefaultFileMode os.FileMode = 0o644
	// DefaultConcurrency is the maximum number of parallel removals
	// performed by [Storage.Clear].
	DefaultConcurrency = 16
	// TempFilePrefix is the prefix of the temporary files used for atomic
	// writes. Entries with this prefix are never listed.
	TempFilePrefix = ".folddb-tmp-"
)

// Storage implements domain.Storage.
type Storage struct {
	fileMode    os.FileMode
	dirMode     os.FileMode
	concurrency int
	logger      *zap.Logger
	os          osOps
}

// NewStorage returns a new implementation of domain.Storage.
func NewStorage(options ...Option) domain.Storage {
	s := Storage{
		fileMode:    DefaultFileMode,
		dirMode:     DefaultDirMode,
		concurrency: DefaultConcurrency,
		logger:      zap.NewNop(),
		os:          &osImpl{},
	}
	for _, option := range options {
		option(&s)
	}
	return &s
}

// List implements domain.Storage.
func (s *Storage) List(ctx context.Context, dir string) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	entries, err := s.os.ReadDir(dir)
	if err != nil {
		return nil, domain.ErrIO{Op: "list", Path: dir, Err: err}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), TempFilePrefix) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Read implements domain.Storage.
func (s *Storage) Read(ctx context.Context, dir, name string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name)
	f, err := s.os.Open(path)
	if err != nil {
		return nil, domain.ErrIO{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	b, err := io.ReadAll(contextio.NewReader(ctx, f))
	if err != nil {
		return nil, domain.ErrIO{Op: "read", Path: path, Err: err}
	}
	return b, nil
}

// Write implements domain.Storage. Data is written to a temporary file in the
// same directory, synced and then renamed over the target, so readers never
// see a partial entry.
func (s *Storage) Write(ctx context.Context, dir, name string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if err := s.writeFileAtomic(ctx, path, data); err != nil {
		return domain.ErrIO{Op: "write", Path: path, Err: err}
	}
	s.logger.Debug("entry written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func (s *Storage) writeFileAtomic(ctx context.Context, path string, data []byte) error {
	tmpFile, err := s.os.CreateTemp(filepath.Dir(path), TempFilePrefix+"*")
	if err != nil {
		return err
	}
	// no-op once renamed
	defer s.os.Remove(tmpFile.Name())

	if _, err := contextio.NewWriter(ctx, tmpFile).Write(data); err != nil {
		tmpFile.Close()
		return err
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return domain.ErrFlushToStorage{ErrorOnFsync: err}
	}

	if err := tmpFile.Close(); err != nil {
		return domain.ErrFlushToStorage{ErrorOnClose: err}
	}

	if err := s.os.Chmod(tmpFile.Name(), s.fileMode); err != nil {
		return err
	}

	return s.os.Rename(tmpFile.Name(), path)
}

// Remove implements domain.Storage. Directories are only removed if empty.
func (s *Storage) Remove(ctx context.Context, dir, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if err := s.os.Remove(path); err != nil {
		return domain.ErrIO{Op: "remove", Path: path, Err: err}
	}
	s.logger.Debug("entry removed", zap.String("path", path))
	return nil
}

// RemoveAll implements domain.Storage.
func (s *Storage) RemoveAll(ctx context.Context, dir, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	path := filepath.Join(dir, name)
	if _, err := s.os.Lstat(path); err != nil {
		return domain.ErrIO{Op: "remove", Path: path, Err: err}
	}
	if err := s.os.RemoveAll(path); err != nil {
		return domain.ErrIO{Op: "remove", Path: path, Err: err}
	}
	s.logger.Debug("entry tree removed", zap.String("path", path))
	return nil
}

// Clear implements domain.Storage. Entries are removed in parallel and every
// failure is reported, aggregated in a single [domain.ErrIO]. Entries that
// could be removed stay removed.
func (s *Storage) Clear(ctx context.Context, dir string) error {
	names, err := s.List(ctx, dir)
	if err != nil {
		return err
	}

	var (
		mu   sync.Mutex
		errs error
		g    errgroup.Group
	)
	g.SetLimit(max(1, s.concurrency))
	for _, name := range names {
		g.Go(func() error {
			if err := s.Remove(ctx, dir, name); err != nil {
				mu.Lock()
				errs = multierr.Append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if errs != nil {
		failed := len(multierr.Errors(errs))
		s.logger.Warn("partial clear",
			zap.String("dir", dir),
			zap.Int("entries", len(names)),
			zap.Int("failed", failed),
			zap.Error(errs),
		)
		return domain.ErrIO{Op: "clear", Path: dir, Err: errs}
	}
	return nil
}

// EnsureDir implements domain.Storage.
func (s *Storage) EnsureDir(ctx context.Context, dir string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	if err := s.os.MkdirAll(dir, s.dirMode); err != nil {
		return domain.ErrIO{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

// ValidateName returns [domain.ErrInvalidName] if name is not a single path
// element or looks like a temporary file.
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..",
		strings.ContainsAny(name, `/\`+"\x00"),
		strings.HasPrefix(name, TempFilePrefix):
		return domain.ErrInvalidName{Name: name}
	}
	return nil
}
