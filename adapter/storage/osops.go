package storage

import (
	"io"
	"os"
)

type osOps interface {
	Chmod(name string, mode os.FileMode) error
	CreateTemp(dir string, pattern string) (*os.File, error)
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (io.ReadCloser, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath string, newpath string) error
	Lstat(name string) (os.FileInfo, error)
}

type osImpl struct{}

// Chmod implements [osOps].
func (o *osImpl) Chmod(name string, mode os.FileMode) error {
	return os.Chmod(name, mode)
}

// CreateTemp implements [osOps].
func (o *osImpl) CreateTemp(dir string, pattern string) (*os.File, error) {
	return os.CreateTemp(dir, pattern)
}

// MkdirAll implements [osOps].
func (o *osImpl) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Open implements [osOps].
func (o *osImpl) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// ReadDir implements [osOps].
func (o *osImpl) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// Remove implements [osOps].
func (o *osImpl) Remove(name string) error {
	return os.Remove(name)
}

// RemoveAll implements [osOps].
func (o *osImpl) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// Rename implements [osOps].
func (o *osImpl) Rename(oldpath string, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Lstat implements [osOps].
func (o *osImpl) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(name)
}
