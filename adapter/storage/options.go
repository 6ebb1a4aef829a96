package storage

import (
	"os"

	"go.uber.org/zap"
)

// Option configures behavior through the functional options pattern.
type Option func(*Storage)

// WithFileMode sets the permissions of written entries.
func WithFileMode(mode os.FileMode) Option {
	return func(s *Storage) {
		s.fileMode = mode
	}
}

// WithDirMode sets the permissions of directories created by EnsureDir.
func WithDirMode(mode os.FileMode) Option {
	return func(s *Storage) {
		s.dirMode = mode
	}
}

// WithConcurrency sets how many entries Clear removes in parallel. Values
// lower than one are treated as one.
func WithConcurrency(n int) Option {
	return func(s *Storage) {
		s.concurrency = n
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(s *Storage) {
		if l != nil {
			s.logger = l
		}
	}
}
