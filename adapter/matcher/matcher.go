// Package matcher contains the default implementation of [domain.Matcher]
// using partial structure matching.
//
// A pattern matches a candidate if it is falsy, if both are equal primitives,
// or if the pattern is an object whose every key matches the same key in the
// candidate. Falsy values mean "no constraint", so a pattern such as
// {"active": false} selects every candidate, whatever its "active" field holds.
package matcher

import (
	"github.com/vinicius-lino-figueiredo/folddb/domain"
	"github.com/vinicius-lino-figueiredo/folddb/pkg/structure"
)

// Matcher implements [domain.Matcher].
type Matcher struct{}

// NewMatcher returns a new implementation of domain.Matcher.
func NewMatcher() domain.Matcher {
	return &Matcher{}
}

// Match implements [domain.Matcher].
func (m *Matcher) Match(pattern any, candidate any) (bool, error) {
	if structure.Falsy(pattern) || structure.Equal(pattern, candidate) {
		return true, nil
	}

	if !structure.IsObject(pattern) {
		return false, nil
	}

	keys, _, err := structure.Seq2(pattern)
	if err != nil {
		return false, err
	}

	for key, sub := range keys {
		// an undefined key in the candidate is nil, which only matches
		// falsy sub patterns.
		value, _ := structure.Get(candidate, key)
		ok, err := m.Match(sub, value)
		if err != nil || !ok {
			return false, err
		}
	}

	return true, nil
}
