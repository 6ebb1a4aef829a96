package matcher

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type M = map[string]any

type A = []any

type user struct {
	Name    string   `json:"name"`
	Active  bool     `json:"active"`
	Age     int      `json:"age,omitempty"`
	Tags    []string `json:"tags"`
	Address *address `json:"address"`
}

type address struct {
	City string `json:"city"`
}

type MatcherTestSuite struct {
	suite.Suite
	mtchr *Matcher
}

// Falsy patterns impose no constraint at all.
func (s *MatcherTestSuite) TestFalsyPatternMatchesAnything() {
	candidates := []any{nil, 0, "x", M{"a": 1}, A{1}, user{Name: "a"}}
	for _, pattern := range []any{nil, false, 0, 0.0, "", math.NaN(), (*user)(nil), M(nil)} {
		for _, c := range candidates {
			s.Matches(s.mtchr.Match(pattern, c))
		}
	}
}

// An empty object matches anything, even primitives.
func (s *MatcherTestSuite) TestVacuousPattern() {
	s.Matches(s.mtchr.Match(M{}, M{"a": 1}))
	s.Matches(s.mtchr.Match(M{}, 5))
	s.Matches(s.mtchr.Match(M{}, nil))
	s.Matches(s.mtchr.Match(A{}, "abc"))
	s.Matches(s.mtchr.Match(struct{}{}, user{}))
}

// A false value in the pattern does not select false values, it selects
// everything.
func (s *MatcherTestSuite) TestFalseIsNotAConstraint() {
	s.Matches(s.mtchr.Match(M{"a": false}, M{"a": true}))
	s.Matches(s.mtchr.Match(M{"active": false}, user{Active: true}))
	s.Matches(s.mtchr.Match(M{"a": 0}, M{"a": 12}))
	s.Matches(s.mtchr.Match(M{"a": ""}, M{}))
}

func (s *MatcherTestSuite) TestPrimitives() {
	s.Matches(s.mtchr.Match("yeah", "yeah"))
	s.Matches(s.mtchr.Match(1, 1.0))
	s.Matches(s.mtchr.Match(true, true))
	s.Matches(s.mtchr.Match(json.Number("3"), 3))

	s.NotMatches(s.mtchr.Match("yeah", "yea"))
	s.NotMatches(s.mtchr.Match(1, "1"))
	s.NotMatches(s.mtchr.Match(true, 1))
	s.NotMatches(s.mtchr.Match("a", nil))
	s.NotMatches(s.mtchr.Match(2, M{"a": 2}))
}

func (s *MatcherTestSuite) TestTimes() {
	t := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	s.Matches(s.mtchr.Match(M{"at": t}, M{"at": t.In(time.Local)}))
	s.NotMatches(s.mtchr.Match(M{"at": t}, M{"at": t.Add(time.Nanosecond)}))
	s.NotMatches(s.mtchr.Match(M{"at": t}, M{}))
}

func (s *MatcherTestSuite) TestSimpleFieldEquality() {
	s.Matches(s.mtchr.Match(M{"test": "yeah"}, M{"test": "yeah", "other": 1}))
	s.NotMatches(s.mtchr.Match(M{"test": "yeah"}, M{"test": "yea"}))
	s.NotMatches(s.mtchr.Match(M{"test": "yeah"}, M{"test": "yeahh"}))
	s.NotMatches(s.mtchr.Match(M{"test": "yeah"}, M{}))
}

func (s *MatcherTestSuite) TestSeveralFields() {
	pattern := M{"a": 1, "b": "x"}
	s.Matches(s.mtchr.Match(pattern, M{"a": 1.0, "b": "x", "c": true}))
	s.NotMatches(s.mtchr.Match(pattern, M{"a": 1, "b": "y"}))
	s.NotMatches(s.mtchr.Match(pattern, M{"a": 2, "b": "x"}))
}

// Nested objects are sub patterns, not deep equality checks.
func (s *MatcherTestSuite) TestNestedObjects() {
	s.Matches(s.mtchr.Match(M{"a": M{"b": 5}}, M{"a": M{"b": 5, "c": 3}}))
	s.NotMatches(s.mtchr.Match(M{"a": M{"b": 5}}, M{"a": M{"b": 6}}))
	s.NotMatches(s.mtchr.Match(M{"a": M{"b": 5}}, M{"a": 5}))
	s.NotMatches(s.mtchr.Match(M{"a": M{"b": 5}}, M{}))
	s.Matches(s.mtchr.Match(M{"a": M{"b": M{}}}, M{"a": M{}}))
}

// Arrays are compared index by index and candidate length is never checked.
func (s *MatcherTestSuite) TestArrays() {
	s.Matches(s.mtchr.Match(A{"x"}, A{"x", "y"}))
	s.Matches(s.mtchr.Match(M{"tags": A{"x"}}, M{"tags": []string{"x", "y", "z"}}))
	s.NotMatches(s.mtchr.Match(M{"tags": A{"y"}}, M{"tags": []string{"x", "y"}}))
	s.NotMatches(s.mtchr.Match(A{"x", "y"}, A{"x"}))
	s.Matches(s.mtchr.Match(A{nil, "y"}, A{"x", "y"}))
	s.Matches(s.mtchr.Match(M{"0": "a"}, []string{"a"}))
}

// Strings can be indexed by a pattern object, like any indexable value.
func (s *MatcherTestSuite) TestStringIndexes() {
	s.Matches(s.mtchr.Match(M{"0": "a"}, "abc"))
	s.NotMatches(s.mtchr.Match(M{"1": "a"}, "abc"))
}

// Structs can be used as patterns and as candidates, addressed by their JSON
// field names. Zero fields of a struct pattern impose no constraint.
func (s *MatcherTestSuite) TestStructs() {
	candidate := user{
		Name:    "a",
		Active:  true,
		Age:     30,
		Tags:    []string{"admin"},
		Address: &address{City: "Recife"},
	}

	s.Matches(s.mtchr.Match(user{Name: "a"}, candidate))
	s.Matches(s.mtchr.Match(&user{Age: 30}, &candidate))
	s.Matches(s.mtchr.Match(M{"name": "a", "address": M{"city": "Recife"}}, candidate))
	s.Matches(s.mtchr.Match(user{Address: &address{City: "Recife"}}, candidate))
	s.Matches(s.mtchr.Match(M{"Name": "a"}, candidate))

	s.NotMatches(s.mtchr.Match(user{Name: "b"}, candidate))
	s.NotMatches(s.mtchr.Match(user{Address: &address{City: "Natal"}}, candidate))
	s.NotMatches(s.mtchr.Match(M{"address": M{"city": "Recife"}}, user{Name: "a"}))
	s.NotMatches(s.mtchr.Match(user{Name: "a"}, M{"Name": "a"}))
}

func (s *MatcherTestSuite) TestStructPatternAgainstMap() {
	s.Matches(s.mtchr.Match(user{Name: "a", Age: 3}, M{"name": "a", "age": 3.0}))
	s.NotMatches(s.mtchr.Match(user{Name: "a", Age: 3}, M{"name": "a", "age": 4.0}))
}

// Same value always matches itself.
func (s *MatcherTestSuite) TestIdentity() {
	values := []any{
		M{"a": M{"b": A{1, "2", nil, math.NaN()}}},
		user{Name: "x", Tags: []string{"a"}},
		"abc", 12, true,
	}
	for _, v := range values {
		s.Matches(s.mtchr.Match(v, v))
	}
}

func (s *MatcherTestSuite) Matches(matches bool, err error) {
	s.NoError(err)
	s.True(matches)
}

func (s *MatcherTestSuite) NotMatches(matches bool, err error) {
	s.NoError(err)
	s.False(matches)
}

func (s *MatcherTestSuite) SetupTest() {
	s.mtchr = NewMatcher().(*Matcher)
}

func TestMatcherTestSuite(t *testing.T) {
	suite.Run(t, new(MatcherTestSuite))
}
