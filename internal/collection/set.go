package collection

import (
	"encoding/json"
	"sort"
)

// Set is an unordered collection of unique strings. It is the in-memory
// representation of multi-valued URI properties (linked snippet lists,
// snippet memberships) and serializes to/from a JSON array.
type Set map[string]struct{}

// NewSet creates a set containing the given values, deduplicated.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	s.AddAll(values...)
	return s
}

// Add inserts a single value.
func (s Set) Add(value string) {
	s[value] = struct{}{}
}

// AddAll inserts all given values.
func (s Set) AddAll(values ...string) {
	for _, v := range values {
		s[v] = struct{}{}
	}
}

// Has reports whether value is a member.
func (s Set) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Pop removes and returns an arbitrary member. The second return value is
// false when the set is empty.
func (s Set) Pop() (string, bool) {
	for v := range s {
		delete(s, v)
		return v, true
	}
	return "", false
}

// Values returns the members sorted lexicographically. Sorting keeps
// serialized output and query text deterministic.
func (s Set) Values() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	clone := make(Set, len(s))
	for v := range s {
		clone[v] = struct{}{}
	}
	return clone
}

// MarshalJSON serializes the set as a sorted JSON array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON accepts a JSON array and deduplicates its members.
func (s *Set) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewSet(values...)
	return nil
}
