package model

import (
	"encoding/json"
	"sort"
)

// UserSet is a set of user ids. It is encoded as a sorted JSON array.
type UserSet map[string]struct{}

func NewUserSet(ids ...string) UserSet {
	s := make(UserSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}

	return s
}

func (s UserSet) Has(id string) bool {
	_, ok := s[id]

	return ok
}

func (s UserSet) Add(id string) {
	s[id] = struct{}{}
}

func (s UserSet) Remove(id string) {
	delete(s, id)
}

// Toggle adds id when absent and removes it when present. It returns true
// when id is a member afterwards.
func (s UserSet) Toggle(id string) bool {
	if s.Has(id) {
		s.Remove(id)

		return false
	}
	s.Add(id)

	return true
}

func (s UserSet) Len() int {
	return len(s)
}

// Clone never returns nil.
func (s UserSet) Clone() UserSet {
	out := make(UserSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}

	return out
}

// Slice returns the members in ascending order.
func (s UserSet) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

func (s UserSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

func (s *UserSet) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewUserSet(ids...)

	return nil
}
