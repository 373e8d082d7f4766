package utils

import "sort"

// StringSet is an unordered set of country tokens.
type StringSet struct {
	seen map[string]struct{}
}

// NewStringSet creates a set holding items.
func NewStringSet(items ...string) *StringSet {
	s := &StringSet{seen: make(map[string]struct{}, len(items))}
	for _, it := range items {
		s.seen[it] = struct{}{}
	}
	return s
}

// Add returns true if the item was newly added, false if already present.
func (s *StringSet) Add(item string) bool {
	if _, exists := s.seen[item]; exists {
		return false
	}
	s.seen[item] = struct{}{}
	return true
}

// Contains returns true if item is in the set.
func (s *StringSet) Contains(item string) bool {
	_, exists := s.seen[item]
	return exists
}

// Size returns the number of items.
func (s *StringSet) Size() int {
	return len(s.seen)
}

// Union returns a new set with the items of s and every other set.
func (s *StringSet) Union(others ...*StringSet) *StringSet {
	out := NewStringSet()
	for it := range s.seen {
		out.Add(it)
	}
	for _, o := range others {
		for it := range o.seen {
			out.Add(it)
		}
	}
	return out
}

// Intersect returns a new set with the items present in s and in every other set.
func (s *StringSet) Intersect(others ...*StringSet) *StringSet {
	out := NewStringSet()
outer:
	for it := range s.seen {
		for _, o := range others {
			if !o.Contains(it) {
				continue outer
			}
		}
		out.Add(it)
	}
	return out
}

// Difference returns a new set with the items of s missing from other.
func (s *StringSet) Difference(other *StringSet) *StringSet {
	out := NewStringSet()
	for it := range s.seen {
		if !other.Contains(it) {
			out.Add(it)
		}
	}
	return out
}

// Sorted returns the items in ascending order.
func (s *StringSet) Sorted() []string {
	out := make([]string, 0, len(s.seen))
	for it := range s.seen {
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}
