package deps

import "slices"

// orderedSet is a set of task IDs that remembers insertion order.
type orderedSet struct {
	items []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]struct{})}
}

// Add appends id if absent and reports whether it was added.
func (s *orderedSet) Add(id string) bool {
	if s.Has(id) {
		return false
	}
	s.items = append(s.items, id)
	s.index[id] = struct{}{}
	return true
}

// Remove deletes id and reports whether it was present.
func (s *orderedSet) Remove(id string) bool {
	if !s.Has(id) {
		return false
	}
	delete(s.index, id)
	s.items = slices.DeleteFunc(s.items, func(v string) bool { return v == id })
	return true
}

// Replace swaps old for repl in place, keeping its position.
func (s *orderedSet) Replace(old, repl string) bool {
	i := slices.Index(s.items, old)
	if i < 0 {
		return false
	}
	if s.Has(repl) {
		// repl already present: drop old rather than duplicate
		s.Remove(old)
		return true
	}
	s.items[i] = repl
	delete(s.index, old)
	s.index[repl] = struct{}{}
	return true
}

func (s *orderedSet) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *orderedSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the members in insertion order, or nil when empty.
func (s *orderedSet) Items() []string {
	if len(s.items) == 0 {
		return nil
	}
	return slices.Clone(s.items)
}
