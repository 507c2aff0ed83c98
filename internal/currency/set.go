package currency

import "strings"

// mapCodeSet implements CodeSet using a map for O(1) lookups.
type mapCodeSet struct {
	codes map[string]struct{}
}

// NewCodeSet creates a code set from the given codes.
func NewCodeSet(codes ...string) CodeSet {
	set := newMapCodeSet(len(codes))
	for _, code := range codes {
		set.add(code)
	}
	return set
}

func newMapCodeSet(capacity int) *mapCodeSet {
	return &mapCodeSet{
		codes: make(map[string]struct{}, capacity),
	}
}

// Contains checks if a currency code exists in the set.
func (s *mapCodeSet) Contains(code string) bool {
	_, exists := s.codes[normalise(code)]
	return exists
}

// Size returns the number of codes in the set.
func (s *mapCodeSet) Size() int {
	return len(s.codes)
}

// add is only called while a loader is still building the set.
func (s *mapCodeSet) add(code string) {
	code = normalise(code)
	if code == "" {
		return
	}
	s.codes[code] = struct{}{}
}

func normalise(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
