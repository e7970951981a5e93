package model

import "sort"

// ExcludeSet is a set of directory names pruned from every walk.
type ExcludeSet map[string]struct{}

// NewExcludeSet builds a set from names, ignoring empty strings.
func NewExcludeSet(names ...string) ExcludeSet {
	set := make(ExcludeSet, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}

		set[name] = struct{}{}
	}

	return set
}

// Contains reports whether name is excluded. A nil set excludes nothing.
func (s ExcludeSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// With returns a copy of the set extended by names.
func (s ExcludeSet) With(names ...string) ExcludeSet {
	out := make(ExcludeSet, len(s)+len(names))
	for name := range s {
		out[name] = struct{}{}
	}

	for _, name := range names {
		if name == "" {
			continue
		}

		out[name] = struct{}{}
	}

	return out
}

// Names returns the excluded names sorted.
func (s ExcludeSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
