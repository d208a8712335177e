package set

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Set is an unordered collection of unique values.
type Set[T comparable] map[T]struct{}

func SetOf[T comparable](vs ...T) Set[T] {
	s := make(Set[T])
	s.Add(vs...)
	return s
}

func (s Set[T]) Add(vs ...T) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

// TryAdd adds `v` and reports whether it was absent before.
func (s Set[T]) TryAdd(v T) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

func (s Set[T]) Remove(v T) bool {
	_, ok := s[v]
	delete(s, v)
	return ok
}

func (s Set[T]) Contains(v T) bool {
	_, ok := s[v]
	return ok
}

func (s Set[T]) ContainsAll(vs ...T) bool {
	for _, v := range vs {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

func (s Set[T]) Len() int {
	return len(s)
}

func (s Set[T]) ToSlice() []T {
	slice := make([]T, 0, len(s))
	for k := range s {
		slice = append(slice, k)
	}
	return slice
}

func (s Set[T]) Union(other Set[T]) Set[T] {
	union := make(Set[T], len(s)+len(other))
	for k := range s {
		union[k] = struct{}{}
	}
	for k := range other {
		union[k] = struct{}{}
	}
	return union
}

func (s Set[T]) String() string {
	sb := new(strings.Builder)
	sb.WriteString("{")
	for i, k := range s.ToSlice() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(sb, "%v", k)
	}
	sb.WriteString("}")
	return sb.String()
}

// Sorted returns the values of an ordered set in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	vs := s.ToSlice()
	slices.Sort(vs)
	return vs
}
