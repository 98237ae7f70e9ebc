package bitset

import (
	"fmt"
	"math/bits"
	"strings"
)

// Width is the number of indices a Set can hold.
const Width = 128

// Set is a fixed-width set of indices in [0, Width) stored as two words.
// The zero value is the empty set.
type Set struct {
	lo, hi uint64
}

// Full returns the set {0, ..., n-1}. n is clamped to [0, Width].
func Full(n int) Set {
	switch {
	case n <= 0:
		return Set{}
	case n < 64:
		return Set{lo: 1<<uint(n) - 1}
	case n == 64:
		return Set{lo: ^uint64(0)}
	case n < Width:
		return Set{lo: ^uint64(0), hi: 1<<uint(n-64) - 1}
	default:
		return Set{lo: ^uint64(0), hi: ^uint64(0)}
	}
}

// Single returns the set containing only i.
func Single(i int) Set {
	var s Set
	s.Set(i)
	return s
}

// Of returns the set containing the provided indices.
func Of(indices ...int) Set {
	var s Set
	for _, i := range indices {
		s.Set(i)
	}
	return s
}

// FromWords builds a set from its low and high 64-bit words.
func FromWords(lo, hi uint64) Set { return Set{lo: lo, hi: hi} }

// Words returns the low and high 64-bit words.
func (s Set) Words() (lo, hi uint64) { return s.lo, s.hi }

// Parse reads a binary ("0b1011") or hexadecimal ("0x1f") literal. Underscores
// are allowed as digit separators.
func Parse(text string) (Set, error) {
	t := strings.ReplaceAll(strings.TrimSpace(text), "_", "")
	var base uint
	switch {
	case strings.HasPrefix(t, "0b"), strings.HasPrefix(t, "0B"):
		base = 1
	case strings.HasPrefix(t, "0x"), strings.HasPrefix(t, "0X"):
		base = 4
	default:
		return Set{}, fmt.Errorf("bitset: %q needs a 0b or 0x prefix", text)
	}
	digits := t[2:]
	if digits == "" {
		return Set{}, fmt.Errorf("bitset: %q has no digits", text)
	}
	var s Set
	pos := 0
	for i := len(digits) - 1; i >= 0; i-- {
		var v uint64
		c := digits[i]
		switch {
		case c >= '0' && c <= '9':
			v = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			v = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v = uint64(c-'A') + 10
		default:
			return Set{}, fmt.Errorf("bitset: invalid digit %q in %q", c, text)
		}
		if v >= 1<<base {
			return Set{}, fmt.Errorf("bitset: invalid digit %q in %q", c, text)
		}
		for b := uint(0); b < base; b++ {
			if v&(1<<b) == 0 {
				pos++
				continue
			}
			if pos >= Width {
				return Set{}, fmt.Errorf("bitset: %q exceeds %d bits", text, Width)
			}
			s.Set(pos)
			pos++
		}
	}
	return s, nil
}

// Set adds i to the set. Out-of-range indices are ignored.
func (s *Set) Set(i int) {
	switch {
	case i < 0 || i >= Width:
	case i < 64:
		s.lo |= 1 << uint(i)
	default:
		s.hi |= 1 << uint(i-64)
	}
}

// Clear removes i from the set.
func (s *Set) Clear(i int) {
	switch {
	case i < 0 || i >= Width:
	case i < 64:
		s.lo &^= 1 << uint(i)
	default:
		s.hi &^= 1 << uint(i-64)
	}
}

// Has reports whether i is in the set.
func (s Set) Has(i int) bool {
	switch {
	case i < 0 || i >= Width:
		return false
	case i < 64:
		return s.lo&(1<<uint(i)) != 0
	default:
		return s.hi&(1<<uint(i-64)) != 0
	}
}

// Count returns the number of indices in the set.
func (s Set) Count() int { return bits.OnesCount64(s.lo) + bits.OnesCount64(s.hi) }

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool { return s.lo == 0 && s.hi == 0 }

// Union returns s ∪ o.
func (s Set) Union(o Set) Set { return Set{lo: s.lo | o.lo, hi: s.hi | o.hi} }

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set { return Set{lo: s.lo & o.lo, hi: s.hi & o.hi} }

// Equal reports whether both sets hold the same indices.
func (s Set) Equal(o Set) bool { return s == o }

// SubsetOf reports whether every member of s is also in o.
func (s Set) SubsetOf(o Set) bool { return s.Intersect(o) == s }

// Nth returns the k-th member in ascending order (k starts at 0). It returns
// false when k is outside [0, Count()).
func (s Set) Nth(k int) (int, bool) {
	if k < 0 {
		return 0, false
	}
	if n := bits.OnesCount64(s.lo); k >= n {
		k -= n
		return nthWord(s.hi, k, 64)
	}
	return nthWord(s.lo, k, 0)
}

func nthWord(w uint64, k, offset int) (int, bool) {
	for w != 0 {
		b := bits.TrailingZeros64(w)
		if k == 0 {
			return offset + b, true
		}
		k--
		w &^= 1 << uint(b)
	}
	return 0, false
}

// Each calls fn for every member in ascending order.
func (s Set) Each(fn func(i int)) {
	for w, offset := s.lo, 0; ; w, offset = s.hi, 64 {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(offset + b)
			w &^= 1 << uint(b)
		}
		if offset == 64 {
			return
		}
	}
}

// Indices returns the members in ascending order.
func (s Set) Indices() []int {
	out := make([]int, 0, s.Count())
	s.Each(func(i int) { out = append(out, i) })
	return out
}

// String renders the set as a binary literal, most significant bit first.
func (s Set) String() string {
	if s.IsEmpty() {
		return "0b0"
	}
	if s.hi == 0 {
		return fmt.Sprintf("0b%b", s.lo)
	}
	return fmt.Sprintf("0b%b%064b", s.hi, s.lo)
}
