// Package bitset provides the fixed-size bit sets problems use to describe
// which decisions are still open in a state.
package bitset

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// A Set is a fixed-size set of integers in [0, Len()).
// The zero value is an empty set of size 0.
type Set struct {
	size  int
	words []uint64
}

// New returns an empty set able to hold values in [0, size).
func New(size int) *Set {
	if size < 0 {
		size = 0
	}
	return &Set{size: size, words: make([]uint64, (size+63)/64)}
}

// Full returns a set containing every value in [0, size).
func Full(size int) *Set {
	s := New(size)
	for i := range s.words {
		s.words[i] = ^uint64(0)
	}
	s.trim()
	return s
}

// trim clears bits beyond size in the last word.
func (s *Set) trim() {
	if r := s.size % 64; r != 0 && len(s.words) > 0 {
		s.words[len(s.words)-1] &= (uint64(1) << uint(r)) - 1
	}
}

// Len is the capacity of the set, not its cardinality.
func (s *Set) Len() int { return s.size }

// Has is true iff i belongs to s.
func (s *Set) Has(i int) bool {
	if i < 0 || i >= s.size {
		return false
	}
	return s.words[i/64]&(1<<uint(i%64)) != 0
}

// Add adds i to s. Values out of range are ignored.
func (s *Set) Add(i int) {
	if i < 0 || i >= s.size {
		return
	}
	s.words[i/64] |= 1 << uint(i%64)
}

// Remove removes i from s.
func (s *Set) Remove(i int) {
	if i < 0 || i >= s.size {
		return
	}
	s.words[i/64] &^= 1 << uint(i%64)
}

// Count returns the number of values in s.
func (s *Set) Count() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return &Set{size: s.size, words: words}
}

// Or adds every value of other to s.
// Both sets must have the same size.
func (s *Set) Or(other *Set) {
	for i := range s.words {
		s.words[i] |= other.words[i]
	}
}

// And keeps in s only the values also in other.
func (s *Set) And(other *Set) {
	for i := range s.words {
		s.words[i] &= other.words[i]
	}
}

// Equal is true iff both sets have the same size and the same values.
func (s *Set) Equal(other *Set) bool {
	if other == nil || s.size != other.size {
		return false
	}
	for i := range s.words {
		if s.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Each calls f on every value of s, in ascending order.
func (s *Set) Each(f func(i int)) {
	for wi, w := range s.words {
		for w != 0 {
			off := bits.TrailingZeros64(w)
			f(wi*64 + off)
			w &= w - 1
		}
	}
}

// Slice returns the values of s in ascending order.
func (s *Set) Slice() []int {
	res := make([]int, 0, s.Count())
	s.Each(func(i int) { res = append(res, i) })
	return res
}

// Hash returns a structural hash of s, consistent with Equal.
func (s *Set) Hash() uint64 {
	buf := make([]byte, 8*(len(s.words)+1))
	binary.LittleEndian.PutUint64(buf, uint64(s.size))
	for i, w := range s.words {
		binary.LittleEndian.PutUint64(buf[8*(i+1):], w)
	}
	return xxhash.Sum64(buf)
}

func (s *Set) String() string {
	vals := s.Slice()
	strs := make([]string, len(vals))
	for i, v := range vals {
		strs[i] = fmt.Sprintf("%d", v)
	}
	return "{" + strings.Join(strs, ", ") + "}"
}
