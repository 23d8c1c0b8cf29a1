package typeflow

import "math/bits"

// smallSetThreshold is the reference implementation's S = 6: the small
// form holds up to this many indices before converting to a bitset. Spec
// §3 allows any value in [4, 16] with identical observable semantics; 6
// is kept to match the reference value.
const smallSetThreshold = 6

// typeSet is the compact-then-dense set of Type indices stored inside a
// Node. Up to smallSetThreshold elements it is an unsorted slice; once
// insertion would exceed the threshold it converts, once, to a bitset. The
// conversion is one-way (spec §3).
type typeSet struct {
	small []int32 // nil once converted to dense
	dense []uint64
}

// newTypeSet returns an empty set, ready to grow. The eventual dense
// bitset, if one is needed, is sized lazily by add's registrySizeHint
// parameter at conversion time (spec §4.3).
func newTypeSet() *typeSet {
	return &typeSet{}
}

// isDense reports whether the set has converted to its bitset form.
func (s *typeSet) isDense() bool {
	return s.dense != nil
}

// contains reports whether idx is a member of the set.
func (s *typeSet) contains(idx int) bool {
	if s.isDense() {
		word := idx / 64
		if word < 0 || word >= len(s.dense) {
			return false
		}
		return s.dense[word]&(1<<uint(idx%64)) != 0
	}
	for _, v := range s.small {
		if int(v) == idx {
			return true
		}
	}
	return false
}

// add inserts idx, converting from small to dense if this insertion would
// exceed smallSetThreshold. Returns whether the set changed.
func (s *typeSet) add(idx int, registrySizeHint int) bool {
	if s.contains(idx) {
		return false
	}
	if !s.isDense() {
		if len(s.small) < smallSetThreshold {
			s.small = append(s.small, int32(idx))
			return true
		}
		// Capacity reached and idx is new: convert to dense.
		words := registrySizeHint*2/64 + 1
		if need := idx/64 + 1; need > words {
			words = need
		}
		s.dense = make([]uint64, words)
		for _, v := range s.small {
			s.setBit(int(v))
		}
		s.small = nil
	}
	s.setBit(idx)
	return true
}

func (s *typeSet) setBit(idx int) {
	word := idx / 64
	if word >= len(s.dense) {
		grown := make([]uint64, word+1)
		copy(grown, s.dense)
		s.dense = grown
	}
	s.dense[word] |= 1 << uint(idx%64)
}

// size returns the number of members.
func (s *typeSet) size() int {
	if s.isDense() {
		n := 0
		for _, w := range s.dense {
			n += bits.OnesCount64(w)
		}
		return n
	}
	return len(s.small)
}

// enumerate returns the members: ascending order for the dense form,
// insertion order for the small form (spec §4.3 — callers must not depend
// on ordering beyond "each type appears once").
func (s *typeSet) enumerate() []int {
	if s.isDense() {
		out := make([]int, 0, s.size())
		for word, w := range s.dense {
			for w != 0 {
				bit := bits.TrailingZeros64(w)
				out = append(out, word*64+bit)
				w &^= 1 << uint(bit)
			}
		}
		return out
	}
	out := make([]int, len(s.small))
	for i, v := range s.small {
		out[i] = int(v)
	}
	return out
}
