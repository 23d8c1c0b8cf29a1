package typeflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeSet_SmallForm(t *testing.T) {
	s := newTypeSet()

	for i := 0; i < smallSetThreshold; i++ {
		changed := s.add(i, 16)
		require.True(t, changed)
	}

	require.False(t, s.isDense(), "should still be in small form at exactly the threshold")
	require.Equal(t, smallSetThreshold, s.size())
	for i := 0; i < smallSetThreshold; i++ {
		require.True(t, s.contains(i))
	}
}

func TestTypeSet_CrossoverToDense(t *testing.T) {
	s := newTypeSet()

	// Seven distinct types over seven calls, threshold S = 6 (spec §8,
	// end-to-end scenario 3).
	for i := 0; i < smallSetThreshold+1; i++ {
		s.add(i, 16)
	}

	require.True(t, s.isDense(), "insertion past the threshold must convert to dense")
	require.Equal(t, smallSetThreshold+1, s.size())
	for i := 0; i < smallSetThreshold+1; i++ {
		require.True(t, s.contains(i), "type %d must survive the small-to-dense conversion", i)
	}
	got := s.enumerate()
	require.Len(t, got, smallSetThreshold+1)
	for i, v := range got {
		require.Equal(t, i, v, "dense enumeration must be ascending")
	}
}

func TestTypeSet_AddExistingIsNoop(t *testing.T) {
	s := newTypeSet()
	require.True(t, s.add(5, 16))
	require.False(t, s.add(5, 16), "re-adding an existing member must report no change")
	require.Equal(t, 1, s.size())
}

func TestTypeSet_AddExistingIsNoop_Dense(t *testing.T) {
	s := newTypeSet()
	for i := 0; i < smallSetThreshold+2; i++ {
		s.add(i, 16)
	}
	require.True(t, s.isDense())
	require.False(t, s.add(0, 16))
	require.Equal(t, smallSetThreshold+2, s.size())
}

func TestTypeSet_SmallToDenseEquivalence(t *testing.T) {
	// Testable property 10: membership must not depend on representation.
	// small receives only the values of seq up to S-2 and stays small;
	// dense receives all of seq and converts. Every value both received
	// reports the same membership in each, and dense holds exactly seq's
	// distinct values.
	seq := []int{3, 1, 4, 1, 5, 9, 2, 6}

	small := newTypeSet()
	for _, v := range seq {
		if v <= smallSetThreshold-2 { // keep this one under the threshold
			small.add(v, 16)
		}
	}

	dense := newTypeSet()
	for _, v := range seq {
		dense.add(v, 16)
	}
	require.True(t, dense.isDense())
	require.False(t, small.isDense())
	for _, v := range seq {
		if v <= smallSetThreshold-2 {
			require.Equal(t, dense.contains(v), small.contains(v))
		}
	}

	wantMembers := map[int]bool{}
	for _, v := range seq {
		wantMembers[v] = true
	}
	for v := range wantMembers {
		require.True(t, dense.contains(v))
	}
	require.Equal(t, len(wantMembers), dense.size())
}

func TestTypeSet_EnumerateEmpty(t *testing.T) {
	s := newTypeSet()
	require.Empty(t, s.enumerate())
	require.Equal(t, 0, s.size())
}
