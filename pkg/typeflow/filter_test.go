package typeflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterCache_SharedAcrossNodesWithSameBound(t *testing.T) {
	hierarchy := newFakeHierarchy().declare("T0", "T0", "C")
	hierarchy.known["C"] = true

	cache := newFilterCache(hierarchy, nil)
	f1 := cache.forBound("C")
	f2 := cache.forBound("C")

	require.Same(t, f1, f2, "the predicate for a given bound must be built once and shared")
}

func TestFilterCache_NilAdmitsEverything(t *testing.T) {
	var f *Filter
	require.True(t, f.Admits(&Type{Index: 0, Name: "Anything"}))
}

func TestFilterCache_EmptyBoundIsNil(t *testing.T) {
	cache := newFilterCache(nil, nil)
	require.Nil(t, cache.forBound(""))
}

func TestFilterCache_MemoizesSubtypeQueries(t *testing.T) {
	hierarchy := newFakeHierarchy().declare("T0", "T0", "C")
	hierarchy.known["C"] = true

	cache := newFilterCache(hierarchy, nil)
	f := cache.forBound("C")

	t0 := &Type{Index: 0, Name: "T0"}
	require.True(t, f.Admits(t0))
	require.True(t, f.Admits(t0), "second call should hit the memoised result")

	_, hit := cache.subtypeMemo.Load(subtypeKey{bound: "C", typ: 0})
	require.True(t, hit)
}
