package typeflow

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Intern_Idempotent(t *testing.T) {
	r := NewRegistry()

	a := r.Intern("com.example.Foo")
	b := r.Intern("com.example.Foo")

	require.Same(t, a, b, "interning the same name twice must return the same Type")
	require.Equal(t, 1, r.Size())
}

func TestRegistry_Intern_DistinctIndices(t *testing.T) {
	r := NewRegistry()

	tests := []string{"A", "B", "C", "D"}
	seen := map[int]string{}
	for _, name := range tests {
		typ := r.Intern(name)
		require.Equal(t, name, typ.Name)
		prior, exists := seen[typ.Index]
		require.False(t, exists, "index %d reused for %q, already used by %q", typ.Index, name, prior)
		seen[typ.Index] = name
	}
	require.Equal(t, len(tests), r.Size())
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	a := r.Intern("A")

	require.Equal(t, a, r.Get(a.Index))
	require.Nil(t, r.Get(999), "unknown index should return nil")
	require.Equal(t, a, r.GetByName("A"))
	require.Nil(t, r.GetByName("missing"))
}

func TestRegistry_ConcurrentIntern(t *testing.T) {
	r := NewRegistry()

	const goroutines = 64
	var wg sync.WaitGroup
	results := make([]*Type, goroutines)
	for i := 0; i < goroutines; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = r.Intern("Contended")
		}()
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		require.Same(t, results[0], results[i], "concurrent interning of the same name must converge on one Type")
	}
	require.Equal(t, 1, r.Size())
}
