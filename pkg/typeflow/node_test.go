package typeflow

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode_PropagateBatch(t *testing.T) {
	hierarchy := newFakeHierarchy().declare("T0", "T0", "C")
	hierarchy.declare("T1", "T1")
	hierarchy.known["C"] = true

	e := New(hierarchy, nil)
	n := e.CreateNode(ClassBound("C"))

	t0 := e.Registry().Intern("T0")
	t1 := e.Registry().Intern("T1")
	n.PropagateBatch([]*Type{t0, t1, t0})

	require.NoError(t, e.Run())
	require.ElementsMatch(t, []string{"T0"}, n.Types())
}

func TestNode_HasTypeName_Unknown(t *testing.T) {
	e := New(nil, nil)
	n := e.CreateNode(nil)
	require.False(t, n.HasTypeName("never-interned"))
}

func TestNode_TagAndMethod(t *testing.T) {
	e := New(nil, nil)
	n := e.CreateNode(nil)

	require.Equal(t, "", n.Tag())
	n.SetTag("pkg.Foo.bar")
	require.Equal(t, "pkg.Foo.bar", n.Tag())

	require.Equal(t, "", n.Method())
	n.SetMethod("pkg.Foo.bar()")
	require.Equal(t, "pkg.Foo.bar()", n.Method())
}

func TestNode_TagPropagatesToSatellites(t *testing.T) {
	e := New(nil, nil, WithTagging(true))
	n := e.CreateNode(nil)
	n.SetTag("X")

	require.Equal(t, "X[", n.ArrayItem().Tag())
	require.Equal(t, "X@", n.ClassValue().Tag())
}

func TestNode_NoTagWithoutOption(t *testing.T) {
	e := New(nil, nil)
	n := e.CreateNode(nil)
	n.SetTag("X")

	require.Equal(t, "", n.ArrayItem().Tag())
	require.Equal(t, "", n.ClassValue().Tag())
}

func TestNode_SizeAndFilter(t *testing.T) {
	e := New(nil, nil)
	n := e.CreateNode(nil)
	require.Equal(t, 0, n.Size())
	require.Nil(t, n.Filter())

	t0 := e.Registry().Intern("T0")
	n.Propagate(t0)
	require.NoError(t, e.Run())
	require.Equal(t, 1, n.Size())
}
