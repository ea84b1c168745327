package logger

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_CreatesAncestorChain(t *testing.T) {
	leaf, err := Get("chain.b.c")
	require.NoError(t, err)

	mid := leaf.Parent()
	require.NotNil(t, mid)
	top := mid.Parent()
	require.NotNil(t, top)

	assert.Same(t, Root(), top.Parent())
	assert.Nil(t, Root().Parent())

	assert.Equal(t, "", Root().FullName())
	assert.Equal(t, "chain", top.FullName())
	assert.Equal(t, "chain.b", mid.FullName())
	assert.Equal(t, "chain.b.c", leaf.FullName())
	assert.Equal(t, "c", leaf.Name())

	child, ok := top.Child("b")
	require.True(t, ok)
	assert.Same(t, mid, child)

	again, err := Get("chain.b.c")
	require.NoError(t, err)
	assert.Same(t, leaf, again)

	viaParent, err := Get("chain.b")
	require.NoError(t, err)
	assert.Same(t, mid, viaParent)
}

func TestGet_EmptyNameIsRoot(t *testing.T) {
	l, err := Get("")
	require.NoError(t, err)
	assert.Same(t, Root(), l)
	assert.True(t, l.IsRoot())
}

func TestGet_InvalidNames(t *testing.T) {
	for _, name := range []string{".c", "a.", "a..d", "invalid..x.y"} {
		t.Run(name, func(t *testing.T) {
			l, err := Get(name)
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.Nil(t, l)
		})
	}

	_, created := Root().Child("invalid")
	assert.False(t, created, "a rejected name must not register any ancestor")

	assert.Panics(t, func() { MustGet("a.") })
}

func TestNewDetached(t *testing.T) {
	a1, err := NewDetached("detached-a")
	require.NoError(t, err)
	a2, err := NewDetached("detached-a")
	require.NoError(t, err)
	attached := MustGet("detached-a")

	assert.NotSame(t, a1, a2)
	assert.NotSame(t, a1, attached)
	assert.NotSame(t, a2, attached)

	assert.Nil(t, a1.Parent())
	assert.Empty(t, a1.Children())
	assert.True(t, a1.IsDetached())
	assert.Equal(t, "detached-a", a1.FullName())

	for _, name := range []string{"", ".x", "x.", "x..y"} {
		_, err := NewDetached(name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestChildren_IsACopy(t *testing.T) {
	parent := MustGet("copy")
	MustGet("copy.one")
	MustGet("copy.two")

	children := parent.Children()
	assert.Len(t, children, 2)
	delete(children, "one")
	children["three"] = Root()

	assert.Equal(t, []string{"one", "two"}, parent.ChildNames())
	_, ok := parent.Child("three")
	assert.False(t, ok)
}

func TestAttached(t *testing.T) {
	MustGet("listed.x")

	names := make([]string, 0)
	for _, l := range Attached() {
		names = append(names, l.FullName())
	}
	assert.Contains(t, names, "")
	assert.Contains(t, names, "listed")
	assert.Contains(t, names, "listed.x")
	assert.IsIncreasing(t, names)
}

func TestGet_ConcurrentCreation(t *testing.T) {
	const workers = 16
	results := make([]*Logger, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Overlapping paths race to create "race.shared"
			_ = MustGet(fmt.Sprintf("race.shared.w%d", i))
			results[i] = MustGet("race.shared")
		}(i)
	}
	wg.Wait()

	for _, l := range results {
		assert.Same(t, results[0], l)
	}
	assert.Len(t, results[0].ChildNames(), workers)
}
