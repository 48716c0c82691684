package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisjointSet_UnionFind(t *testing.T) {
	ds := NewDisjointSet(5)

	assert.True(t, ds.Union(0, 1))
	assert.True(t, ds.Union(1, 2))
	assert.False(t, ds.Union(0, 2), "already connected")

	assert.Equal(t, ds.Find(0), ds.Find(2))
	assert.NotEqual(t, ds.Find(0), ds.Find(3))
}

func TestDisjointSet_TransitiveClosure(t *testing.T) {
	// A~B and B~C implies {A, B, C} even without A~C.
	ds := NewDisjointSet(4)
	ds.Union(0, 1)
	ds.Union(1, 2)

	groups := ds.Groups()
	require.Len(t, groups, 1)
	for _, members := range groups {
		assert.ElementsMatch(t, []int{0, 1, 2}, members)
	}
}

func TestDisjointSet_SingletonsExcluded(t *testing.T) {
	ds := NewDisjointSet(3)
	assert.Empty(t, ds.Groups())

	ds.Union(0, 2)
	groups := ds.Groups()
	require.Len(t, groups, 1)
}
