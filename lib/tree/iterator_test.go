package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInOrderIterator(t *testing.T) {
	for _, kind := range treeKinds {
		tree := New[int](kind)
		for _, k := range []int{50, 20, 80, 10, 30, 70, 90, 25} {
			tree.Insert(k)
		}
		it := tree.Iterator()
		keys := make([]int, 0, 8)
		for it.Next() {
			keys = append(keys, it.Key())
			require.Equal(t, it.Key(), it.Node().Key())
		}
		require.Equal(t, tree.InOrder(), keys)
		require.Panics(t, func() {
			it.Key()
		})

		// Restarts from the minimum once exhausted.
		require.True(t, it.Next())
		require.Equal(t, 10, it.Key())
	}
}
