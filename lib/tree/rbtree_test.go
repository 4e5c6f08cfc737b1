package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type rbSeed struct {
	key    int
	color  RBColor
	parent int
	dir    RBDirection
}

// seedRBTree builds a red-black tree node by node, bypassing the
// insert fixup. Parents must come before their children.
func seedRBTree(seeds ...rbSeed) *rbTree[int] {
	tree := NewRBTree[int]().(*rbTree[int])
	ids := make(map[int]nodeID, len(seeds))
	for _, s := range seeds {
		id := tree.allocate(s.key, uint32(s.color))
		ids[s.key] = id
		if s.dir == Root {
			tree.root = id
			continue
		}
		p := ids[s.parent]
		tree.nodes[id].parent = p
		if s.dir == Left {
			tree.nodes[p].left = id
		} else {
			tree.nodes[p].right = id
		}
	}
	return tree
}

// fixedRBTree:
//
//	        8b
//	     /      \
//	   2b        12b
//	  /  \      /   \
//	 1b   5b   10r   20b
//	          /  \
//	         9b   11b
func fixedRBTree() *rbTree[int] {
	return seedRBTree(fixedSeeds()...)
}

func rbFrom(keys ...int) *rbTree[int] {
	tree := NewRBTree[int]().(*rbTree[int])
	for _, k := range keys {
		tree.Insert(k)
	}
	return tree
}

func TestRBTree_InsertSequence(t *testing.T) {
	keys := []int{12, 1, 9, 2, 0, 11, 7, 19, 4, 15, 18, 5, 14, 13, 10, 16, 6, 3, 8, 17}
	tree := rbFrom(keys...)
	require.True(t, tree.CheckValid())
	expected := make([]int, 0, 20)
	for i := 0; i < 20; i++ {
		expected = append(expected, i)
	}
	require.Equal(t, expected, tree.InOrder())
	require.Equal(t, Black, tree.Root().Color())
}

func TestRBTree_InsertCases(t *testing.T) {
	testcases := []struct {
		name    string
		prepare []int
		key     int
	}{
		{"RR uncle red", []int{1, -1, 3}, 4},
		{"RR uncle black", []int{5, 4, 9, 7, 6}, 10},
		{"LL uncle red", []int{7, 4, 8}, 3},
		{"LL uncle black", []int{11, 12, 4, 2, 9, 1, 10}, 0},
		{"LR uncle red", []int{1, 2, 5}, 3},
		{"LR uncle black", []int{4, 2, 1, 10, 8, 11}, 9},
		{"RL uncle red", []int{2, 1, 4, 3, 7, 5, 9}, 8},
		{"RL uncle black", []int{2, 1, 4, 3, 8, 6, 5, 7, 10}, 9},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := rbFrom(tc.prepare...)
			require.True(tt, tree.CheckValid())
			checkInsert(tt, tree, tc.key, tree.InOrder())
		})
	}
}

func TestRBTree_InsertStraightShape(t *testing.T) {
	tree := rbFrom(1, 2, 3)
	root := tree.Root()
	require.Equal(t, 2, root.Key())
	require.Equal(t, Black, root.Color())
	require.Equal(t, Red, root.Left().Color())
	require.Equal(t, Red, root.Right().Color())
}

func TestRBTree_DeleteFixedTree(t *testing.T) {
	tree := fixedRBTree()
	require.NoError(t, tree.Validate())

	res, ok := tree.Delete(2)
	require.True(t, ok)
	require.Equal(t, 2, res)
	require.True(t, tree.CheckValid())
	require.Equal(t, []int{1, 5, 8, 9, 10, 11, 12, 20}, tree.InOrder())

	//	        10b
	//	      /     \
	//	    8b       12b
	//	   /  \     /   \
	//	  5b   9b  11b   20b
	//	 /
	//	1r
	root := tree.Root()
	require.Equal(t, 10, root.Key())
	require.Equal(t, 8, root.Left().Key())
	require.Equal(t, 5, root.Left().Left().Key())
	require.Equal(t, 1, root.Left().Left().Left().Key())
	require.Equal(t, Red, root.Left().Left().Left().Color())
	require.Equal(t, 12, root.Right().Key())
	require.Equal(t, 11, root.Right().Left().Key())
}

func TestRBTree_DeleteCases(t *testing.T) {
	testcases := []struct {
		name  string
		seeds []rbSeed
		key   int
	}{
		{
			name:  "black root only",
			seeds: []rbSeed{{8, Black, 0, Root}},
			key:   8,
		},
		{
			name: "black with two children",
			seeds: []rbSeed{
				{8, Black, 0, Root},
				{2, Black, 8, Left},
				{12, Black, 8, Right},
			},
			key: 8,
		},
		{
			name: "red leaf",
			seeds: []rbSeed{
				{8, Black, 0, Root},
				{2, Red, 8, Left},
			},
			key: 2,
		},
		{
			name: "black with a unique red child",
			seeds: []rbSeed{
				{8, Black, 0, Root},
				{2, Black, 8, Left},
				{12, Black, 8, Right},
				{20, Red, 12, Right},
			},
			key: 12,
		},
		{
			name: "black leaf with red sibling",
			seeds: []rbSeed{
				{8, Black, 0, Root},
				{2, Black, 8, Left},
				{12, Red, 8, Right},
				{10, Black, 12, Left},
				{20, Black, 12, Right},
			},
			key: 2,
		},
		{name: "black leaf in fixed tree", seeds: fixedSeeds(), key: 20},
		{name: "black leaf with red parent", seeds: fixedSeeds(), key: 9},
		{
			name: "black leaf with black sibling and black parent",
			seeds: []rbSeed{
				{8, Black, 0, Root},
				{2, Black, 8, Left},
				{12, Black, 8, Right},
			},
			key: 2,
		},
		{
			name: "black leaf with near red nephew",
			seeds: []rbSeed{
				{8, Black, 0, Root},
				{2, Black, 8, Left},
				{12, Black, 8, Right},
				{10, Red, 12, Left},
			},
			key: 2,
		},
		{
			name: "black leaf with far red nephew",
			seeds: []rbSeed{
				{8, Black, 0, Root},
				{2, Black, 8, Left},
				{12, Black, 8, Right},
				{20, Red, 12, Right},
			},
			key: 2,
		},
		{
			name: "mirrored far red nephew",
			seeds: []rbSeed{
				{8, Black, 0, Root},
				{2, Black, 8, Left},
				{12, Black, 8, Right},
				{1, Red, 2, Left},
			},
			key: 12,
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := seedRBTree(tc.seeds...)
			require.NoError(tt, tree.Validate())
			checkDelete(tt, tree, tc.key)
		})
	}
}

func fixedSeeds() []rbSeed {
	return []rbSeed{
		{8, Black, 0, Root},
		{2, Black, 8, Left},
		{12, Black, 8, Right},
		{1, Black, 2, Left},
		{5, Black, 2, Right},
		{10, Red, 12, Left},
		{20, Black, 12, Right},
		{9, Black, 10, Left},
		{11, Black, 10, Right},
	}
}

func TestRBTree_InvariantPanics(t *testing.T) {
	// A black node with a unique black child breaks the black-height.
	tree := seedRBTree(
		rbSeed{8, Black, 0, Root},
		rbSeed{2, Black, 8, Left},
		rbSeed{1, Black, 2, Left},
	)
	require.Error(t, tree.Validate())
	require.Panics(t, func() {
		tree.Delete(2)
	})

	tree = seedRBTree(
		rbSeed{8, Black, 0, Root},
		rbSeed{2, Red, 8, Left},
		rbSeed{1, Red, 2, Left},
	)
	require.ErrorIs(t, RedViolationValidate[int](tree), ErrRedViolation)
	require.Panics(t, func() {
		tree.Delete(2)
	})
}
