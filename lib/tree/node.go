package tree

import (
	"fmt"

	"github.com/benz9527/xtree/lib/infra"
)

var _ Node[int] = (*treeNode[int])(nil)

type treeNode[K infra.OrderedKey] struct {
	tree *bst[K]
	id   nodeID
}

func (t *bst[K]) view(id nodeID) Node[K] {
	if id == nilID {
		return nil
	}
	return &treeNode[K]{tree: t, id: id}
}

func (n *treeNode[K]) Key() K {
	return n.tree.key(n.id)
}

func (n *treeNode[K]) Left() Node[K] {
	return n.tree.view(n.tree.left(n.id))
}

func (n *treeNode[K]) Right() Node[K] {
	return n.tree.view(n.tree.right(n.id))
}

func (n *treeNode[K]) Parent() Node[K] {
	return n.tree.view(n.tree.parent(n.id))
}

func (n *treeNode[K]) Height() uint32 {
	return n.tree.nodeHeight(n.id)
}

func (n *treeNode[K]) IsLeaf() bool {
	return n.tree.isLeaf(n.id)
}

func (n *treeNode[K]) Direction() RBDirection {
	if n.tree.parent(n.id) == nilID {
		return Root
	}
	return n.tree.direction(n.id)
}

func (n *treeNode[K]) Color() RBColor {
	return n.tree.nodeColor(n.id)
}

func (n *treeNode[K]) String() string {
	return n.tree.structureInfo(n.id)
}

func (n *treeNode[K]) Info() string {
	return n.tree.verboseInfo(n.id)
}

// structureInfo labels a node in the structure grid,
// black red-black nodes get a "b" suffix.
func (t *bst[K]) structureInfo(id nodeID) string {
	if t.kind == RedBlack && t.nodeColor(id) == Black {
		return fmt.Sprintf("%vb", t.key(id))
	}
	return fmt.Sprint(t.key(id))
}

func (t *bst[K]) verboseInfo(id nodeID) string {
	if t.kind == RedBlack {
		return fmt.Sprintf("(Color: %s, Value: %v, Is Leaf: %t)", t.nodeColor(id), t.key(id), t.isLeaf(id))
	}
	return fmt.Sprintf("(Value: %v, Height: %d, Is Leaf: %t)", t.key(id), t.nodeHeight(id), t.isLeaf(id))
}
