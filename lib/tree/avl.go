package tree

import (
	"github.com/benz9527/xtree/lib/infra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// AVL tree properties:
// p1. BST order, the in-order sequence is strictly increasing.
// p2. For every node |height(left) - height(right)| < 2,
//   an absent subtree has height 0.
// The height of each node is cached in the arena aux field,
// a leaf is 1.

type avlTree[K infra.OrderedKey] struct {
	*bst[K]
}

func NewAVLTree[K infra.OrderedKey](opts ...TreeOption) Tree[K] {
	return &avlTree[K]{
		bst: newBST[K](AVL, opts...),
	}
}

func (t *avlTree[K]) height(id nodeID) uint32 {
	return t.nodes[id].aux
}

func (t *avlTree[K]) updateHeight(id nodeID) {
	if id == nilID {
		return
	}
	t.nodes[id].aux = max(t.height(t.left(id)), t.height(t.right(id))) + 1
}

// balanceFactor is positive when the right subtree is higher.
func (t *avlTree[K]) balanceFactor(id nodeID) int64 {
	return int64(t.height(t.right(id))) - int64(t.height(t.left(id)))
}

func (t *avlTree[K]) Insert(key K) bool {
	p, found := t.searchInsertPoint(key)
	if found {
		t.stats.IncreaseInsertCount(false)
		return false
	}
	t.attach(p, key, 1)
	t.rebalance(p)
	t.stats.IncreaseInsertCount(true)
	return true
}

func (t *avlTree[K]) Delete(key K) (K, bool) {
	z := t.search(key)
	if z == nilID {
		t.stats.IncreaseDeleteCount(false)
		var zero K
		return zero, false
	}
	res := t.key(z)
	t.remove(z)
	t.stats.IncreaseDeleteCount(true)
	return res, true
}

// remove only ever unlinks nodes with at most one child.
// A node with two children takes over the key of its successor,
// and the successor node is removed instead.
func (t *avlTree[K]) remove(z nodeID) {
	if l, r := t.left(z), t.right(z); l != nilID && r != nilID {
		s := t.minimum(r)
		succKey := t.key(s)
		t.remove(s)
		t.nodes[z].key = succKey
		return
	}

	start := t.parent(z)
	if start == nilID {
		start = t.onlyChild(z)
	}
	t.detach(z)
	t.rebalance(start)
}

/*
rebalance walks from x up to the root, refreshing every height on the
way. It never stops at the first balanced ancestor, a height change
below may still unbalance a node further up.

	RR: rotate(X, R)            RL: rotate(R, RL), rotate(X, RL)
	  X                           X
	   \          R                \          RL
	    R   =>   / \                R   =>   /  \
	     \      X   RR             /        X    R
	      RR                      RL

LL and LR are the mirror images.
*/
func (t *avlTree[K]) rebalance(x nodeID) {
	for x != nilID {
		t.updateHeight(x)
		bf := t.balanceFactor(x)
		if bf >= -1 && bf <= 1 {
			x = t.parent(x)
			continue
		}

		var rotationCase string
		if bf > 1 {
			r := t.right(x)
			if t.height(t.right(r)) >= t.height(t.left(r)) {
				rotationCase = "RR"
				t.rotate(x, r)
			} else {
				rotationCase = "RL"
				rl := t.left(r)
				t.rotate(r, rl)
				t.rotate(x, rl)
				t.updateHeight(r)
			}
		} else {
			l := t.left(x)
			if t.height(t.left(l)) >= t.height(t.right(l)) {
				rotationCase = "LL"
				t.rotate(x, l)
			} else {
				rotationCase = "LR"
				lr := t.right(l)
				t.rotate(l, lr)
				t.rotate(x, lr)
				t.updateHeight(l)
			}
		}
		t.updateHeight(x)
		top := t.parent(x)
		t.updateHeight(top)
		t.stats.IncreaseRotationCount(rotationCase)
		t.debug("avltree rebalanced",
			zap.String("case", rotationCase),
			zap.Any("key", t.key(x)),
			zap.Any("newTop", t.key(top)),
		)
		x = t.parent(top)
	}
}

func (t *avlTree[K]) Validate() error {
	return multierr.Combine(
		OrderValidate[K](t),
		LinkValidate[K](t),
		AVLBalanceValidate[K](t),
	)
}

func (t *avlTree[K]) CheckValid() bool {
	return t.Validate() == nil
}
