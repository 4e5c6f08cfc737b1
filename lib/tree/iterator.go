package tree

import (
	"github.com/benz9527/xtree/lib/infra"
)

// InOrderIterator walks the keys in ascending order through the
// parent links, without an auxiliary stack. Once Next returns false
// the iterator starts over from the minimum on the following call.
// Mutating the tree invalidates the iterator.
//
//	for it := tree.Iterator(); it.Next(); {
//		_ = it.Key()
//	}
type InOrderIterator[K infra.OrderedKey] struct {
	tree    *bst[K]
	cur     nodeID
	started bool
}

func (it *InOrderIterator[K]) Next() bool {
	if !it.started {
		it.started = true
		it.cur = it.tree.minimum(it.tree.root)
	} else if it.cur != nilID {
		it.cur = it.tree.successor(it.cur)
	}
	if it.cur == nilID {
		it.started = false
		return false
	}
	return true
}

// Key must only be called after Next returned true.
func (it *InOrderIterator[K]) Key() K {
	if it.cur == nilID {
		panic( /* debug assertion */ "[iterator] key read out of the iteration")
	}
	return it.tree.key(it.cur)
}

// Node returns a view of the current node.
func (it *InOrderIterator[K]) Node() Node[K] {
	return it.tree.view(it.cur)
}
