package tree

import (
	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
	"go.uber.org/zap"
)

// bst carries the structure shared by both balancing strategies:
// the node arena, the root and the primitives over index links.
// The AVL and red-black engines embed it and add their own
// insert/delete rebalancing on top.
type bst[K infra.OrderedKey] struct {
	arena[K]
	root   nodeID
	kind   Kind
	logger xlog.XLogger
	stats  *treeStats
}

func newBST[K infra.OrderedKey](kind Kind, opts ...TreeOption) *bst[K] {
	o := &treeOptions{}
	for _, opt := range opts {
		opt(o)
	}
	t := &bst[K]{
		arena: newArena[K](o.capacity),
		kind:  kind,
	}
	if o.logger != nil {
		t.logger = o.logger.Named(kind.treeName())
	}
	if o.isStatsEnabled {
		t.stats = newTreeStats(kind)
	}
	return t
}

func (t *bst[K]) Kind() Kind {
	return t.kind
}

func (t *bst[K]) Len() int64 {
	return t.count
}

func (t *bst[K]) IsEmpty() bool {
	return t.root == nilID
}

func (t *bst[K]) Root() Node[K] {
	return t.view(t.root)
}

func (t *bst[K]) debug(msg string, fields ...zap.Field) {
	if t.logger == nil {
		return
	}
	t.logger.Debug(msg, fields...)
}

func (t *bst[K]) key(id nodeID) K {
	return t.nodes[id].key
}

func (t *bst[K]) left(id nodeID) nodeID {
	return t.nodes[id].left
}

func (t *bst[K]) right(id nodeID) nodeID {
	return t.nodes[id].right
}

func (t *bst[K]) parent(id nodeID) nodeID {
	return t.nodes[id].parent
}

func (t *bst[K]) child(id nodeID, dir RBDirection) nodeID {
	switch dir {
	case Left:
		return t.nodes[id].left
	case Right:
		return t.nodes[id].right
	default:
	}
	panic( /* debug assertion */ "[bst] child direction must be left or right")
}

// direction reports the side of the parent the node hangs on.
// A root, or a parent holding the same key, means the links are corrupted.
func (t *bst[K]) direction(id nodeID) RBDirection {
	p := t.parent(id)
	if p == nilID {
		panic( /* debug assertion */ "[bst] root node has no direction to parent")
	}
	if t.key(p) == t.key(id) {
		panic( /* debug assertion */ "[bst] parent and child hold the same key")
	}
	switch id {
	case t.left(p):
		return Left
	case t.right(p):
		return Right
	default:
	}
	panic( /* debug assertion */ "[bst] parent does not link back to the child")
}

func (t *bst[K]) sibling(id nodeID) nodeID {
	p := t.parent(id)
	if p == nilID {
		return nilID
	}
	if t.left(p) == id {
		return t.right(p)
	}
	return t.left(p)
}

func (t *bst[K]) isLeaf(id nodeID) bool {
	return id != nilID && t.left(id) == nilID && t.right(id) == nilID
}

// onlyChild returns the single child of a node with at most one child.
func (t *bst[K]) onlyChild(id nodeID) nodeID {
	if l := t.left(id); l != nilID {
		return l
	}
	return t.right(id)
}

func (t *bst[K]) minimum(id nodeID) nodeID {
	if id == nilID {
		return nilID
	}
	for t.left(id) != nilID {
		id = t.left(id)
	}
	return id
}

func (t *bst[K]) maximum(id nodeID) nodeID {
	if id == nilID {
		return nilID
	}
	for t.right(id) != nilID {
		id = t.right(id)
	}
	return id
}

func (t *bst[K]) successor(id nodeID) nodeID {
	if r := t.right(id); r != nilID {
		return t.minimum(r)
	}
	p := t.parent(id)
	for p != nilID && t.right(p) == id {
		id, p = p, t.parent(p)
	}
	return p
}

// subtreeHeight recomputes the height from the children, NIL is 0.
func (t *bst[K]) subtreeHeight(id nodeID) uint32 {
	if id == nilID {
		return 0
	}
	return max(t.subtreeHeight(t.left(id)), t.subtreeHeight(t.right(id))) + 1
}

// nodeHeight is O(1) for AVL nodes thanks to the cached height.
func (t *bst[K]) nodeHeight(id nodeID) uint32 {
	if t.kind == AVL {
		return t.nodes[id].aux
	}
	return t.subtreeHeight(id)
}

func (t *bst[K]) nodeColor(id nodeID) RBColor {
	if t.kind == RedBlack {
		return RBColor(t.nodes[id].aux)
	}
	return Black
}

func (t *bst[K]) countLeaves(id nodeID) uint32 {
	if id == nilID {
		return 0
	}
	if t.isLeaf(id) {
		return 1
	}
	return t.countLeaves(t.left(id)) + t.countLeaves(t.right(id))
}

// search returns the node holding the key, or NIL.
func (t *bst[K]) search(key K) nodeID {
	for aux := t.root; aux != nilID; {
		switch res := infra.Compare(key, t.key(aux)); {
		case res == 0:
			return aux
		case res < 0:
			aux = t.left(aux)
		default:
			aux = t.right(aux)
		}
	}
	return nilID
}

// searchInsertPoint returns the node holding the key with found true,
// or the would-be parent of the key with found false.
// The parent is NIL for an empty tree.
func (t *bst[K]) searchInsertPoint(key K) (p nodeID, found bool) {
	for aux := t.root; aux != nilID; {
		res := infra.Compare(key, t.key(aux))
		if res == 0 {
			return aux, true
		}
		p = aux
		if res < 0 {
			aux = t.left(aux)
		} else {
			aux = t.right(aux)
		}
	}
	return p, false
}

// attach links a new leaf under p, or makes it the root if p is NIL.
func (t *bst[K]) attach(p nodeID, key K, aux uint32) nodeID {
	id := t.allocate(key, aux)
	t.nodes[id].parent = p
	switch {
	case p == nilID:
		t.root = id
	case infra.Compare(key, t.key(p)) < 0:
		t.nodes[p].left = id
	default:
		t.nodes[p].right = id
	}
	return id
}

// detach unlinks a node with at most one child and releases its slot.
// The child, if any, takes the place of the node, becoming the root
// when the node was the root.
func (t *bst[K]) detach(id nodeID) {
	l, r := t.left(id), t.right(id)
	if l != nilID && r != nilID {
		panic( /* debug assertion */ "[bst] detach node with two children")
	}
	c, p := t.onlyChild(id), t.parent(id)
	if c != nilID {
		t.nodes[c].parent = p
	}
	switch {
	case p == nilID:
		t.root = c
	case t.left(p) == id:
		t.nodes[p].left = c
	default:
		t.nodes[p].right = c
	}
	t.release(id)
}

/*
rotate promotes c into the position of its parent p.

	     |                         |
	     P                         C
	    / \     rotate(P, C)      / \
	   C   R    ============>    L   P
	  / \                           / \
	 L   I                         I   R

Right child is the mirror image. Only the links are rewritten,
heights and colors are left to the caller.
*/
func (t *bst[K]) rotate(p, c nodeID) {
	if p == nilID || c == nilID || t.parent(c) != p {
		// impossible run to here
		panic( /* debug assertion */ "[bst] rotate on a non parent-child pair")
	}

	dir, g := t.direction(c), t.parent(p)
	if g != nilID {
		if t.left(g) == p {
			t.nodes[g].left = c
		} else {
			t.nodes[g].right = c
		}
	}

	var inner nodeID
	switch dir {
	case Left:
		inner = t.right(c)
		t.nodes[p].left = inner
		t.nodes[c].right = p
	case Right:
		inner = t.left(c)
		t.nodes[p].right = inner
		t.nodes[c].left = p
	default:
	}
	if inner != nilID {
		t.nodes[inner].parent = p
	}
	t.nodes[p].parent = c
	t.nodes[c].parent = g
	if g == nilID {
		t.root = c
	}
}

func (t *bst[K]) Search(key K) bool {
	return t.search(key) != nilID
}

func (t *bst[K]) Height() uint32 {
	return t.nodeHeight(t.root)
}

func (t *bst[K]) CountLeaves() uint32 {
	return t.countLeaves(t.root)
}

func (t *bst[K]) Min() (K, bool) {
	if id := t.minimum(t.root); id != nilID {
		return t.key(id), true
	}
	var zero K
	return zero, false
}

func (t *bst[K]) Max() (K, bool) {
	if id := t.maximum(t.root); id != nilID {
		return t.key(id), true
	}
	var zero K
	return zero, false
}

func (t *bst[K]) InOrder() []K {
	res := make([]K, 0, t.count)
	t.Foreach(func(_ int64, key K) bool {
		res = append(res, key)
		return true
	})
	return res
}

// Foreach walks the keys in ascending order until action returns false.
func (t *bst[K]) Foreach(action func(idx int64, key K) bool) {
	aux := t.root
	if aux == nilID {
		return
	}

	stack := make([]nodeID, 0, min(t.count, 64))
	defer func() {
		clear(stack)
	}()

	for ; aux != nilID; aux = t.left(aux) {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size := len(stack); size > 0; size = len(stack) {
		if aux = stack[size-1]; !action(idx, t.key(aux)) {
			return
		}
		idx++
		stack = stack[:size-1]
		for aux = t.right(aux); aux != nilID; aux = t.left(aux) {
			stack = append(stack, aux)
		}
	}
}

func (t *bst[K]) Iterator() *InOrderIterator[K] {
	return &InOrderIterator[K]{tree: t}
}

// Release drops every node, the tree is empty and reusable afterward.
func (t *bst[K]) Release() {
	if t.count > 0 {
		t.stats.RecordNodeCount(-t.count)
	}
	t.reset()
	t.root = nilID
}
