package tree

import (
	"github.com/benz9527/xtree/lib/infra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// References:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.

type rbTree[K infra.OrderedKey] struct {
	*bst[K]
}

func NewRBTree[K infra.OrderedKey](opts ...TreeOption) Tree[K] {
	return &rbTree[K]{
		bst: newBST[K](RedBlack, opts...),
	}
}

func (t *rbTree[K]) color(id nodeID) RBColor {
	return RBColor(t.nodes[id].aux)
}

func (t *rbTree[K]) setColor(id nodeID, c RBColor) {
	if id == nilID {
		// NIL stays black.
		return
	}
	t.nodes[id].aux = uint32(c)
}

func (t *rbTree[K]) isRed(id nodeID) bool {
	return id != nilID && t.color(id) == Red
}

func (t *rbTree[K]) isBlack(id nodeID) bool {
	return !t.isRed(id)
}

func (t *rbTree[K]) fixup(fixupCase string, id nodeID) {
	t.stats.IncreaseFixupCount(fixupCase)
	t.debug("rbtree fixup", zap.String("case", fixupCase), zap.Any("key", t.key(id)))
}

// New nodes are inserted red, then insertFixup repairs a red-violation.
func (t *rbTree[K]) Insert(key K) bool {
	p, found := t.searchInsertPoint(key)
	if found {
		t.stats.IncreaseInsertCount(false)
		return false
	}
	x := t.attach(p, key, uint32(Red))
	t.insertFixup(x)
	t.stats.IncreaseInsertCount(true)
	return true
}

// i1: X is the root, paint it black.
// i2: P is black, nothing is violated.
// i3: P is a red root, paint it black.
// i4: P and U are red, push the red up to G and continue from G.
// i5: X is the inner grandchild (LR/RL), rotate it over P to get
// the outer shape and continue from P.
// i6: X is the outer grandchild (LL/RR), rotate P over G and swap
// their colors.
func (t *rbTree[K]) insertFixup(x nodeID) {
	for {
		p := t.parent(x)
		if /* i1 */ p == nilID {
			t.setColor(x, Black)
			return
		}
		if /* i2 */ t.isBlack(p) {
			return
		}
		g := t.parent(p)
		if /* i3 */ g == nilID {
			t.setColor(p, Black)
			return
		}
		if t.isRed(g) {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] red parent with red grandparent")
		}

		if u := t.sibling(p); /* i4 */ t.isRed(u) {
			t.fixup("i4", x)
			t.setColor(p, Black)
			t.setColor(u, Black)
			t.setColor(g, Red)
			x = g
			continue
		}

		if /* i5 */ t.direction(x) != t.direction(p) {
			t.fixup("i5", x)
			t.stats.IncreaseRotationCount("i5")
			t.rotate(p, x)
			x = p
			continue
		}

		/* i6 */
		t.fixup("i6", x)
		t.stats.IncreaseRotationCount("i6")
		t.rotate(g, p)
		t.setColor(p, Black)
		t.setColor(g, Red)
		return
	}
}

func (t *rbTree[K]) Delete(key K) (K, bool) {
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

// r1: Z has two children, it takes over the successor key and the
// successor node is removed instead.
// r2: Z is a red leaf, detach directly.
// r3: Z is black with a unique red child, the child is painted black
// and takes Z's place.
// r4: Z is a black leaf, the black-height of its path has to be
// repaired before Z is detached.
func (t *rbTree[K]) remove(z nodeID) {
	if /* r1 */ l, r := t.left(z), t.right(z); l != nilID && r != nilID {
		s := t.minimum(r)
		succKey := t.key(s)
		t.remove(s)
		t.nodes[z].key = succKey
		return
	}

	c := t.onlyChild(z)
	if t.isRed(z) {
		if /* r2 */ c == nilID {
			t.detach(z)
			return
		}
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] red node with a unique child")
	}
	if /* r3 */ c != nilID {
		if t.isBlack(c) {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] black node with a unique black child")
		}
		t.setColor(c, Black)
		t.detach(z)
		return
	}
	/* r4 */
	if z != t.root {
		t.deleteFixup(z)
	}
	t.detach(z)
}

// x carries an extra black, S is its sibling, P the parent.
// Near nephew is the child of S on x's side, far nephew the other one.
// d1: S is red, rotate S over P, swap their colors and recompute S.
// d2: S and both nephews are black, paint S red. The extra black
// moves to P, it is absorbed if P is red.
// d3: near nephew red and far nephew black, rotate the near nephew
// over S and swap their colors. The old S is now the red far nephew.
// d4: far nephew red, rotate S over P. S takes P's color, P and the
// far nephew are painted black.
func (t *rbTree[K]) deleteFixup(x nodeID) {
	for x != t.root {
		p, dir := t.parent(x), t.direction(x)
		s := t.sibling(x)
		if s == nilID {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] double black node without sibling")
		}

		if /* d1 */ t.isRed(s) {
			t.fixup("d1", x)
			t.stats.IncreaseRotationCount("d1")
			t.setColor(s, Black)
			t.setColor(p, Red)
			t.rotate(p, s)
			s = t.sibling(x)
		}

		near, far := t.child(s, dir), t.child(s, dir.Opposite())
		if /* d2 */ t.isBlack(near) && t.isBlack(far) {
			t.fixup("d2", x)
			t.setColor(s, Red)
			if t.isBlack(p) {
				x = p
				continue
			}
			t.setColor(p, Black)
			return
		}

		if /* d3 */ t.isBlack(far) {
			t.fixup("d3", x)
			t.stats.IncreaseRotationCount("d3")
			t.rotate(s, near)
			t.setColor(near, Black)
			t.setColor(s, Red)
			s, far = near, s
		}

		/* d4 */
		t.fixup("d4", x)
		t.stats.IncreaseRotationCount("d4")
		t.setColor(s, t.color(p))
		t.setColor(p, Black)
		t.setColor(far, Black)
		t.rotate(p, s)
		return
	}
}

func (t *rbTree[K]) Validate() error {
	return multierr.Combine(
		OrderValidate[K](t),
		LinkValidate[K](t),
		RedViolationValidate[K](t),
		BlackViolationValidate[K](t),
	)
}

func (t *rbTree[K]) CheckValid() bool {
	return t.Validate() == nil
}
