package tree

import (
	"errors"
	"fmt"

	"github.com/benz9527/xtree/lib/infra"
)

var (
	ErrOrderViolation      = errors.New("in-order sequence is not strictly increasing")
	ErrLinkViolation       = errors.New("parent link does not match the child link")
	ErrAVLBalanceViolation = errors.New("avltree balance violation")
	ErrAVLHeightViolation  = errors.New("avltree cached height mismatch")
	ErrRedRootViolation    = errors.New("rbtree root is red")
	ErrRedViolation        = errors.New("rbtree red violation")
	ErrBlackViolation      = errors.New("rbtree black violation")
)

// Tree rule validation utilities, they only rely on the exported
// Node views so any Tree can be checked from outside.

// OrderValidate checks the BST order by an in-order traversal.
func OrderValidate[K infra.OrderedKey](tree Tree[K]) (err error) {
	var prev K
	tree.Foreach(func(idx int64, key K) bool {
		if idx > 0 && prev >= key {
			err = fmt.Errorf("%w: %v is followed by %v", ErrOrderViolation, prev, key)
			return false
		}
		prev = key
		return true
	})
	return err
}

// LinkValidate checks that the root has no parent and every child
// links back to its parent.
func LinkValidate[K infra.OrderedKey](tree Tree[K]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if root.Parent() != nil {
		return fmt.Errorf("%w: root %v has a parent", ErrLinkViolation, root.Key())
	}
	stack := []Node[K]{root}
	for len(stack) > 0 {
		aux := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range [2]Node[K]{aux.Left(), aux.Right()} {
			if c == nil {
				continue
			}
			if p := c.Parent(); p == nil || p.Key() != aux.Key() {
				return fmt.Errorf("%w: %v under %v", ErrLinkViolation, c.Key(), aux.Key())
			}
			stack = append(stack, c)
		}
	}
	return nil
}

// AVLBalanceValidate checks |height(left) - height(right)| < 2 for
// every node and that each reported height matches the recomputed one.
func AVLBalanceValidate[K infra.OrderedKey](tree Tree[K]) error {
	_, err := avlHeight[K](tree.Root())
	return err
}

func avlHeight[K infra.OrderedKey](n Node[K]) (uint32, error) {
	if n == nil {
		return 0, nil
	}
	lh, err := avlHeight[K](n.Left())
	if err != nil {
		return 0, err
	}
	rh, err := avlHeight[K](n.Right())
	if err != nil {
		return 0, err
	}
	if lh > rh+1 || rh > lh+1 {
		return 0, fmt.Errorf("%w: %v has subtree heights %d and %d", ErrAVLBalanceViolation, n.Key(), lh, rh)
	}
	h := max(lh, rh) + 1
	if n.Height() != h {
		return 0, fmt.Errorf("%w: %v reports %d, actual %d", ErrAVLHeightViolation, n.Key(), n.Height(), h)
	}
	return h, nil
}

// RedViolationValidate checks the root is black and no red node
// has a red child.
func RedViolationValidate[K infra.OrderedKey](tree Tree[K]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}
	if root.Color() == Red {
		return fmt.Errorf("%w: %v", ErrRedRootViolation, root.Key())
	}

	stack := make([]Node[K], 0, 32)
	defer func() {
		clear(stack)
	}()
	for aux := root; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		if aux.Color() == Red {
			if l, r := aux.Left(), aux.Right(); (l != nil && l.Color() == Red) || (r != nil && r.Color() == Red) {
				return fmt.Errorf("%w: red node %v has a red child", ErrRedViolation, aux.Key())
			}
		}
		stack = stack[:size-1]
		for aux = aux.Right(); aux != nil; aux = aux.Left() {
			stack = append(stack, aux)
		}
	}
	return nil
}

// BlackViolationValidate checks every path from the root to a NIL
// node goes through the same number of black nodes, NIL counts 1.
func BlackViolationValidate[K infra.OrderedKey](tree Tree[K]) error {
	_, err := blackHeight[K](tree.Root())
	return err
}

func blackHeight[K infra.OrderedKey](n Node[K]) (int, error) {
	if n == nil {
		return 1, nil
	}
	lh, err := blackHeight[K](n.Left())
	if err != nil {
		return 0, err
	}
	rh, err := blackHeight[K](n.Right())
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("%w: %v has black-heights %d and %d", ErrBlackViolation, n.Key(), lh, rh)
	}
	if n.Color() == Black {
		lh++
	}
	return lh, nil
}
