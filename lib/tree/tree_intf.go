package tree

import (
	"io"
	"strings"

	"github.com/benz9527/xtree/lib/infra"
)

type RBColor uint8

const (
	Black RBColor = iota
	Red
)

func (c RBColor) String() string {
	switch c {
	case Black:
		return "Black"
	case Red:
		return "Red"
	default:
	}
	return "Unknown"
}

type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

func (d RBDirection) Opposite() RBDirection {
	return -d
}

func (d RBDirection) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Root:
		return "Root"
	default:
	}
	return "Unknown"
}

// Kind tags the balancing strategy behind a Tree.
type Kind uint8

const (
	AVL Kind = iota
	RedBlack
)

func (k Kind) String() string {
	switch k {
	case AVL:
		return "avl"
	case RedBlack:
		return "rb"
	default:
	}
	return "unknown"
}

// ParseKind accepts the menu letters ("A", "R") and the
// kind names ("avl", "rb", "redblack"), case-insensitively.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "avl":
		return AVL, true
	case "r", "rb", "redblack", "red-black":
		return RedBlack, true
	default:
	}
	return AVL, false
}

// Node is a read-only view of a tree node.
// A view is only valid until the next Insert, Delete or Release
// on the tree it was taken from.
type Node[K infra.OrderedKey] interface {
	Key() K
	Left() Node[K]
	Right() Node[K]
	Parent() Node[K]
	// Height of the subtree rooted at the node, leaves are 1.
	Height() uint32
	IsLeaf() bool
	Direction() RBDirection
	// Color always reports Black for AVL nodes.
	Color() RBColor
	// String is the node label in the structure rendering.
	String() string
	// Info is the node label in the verbose rendering.
	Info() string
}

type Tree[K infra.OrderedKey] interface {
	// Insert returns false if the key is already present.
	Insert(key K) bool
	// Delete returns the removed key, or false if it is absent.
	Delete(key K) (K, bool)
	Search(key K) bool
	Height() uint32
	CountLeaves() uint32
	InOrder() []K
	Foreach(action func(idx int64, key K) bool)
	Iterator() *InOrderIterator[K]
	Min() (K, bool)
	Max() (K, bool)
	IsEmpty() bool
	Len() int64
	Root() Node[K]
	Print(w io.Writer, verbose bool) error
	// CheckValid re-verifies every invariant of the tree in O(n).
	CheckValid() bool
	// Validate reports every violated invariant.
	Validate() error
	Kind() Kind
	Release()
}

// New returns an empty tree of the given kind.
func New[K infra.OrderedKey](kind Kind, opts ...TreeOption) Tree[K] {
	switch kind {
	case RedBlack:
		return NewRBTree[K](opts...)
	case AVL:
		fallthrough
	default:
	}
	return NewAVLTree[K](opts...)
}
