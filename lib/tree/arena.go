package tree

// nodeID addresses a node in the tree arena, 0 is the NIL sentinel.
type nodeID uint32

const nilID nodeID = 0

// node links are plain arena indices. aux is the cached height
// of an AVL node or the RBColor of a red-black node.
type node[K any] struct {
	key    K
	left   nodeID
	right  nodeID
	parent nodeID
	aux    uint32
}

// arena owns every node of a tree. Slot 0 is the shared NIL node
// and must stay zeroed, so NIL reads as height 0 and Black.
// Released slots are chained through left and reused first.
//
// A *node must not be held across allocate, append may move
// the backing array.
type arena[K any] struct {
	nodes []node[K]
	free  nodeID
	count int64
}

func newArena[K any](capacity int) arena[K] {
	if capacity < 0 {
		capacity = 0
	}
	return arena[K]{
		nodes: make([]node[K], 1, capacity+1),
	}
}

func (a *arena[K]) allocate(key K, aux uint32) nodeID {
	a.count++
	if a.free != nilID {
		id := a.free
		n := &a.nodes[id]
		a.free = n.left
		*n = node[K]{key: key, aux: aux}
		return id
	}
	if uint64(len(a.nodes)) > uint64(^nodeID(0)) {
		panic( /* debug assertion */ "[arena] node id space exhausted")
	}
	a.nodes = append(a.nodes, node[K]{key: key, aux: aux})
	return nodeID(len(a.nodes) - 1)
}

func (a *arena[K]) release(id nodeID) {
	if id == nilID {
		panic( /* debug assertion */ "[arena] release the NIL node")
	}
	a.nodes[id] = node[K]{left: a.free}
	a.free = id
	a.count--
}

func (a *arena[K]) reset() {
	clear(a.nodes)
	a.nodes = a.nodes[:1]
	a.free = nilID
	a.count = 0
}

func (a *arena[K]) at(id nodeID) *node[K] {
	return &a.nodes[id]
}
