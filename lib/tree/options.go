package tree

import (
	"github.com/benz9527/xtree/lib/xlog"
)

type treeOptions struct {
	logger         xlog.XLogger
	capacity       int
	isStatsEnabled bool
}

type TreeOption func(*treeOptions)

// WithTreeLogger traces rotations and fixup cases at debug level.
func WithTreeLogger(logger xlog.XLogger) TreeOption {
	return func(o *treeOptions) {
		o.logger = logger
	}
}

// WithTreeStats records operation counters with the global otel meter provider.
func WithTreeStats() TreeOption {
	return func(o *treeOptions) {
		o.isStatsEnabled = true
	}
}

// WithTreeCapacity pre-allocates the node arena.
func WithTreeCapacity(capacity int) TreeOption {
	return func(o *treeOptions) {
		o.capacity = capacity
	}
}

func (k Kind) treeName() string {
	if k == RedBlack {
		return "rbtree"
	}
	return "avltree"
}
