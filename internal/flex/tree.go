package flex

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownNode is returned for a NodeID that was not created by the tree.
	ErrUnknownNode = errors.New("unknown node")
	// ErrInvalidTree is returned when the node graph or a style cannot be solved.
	ErrInvalidTree = errors.New("invalid tree")
)

// NodeID identifies a node inside one Tree.
type NodeID int

type node struct {
	style    Style
	measure  MeasureFunc
	children []NodeID
	parent   NodeID
	layout   Layout
	solved   bool

	// intrinsic width cache, indexed by MinContent and MaxContent
	intrinsic      [2]float64
	intrinsicValid [2]bool
}

// Tree is an arena of nodes. It is not safe for concurrent use; build one
// tree per document.
type Tree struct {
	nodes []node
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NewLeaf adds a childless node sized by measure. A nil measure gives an
// empty content box.
func (t *Tree) NewLeaf(style Style, measure MeasureFunc) NodeID {
	t.nodes = append(t.nodes, node{style: style, measure: measure, parent: -1})
	return NodeID(len(t.nodes) - 1)
}

// NewContainer adds a node owning children. Every child must exist and must
// not already have a parent.
func (t *Tree) NewContainer(style Style, children []NodeID) (NodeID, error) {
	id := NodeID(len(t.nodes))
	for _, c := range children {
		if !t.valid(c) {
			return -1, fmt.Errorf("child %d: %w", c, ErrUnknownNode)
		}
		if t.nodes[c].parent >= 0 {
			return -1, fmt.Errorf("child %d already attached to %d: %w", c, t.nodes[c].parent, ErrInvalidTree)
		}
	}
	for _, c := range children {
		t.nodes[c].parent = id
	}
	t.nodes = append(t.nodes, node{style: style, children: append([]NodeID(nil), children...), parent: -1})
	return id, nil
}

// Children returns the direct children of id in document order.
func (t *Tree) Children(id NodeID) ([]NodeID, error) {
	if !t.valid(id) {
		return nil, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return t.nodes[id].children, nil
}

// Style returns the style a node was created with.
func (t *Tree) Style(id NodeID) (Style, error) {
	if !t.valid(id) {
		return Style{}, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return t.nodes[id].style, nil
}

// Layout returns the solved box of id. Compute must have covered id.
func (t *Tree) Layout(id NodeID) (Layout, error) {
	if !t.valid(id) {
		return Layout{}, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	if !t.nodes[id].solved {
		return Layout{}, fmt.Errorf("node %d has no layout: %w", id, ErrInvalidTree)
	}
	return t.nodes[id].layout, nil
}

// Compute solves the subtree rooted at root. available.Width bounds the root
// like a containing block; available.Height is ignored because document
// height is unbounded. A MaxContent or MinContent width sizes the root to
// its intrinsic width instead.
func (t *Tree) Compute(root NodeID, available AvailableSpace) error {
	if !t.valid(root) {
		return fmt.Errorf("root %d: %w", root, ErrUnknownNode)
	}
	if err := t.check(root); err != nil {
		return err
	}
	for i := range t.nodes {
		t.nodes[i].solved = false
		t.nodes[i].intrinsicValid = [2]bool{}
	}

	n := &t.nodes[root]
	var width float64
	switch available.Kind {
	case MinContent, MaxContent:
		width = t.intrinsicWidth(root, available.Kind)
	default:
		if math.IsNaN(available.Value) || available.Value < 0 {
			return fmt.Errorf("available width %v: %w", available.Value, ErrInvalidTree)
		}
		outer := available.Value - n.style.Margin.horizontal()
		width = t.blockWidth(root, outer, available.Value)
	}

	height := t.layoutNode(root, width)
	n.layout = Layout{X: n.style.Margin.Left, Y: n.style.Margin.Top, Width: width, Height: height}
	n.solved = true
	return nil
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// check validates styles below root and guards against cycles.
func (t *Tree) check(root NodeID) error {
	seen := make(map[NodeID]bool)
	var walk func(id NodeID) error
	walk = func(id NodeID) error {
		if seen[id] {
			return fmt.Errorf("node %d reached twice: %w", id, ErrInvalidTree)
		}
		seen[id] = true
		if !t.nodes[id].style.validate() {
			return fmt.Errorf("node %d has a non-finite or negative style value: %w", id, ErrInvalidTree)
		}
		for _, c := range t.nodes[id].children {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root)
}
