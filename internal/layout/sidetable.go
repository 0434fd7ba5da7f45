package layout

import (
	"github.com/gompdf/cvpdf/internal/flex"
	"github.com/gompdf/cvpdf/internal/style"
)

// ConstraintTree is the geometry solver the builder targets. Any solver that
// honours the min-content, max-content and definite sizing modes of
// flex.MeasureFunc can be plugged in; *flex.Tree is the built-in one.
type ConstraintTree interface {
	NewLeaf(style flex.Style, measure flex.MeasureFunc) flex.NodeID
	NewContainer(style flex.Style, children []flex.NodeID) (flex.NodeID, error)
	Compute(root flex.NodeID, available flex.AvailableSpace) error
	Layout(id flex.NodeID) (flex.Layout, error)
	Children(id flex.NodeID) ([]flex.NodeID, error)
}

var _ ConstraintTree = (*flex.Tree)(nil)

// NodeInfo is what the layout keeps about a solver node besides geometry
type NodeInfo struct {
	Element ElementType
	Style   style.Declaration
	Kind    ContentKind
	Text    *TextContext
}

// SideTable maps solver node ids onto NodeInfo. It lives for one layout call.
type SideTable struct {
	entries []NodeInfo
	present []bool
}

// Set records info for id
func (s *SideTable) Set(id flex.NodeID, info NodeInfo) {
	if id < 0 {
		return
	}
	for int(id) >= len(s.entries) {
		s.entries = append(s.entries, NodeInfo{})
		s.present = append(s.present, false)
	}
	s.entries[id] = info
	s.present[id] = true
}

// Get returns the info recorded for id
func (s *SideTable) Get(id flex.NodeID) (NodeInfo, bool) {
	if id < 0 || int(id) >= len(s.entries) || !s.present[id] {
		return NodeInfo{}, false
	}
	return s.entries[id], true
}

// Len returns the number of recorded nodes
func (s *SideTable) Len() int {
	n := 0
	for _, p := range s.present {
		if p {
			n++
		}
	}
	return n
}
