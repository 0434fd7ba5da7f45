package layout

import (
	"go.uber.org/zap"

	"github.com/gompdf/cvpdf/internal/flex"
	"github.com/gompdf/cvpdf/internal/text"
)

// Extractor converts solved solver geometry into LayoutBoxes
type Extractor struct {
	measurer text.Measurer
	log      *zap.Logger
}

// NewExtractor creates an extractor that re-wraps text with m
func NewExtractor(m text.Measurer, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{measurer: m, log: log}
}

// Extract returns the box for node id and its subtree. Solver positions are
// relative to the parent, offsetX and offsetY is the parent's absolute
// origin. Boxes without width, or without height and border, are dropped.
func (e *Extractor) Extract(tree ConstraintTree, side *SideTable, id flex.NodeID, offsetX, offsetY float64) ([]*LayoutBox, error) {
	l, err := tree.Layout(id)
	if err != nil {
		return nil, calcErrorf(err, "no geometry for node %d", id)
	}
	info, ok := side.Get(id)
	if !ok {
		return nil, calcErrorf(nil, "node %d missing from side table", id)
	}

	borders := info.Style.Box.Border
	if l.Width <= 0 || (l.Height <= 0 && !borders.Any()) {
		e.log.Debug("Dropping degenerate box", zap.Stringer("element", info.Element), zap.Float64("width", l.Width), zap.Float64("height", l.Height))
		return nil, nil
	}

	box := &LayoutBox{
		X:       offsetX + l.X,
		Y:       offsetY + l.Y,
		Width:   l.Width,
		Height:  l.Height,
		Style:   info.Style,
		Element: info.Element,
	}

	switch info.Kind {
	case ContentText:
		if info.Text == nil {
			return nil, calcErrorf(nil, "text node %d has no text context", id)
		}
		insets := info.Style.Box.Padding.Horizontal() + borders.Widths().Horizontal()
		box.Content = BoxContent{Kind: ContentText, Lines: info.Text.Lines(max(l.Width-insets, 0), e.measurer)}

	default:
		children, err := tree.Children(id)
		if err != nil {
			return nil, calcErrorf(err, "no children for node %d", id)
		}
		box.Content.Kind = ContentEmpty
		for _, child := range children {
			boxes, err := e.Extract(tree, side, child, box.X, box.Y)
			if err != nil {
				return nil, err
			}
			box.Content.Children = append(box.Content.Children, boxes...)
		}
		if len(box.Content.Children) > 0 {
			box.Content.Kind = ContentContainer
		}
	}
	return []*LayoutBox{box}, nil
}
