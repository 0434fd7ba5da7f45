package layout

import (
	"github.com/gompdf/cvpdf/internal/flex"
	"github.com/gompdf/cvpdf/internal/style"
)

// solverStyle translates a resolved declaration into solver terms
func solverStyle(d style.Declaration) flex.Style {
	s := flex.DefaultStyle()

	if d.Flex.Display == style.DisplayFlex {
		s.Display = flex.DisplayFlex
	}
	if d.Flex.Direction == style.DirectionColumn {
		s.Direction = flex.Column
	}
	s.Wrap = d.Flex.Wrap
	s.Grow = d.Flex.Grow
	s.Shrink = d.Flex.ShrinkFactor()
	s.RowGap = d.Flex.RowGap
	s.ColumnGap = d.Flex.ColumnGap

	switch d.Flex.Justify {
	case style.JustifyEnd:
		s.Justify = flex.JustifyEnd
	case style.JustifyCenter:
		s.Justify = flex.JustifyCenter
	case style.JustifySpaceBetween:
		s.Justify = flex.JustifySpaceBetween
	case style.JustifySpaceAround:
		s.Justify = flex.JustifySpaceAround
	case style.JustifySpaceEvenly:
		s.Justify = flex.JustifySpaceEvenly
	}
	switch d.Flex.Align {
	case style.AlignItemsStart:
		s.Align = flex.AlignStart
	case style.AlignItemsEnd:
		s.Align = flex.AlignEnd
	case style.AlignItemsCenter:
		s.Align = flex.AlignCenter
	}

	s.Basis = solverLength(d.Flex.Basis)
	s.Width = solverLength(d.Box.Width)
	s.Height = solverLength(d.Box.Height)
	s.MaxWidth = solverLength(d.Box.MaxWidth)
	s.MaxHeight = solverLength(d.Box.MaxHeight)
	s.Margin = solverEdges(d.Box.Margin)
	s.Padding = solverEdges(d.Box.Padding)
	s.Border = solverEdges(d.Box.Border.Widths())
	return s
}

func solverLength(l *style.Length) *flex.Length {
	if l == nil {
		return nil
	}
	return &flex.Length{Value: l.Value, Percent: l.Percent}
}

func solverEdges(e style.Edges) flex.Edges {
	return flex.Edges{Top: e.Top, Right: e.Right, Bottom: e.Bottom, Left: e.Left}
}
