// Package flex is a small box constraint solver covering the subset of CSS
// block and flexbox layout needed for single column documents: stacked
// blocks, row and column flex containers with grow, shrink, wrap, gaps,
// justification and cross axis alignment. Heights are always content driven
// unless a node sets one explicitly.
package flex

import "math"

// Display selects the layout algorithm for a node's children.
type Display int

const (
	DisplayBlock Display = iota
	DisplayFlex
)

// Direction is the main axis of a flex container.
type Direction int

const (
	Row Direction = iota
	Column
)

// Justify distributes free main axis space.
type Justify int

const (
	JustifyStart Justify = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// Align positions items on the cross axis.
type Align int

const (
	AlignStretch Align = iota
	AlignStart
	AlignEnd
	AlignCenter
)

// Length is a size in points or a percentage of the containing block width.
type Length struct {
	Value   float64
	Percent bool
}

func (l *Length) resolve(container float64) (float64, bool) {
	if l == nil {
		return 0, false
	}
	if l.Percent {
		if math.IsInf(container, 0) || math.IsNaN(container) {
			return 0, false
		}
		return container * l.Value / 100, true
	}
	return l.Value, true
}

// Edges holds one value per side.
type Edges struct {
	Top, Right, Bottom, Left float64
}

func (e Edges) horizontal() float64 { return e.Left + e.Right }
func (e Edges) vertical() float64 { return e.Top + e.Bottom }

// Style is everything the solver knows about a node. Width and Height are
// border box sizes.
type Style struct {
	Display   Display
	Direction Direction
	Wrap      bool
	Justify   Justify
	Align     Align
	Grow      float64
	Shrink    float64
	Basis     *Length
	Width     *Length
	Height    *Length
	MaxWidth  *Length
	MaxHeight *Length
	Margin    Edges
	Padding   Edges
	Border    Edges
	RowGap    float64
	ColumnGap float64
}

// DefaultStyle returns a block style with the CSS initial flex factors.
func DefaultStyle() Style {
	return Style{Shrink: 1}
}

func (s *Style) isRow() bool {
	return s.Display == DisplayFlex && s.Direction == Row
}

func (s *Style) insets() Edges {
	return Edges{
		Top:    s.Padding.Top + s.Border.Top,
		Right:  s.Padding.Right + s.Border.Right,
		Bottom: s.Padding.Bottom + s.Border.Bottom,
		Left:   s.Padding.Left + s.Border.Left,
	}
}

func (s *Style) validate() bool {
	values := []float64{
		s.Grow, s.Shrink, s.RowGap, s.ColumnGap,
		s.Margin.Top, s.Margin.Right, s.Margin.Bottom, s.Margin.Left,
		s.Padding.Top, s.Padding.Right, s.Padding.Bottom, s.Padding.Left,
		s.Border.Top, s.Border.Right, s.Border.Bottom, s.Border.Left,
	}
	for _, l := range []*Length{s.Basis, s.Width, s.Height, s.MaxWidth, s.MaxHeight} {
		if l != nil {
			values = append(values, l.Value)
		}
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return s.Grow >= 0 && s.Shrink >= 0
}

// AvailableKind is the sizing mode offered to a measure function.
type AvailableKind int

const (
	Definite AvailableKind = iota
	MinContent
	MaxContent
)

// AvailableSpace is the inline space a leaf may use.
type AvailableSpace struct {
	Kind  AvailableKind
	Value float64
}

// Size is a width and height pair in points.
type Size struct {
	Width, Height float64
}

// KnownDimensions carries sizes the solver already decided for a leaf.
type KnownDimensions struct {
	Width, Height       float64
	HasWidth, HasHeight bool
}

// MeasureFunc sizes the content box of a leaf.
type MeasureFunc func(known KnownDimensions, available AvailableSpace) Size

// Layout is a solved border box. X and Y are relative to the parent's
// border box origin.
type Layout struct {
	X, Y, Width, Height float64
}
