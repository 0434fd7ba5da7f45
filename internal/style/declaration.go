package style

import "strings"

// Default text metrics used when a declaration leaves them unset
const (
	DefaultFontFamily = "Helvetica"
	DefaultFontSize   = 10.0
	DefaultLineHeight = 1.2
)

// FontWeight is a numeric CSS font weight (100-900)
type FontWeight int

const (
	WeightLight    FontWeight = 300
	WeightNormal   FontWeight = 400
	WeightMedium   FontWeight = 500
	WeightSemibold FontWeight = 600
	WeightBold     FontWeight = 700
)

// FontStyle is normal or italic
type FontStyle int

const (
	FontStyleNormal FontStyle = iota
	FontStyleItalic
)

// TextAlign controls horizontal alignment of text lines inside their box
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// TextDecoration is a text decoration line
type TextDecoration int

const (
	DecorationNone TextDecoration = iota
	DecorationUnderline
	DecorationLineThrough
)

// TextTransform changes letter case before measuring and rendering
type TextTransform int

const (
	TransformNone TextTransform = iota
	TransformUppercase
	TransformLowercase
	TransformCapitalize
)

// Color is an opaque RGB color
type Color struct {
	R, G, B uint8
}

// LineHeight is either a multiplier of the font size or an absolute value in points
type LineHeight struct {
	Value    float64
	Absolute bool
}

// TextStyle holds the inheritable typography properties.
// A nil field means "not set on this element".
type TextStyle struct {
	FontFamily     *string
	FontSize       *float64
	FontWeight     *FontWeight
	FontStyle      *FontStyle
	Color          *Color
	TextAlign      *TextAlign
	LineHeight     *LineHeight
	LetterSpacing  *float64
	TextDecoration *TextDecoration
	TextTransform  *TextTransform
}

// Edges holds a value per box side
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns left + right
func (e Edges) Horizontal() float64 { return e.Left + e.Right }

// Vertical returns top + bottom
func (e Edges) Vertical() float64 { return e.Top + e.Bottom }

// IsZero reports whether all sides are zero
func (e Edges) IsZero() bool { return e == Edges{} }

// Border describes one side of a box border
type Border struct {
	Width float64
	Color *Color
}

// Borders holds the four border sides
type Borders struct {
	Top, Right, Bottom, Left Border
}

// Widths returns the border widths as Edges
func (b Borders) Widths() Edges {
	return Edges{Top: b.Top.Width, Right: b.Right.Width, Bottom: b.Bottom.Width, Left: b.Left.Width}
}

// Any reports whether at least one side has a visible width
func (b Borders) Any() bool {
	return b.Top.Width > 0 || b.Right.Width > 0 || b.Bottom.Width > 0 || b.Left.Width > 0
}

// Length is a size in points or a percentage of the containing block
type Length struct {
	Value   float64
	Percent bool
}

// Points returns a length in points
func Points(v float64) *Length { return &Length{Value: v} }

// Percent returns a percentage length
func Percent(v float64) *Length { return &Length{Value: v, Percent: true} }

// Resolve converts the length to points against a containing size
func (l Length) Resolve(container float64) float64 {
	if l.Percent {
		return container * l.Value / 100
	}
	return l.Value
}

// BoxModel holds the non-inheritable box properties
type BoxModel struct {
	Margin          Edges
	Padding         Edges
	Border          Borders
	BackgroundColor *Color
	Width           *Length
	Height          *Length
	MaxWidth        *Length
	MaxHeight       *Length
	BorderRadius    float64
	Opacity         *float64
}

// Display is the outer display type of an element
type Display int

const (
	DisplayBlock Display = iota
	DisplayFlex
	DisplayInline
	DisplayNone
)

// FlexDirection is the main axis of a flex container
type FlexDirection int

const (
	DirectionRow FlexDirection = iota
	DirectionColumn
)

// JustifyContent distributes free space along the main axis
type JustifyContent int

const (
	JustifyStart JustifyContent = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// AlignItems aligns items along the cross axis
type AlignItems int

const (
	AlignItemsStretch AlignItems = iota
	AlignItemsStart
	AlignItemsEnd
	AlignItemsCenter
)

// FlexStyle holds the flex container and item properties
type FlexStyle struct {
	Display   Display
	Grow      float64
	Shrink    *float64
	Basis     *Length
	Direction FlexDirection
	Justify   JustifyContent
	Align     AlignItems
	Wrap      bool
	RowGap    float64
	ColumnGap float64
}

// ShrinkFactor returns flex-shrink, defaulting to 1
func (f FlexStyle) ShrinkFactor() float64 {
	if f.Shrink == nil {
		return 1
	}
	return *f.Shrink
}

// Declaration is a fully resolved style for one element
type Declaration struct {
	Text TextStyle
	Box  BoxModel
	Flex FlexStyle
}

// Size returns the font size in points
func (t TextStyle) Size() float64 {
	if t.FontSize == nil || *t.FontSize <= 0 {
		return DefaultFontSize
	}
	return *t.FontSize
}

// Family returns the font family or the fallback family
func (t TextStyle) Family() string {
	if t.FontFamily == nil || *t.FontFamily == "" {
		return DefaultFontFamily
	}
	return *t.FontFamily
}

// Weight returns the font weight, defaulting to normal
func (t TextStyle) Weight() FontWeight {
	if t.FontWeight == nil {
		return WeightNormal
	}
	return *t.FontWeight
}

// Italic reports whether the text is italic
func (t TextStyle) Italic() bool {
	return t.FontStyle != nil && *t.FontStyle == FontStyleItalic
}

// Bold reports whether the weight maps onto a bold face
func (t TextStyle) Bold() bool {
	return t.Weight() >= WeightSemibold
}

// LineHeightPoints returns the line height in points
func (t TextStyle) LineHeightPoints() float64 {
	size := t.Size()
	if t.LineHeight == nil || t.LineHeight.Value <= 0 {
		return size * DefaultLineHeight
	}
	if t.LineHeight.Absolute {
		return t.LineHeight.Value
	}
	return size * t.LineHeight.Value
}

// Align returns the text alignment, defaulting to left
func (t TextStyle) Align() TextAlign {
	if t.TextAlign == nil {
		return AlignLeft
	}
	return *t.TextAlign
}

// FontName returns the face name used for measuring and rendering,
// e.g. "Helvetica-BoldOblique" or "Times-Italic".
func (t TextStyle) FontName() string {
	return FaceName(t.Family(), t.Bold(), t.Italic())
}

// FaceName maps a CSS family plus bold/italic flags onto one of the PDF core faces
func FaceName(family string, bold, italic bool) string {
	base := CoreFamily(family)
	switch {
	case bold && italic:
		if base == "Times" {
			return base + "-BoldItalic"
		}
		return base + "-BoldOblique"
	case bold:
		return base + "-Bold"
	case italic:
		if base == "Times" {
			return base + "-Italic"
		}
		return base + "-Oblique"
	}
	return base
}

// CoreFamily maps a CSS font-family list onto Helvetica, Times or Courier
func CoreFamily(family string) string {
	for _, f := range strings.Split(family, ",") {
		f = strings.ToLower(strings.Trim(strings.TrimSpace(f), `"'`))
		switch {
		case f == "":
			continue
		case strings.Contains(f, "mono"), strings.Contains(f, "courier"), strings.Contains(f, "consolas"), strings.Contains(f, "menlo"):
			return "Courier"
		case f == "serif", strings.Contains(f, "times"), strings.Contains(f, "georgia"), strings.Contains(f, "garamond"), strings.Contains(f, "cambria"):
			return "Times"
		default:
			return "Helvetica"
		}
	}
	return "Helvetica"
}

// ApplyTransform applies the declared text-transform to s
func (t TextStyle) ApplyTransform(s string) string {
	if t.TextTransform == nil {
		return s
	}
	switch *t.TextTransform {
	case TransformUppercase:
		return strings.ToUpper(s)
	case TransformLowercase:
		return strings.ToLower(s)
	case TransformCapitalize:
		words := strings.Fields(s)
		for i, w := range words {
			r := []rune(w)
			r[0] = []rune(strings.ToUpper(string(r[0])))[0]
			words[i] = string(r)
		}
		return strings.Join(words, " ")
	}
	return s
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T { return &v }
