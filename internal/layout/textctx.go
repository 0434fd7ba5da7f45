package layout

import (
	"github.com/gompdf/cvpdf/internal/flex"
	"github.com/gompdf/cvpdf/internal/style"
	"github.com/gompdf/cvpdf/internal/text"
)

// TwoPassTolerance absorbs sub-point rounding between a solver's measuring
// pass and its final pass. A text whose final width is within this many
// points of its single line width is kept on one line.
const TwoPassTolerance = 1.0

// TextContext is the measurement state of one text leaf
type TextContext struct {
	Text       string
	FontSize   float64
	FontName   string
	LineHeight float64
	Wrap       text.WrapOptions
}

// NewTextContext prepares s for measurement with the typography of ts
func NewTextContext(s string, ts style.TextStyle, wrap text.WrapOptions) *TextContext {
	return &TextContext{
		Text:       ts.ApplyTransform(s),
		FontSize:   ts.Size(),
		FontName:   ts.FontName(),
		LineHeight: ts.LineHeightPoints(),
		Wrap:       wrap,
	}
}

// MaxContentWidth is the width of the text set on a single line
func (c *TextContext) MaxContentWidth(m text.Measurer) float64 {
	return m.MeasureText(c.Text, c.FontSize, c.FontName)
}

// MinContentWidth is the width of the widest unbreakable token
func (c *TextContext) MinContentWidth(m text.Measurer) float64 {
	var w float64
	for _, tok := range text.Tokens(c.Text) {
		w = max(w, m.MeasureText(tok, c.FontSize, c.FontName))
	}
	return w
}

// Lines breaks the text for a box of the given content width
func (c *TextContext) Lines(width float64, m text.Measurer) []string {
	if width >= c.MaxContentWidth(m)-TwoPassTolerance {
		return []string{c.Text}
	}
	return text.Wrap(c.Text, width, c.FontSize, c.FontName, c.Wrap, m)
}

// Measure sizes the text for one of the three solver sizing modes
func (c *TextContext) Measure(known flex.KnownDimensions, available flex.AvailableSpace, m text.Measurer) flex.Size {
	if known.HasWidth && known.HasHeight {
		return flex.Size{Width: known.Width, Height: known.Height}
	}

	switch available.Kind {
	case flex.MinContent:
		return flex.Size{Width: c.MinContentWidth(m), Height: c.LineHeight}
	case flex.MaxContent:
		return flex.Size{Width: c.MaxContentWidth(m), Height: c.LineHeight}
	}

	width := available.Value
	if known.HasWidth {
		width = known.Width
	}
	maxContent := c.MaxContentWidth(m)
	if width >= maxContent-TwoPassTolerance {
		return flex.Size{Width: maxContent, Height: c.LineHeight}
	}

	lines := text.Wrap(c.Text, width, c.FontSize, c.FontName, c.Wrap, m)
	var widest float64
	for _, l := range lines {
		widest = max(widest, m.MeasureText(l, c.FontSize, c.FontName))
	}
	return flex.Size{Width: widest, Height: float64(len(lines)) * c.LineHeight}
}

// MeasureFunc binds the context to a measurer for the solver
func (c *TextContext) MeasureFunc(m text.Measurer) flex.MeasureFunc {
	return func(known flex.KnownDimensions, available flex.AvailableSpace) flex.Size {
		return c.Measure(known, available, m)
	}
}
