package layout

import (
	"testing"

	"github.com/gompdf/cvpdf/internal/flex"
	"github.com/gompdf/cvpdf/internal/style"
	"github.com/gompdf/cvpdf/internal/text"
)

func TestTextContextMeasure(t *testing.T) {
	m := text.FixedWidthMeasurer{CharWidth: 6}
	ctx := NewTextContext("Senior Engineer", style.TextStyle{}, text.WrapOptions{})

	tests := []struct {
		name      string
		known     flex.KnownDimensions
		available flex.AvailableSpace
		want      flex.Size
	}{
		{"min content", flex.KnownDimensions{}, flex.AvailableSpace{Kind: flex.MinContent}, flex.Size{Width: 48, Height: 12}},
		{"max content", flex.KnownDimensions{}, flex.AvailableSpace{Kind: flex.MaxContent}, flex.Size{Width: 90, Height: 12}},
		{"fits", flex.KnownDimensions{}, flex.AvailableSpace{Kind: flex.Definite, Value: 200}, flex.Size{Width: 90, Height: 12}},
		{"within tolerance", flex.KnownDimensions{}, flex.AvailableSpace{Kind: flex.Definite, Value: 89.5}, flex.Size{Width: 90, Height: 12}},
		{"wraps", flex.KnownDimensions{}, flex.AvailableSpace{Kind: flex.Definite, Value: 60}, flex.Size{Width: 48, Height: 24}},
		{"known width wins", flex.KnownDimensions{Width: 60, HasWidth: true}, flex.AvailableSpace{Kind: flex.Definite, Value: 500}, flex.Size{Width: 48, Height: 24}},
		{"fully known", flex.KnownDimensions{Width: 7, Height: 9, HasWidth: true, HasHeight: true}, flex.AvailableSpace{Kind: flex.MaxContent}, flex.Size{Width: 7, Height: 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ctx.Measure(tt.known, tt.available, m)
			if !approx(got.Width, tt.want.Width) || !approx(got.Height, tt.want.Height) {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestTextContextTransform(t *testing.T) {
	ctx := NewTextContext("work history", style.TextStyle{
		TextTransform: style.Ptr(style.TransformUppercase),
		FontSize:      style.Ptr(9.0),
		FontWeight:    style.Ptr(style.WeightBold),
	}, text.WrapOptions{})

	if ctx.Text != "WORK HISTORY" {
		t.Errorf("Expected transformed text, got %q", ctx.Text)
	}
	if ctx.FontName != "Helvetica-Bold" || ctx.FontSize != 9 {
		t.Errorf("Unexpected font %s %v", ctx.FontName, ctx.FontSize)
	}
}
