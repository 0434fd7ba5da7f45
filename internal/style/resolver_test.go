package style

import (
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestResolveUtilities(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))
	d := r.Resolve("flex flex-col gap-2 p-4 mb-6 w-1/2 max-w-4xl text-xl font-semibold text-gray-700 border-b-2 border-gray-300 uppercase", "", Declaration{})

	if d.Flex.Display != DisplayFlex || d.Flex.Direction != DirectionColumn {
		t.Errorf("Unexpected flex %+v", d.Flex)
	}
	if d.Flex.RowGap != 6 || d.Flex.ColumnGap != 6 {
		t.Errorf("Expected 6pt gaps, got %v/%v", d.Flex.RowGap, d.Flex.ColumnGap)
	}
	if d.Box.Padding != (Edges{12, 12, 12, 12}) || d.Box.Margin.Bottom != 18 {
		t.Errorf("Unexpected spacing padding=%+v margin=%+v", d.Box.Padding, d.Box.Margin)
	}
	if d.Box.Width == nil || *d.Box.Width != (Length{Value: 50, Percent: true}) {
		t.Errorf("Expected 50%% width, got %v", d.Box.Width)
	}
	if d.Box.MaxWidth == nil || d.Box.MaxWidth.Value != 672 {
		t.Errorf("Expected 672pt max width, got %v", d.Box.MaxWidth)
	}
	if d.Text.Size() != 15 || !d.Text.Bold() {
		t.Errorf("Unexpected typography size=%v weight=%v", d.Text.Size(), d.Text.Weight())
	}
	if d.Text.Color == nil || *d.Text.Color != (Color{0x37, 0x41, 0x51}) {
		t.Errorf("Unexpected color %v", d.Text.Color)
	}
	if d.Box.Border.Bottom.Width != 1.5 || d.Box.Border.Top.Width != 0 {
		t.Errorf("Unexpected border %+v", d.Box.Border)
	}
	if c := d.Box.Border.Bottom.Color; c == nil || *c != (Color{0xd1, 0xd5, 0xdb}) {
		t.Errorf("Unexpected border color %v", c)
	}
	if d.Text.ApplyTransform("skills") != "SKILLS" {
		t.Errorf("Expected uppercase transform")
	}
}

func TestResolvePrecedence(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))

	tests := []struct {
		name      string
		className string
		inline    string
		want      float64
	}{
		{"class", "text-lg", "", 13.5},
		{"later class wins", "text-lg text-sm", "", 10.5},
		{"inline beats class", "text-lg", "font-size: 8pt", 8},
		{"important class beats inline", "!text-lg", "font-size: 8pt", 13.5},
		{"important inline beats important class", "!text-lg", "font-size: 8pt !important", 8},
		{"print variant applies", "print:text-xs", "", 9},
		{"hover variant ignored", "hover:text-xs", "", DefaultFontSize},
		{"px converted", "", "font-size: 16px", 12},
		{"em against parent", "", "font-size: 2em", 2 * DefaultFontSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.className, tt.inline, Declaration{}).Text.Size()
			if got != tt.want {
				t.Errorf("Expected size %v, got %v", tt.want, got)
			}
		})
	}
}

func TestResolveInheritance(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))
	parent := r.Resolve("text-lg font-bold text-blue-600 text-center p-4 border bg-gray-100 flex w-32", "", Declaration{})
	child := r.Resolve("italic", "", parent)

	if child.Text.Size() != 13.5 || !child.Text.Bold() || !child.Text.Italic() {
		t.Errorf("Typography not inherited: %+v", child.Text)
	}
	if child.Text.Align() != AlignCenter || child.Text.Color == nil {
		t.Errorf("Alignment or color not inherited")
	}
	if child.Box != (BoxModel{}) {
		t.Errorf("Box model must not inherit, got %+v", child.Box)
	}
	if child.Flex.Display != DisplayBlock {
		t.Errorf("Display must not inherit, got %v", child.Flex.Display)
	}

	own := r.Resolve("text-sm", "", parent)
	if own.Text.Size() != 10.5 {
		t.Errorf("Expected own size to win, got %v", own.Text.Size())
	}
}

func TestResolveInlineBoxModel(t *testing.T) {
	r := NewResolver(zaptest.NewLogger(t))
	d := r.Resolve("", "margin: 4px 8px; border-bottom: 2px solid #ff0000; display: flex; justify-content: space-between; width: 50%", Declaration{})

	if d.Box.Margin != (Edges{3, 6, 3, 6}) {
		t.Errorf("Unexpected margin %+v", d.Box.Margin)
	}
	if d.Box.Border.Bottom.Width != 1.5 || d.Box.Border.Bottom.Color == nil || *d.Box.Border.Bottom.Color != (Color{255, 0, 0}) {
		t.Errorf("Unexpected border %+v", d.Box.Border.Bottom)
	}
	if d.Flex.Display != DisplayFlex || d.Flex.Justify != JustifySpaceBetween {
		t.Errorf("Unexpected flex %+v", d.Flex)
	}
	if d.Box.Width == nil || !d.Box.Width.Percent || d.Box.Width.Value != 50 {
		t.Errorf("Unexpected width %v", d.Box.Width)
	}
}

func TestFaceName(t *testing.T) {
	tests := []struct {
		family       string
		bold, italic bool
		want         string
	}{
		{"Inter, sans-serif", false, false, "Helvetica"},
		{"Georgia, serif", true, false, "Times-Bold"},
		{"serif", false, true, "Times-Italic"},
		{"ui-monospace", true, true, "Courier-BoldOblique"},
		{"", false, true, "Helvetica-Oblique"},
	}
	for _, tt := range tests {
		if got := FaceName(tt.family, tt.bold, tt.italic); got != tt.want {
			t.Errorf("FaceName(%q, %v, %v) = %q, want %q", tt.family, tt.bold, tt.italic, got, tt.want)
		}
	}
}
