package layout

import (
	"testing"

	"github.com/gompdf/cvpdf/internal/style"
)

func TestComputeContentArea(t *testing.T) {
	maxW := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		margin style.Edges
		cfg    PageLayoutConfig
		want   ContentArea
	}{
		{
			name:   "margins only",
			margin: style.Edges{Top: 36, Right: 36, Bottom: 36, Left: 36},
			want:   ContentArea{X: 36, Y: 36, Width: 540, Height: 720},
		},
		{
			name: "centered container",
			cfg:  PageLayoutConfig{MaxWidth: maxW(480), Padding: style.Edges{Top: 12, Right: 12, Bottom: 12, Left: 12}},
			want: ContentArea{X: 78, Y: 12, Width: 456, Height: 768},
		},
		{
			name: "container wider than page",
			cfg:  PageLayoutConfig{MaxWidth: maxW(672), Padding: style.Edges{Top: 24, Right: 24, Bottom: 24, Left: 24}},
			want: ContentArea{X: 24, Y: 24, Width: 564, Height: 744},
		},
		{
			name:   "container ignores horizontal margins",
			margin: style.Edges{Top: 10, Right: 50, Bottom: 10, Left: 50},
			cfg:    PageLayoutConfig{MaxWidth: maxW(612)},
			want:   ContentArea{X: 0, Y: 10, Width: 612, Height: 772},
		},
		{
			name:   "margins exceed page",
			margin: style.Edges{Top: 500, Right: 400, Bottom: 500, Left: 400},
			want:   ContentArea{X: 400, Y: 500, Width: 0, Height: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeContentArea(612, 792, tt.margin, tt.cfg)
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestPageLayoutConfigFromStyle(t *testing.T) {
	r := style.NewResolver(nil)

	cfg := PageLayoutConfigFromStyle(r.Resolve("max-w-4xl p-8 bg-white", "", style.Declaration{}), 612)
	if cfg.MaxWidth == nil || *cfg.MaxWidth != 672 {
		t.Fatalf("Expected max width 672, got %v", cfg.MaxWidth)
	}
	if cfg.Padding.Left != 24 || cfg.Background == nil {
		t.Errorf("Unexpected page config %+v", cfg)
	}

	half := PageLayoutConfigFromStyle(r.Resolve("max-w-full", "", style.Declaration{}), 600)
	if half.MaxWidth == nil || *half.MaxWidth != 600 {
		t.Errorf("Expected percent max width to resolve against the page, got %v", half.MaxWidth)
	}

	if none := PageLayoutConfigFromStyle(r.Resolve("p-8", "", style.Declaration{}), 612); none.MaxWidth != nil {
		t.Errorf("Expected no page container without max width")
	}
}

func TestContainerRect(t *testing.T) {
	w := 480.0
	doc := DocumentConfig{PageWidth: 612, PageHeight: 792}
	got := doc.ContainerRect(PageLayoutConfig{MaxWidth: &w})
	want := ContentArea{X: 66, Width: 480, Height: 792}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}
