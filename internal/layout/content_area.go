package layout

import (
	"github.com/gompdf/cvpdf/internal/style"
)

// ContentArea is the rectangle a page's boxes must fit in
type ContentArea struct {
	X, Y, Width, Height float64
}

// Bottom returns the lower edge of the area
func (a ContentArea) Bottom() float64 {
	return a.Y + a.Height
}

// PageLayoutConfig describes an optional centered container on every page
type PageLayoutConfig struct {
	MaxWidth   *float64
	Padding    style.Edges
	Background *style.Color
}

// DocumentConfig is the physical page geometry
type DocumentConfig struct {
	PageWidth  float64
	PageHeight float64
	Margin     style.Edges
}

// ContentArea computes the usable rectangle of a page laid out with cfg
func (d DocumentConfig) ContentArea(cfg PageLayoutConfig) ContentArea {
	return ComputeContentArea(d.PageWidth, d.PageHeight, d.Margin, cfg)
}

// ComputeContentArea applies page margins or, when cfg sets a max width, a
// horizontally centered container of that width with cfg's padding.
func ComputeContentArea(pageWidth, pageHeight float64, margin style.Edges, cfg PageLayoutConfig) ContentArea {
	if cfg.MaxWidth == nil {
		return ContentArea{
			X:      margin.Left,
			Y:      margin.Top,
			Width:  max(pageWidth-margin.Left-margin.Right, 0),
			Height: max(pageHeight-margin.Top-margin.Bottom, 0),
		}
	}

	effective := min(*cfg.MaxWidth, pageWidth)
	hMargin := max(0, pageWidth-effective) / 2
	return ContentArea{
		X:      hMargin + cfg.Padding.Left,
		Y:      margin.Top + cfg.Padding.Top,
		Width:  max(effective-cfg.Padding.Left-cfg.Padding.Right, 0),
		Height: max(pageHeight-margin.Top-margin.Bottom-cfg.Padding.Top-cfg.Padding.Bottom, 0),
	}
}

// PageLayoutConfigFromStyle derives the page container from the resolved
// root element. Percentage max widths resolve against the page width.
// Without a max width the root keeps its own padding and background.
func PageLayoutConfigFromStyle(root style.Declaration, pageWidth float64) PageLayoutConfig {
	if root.Box.MaxWidth == nil {
		return PageLayoutConfig{}
	}
	w := root.Box.MaxWidth.Resolve(pageWidth)
	return PageLayoutConfig{
		MaxWidth:   &w,
		Padding:    root.Box.Padding,
		Background: root.Box.BackgroundColor,
	}
}

// ContainerRect returns the centered container rectangle for page painting,
// including its padding.
func (d DocumentConfig) ContainerRect(cfg PageLayoutConfig) ContentArea {
	if cfg.MaxWidth == nil {
		return ContentArea{Width: d.PageWidth, Height: d.PageHeight}
	}
	effective := min(*cfg.MaxWidth, d.PageWidth)
	return ContentArea{
		X:      max(0, d.PageWidth-effective) / 2,
		Y:      0,
		Width:  effective,
		Height: d.PageHeight,
	}
}
