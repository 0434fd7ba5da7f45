package pagination

import (
	"go.uber.org/zap"

	"github.com/gompdf/cvpdf/internal/layout"
	"github.com/gompdf/cvpdf/internal/metadata"
	"github.com/gompdf/cvpdf/internal/style"
)

// fitEpsilon absorbs floating point noise when a box ends exactly on the
// content area bottom
const fitEpsilon = 0.01

// Page is one output page. Box coordinates are page coordinates.
type Page struct {
	Number int                 `yaml:"number"`
	Boxes  []*layout.LayoutBox `yaml:"boxes"`
}

// LayoutStructure is the paginated result handed to a renderer
type LayoutStructure struct {
	PageWidth  float64            `yaml:"page_width"`
	PageHeight float64            `yaml:"page_height"`
	Pages      []Page             `yaml:"pages"`
	Metadata   *metadata.Metadata `yaml:"metadata,omitempty"`
}

// PageSize represents standard page sizes
type PageSize struct {
	Width  float64
	Height float64
	Name   string
}

// Standard page sizes in points (1/72 inch)
var (
	PageSizeA4     = PageSize{Width: 595.28, Height: 841.89, Name: "A4"}
	PageSizeLetter = PageSize{Width: 612.00, Height: 792.00, Name: "Letter"}
	PageSizeLegal  = PageSize{Width: 612.00, Height: 1008.00, Name: "Legal"}
	PageSizeA3     = PageSize{Width: 841.89, Height: 1190.55, Name: "A3"}
	PageSizeA5     = PageSize{Width: 419.53, Height: 595.28, Name: "A5"}
)

// PageSizes indexes the standard sizes by lower case name
var PageSizes = map[string]PageSize{
	"a4":     PageSizeA4,
	"letter": PageSizeLetter,
	"legal":  PageSizeLegal,
	"a3":     PageSizeA3,
	"a5":     PageSizeA5,
}

// Margins represents page margins
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// Edges converts the margins to style edges
func (m Margins) Edges() style.Edges {
	return style.Edges{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left}
}

// Paginator handles breaking content into pages
type Paginator struct {
	log *zap.Logger
}

// NewPaginator creates a new paginator
func NewPaginator(log *zap.Logger) *Paginator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Paginator{log: log}
}

// Paginate distributes top-level boxes laid out on one unbounded canvas
// over pages of area. Boxes keep their order and size. Boxes of the first
// page keep their canvas position, every later page is shifted so its first
// box starts at the area top. A box taller than the area gets a page of its
// own. There is always at least one page.
func (p *Paginator) Paginate(boxes []*layout.LayoutBox, area layout.ContentArea) []Page {
	var pages []Page
	var current []*layout.LayoutBox
	var shift float64

	emit := func(page []*layout.LayoutBox) {
		for _, b := range page {
			b.Translate(0, shift)
		}
		pages = append(pages, Page{Number: len(pages) + 1, Boxes: page})
	}
	fits := func(bottom float64) bool {
		return bottom+shift <= area.Bottom()+fitEpsilon
	}

	for i, box := range boxes {
		if len(current) > 0 {
			// bottom is the canvas edge that has to land on the new page with box
			breakHere, bottom := false, box.Bottom()
			if !fits(box.Bottom()) {
				breakHere = true
			} else if keepsWithNext(box) {
				if next := nextContent(boxes, i); next != nil && !fits(next.Bottom()) && next.Bottom()-box.Y <= area.Height+fitEpsilon {
					p.log.Debug("Moving heading to the next page with its content", zap.Int("page", len(pages)+1), zap.Stringer("element", box.Element))
					breakHere, bottom = true, next.Bottom()
				}
			}

			if breakHere {
				k := carryFrom(current, bottom, area.Height)
				if k < len(current) {
					p.log.Debug("Moving headings to the next page", zap.Int("page", len(pages)+1), zap.Int("headings", len(current)-k))
				}
				emit(current[:k])
				current = append([]*layout.LayoutBox(nil), current[k:]...)
				first := box
				if len(current) > 0 {
					first = current[0]
				}
				shift = area.Y - first.Y
			}
		}
		if box.Height > area.Height+fitEpsilon {
			p.log.Warn("Box taller than a page, it will overflow", zap.Float64("height", box.Height), zap.Float64("available", area.Height))
		}
		current = append(current, box)
	}

	if len(current) > 0 || len(pages) == 0 {
		emit(current)
	}
	return pages
}

// carryFrom returns the index of the first box of the trailing run of
// keep-with-next headings in current that moves to the next page together
// with content ending at bottom. At least one box always stays behind.
func carryFrom(current []*layout.LayoutBox, bottom, height float64) int {
	k := len(current)
	for k > 1 && keepsWithNext(current[k-1]) {
		k--
	}
	for k < len(current) && bottom-current[k].Y > height+fitEpsilon {
		k++
	}
	return k
}

// keepsWithNext reports whether a page must not end with box. Headings below
// the top level introduce the content that follows them.
func keepsWithNext(box *layout.LayoutBox) bool {
	return box.Element.HeadingLevel() >= 2
}

// nextContent returns the first box after i that has text
func nextContent(boxes []*layout.LayoutBox, i int) *layout.LayoutBox {
	for _, b := range boxes[i+1:] {
		if b.HasText() {
			return b
		}
	}
	return nil
}

// Flatten replaces structural wrappers by their children so that headings
// and paragraphs become page break candidates. A wrapper is kept whole when
// it paints something of its own or lays its children out side by side.
func Flatten(boxes []*layout.LayoutBox) []*layout.LayoutBox {
	var out []*layout.LayoutBox
	for _, b := range boxes {
		if transparent(b) {
			out = append(out, Flatten(b.Content.Children)...)
			continue
		}
		out = append(out, b)
	}
	return out
}

func transparent(b *layout.LayoutBox) bool {
	if b.Content.Kind != layout.ContentContainer {
		return false
	}
	switch b.Element {
	case layout.ElementRoot, layout.ElementDiv, layout.ElementSection:
	default:
		return false
	}
	box := b.Style.Box
	if box.Border.Any() || box.BackgroundColor != nil {
		return false
	}
	f := b.Style.Flex
	return f.Display != style.DisplayFlex || f.Direction == style.DirectionColumn
}
