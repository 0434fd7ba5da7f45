package pagination

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/gompdf/cvpdf/internal/layout"
	"github.com/gompdf/cvpdf/internal/style"
)

// letterArea is a Letter page with 72pt margins
var letterArea = layout.ContentArea{X: 72, Y: 72, Width: 468, Height: 648}

func textBox(el layout.ElementType, y, h float64) *layout.LayoutBox {
	return &layout.LayoutBox{
		X: 72, Y: y, Width: 468, Height: h,
		Element: el,
		Content: layout.BoxContent{Kind: layout.ContentText, Lines: []string{el.String()}},
	}
}

// stack lays out boxes of the given heights one below the other from the area top
func stack(heights ...float64) []*layout.LayoutBox {
	var boxes []*layout.LayoutBox
	y := letterArea.Y
	for _, h := range heights {
		boxes = append(boxes, textBox(layout.ElementParagraph, y, h))
		y += h
	}
	return boxes
}

func TestPaginateExactFit(t *testing.T) {
	p := NewPaginator(zaptest.NewLogger(t))
	pages := p.Paginate(stack(648), letterArea)
	if len(pages) != 1 {
		t.Fatalf("Expected 1 page for a box of exactly the content height, got %d", len(pages))
	}
}

func TestPaginateNoBoxes(t *testing.T) {
	pages := NewPaginator(zaptest.NewLogger(t)).Paginate(nil, letterArea)
	if len(pages) != 1 || len(pages[0].Boxes) != 0 || pages[0].Number != 1 {
		t.Fatalf("Expected one empty page, got %+v", pages)
	}
}

func TestPaginateMultiplePages(t *testing.T) {
	boxes := stack(300, 300, 300, 300)
	originals := append([]*layout.LayoutBox(nil), boxes...)

	pages := NewPaginator(zaptest.NewLogger(t)).Paginate(boxes, letterArea)
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}

	var seen []*layout.LayoutBox
	for i, page := range pages {
		if page.Number != i+1 {
			t.Errorf("Expected page number %d, got %d", i+1, page.Number)
		}
		if len(page.Boxes) == 0 {
			t.Errorf("Page %d is empty", page.Number)
		}
		if page.Boxes[0].Y != letterArea.Y {
			t.Errorf("Page %d starts at %v, want %v", page.Number, page.Boxes[0].Y, letterArea.Y)
		}
		for _, b := range page.Boxes {
			if b.Bottom() > letterArea.Bottom()+fitEpsilon {
				t.Errorf("Box overflows page %d: bottom %v", page.Number, b.Bottom())
			}
			if b.Height != 300 || b.Width != 468 {
				t.Errorf("Box size changed to %vx%v", b.Width, b.Height)
			}
		}
		seen = append(seen, page.Boxes...)
	}
	if len(seen) != len(originals) {
		t.Fatalf("Expected %d boxes, got %d", len(originals), len(seen))
	}
	for i := range seen {
		if seen[i] != originals[i] {
			t.Errorf("Box %d out of order", i)
		}
	}
	if pages[1].Boxes[1].Y != letterArea.Y+300 {
		t.Errorf("Expected relative spacing to be kept, got %v", pages[1].Boxes[1].Y)
	}
}

func TestPaginateOversizedBox(t *testing.T) {
	pages := NewPaginator(zaptest.NewLogger(t)).Paginate(stack(100, 900, 100), letterArea)
	if len(pages) != 3 {
		t.Fatalf("Expected 3 pages, got %d", len(pages))
	}
	if len(pages[1].Boxes) != 1 || pages[1].Boxes[0].Height != 900 {
		t.Errorf("Expected the oversized box alone on page 2")
	}
}

func TestPaginateKeepsHeadingWithContent(t *testing.T) {
	boxes := stack(600, 20, 40)
	boxes[1].Element = layout.ElementHeading2
	heading, para := boxes[1], boxes[2]

	pages := NewPaginator(zaptest.NewLogger(t)).Paginate(boxes, letterArea)
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}
	if len(pages[0].Boxes) != 1 {
		t.Errorf("Expected heading to leave page 1, page 1 has %d boxes", len(pages[0].Boxes))
	}
	if len(pages[1].Boxes) != 2 || pages[1].Boxes[0] != heading || pages[1].Boxes[1] != para {
		t.Fatalf("Expected heading and paragraph together on page 2")
	}
	if heading.Y != letterArea.Y || para.Y != letterArea.Y+20 {
		t.Errorf("Unexpected positions heading=%v paragraph=%v", heading.Y, para.Y)
	}
}

func TestPaginateKeepsHeadingRunWithContent(t *testing.T) {
	boxes := stack(600, 20, 20, 40)
	boxes[1].Element = layout.ElementHeading2
	boxes[2].Element = layout.ElementHeading3
	filler, h2, h3, para := boxes[0], boxes[1], boxes[2], boxes[3]

	pages := NewPaginator(zaptest.NewLogger(t)).Paginate(boxes, letterArea)
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}
	if len(pages[0].Boxes) != 1 || pages[0].Boxes[0] != filler {
		t.Fatalf("Expected only the filler on page 1, got %d boxes", len(pages[0].Boxes))
	}
	want := []*layout.LayoutBox{h2, h3, para}
	if len(pages[1].Boxes) != len(want) {
		t.Fatalf("Expected %d boxes on page 2, got %d", len(want), len(pages[1].Boxes))
	}
	for i, b := range want {
		if pages[1].Boxes[i] != b {
			t.Errorf("Box %d on page 2: expected %v, got %v", i, b.Element, pages[1].Boxes[i].Element)
		}
	}
	if h2.Y != letterArea.Y || h3.Y != letterArea.Y+20 || para.Y != letterArea.Y+40 {
		t.Errorf("Unexpected positions h2=%v h3=%v paragraph=%v", h2.Y, h3.Y, para.Y)
	}
}

func TestPaginateHeadingRunTooTallStaysBehind(t *testing.T) {
	// h2 plus h3 plus the paragraph would not fit an empty page, only h3 moves
	boxes := stack(30, 20, 20, 620)
	boxes[1].Element = layout.ElementHeading2
	boxes[2].Element = layout.ElementHeading3

	pages := NewPaginator(zaptest.NewLogger(t)).Paginate(boxes, letterArea)
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}
	if len(pages[0].Boxes) != 2 || pages[0].Boxes[1].Element != layout.ElementHeading2 {
		t.Fatalf("Expected filler and h2 on page 1, got %d boxes", len(pages[0].Boxes))
	}
	if len(pages[1].Boxes) != 2 || pages[1].Boxes[0].Element != layout.ElementHeading3 {
		t.Fatalf("Expected h3 with its paragraph on page 2")
	}
}

func TestPaginateFirstPageKeepsOffset(t *testing.T) {
	// a leading top margin puts the first box below the area top
	first := textBox(layout.ElementParagraph, letterArea.Y+12, 600)
	second := textBox(layout.ElementParagraph, letterArea.Y+612, 100)

	pages := NewPaginator(zaptest.NewLogger(t)).Paginate([]*layout.LayoutBox{first, second}, letterArea)
	if len(pages) != 2 {
		t.Fatalf("Expected 2 pages, got %d", len(pages))
	}
	if first.Y != letterArea.Y+12 {
		t.Errorf("Expected the first page to keep its margin, got y=%v", first.Y)
	}
	if second.Y != letterArea.Y {
		t.Errorf("Expected the second page to start at the area top, got y=%v", second.Y)
	}
}

func TestPaginateTopLevelHeadingNotGrouped(t *testing.T) {
	boxes := stack(600, 20, 40)
	boxes[1].Element = layout.ElementHeading1

	pages := NewPaginator(zaptest.NewLogger(t)).Paginate(boxes, letterArea)
	if len(pages) != 2 || len(pages[0].Boxes) != 2 {
		t.Fatalf("Expected h1 to stay on page 1")
	}
}

func TestFlatten(t *testing.T) {
	h2 := textBox(layout.ElementHeading2, 0, 20)
	p := textBox(layout.ElementParagraph, 20, 20)
	row := &layout.LayoutBox{
		Element: layout.ElementDiv, Width: 100, Height: 20,
		Style:   style.Declaration{Flex: style.FlexStyle{Display: style.DisplayFlex}},
		Content: layout.BoxContent{Kind: layout.ContentContainer, Children: []*layout.LayoutBox{textBox(layout.ElementInline, 40, 20)}},
	}
	card := &layout.LayoutBox{
		Element: layout.ElementSection, Width: 100, Height: 20,
		Style:   style.Declaration{Box: style.BoxModel{BackgroundColor: &style.Color{R: 240, G: 240, B: 240}}},
		Content: layout.BoxContent{Kind: layout.ContentContainer, Children: []*layout.LayoutBox{textBox(layout.ElementParagraph, 60, 20)}},
	}
	section := &layout.LayoutBox{
		Element: layout.ElementSection, Width: 100, Height: 40,
		Content: layout.BoxContent{Kind: layout.ContentContainer, Children: []*layout.LayoutBox{h2, p}},
	}
	root := &layout.LayoutBox{
		Element: layout.ElementRoot, Width: 100, Height: 80,
		Content: layout.BoxContent{Kind: layout.ContentContainer, Children: []*layout.LayoutBox{section, row, card}},
	}

	got := Flatten([]*layout.LayoutBox{root})
	want := []*layout.LayoutBox{h2, p, row, card}
	if len(got) != len(want) {
		t.Fatalf("Expected %d boxes, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Box %d: expected %v, got %v", i, want[i].Element, got[i].Element)
		}
	}
}

func TestEnginePaginate(t *testing.T) {
	e := NewEngine(zaptest.NewLogger(t))
	opts := e.Options()
	if opts.PageWidth != 612 || opts.PageHeight != 792 {
		t.Fatalf("Expected Letter defaults, got %+v", opts)
	}
	opts.MarginTop, opts.MarginRight, opts.MarginBottom, opts.MarginLeft = 72, 72, 72, 72
	e.SetOptions(opts)

	area := opts.Document().ContentArea(layout.PageLayoutConfig{})
	if area != letterArea {
		t.Fatalf("Unexpected area %+v", area)
	}

	root := &layout.LayoutBox{
		Element: layout.ElementRoot, X: 72, Y: 72, Width: 468, Height: 1200,
		Content: layout.BoxContent{Kind: layout.ContentContainer, Children: stack(400, 400, 400)},
	}
	structure := e.Paginate([]*layout.LayoutBox{root}, area, nil)
	if len(structure.Pages) != 3 {
		t.Errorf("Expected 3 pages, got %d", len(structure.Pages))
	}
	if structure.PageWidth != 612 || structure.PageHeight != 792 {
		t.Errorf("Unexpected page size %vx%v", structure.PageWidth, structure.PageHeight)
	}
}
