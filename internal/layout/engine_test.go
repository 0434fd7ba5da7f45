package layout

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap/zaptest"
	yaml "gopkg.in/yaml.v3"

	"github.com/gompdf/cvpdf/internal/flex"
	"github.com/gompdf/cvpdf/internal/parser/html"
	"github.com/gompdf/cvpdf/internal/style"
	"github.com/gompdf/cvpdf/internal/text"
)

// jitterMeasurer reports a string half a point wider every time after the
// first measurement, like a measurer whose rounding differs between passes.
type jitterMeasurer struct {
	seen map[string]bool
}

func (m *jitterMeasurer) MeasureText(s string, _ float64, _ string) float64 {
	w := float64(utf8.RuneCountInString(s)) * 6
	if m.seen[s] {
		return w + 0.5
	}
	m.seen[s] = true
	return w
}

type failingTree struct {
	*flex.Tree
}

func (failingTree) Compute(flex.NodeID, flex.AvailableSpace) error {
	return errors.New("no solution")
}

func newTestEngine(t *testing.T, m text.Measurer) *Engine {
	t.Helper()
	log := zaptest.NewLogger(t)
	return NewEngine(style.NewResolver(log), m, log)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestEngineLayoutPageContainer(t *testing.T) {
	e := newTestEngine(t, text.FixedWidthMeasurer{CharWidth: 6})
	root := html.NewElement("div", "max-w-4xl p-8",
		html.Node(html.NewElement("h1", "text-2xl", html.Text("Jane Doe"))),
		html.Node(html.NewElement("p", "", html.Text("Engineer"))),
	)

	doc := DocumentConfig{PageWidth: 612, PageHeight: 792}
	cfg := PageLayoutConfigFromStyle(e.ResolveRoot(root), doc.PageWidth)
	area := doc.ContentArea(cfg)
	if area.X != 24 || area.Width != 564 {
		t.Fatalf("Unexpected content area %+v", area)
	}

	boxes, err := e.Layout(root, area, true)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if len(boxes) != 1 {
		t.Fatalf("Expected one root box, got %d", len(boxes))
	}

	rootBox := boxes[0]
	if rootBox.X != 24 || rootBox.Y != 24 || rootBox.Width != 564 {
		t.Errorf("Unexpected root box %v,%v %vx%v", rootBox.X, rootBox.Y, rootBox.Width, rootBox.Height)
	}
	children := rootBox.Content.Children
	if len(children) != 2 {
		t.Fatalf("Expected two children, got %d", len(children))
	}
	heading, para := children[0], children[1]
	if heading.Element != ElementHeading1 || !approx(heading.Height, 18*style.DefaultLineHeight) {
		t.Errorf("Unexpected heading %v height %v", heading.Element, heading.Height)
	}
	if !approx(para.Y, heading.Bottom()) {
		t.Errorf("Expected paragraph at %v, got %v", heading.Bottom(), para.Y)
	}
	if got := para.Content.Lines; len(got) != 1 || got[0] != "Engineer" {
		t.Errorf("Unexpected paragraph lines %q", got)
	}
	if !approx(rootBox.Height, heading.Height+para.Height) {
		t.Errorf("Expected content driven root height, got %v", rootBox.Height)
	}
}

func TestEngineLayoutWrapsText(t *testing.T) {
	e := newTestEngine(t, text.FixedWidthMeasurer{CharWidth: 6})
	root := html.NewElement("p", "", html.Text("one two three four"))

	boxes, err := e.Layout(root, ContentArea{Width: 60, Height: 700}, false)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	got := boxes[0].Content.Lines
	want := []string{"one two", "three four"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if !approx(boxes[0].Height, 2*12) {
		t.Errorf("Expected two line heights, got %v", boxes[0].Height)
	}
}

func TestEngineTwoPassToleranceKeepsSingleLine(t *testing.T) {
	e := newTestEngine(t, &jitterMeasurer{seen: map[string]bool{}})
	root := html.NewElement("div", "flex justify-between",
		html.Node(html.NewElement("span", "w-32", html.Text("Acme Corp"))),
		html.Node(html.NewElement("span", "", html.Text("Jan 2020 – Present"))),
	)

	boxes, err := e.Layout(root, ContentArea{Width: 500, Height: 700}, false)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	row := boxes[0]
	if len(row.Content.Children) != 2 {
		t.Fatalf("Expected two items, got %d", len(row.Content.Children))
	}
	date := row.Content.Children[1]
	if len(date.Content.Lines) != 1 {
		t.Errorf("Expected date on one line, got %q", date.Content.Lines)
	}
	if !approx(date.X+date.Width, 500) {
		t.Errorf("Expected date flush right, right edge at %v", date.X+date.Width)
	}
	if !approx(row.Content.Children[0].Width, 96) {
		t.Errorf("Expected fixed width sibling of 96, got %v", row.Content.Children[0].Width)
	}
}

func TestEngineDropsEmptyBoxes(t *testing.T) {
	e := newTestEngine(t, text.FixedWidthMeasurer{CharWidth: 6})
	root := html.NewElement("div", "",
		html.Node(html.NewElement("div", "")),
		html.Node(html.NewElement("p", "", html.Text("kept"))),
	)

	boxes, err := e.Layout(root, ContentArea{Width: 300, Height: 700}, false)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	children := boxes[0].Content.Children
	if len(children) != 1 || children[0].Element != ElementParagraph {
		t.Fatalf("Expected only the paragraph to survive, got %d boxes", len(children))
	}
	if boxes[0].Content.Kind != ContentContainer {
		t.Errorf("Expected container kind, got %v", boxes[0].Content.Kind)
	}
}

func TestEngineSolverFailure(t *testing.T) {
	e := newTestEngine(t, text.FixedWidthMeasurer{CharWidth: 6})
	e.SetOptions(Options{NewTree: func() ConstraintTree { return failingTree{flex.NewTree()} }})

	_, err := e.Layout(html.NewElement("p", "", html.Text("x")), ContentArea{Width: 100}, false)
	if !errors.Is(err, ErrCalculationFailed) {
		t.Fatalf("Expected ErrCalculationFailed, got %v", err)
	}
	var calc *CalculationError
	if !errors.As(err, &calc) || calc.Err == nil {
		t.Errorf("Expected solver cause to be kept, got %v", err)
	}
}

func TestExtractMissingSideTableEntry(t *testing.T) {
	tree := flex.NewTree()
	id := tree.NewLeaf(flex.DefaultStyle(), nil)
	if err := tree.Compute(id, flex.AvailableSpace{Kind: flex.Definite, Value: 100}); err != nil {
		t.Fatalf("Compute: %v", err)
	}

	_, err := NewExtractor(text.FixedWidthMeasurer{CharWidth: 6}, zaptest.NewLogger(t)).Extract(tree, &SideTable{}, id, 0, 0)
	if !errors.Is(err, ErrCalculationFailed) {
		t.Errorf("Expected ErrCalculationFailed, got %v", err)
	}
}

func TestBoxTranslate(t *testing.T) {
	child := &LayoutBox{X: 10, Y: 20, Width: 5, Height: 5}
	parent := &LayoutBox{X: 0, Y: 10, Width: 50, Height: 50, Content: BoxContent{Kind: ContentContainer, Children: []*LayoutBox{child}}}

	parent.Translate(0, -10)
	if parent.Y != 0 || child.Y != 10 || child.X != 10 {
		t.Errorf("Translate moved boxes to %v and %v,%v", parent.Y, child.X, child.Y)
	}
}

func TestLayoutBoxYAML(t *testing.T) {
	box := &LayoutBox{
		X: 36, Y: 36, Width: 540, Height: 12,
		Element: ElementHeading2,
		Style:   style.Declaration{Text: style.TextStyle{FontSize: style.Ptr(13.5)}},
		Content: BoxContent{Kind: ContentText, Lines: []string{"Experience"}},
	}
	data, err := yaml.Marshal(box)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	out := string(data)
	for _, want := range []string{"element: h2", "kind: text", "- Experience"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in\n%s", want, out)
		}
	}
	if strings.Contains(out, "style") || strings.Contains(out, "children") {
		t.Errorf("Unexpected fields in\n%s", out)
	}
}
