package html

import (
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
)

const resume = `<!DOCTYPE html>
<html lang="en-US">
<head><title> Jane Doe - Resume </title><style>body{color:red}</style></head>
<body class="max-w-4xl  p-8">
  <script>alert(1)</script>
  <!-- comment -->
  <h1 class="text-3xl font-bold" style="color: #111">Jane Doe</h1>
  <p>Line one<br>line two <strong class="font-bold">bold</strong></p>
  <div hidden>secret</div>
</body>
</html>`

func TestParse(t *testing.T) {
	p := NewParser(zaptest.NewLogger(t))
	doc, err := p.ParseString(resume)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	if doc.Title != "Jane Doe - Resume" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Lang != "en-US" {
		t.Errorf("lang = %q", doc.Lang)
	}
	if doc.Node == nil {
		t.Error("raw node not kept")
	}

	root := doc.Root
	if root.Tag != "body" || root.ClassName != "max-w-4xl p-8" {
		t.Errorf("root = %q %q", root.Tag, root.ClassName)
	}

	var elements []*Element
	for _, c := range root.Children {
		if !c.IsText() {
			elements = append(elements, c.Element)
		} else if strings.TrimSpace(c.Text) != "" {
			t.Errorf("unexpected text child %q", c.Text)
		}
	}
	if len(elements) != 2 {
		t.Fatalf("got %d element children, want 2 (script, comment and hidden dropped)", len(elements))
	}

	h1 := elements[0]
	if h1.Tag != "h1" || h1.ClassName != "text-3xl font-bold" || h1.InlineStyle != "color: #111" {
		t.Errorf("h1 = %+v", h1)
	}
	if got := h1.TextContent(); got != "Jane Doe" {
		t.Errorf("h1 text = %q", got)
	}

	para := elements[1]
	if got := strings.Join(strings.Fields(para.TextContent()), " "); got != "Line one line two bold" {
		t.Errorf("paragraph text = %q", got)
	}
	last := para.Children[len(para.Children)-1]
	if last.IsText() || last.Element.Tag != "strong" {
		t.Errorf("last paragraph child = %+v", last)
	}
}

func TestNewElement(t *testing.T) {
	el := NewElement("div", "flex", Text("a"), Node(NewElement("span", "", Text("b")))).WithStyle("gap: 4px")
	if el.InlineStyle != "gap: 4px" || len(el.Children) != 2 {
		t.Fatalf("el = %+v", el)
	}
	if el.TextContent() != "ab" {
		t.Errorf("TextContent = %q", el.TextContent())
	}
}
