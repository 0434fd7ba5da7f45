package html

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Child is either a text run or a nested element
type Child struct {
	Text    string
	Element *Element
}

// IsText reports whether c is a text run
func (c Child) IsText() bool {
	return c.Element == nil
}

// Text returns a text child
func Text(s string) Child {
	return Child{Text: s}
}

// Node returns an element child
func Node(e *Element) Child {
	return Child{Element: e}
}

// Element is a normalized markup element: tag, class list, inline style and
// ordered children. Text runs never have children.
type Element struct {
	Tag         string
	ClassName   string
	InlineStyle string
	Children    []Child
}

// NewElement builds an element, mostly useful in tests
func NewElement(tag, className string, children ...Child) *Element {
	return &Element{Tag: tag, ClassName: className, Children: children}
}

// WithStyle sets the inline style and returns e
func (e *Element) WithStyle(inline string) *Element {
	e.InlineStyle = inline
	return e
}

// Document is a parsed page
type Document struct {
	// Root is the normalized <body>
	Root *Element
	// Node is the parsed tree, kept for query based extraction
	Node  *html.Node
	Title string
	Lang  string
}

// Parser turns markup into normalized element trees
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new HTML parser
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("html")}
}

// ParseString parses HTML from a string
func (p *Parser) ParseString(content string) (*Document, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse parses HTML from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse html: %w", err)
	}

	doc := &Document{Node: node}
	var body *html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Html:
				doc.Lang = attr(n, "lang")
			case atom.Title:
				if doc.Title == "" {
					doc.Title = strings.TrimSpace(textContent(n))
				}
			case atom.Body:
				if body == nil {
					body = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)

	if body == nil {
		// html.Parse always synthesizes a body, this only guards odd inputs
		doc.Root = &Element{Tag: "body"}
		return doc, nil
	}
	doc.Root = p.convert(body)
	p.log.Debug("Document parsed", zap.String("title", doc.Title), zap.String("lang", doc.Lang), zap.Int("children", len(doc.Root.Children)))
	return doc, nil
}

// convert normalizes an element node, dropping scripts, styles, comments and
// other non-rendered content
func (p *Parser) convert(n *html.Node) *Element {
	el := &Element{
		Tag:         strings.ToLower(n.Data),
		ClassName:   strings.Join(strings.Fields(attr(n, "class")), " "),
		InlineStyle: strings.TrimSpace(attr(n, "style")),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if c.Data == "" {
				continue
			}
			el.Children = append(el.Children, Text(c.Data))
		case html.ElementNode:
			if skipped(c) {
				continue
			}
			if c.DataAtom == atom.Br {
				el.Children = append(el.Children, Text(" "))
				continue
			}
			el.Children = append(el.Children, Node(p.convert(c)))
		}
	}
	return el
}

func skipped(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Script, atom.Style, atom.Head, atom.Template, atom.Noscript, atom.Link, atom.Meta, atom.Svg, atom.Img:
		return true
	}
	_, hidden := findAttr(n, "hidden")
	return hidden
}

func findAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := findAttr(n, key)
	return v
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// TextContent returns the concatenated text of e and its descendants
func (e *Element) TextContent() string {
	var b strings.Builder
	for _, c := range e.Children {
		if c.IsText() {
			b.WriteString(c.Text)
			continue
		}
		b.WriteString(c.Element.TextContent())
	}
	return b.String()
}
