package layout

import (
	"strings"

	"github.com/gompdf/cvpdf/internal/style"
)

// ContentKind tells what a LayoutBox holds
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentText
	ContentContainer
)

func (k ContentKind) String() string {
	switch k {
	case ContentText:
		return "text"
	case ContentContainer:
		return "container"
	}
	return "empty"
}

// MarshalYAML writes the kind by name
func (k ContentKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// ElementType is the semantic classification of the element a box came from
type ElementType int

const (
	ElementOther ElementType = iota
	ElementRoot
	ElementHeading1
	ElementHeading2
	ElementHeading3
	ElementHeading4
	ElementHeading5
	ElementHeading6
	ElementParagraph
	ElementDiv
	ElementSection
	ElementList
	ElementListItem
	ElementInline
	ElementLink
)

var elementNames = map[ElementType]string{
	ElementOther:     "other",
	ElementRoot:      "root",
	ElementHeading1:  "h1",
	ElementHeading2:  "h2",
	ElementHeading3:  "h3",
	ElementHeading4:  "h4",
	ElementHeading5:  "h5",
	ElementHeading6:  "h6",
	ElementParagraph: "p",
	ElementDiv:       "div",
	ElementSection:   "section",
	ElementList:      "list",
	ElementListItem:  "li",
	ElementInline:    "inline",
	ElementLink:      "a",
}

func (e ElementType) String() string {
	if n, ok := elementNames[e]; ok {
		return n
	}
	return "other"
}

// MarshalYAML writes the element by name
func (e ElementType) MarshalYAML() (any, error) {
	return e.String(), nil
}

// ClassifyTag maps an element tag onto its ElementType
func ClassifyTag(tag string) ElementType {
	switch strings.ToLower(tag) {
	case "html", "body":
		return ElementRoot
	case "h1":
		return ElementHeading1
	case "h2":
		return ElementHeading2
	case "h3":
		return ElementHeading3
	case "h4":
		return ElementHeading4
	case "h5":
		return ElementHeading5
	case "h6":
		return ElementHeading6
	case "p":
		return ElementParagraph
	case "div":
		return ElementDiv
	case "section", "article", "main", "header", "footer", "aside", "nav":
		return ElementSection
	case "ul", "ol", "dl":
		return ElementList
	case "li", "dt", "dd":
		return ElementListItem
	case "span", "strong", "b", "em", "i", "code", "small", "br":
		return ElementInline
	case "a":
		return ElementLink
	}
	return ElementOther
}

// HeadingLevel returns 1-6 for headings and 0 otherwise
func (e ElementType) HeadingLevel() int {
	if e >= ElementHeading1 && e <= ElementHeading6 {
		return int(e-ElementHeading1) + 1
	}
	return 0
}

// IsHeading reports whether e is h1-h6
func (e ElementType) IsHeading() bool {
	return e.HeadingLevel() > 0
}

// BoxContent is the payload of a LayoutBox. Lines is set for text boxes,
// Children for containers.
type BoxContent struct {
	Kind     ContentKind  `yaml:"kind"`
	Lines    []string     `yaml:"lines,omitempty"`
	Children []*LayoutBox `yaml:"children,omitempty"`
}

// LayoutBox is a positioned box in page coordinates (points, origin top left)
type LayoutBox struct {
	X       float64           `yaml:"x"`
	Y       float64           `yaml:"y"`
	Width   float64           `yaml:"width"`
	Height  float64           `yaml:"height"`
	Content BoxContent        `yaml:"content"`
	Style   style.Declaration `yaml:"-"`
	Element ElementType       `yaml:"element"`
}

// Bottom returns the y coordinate of the lower edge
func (b *LayoutBox) Bottom() float64 {
	return b.Y + b.Height
}

// Translate moves b and its whole subtree by (dx, dy)
func (b *LayoutBox) Translate(dx, dy float64) {
	b.X += dx
	b.Y += dy
	for _, c := range b.Content.Children {
		c.Translate(dx, dy)
	}
}

// HasText reports whether the subtree of b contains at least one non-empty line
func (b *LayoutBox) HasText() bool {
	switch b.Content.Kind {
	case ContentText:
		for _, l := range b.Content.Lines {
			if strings.TrimSpace(l) != "" {
				return true
			}
		}
	case ContentContainer:
		for _, c := range b.Content.Children {
			if c.HasText() {
				return true
			}
		}
	}
	return false
}

// Walk calls fn for b and every descendant in document order until fn returns false
func (b *LayoutBox) Walk(fn func(*LayoutBox) bool) bool {
	if !fn(b) {
		return false
	}
	for _, c := range b.Content.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}
