package layout

import (
	"strings"

	"go.uber.org/zap"

	"github.com/gompdf/cvpdf/internal/flex"
	"github.com/gompdf/cvpdf/internal/parser/html"
	"github.com/gompdf/cvpdf/internal/style"
	"github.com/gompdf/cvpdf/internal/text"
)

// EmphasisGap is the column gap given to an element forced into a flex row
// because it holds emphasized inline runs.
const EmphasisGap = 3.0

// tagDefaults are user agent styles expressed as utility classes. They are
// prepended so the element's own classes override them.
var tagDefaults = map[string]string{
	"strong": "font-bold",
	"b":      "font-bold",
	"em":     "italic",
	"i":      "italic",
	"a":      "underline",
}

var inlineTags = map[string]bool{
	"span": true, "strong": true, "em": true, "b": true, "i": true,
	"a": true, "code": true, "br": true,
}

var emphasisTags = map[string]bool{
	"span": true, "strong": true, "em": true, "b": true, "i": true,
}

var emphasisClasses = map[string]bool{
	"font-bold": true, "font-semibold": true, "font-medium": true,
}

// Builder turns a normalized element tree into solver nodes, recording each
// node in the side table.
type Builder struct {
	tree     ConstraintTree
	side     *SideTable
	resolver style.Resolver
	measurer text.Measurer
	wrap     text.WrapOptions
	log      *zap.Logger

	// StripPageBox drops max-width, padding and background from the root
	// element because the page content area already realizes them.
	StripPageBox bool
}

// NewBuilder creates a builder writing into tree and side
func NewBuilder(tree ConstraintTree, side *SideTable, resolver style.Resolver, measurer text.Measurer, wrap text.WrapOptions, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		tree:     tree,
		side:     side,
		resolver: resolver,
		measurer: measurer,
		wrap:     wrap,
		log:      log,
	}
}

// Build creates the solver subtree for el. A root hidden with display:none
// yields an empty node so callers always get a valid id.
func (b *Builder) Build(el *html.Element, parent style.Declaration) (flex.NodeID, error) {
	id, ok, err := b.build(el, parent, true)
	if err != nil {
		return -1, err
	}
	if !ok {
		id = b.tree.NewLeaf(flex.DefaultStyle(), nil)
		b.side.Set(id, NodeInfo{Element: ClassifyTag(el.Tag), Kind: ContentEmpty})
	}
	return id, nil
}

func (b *Builder) build(el *html.Element, parent style.Declaration, root bool) (flex.NodeID, bool, error) {
	if el == nil {
		return -1, false, calcErrorf(nil, "nil element")
	}

	decl := b.resolver.Resolve(classesFor(el), el.InlineStyle, parent)
	if decl.Flex.Display == style.DisplayNone {
		return -1, false, nil
	}
	if root && b.StripPageBox {
		decl.Box.MaxWidth = nil
		decl.Box.Padding = style.Edges{}
		decl.Box.BackgroundColor = nil
	}
	element := ClassifyTag(el.Tag)

	treatAsFlex := decl.Flex.Display == style.DisplayFlex
	forced := false
	if !treatAsFlex && hasEmphasisChild(el) {
		decl.Flex.Display = style.DisplayFlex
		decl.Flex.Direction = style.DirectionRow
		decl.Flex.ColumnGap = EmphasisGap
		treatAsFlex, forced = true, true
	}

	var own string
	if treatAsFlex {
		own = directText(el)
	} else {
		own = inlineText(el)
	}

	blocks := blockChildren(el, treatAsFlex)
	if own != "" && !decl.Box.Border.Any() && len(blocks) == 0 {
		ctx := NewTextContext(own, decl.Text, b.wrap)
		id := b.tree.NewLeaf(solverStyle(decl), ctx.MeasureFunc(b.measurer))
		b.side.Set(id, NodeInfo{Element: element, Style: decl, Kind: ContentText, Text: ctx})
		return id, true, nil
	}

	children := make([]flex.NodeID, 0, len(blocks)+1)
	for _, child := range blocks {
		id, ok, err := b.build(child, decl, false)
		if err != nil {
			return -1, false, err
		}
		if ok {
			children = append(children, id)
		}
	}

	switch {
	case own == "":
	case len(children) > 0 && !treatAsFlex:
		// Loose text between block children of a block container is not laid out
		b.log.Debug("Dropping text beside block children", zap.String("tag", el.Tag), zap.Int("children", len(children)))
	default:
		// A container draws its own border and background once, the text
		// child only inherits typography. In a row the text keeps its
		// document position relative to the runs beside it.
		textStyle := style.InheritText(decl)
		ctx := NewTextContext(own, textStyle.Text, b.wrap)
		id := b.tree.NewLeaf(solverStyle(textStyle), ctx.MeasureFunc(b.measurer))
		b.side.Set(id, NodeInfo{Element: element, Style: textStyle, Kind: ContentText, Text: ctx})
		if textLeads(el, treatAsFlex) {
			children = append([]flex.NodeID{id}, children...)
		} else {
			children = append(children, id)
		}
	}

	id, err := b.tree.NewContainer(solverStyle(decl), children)
	if err != nil {
		return -1, false, calcErrorf(err, "solver rejected <%s>", el.Tag)
	}
	kind := ContentContainer
	if len(children) == 0 {
		kind = ContentEmpty
	}
	b.side.Set(id, NodeInfo{Element: element, Style: decl, Kind: kind})
	if forced {
		b.log.Debug("Emphasis runs laid out as flex row", zap.String("tag", el.Tag), zap.Int("children", len(children)))
	}
	return id, true, nil
}

func classesFor(el *html.Element) string {
	def, ok := tagDefaults[strings.ToLower(el.Tag)]
	if !ok {
		return el.ClassName
	}
	if el.ClassName == "" {
		return def
	}
	return def + " " + el.ClassName
}

func isInlineTag(tag string) bool {
	return inlineTags[strings.ToLower(tag)]
}

// hasEmphasisChild reports whether el directly holds an inline run styled
// with a bold, semibold or medium weight class
func hasEmphasisChild(el *html.Element) bool {
	for _, c := range el.Children {
		if c.IsText() || !emphasisTags[strings.ToLower(c.Element.Tag)] {
			continue
		}
		for _, class := range strings.Fields(c.Element.ClassName) {
			if i := strings.LastIndexByte(class, ':'); i >= 0 {
				class = class[i+1:]
			}
			if emphasisClasses[strings.TrimPrefix(class, "!")] {
				return true
			}
		}
	}
	return false
}

// directText joins the element's own text runs, ignoring nested elements
func directText(el *html.Element) string {
	var parts []string
	for _, c := range el.Children {
		if c.IsText() {
			parts = append(parts, strings.Fields(c.Text)...)
		}
	}
	return strings.Join(parts, " ")
}

// inlineText concatenates the element's text with the text of its inline
// descendants; block descendants become nodes of their own
func inlineText(el *html.Element) string {
	var b strings.Builder
	var walk func(*html.Element)
	walk = func(e *html.Element) {
		for _, c := range e.Children {
			switch {
			case c.IsText():
				b.WriteString(c.Text)
			case isInlineTag(c.Element.Tag):
				walk(c.Element)
			default:
				b.WriteByte(' ')
			}
		}
	}
	walk(el)
	return strings.Join(strings.Fields(b.String()), " ")
}

// blockChildren lists the element children that become nodes of their own
func blockChildren(el *html.Element, treatAsFlex bool) []*html.Element {
	var out []*html.Element
	for _, c := range el.Children {
		if c.IsText() {
			continue
		}
		if treatAsFlex || !isInlineTag(c.Element.Tag) {
			out = append(out, c.Element)
		}
	}
	return out
}

// textLeads reports whether the element's own text starts before the first
// child that became a node
func textLeads(el *html.Element, treatAsFlex bool) bool {
	for _, c := range el.Children {
		switch {
		case c.IsText():
			if strings.TrimSpace(c.Text) != "" {
				return true
			}
		case treatAsFlex || !isInlineTag(c.Element.Tag):
			return false
		case strings.TrimSpace(c.Element.TextContent()) != "":
			return true
		}
	}
	return false
}
