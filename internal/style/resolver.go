package style

import (
	"strconv"
	"strings"

	"github.com/gompdf/cvpdf/internal/parser/css"
	"go.uber.org/zap"
)

// Resolver turns an element's class list and inline style into a concrete style,
// inheriting typography from the parent.
type Resolver interface {
	Resolve(className, inlineStyle string, parent Declaration) Declaration
}

// Source represents where a declaration came from; later sources win
type Source int

const (
	SourceClass Source = iota
	SourceInline
	SourceImportant
)

// applyVariants lists the responsive/state prefixes honored for print output.
// A Letter page is 816 CSS pixels wide, so sm and md breakpoints are active.
var applyVariants = map[string]bool{
	"print": true,
	"sm":    true,
	"md":    true,
}

// UtilityResolver resolves utility classes and inline style attributes
type UtilityResolver struct {
	log    *zap.Logger
	parser *css.Parser
}

// NewResolver creates a new utility class resolver
func NewResolver(log *zap.Logger) *UtilityResolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &UtilityResolver{
		log:    log.Named("style"),
		parser: css.NewParser(log),
	}
}

// Resolve computes the style for one element
func (r *UtilityResolver) Resolve(className, inlineStyle string, parent Declaration) Declaration {
	var explicit Declaration

	var important []string
	for _, class := range strings.Fields(className) {
		class, ok := stripVariants(class)
		if !ok {
			continue
		}
		if strings.HasPrefix(class, "!") {
			important = append(important, class[1:])
			continue
		}
		r.applyClass(&explicit, class)
	}

	fontSize := parent.Text.Size()
	if explicit.Text.FontSize != nil {
		fontSize = *explicit.Text.FontSize
	}

	decls := r.parser.ParseInline(inlineStyle)
	for _, d := range decls {
		if !d.Important {
			r.applyDeclaration(&explicit, d, fontSize)
		}
	}
	for _, class := range important {
		r.applyClass(&explicit, class)
	}
	for _, d := range decls {
		if d.Important {
			r.applyDeclaration(&explicit, d, fontSize)
		}
	}

	return ApplyInherited(explicit, parent)
}

// stripVariants removes "md:" style prefixes, reporting false for inactive variants
func stripVariants(class string) (string, bool) {
	for {
		prefix, rest, ok := strings.Cut(class, ":")
		if !ok {
			return class, true
		}
		if !applyVariants[prefix] {
			return "", false
		}
		class = rest
	}
}

func (r *UtilityResolver) applyClass(d *Declaration, class string) {
	if apply, ok := exactClasses[class]; ok {
		apply(d)
		return
	}

	negative := strings.HasPrefix(class, "-")
	name := strings.TrimPrefix(class, "-")
	for _, u := range prefixedClasses {
		if !strings.HasPrefix(name, u.prefix) {
			continue
		}
		if u.apply(d, name[len(u.prefix):]) {
			if negative {
				negateMargins(d, u.prefix)
			}
			return
		}
	}
	r.log.Debug("Unknown utility class", zap.String("class", class))
}

func negateMargins(d *Declaration, prefix string) {
	if !strings.HasPrefix(prefix, "m") {
		return
	}
	m := &d.Box.Margin
	m.Top, m.Right, m.Bottom, m.Left = -abs(m.Top), -abs(m.Right), -abs(m.Bottom), -abs(m.Left)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// applyDeclaration applies one inline CSS declaration
func (r *UtilityResolver) applyDeclaration(d *Declaration, decl *css.Declaration, fontSize float64) {
	v := decl.Value
	ok := true
	switch decl.Property {
	case "font-family":
		d.Text.FontFamily = Ptr(v)
	case "font-size":
		var f float64
		if f, ok = parsePoints(v, fontSize); ok {
			d.Text.FontSize = Ptr(f)
		}
	case "font-weight":
		ok = applyFontWeight(d, v)
	case "font-style":
		switch v {
		case "italic", "oblique":
			d.Text.FontStyle = Ptr(FontStyleItalic)
		default:
			d.Text.FontStyle = Ptr(FontStyleNormal)
		}
	case "color":
		var c Color
		if c, ok = parseColor(v); ok {
			d.Text.Color = &c
		}
	case "text-align":
		ok = applyText(d, v)
	case "line-height":
		if m, err := strconv.ParseFloat(v, 64); err == nil {
			d.Text.LineHeight = &LineHeight{Value: m}
		} else if l, lok := parseLength(v, fontSize); lok {
			if l.Percent {
				d.Text.LineHeight = &LineHeight{Value: l.Value / 100}
			} else {
				d.Text.LineHeight = &LineHeight{Value: l.Value, Absolute: true}
			}
		} else {
			ok = false
		}
	case "letter-spacing":
		var f float64
		if f, ok = parsePoints(v, fontSize); ok {
			d.Text.LetterSpacing = Ptr(f / fontSize)
		}
	case "text-decoration", "text-decoration-line":
		switch {
		case strings.Contains(v, "underline"):
			d.Text.TextDecoration = Ptr(DecorationUnderline)
		case strings.Contains(v, "line-through"):
			d.Text.TextDecoration = Ptr(DecorationLineThrough)
		default:
			d.Text.TextDecoration = Ptr(DecorationNone)
		}
	case "text-transform":
		ok = r.applyClassValue(d, map[string]string{
			"uppercase": "uppercase", "lowercase": "lowercase", "capitalize": "capitalize", "none": "normal-case",
		}, v)
	case "margin":
		var e Edges
		if e, ok = parseEdges(v, fontSize); ok {
			d.Box.Margin = e
		}
	case "margin-top", "margin-right", "margin-bottom", "margin-left":
		ok = setEdge(&d.Box.Margin, strings.TrimPrefix(decl.Property, "margin-"), v, fontSize)
	case "padding":
		var e Edges
		if e, ok = parseEdges(v, fontSize); ok {
			d.Box.Padding = e
		}
	case "padding-top", "padding-right", "padding-bottom", "padding-left":
		ok = setEdge(&d.Box.Padding, strings.TrimPrefix(decl.Property, "padding-"), v, fontSize)
	case "border", "border-top", "border-right", "border-bottom", "border-left":
		ok = applyBorderShorthand(d, strings.TrimPrefix(strings.TrimPrefix(decl.Property, "border"), "-"), v, fontSize)
	case "border-width":
		var e Edges
		if e, ok = parseEdges(v, fontSize); ok {
			d.Box.Border.Top.Width, d.Box.Border.Right.Width = e.Top, e.Right
			d.Box.Border.Bottom.Width, d.Box.Border.Left.Width = e.Bottom, e.Left
		}
	case "border-color":
		var c Color
		if c, ok = parseColor(v); ok {
			setBorderColor(&d.Box.Border, "trbl", c)
		}
	case "border-radius":
		d.Box.BorderRadius, ok = parsePoints(v, fontSize)
	case "background", "background-color":
		var c Color
		if c, ok = parseColor(v); ok {
			d.Box.BackgroundColor = &c
		}
	case "width", "height", "max-width", "max-height":
		var l *Length
		if pl, lok := parseLength(v, fontSize); lok {
			l = &pl
		}
		switch decl.Property {
		case "width":
			d.Box.Width = l
		case "height":
			d.Box.Height = l
		case "max-width":
			d.Box.MaxWidth = l
		case "max-height":
			d.Box.MaxHeight = l
		}
	case "opacity":
		f, err := strconv.ParseFloat(v, 64)
		if ok = err == nil; ok {
			d.Box.Opacity = Ptr(f)
		}
	case "display":
		ok = r.applyClassValue(d, map[string]string{
			"flex": "flex", "inline-flex": "flex", "block": "block", "inline": "inline",
			"inline-block": "inline", "none": "hidden",
		}, v)
	case "flex-direction":
		ok = r.applyClassValue(d, map[string]string{
			"row": "flex-row", "row-reverse": "flex-row", "column": "flex-col", "column-reverse": "flex-col",
		}, v)
	case "flex-wrap":
		d.Flex.Wrap = v == "wrap" || v == "wrap-reverse"
	case "flex-grow":
		f, err := strconv.ParseFloat(v, 64)
		if ok = err == nil; ok {
			d.Flex.Grow = f
		}
	case "flex-shrink":
		f, err := strconv.ParseFloat(v, 64)
		if ok = err == nil; ok {
			d.Flex.Shrink = Ptr(f)
		}
	case "flex":
		ok = applyFlexShorthand(d, v, fontSize)
	case "justify-content":
		ok = r.applyClassValue(d, map[string]string{
			"flex-start": "justify-start", "start": "justify-start", "flex-end": "justify-end", "end": "justify-end",
			"center": "justify-center", "space-between": "justify-between", "space-around": "justify-around",
			"space-evenly": "justify-evenly",
		}, v)
	case "align-items":
		ok = r.applyClassValue(d, map[string]string{
			"flex-start": "items-start", "start": "items-start", "flex-end": "items-end", "end": "items-end",
			"center": "items-center", "stretch": "items-stretch", "baseline": "items-baseline",
		}, v)
	case "gap", "row-gap", "column-gap":
		parts := strings.Fields(v)
		if len(parts) == 0 {
			ok = false
			break
		}
		var row, col float64
		if row, ok = parsePoints(parts[0], fontSize); !ok {
			break
		}
		col = row
		if len(parts) > 1 {
			if col, ok = parsePoints(parts[1], fontSize); !ok {
				break
			}
		}
		switch decl.Property {
		case "row-gap":
			d.Flex.RowGap = row
		case "column-gap":
			d.Flex.ColumnGap = row
		default:
			d.Flex.RowGap, d.Flex.ColumnGap = row, col
		}
	default:
		r.log.Debug("Unsupported inline property", zap.String("property", decl.Property))
		return
	}
	if !ok {
		r.log.Debug("Invalid inline value", zap.String("property", decl.Property), zap.String("value", v))
	}
}

// applyClassValue maps a CSS keyword onto the equivalent utility class
func (r *UtilityResolver) applyClassValue(d *Declaration, classes map[string]string, v string) bool {
	class, ok := classes[strings.ToLower(v)]
	if ok {
		r.applyClass(d, class)
	}
	return ok
}

func applyFontWeight(d *Declaration, v string) bool {
	switch strings.ToLower(v) {
	case "normal":
		d.Text.FontWeight = Ptr(WeightNormal)
		return true
	case "bold", "bolder":
		d.Text.FontWeight = Ptr(WeightBold)
		return true
	case "lighter":
		d.Text.FontWeight = Ptr(WeightLight)
		return true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return false
	}
	d.Text.FontWeight = Ptr(FontWeight(n))
	return true
}

func setEdge(e *Edges, side, v string, fontSize float64) bool {
	f, ok := parsePoints(v, fontSize)
	if strings.EqualFold(v, "auto") {
		f, ok = 0, true
	}
	if !ok {
		return false
	}
	switch side {
	case "top":
		e.Top = f
	case "right":
		e.Right = f
	case "bottom":
		e.Bottom = f
	case "left":
		e.Left = f
	}
	return true
}

// applyBorderShorthand parses "1px solid #ccc" for all sides or one side
func applyBorderShorthand(d *Declaration, side, v string, fontSize float64) bool {
	sides := "trbl"
	if side != "" {
		sides = side[:1]
	}
	if v == "none" || v == "0" {
		setBorderWidth(&d.Box.Border, sides, 0)
		return true
	}
	width, hasWidth := PxToPt, false
	var color *Color
	for _, part := range strings.Fields(v) {
		if f, ok := parsePoints(part, fontSize); ok {
			width, hasWidth = f, true
			continue
		}
		if c, ok := parseColor(part); ok {
			color = &c
		}
	}
	if !hasWidth && color == nil && !strings.Contains(v, "solid") && !strings.Contains(v, "dashed") && !strings.Contains(v, "dotted") {
		return false
	}
	setBorderWidth(&d.Box.Border, sides, width)
	if color != nil {
		setBorderColor(&d.Box.Border, sides, *color)
	}
	return true
}

// applyFlexShorthand parses "flex: <grow> [<shrink>] [<basis>]" and keywords
func applyFlexShorthand(d *Declaration, v string, fontSize float64) bool {
	switch v {
	case "none":
		exactClasses["flex-none"](d)
		return true
	case "auto":
		exactClasses["flex-auto"](d)
		return true
	}
	parts := strings.Fields(v)
	if len(parts) == 0 {
		return false
	}
	grow, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return false
	}
	d.Flex.Grow, d.Flex.Shrink, d.Flex.Basis = grow, Ptr(1.0), Percent(0)
	for _, p := range parts[1:] {
		if f, err := strconv.ParseFloat(p, 64); err == nil {
			d.Flex.Shrink = Ptr(f)
			continue
		}
		if l, ok := parseLength(p, fontSize); ok {
			d.Flex.Basis = &l
		} else if p == "auto" {
			d.Flex.Basis = nil
		}
	}
	return true
}
