package style

import (
	"strconv"
	"strings"
)

// SpacingUnit is one step of the utility spacing scale (0.25rem = 4px = 3pt)
const SpacingUnit = 3.0

var textSizes = map[string]float64{
	"xs": 9, "sm": 10.5, "base": 12, "lg": 13.5, "xl": 15,
	"2xl": 18, "3xl": 22.5, "4xl": 27, "5xl": 36, "6xl": 45,
}

var fontWeights = map[string]FontWeight{
	"thin": 100, "extralight": 200, "light": 300, "normal": 400, "medium": 500,
	"semibold": 600, "bold": 700, "extrabold": 800, "black": 900,
}

var fontFamilies = map[string]string{
	"sans":  "Helvetica",
	"serif": "Times",
	"mono":  "Courier",
}

var maxWidths = map[string]float64{
	"xs": 240, "sm": 288, "md": 336, "lg": 384, "xl": 432, "2xl": 504,
	"3xl": 576, "4xl": 672, "5xl": 768, "6xl": 864, "7xl": 960,
}

var leadings = map[string]float64{
	"none": 1, "tight": 1.25, "snug": 1.375, "normal": 1.5, "relaxed": 1.625, "loose": 2,
}

var trackings = map[string]float64{
	"tighter": -0.05, "tight": -0.025, "normal": 0, "wide": 0.025, "wider": 0.05, "widest": 0.1,
}

var radii = map[string]float64{
	"none": 0, "sm": 1.5, "md": 4.5, "lg": 6, "xl": 9, "2xl": 12, "3xl": 18, "full": 9999,
}

// exactClasses are utilities without a value part
var exactClasses = map[string]func(d *Declaration){
	"flex":         func(d *Declaration) { d.Flex.Display = DisplayFlex },
	"inline-flex":  func(d *Declaration) { d.Flex.Display = DisplayFlex },
	"block":        func(d *Declaration) { d.Flex.Display = DisplayBlock },
	"inline":       func(d *Declaration) { d.Flex.Display = DisplayInline },
	"inline-block": func(d *Declaration) { d.Flex.Display = DisplayInline },
	"hidden":       func(d *Declaration) { d.Flex.Display = DisplayNone },
	"flex-row":     func(d *Declaration) { d.Flex.Direction = DirectionRow },
	"flex-col":     func(d *Declaration) { d.Flex.Direction = DirectionColumn },
	"flex-wrap":    func(d *Declaration) { d.Flex.Wrap = true },
	"flex-nowrap":  func(d *Declaration) { d.Flex.Wrap = false },
	"flex-1": func(d *Declaration) {
		d.Flex.Grow, d.Flex.Shrink, d.Flex.Basis = 1, Ptr(1.0), Percent(0)
	},
	"flex-auto":     func(d *Declaration) { d.Flex.Grow, d.Flex.Shrink, d.Flex.Basis = 1, Ptr(1.0), nil },
	"flex-initial":  func(d *Declaration) { d.Flex.Grow, d.Flex.Shrink = 0, Ptr(1.0) },
	"flex-none":     func(d *Declaration) { d.Flex.Grow, d.Flex.Shrink = 0, Ptr(0.0) },
	"grow":          func(d *Declaration) { d.Flex.Grow = 1 },
	"flex-grow":     func(d *Declaration) { d.Flex.Grow = 1 },
	"grow-0":        func(d *Declaration) { d.Flex.Grow = 0 },
	"flex-grow-0":   func(d *Declaration) { d.Flex.Grow = 0 },
	"shrink":        func(d *Declaration) { d.Flex.Shrink = Ptr(1.0) },
	"flex-shrink":   func(d *Declaration) { d.Flex.Shrink = Ptr(1.0) },
	"shrink-0":      func(d *Declaration) { d.Flex.Shrink = Ptr(0.0) },
	"flex-shrink-0": func(d *Declaration) { d.Flex.Shrink = Ptr(0.0) },
	"italic":        func(d *Declaration) { d.Text.FontStyle = Ptr(FontStyleItalic) },
	"not-italic":    func(d *Declaration) { d.Text.FontStyle = Ptr(FontStyleNormal) },
	"underline":     func(d *Declaration) { d.Text.TextDecoration = Ptr(DecorationUnderline) },
	"line-through":  func(d *Declaration) { d.Text.TextDecoration = Ptr(DecorationLineThrough) },
	"no-underline":  func(d *Declaration) { d.Text.TextDecoration = Ptr(DecorationNone) },
	"uppercase":     func(d *Declaration) { d.Text.TextTransform = Ptr(TransformUppercase) },
	"lowercase":     func(d *Declaration) { d.Text.TextTransform = Ptr(TransformLowercase) },
	"capitalize":    func(d *Declaration) { d.Text.TextTransform = Ptr(TransformCapitalize) },
	"normal-case":   func(d *Declaration) { d.Text.TextTransform = Ptr(TransformNone) },
	"border": func(d *Declaration) {
		setBorderWidth(&d.Box.Border, "trbl", PxToPt)
	},
	"rounded": func(d *Declaration) { d.Box.BorderRadius = 3 },
}

// utility is a class prefix and the function that applies its value part
type utility struct {
	prefix string
	apply  func(d *Declaration, value string) bool
}

// prefixedClasses is ordered so longer prefixes are tried first
var prefixedClasses = []utility{
	{"max-w-", func(d *Declaration, v string) bool {
		l, ok := maxWidthValue(v)
		d.Box.MaxWidth = l
		return ok
	}},
	{"max-h-", func(d *Declaration, v string) bool {
		l, ok := sizeValue(v)
		d.Box.MaxHeight = l
		return ok
	}},
	{"gap-x-", spacingSetter(func(d *Declaration, f float64) { d.Flex.ColumnGap = f })},
	{"gap-y-", spacingSetter(func(d *Declaration, f float64) { d.Flex.RowGap = f })},
	{"gap-", spacingSetter(func(d *Declaration, f float64) { d.Flex.RowGap, d.Flex.ColumnGap = f, f })},
	{"mx-", spacingSetter(func(d *Declaration, f float64) { d.Box.Margin.Left, d.Box.Margin.Right = f, f })},
	{"my-", spacingSetter(func(d *Declaration, f float64) { d.Box.Margin.Top, d.Box.Margin.Bottom = f, f })},
	{"mt-", spacingSetter(func(d *Declaration, f float64) { d.Box.Margin.Top = f })},
	{"mr-", spacingSetter(func(d *Declaration, f float64) { d.Box.Margin.Right = f })},
	{"mb-", spacingSetter(func(d *Declaration, f float64) { d.Box.Margin.Bottom = f })},
	{"ml-", spacingSetter(func(d *Declaration, f float64) { d.Box.Margin.Left = f })},
	{"m-", spacingSetter(func(d *Declaration, f float64) { d.Box.Margin = Edges{f, f, f, f} })},
	{"px-", spacingSetter(func(d *Declaration, f float64) { d.Box.Padding.Left, d.Box.Padding.Right = f, f })},
	{"py-", spacingSetter(func(d *Declaration, f float64) { d.Box.Padding.Top, d.Box.Padding.Bottom = f, f })},
	{"pt-", spacingSetter(func(d *Declaration, f float64) { d.Box.Padding.Top = f })},
	{"pr-", spacingSetter(func(d *Declaration, f float64) { d.Box.Padding.Right = f })},
	{"pb-", spacingSetter(func(d *Declaration, f float64) { d.Box.Padding.Bottom = f })},
	{"pl-", spacingSetter(func(d *Declaration, f float64) { d.Box.Padding.Left = f })},
	{"p-", spacingSetter(func(d *Declaration, f float64) { d.Box.Padding = Edges{f, f, f, f} })},
	{"w-", func(d *Declaration, v string) bool {
		l, ok := sizeValue(v)
		d.Box.Width = l
		return ok
	}},
	{"h-", func(d *Declaration, v string) bool {
		l, ok := sizeValue(v)
		d.Box.Height = l
		return ok
	}},
	{"basis-", func(d *Declaration, v string) bool {
		l, ok := sizeValue(v)
		d.Flex.Basis = l
		return ok
	}},
	{"text-", applyText},
	{"bg-", func(d *Declaration, v string) bool {
		c, ok := paletteColor(v)
		if ok {
			d.Box.BackgroundColor = &c
		}
		return ok
	}},
	{"border-", applyBorder},
	{"rounded-", func(d *Declaration, v string) bool {
		r, ok := radii[v]
		if ok {
			d.Box.BorderRadius = r
		}
		return ok
	}},
	{"font-", func(d *Declaration, v string) bool {
		if w, ok := fontWeights[v]; ok {
			d.Text.FontWeight = Ptr(w)
			return true
		}
		if f, ok := fontFamilies[v]; ok {
			d.Text.FontFamily = Ptr(f)
			return true
		}
		return false
	}},
	{"leading-", func(d *Declaration, v string) bool {
		if m, ok := leadings[v]; ok {
			d.Text.LineHeight = &LineHeight{Value: m}
			return true
		}
		f, ok := spacingValue(v)
		if ok {
			d.Text.LineHeight = &LineHeight{Value: f, Absolute: true}
		}
		return ok
	}},
	{"tracking-", func(d *Declaration, v string) bool {
		t, ok := trackings[v]
		if ok {
			d.Text.LetterSpacing = Ptr(t)
		}
		return ok
	}},
	{"opacity-", func(d *Declaration, v string) bool {
		n, err := strconv.Atoi(v)
		if err != nil {
			return false
		}
		d.Box.Opacity = Ptr(float64(n) / 100)
		return true
	}},
	{"justify-", func(d *Declaration, v string) bool {
		j, ok := map[string]JustifyContent{
			"start": JustifyStart, "end": JustifyEnd, "center": JustifyCenter,
			"between": JustifySpaceBetween, "around": JustifySpaceAround, "evenly": JustifySpaceEvenly,
		}[v]
		if ok {
			d.Flex.Justify = j
		}
		return ok
	}},
	{"items-", func(d *Declaration, v string) bool {
		a, ok := map[string]AlignItems{
			"start": AlignItemsStart, "end": AlignItemsEnd, "center": AlignItemsCenter,
			"stretch": AlignItemsStretch, "baseline": AlignItemsStart,
		}[v]
		if ok {
			d.Flex.Align = a
		}
		return ok
	}},
}

func spacingSetter(set func(d *Declaration, f float64)) func(d *Declaration, v string) bool {
	return func(d *Declaration, v string) bool {
		f, ok := spacingValue(v)
		if ok {
			set(d, f)
		}
		return ok
	}
}

// arbitrary unwraps "[value]" utility values
func arbitrary(v string) (string, bool) {
	if len(v) > 2 && v[0] == '[' && v[len(v)-1] == ']' {
		return strings.ReplaceAll(v[1:len(v)-1], "_", " "), true
	}
	return "", false
}

// spacingValue resolves a spacing scale step: "4" = 12pt, "px" = 0.75pt, "[10px]"
func spacingValue(v string) (float64, bool) {
	if v == "px" {
		return PxToPt, true
	}
	if a, ok := arbitrary(v); ok {
		return parsePoints(a, DefaultFontSize)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f * SpacingUnit, true
}

// sizeValue resolves width/height values: scale steps, fractions, full, auto
func sizeValue(v string) (*Length, bool) {
	switch v {
	case "auto":
		return nil, true
	case "full":
		return Percent(100), true
	}
	if a, ok := arbitrary(v); ok {
		l, ok := parseLength(a, DefaultFontSize)
		if !ok {
			return nil, false
		}
		return &l, true
	}
	if num, den, ok := strings.Cut(v, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		m, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || m == 0 {
			return nil, false
		}
		return Percent(n * 100 / m), true
	}
	f, ok := spacingValue(v)
	if !ok {
		return nil, false
	}
	return Points(f), true
}

func maxWidthValue(v string) (*Length, bool) {
	if w, ok := maxWidths[v]; ok {
		return Points(w), true
	}
	switch v {
	case "none":
		return nil, true
	case "full":
		return Percent(100), true
	}
	if a, ok := arbitrary(v); ok {
		l, ok := parseLength(a, DefaultFontSize)
		if !ok {
			return nil, false
		}
		return &l, true
	}
	return nil, false
}

// applyText handles text sizes, alignment and colors
func applyText(d *Declaration, v string) bool {
	if size, ok := textSizes[v]; ok {
		d.Text.FontSize = Ptr(size)
		return true
	}
	if align, ok := map[string]TextAlign{
		"left": AlignLeft, "center": AlignCenter, "right": AlignRight, "justify": AlignJustify,
	}[v]; ok {
		d.Text.TextAlign = Ptr(align)
		return true
	}
	if a, ok := arbitrary(v); ok {
		if f, ok := parsePoints(a, DefaultFontSize); ok {
			d.Text.FontSize = Ptr(f)
			return true
		}
	}
	if c, ok := paletteColor(v); ok {
		d.Text.Color = &c
		return true
	}
	return false
}

// applyBorder handles border widths per side and border colors
func applyBorder(d *Declaration, v string) bool {
	sides := "trbl"
	if side, rest, ok := strings.Cut(v, "-"); ok && len(side) == 1 && strings.Contains("trblxy", side) {
		sides, v = borderSides(side), rest
	} else if len(v) == 1 && strings.Contains("trblxy", v) {
		setBorderWidth(&d.Box.Border, borderSides(v), PxToPt)
		return true
	}
	if n, err := strconv.Atoi(v); err == nil {
		setBorderWidth(&d.Box.Border, sides, float64(n)*PxToPt)
		return true
	}
	if a, ok := arbitrary(v); ok {
		if f, ok := parsePoints(a, DefaultFontSize); ok {
			setBorderWidth(&d.Box.Border, sides, f)
			return true
		}
	}
	if c, ok := paletteColor(v); ok {
		setBorderColor(&d.Box.Border, sides, c)
		return true
	}
	return false
}

func borderSides(s string) string {
	switch s {
	case "x":
		return "rl"
	case "y":
		return "tb"
	}
	return s
}

func borderSide(b *Borders, side rune) *Border {
	switch side {
	case 't':
		return &b.Top
	case 'r':
		return &b.Right
	case 'b':
		return &b.Bottom
	default:
		return &b.Left
	}
}

func setBorderWidth(b *Borders, sides string, w float64) {
	for _, s := range sides {
		borderSide(b, s).Width = w
	}
}

func setBorderColor(b *Borders, sides string, c Color) {
	for _, s := range sides {
		borderSide(b, s).Color = &c
	}
}
