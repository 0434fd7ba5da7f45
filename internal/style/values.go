package style

import (
	"strconv"
	"strings"
)

// PxToPt converts CSS pixels (1/96 in) to PDF points (1/72 in)
const PxToPt = 0.75

// RemPt is the root font size in points (16px)
const RemPt = 12.0

// parseLength parses a CSS length. em values resolve against fontSize.
// Unitless numbers are treated as pixels, as browsers do for inline styles in quirks mode.
func parseLength(value string, fontSize float64) (Length, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || v == "auto" || v == "none" {
		return Length{}, false
	}
	if v == "0" {
		return Length{}, true
	}

	units := []struct {
		suffix string
		factor float64
	}{
		{"rem", RemPt},
		{"px", PxToPt},
		{"pt", 1},
		{"em", fontSize},
		{"in", 72},
		{"cm", 72 / 2.54},
		{"mm", 72 / 25.4},
	}

	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return Length{}, false
		}
		return Length{Value: f, Percent: true}, true
	}
	for _, u := range units {
		if strings.HasSuffix(v, u.suffix) {
			f, err := strconv.ParseFloat(strings.TrimSuffix(v, u.suffix), 64)
			if err != nil {
				return Length{}, false
			}
			return Length{Value: f * u.factor}, true
		}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Length{}, false
	}
	return Length{Value: f * PxToPt}, true
}

// parsePoints parses a length and resolves percentages against zero
func parsePoints(value string, fontSize float64) (float64, bool) {
	l, ok := parseLength(value, fontSize)
	if !ok || l.Percent {
		return 0, false
	}
	return l.Value, true
}

var namedColors = map[string]Color{
	"black":  {0, 0, 0},
	"white":  {255, 255, 255},
	"red":    {255, 0, 0},
	"green":  {0, 128, 0},
	"blue":   {0, 0, 255},
	"gray":   {128, 128, 128},
	"grey":   {128, 128, 128},
	"silver": {192, 192, 192},
	"navy":   {0, 0, 128},
	"maroon": {128, 0, 0},
	"teal":   {0, 128, 128},
	"purple": {128, 0, 128},
	"orange": {255, 165, 0},
}

// parseColor parses #rgb, #rrggbb, rgb()/rgba() and a few named colors
func parseColor(value string) (Color, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	if c, ok := namedColors[v]; ok {
		return c, true
	}
	if strings.HasPrefix(v, "#") {
		return parseHexColor(v[1:])
	}
	if strings.HasPrefix(v, "rgb") {
		open := strings.IndexByte(v, '(')
		end := strings.IndexByte(v, ')')
		if open < 0 || end < open {
			return Color{}, false
		}
		parts := strings.FieldsFunc(v[open+1:end], func(r rune) bool { return r == ',' || r == ' ' || r == '/' })
		if len(parts) < 3 {
			return Color{}, false
		}
		var rgb [3]uint8
		for i := range 3 {
			n, err := strconv.ParseFloat(strings.TrimSuffix(parts[i], "%"), 64)
			if err != nil {
				return Color{}, false
			}
			if strings.HasSuffix(parts[i], "%") {
				n = n * 255 / 100
			}
			rgb[i] = uint8(min(max(n, 0), 255))
		}
		return Color{rgb[0], rgb[1], rgb[2]}, true
	}
	return Color{}, false
}

func parseHexColor(s string) (Color, bool) {
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Color{}, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, false
	}
	return Color{uint8(n >> 16), uint8(n >> 8), uint8(n)}, true
}

// parseEdges parses a 1-4 value shorthand (margin, padding, border-width)
func parseEdges(value string, fontSize float64) (Edges, bool) {
	parts := strings.Fields(value)
	vals := make([]float64, 0, 4)
	for _, p := range parts {
		if strings.EqualFold(p, "auto") {
			vals = append(vals, 0)
			continue
		}
		f, ok := parsePoints(p, fontSize)
		if !ok {
			return Edges{}, false
		}
		vals = append(vals, f)
	}
	switch len(vals) {
	case 1:
		return Edges{vals[0], vals[0], vals[0], vals[0]}, true
	case 2:
		return Edges{vals[0], vals[1], vals[0], vals[1]}, true
	case 3:
		return Edges{vals[0], vals[1], vals[2], vals[1]}, true
	case 4:
		return Edges{vals[0], vals[1], vals[2], vals[3]}, true
	}
	return Edges{}, false
}
