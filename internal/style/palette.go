package style

// palette holds the utility color scale, shades 50, 100 ... 900
var palette = map[string][10]string{
	"gray":   {"f9fafb", "f3f4f6", "e5e7eb", "d1d5db", "9ca3af", "6b7280", "4b5563", "374151", "1f2937", "111827"},
	"slate":  {"f8fafc", "f1f5f9", "e2e8f0", "cbd5e1", "94a3b8", "64748b", "475569", "334155", "1e293b", "0f172a"},
	"blue":   {"eff6ff", "dbeafe", "bfdbfe", "93c5fd", "60a5fa", "3b82f6", "2563eb", "1d4ed8", "1e40af", "1e3a8a"},
	"indigo": {"eef2ff", "e0e7ff", "c7d2fe", "a5b4fc", "818cf8", "6366f1", "4f46e5", "4338ca", "3730a3", "312e81"},
	"red":    {"fef2f2", "fee2e2", "fecaca", "fca5a5", "f87171", "ef4444", "dc2626", "b91c1c", "991b1b", "7f1d1d"},
	"green":  {"f0fdf4", "dcfce7", "bbf7d0", "86efac", "4ade80", "22c55e", "16a34a", "15803d", "166534", "14532d"},
}

var shadeIndex = map[string]int{
	"50": 0, "100": 1, "200": 2, "300": 3, "400": 4,
	"500": 5, "600": 6, "700": 7, "800": 8, "900": 9,
}

// DefaultBorderColor is used for borders declared without a color (gray-200)
var DefaultBorderColor = Color{0xe5, 0xe7, 0xeb}

// paletteColor resolves "gray-700", "black", "white" or an arbitrary "[#1f2937]"
func paletteColor(name string) (Color, bool) {
	switch name {
	case "black":
		return Color{0, 0, 0}, true
	case "white":
		return Color{255, 255, 255}, true
	}
	if v, ok := arbitrary(name); ok {
		return parseColor(v)
	}
	for i := len(name) - 1; i > 0; i-- {
		if name[i] != '-' {
			continue
		}
		scale, ok := palette[name[:i]]
		if !ok {
			return Color{}, false
		}
		idx, ok := shadeIndex[name[i+1:]]
		if !ok {
			return Color{}, false
		}
		return parseHexColor(scale[idx])
	}
	return Color{}, false
}
