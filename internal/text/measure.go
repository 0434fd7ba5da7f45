package text

import (
	"strings"
	"sync"
	"unicode/utf8"

	"codeberg.org/go-pdf/fpdf"
)

// Measurer returns the advance width of a single line of text in points.
// Implementations must be deterministic, monotonic in length and never negative.
type Measurer interface {
	MeasureText(text string, fontSize float64, fontName string) float64
}

// MeasureFunc adapts a plain function to the Measurer interface
type MeasureFunc func(text string, fontSize float64, fontName string) float64

// MeasureText calls f
func (f MeasureFunc) MeasureText(text string, fontSize float64, fontName string) float64 {
	return f(text, fontSize, fontName)
}

// FixedWidthMeasurer measures every rune as CharWidth points regardless of font
type FixedWidthMeasurer struct {
	CharWidth float64
}

// MeasureText returns rune count times CharWidth
func (m FixedWidthMeasurer) MeasureText(text string, _ float64, _ string) float64 {
	return float64(utf8.RuneCountInString(text)) * m.CharWidth
}

// PDFMeasurer measures text with the PDF core font metrics shipped with fpdf.
// A single fpdf instance is shared and guarded by a mutex, so one measurer can be
// used by parallel layouts.
type PDFMeasurer struct {
	once      sync.Once
	mu        sync.Mutex
	pdf       *fpdf.Fpdf
	translate func(string) string
}

// NewPDFMeasurer creates a measurer backed by fpdf core font metrics
func NewPDFMeasurer() *PDFMeasurer {
	return &PDFMeasurer{}
}

func (m *PDFMeasurer) init() {
	m.pdf = fpdf.New("P", "pt", "", "")
	m.pdf.SetFont("Helvetica", "", 12)
	m.translate = m.pdf.UnicodeTranslatorFromDescriptor("")
}

// MeasureText returns the width of text set in fontName at fontSize
func (m *PDFMeasurer) MeasureText(text string, fontSize float64, fontName string) float64 {
	if text == "" || fontSize <= 0 {
		return 0
	}
	m.once.Do(m.init)
	m.mu.Lock()
	defer m.mu.Unlock()
	family, styleStr := SplitFaceName(fontName)
	m.pdf.SetFont(family, styleStr, fontSize)
	return m.pdf.GetStringWidth(m.translate(text))
}

// SplitFaceName maps "Helvetica-BoldOblique" onto the fpdf family and style pair ("Helvetica", "BI")
func SplitFaceName(fontName string) (family, styleStr string) {
	family, variant, _ := strings.Cut(fontName, "-")
	switch strings.ToLower(family) {
	case "times", "courier", "helvetica":
		family = strings.ToUpper(family[:1]) + strings.ToLower(family[1:])
	default:
		family = "Helvetica"
	}
	variant = strings.ToLower(variant)
	if strings.Contains(variant, "bold") {
		styleStr += "B"
	}
	if strings.Contains(variant, "italic") || strings.Contains(variant, "oblique") {
		styleStr += "I"
	}
	return family, styleStr
}
