// Package pdf draws a paginated layout with the PDF core fonts.
package pdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"
	"go.uber.org/zap"

	"github.com/gompdf/cvpdf/internal/layout"
	"github.com/gompdf/cvpdf/internal/pagination"
	"github.com/gompdf/cvpdf/internal/style"
	"github.com/gompdf/cvpdf/internal/text"
)

// Font metrics used to place the baseline inside a line box
const (
	ascent  = 0.80
	descent = 0.20
)

// Renderer handles rendering to PDF
type Renderer struct {
	// RenderBackgrounds controls whether box backgrounds are painted
	RenderBackgrounds bool
	// RenderBorders controls whether box borders are painted
	RenderBorders bool
	// Bookmarks adds an outline entry for every heading
	Bookmarks bool
	// DebugDrawBoxes outlines every box and baseline
	DebugDrawBoxes bool

	log *zap.Logger
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
	// Page is the centered page container painted behind the boxes of every page
	Page layout.PageLayoutConfig
}

// NewRenderer creates a new PDF renderer
func NewRenderer(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		RenderBackgrounds: true,
		RenderBorders:     true,
		Bookmarks:         true,
		log:               log.Named("pdf"),
	}
}

// state is the per-document drawing state
type state struct {
	pdf          *fpdf.Fpdf
	translate    func(string) string
	bookmarkTop  int
	hasBookmarks bool
}

// Render renders the layout to a PDF file, creating the output directory
func (r *Renderer) Render(structure *pagination.LayoutStructure, outputPath string, options RenderOptions) error {
	outputDir := filepath.Dir(outputPath)
	if _, err := os.Stat(outputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	pdf, err := r.draw(structure, options)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(outputPath)
}

// RenderTo renders the layout and writes the PDF to w
func (r *Renderer) RenderTo(structure *pagination.LayoutStructure, w io.Writer, options RenderOptions) error {
	pdf, err := r.draw(structure, options)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func (r *Renderer) draw(structure *pagination.LayoutStructure, options RenderOptions) (*fpdf.Fpdf, error) {
	if structure == nil {
		return nil, fmt.Errorf("no layout to render")
	}

	size := fpdf.SizeType{Wd: structure.PageWidth, Ht: structure.PageHeight}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           size,
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	meta := structure.Metadata
	if options.Title == "" && meta != nil {
		options.Title = meta.Title
	}
	if options.Author == "" {
		options.Author = meta.Author()
	}
	if options.Keywords == "" {
		options.Keywords = meta.Keywords()
	}
	if options.Subject == "" && meta != nil {
		options.Subject = meta.Headline
	}
	pdf.SetTitle(options.Title, true)
	pdf.SetAuthor(options.Author, true)
	pdf.SetSubject(options.Subject, true)
	pdf.SetKeywords(options.Keywords, true)
	pdf.SetCreator(options.Creator, true)
	pdf.SetProducer(options.Producer, true)

	st := &state{pdf: pdf, translate: pdf.UnicodeTranslatorFromDescriptor("")}
	doc := layout.DocumentConfig{PageWidth: structure.PageWidth, PageHeight: structure.PageHeight}
	container := doc.ContainerRect(options.Page)

	r.log.Debug("Rendering", zap.Int("pages", len(structure.Pages)))
	for _, page := range structure.Pages {
		pdf.AddPage()
		if bg := options.Page.Background; bg != nil && r.RenderBackgrounds {
			pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
			pdf.Rect(container.X, container.Y, container.Width, container.Height, "F")
		}
		for _, box := range page.Boxes {
			r.renderBox(st, box)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf, nil
}

// renderBox paints a box and then its children in document order
func (r *Renderer) renderBox(st *state, box *layout.LayoutBox) {
	pdf := st.pdf
	alpha := box.Style.Box.Opacity
	if alpha != nil && *alpha < 1 {
		pdf.SetAlpha(max(*alpha, 0), "Normal")
		defer pdf.SetAlpha(1, "Normal")
	}

	if r.Bookmarks && box.Element.IsHeading() && box.HasText() {
		r.bookmark(st, box)
	}
	if r.RenderBackgrounds {
		r.renderBackground(pdf, box)
	}
	if r.RenderBorders {
		r.renderBorders(pdf, box)
	}

	switch box.Content.Kind {
	case layout.ContentText:
		r.renderText(st, box)
	case layout.ContentContainer:
		for _, child := range box.Content.Children {
			r.renderBox(st, child)
		}
	}

	if r.DebugDrawBoxes {
		pdf.SetDrawColor(255, 0, 0)
		pdf.SetLineWidth(0.1)
		pdf.Rect(box.X, box.Y, box.Width, box.Height, "D")
	}
}

// bookmark adds an outline entry. fpdf needs levels to grow one step at a
// time, so deeper headings are clamped under the previous entry.
func (r *Renderer) bookmark(st *state, box *layout.LayoutBox) {
	level := box.Element.HeadingLevel() - 1
	if !st.hasBookmarks {
		st.bookmarkTop = level
		st.hasBookmarks = true
	}
	level = max(level-st.bookmarkTop, 0)
	var title string
	box.Walk(func(b *layout.LayoutBox) bool {
		if b.Content.Kind == layout.ContentText {
			title = strings.Join(b.Content.Lines, " ")
			return false
		}
		return true
	})
	st.pdf.Bookmark(st.translate(title), level, box.Y)
}

// renderBackground fills the border box
func (r *Renderer) renderBackground(pdf *fpdf.Fpdf, box *layout.LayoutBox) {
	bg := box.Style.Box.BackgroundColor
	if bg == nil {
		return
	}
	pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	if radius := box.Style.Box.BorderRadius; radius > 0 {
		pdf.RoundedRect(box.X, box.Y, box.Width, box.Height, min(radius, box.Width/2, box.Height/2), "1234", "F")
		return
	}
	pdf.Rect(box.X, box.Y, box.Width, box.Height, "F")
}

// renderBorders strokes each side inside the border box
func (r *Renderer) renderBorders(pdf *fpdf.Fpdf, box *layout.LayoutBox) {
	b := box.Style.Box.Border
	if !b.Any() {
		return
	}

	if uniform(b) && box.Style.Box.BorderRadius > 0 {
		setDrawColor(pdf, b.Top.Color)
		pdf.SetLineWidth(b.Top.Width)
		half := b.Top.Width / 2
		radius := min(box.Style.Box.BorderRadius, box.Width/2, box.Height/2)
		pdf.RoundedRect(box.X+half, box.Y+half, box.Width-b.Top.Width, box.Height-b.Top.Width, radius, "1234", "D")
		return
	}

	x0, y0 := box.X, box.Y
	x1, y1 := box.X+box.Width, box.Y+box.Height
	sides := []struct {
		border         style.Border
		ax, ay, bx, by float64
	}{
		{b.Top, x0, y0 + b.Top.Width/2, x1, y0 + b.Top.Width/2},
		{b.Right, x1 - b.Right.Width/2, y0, x1 - b.Right.Width/2, y1},
		{b.Bottom, x0, y1 - b.Bottom.Width/2, x1, y1 - b.Bottom.Width/2},
		{b.Left, x0 + b.Left.Width/2, y0, x0 + b.Left.Width/2, y1},
	}
	for _, s := range sides {
		if s.border.Width <= 0 {
			continue
		}
		setDrawColor(pdf, s.border.Color)
		pdf.SetLineWidth(s.border.Width)
		pdf.Line(s.ax, s.ay, s.bx, s.by)
	}
}

func uniform(b style.Borders) bool {
	return b.Top == b.Right && b.Top == b.Bottom && b.Top == b.Left
}

func setDrawColor(pdf *fpdf.Fpdf, c *style.Color) {
	if c == nil {
		c = &style.DefaultBorderColor
	}
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

// renderText draws the box's lines inside its content box
func (r *Renderer) renderText(st *state, box *layout.LayoutBox) {
	pdf := st.pdf
	ts := box.Style.Text
	fontSize := ts.Size()
	family, fontStyle := text.SplitFaceName(ts.FontName())
	pdf.SetFont(family, fontStyle, fontSize)

	color := style.Color{}
	if ts.Color != nil {
		color = *ts.Color
	}
	pdf.SetTextColor(int(color.R), int(color.G), int(color.B))

	borders := box.Style.Box.Border.Widths()
	padding := box.Style.Box.Padding
	left := box.X + borders.Left + padding.Left
	width := box.Width - borders.Horizontal() - padding.Horizontal()
	top := box.Y + borders.Top + padding.Top

	lineHeight := ts.LineHeightPoints()
	leading := max(lineHeight-fontSize*(ascent+descent), 0)
	align := ts.Align()

	var decoration style.TextDecoration
	if ts.TextDecoration != nil {
		decoration = *ts.TextDecoration
	}

	for i, line := range box.Content.Lines {
		if line == "" {
			continue
		}
		encoded := st.translate(line)
		baseline := top + float64(i)*lineHeight + leading/2 + ascent*fontSize
		textWidth := pdf.GetStringWidth(encoded)

		startX := left
		switch align {
		case style.AlignCenter:
			startX = left + (width-textWidth)/2
		case style.AlignRight:
			startX = left + width - textWidth
		}
		startX = min(max(startX, left), left+max(width, 0))

		if align == style.AlignJustify && i < len(box.Content.Lines)-1 {
			r.justify(pdf, st.translate, line, left, baseline, width)
			textWidth = width
		} else {
			pdf.Text(startX, baseline, encoded)
		}

		switch decoration {
		case style.DecorationUnderline:
			pdf.SetDrawColor(int(color.R), int(color.G), int(color.B))
			pdf.SetLineWidth(fontSize * 0.05)
			pdf.Line(startX, baseline+fontSize*0.12, startX+textWidth, baseline+fontSize*0.12)
		case style.DecorationLineThrough:
			pdf.SetDrawColor(int(color.R), int(color.G), int(color.B))
			pdf.SetLineWidth(fontSize * 0.05)
			pdf.Line(startX, baseline-fontSize*0.3, startX+textWidth, baseline-fontSize*0.3)
		}

		if r.DebugDrawBoxes {
			pdf.SetDrawColor(0, 180, 0)
			pdf.SetLineWidth(0.1)
			pdf.Line(box.X, baseline, box.X+box.Width, baseline)
		}
	}
}

// justify spreads the words of line over width
func (r *Renderer) justify(pdf *fpdf.Fpdf, translate func(string) string, line string, x, baseline, width float64) {
	words := strings.Fields(line)
	if len(words) < 2 {
		pdf.Text(x, baseline, translate(line))
		return
	}
	var used float64
	for _, w := range words {
		used += pdf.GetStringWidth(translate(w))
	}
	gap := (width - used) / float64(len(words)-1)
	for _, w := range words {
		t := translate(w)
		pdf.Text(x, baseline, t)
		x += pdf.GetStringWidth(t) + gap
	}
}
