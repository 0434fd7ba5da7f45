package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/gompdf/cvpdf/internal/layout"
	"github.com/gompdf/cvpdf/internal/metadata"
	"github.com/gompdf/cvpdf/internal/pagination"
	"github.com/gompdf/cvpdf/internal/parser/html"
	"github.com/gompdf/cvpdf/internal/render/pdf"
	"github.com/gompdf/cvpdf/internal/res"
	"github.com/gompdf/cvpdf/internal/style"
	"github.com/gompdf/cvpdf/internal/text"
)

// DefaultLanguage selects the hyphenation dictionary when neither the
// options nor the document name one
const DefaultLanguage = "en-US"

// CalculateLayout lays root out and breaks it into pages of doc. When pageCfg
// is nil the page container is derived from the root element's own style.
// Any error is a *layout.CalculationError and no partial structure is returned.
func CalculateLayout(root *html.Element, meta *metadata.Metadata, pageCfg *layout.PageLayoutConfig, doc layout.DocumentConfig, measurer text.Measurer, opts ...Option) (*pagination.LayoutStructure, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return calculate(root, meta, pageCfg, doc, measurer, options)
}

func calculate(root *html.Element, meta *metadata.Metadata, pageCfg *layout.PageLayoutConfig, doc layout.DocumentConfig, measurer text.Measurer, options Options) (*pagination.LayoutStructure, error) {
	log := options.logger()

	resolver := options.Resolver
	if resolver == nil {
		resolver = style.NewResolver(log)
	}

	engine := layout.NewEngine(resolver, measurer, log)
	engine.SetOptions(layout.Options{
		Wrap:    wrapOptions(options, meta, log),
		NewTree: options.NewTree,
	})

	var cfg layout.PageLayoutConfig
	if pageCfg != nil {
		cfg = *pageCfg
	} else {
		cfg = layout.PageLayoutConfigFromStyle(engine.ResolveRoot(root), doc.PageWidth)
	}
	area := doc.ContentArea(cfg)
	log.Debug("Content area",
		zap.Float64("x", area.X), zap.Float64("y", area.Y),
		zap.Float64("width", area.Width), zap.Float64("height", area.Height))

	boxes, err := engine.Layout(root, area, cfg.MaxWidth != nil)
	if err != nil {
		return nil, err
	}

	paginator := pagination.NewEngine(log)
	paginator.SetOptions(pagination.Options{
		PageWidth:    doc.PageWidth,
		PageHeight:   doc.PageHeight,
		MarginTop:    doc.Margin.Top,
		MarginRight:  doc.Margin.Right,
		MarginBottom: doc.Margin.Bottom,
		MarginLeft:   doc.Margin.Left,
	})
	return paginator.Paginate(boxes, area, meta), nil
}

// wrapOptions picks the hyphenator: an explicit one, else the dictionary of
// the configured language, else that of the document language
func wrapOptions(options Options, meta *metadata.Metadata, log *zap.Logger) text.WrapOptions {
	wrap := text.WrapOptions{
		EnableHyphenation: options.Hyphenation,
		MinWordLength:     options.MinWordLength,
	}
	if !options.Hyphenation {
		return wrap
	}
	if options.Hyphenator != nil {
		wrap.Hyphenator = options.Hyphenator
		return wrap
	}

	lang := options.Language
	if lang == "" && meta != nil {
		lang = meta.Language
	}
	if lang == "" {
		lang = DefaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		log.Warn("Unknown language, using default", zap.String("language", lang), zap.Error(err))
		tag = language.MustParse(DefaultLanguage)
	}
	wrap.Hyphenator = text.NewHyphenator(tag, log)
	return wrap
}

// Converter is the main API for converting a CV to PDF
type Converter struct {
	options  Options
	loader   *res.Loader
	measurer *text.PDFMeasurer
}

// New creates a new converter with default options
func New() *Converter {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a new converter with the specified options
func NewWithOptions(options Options) *Converter {
	return newConverter(options, "")
}

func newConverter(options Options, base string) *Converter {
	loader := res.NewLoader(base, options.logger())
	for _, path := range options.ResourcePaths {
		loader.AddSearchPath(path)
	}
	return &Converter{
		options:  options,
		loader:   loader,
		measurer: text.NewPDFMeasurer(),
	}
}

// document returns the physical page geometry honoring the orientation
func (c *Converter) document() layout.DocumentConfig {
	width, height := c.options.PageWidth, c.options.PageHeight
	switch c.options.PageOrientation {
	case PageOrientationLandscape:
		if width < height {
			width, height = height, width
		}
	case PageOrientationPortrait, "":
		if width > height {
			width, height = height, width
		}
	}
	return layout.DocumentConfig{
		PageWidth:  width,
		PageHeight: height,
		Margin: style.Edges{
			Top:    c.options.MarginTop,
			Right:  c.options.MarginRight,
			Bottom: c.options.MarginBottom,
			Left:   c.options.MarginLeft,
		},
	}
}

// hyphenator loads a custom dictionary when one is configured
func (c *Converter) hyphenator(ctx context.Context) (*text.Hyphenator, error) {
	if c.options.Hyphenator != nil || c.options.HyphenationPatterns == "" {
		return c.options.Hyphenator, nil
	}
	patterns, err := c.loader.LoadText(ctx, c.options.HyphenationPatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to load hyphenation patterns: %w", err)
	}
	var exceptions io.Reader
	if c.options.HyphenationExceptions != "" {
		ex, err := c.loader.LoadText(ctx, c.options.HyphenationExceptions)
		if err != nil {
			return nil, fmt.Errorf("failed to load hyphenation exceptions: %w", err)
		}
		exceptions = ex.GetReader()
	}
	h, err := text.LoadHyphenator(patterns.GetReader(), exceptions)
	if err != nil {
		return nil, fmt.Errorf("failed to load hyphenation dictionary: %w", err)
	}
	return h, nil
}

// layout parses, measures and paginates the markup
func (c *Converter) layout(ctx context.Context, htmlContent string) (*pagination.LayoutStructure, layout.PageLayoutConfig, error) {
	log := c.options.logger()

	doc, err := html.NewParser(log).Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, layout.PageLayoutConfig{}, fmt.Errorf("failed to parse HTML: %w", err)
	}
	meta := metadata.NewExtractor(log).Extract(doc.Node, doc.Title, doc.Lang)

	options := c.options
	if options.Hyphenation {
		h, err := c.hyphenator(ctx)
		if err != nil {
			return nil, layout.PageLayoutConfig{}, err
		}
		options.Hyphenator = h
	}
	if options.Resolver == nil {
		options.Resolver = style.NewResolver(log)
	}

	docCfg := c.document()
	root := layout.NewEngine(options.Resolver, c.measurer, log).ResolveRoot(doc.Root)
	pageCfg := layout.PageLayoutConfigFromStyle(root, docCfg.PageWidth)

	structure, err := calculate(doc.Root, meta, &pageCfg, docCfg, c.measurer, options)
	if err != nil {
		return nil, layout.PageLayoutConfig{}, fmt.Errorf("failed to calculate layout: %w", err)
	}
	return structure, pageCfg, nil
}

// Layout computes the paginated layout without rendering it
func (c *Converter) Layout(htmlContent string) (*pagination.LayoutStructure, error) {
	structure, _, err := c.layout(context.Background(), htmlContent)
	return structure, err
}

func (c *Converter) renderer() *pdf.Renderer {
	renderer := pdf.NewRenderer(c.options.logger())
	renderer.RenderBackgrounds = c.options.RenderBackgrounds
	renderer.RenderBorders = c.options.RenderBorders
	renderer.Bookmarks = c.options.Bookmarks
	renderer.DebugDrawBoxes = c.options.DebugDrawBoxes
	return renderer
}

func (c *Converter) renderOptions(page layout.PageLayoutConfig) pdf.RenderOptions {
	return pdf.RenderOptions{
		Title:    c.options.Title,
		Author:   c.options.Author,
		Subject:  c.options.Subject,
		Keywords: c.options.Keywords,
		Creator:  "cvpdf",
		Producer: "cvpdf",
		Page:     page,
	}
}

// Convert converts markup to PDF and writes the result to the specified writer
func (c *Converter) Convert(htmlContent string, output io.Writer) error {
	return c.convert(context.Background(), htmlContent, output)
}

func (c *Converter) convert(ctx context.Context, htmlContent string, output io.Writer) error {
	structure, page, err := c.layout(ctx, htmlContent)
	if err != nil {
		return err
	}
	if err := c.renderer().RenderTo(structure, output, c.renderOptions(page)); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// ConvertToFile converts markup to PDF and writes the result to the specified file
func (c *Converter) ConvertToFile(htmlContent, outputPath string) error {
	return c.convertToFile(context.Background(), htmlContent, outputPath)
}

func (c *Converter) convertToFile(ctx context.Context, htmlContent, outputPath string) error {
	structure, page, err := c.layout(ctx, htmlContent)
	if err != nil {
		return err
	}
	if err := c.renderer().Render(structure, outputPath, c.renderOptions(page)); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}

// ConvertFile converts a markup file to PDF and writes the result to the specified file
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read HTML file: %w", err)
	}
	return newConverter(c.options, inputPath).ConvertToFile(string(content), outputPath)
}

// ConvertURL fetches a markup document and writes its PDF to the specified file
func (c *Converter) ConvertURL(ctx context.Context, url, outputPath string) error {
	conv := newConverter(c.options, url)
	resource, err := conv.loader.LoadHTML(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to load HTML from URL: %w", err)
	}
	r, err := resource.UTF8Reader()
	if err != nil {
		return fmt.Errorf("failed to decode HTML from URL: %w", err)
	}
	content, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to decode HTML from URL: %w", err)
	}
	return conv.convertToFile(ctx, string(content), outputPath)
}

// ConvertBytes converts markup bytes to PDF bytes
func (c *Converter) ConvertBytes(htmlContent []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Convert(string(htmlContent), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Options returns a copy of the converter options
func (c *Converter) Options() Options {
	return c.options
}

// WithOptions returns a new converter with the specified options
func (c *Converter) WithOptions(options Options) *Converter {
	return NewWithOptions(options)
}

// WithOption returns a new converter with the specified option set
func (c *Converter) WithOption(option Option) *Converter {
	newOptions := c.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// AddResourcePath adds a path to search for resources
func (c *Converter) AddResourcePath(path string) *Converter {
	newOptions := c.options
	newOptions.ResourcePaths = append(append([]string(nil), newOptions.ResourcePaths...), path)
	return NewWithOptions(newOptions)
}

// SetPageSize sets the page size
func (c *Converter) SetPageSize(width, height float64) *Converter {
	return c.WithOption(WithPageSize(width, height))
}

// SetMargins sets the page margins
func (c *Converter) SetMargins(top, right, bottom, left float64) *Converter {
	return c.WithOption(WithMargins(top, right, bottom, left))
}

// SetHyphenation enables or disables hyphenation
func (c *Converter) SetHyphenation(enable bool) *Converter {
	return c.WithOption(WithHyphenation(enable))
}

// SetLogger sets the logger
func (c *Converter) SetLogger(log *zap.Logger) *Converter {
	return c.WithOption(WithLogger(log))
}

// SetTitle sets the document title
func (c *Converter) SetTitle(title string) *Converter {
	return c.WithOption(WithTitle(title))
}

// SetAuthor sets the document author
func (c *Converter) SetAuthor(author string) *Converter {
	return c.WithOption(WithAuthor(author))
}

// SetSubject sets the document subject
func (c *Converter) SetSubject(subject string) *Converter {
	return c.WithOption(WithSubject(subject))
}

// SetKeywords sets the document keywords
func (c *Converter) SetKeywords(keywords string) *Converter {
	return c.WithOption(WithKeywords(keywords))
}
