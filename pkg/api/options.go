package api

import (
	"go.uber.org/zap"

	"github.com/gompdf/cvpdf/internal/layout"
	"github.com/gompdf/cvpdf/internal/style"
	"github.com/gompdf/cvpdf/internal/text"
)

// Options represents configuration options for the CV to PDF converter
type Options struct {
	// Page dimensions
	PageWidth  float64
	PageHeight float64
	// Page orientation: portrait or landscape
	PageOrientation PageOrientation

	// Page margins
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64

	// Text layout
	Hyphenation   bool
	MinWordLength int
	// Language selects the hyphenation dictionary, the document's lang
	// attribute is used when empty
	Language string
	// Hyphenator replaces the built-in dictionary lookup
	Hyphenator *text.Hyphenator
	// HyphenationPatterns and HyphenationExceptions name dictionary files
	// or URLs loaded by the converter
	HyphenationPatterns   string
	HyphenationExceptions string

	// Visual rendering toggles
	// When false, backgrounds will not be painted
	RenderBackgrounds bool
	// When false, borders will not be painted
	RenderBorders bool
	// When true, headings become PDF bookmarks
	Bookmarks bool
	// When true, draw debug box overlays
	DebugDrawBoxes bool

	// Resource paths
	ResourcePaths []string

	// Document metadata, taken from the CV when empty
	Title    string
	Author   string
	Subject  string
	Keywords string

	// Collaborators, defaults are used when nil
	Logger   *zap.Logger
	Resolver style.Resolver
	NewTree  func() layout.ConstraintTree
}

// Option is a function that modifies Options
type Option func(*Options)

// PageOrientation represents page orientation
type PageOrientation string

const (
	// PageOrientationPortrait sets the page to portrait orientation
	PageOrientationPortrait PageOrientation = "portrait"
	// PageOrientationLandscape sets the page to landscape orientation
	PageOrientationLandscape PageOrientation = "landscape"
)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		// US Letter, the usual CV format
		PageWidth:       PageSizeLetterWidth,
		PageHeight:      PageSizeLetterHeight,
		PageOrientation: PageOrientationPortrait,

		// Half inch margins
		MarginTop:    36,
		MarginRight:  36,
		MarginBottom: 36,
		MarginLeft:   36,

		Hyphenation:   true,
		MinWordLength: text.DefaultMinWordLength,

		RenderBackgrounds: true,
		RenderBorders:     true,
		Bookmarks:         true,
		DebugDrawBoxes:    false,

		ResourcePaths: []string{},
	}
}

// logger returns the configured logger or a no-op one
func (o *Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// WithPageSize sets the page size
func WithPageSize(width, height float64) Option {
	return func(o *Options) {
		o.PageWidth = width
		o.PageHeight = height
	}
}

// WithMargins sets the page margins
func WithMargins(top, right, bottom, left float64) Option {
	return func(o *Options) {
		o.MarginTop = top
		o.MarginRight = right
		o.MarginBottom = bottom
		o.MarginLeft = left
	}
}

// WithHyphenation enables or disables hyphenation of long words
func WithHyphenation(enable bool) Option {
	return func(o *Options) {
		o.Hyphenation = enable
	}
}

// WithMinWordLength sets the shortest word that may be hyphenated
func WithMinWordLength(n int) Option {
	return func(o *Options) {
		o.MinWordLength = n
	}
}

// WithLanguage sets the hyphenation language, e.g. "en-US"
func WithLanguage(lang string) Option {
	return func(o *Options) {
		o.Language = lang
	}
}

// WithHyphenator sets a preloaded hyphenator
func WithHyphenator(h *text.Hyphenator) Option {
	return func(o *Options) {
		o.Hyphenator = h
	}
}

// WithHyphenationDictionary loads patterns and exceptions from files or URLs
func WithHyphenationDictionary(patterns, exceptions string) Option {
	return func(o *Options) {
		o.HyphenationPatterns = patterns
		o.HyphenationExceptions = exceptions
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) {
		o.Logger = log
	}
}

// WithResolver replaces the utility class resolver
func WithResolver(r style.Resolver) Option {
	return func(o *Options) {
		o.Resolver = r
	}
}

// WithConstraintTree replaces the geometry solver
func WithConstraintTree(newTree func() layout.ConstraintTree) Option {
	return func(o *Options) {
		o.NewTree = newTree
	}
}

// WithRendering sets the visual rendering toggles
func WithRendering(backgrounds, borders, bookmarks bool) Option {
	return func(o *Options) {
		o.RenderBackgrounds = backgrounds
		o.RenderBorders = borders
		o.Bookmarks = bookmarks
	}
}

// WithDebugDrawBoxes outlines every box in the output
func WithDebugDrawBoxes(debug bool) Option {
	return func(o *Options) {
		o.DebugDrawBoxes = debug
	}
}

// WithResourcePath adds a path to search for resources
func WithResourcePath(path string) Option {
	return func(o *Options) {
		o.ResourcePaths = append(o.ResourcePaths, path)
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithSubject sets the document subject
func WithSubject(subject string) Option {
	return func(o *Options) {
		o.Subject = subject
	}
}

// WithKeywords sets the document keywords
func WithKeywords(keywords string) Option {
	return func(o *Options) {
		o.Keywords = keywords
	}
}

// WithPageOrientation sets the page orientation
func WithPageOrientation(orientation PageOrientation) Option {
	return func(o *Options) {
		o.PageOrientation = orientation
	}
}

// Standard page sizes in points (1/72 inch)
const (
	PageSizeA3Width  = 841.89
	PageSizeA3Height = 1190.55
	PageSizeA4Width  = 595.28
	PageSizeA4Height = 841.89
	PageSizeA5Width  = 419.53
	PageSizeA5Height = 595.28

	// US Letter and Legal
	PageSizeLetterWidth  = 612
	PageSizeLetterHeight = 792
	PageSizeLegalWidth   = 612
	PageSizeLegalHeight  = 1008
)

// WithPageSizeA4 sets the page size to A4
func WithPageSizeA4() Option {
	return WithPageSize(PageSizeA4Width, PageSizeA4Height)
}

// WithPageSizeLetter sets the page size to US Letter
func WithPageSizeLetter() Option {
	return WithPageSize(PageSizeLetterWidth, PageSizeLetterHeight)
}

// WithPageSizeLegal sets the page size to US Legal
func WithPageSizeLegal() Option {
	return WithPageSize(PageSizeLegalWidth, PageSizeLegalHeight)
}
