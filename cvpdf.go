// Package cvpdf lays out HTML CVs styled with utility classes and renders
// them to paginated PDF.
package cvpdf

import (
	"github.com/gompdf/cvpdf/pkg/api"
)

type Converter = api.Converter
type Options = api.Options
type Option = api.Option
type PageOrientation = api.PageOrientation

func New() *Converter                           { return api.New() }
func NewWithOptions(options Options) *Converter { return api.NewWithOptions(options) }
func DefaultOptions() Options                   { return api.DefaultOptions() }

var (
	CalculateLayout           = api.CalculateLayout
	WithPageSize              = api.WithPageSize
	WithMargins               = api.WithMargins
	WithHyphenation           = api.WithHyphenation
	WithMinWordLength         = api.WithMinWordLength
	WithLanguage              = api.WithLanguage
	WithHyphenator            = api.WithHyphenator
	WithHyphenationDictionary = api.WithHyphenationDictionary
	WithLogger                = api.WithLogger
	WithResolver              = api.WithResolver
	WithConstraintTree        = api.WithConstraintTree
	WithRendering             = api.WithRendering
	WithDebugDrawBoxes        = api.WithDebugDrawBoxes
	WithResourcePath          = api.WithResourcePath
	WithTitle                 = api.WithTitle
	WithAuthor                = api.WithAuthor
	WithSubject               = api.WithSubject
	WithKeywords              = api.WithKeywords
	WithPageSizeA4            = api.WithPageSizeA4
	WithPageSizeLetter        = api.WithPageSizeLetter
	WithPageSizeLegal         = api.WithPageSizeLegal
	WithPageOrientation       = api.WithPageOrientation
)

const (
	PageSizeA3Width  = api.PageSizeA3Width
	PageSizeA3Height = api.PageSizeA3Height
	PageSizeA4Width  = api.PageSizeA4Width
	PageSizeA4Height = api.PageSizeA4Height
	PageSizeA5Width  = api.PageSizeA5Width
	PageSizeA5Height = api.PageSizeA5Height

	PageSizeLetterWidth  = api.PageSizeLetterWidth
	PageSizeLetterHeight = api.PageSizeLetterHeight
	PageSizeLegalWidth   = api.PageSizeLegalWidth
	PageSizeLegalHeight  = api.PageSizeLegalHeight

	PageOrientationPortrait  = api.PageOrientationPortrait
	PageOrientationLandscape = api.PageOrientationLandscape
)
