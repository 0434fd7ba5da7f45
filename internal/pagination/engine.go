package pagination

import (
	"go.uber.org/zap"

	"github.com/gompdf/cvpdf/internal/layout"
	"github.com/gompdf/cvpdf/internal/metadata"
)

// Options represents options for the pagination engine
type Options struct {
	PageWidth    float64
	PageHeight   float64
	MarginTop    float64
	MarginRight  float64
	MarginBottom float64
	MarginLeft   float64
	// KeepWrappers disables flattening of structural wrappers
	KeepWrappers bool
}

// Engine handles the pagination process
type Engine struct {
	options Options
	log     *zap.Logger
}

// NewEngine creates a new pagination engine
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		options: Options{
			PageWidth:    PageSizeLetter.Width,
			PageHeight:   PageSizeLetter.Height,
			MarginTop:    36,
			MarginRight:  36,
			MarginBottom: 36,
			MarginLeft:   36,
		},
		log: log.Named("pagination"),
	}
}

// SetOptions sets the options for the pagination engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// Options returns the current options
func (e *Engine) Options() Options {
	return e.options
}

// Document returns the physical page geometry of the options
func (o Options) Document() layout.DocumentConfig {
	return layout.DocumentConfig{
		PageWidth:  o.PageWidth,
		PageHeight: o.PageHeight,
		Margin:     Margins{o.MarginTop, o.MarginRight, o.MarginBottom, o.MarginLeft}.Edges(),
	}
}

// Paginate breaks the laid out boxes into pages of area
func (e *Engine) Paginate(boxes []*layout.LayoutBox, area layout.ContentArea, meta *metadata.Metadata) *LayoutStructure {
	if !e.options.KeepWrappers {
		boxes = Flatten(boxes)
	}
	pages := NewPaginator(e.log).Paginate(boxes, area)
	e.log.Debug("Paginated", zap.Int("boxes", len(boxes)), zap.Int("pages", len(pages)))
	return &LayoutStructure{
		PageWidth:  e.options.PageWidth,
		PageHeight: e.options.PageHeight,
		Pages:      pages,
		Metadata:   meta,
	}
}
