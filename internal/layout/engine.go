package layout

import (
	"go.uber.org/zap"

	"github.com/gompdf/cvpdf/internal/flex"
	"github.com/gompdf/cvpdf/internal/parser/html"
	"github.com/gompdf/cvpdf/internal/style"
	"github.com/gompdf/cvpdf/internal/text"
)

// Options represents options for the layout engine
type Options struct {
	Wrap text.WrapOptions
	// NewTree creates the solver for one layout call, *flex.Tree when nil
	NewTree func() ConstraintTree
}

// Engine runs build, solve and extract for one element tree at a time.
// It holds no per-document state and may be shared between goroutines as
// long as its resolver and measurer are.
type Engine struct {
	options  Options
	resolver style.Resolver
	measurer text.Measurer
	log      *zap.Logger
}

// NewEngine creates a new layout engine
func NewEngine(resolver style.Resolver, measurer text.Measurer, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		options:  Options{Wrap: text.WrapOptions{MinWordLength: text.DefaultMinWordLength}},
		resolver: resolver,
		measurer: measurer,
		log:      log.Named("layout"),
	}
}

// SetOptions sets the options for the layout engine
func (e *Engine) SetOptions(options Options) {
	e.options = options
}

// Options returns the current options
func (e *Engine) Options() Options {
	return e.options
}

// ResolveRoot resolves the root element's style against the defaults
func (e *Engine) ResolveRoot(root *html.Element) style.Declaration {
	if root == nil {
		return style.Declaration{}
	}
	return e.resolver.Resolve(classesFor(root), root.InlineStyle, style.Declaration{})
}

// Layout lays root out on one logical canvas of unbounded height whose
// width and origin are those of area. With stripPageBox the root's own
// max width, padding and background are assumed to be realized by area.
func (e *Engine) Layout(root *html.Element, area ContentArea, stripPageBox bool) ([]*LayoutBox, error) {
	if e.resolver == nil || e.measurer == nil {
		return nil, calcErrorf(nil, "engine needs a style resolver and a text measurer")
	}

	var tree ConstraintTree
	if e.options.NewTree != nil {
		tree = e.options.NewTree()
	} else {
		tree = flex.NewTree()
	}
	side := &SideTable{}

	b := NewBuilder(tree, side, e.resolver, e.measurer, e.options.Wrap, e.log.Named("builder"))
	b.StripPageBox = stripPageBox
	rootID, err := b.Build(root, style.Declaration{})
	if err != nil {
		return nil, err
	}

	if err := tree.Compute(rootID, flex.AvailableSpace{Kind: flex.Definite, Value: area.Width}); err != nil {
		return nil, calcErrorf(err, "solver rejected the tree")
	}

	boxes, err := NewExtractor(e.measurer, e.log.Named("extract")).Extract(tree, side, rootID, area.X, area.Y)
	if err != nil {
		return nil, err
	}
	e.log.Debug("Layout computed", zap.Int("nodes", side.Len()), zap.Int("boxes", len(boxes)), zap.Float64("width", area.Width))
	return boxes, nil
}
