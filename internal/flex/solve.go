package flex

import "math"

// flexItem is one child of a row container while its line is being resolved.
type flexItem struct {
	id     NodeID
	margin Edges

	base float64 // flex base size
	hyp  float64 // hypothetical main size, base clamped to [minW, maxW]
	minW float64
	maxW float64

	grow   float64
	shrink float64

	target    float64
	violation float64
	frozen    bool

	x, height float64
}

type flexLine struct {
	items []*flexItem
	cross float64
}

func intrinsicIndex(kind AvailableKind) int {
	if kind == MinContent {
		return 0
	}
	return 1
}

// intrinsicWidth returns the min-content or max-content border box width.
func (t *Tree) intrinsicWidth(id NodeID, kind AvailableKind) float64 {
	n := &t.nodes[id]
	idx := intrinsicIndex(kind)
	if n.intrinsicValid[idx] {
		return n.intrinsic[idx]
	}

	s := &n.style
	insets := s.insets().horizontal()
	var w float64
	switch fixed, ok := s.Width.resolve(math.Inf(1)); {
	case ok:
		w = fixed
	case len(n.children) == 0:
		if n.measure != nil {
			w = n.measure(KnownDimensions{}, AvailableSpace{Kind: kind}).Width
		}
		w += insets
	case s.isRow():
		var content float64
		sum := kind == MaxContent || !s.Wrap
		for _, c := range n.children {
			cw := t.intrinsicWidth(c, kind) + t.nodes[c].style.Margin.horizontal()
			if sum {
				content += cw
			} else {
				content = max(content, cw)
			}
		}
		if sum && len(n.children) > 1 {
			content += s.ColumnGap * float64(len(n.children)-1)
		}
		w = content + insets
	default:
		var content float64
		for _, c := range n.children {
			content = max(content, t.intrinsicWidth(c, kind)+t.nodes[c].style.Margin.horizontal())
		}
		w = content + insets
	}

	if mw, ok := s.MaxWidth.resolve(math.Inf(1)); ok {
		w = min(w, mw)
	}
	w = max(w, insets)

	n.intrinsic[idx] = w
	n.intrinsicValid[idx] = true
	return w
}

// clampWidth applies max-width and keeps room for padding and border.
func (t *Tree) clampWidth(id NodeID, w, container float64) float64 {
	s := &t.nodes[id].style
	if mw, ok := s.MaxWidth.resolve(container); ok && w > mw {
		w = mw
	}
	return max(w, s.insets().horizontal())
}

// blockWidth sizes a block level box: its specified width, or all of outer.
func (t *Tree) blockWidth(id NodeID, outer, container float64) float64 {
	w, ok := t.nodes[id].style.Width.resolve(container)
	if !ok {
		w = outer
	}
	return t.clampWidth(id, w, container)
}

// layoutNode positions the children of id inside a border box of the given
// width and returns the border box height.
func (t *Tree) layoutNode(id NodeID, width float64) float64 {
	n := &t.nodes[id]
	s := &n.style
	in := s.insets()
	contentW := max(width-in.horizontal(), 0)

	fixedH, hasH := s.Height.resolve(math.NaN())
	innerH := max(fixedH-in.vertical(), 0)

	var contentH float64
	switch {
	case len(n.children) == 0:
		if n.measure != nil {
			known := KnownDimensions{Width: contentW, HasWidth: true, Height: innerH, HasHeight: hasH}
			contentH = n.measure(known, AvailableSpace{Kind: Definite, Value: contentW}).Height
		}
	case s.isRow():
		contentH = t.layoutRow(id, contentW, innerH, hasH)
	default:
		contentH = t.layoutColumn(id, contentW, innerH, hasH)
	}

	h := contentH + in.vertical()
	if hasH {
		h = fixedH
	}
	if mh, ok := s.MaxHeight.resolve(math.NaN()); ok {
		h = min(h, mh)
	}
	return max(h, in.vertical())
}

func (t *Tree) place(id NodeID, x, y, w, h float64) {
	n := &t.nodes[id]
	n.layout = Layout{X: x, Y: y, Width: w, Height: h}
	n.solved = true
}

// layoutColumn stacks children vertically. It serves block containers and
// column flex containers; only the latter honour gaps, alignment, grow and
// justification.
func (t *Tree) layoutColumn(id NodeID, contentW, innerH float64, hasInnerH bool) float64 {
	n := &t.nodes[id]
	s := &n.style
	in := s.insets()
	isFlex := s.Display == DisplayFlex

	var gap float64
	if isFlex {
		gap = s.RowGap
	}

	type stacked struct {
		id         NodeID
		x, w, h    float64
		mTop, mBot float64
		grow       float64
	}
	items := make([]stacked, 0, len(n.children))

	var used, growSum float64
	for _, c := range n.children {
		cs := &t.nodes[c].style
		outer := contentW - cs.Margin.horizontal()

		var w float64
		if !isFlex || s.Align == AlignStretch {
			w = t.blockWidth(c, outer, contentW)
		} else {
			var ok bool
			if w, ok = cs.Width.resolve(contentW); !ok {
				// fit-content
				w = min(t.intrinsicWidth(c, MaxContent), max(outer, t.intrinsicWidth(c, MinContent)))
			}
			w = t.clampWidth(c, w, contentW)
		}

		x := in.Left + cs.Margin.Left
		if isFlex {
			switch s.Align {
			case AlignCenter:
				x += (outer - w) / 2
			case AlignEnd:
				x += outer - w
			}
		}

		h := t.layoutNode(c, w)
		items = append(items, stacked{id: c, x: x, w: w, h: h, mTop: cs.Margin.Top, mBot: cs.Margin.Bottom, grow: cs.Grow})
		used += h + cs.Margin.vertical()
		growSum += cs.Grow
	}
	if len(items) > 1 {
		used += gap * float64(len(items)-1)
	}

	var offset, spacing float64
	if isFlex && hasInnerH {
		free := innerH - used
		if free > 0 && growSum > 0 {
			for i := range items {
				items[i].h += free * items[i].grow / growSum
			}
			used, free = innerH, 0
		}
		offset, spacing = distribute(s.Justify, free, len(items))
	}

	y := in.Top + offset
	for _, it := range items {
		y += it.mTop
		t.place(it.id, it.x, y, it.w, it.h)
		y += it.h + it.mBot + gap + spacing
	}
	return used
}

// layoutRow implements a single or multi line row flex container.
func (t *Tree) layoutRow(id NodeID, contentW, innerH float64, hasInnerH bool) float64 {
	n := &t.nodes[id]
	s := &n.style
	in := s.insets()

	items := make([]*flexItem, 0, len(n.children))
	for _, c := range n.children {
		cs := &t.nodes[c].style
		it := &flexItem{id: c, margin: cs.Margin, grow: cs.Grow, shrink: cs.Shrink, maxW: math.Inf(1)}

		specified, hasWidth := cs.Width.resolve(contentW)
		switch b, ok := cs.Basis.resolve(contentW); {
		case ok:
			it.base = b
		case hasWidth:
			it.base = specified
		default:
			it.base = t.intrinsicWidth(c, MaxContent)
		}

		it.minW = t.intrinsicWidth(c, MinContent)
		if hasWidth {
			it.minW = min(it.minW, specified)
		}
		if mw, ok := cs.MaxWidth.resolve(contentW); ok {
			it.maxW = mw
			it.minW = min(it.minW, mw)
		}
		it.minW = max(it.minW, cs.insets().horizontal())
		it.maxW = max(it.maxW, it.minW)
		it.hyp = clamp(it.base, it.minW, it.maxW)
		items = append(items, it)
	}

	lines := t.collectLines(s, items, contentW)
	for _, line := range lines {
		gaps := s.ColumnGap * float64(len(line.items)-1)
		resolveFlexible(line.items, contentW-gaps)

		free := contentW - gaps
		for _, it := range line.items {
			free -= it.target + it.margin.horizontal()
		}
		offset, spacing := distribute(s.Justify, free, len(line.items))

		x := in.Left + offset
		for _, it := range line.items {
			x += it.margin.Left
			it.x = x
			x += it.target + it.margin.Right + s.ColumnGap + spacing

			it.height = t.layoutNode(it.id, it.target)
			line.cross = max(line.cross, it.height+it.margin.vertical())
		}
	}
	if !s.Wrap && hasInnerH && len(lines) == 1 {
		lines[0].cross = innerH
	}

	y := in.Top
	for i, line := range lines {
		for _, it := range line.items {
			cs := &t.nodes[it.id].style
			h := it.height
			var iy float64
			switch s.Align {
			case AlignStretch:
				if _, fixed := cs.Height.resolve(math.NaN()); !fixed {
					h = max(h, line.cross-it.margin.vertical())
					if mh, ok := cs.MaxHeight.resolve(math.NaN()); ok {
						h = min(h, max(mh, it.height))
					}
				}
				iy = y + it.margin.Top
			case AlignEnd:
				iy = y + line.cross - h - it.margin.Bottom
			case AlignCenter:
				iy = y + (line.cross-h-it.margin.vertical())/2 + it.margin.Top
			default:
				iy = y + it.margin.Top
			}
			t.place(it.id, it.x, iy, it.target, h)
		}
		y += line.cross
		if i < len(lines)-1 {
			y += s.RowGap
		}
	}
	return y - in.Top
}

// collectLines splits items into flex lines by their hypothetical sizes.
func (t *Tree) collectLines(s *Style, items []*flexItem, contentW float64) []*flexLine {
	if len(items) == 0 {
		return nil
	}
	if !s.Wrap {
		return []*flexLine{{items: items}}
	}
	var lines []*flexLine
	current := &flexLine{}
	var used float64
	for _, it := range items {
		outer := it.hyp + it.margin.horizontal()
		if len(current.items) > 0 && used+s.ColumnGap+outer > contentW {
			lines = append(lines, current)
			current = &flexLine{}
			used = 0
		}
		if len(current.items) > 0 {
			used += s.ColumnGap
		}
		current.items = append(current.items, it)
		used += outer
	}
	return append(lines, current)
}

// resolveFlexible grows or shrinks the items of one line to fill space,
// freezing items that hit their min or max size and redistributing.
func resolveFlexible(items []*flexItem, space float64) {
	var sumHyp float64
	for _, it := range items {
		sumHyp += it.hyp + it.margin.horizontal()
	}
	growing := sumHyp < space

	for _, it := range items {
		it.target = it.hyp
		factor := it.shrink
		if growing {
			factor = it.grow
		}
		it.frozen = factor == 0 || (growing && it.base > it.hyp) || (!growing && it.base < it.hyp)
	}

	for range len(items) + 1 {
		free := space
		var factors float64
		unfrozen := 0
		for _, it := range items {
			free -= it.margin.horizontal()
			if it.frozen {
				free -= it.target
				continue
			}
			free -= it.base
			unfrozen++
			if growing {
				factors += it.grow
			} else {
				factors += it.shrink * it.base
			}
		}
		if unfrozen == 0 {
			return
		}

		var total float64
		for _, it := range items {
			if it.frozen {
				continue
			}
			switch {
			case growing:
				it.target = it.base + free*it.grow/factors
			case factors > 0:
				it.target = it.base + free*it.shrink*it.base/factors
			default:
				it.target = it.base
			}
			clamped := clamp(it.target, it.minW, it.maxW)
			it.violation = clamped - it.target
			it.target = clamped
			total += it.violation
		}

		for _, it := range items {
			if it.frozen {
				continue
			}
			switch {
			case math.Abs(total) < 1e-9:
				it.frozen = true
			case total > 0 && it.violation > 0:
				it.frozen = true
			case total < 0 && it.violation < 0:
				it.frozen = true
			}
		}
		if math.Abs(total) < 1e-9 {
			return
		}
	}
}

// distribute returns the leading offset and the extra space between items
// for a justification mode.
func distribute(j Justify, free float64, count int) (offset, spacing float64) {
	if count == 0 {
		return 0, 0
	}
	if free < 0 {
		switch j {
		case JustifySpaceBetween:
			return 0, 0
		case JustifySpaceAround, JustifySpaceEvenly:
			j = JustifyCenter
		}
	}
	switch j {
	case JustifyEnd:
		offset = free
	case JustifyCenter:
		offset = free / 2
	case JustifySpaceBetween:
		if count > 1 {
			spacing = free / float64(count-1)
		}
	case JustifySpaceAround:
		spacing = free / float64(count)
		offset = spacing / 2
	case JustifySpaceEvenly:
		spacing = free / float64(count+1)
		offset = spacing
	}
	return offset, spacing
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
