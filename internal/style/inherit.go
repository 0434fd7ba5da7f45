package style

// InheritText returns a declaration carrying only the parent's text properties.
// Box model and flex properties are reset to their defaults.
func InheritText(parent Declaration) Declaration {
	return Declaration{Text: parent.Text}
}

// ApplyInherited merges an element's explicit declaration with its parent's.
// For every text property the child's explicit value wins, otherwise the parent's
// value is inherited. Box model and flex properties always come from the child.
func ApplyInherited(child, parent Declaration) Declaration {
	out := child
	out.Text = mergeText(child.Text, parent.Text)
	return out
}

func mergeText(child, parent TextStyle) TextStyle {
	return TextStyle{
		FontFamily:     pick(child.FontFamily, parent.FontFamily),
		FontSize:       pick(child.FontSize, parent.FontSize),
		FontWeight:     pick(child.FontWeight, parent.FontWeight),
		FontStyle:      pick(child.FontStyle, parent.FontStyle),
		Color:          pick(child.Color, parent.Color),
		TextAlign:      pick(child.TextAlign, parent.TextAlign),
		LineHeight:     pick(child.LineHeight, parent.LineHeight),
		LetterSpacing:  pick(child.LetterSpacing, parent.LetterSpacing),
		TextDecoration: pick(child.TextDecoration, parent.TextDecoration),
		TextTransform:  pick(child.TextTransform, parent.TextTransform),
	}
}

func pick[T any](own, inherited *T) *T {
	if own != nil {
		return own
	}
	return inherited
}
