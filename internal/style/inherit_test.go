package style

import (
	"reflect"
	"testing"
)

func styledParent() Declaration {
	gray := Color{R: 0xe5, G: 0xe7, B: 0xeb}
	return Declaration{
		Text: TextStyle{
			FontFamily:     Ptr("Times"),
			FontSize:       Ptr(13.5),
			FontWeight:     Ptr(WeightBold),
			FontStyle:      Ptr(FontStyleItalic),
			Color:          Ptr(Color{R: 0x37, G: 0x41, B: 0x51}),
			TextAlign:      Ptr(AlignCenter),
			LineHeight:     Ptr(LineHeight{Value: 1.5}),
			LetterSpacing:  Ptr(0.05),
			TextDecoration: Ptr(DecorationUnderline),
			TextTransform:  Ptr(TransformUppercase),
		},
		Box: BoxModel{
			Margin:          Edges{Top: 6, Right: 6, Bottom: 18, Left: 6},
			Padding:         Edges{Top: 24, Right: 24, Bottom: 24, Left: 24},
			Border:          Borders{Bottom: Border{Width: 1.5, Color: &gray}},
			BackgroundColor: &gray,
			MaxWidth:        &Length{Value: 672},
			BorderRadius:    4,
			Opacity:         Ptr(0.8),
		},
		Flex: FlexStyle{
			Display:   DisplayFlex,
			Direction: DirectionColumn,
			Justify:   JustifySpaceBetween,
			Align:     AlignItemsCenter,
			Grow:      1,
			RowGap:    6,
			ColumnGap: 6,
			Wrap:      true,
		},
	}
}

func TestInheritTextResetsBoxAndFlex(t *testing.T) {
	parent := styledParent()
	got := InheritText(parent)

	if !reflect.DeepEqual(got.Text, parent.Text) {
		t.Errorf("Expected text properties to be inherited, got %+v", got.Text)
	}
	if !reflect.DeepEqual(got.Box, BoxModel{}) {
		t.Errorf("Expected default box model, got %+v", got.Box)
	}
	if !reflect.DeepEqual(got.Flex, FlexStyle{}) {
		t.Errorf("Expected default flex properties, got %+v", got.Flex)
	}
}

func TestApplyInherited(t *testing.T) {
	parent := styledParent()

	tests := []struct {
		name  string
		child Declaration
	}{
		{
			name:  "empty child",
			child: Declaration{},
		},
		{
			name: "partial text",
			child: Declaration{Text: TextStyle{
				FontSize:   Ptr(9.0),
				FontWeight: Ptr(WeightNormal),
				TextAlign:  Ptr(AlignLeft),
			}},
		},
		{
			name: "own box and flex",
			child: Declaration{
				Text: TextStyle{Color: Ptr(Color{R: 0x6b, G: 0x72, B: 0x80}), TextTransform: Ptr(TransformNone)},
				Box:  BoxModel{Margin: Edges{Top: 3}, Width: &Length{Value: 96}},
				Flex: FlexStyle{Display: DisplayFlex, Justify: JustifyEnd, Shrink: Ptr(0.0)},
			},
		},
		{
			name: "every text field set",
			child: Declaration{Text: TextStyle{
				FontFamily:     Ptr("Courier"),
				FontSize:       Ptr(10.5),
				FontWeight:     Ptr(WeightLight),
				FontStyle:      Ptr(FontStyleNormal),
				Color:          Ptr(Color{}),
				TextAlign:      Ptr(AlignRight),
				LineHeight:     Ptr(LineHeight{Value: 14, Absolute: true}),
				LetterSpacing:  Ptr(0.0),
				TextDecoration: Ptr(DecorationNone),
				TextTransform:  Ptr(TransformLowercase),
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyInherited(tt.child, parent)

			if !reflect.DeepEqual(got.Box, tt.child.Box) {
				t.Errorf("Box model must come from the child, got %+v", got.Box)
			}
			if !reflect.DeepEqual(got.Flex, tt.child.Flex) {
				t.Errorf("Flex properties must come from the child, got %+v", got.Flex)
			}

			gotText := reflect.ValueOf(got.Text)
			childText := reflect.ValueOf(tt.child.Text)
			parentText := reflect.ValueOf(parent.Text)
			for i := range gotText.NumField() {
				field := gotText.Type().Field(i).Name
				want := childText.Field(i)
				if want.IsNil() {
					want = parentText.Field(i)
				}
				if gotText.Field(i).Pointer() != want.Pointer() {
					t.Errorf("%s: expected %v, got %v", field, want.Elem(), gotText.Field(i).Elem())
				}
			}
		})
	}
}
