package captions

import "strings"

// TextTransform mirrors the CSS-style transforms the caption UI offers.
type TextTransform string

const (
	TransformNone       TextTransform = "none"
	TransformUppercase  TextTransform = "uppercase"
	TransformLowercase  TextTransform = "lowercase"
	TransformCapitalize TextTransform = "capitalize"
)

// Style is the caller-supplied caption appearance. The engine is
// style-agnostic: it lays the values into the subtitle document verbatim.
type Style struct {
	FontFamily         string        `yaml:"font_family"`
	FontSize           int           `yaml:"font_size"`
	FontWeight         string        `yaml:"font_weight"` // "normal" or "bold"
	ActiveColor        string        `yaml:"active_color"`
	InactiveColor      string        `yaml:"inactive_color"`
	DimmedOpacity      float64       `yaml:"dimmed_opacity"` // 0..1 visible fraction for upcoming words
	WordsPerBatch      int           `yaml:"words_per_batch"`
	TextTransform      TextTransform `yaml:"text_transform"`
	PositionFromBottom int           `yaml:"position_from_bottom"` // vertical margin, px
}

// DefaultStyle matches the product defaults for word-highlight captions.
func DefaultStyle() Style {
	return Style{
		FontFamily:         "Montserrat",
		FontSize:           48,
		FontWeight:         "bold",
		ActiveColor:        "#FFD700",
		InactiveColor:      "#FFFFFF",
		DimmedOpacity:      0.6,
		WordsPerBatch:      4,
		TextTransform:      TransformNone,
		PositionFromBottom: 120,
	}
}

// ApplyTransform applies the configured text transform to one word.
func (s Style) ApplyTransform(word string) string {
	switch s.TextTransform {
	case TransformUppercase:
		return strings.ToUpper(word)
	case TransformLowercase:
		return strings.ToLower(word)
	case TransformCapitalize:
		return capitalize(word)
	default:
		return word
	}
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}
