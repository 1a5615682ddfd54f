package settings

import "github.com/go-drift/widgetkit/pkg/graphics"

// DefaultFontSet is the font set widgets use unless told otherwise.
const DefaultFontSet = "default"

// TextConfig is the font and color configuration of a text widget.
type TextConfig struct {
	FontSet     string
	Size        int
	Bold        bool
	Italic      bool
	Color       graphics.Color
	ColorSelect graphics.Color
	BorderLight graphics.Color
	BorderDark  graphics.Color
	// EmWidth is the horizontal padding added to the measured text.
	EmWidth int
}

// DefaultTextConfig returns the built-in text configuration.
func DefaultTextConfig() TextConfig {
	return TextConfig{
		FontSet:     DefaultFontSet,
		Size:        12,
		Color:       graphics.ColorBlack,
		ColorSelect: graphics.ColorWhite,
		BorderLight: graphics.RGB(0xe8, 0xe8, 0xe8),
		BorderDark:  graphics.RGB(0x60, 0x60, 0x60),
		EmWidth:     12,
	}
}

// Apply applies settings in order and reports whether any value changed.
// Settings are assumed checked against a schema.
func (c *TextConfig) Apply(in ...Setting) bool {
	changed := false
	setBool := func(dst *bool, v bool) {
		if *dst != v {
			*dst = v
			changed = true
		}
	}
	setInt := func(dst *int, v int) {
		if *dst != v {
			*dst = v
			changed = true
		}
	}
	setColor := func(dst *graphics.Color, v graphics.Color) {
		if *dst != v {
			*dst = v
			changed = true
		}
	}
	for _, s := range in {
		switch s.Name {
		case KeyFontBold:
			setBool(&c.Bold, s.Flag)
		case KeyFontItalic:
			setBool(&c.Italic, s.Flag)
		case KeyFontSize:
			setInt(&c.Size, s.Int)
		case KeyFontEmWidth:
			setInt(&c.EmWidth, s.Int)
		case KeyFontColor:
			setColor(&c.Color, s.Color)
		case KeyFontColorSelect:
			setColor(&c.ColorSelect, s.Color)
		}
	}
	return changed
}

// Configure parses items against schema and applies the usable ones. It
// returns whether anything changed and the warnings for skipped items.
func (c *TextConfig) Configure(schema Schema, items ...string) (bool, []error) {
	parsed, warnings := schema.Parse(items...)
	return c.Apply(parsed...), warnings
}

// Set checks typed settings against schema and applies the valid ones.
func (c *TextConfig) Set(schema Schema, in ...Setting) (bool, []error) {
	checked, warnings := schema.Check(in...)
	return c.Apply(checked...), warnings
}
