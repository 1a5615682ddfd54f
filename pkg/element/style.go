package element

import (
	"errors"
	"fmt"

	"github.com/go-drift/widgetkit/pkg/config"
	"github.com/go-drift/widgetkit/pkg/graphics"
)

// Style names accepted by [Base.SetStyle].
const (
	StyleNormal   = "normal"
	StyleSelected = "selected"
	StyleHovered  = "hovered"
)

var (
	// ErrUnknownStyle is returned for a style name other than normal,
	// selected or hovered.
	ErrUnknownStyle = errors.New("element: unknown style name")
	// ErrInvalidGradient is returned for a gradient without stops or with
	// stops that do not run from 0 to 1 in non-decreasing order.
	ErrInvalidGradient = errors.New("element: invalid gradient")
)

// StyleKind selects how a background is filled.
type StyleKind int

const (
	// Transparent leaves the destination untouched.
	Transparent StyleKind = iota
	// Flat fills with a single color.
	Flat
	// Gradient fills with a linear gradient.
	Gradient
)

// Direction is a gradient axis.
type Direction int

const (
	// Vertical gradients run from the top row to the bottom row.
	Vertical Direction = iota
	// Horizontal gradients run from the left column to the right column.
	Horizontal
)

// Stop is one gradient color stop. Offset is a fraction in [0, 1].
type Stop struct {
	Color  graphics.Color
	Offset float64
}

// Style describes how a background is filled.
type Style struct {
	Kind      StyleKind
	Color     graphics.Color
	Direction Direction
	Stops     []Stop
}

// FlatStyle returns a single-color style.
func FlatStyle(c graphics.Color) Style {
	return Style{Kind: Flat, Color: c}
}

// GradientStyle returns a linear gradient style.
func GradientStyle(dir Direction, stops ...Stop) Style {
	return Style{Kind: Gradient, Direction: dir, Stops: stops}
}

// TransparentStyle returns the style that draws nothing.
func TransparentStyle() Style {
	return Style{Kind: Transparent}
}

// Validate checks the gradient stop invariants.
func (s Style) Validate() error {
	switch s.Kind {
	case Transparent, Flat:
		return nil
	case Gradient:
	default:
		return fmt.Errorf("element: unknown style kind %d", int(s.Kind))
	}
	if len(s.Stops) == 0 {
		return fmt.Errorf("%w: no stops", ErrInvalidGradient)
	}
	if s.Stops[0].Offset != 0 || s.Stops[len(s.Stops)-1].Offset != 1 {
		return fmt.Errorf("%w: stops must span 0 to 1", ErrInvalidGradient)
	}
	for i := 1; i < len(s.Stops); i++ {
		if s.Stops[i].Offset < s.Stops[i-1].Offset {
			return fmt.Errorf("%w: stop %d decreases", ErrInvalidGradient, i)
		}
	}
	return nil
}

// ColorAt returns the style's color at fraction t along its axis. Flat
// styles return their color everywhere.
func (s Style) ColorAt(t float64) graphics.Color {
	if s.Kind != Gradient || len(s.Stops) == 0 {
		return s.Color
	}
	if t <= s.Stops[0].Offset {
		return s.Stops[0].Color
	}
	for i := 1; i < len(s.Stops); i++ {
		a, b := s.Stops[i-1], s.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return a.Color.Lerp(b.Color, (t-a.Offset)/span)
	}
	return s.Stops[len(s.Stops)-1].Color
}

// StyleFromConfig converts a theme entry to a Style.
func StyleFromConfig(sc *config.StyleConfig) (Style, error) {
	switch {
	case sc == nil || sc.Transparent:
		return TransparentStyle(), nil
	case sc.Gradient != nil:
		dir := Vertical
		switch sc.Gradient.Direction {
		case "", "vertical":
		case "horizontal":
			dir = Horizontal
		default:
			return Style{}, fmt.Errorf("%w: direction %q", ErrInvalidGradient, sc.Gradient.Direction)
		}
		stops := make([]Stop, 0, len(sc.Gradient.Stops))
		for _, st := range sc.Gradient.Stops {
			c, err := graphics.ParseColor(st.Color)
			if err != nil {
				return Style{}, err
			}
			stops = append(stops, Stop{Color: c, Offset: st.At})
		}
		s := GradientStyle(dir, stops...)
		return s, s.Validate()
	default:
		c, err := graphics.ParseColor(sc.Color)
		if err != nil {
			return Style{}, err
		}
		return FlatStyle(c), nil
	}
}

func styleIndex(name string) (int, bool) {
	switch name {
	case StyleNormal:
		return 0, true
	case StyleSelected:
		return 1, true
	case StyleHovered:
		return 2, true
	}
	return 0, false
}
