package graphics

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is stored as ARGB (0xAARRGGBB).
type Color uint32

// RGBA8 constructs a Color from red, green, blue, alpha bytes (all 0-255).
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque Color from red, green, blue bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// R returns the red component.
func (c Color) R() uint8 { return uint8(c >> 16) }

// G returns the green component.
func (c Color) G() uint8 { return uint8(c >> 8) }

// B returns the blue component.
func (c Color) B() uint8 { return uint8(c) }

// A returns the alpha component.
func (c Color) A() uint8 { return uint8(c >> 24) }

// RGBA implements [image/color.Color] with alpha-premultiplied 16-bit
// components.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A())
	r = uint32(c.R()) * a / 0xFF
	g = uint32(c.G()) * a / 0xFF
	b = uint32(c.B()) * a / 0xFF
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

// WithAlpha8 returns a copy of the color with the given alpha byte (0-255).
func (c Color) WithAlpha8(a uint8) Color {
	return Color(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

// Lerp interpolates each component between c and to; t is clamped to [0,1].
func (c Color) Lerp(to Color, t float64) Color {
	t = clamp01(t)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return RGBA8(mix(c.R(), to.R()), mix(c.G(), to.G()), mix(c.B(), to.B()), mix(c.A(), to.A()))
}

// String formats the color as its "r,g,b,a" components.
func (c Color) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", c.R(), c.G(), c.B(), c.A())
}

// ParseColor parses "r,g,b,a" (four integers 0-255), "#rrggbb" or
// "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) != 6 && len(hex) != 8 {
			return 0, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("color %q: %w", s, err)
		}
		if len(hex) == 6 {
			return Color(0xFF000000 | uint32(v)), nil
		}
		return RGBA8(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, fmt.Errorf("color %q: want 4 comma-separated components, got %d", s, len(parts))
	}
	var comp [4]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, fmt.Errorf("color %q: component %d: %w", s, i, err)
		}
		if n < 0 || n > 255 {
			return 0, fmt.Errorf("color %q: component %d out of range 0-255: %d", s, i, n)
		}
		comp[i] = uint8(n)
	}
	return RGBA8(comp[0], comp[1], comp[2], comp[3]), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)
