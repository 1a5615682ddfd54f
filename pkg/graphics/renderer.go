// Package graphics defines the pixel primitives shared by the toolkit and
// the collaborator interfaces it draws through.
//
// The toolkit never owns a drawing surface, a font or a texture. Each is
// borrowed from the embedding application for the duration of a single
// call and must not be retained afterwards.
package graphics

// Renderer is a drawing surface. All calls are synchronous and their
// effect is immediately visible on the surface.
type Renderer interface {
	// SetDrawColor sets the color used by subsequent draw calls.
	SetDrawColor(c Color)
	// DrawPoint plots a single pixel.
	DrawPoint(x, y int)
	// DrawLine draws a one-pixel line including both endpoints.
	DrawLine(x1, y1, x2, y2 int)
	// FillRect fills a rectangle.
	FillRect(r Rect)
	// CopyTexture draws tex scaled into dst.
	CopyTexture(tex Texture, dst Rect) error
}

// Texture is a rasterized image owned by the backend that produced it.
type Texture interface {
	Size() Size
}

// Font is an opaque font handle returned by a [FontProvider].
type Font interface {
	// Set returns the font set name the handle was resolved from.
	Set() string
	// PixelSize returns the requested size in pixels.
	PixelSize() int
}

// FontProvider resolves fonts and reports text metrics.
type FontProvider interface {
	// Font resolves a font from a font set.
	Font(set string, size int, bold, italic bool) (Font, error)
	// MeasureText reports the extent of s rendered in f.
	MeasureText(f Font, s string) (w, h int, err error)
	// LineHeight reports the distance between consecutive baselines.
	LineHeight(f Font) int
}

// TextRasterizer renders a string into a texture.
type TextRasterizer interface {
	RenderText(s string, f Font, c Color) (Texture, error)
}
