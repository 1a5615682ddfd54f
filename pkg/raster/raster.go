// Package raster is a software drawing backend. [Canvas] implements
// graphics.Renderer over an *image.RGBA and [Fonts] resolves bitmap faces
// from golang.org/x/image/font and rasterizes text into [Texture] values
// the canvas can copy.
//
// Nothing here needs a display, so the backend serves headless rendering
// such as the widgetkit command's PNG output.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"

	"github.com/go-drift/widgetkit/pkg/graphics"
)

// ErrForeignTexture is returned when a texture was not produced by this
// package.
var ErrForeignTexture = errors.New("raster: texture not produced by raster")

// Texture is an RGBA image produced by [Fonts.RenderText] or [NewTexture].
type Texture struct {
	img *image.RGBA
}

// NewTexture wraps img. The texture shares its pixels.
func NewTexture(img *image.RGBA) *Texture {
	return &Texture{img: img}
}

// Size implements graphics.Texture.
func (t *Texture) Size() graphics.Size {
	b := t.img.Bounds()
	return graphics.Size{W: b.Dx(), H: b.Dy()}
}

// Image returns the texture pixels.
func (t *Texture) Image() *image.RGBA { return t.img }

// Canvas draws into an RGBA image. Colors with alpha below 255 blend over
// the existing pixels. Draws outside the image are clipped.
type Canvas struct {
	img   *image.RGBA
	color graphics.Color
	src   *image.Uniform

	// Scaler resizes textures copied into a destination of a different
	// size. It defaults to draw.NearestNeighbor.
	Scaler draw.Scaler
}

// New returns a w×h canvas cleared to transparent black.
func New(w, h int) *Canvas {
	return NewFromImage(image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0))))
}

// NewFromImage returns a canvas drawing into img.
func NewFromImage(img *image.RGBA) *Canvas {
	c := &Canvas{img: img, Scaler: draw.NearestNeighbor}
	c.SetDrawColor(graphics.ColorBlack)
	return c
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Size returns the canvas extent.
func (c *Canvas) Size() graphics.Size {
	b := c.img.Bounds()
	return graphics.Size{W: b.Dx(), H: b.Dy()}
}

// At returns the pixel at (x, y), or transparent outside the canvas.
func (c *Canvas) At(x, y int) graphics.Color {
	if !(image.Point{X: x, Y: y}.In(c.img.Bounds())) {
		return graphics.ColorTransparent
	}
	p := c.img.RGBAAt(x, y)
	return unpremultiply(p.R, p.G, p.B, p.A)
}

// Clear replaces every pixel with col.
func (c *Canvas) Clear(col graphics.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// SetDrawColor implements graphics.Renderer.
func (c *Canvas) SetDrawColor(col graphics.Color) {
	c.color = col
	c.src = image.NewUniform(col)
}

// DrawPoint implements graphics.Renderer.
func (c *Canvas) DrawPoint(x, y int) {
	c.fill(image.Rect(x, y, x+1, y+1))
}

// DrawLine implements graphics.Renderer.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int) {
	graphics.WalkLine(x1, y1, x2, y2, c.DrawPoint)
}

// FillRect implements graphics.Renderer.
func (c *Canvas) FillRect(r graphics.Rect) {
	if r.Empty() {
		return
	}
	c.fill(image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H))
}

func (c *Canvas) fill(r image.Rectangle) {
	r = r.Intersect(c.img.Bounds())
	if r.Empty() {
		return
	}
	op := draw.Over
	if c.color.A() == 0xFF {
		op = draw.Src
	}
	draw.Draw(c.img, r, c.src, image.Point{}, op)
}

// CopyTexture implements graphics.Renderer. The texture is scaled to fill
// dst and blended over the canvas.
func (c *Canvas) CopyTexture(tex graphics.Texture, dst graphics.Rect) error {
	t, ok := tex.(*Texture)
	if !ok || t == nil || t.img == nil {
		return fmt.Errorf("%w: %T", ErrForeignTexture, tex)
	}
	if dst.Empty() || t.img.Bounds().Empty() {
		return nil
	}
	r := image.Rect(dst.X, dst.Y, dst.X+dst.W, dst.Y+dst.H)
	if r.Size() == t.img.Bounds().Size() {
		draw.Draw(c.img, r, t.img, t.img.Bounds().Min, draw.Over)
		return nil
	}
	c.Scaler.Scale(c.img, r, t.img, t.img.Bounds(), draw.Over, nil)
	return nil
}

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

func unpremultiply(r, g, b, a uint8) graphics.Color {
	if a == 0 {
		return graphics.ColorTransparent
	}
	if a == 0xFF {
		return graphics.RGB(r, g, b)
	}
	un := func(v uint8) uint8 { return uint8((uint32(v)*0xFF + uint32(a)/2) / uint32(a)) }
	return graphics.RGBA8(un(r), un(g), un(b), a)
}
