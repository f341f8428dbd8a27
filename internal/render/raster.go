package render

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultScale is the supersampling factor used for print-quality output.
const DefaultScale = 2

var (
	fontOnce    sync.Once
	regularFont *opentype.Font
	boldFont    *opentype.Font
	fontErr     error
)

func loadFonts() {
	regularFont, fontErr = opentype.Parse(goregular.TTF)
	if fontErr == nil {
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	}
}

// Rasterize draws a layout into an RGBA bitmap at the given integer
// supersampling scale. Rendering is deterministic: the same layout and
// scale always produce identical pixels.
func Rasterize(l Layout, scale int) (*image.RGBA, error) {
	if scale < 1 {
		scale = DefaultScale
	}
	w := int(math.Round(l.Width)) * scale
	h := int(math.Round(l.Height)) * scale
	if w <= 0 || h <= 0 {
		return nil, errors.New("layout has no extent")
	}
	fontOnce.Do(loadFonts)
	if fontErr != nil {
		return nil, fontErr
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	faces := faceCache{scale: scale, faces: map[faceKey]font.Face{}}

	for _, r := range l.Rules {
		y := int(math.Round(r.Y)) * scale
		fillRect(img,
			int(math.Round(r.X1))*scale, y,
			int(math.Round(r.X2))*scale, y+scale,
			rgba(r.Color))
	}

	for _, b := range l.Badges {
		face, err := faces.get(Regular, b.Size)
		if err != nil {
			return nil, err
		}
		tw := measure(face, b.Value)
		boxW := tw + 2*b.PadX*float64(scale)
		boxH := (b.Size + 2*b.PadY) * float64(scale)
		x0 := anchor(b.X*float64(scale), boxW, b.Align)
		y0 := b.Y * float64(scale)
		fillRect(img, int(math.Round(x0)), int(math.Round(y0)),
			int(math.Round(x0+boxW)), int(math.Round(y0+boxH)), rgba(b.Fill))
		drawString(img, face, b.Value, x0+b.PadX*float64(scale), y0+b.PadY*float64(scale), rgba(b.Color))
	}

	for _, t := range l.Texts {
		face, err := faces.get(t.Weight, t.Size)
		if err != nil {
			return nil, err
		}
		tw := measure(face, t.Value)
		x := anchor(t.X*float64(scale), tw, t.Align)
		y := t.Y * float64(scale)
		drawString(img, face, t.Value, x, y, rgba(t.Color))
		if t.Strike {
			sy := int(math.Round(y + t.Size*0.45*float64(scale)))
			fillRect(img, int(math.Round(x)), sy, int(math.Round(x+tw)), sy+scale, rgba(t.Color))
		}
	}
	return img, nil
}

type faceKey struct {
	weight Weight
	size   float64
}

type faceCache struct {
	scale int
	faces map[faceKey]font.Face
}

func (c *faceCache) get(w Weight, size float64) (font.Face, error) {
	key := faceKey{w, size}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	src := regularFont
	if w == Bold {
		src = boldFont
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size * float64(c.scale),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[key] = face
	return face, nil
}

// anchor shifts an aligned anchor X to the left edge of a box of width w.
func anchor(x, w float64, a Align) float64 {
	switch a {
	case Right:
		return x - w
	case Center:
		return x - w/2
	default:
		return x
	}
}

func measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}

// drawString draws s with its line box's top-left corner at (x, y).
func drawString(img *image.RGBA, face font.Face, s string, x, y float64, c color.RGBA) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixP(x),
			Y: fixP(y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(s)
}

func fixP(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	draw.Draw(img, image.Rect(x0, y0, x1, y1), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

func rgba(c RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
