package render

import (
	"bytes"
	"image/color"
	"testing"
)

func smallLayout() Layout {
	return Layout{
		Width:  200,
		Height: 100,
		Texts:  []Text{{X: 10, Y: 10, Size: 14, Weight: Bold, Color: colInk, Value: "INV-0001"}},
		Rules:  []Rule{{X1: 10, X2: 190, Y: 60, Color: colRule}},
		Badges: []Badge{{X: 10, Y: 70, Size: 10, PadX: 6, PadY: 2, Fill: colGreenBg, Color: colGreenInk, Value: "-5%"}},
	}
}

func TestRasterizeDimensions(t *testing.T) {
	img, err := Rasterize(smallLayout(), 2)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 200 {
		t.Fatalf("bounds = %dx%d, want 400x200", b.Dx(), b.Dy())
	}
}

func TestRasterizeDefaultScale(t *testing.T) {
	img, err := Rasterize(smallLayout(), 0)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if img.Bounds().Dx() != 200*DefaultScale {
		t.Fatalf("width = %d, want %d", img.Bounds().Dx(), 200*DefaultScale)
	}
}

func TestRasterizeDeterministic(t *testing.T) {
	a, err := Rasterize(smallLayout(), 2)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	b, err := Rasterize(smallLayout(), 2)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("identical layouts rasterized to different pixels")
	}
}

func TestRasterizeWhiteBackground(t *testing.T) {
	img, err := Rasterize(smallLayout(), 1)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	// Bottom-right corner carries no primitive.
	if got := img.RGBAAt(199, 99); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("background pixel = %v, want white", got)
	}
}

func TestRasterizeDrawsInk(t *testing.T) {
	img, err := Rasterize(smallLayout(), 2)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	var inked int
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i-3] != 255 || img.Pix[i-2] != 255 || img.Pix[i-1] != 255 {
			inked++
		}
	}
	if inked == 0 {
		t.Fatalf("nothing was drawn")
	}
}

func TestRasterizeEmptyLayout(t *testing.T) {
	if _, err := Rasterize(Layout{}, 2); err == nil {
		t.Fatalf("expected an error for a layout with no extent")
	}
}

func TestRasterizeFullInvoice(t *testing.T) {
	l := BuildInvoice(sampleInvoice(), sampleClient(), sampleCompany(), "en")
	img, err := Rasterize(l, DefaultScale)
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if img.Bounds().Dx() != int(PageWidth)*DefaultScale {
		t.Fatalf("width = %d, want %d", img.Bounds().Dx(), int(PageWidth)*DefaultScale)
	}
	if img.Bounds().Dy() < int(PageMinHeight)*DefaultScale {
		t.Fatalf("height = %d, want at least %d", img.Bounds().Dy(), int(PageMinHeight)*DefaultScale)
	}
}
