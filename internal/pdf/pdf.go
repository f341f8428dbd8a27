// Package pdf wraps a rendered page bitmap into a single A4 PDF document.
package pdf

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// A4 portrait in millimeters.
const (
	pageWidthMM  = 210.0
	pageHeightMM = 297.0
)

// Compose embeds one PNG-encoded page raster full bleed on a single A4
// portrait page. The image keeps its aspect ratio at full page width; if
// that makes it taller than the page it is shrunk uniformly so the whole
// document stays on one page.
func Compose(png []byte, pxWidth, pxHeight int) ([]byte, error) {
	if len(png) == 0 {
		return nil, errors.New("empty page image")
	}
	if pxWidth <= 0 || pxHeight <= 0 {
		return nil, fmt.Errorf("invalid page dimensions %dx%d", pxWidth, pxHeight)
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	doc.RegisterImageOptionsReader("page", opts, bytes.NewReader(png))
	if doc.Err() {
		return nil, doc.Error()
	}

	imgW := pageWidthMM
	imgH := imgW * float64(pxHeight) / float64(pxWidth)
	if imgH > pageHeightMM {
		ratio := pageHeightMM / imgH
		imgW *= ratio
		imgH = pageHeightMM
	}
	doc.ImageOptions("page", 0, 0, imgW, imgH, false, opts, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
