// Package export runs the document pipeline: lay out an invoice or
// receipt, rasterize it, compose the PDF, then hand the result off as a
// file on disk or an in-memory preview.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ttrabelsi/facturier/internal/logging"
	"github.com/ttrabelsi/facturier/internal/models"
	"github.com/ttrabelsi/facturier/internal/pdf"
	"github.com/ttrabelsi/facturier/internal/render"
)

var (
	// ErrRenderTargetUnavailable means no invoice content reached the
	// pipeline, so there is nothing to render.
	ErrRenderTargetUnavailable = errors.New("export: render target unavailable")

	// ErrExportInFlight means an export for the same invoice is already
	// running; the caller should wait for it instead of starting another.
	ErrExportInFlight = errors.New("export: already in progress for this invoice")

	// ErrPreviewReleased means the preview's bytes were asked for after
	// the preview was released.
	ErrPreviewReleased = errors.New("export: preview already released")
)

// Request carries everything one document needs. Client and Company may
// be nil; the renderer substitutes placeholders.
type Request struct {
	Invoice *models.Invoice
	Client  *models.Client
	Company *models.CompanyInfo

	// Language selects the label set; unsupported codes fall back to the
	// default language.
	Language string

	// Receipt renders a payment receipt instead of an invoice.
	Receipt bool
}

func (r Request) documentName() string {
	if r.Invoice == nil {
		return ""
	}
	if r.Receipt {
		return r.Invoice.ReceiptNumber()
	}
	return r.Invoice.InvoiceNumber
}

// Exporter runs one render pipeline per invoice at a time and owns the
// previews it hands out. Close releases every outstanding preview.
type Exporter struct {
	// Scale is the raster supersampling factor; zero means the default.
	Scale int

	log zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
	previews map[string]*Preview
}

func NewExporter() *Exporter {
	return &Exporter{
		log:      logging.WithComponent("export"),
		inFlight: make(map[string]struct{}),
		previews: make(map[string]*Preview),
	}
}

// ExportFile renders the document and writes it next to no partial
// state: the PDF appears at <dir>/<number>.pdf atomically or not at all.
// It returns the written path.
func (e *Exporter) ExportFile(req Request, dir string) (string, error) {
	release, err := e.acquire(req)
	if err != nil {
		return "", err
	}
	defer release()

	data, err := e.generate(req)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: create output dir: %w", err)
	}
	path := filepath.Join(dir, req.documentName()+".pdf")
	tmp, err := os.CreateTemp(dir, ".facturier-*.pdf")
	if err != nil {
		return "", fmt.Errorf("export: create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("export: write pdf: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("export: close pdf: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("export: finalize pdf: %w", err)
	}

	e.log.Info().Str("document", req.documentName()).Str("path", path).
		Int("bytes", len(data)).Msg("exported pdf")
	return path, nil
}

// Preview renders the document and keeps the PDF in memory under the
// exporter's ownership. Requesting a new preview for the same invoice
// releases the previous one first. The caller must Release the preview
// when done with it.
func (e *Exporter) Preview(req Request) (*Preview, error) {
	release, err := e.acquire(req)
	if err != nil {
		return nil, err
	}
	defer release()

	data, err := e.generate(req)
	if err != nil {
		return nil, err
	}

	p := &Preview{name: req.documentName() + ".pdf", data: data, owner: e, key: req.Invoice.ID}

	e.mu.Lock()
	if old := e.previews[p.key]; old != nil {
		old.drop()
	}
	e.previews[p.key] = p
	e.mu.Unlock()

	e.log.Debug().Str("document", req.documentName()).Int("bytes", len(data)).Msg("preview ready")
	return p, nil
}

// Close releases every preview the exporter still owns.
func (e *Exporter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for k, p := range e.previews {
		p.drop()
		delete(e.previews, k)
	}
}

// acquire marks the request's invoice as in flight, or fails if a run is
// already active. The returned func clears the mark.
func (e *Exporter) acquire(req Request) (func(), error) {
	if req.Invoice == nil {
		return nil, ErrRenderTargetUnavailable
	}
	key := req.Invoice.ID
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inFlight[key]; busy {
		return nil, ErrExportInFlight
	}
	e.inFlight[key] = struct{}{}
	return func() {
		e.mu.Lock()
		delete(e.inFlight, key)
		e.mu.Unlock()
	}, nil
}

// generate runs layout, raster and PDF composition for one document.
func (e *Exporter) generate(req Request) ([]byte, error) {
	var layout render.Layout
	if req.Receipt {
		layout = render.BuildReceipt(req.Invoice, req.Client, req.Company, req.Language)
	} else {
		layout = render.BuildInvoice(req.Invoice, req.Client, req.Company, req.Language)
	}
	if layout.Empty() {
		return nil, ErrRenderTargetUnavailable
	}
	if layout.Height > render.PageMinHeight {
		e.log.Warn().Str("document", req.documentName()).Float64("height", layout.Height).
			Msg("content exceeds one page, output will be scaled down")
	}

	img, err := render.Rasterize(layout, e.Scale)
	if err != nil {
		return nil, fmt.Errorf("export: rasterize: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("export: encode png: %w", err)
	}
	data, err := pdf.Compose(buf.Bytes(), img.Bounds().Dx(), img.Bounds().Dy())
	if err != nil {
		return nil, fmt.Errorf("export: compose pdf: %w", err)
	}
	return data, nil
}

// Preview is an in-memory PDF owned by its exporter. Bytes is valid
// until Release.
type Preview struct {
	name  string
	owner *Exporter
	key   string

	mu       sync.Mutex
	data     []byte
	released bool
}

// Name is the document file name the preview would be saved under.
func (p *Preview) Name() string { return p.name }

// Bytes returns the PDF contents, or an error once released.
func (p *Preview) Bytes() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.released {
		return nil, ErrPreviewReleased
	}
	return p.data, nil
}

// Release frees the preview's memory and detaches it from the exporter.
// Releasing twice is harmless.
func (p *Preview) Release() {
	p.drop()
	p.owner.mu.Lock()
	if p.owner.previews[p.key] == p {
		delete(p.owner.previews, p.key)
	}
	p.owner.mu.Unlock()
}

func (p *Preview) drop() {
	p.mu.Lock()
	p.data = nil
	p.released = true
	p.mu.Unlock()
}
