// Package designer turns text into a framed, optionally logo-stamped QR code
// and serializes it for download.
//
// The pipeline is linear: Encode builds the module grid, Compose rasterizes
// it and Exporter writes the requested file format. Generator runs all three
// for a single Request.
package designer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Generator runs generation cycles. It holds no per-request state and is safe
// for concurrent use.
type Generator struct {
	exporter Exporter
	log      *slog.Logger
}

// NewGenerator returns a Generator that encodes JPEGs at jpegQuality.
func NewGenerator(jpegQuality int, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		exporter: Exporter{JPEGQuality: jpegQuality},
		log:      log,
	}
}

// Generate encodes, composes and exports req. ErrEmptyInput means there was
// nothing to do and no image was produced.
func (g *Generator) Generate(req Request) (*Artifact, error) {
	if req.Text == "" {
		return nil, ErrEmptyInput
	}
	if req.Format == "" {
		req.Format = FormatPNG
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	log := g.log.With("generation", id.String())
	start := time.Now()

	sym, err := Encode(req.Text)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	img := Compose(sym, req.Color, req.Logo)

	art, err := g.exporter.Export(img, req.Format)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	log.Debug("qr code generated",
		"format", art.Format,
		"version", sym.Version,
		"modules", sym.Size(),
		"width", art.Width,
		"logo", req.Logo != nil,
		"bytes", len(art.Data),
		"took", time.Since(start),
	)
	return art, nil
}
