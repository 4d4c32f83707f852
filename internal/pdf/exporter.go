// Package pdf converts rendered documents into downloadable PDF files via
// wkhtmltopdf.
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/lavishq/docpilot/internal/common"
	"github.com/lavishq/docpilot/internal/doctmpl"
	"github.com/lavishq/docpilot/internal/fieldpath"
	"github.com/lavishq/docpilot/internal/render"
)

// Document is a finished export: the bytes plus the download filename.
type Document struct {
	Filename string
	Data     []byte
}

// Exporter renders a document non-interactively and converts it to PDF.
type Exporter struct {
	registry *render.Registry
	now      func() time.Time
}

func NewExporter(registry *render.Registry) *Exporter {
	return &Exporter{registry: registry, now: time.Now}
}

// Filename derives the download name from the template name, the payload's
// customer code, and the current date.
func (e *Exporter) Filename(tmpl doctmpl.Template, data doctmpl.Payload) string {
	code := ""
	if value, ok := fieldpath.Get(data, "customerCode"); ok {
		code = strings.TrimSpace(fmt.Sprint(value))
	}
	name := fmt.Sprintf("%s_%s_%s.pdf", tmpl.Name, code, e.now().Format("2006-01-02"))
	// Path separators would break the Content-Disposition filename.
	name = strings.ReplaceAll(name, "/", "-")
	return strings.ReplaceAll(name, "\\", "-")
}

// Export produces the PDF for a template and payload. Requires the
// wkhtmltopdf binary on the host.
func (e *Exporter) Export(ctx context.Context, tmpl doctmpl.Template, data doctmpl.Payload) (*Document, error) {
	logger := common.Logger()
	html, err := e.registry.For(tmpl.ID).Render(data, render.Options{})
	if err != nil {
		return nil, fmt.Errorf("render for export: %w", err)
	}
	generator, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("init pdf generator: %w", err)
	}
	generator.PageSize.Set(wkhtmltopdf.PageSizeA4)
	generator.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	generator.MarginTop.Set(0)
	generator.MarginBottom.Set(0)
	generator.MarginLeft.Set(0)
	generator.MarginRight.Set(0)
	generator.AddPage(wkhtmltopdf.NewPageReader(strings.NewReader(string(html))))
	if err := generator.CreateContext(ctx); err != nil {
		logger.Error("pdf: conversion failed", "template", tmpl.ID, "error", err)
		return nil, fmt.Errorf("create pdf: %w", err)
	}
	doc := &Document{Filename: e.Filename(tmpl, data), Data: generator.Bytes()}
	logger.Info("pdf: export complete", "template", tmpl.ID, "filename", doc.Filename, "bytes", len(doc.Data))
	return doc, nil
}
