package pdf

import (
	"testing"
	"time"

	"github.com/lavishq/docpilot/internal/doctmpl"
	"github.com/lavishq/docpilot/internal/render"
)

func TestFilename(t *testing.T) {
	exporter := NewExporter(render.NewRegistry())
	exporter.now = func() time.Time {
		return time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	}
	tmpl := doctmpl.Template{ID: "t1", Name: "Báo Giá Levis"}
	data := doctmpl.Payload{"customerCode": "SC5"}
	got := exporter.Filename(tmpl, data)
	want := "Báo Giá Levis_SC5_2025-08-30.pdf"
	if got != want {
		t.Fatalf("filename = %q, want %q", got, want)
	}
}

func TestFilenameMissingCustomerCode(t *testing.T) {
	exporter := NewExporter(render.NewRegistry())
	exporter.now = func() time.Time {
		return time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	}
	tmpl := doctmpl.Template{ID: "t1", Name: "A/B Label"}
	got := exporter.Filename(tmpl, doctmpl.Payload{})
	if got != "A-B Label__2025-08-30.pdf" {
		t.Fatalf("filename = %q", got)
	}
}
