// Package render turns document payloads into styled HTML. Each template
// variant has its own renderer; the registry resolves them by template
// identifier so payloads never carry rendering handles.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/lavishq/docpilot/internal/doctmpl"
	"github.com/lavishq/docpilot/internal/fieldpath"
)

// Options control interactive affordances. When Interactive is set, every
// bound leaf is emitted with its field path so a client can report
// selections; SelectedPath is visually distinguished.
type Options struct {
	Interactive  bool
	SelectedPath string
}

// Renderer maps a payload to presentational HTML. Malformed payloads render
// best-effort: unresolvable values come out empty.
type Renderer interface {
	Render(data doctmpl.Payload, opts Options) (template.HTML, error)
}

// Registry resolves renderers by template ID, falling back to a generic
// leaf-listing renderer for templates without a dedicated layout.
type Registry struct {
	renderers map[string]Renderer
	fallback  Renderer
}

// NewRegistry registers the built-in template renderers.
func NewRegistry() *Registry {
	return &Registry{
		renderers: map[string]Renderer{
			doctmpl.LevisMasterpieceID: newHTMLRenderer("levis-masterpiece", levisMasterpieceHTML),
			doctmpl.LavissonAntiHeatID: newHTMLRenderer("lavisson-anti-heat", lavissonAntiHeatHTML),
			doctmpl.KHomeLabelID:       newHTMLRenderer("k-home-label", kHomeLabelHTML),
		},
		fallback: genericRenderer{},
	}
}

// For returns the renderer for a template ID.
func (r *Registry) For(templateID string) Renderer {
	if renderer, ok := r.renderers[templateID]; ok {
		return renderer
	}
	return r.fallback
}

// renderContext is the dot value handed to the HTML templates. Its methods
// resolve field paths against the payload under the active options.
type renderContext struct {
	data doctmpl.Payload
	opts Options
}

// Field renders the leaf at path. Interactive output wraps the value in a
// span carrying the path; a missing value renders empty.
func (c renderContext) Field(path string) template.HTML {
	value, _ := fieldpath.Get(c.data, path)
	escaped := template.HTMLEscapeString(formatValue(value))
	if !c.opts.Interactive {
		return template.HTML(escaped)
	}
	class := "field"
	if path == c.opts.SelectedPath {
		class = "field selected"
	}
	return template.HTML(fmt.Sprintf(`<span class=%q data-path=%q>%s</span>`, class, path, escaped))
}

// Seq returns the indices of the sequence at path, for range loops.
func (c renderContext) Seq(path string) []int {
	value, ok := fieldpath.Get(c.data, path)
	if !ok {
		return nil
	}
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}
	indices := make([]int, len(items))
	for i := range items {
		indices[i] = i
	}
	return indices
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

type htmlRenderer struct {
	tmpl *template.Template
}

func newHTMLRenderer(name, text string) *htmlRenderer {
	return &htmlRenderer{tmpl: template.Must(template.New(name).Parse(text))}
}

func (h *htmlRenderer) Render(data doctmpl.Payload, opts Options) (template.HTML, error) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, renderContext{data: data, opts: opts}); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// genericRenderer lists every leaf of the payload as a labelled row. Used
// for directory-loaded templates that ship no dedicated layout.
type genericRenderer struct{}

var genericTemplate = template.Must(template.New("generic").Parse(`<div class="document generic">
<table class="fields">
{{- range .Paths}}
<tr><th>{{.}}</th><td>{{$.Ctx.Field .}}</td></tr>
{{- end}}
</table>
</div>
`))

func (genericRenderer) Render(data doctmpl.Payload, opts Options) (template.HTML, error) {
	ctx := renderContext{data: data, opts: opts}
	var buf bytes.Buffer
	payload := struct {
		Paths []string
		Ctx   renderContext
	}{Paths: fieldpath.Leaves(data), Ctx: ctx}
	if err := genericTemplate.Execute(&buf, payload); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return template.HTML(buf.String()), nil
}
