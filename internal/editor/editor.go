// Package editor drives a manual edit session over a document payload. The
// session works on a private deep copy so template defaults are never
// mutated, and on finalize reports which leaf paths the user changed.
package editor

import (
	"fmt"

	"github.com/lavishq/docpilot/internal/doctmpl"
	"github.com/lavishq/docpilot/internal/fieldpath"
)

// Session is a purely local, synchronous edit over one template instance.
type Session struct {
	Template doctmpl.Template

	original doctmpl.Payload
	data     doctmpl.Payload
	selected string
}

// NewSession starts an edit session for tmpl.
func NewSession(tmpl doctmpl.Template) *Session {
	return &Session{
		Template: tmpl,
		original: tmpl.InitialData.Clone(),
		data:     tmpl.InitialData.Clone(),
	}
}

// SelectField marks path as the field being edited. The path is not
// validated; selecting a path that does not resolve simply yields an empty
// editable value.
func (s *Session) SelectField(path string) {
	s.selected = path
}

// SelectedField returns the currently selected field path.
func (s *Session) SelectedField() string {
	return s.selected
}

// SelectedValue returns the value at the selected path, or the empty string
// when nothing resolvable is selected.
func (s *Session) SelectedValue() interface{} {
	if s.selected == "" {
		return ""
	}
	value, ok := fieldpath.Get(s.data, s.selected)
	if !ok {
		return ""
	}
	return value
}

// SetValue writes value at path. Template shapes are fixed, so missing
// intermediate containers are an error rather than created on demand.
func (s *Session) SetValue(path string, value interface{}) error {
	if err := fieldpath.Set(s.data, path, value); err != nil {
		return fmt.Errorf("edit %s: %w", path, err)
	}
	return nil
}

// Data returns the working payload.
func (s *Session) Data() doctmpl.Payload {
	return s.data
}

// Finalize returns the edited payload and the set of changed leaf paths
// versus the session's original copy.
func (s *Session) Finalize() (doctmpl.Payload, []string) {
	return s.data, fieldpath.Diff(s.original, s.data)
}
