// Package doctmpl defines document templates and the catalog that serves
// them. A template pairs an identifier and display name with the default
// payload a new document starts from; renderers are looked up separately by
// template ID so payloads stay plain serializable data.
package doctmpl

import "encoding/json"

// Payload is an open-ended document data mapping: field names to scalars,
// nested payloads, or ordered sequences such as line items.
type Payload map[string]interface{}

// Clone returns a deep copy with JSON value semantics, so numbers come back
// as float64 regardless of how the payload was first built. Template
// defaults must never be mutated by an edit session.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return Payload{}
	}
	var out Payload
	if err := json.Unmarshal(raw, &out); err != nil {
		return Payload{}
	}
	return out
}

// Template is immutable once registered.
type Template struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	InitialData Payload `json:"initial_data"`
}
