// Package providers contains the language-model backends behind the two
// conversational capabilities: structured field extraction and general
// question answering.
package providers

import "context"

// Source is a reference citation attached to a general response.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Answer is a general-purpose reply plus any reference citations.
type Answer struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources,omitempty"`
}

type Provider interface {
	// Extract pulls best-effort values for the requested top-level field
	// names out of free text. Fields not found in the text may be omitted.
	Extract(ctx context.Context, text string, fields []string) (map[string]interface{}, error)
	// Respond answers free text with no template bound.
	Respond(ctx context.Context, text string) (Answer, error)
	Name() string
}
