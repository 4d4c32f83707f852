package api

import (
	"github.com/lavishq/docpilot/internal/chat"
	"github.com/lavishq/docpilot/internal/doctmpl"
)

type templateSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type templatesResponse struct {
	Templates []templateSummary `json:"templates"`
}

type sessionResponse struct {
	SessionID string         `json:"session_id"`
	State     chat.State     `json:"state"`
	Messages  []chat.Message `json:"messages"`
}

type selectRequest struct {
	TemplateID string `json:"template_id"`
}

type selectResponse struct {
	SessionID string         `json:"session_id"`
	State     chat.State     `json:"state"`
	Messages  []chat.Message `json:"messages"`
	Editor    *editorState   `json:"editor,omitempty"`
}

type messageRequest struct {
	Text string `json:"text"`
}

type editorSelectRequest struct {
	Path string `json:"path"`
}

type editorValueRequest struct {
	Path  string      `json:"path"`
	Value interface{} `json:"value"`
}

type editorState struct {
	TemplateID    string          `json:"template_id"`
	SelectedPath  string          `json:"selected_path,omitempty"`
	SelectedValue interface{}     `json:"selected_value,omitempty"`
	Data          doctmpl.Payload `json:"data"`
	HTML          string          `json:"html"`
}

type finalizeResponse struct {
	State       chat.State     `json:"state"`
	Messages    []chat.Message `json:"messages"`
	EditedPaths []string       `json:"edited_paths"`
	Filename    string         `json:"filename"`
}

type exportRequest struct {
	TemplateID string          `json:"template_id"`
	Data       doctmpl.Payload `json:"data"`
}
