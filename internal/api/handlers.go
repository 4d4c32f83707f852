package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/lavishq/docpilot/internal/chat"
	"github.com/lavishq/docpilot/internal/common"
	"github.com/lavishq/docpilot/internal/editor"
	"github.com/lavishq/docpilot/internal/render"
)

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	resp := templatesResponse{Templates: []templateSummary{}}
	for _, tmpl := range s.catalog.Templates() {
		resp.Templates = append(resp.Templates, templateSummary{ID: tmpl.ID, Name: tmpl.Name})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateID")
	tmpl, ok := s.catalog.Lookup(templateID)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown template %q", templateID))
		return
	}
	opts := render.Options{
		Interactive:  r.URL.Query().Get("interactive") == "1",
		SelectedPath: r.URL.Query().Get("selected"),
	}
	html, err := s.registry.For(tmpl.ID).Render(tmpl.InitialData, opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Errorf("render preview: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	controller := chat.NewController(s.catalog, s.mappings, s.provider)
	sess := s.sessions.Create(controller)
	common.Logger().Info("api: session created", "session", sess.id)
	writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID: sess.id,
		State:     controller.State(),
		Messages:  controller.Messages(),
	})
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: sess.id,
		State:     sess.controller.State(),
		Messages:  sess.controller.Messages(),
	})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	handoff, err := sess.controller.SelectTemplate(r.Context(), req.TemplateID)
	switch {
	case errors.Is(err, chat.ErrUnknownTemplate):
		writeError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, chat.ErrBusy):
		writeError(w, http.StatusConflict, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	resp := selectResponse{
		SessionID: sess.id,
		State:     sess.controller.State(),
		Messages:  sess.controller.Messages(),
	}
	sess.mu.Lock()
	if handoff {
		tmpl, _ := sess.controller.BoundTemplate()
		sess.editor = editor.NewSession(tmpl)
		state, err := s.editorSnapshot(sess.editor)
		if err != nil {
			sess.mu.Unlock()
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.Editor = state
	} else {
		sess.editor = nil
	}
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("text required"))
		return
	}
	if err := sess.controller.Send(r.Context(), req.Text); err != nil {
		if errors.Is(err, chat.ErrBusy) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: sess.id,
		State:     sess.controller.State(),
		Messages:  sess.controller.Messages(),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	sess.controller.Reset()
	sess.mu.Lock()
	sess.editor = nil
	sess.mu.Unlock()
	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: sess.id,
		State:     sess.controller.State(),
		Messages:  sess.controller.Messages(),
	})
}

func (s *Server) handleEditorSelect(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	var req editorSelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.editor == nil {
		writeError(w, http.StatusConflict, fmt.Errorf("no active editor for session %q", sess.id))
		return
	}
	sess.editor.SelectField(req.Path)
	state, err := s.editorSnapshot(sess.editor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleEditorValue(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	var req editorValueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.editor == nil {
		writeError(w, http.StatusConflict, fmt.Errorf("no active editor for session %q", sess.id))
		return
	}
	path := req.Path
	if path == "" {
		path = sess.editor.SelectedField()
	}
	if path == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("no field selected"))
		return
	}
	if err := sess.editor.SetValue(path, req.Value); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	state, err := s.editorSnapshot(sess.editor)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// handleEditorFinalize closes the editor, records which fields the user
// touched, and reports the filename the PDF export will use. The PDF bytes
// themselves come from POST /v1/export/pdf with the finalized data.
func (s *Server) handleEditorFinalize(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	sess.mu.Lock()
	if sess.editor == nil {
		sess.mu.Unlock()
		writeError(w, http.StatusConflict, fmt.Errorf("no active editor for session %q", sess.id))
		return
	}
	tmpl := sess.editor.Template
	data, edited := sess.editor.Finalize()
	sess.editor = nil
	sess.mu.Unlock()

	if err := sess.controller.CompleteEdit(r.Context(), tmpl.ID, edited); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, finalizeResponse{
		State:       sess.controller.State(),
		Messages:    sess.controller.Messages(),
		EditedPaths: edited,
		Filename:    s.exporter.Filename(tmpl, data),
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	tmpl, ok := s.catalog.Lookup(req.TemplateID)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown template %q", req.TemplateID))
		return
	}
	if req.Data == nil {
		req.Data = tmpl.InitialData.Clone()
	}
	doc, err := s.exporter.Export(r.Context(), tmpl, req.Data)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	_, _ = w.Write(doc.Data)
}

func (s *Server) editorSnapshot(es *editor.Session) (*editorState, error) {
	html, err := s.registry.For(es.Template.ID).Render(es.Data(), render.Options{
		Interactive:  true,
		SelectedPath: es.SelectedField(),
	})
	if err != nil {
		return nil, fmt.Errorf("render editor view: %w", err)
	}
	return &editorState{
		TemplateID:    es.Template.ID,
		SelectedPath:  es.SelectedField(),
		SelectedValue: es.SelectedValue(),
		Data:          es.Data(),
		HTML:          string(html),
	}, nil
}
