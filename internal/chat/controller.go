// Package chat drives the assistant conversation: template selection,
// hand-off to the manual editor on first use, and automated document
// generation once a learned field mapping exists.
package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lavishq/docpilot/internal/common"
	"github.com/lavishq/docpilot/internal/doctmpl"
	"github.com/lavishq/docpilot/internal/fieldpath"
	"github.com/lavishq/docpilot/internal/llm"
	"github.com/lavishq/docpilot/internal/mapping"
)

// State of the conversation with respect to template automation.
type State string

const (
	// StateIdle: no template bound; free text goes to the general
	// response capability.
	StateIdle State = "idle"
	// StateAwaitingFirstEdit: a template without a learned mapping was
	// chosen and control has been handed to the editor.
	StateAwaitingFirstEdit State = "awaiting_first_edit"
	// StateAutomated: a template with learned fields is bound; free text
	// goes to extraction.
	StateAutomated State = "automated"
)

// ErrBusy is returned while a provider request is in flight. Only one
// outstanding request is permitted; new input is rejected, not queued.
var ErrBusy = errors.New("a request is already in flight")

var ErrUnknownTemplate = errors.New("unknown template")

// Controller owns one conversation's message list and automation state.
type Controller struct {
	mu       sync.Mutex
	catalog  *doctmpl.Catalog
	mappings mapping.Store
	provider llm.Provider

	messages    []Message
	state       State
	bound       *doctmpl.Template
	boundFields []string
	busy        bool
	generation  uint64
}

// NewController starts a conversation with the greeting and template
// selection prompt already appended.
func NewController(catalog *doctmpl.Catalog, mappings mapping.Store, provider llm.Provider) *Controller {
	c := &Controller{
		catalog:  catalog,
		mappings: mappings,
		provider: provider,
		state:    StateIdle,
	}
	c.appendGreeting()
	return c
}

func (c *Controller) appendGreeting() {
	templates := c.catalog.Templates()
	ids := make([]string, 0, len(templates))
	for _, tmpl := range templates {
		ids = append(ids, tmpl.ID)
	}
	greeting := textMessage(RoleAssistant, greetingText)
	greeting.TemplateChoices = ids
	c.messages = append(c.messages, greeting)
}

// Messages returns a copy of the conversation so far.
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// State returns the current automation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// BoundTemplate returns the template currently bound for automation or
// first edit, if any.
func (c *Controller) BoundTemplate() (doctmpl.Template, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bound == nil {
		return doctmpl.Template{}, false
	}
	return *c.bound, true
}

// SelectTemplate binds a template and reports whether control should hand
// off to the manual editor (no learned mapping yet) or stay in the chat for
// automated extraction.
func (c *Controller) SelectTemplate(ctx context.Context, templateID string) (handoff bool, err error) {
	logger := common.Logger()
	tmpl, ok := c.catalog.Lookup(templateID)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownTemplate, templateID)
	}
	fields, err := c.mappings.Fields(ctx, templateID)
	if err != nil {
		return false, fmt.Errorf("load learned fields: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false, ErrBusy
	}
	c.messages = append(c.messages, textMessage(RoleUser, fmt.Sprintf(selectionFmt, tmpl.Name)))
	c.bound = &tmpl
	if len(fields) > 0 {
		c.boundFields = fields
		c.state = StateAutomated
		c.messages = append(c.messages, textMessage(RoleAssistant, fmt.Sprintf(automatedAckFmt, tmpl.Name)))
		logger.Info("chat: automation mode entered", "template", tmpl.ID, "learned_fields", len(fields))
		return false, nil
	}
	c.boundFields = nil
	c.state = StateAwaitingFirstEdit
	c.messages = append(c.messages, textMessage(RoleAssistant, fmt.Sprintf(editorAckFmt, tmpl.Name)))
	logger.Info("chat: handing off to editor", "template", tmpl.ID)
	return true, nil
}

// Send routes free-text input. In automated mode the text goes to field
// extraction and, on success, produces a generated document; otherwise it
// goes to the general response capability. Returns ErrBusy while another
// request is outstanding.
func (c *Controller) Send(ctx context.Context, text string) error {
	logger := common.Logger()
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	c.messages = append(c.messages, textMessage(RoleUser, text))
	automated := c.state == StateAutomated && c.bound != nil
	if automated && len(c.boundFields) == 0 {
		// Automation without learned fields: no network call attempted.
		c.messages = append(c.messages, textMessage(RoleAssistant, noLearnedFieldsMsg))
		c.mu.Unlock()
		return nil
	}
	c.busy = true
	generation := c.generation
	var tmpl doctmpl.Template
	var fields []string
	if automated {
		tmpl = *c.bound
		// Only the top-level segment of each learned path is requested;
		// dotted siblings collapse onto one property. Kept as-is from the
		// source system's extraction contract.
		fields = fieldpath.TopLevel(c.boundFields)
	}
	c.mu.Unlock()

	if automated {
		values, err := c.provider.Extract(ctx, text, fields)
		return c.applyExtraction(generation, tmpl, values, err)
	}
	answer, err := c.provider.Respond(ctx, text)
	if err != nil {
		logger.Error("chat: general response failed", "error", err)
	}
	return c.applyAnswer(generation, answer, err)
}

func (c *Controller) applyExtraction(generation uint64, tmpl doctmpl.Template, values map[string]interface{}, err error) error {
	logger := common.Logger()
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		// The session was reset while the request was in flight; the
		// response belongs to an abandoned conversation.
		logger.Warn("chat: discarding stale extraction response", "template", tmpl.ID)
		return nil
	}
	c.busy = false
	if err != nil {
		logger.Error("chat: extraction failed", "template", tmpl.ID, "error", err)
		// The bound template and fields are kept so the user can rephrase
		// and retry.
		c.messages = append(c.messages, textMessage(RoleAssistant, extractionFailMsg))
		return nil
	}
	merged := tmpl.InitialData.Clone()
	for key, value := range values {
		merged[key] = value
	}
	doc := &GeneratedDocument{Template: tmpl, Data: merged}
	msg := Message{ID: newMessageID(), Role: RoleAssistant, Document: doc}
	c.messages = append(c.messages, msg)
	c.state = StateIdle
	c.bound = nil
	c.boundFields = nil
	logger.Info("chat: document generated", "template", tmpl.ID, "extracted_fields", len(values))
	return nil
}

func (c *Controller) applyAnswer(generation uint64, answer llm.Answer, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		common.Logger().Warn("chat: discarding stale general response")
		return nil
	}
	c.busy = false
	if err != nil {
		c.messages = append(c.messages, textMessage(RoleAssistant, extractionFailMsg))
		return nil
	}
	msg := textMessage(RoleAssistant, answer.Text)
	msg.Sources = answer.Sources
	c.messages = append(c.messages, msg)
	return nil
}

// CompleteEdit finishes a manual editor session: the changed paths are
// recorded into the learned mapping store (a no-change session records
// nothing) and the conversation returns to idle.
func (c *Controller) CompleteEdit(ctx context.Context, templateID string, editedPaths []string) error {
	logger := common.Logger()
	if err := c.mappings.Record(ctx, templateID, editedPaths); err != nil {
		return fmt.Errorf("record learned fields: %w", err)
	}
	tmpl, ok := c.catalog.Lookup(templateID)
	name := templateID
	if ok {
		name = tmpl.Name
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	c.bound = nil
	c.boundFields = nil
	c.messages = append(c.messages, textMessage(RoleAssistant, fmt.Sprintf(editCompleteFmt, name)))
	logger.Info("chat: edit session completed", "template", templateID, "edited_fields", len(editedPaths))
	return nil
}

// Reset abandons the conversation, including any in-flight provider
// response, and starts over with the greeting.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.busy = false
	c.state = StateIdle
	c.bound = nil
	c.boundFields = nil
	c.messages = nil
	c.appendGreeting()
}
