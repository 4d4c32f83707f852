package chat

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/lavishq/docpilot/internal/doctmpl"
	"github.com/lavishq/docpilot/internal/llm"
	"github.com/lavishq/docpilot/internal/mapping"
)

type mockProvider struct {
	mu            sync.Mutex
	extractResult map[string]interface{}
	extractErr    error
	respondResult llm.Answer
	respondErr    error
	extractCalls  int
	respondCalls  int
	lastFields    []string
	block         chan struct{}
}

func (m *mockProvider) Extract(ctx context.Context, text string, fields []string) (map[string]interface{}, error) {
	m.mu.Lock()
	m.extractCalls++
	m.lastFields = append([]string(nil), fields...)
	block := m.block
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	return m.extractResult, m.extractErr
}

func (m *mockProvider) Respond(ctx context.Context, text string) (llm.Answer, error) {
	m.mu.Lock()
	m.respondCalls++
	m.mu.Unlock()
	if m.respondResult.Text == "" && m.respondErr == nil {
		return llm.Answer{Text: "mock-response"}, nil
	}
	return m.respondResult, m.respondErr
}

func (m *mockProvider) Name() string { return "mock" }

func newTestController(t *testing.T, provider llm.Provider, learned mapping.Mappings) *Controller {
	t.Helper()
	catalog := doctmpl.NewCatalog()
	t.Cleanup(func() { catalog.Close() })
	store := mapping.NewMemStore()
	for id, paths := range learned {
		if err := store.Record(context.Background(), id, paths); err != nil {
			t.Fatalf("seed mappings: %v", err)
		}
	}
	return NewController(catalog, store, provider)
}

func lastMessage(t *testing.T, c *Controller) Message {
	t.Helper()
	messages := c.Messages()
	if len(messages) == 0 {
		t.Fatalf("no messages")
	}
	return messages[len(messages)-1]
}

func TestGreetingCarriesTemplateIDs(t *testing.T) {
	c := newTestController(t, &mockProvider{}, nil)
	messages := c.Messages()
	if len(messages) != 1 {
		t.Fatalf("expected greeting only, got %d messages", len(messages))
	}
	if len(messages[0].TemplateChoices) != 3 {
		t.Fatalf("greeting should offer all templates, got %v", messages[0].TemplateChoices)
	}
}

func TestSelectWithoutMappingHandsOffToEditor(t *testing.T) {
	c := newTestController(t, &mockProvider{}, nil)
	handoff, err := c.SelectTemplate(context.Background(), doctmpl.LevisMasterpieceID)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !handoff {
		t.Fatalf("template without learned mapping must route to the editor")
	}
	if c.State() != StateAwaitingFirstEdit {
		t.Fatalf("state = %s, want %s", c.State(), StateAwaitingFirstEdit)
	}
}

func TestSelectWithMappingEntersAutomation(t *testing.T) {
	c := newTestController(t, &mockProvider{}, mapping.Mappings{
		doctmpl.LevisMasterpieceID: {"clientName"},
	})
	handoff, err := c.SelectTemplate(context.Background(), doctmpl.LevisMasterpieceID)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if handoff {
		t.Fatalf("template with learned mapping must stay in chat")
	}
	if c.State() != StateAutomated {
		t.Fatalf("state = %s, want %s", c.State(), StateAutomated)
	}
}

func TestAutomatedExtractionMergesOverDefaults(t *testing.T) {
	provider := &mockProvider{extractResult: map[string]interface{}{"clientName": "ABC Corp"}}
	c := newTestController(t, provider, mapping.Mappings{
		doctmpl.LevisMasterpieceID: {"clientName"},
	})
	if _, err := c.SelectTemplate(context.Background(), doctmpl.LevisMasterpieceID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := c.Send(context.Background(), "khách hàng là ABC Corp"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if provider.extractCalls != 1 {
		t.Fatalf("extract calls = %d, want 1", provider.extractCalls)
	}
	if !reflect.DeepEqual(provider.lastFields, []string{"clientName"}) {
		t.Fatalf("extraction scoped to %v, want [clientName]", provider.lastFields)
	}
	msg := lastMessage(t, c)
	if msg.Document == nil {
		t.Fatalf("expected a generated document message")
	}
	if msg.Document.Data["clientName"] != "ABC Corp" {
		t.Fatalf("clientName = %v, want ABC Corp", msg.Document.Data["clientName"])
	}
	if msg.Document.Data["customerCode"] != "SC5" {
		t.Fatalf("untouched fields must keep template defaults, got %v", msg.Document.Data["customerCode"])
	}
	if c.State() != StateIdle {
		t.Fatalf("state after generation = %s, want %s", c.State(), StateIdle)
	}
}

func TestExtractionFailureKeepsSession(t *testing.T) {
	provider := &mockProvider{extractErr: errors.New("model unavailable")}
	c := newTestController(t, provider, mapping.Mappings{
		doctmpl.LevisMasterpieceID: {"clientName"},
	})
	if _, err := c.SelectTemplate(context.Background(), doctmpl.LevisMasterpieceID); err != nil {
		t.Fatalf("select: %v", err)
	}
	before := len(c.Messages())
	if err := c.Send(context.Background(), "khách hàng là ABC Corp"); err != nil {
		t.Fatalf("send: %v", err)
	}
	messages := c.Messages()
	// Exactly the user message plus one assistant error message.
	if len(messages) != before+2 {
		t.Fatalf("expected 2 new messages, got %d", len(messages)-before)
	}
	last := messages[len(messages)-1]
	if last.Role != RoleAssistant || last.Document != nil || last.Text == "" {
		t.Fatalf("expected assistant error text, got %+v", last)
	}
	if c.State() != StateAutomated {
		t.Fatalf("failure must keep the automated session for retry, state = %s", c.State())
	}
	if _, ok := c.BoundTemplate(); !ok {
		t.Fatalf("failure must keep the bound template")
	}
}

func TestFreeChatRoutesToGeneralResponse(t *testing.T) {
	provider := &mockProvider{respondResult: llm.Answer{
		Text:    "Đây là câu trả lời.",
		Sources: []llm.Source{{URI: "https://example.com", Title: "Tài liệu"}},
	}}
	c := newTestController(t, provider, nil)
	if err := c.Send(context.Background(), "sơn chống nóng là gì?"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if provider.respondCalls != 1 {
		t.Fatalf("respond calls = %d, want 1", provider.respondCalls)
	}
	msg := lastMessage(t, c)
	if msg.Text != "Đây là câu trả lời." || len(msg.Sources) != 1 {
		t.Fatalf("answer not appended with sources: %+v", msg)
	}
	if c.State() != StateIdle {
		t.Fatalf("free chat must not change state")
	}
}

func TestBusyRejectsConcurrentInput(t *testing.T) {
	provider := &mockProvider{
		extractResult: map[string]interface{}{"clientName": "X"},
		block:         make(chan struct{}),
	}
	c := newTestController(t, provider, mapping.Mappings{
		doctmpl.LevisMasterpieceID: {"clientName"},
	})
	if _, err := c.SelectTemplate(context.Background(), doctmpl.LevisMasterpieceID); err != nil {
		t.Fatalf("select: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- c.Send(context.Background(), "first") }()
	// Wait for the first request to reach the provider.
	for {
		provider.mu.Lock()
		started := provider.extractCalls == 1
		provider.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}
	if err := c.Send(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	close(provider.block)
	if err := <-done; err != nil {
		t.Fatalf("first send: %v", err)
	}
}

func TestResetDiscardsInFlightResponse(t *testing.T) {
	provider := &mockProvider{
		extractResult: map[string]interface{}{"clientName": "stale"},
		block:         make(chan struct{}),
	}
	c := newTestController(t, provider, mapping.Mappings{
		doctmpl.LevisMasterpieceID: {"clientName"},
	})
	if _, err := c.SelectTemplate(context.Background(), doctmpl.LevisMasterpieceID); err != nil {
		t.Fatalf("select: %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- c.Send(context.Background(), "slow request") }()
	for {
		provider.mu.Lock()
		started := provider.extractCalls == 1
		provider.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}
	c.Reset()
	close(provider.block)
	if err := <-done; err != nil {
		t.Fatalf("send: %v", err)
	}
	for _, msg := range c.Messages() {
		if msg.Document != nil {
			t.Fatalf("stale response must not be applied after reset")
		}
	}
}

func TestCompleteEditRecordsLearnedFields(t *testing.T) {
	catalog := doctmpl.NewCatalog()
	defer catalog.Close()
	store := mapping.NewMemStore()
	c := NewController(catalog, store, &mockProvider{})
	if _, err := c.SelectTemplate(context.Background(), doctmpl.LevisMasterpieceID); err != nil {
		t.Fatalf("select: %v", err)
	}
	if err := c.CompleteEdit(context.Background(), doctmpl.LevisMasterpieceID, []string{"clientName", "total"}); err != nil {
		t.Fatalf("complete edit: %v", err)
	}
	fields, err := store.Fields(context.Background(), doctmpl.LevisMasterpieceID)
	if err != nil {
		t.Fatalf("fields: %v", err)
	}
	if !reflect.DeepEqual(fields, []string{"clientName", "total"}) {
		t.Fatalf("learned fields = %v", fields)
	}
	if c.State() != StateIdle {
		t.Fatalf("state after edit completion = %s, want %s", c.State(), StateIdle)
	}

	// The next selection of the same template enters automation.
	handoff, err := c.SelectTemplate(context.Background(), doctmpl.LevisMasterpieceID)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if handoff {
		t.Fatalf("learned template must enter automation on reselection")
	}
}
