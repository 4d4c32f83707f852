package api

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/lavishq/docpilot/internal/chat"
	"github.com/lavishq/docpilot/internal/editor"
)

// session ties one conversation to its (optional) manual editor. The editor
// is non-nil only while the user is filling a template by hand. The chat
// controller carries its own lock; mu guards the editor handle.
type session struct {
	id         string
	controller *chat.Controller

	mu     sync.Mutex
	editor *editor.Session
}

type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[string]*session)}
}

func (m *sessionManager) Create(controller *chat.Controller) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := &session{id: uuid.NewString(), controller: controller}
	m.sessions[sess.id] = sess
	return sess
}

func (m *sessionManager) Get(id string) (*session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("unknown session %q", id)
	}
	return sess, nil
}
