// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/backoffice-tui/internal/util"
)

// =============================================================================
// EVENTS
// =============================================================================

// EventKind describes a token state change.
type EventKind int

const (
	// TokenSet means a token was stored (login, or external write).
	TokenSet EventKind = iota
	// TokenCleared means the token was removed (logout, rejection, or
	// external deletion).
	TokenCleared
)

// Event is delivered to listeners on every state change.
type Event struct {
	Kind EventKind
}

// ChangedMsg is the Bubble Tea message form of an Event, for delivery
// into the program's update loop.
type ChangedMsg struct {
	HasToken bool
}

// =============================================================================
// STORE
// =============================================================================

// Store holds at most one bearer token. It is constructed once in main
// and injected into the API client and every screen that needs it; there
// is no package-level token state.
type Store struct {
	mu        sync.Mutex
	token     string
	path      string // "" = in-memory only
	listeners []func(Event)
}

// NewStore creates a store persisting to the given file path. An
// existing token file is loaded, so a prior session resumes silently.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}
	s.token = strings.TrimSpace(string(data))
	return s, nil
}

// NewMemoryStore creates a store with no file persistence. Used in
// tests and when no writable state directory exists.
func NewMemoryStore() *Store {
	return &Store{}
}

// SetToken stores the token and persists it. Effective immediately for
// subsequent requests.
func (s *Store) SetToken(tok string) error {
	s.mu.Lock()
	s.token = tok
	path := s.path
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if path != "" {
		// 0600: the token is a credential, not a preference.
		if err := util.AtomicWriteFile(path, []byte(tok), 0600); err != nil {
			return fmt.Errorf("failed to persist token: %w", err)
		}
	}

	notify(listeners, Event{Kind: TokenSet})
	return nil
}

// Token returns the current token, with false when none is held.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

// ClearToken removes the token and deletes the persisted copy.
// Subsequent Token calls report absent.
func (s *Store) ClearToken() error {
	s.mu.Lock()
	hadToken := s.token != ""
	s.token = ""
	path := s.path
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove token file: %w", err)
		}
	}

	if hadToken {
		notify(listeners, Event{Kind: TokenCleared})
	}
	return nil
}

// Subscribe registers a listener invoked on every state change. The
// listener runs on the mutating goroutine and must not block.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Path returns the token file path ("" for memory-only stores).
func (s *Store) Path() string {
	return s.path
}

// reloadFromDisk re-reads the token file and notifies listeners when
// the in-memory value changed. Called by the file watcher.
func (s *Store) reloadFromDisk() {
	s.mu.Lock()
	path := s.path
	s.mu.Unlock()
	if path == "" {
		return
	}

	var fromDisk string
	if data, err := os.ReadFile(path); err == nil {
		fromDisk = strings.TrimSpace(string(data))
	}

	s.mu.Lock()
	changed := fromDisk != s.token
	s.token = fromDisk
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	if !changed {
		return
	}
	if fromDisk == "" {
		notify(listeners, Event{Kind: TokenCleared})
	} else {
		notify(listeners, Event{Kind: TokenSet})
	}
}

// snapshotListeners must be called with s.mu held.
func (s *Store) snapshotListeners() []func(Event) {
	out := make([]func(Event), len(s.listeners))
	copy(out, s.listeners)
	return out
}

func notify(listeners []func(Event), e Event) {
	for _, fn := range listeners {
		fn(e)
	}
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// Forward wires the store's events into a running program. Call after
// tea.NewProgram; every token change then arrives as a ChangedMsg.
func Forward(s *Store, send func(tea.Msg)) {
	s.Subscribe(func(e Event) {
		send(ChangedMsg{HasToken: e.Kind == TokenSet})
	})
}
