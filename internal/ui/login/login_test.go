// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package login

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/backoffice-tui/internal/api"
	"github.com/jeranaias/backoffice-tui/internal/session"
	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
)

func newTestModel(t *testing.T, handler http.HandlerFunc) (Model, *session.Store) {
	t.Helper()
	store := session.NewMemoryStore()
	var baseURL string
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	} else {
		baseURL = "http://127.0.0.1:0"
	}
	client := api.NewClient(&api.ClientConfig{BaseURL: baseURL, Timeout: 5 * time.Second}, store)
	return New(styles.NewTheme(), client, store), store
}

func typeKeys(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func pressKey(m Model, key string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	return m.Update(msg)
}

func TestSubmitValidationBlocksNetwork(t *testing.T) {
	calls := 0
	m, _ := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	m = typeKeys(m, "not-an-email")
	m, _ = pressKey(m, "tab")
	m = typeKeys(m, "pw")

	m, cmd := pressKey(m, "enter")

	if m.Submitting() {
		t.Error("invalid form should not start a request")
	}
	if cmd != nil {
		t.Error("invalid form should not produce a network command")
	}
	if m.Errors().EmailError == "" || m.Errors().PasswordError == "" {
		t.Errorf("expected both field errors, got %+v", m.Errors())
	}
	if calls != 0 {
		t.Errorf("server saw %d calls, want 0", calls)
	}
}

func TestEditingClearsFieldError(t *testing.T) {
	m, _ := newTestModel(t, nil)

	m = typeKeys(m, "bad")
	m, _ = pressKey(m, "enter")
	if m.Errors().EmailError == "" {
		t.Fatal("expected email error after invalid submit")
	}

	m = typeKeys(m, "x")
	if m.Errors().EmailError != "" {
		t.Error("editing the email field should clear its error")
	}
}

func TestSuccessfulLoginStoresToken(t *testing.T) {
	m, store := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Authorization", "Bearer tok123")
		w.Write([]byte(`{}`))
	})

	m = typeKeys(m, "admin@example.com")
	m, _ = pressKey(m, "tab")
	m = typeKeys(m, "admin1234")

	m, cmd := pressKey(m, "enter")
	if !m.Submitting() {
		t.Fatal("valid submit should mark the form submitting")
	}

	result := runBatch(t, cmd)
	if result.Err != nil {
		t.Fatalf("login failed: %v", result.Err)
	}

	tok, ok := store.Token()
	if !ok || tok != "Bearer tok123" {
		t.Errorf("stored token = %q, %v", tok, ok)
	}

	m, next := m.Update(result)
	if m.Submitting() {
		t.Error("result should clear the submitting flag")
	}
	if next == nil {
		t.Fatal("successful login should emit a follow-up message")
	}
	if _, ok := next().(SuccessMsg); !ok {
		t.Error("follow-up should be SuccessMsg")
	}
}

func TestRejectedLoginShowsModal(t *testing.T) {
	m, store := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	m = typeKeys(m, "admin@example.com")
	m, _ = pressKey(m, "tab")
	m = typeKeys(m, "wrongpass")
	m, cmd := pressKey(m, "enter")

	result := runBatch(t, cmd)
	if !api.IsInvalidCredentials(result.Err) {
		t.Fatalf("err = %v, want invalid credentials", result.Err)
	}

	m, _ = m.Update(result)
	if !m.ModalVisible() {
		t.Error("rejected login should show the modal")
	}
	if _, ok := store.Token(); ok {
		t.Error("token store must stay absent after rejected login")
	}

	view := m.View()
	if !strings.Contains(view, "Invalid credentials") {
		t.Errorf("view missing modal title: %q", view)
	}

	// Modal dismisses on enter.
	m, _ = pressKey(m, "enter")
	if m.ModalVisible() {
		t.Error("enter should dismiss the modal")
	}
}

func TestResultWithGenericErrorShowsInline(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m, _ = m.Update(ResultMsg{Err: &api.Error{Kind: api.KindServerError, Message: "boom"}})
	if m.ModalVisible() {
		t.Error("server errors should not open the credentials modal")
	}
	if m.Errors().PasswordError == "" {
		t.Error("server errors should surface on the form")
	}
}

func TestViewShowsLabels(t *testing.T) {
	m, _ := newTestModel(t, nil)
	view := m.View()
	for _, want := range []string{"Email", "Password", "Sign in"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

// runBatch executes the submit command tree and returns the ResultMsg.
func runBatch(t *testing.T, cmd tea.Cmd) ResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	var walk func(tea.Cmd) *ResultMsg
	walk = func(c tea.Cmd) *ResultMsg {
		if c == nil {
			return nil
		}
		msg := c()
		switch msg := msg.(type) {
		case ResultMsg:
			return &msg
		case tea.BatchMsg:
			for _, sub := range msg {
				if r := walk(sub); r != nil {
					return r
				}
			}
		}
		return nil
	}
	r := walk(cmd)
	if r == nil {
		t.Fatal("command tree produced no ResultMsg")
	}
	return *r
}
