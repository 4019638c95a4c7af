// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package register

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

func newTestModel(t *testing.T, handler http.HandlerFunc) Model {
	t.Helper()
	store := session.NewMemoryStore()
	store.SetToken("Bearer tok")

	baseURL := "http://127.0.0.1:0"
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		baseURL = srv.URL
	}
	client := api.NewClient(&api.ClientConfig{BaseURL: baseURL, Timeout: 5 * time.Second}, store)
	return New(styles.NewTheme(), client)
}

func typeKeys(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestValidationBlocksSubmit(t *testing.T) {
	m := newTestModel(t, nil)
	m = typeKeys(m, "nope")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || m.Submitting() {
		t.Error("invalid form should not submit")
	}
	if m.Errors().EmailError == "" {
		t.Error("expected email error")
	}
}

func TestSubmitSendsRequest(t *testing.T) {
	var gotPath string
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	})

	m = typeKeys(m, "new@example.com")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typeKeys(m, "secret99")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if !m.Submitting() {
		t.Fatal("valid submit should mark submitting")
	}

	result := collectResult(t, cmd)
	if result.Err != nil {
		t.Fatalf("register failed: %v", result.Err)
	}
	if result.Email != "new@example.com" {
		t.Errorf("result email = %q", result.Email)
	}
	if gotPath != "/admin/register" {
		t.Errorf("path = %q", gotPath)
	}

	m, _ = m.Update(result)
	if m.Submitting() {
		t.Error("result should clear submitting")
	}
	if !strings.Contains(m.View(), "created") {
		t.Error("view should confirm creation")
	}
}

func TestConflictSurfacesDuplicate(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = m.Update(ResultMsg{Email: "dup@example.com", Err: &api.Error{Kind: api.KindConflict, Status: 409}})
	if !strings.Contains(m.View(), "already exists") {
		t.Error("conflict should surface the duplicate message")
	}
}

func collectResult(t *testing.T, cmd tea.Cmd) ResultMsg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	var walk func(tea.Cmd) *ResultMsg
	walk = func(c tea.Cmd) *ResultMsg {
		if c == nil {
			return nil
		}
		switch msg := c().(type) {
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
