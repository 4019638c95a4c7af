// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history shows the locally recorded operator actions.
package history

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/backoffice-tui/internal/storage"
	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
)

// recentLimit caps how many entries the screen loads.
const recentLimit = 50

// =============================================================================
// MESSAGES
// =============================================================================

// LoadedMsg carries the entries read from the audit log.
type LoadedMsg struct {
	Entries []storage.Entry
	Err     error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the action-history screen.
type Model struct {
	theme *styles.Theme
	log   *storage.AuditLog

	entries []storage.Entry
	loadErr string
	loaded  bool

	width  int
	height int
}

// New creates the history screen. log may be nil when history is
// disabled by configuration.
func New(theme *styles.Theme, log *storage.AuditLog) Model {
	return Model{theme: theme, log: log}
}

// Init is a no-op. The root model calls Reload when the screen is shown.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize stores the terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Reload reads the latest entries from the audit log.
func (m Model) Reload() tea.Cmd {
	log := m.log
	return func() tea.Msg {
		if log == nil {
			return LoadedMsg{}
		}
		entries, err := log.Recent(recentLimit)
		return LoadedMsg{Entries: entries, Err: err}
	}
}

// Update absorbs loaded entries and the g reload key.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "g" {
			return m, m.Reload()
		}

	case LoadedMsg:
		m.loaded = true
		if msg.Err != nil {
			m.loadErr = msg.Err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.entries = msg.Entries

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the entries newest first.
func (m Model) View() string {
	title := m.theme.HeaderTitle.Render("Action history")

	if m.log == nil {
		hint := m.theme.FormHint.Render("History is disabled in the configuration.")
		return m.theme.Container.Render(title + "\n\n" + hint)
	}
	if m.loadErr != "" {
		return m.theme.Container.Render(title + "\n\n" + styles.RenderError(m.loadErr))
	}
	if m.loaded && len(m.entries) == 0 {
		hint := m.theme.FormHint.Render("No actions recorded yet.")
		return m.theme.Container.Render(title + "\n\n" + hint)
	}

	lines := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		lines = append(lines, m.renderEntry(entry))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.Join(lines, "\n"),
		"",
		m.theme.FormHint.Render("g reload"),
	)
	return m.theme.Container.Render(body)
}

func (m Model) renderEntry(entry storage.Entry) string {
	when := m.theme.HistoryTime.Render(entry.CreatedAt.Format("2006-01-02 15:04:05"))

	outcome := styles.StatusIndicators.Success
	if !entry.Succeeded {
		outcome = styles.StatusIndicators.Error
	}

	text := describe(entry)
	return when + "  " + outcome + " " + m.theme.HistoryEntry.Render(text)
}

// describe turns an entry into one readable line.
func describe(entry storage.Entry) string {
	var b strings.Builder
	switch entry.Action {
	case storage.ActionLogin:
		b.WriteString("Signed in")
	case storage.ActionLogout:
		b.WriteString("Signed out")
	case storage.ActionBlock:
		b.WriteString("Blocked user")
	case storage.ActionUnblock:
		b.WriteString("Unblocked user")
	case storage.ActionRoleChange:
		b.WriteString("Changed role of user")
	case storage.ActionRegister:
		b.WriteString("Registered admin")
	default:
		b.WriteString(string(entry.Action))
	}
	if entry.Subject != "" {
		b.WriteString(" ")
		b.WriteString(entry.Subject)
	}
	if entry.Detail != "" {
		b.WriteString(" (")
		b.WriteString(entry.Detail)
		b.WriteString(")")
	}
	return b.String()
}
