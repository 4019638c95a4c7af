// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package home renders the landing screen shown after sign-in.
package home

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// overviewMarkdown is the capability summary shown on the landing screen.
const overviewMarkdown = `# Welcome back!

Here is a quick overview of what you can do:

- View and manage your dashboard.
- Manage users and their roles easily.
- Create new admins to help manage the platform.
- Analyze metrics and gain insights.
`

// markdownRenderer renders the overview for terminal display.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		// Fall back to the raw markdown text.
		markdownRenderer = nil
	}
}

func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the landing screen. It is static aside from sizing.
type Model struct {
	theme *styles.Theme

	width  int
	height int
}

// New creates the landing screen.
func New(theme *styles.Theme) Model {
	return Model{theme: theme}
}

// Init is a no-op.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize stores the terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles window sizing. The screen has no other state.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(size.Width, size.Height)
	}
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the markdown overview centered in the content area.
func (m Model) View() string {
	content := strings.TrimRight(renderMarkdown(overviewMarkdown), "\n")

	hint := m.theme.FormHint.Render("Use the sidebar keys to get started.")
	body := lipgloss.JoinVertical(lipgloss.Left, content, "", hint)

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	return body
}
