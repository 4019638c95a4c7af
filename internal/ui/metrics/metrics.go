// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics renders the static platform dashboard.
package metrics

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
)

// =============================================================================
// DASHBOARD DATA
// =============================================================================

// Metric is one dashboard card.
type Metric struct {
	Label string
	Value int
}

// Dashboard returns the platform figures shown on the metrics screen.
// The backend exposes no metrics endpoint; these are the fixed values
// the dashboard has always shown.
func Dashboard() []Metric {
	return []Metric{
		{Label: "Registered users", Value: 1287},
		{Label: "Blocked users", Value: 34},
		{Label: "Active admins", Value: 5},
		{Label: "Coffees consumed", Value: 9821},
		{Label: "Support tickets", Value: 412},
		{Label: "Office cats", Value: 17},
	}
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the metrics screen.
type Model struct {
	theme   *styles.Theme
	metrics []Metric

	width  int
	height int
}

// New creates the metrics screen.
func New(theme *styles.Theme) Model {
	return Model{
		theme:   theme,
		metrics: Dashboard(),
	}
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

// Update handles window sizing. The dashboard is static.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(size.Width, size.Height)
	}
	return m, nil
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the metric cards in rows, stacking on narrow terminals.
func (m Model) View() string {
	perRow := 3
	if m.width > 0 && m.width < 72 {
		perRow = 2
	}
	if m.width > 0 && m.width < 48 {
		perRow = 1
	}

	cards := make([]string, len(m.metrics))
	for i, metric := range m.metrics {
		cards[i] = m.renderCard(metric)
	}

	rows := make([]string, 0, (len(cards)+perRow-1)/perRow)
	for i := 0; i < len(cards); i += perRow {
		end := i + perRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}

	title := m.theme.HeaderTitle.Render("Platform metrics")
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		m.renderBlockedRatio(),
	)

	return m.theme.Container.Render(body)
}

func (m Model) renderCard(metric Metric) string {
	value := m.theme.MetricValue.Render(strconv.Itoa(metric.Value))
	label := m.theme.MetricLabel.Render(metric.Label)
	return m.theme.MetricCard.Render(lipgloss.JoinVertical(lipgloss.Center, value, label))
}

// renderBlockedRatio shows blocked users as a share of registrations.
func (m Model) renderBlockedRatio() string {
	var registered, blocked int
	for _, metric := range m.metrics {
		switch metric.Label {
		case "Registered users":
			registered = metric.Value
		case "Blocked users":
			blocked = metric.Value
		}
	}
	if registered == 0 {
		return ""
	}

	percent := float64(blocked) / float64(registered)
	bar := styles.RenderProgressBar(30, percent)
	label := m.theme.MetricLabel.Render("Blocked share")
	return label + " " + bar
}
