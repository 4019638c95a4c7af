// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package users implements the user roster screen: the paginated
// table, block and role actions, and the expired-session redirect.
package users

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/backoffice-tui/internal/api"
	"github.com/jeranaias/backoffice-tui/internal/roster"
	"github.com/jeranaias/backoffice-tui/internal/session"
	"github.com/jeranaias/backoffice-tui/internal/ui/components"
	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// SessionExpiredMsg tells the root model the redirect countdown has
// finished and the app should return to the login screen.
type SessionExpiredMsg struct{}

// ActionRejectedMsg surfaces a locally rejected action (busy row,
// role not allowed) so the root model can toast it.
type ActionRejectedMsg struct {
	Reason string
}

type redirectTickMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the roster screen.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	roster *roster.Roster
	table  *components.UserTable
	pager  paginator.Model

	cursor  int
	loading bool
	fetch   components.Spinner
	row     components.InlineSpinner
	loadErr string

	// Expired-session countdown
	redirectDelay int
	redirectSecs  int
	redirecting   bool

	width  int
	height int
}

// New creates the roster screen. pageSize is the rows per page,
// redirectDelaySecs the countdown before an expired session returns
// to login.
func New(theme *styles.Theme, client *api.Client, pageSize, redirectDelaySecs int) Model {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = pageSize

	return Model{
		theme:         theme,
		client:        client,
		roster:        roster.New(pageSize),
		table:         components.NewUserTable(theme),
		pager:         p,
		fetch:         components.NewFetchSpinner(),
		row:           components.NewInlineSpinner(),
		redirectDelay: redirectDelaySecs,
	}
}

// Init implements tea.Model. The root model triggers the first load
// through Reload when the screen becomes visible.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize stores the terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width - 4)
}

// Roster exposes the list state for the status bar.
func (m Model) Roster() *roster.Roster {
	return m.roster
}

// Loading reports whether a fetch is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// Redirecting reports whether the expired-session countdown is live.
func (m Model) Redirecting() bool {
	return m.redirecting
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles keys, fetch results, and mutation results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.redirecting {
			return m, nil
		}
		return m.handleKey(msg)

	case roster.UsersLoadedMsg:
		m.loading = false
		m.fetch.Stop()
		if msg.Err != nil {
			m.loadErr = api.UserMessage(msg.Err)
			if api.IsSessionExpired(msg.Err) || api.IsUnauthorized(msg.Err) {
				return m, m.beginRedirect()
			}
			return m, nil
		}
		m.loadErr = ""
		m.redirecting = false
		m.roster.SetRecords(msg.Records)
		m.cursor = 0
		m.syncPager()
		return m, nil

	case roster.BlockResultMsg:
		m.roster.ApplyBlockResult(msg)
		if msg.Err != nil && (api.IsSessionExpired(msg.Err) || api.IsUnauthorized(msg.Err)) {
			return m, m.beginRedirect()
		}
		if !m.anyPending() {
			m.row.Stop()
		}
		return m, nil

	case roster.RoleResultMsg:
		m.roster.ApplyRoleResult(msg)
		if msg.Err != nil && (api.IsSessionExpired(msg.Err) || api.IsUnauthorized(msg.Err)) {
			return m, m.beginRedirect()
		}
		if !m.anyPending() {
			m.row.Stop()
		}
		return m, nil

	case session.ChangedMsg:
		// The token vanished while this screen is showing (rejected
		// request, or an external logout noticed by the watcher). The
		// countdown owns the transition back to login.
		if !msg.HasToken {
			return m, m.beginRedirect()
		}
		return m, nil

	case redirectTickMsg:
		if !m.redirecting {
			return m, nil
		}
		m.redirectSecs--
		if m.redirectSecs <= 0 {
			m.redirecting = false
			return m, func() tea.Msg { return SessionExpiredMsg{} }
		}
		return m, redirectTick()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.fetch, cmd = m.fetch.Update(msg)
	cmds = append(cmds, cmd)
	m.row, cmd = m.row.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.roster.Visible())-1 {
			m.cursor++
		}
		return m, nil

	case "n", "right":
		if m.roster.NextPage() {
			m.cursor = 0
			m.syncPager()
		}
		return m, nil

	case "p", "left":
		if m.roster.PrevPage() {
			m.cursor = 0
			m.syncPager()
		}
		return m, nil

	case "g":
		return m, m.Reload()

	case "b":
		return m.toggleBlock()

	case "r":
		return m.toggleRole()
	}
	return m, nil
}

func (m Model) toggleBlock() (Model, tea.Cmd) {
	rec, ok := m.selected()
	if !ok {
		return m, nil
	}
	target, err := m.roster.BeginToggleBlock(rec.ID)
	if err != nil {
		return m, rejected(err)
	}
	return m, tea.Batch(
		m.row.Start(),
		roster.SetBlocked(m.client, rec.ID, target),
	)
}

func (m Model) toggleRole() (Model, tea.Cmd) {
	rec, ok := m.selected()
	if !ok {
		return m, nil
	}
	target, err := m.roster.BeginToggleRole(rec.ID)
	if err != nil {
		return m, rejected(err)
	}
	return m, tea.Batch(
		m.row.Start(),
		roster.SetRole(m.client, rec.ID, target),
	)
}

// Reload restarts the fetch. Used on the g key and by the root model
// when the screen becomes visible. A countdown left over from a past
// session must not outlive it, so the redirect state is cleared here:
// its ticks stop arriving once the root switches screens.
func (m *Model) Reload() tea.Cmd {
	m.redirecting = false
	m.redirectSecs = 0
	if m.loading {
		return nil
	}
	m.loading = true
	return tea.Batch(
		m.fetch.Start(),
		roster.LoadUsers(m.client),
	)
}

func (m *Model) beginRedirect() tea.Cmd {
	if m.redirecting {
		return nil
	}
	m.redirecting = true
	m.redirectSecs = m.redirectDelay
	return redirectTick()
}

func redirectTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return redirectTickMsg{}
	})
}

func rejected(err error) tea.Cmd {
	return func() tea.Msg {
		return ActionRejectedMsg{Reason: err.Error()}
	}
}

func (m Model) selected() (api.UserRecord, bool) {
	visible := m.roster.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return api.UserRecord{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) syncPager() {
	m.pager.SetTotalPages(m.roster.Len())
	m.pager.Page = m.roster.Page() - 1
}

func (m Model) anyPending() bool {
	for _, rec := range m.roster.Records() {
		if m.roster.Pending(rec.ID) {
			return true
		}
	}
	return false
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the table, footer, and any overlay state.
func (m Model) View() string {
	if m.redirecting {
		box := m.theme.ModalBox.Render(lipgloss.JoinVertical(lipgloss.Center,
			m.theme.ModalTitle.Render("Session expired"),
			"",
			m.theme.ModalMessage.Render("Returning to sign in ("+strconv.Itoa(m.redirectSecs)+")"),
		))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}

	if m.loading {
		return m.theme.Container.Render(m.fetch.View())
	}

	if m.loadErr != "" {
		retry := m.theme.FormHint.Render("g to retry")
		return m.theme.Container.Render(styles.RenderError(m.loadErr) + "\n" + retry)
	}

	if m.roster.Len() == 0 {
		return m.theme.Container.Render(m.theme.FormHint.Render("No users found. g to reload."))
	}

	table := m.table.Render(m.roster.Visible(), m.cursor, m.roster.Pending, m.row.View())

	footer := m.theme.TableFooter.Render(
		"page " + m.pager.View() + "  (" + strconv.Itoa(m.roster.Len()) + " users)",
	)
	keys := m.theme.ShortcutDesc.Render("b block  r role  g reload  n/p page")

	return m.theme.Container.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Table.Render(table),
		footer,
		keys,
	))
}
