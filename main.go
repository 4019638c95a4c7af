// backoffice TUI - A terminal admin panel for the user-management platform.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/backoffice-tui/internal/api"
	"github.com/jeranaias/backoffice-tui/internal/config"
	"github.com/jeranaias/backoffice-tui/internal/roster"
	"github.com/jeranaias/backoffice-tui/internal/session"
	"github.com/jeranaias/backoffice-tui/internal/storage"
	"github.com/jeranaias/backoffice-tui/internal/ui/components"
	"github.com/jeranaias/backoffice-tui/internal/ui/history"
	"github.com/jeranaias/backoffice-tui/internal/ui/home"
	"github.com/jeranaias/backoffice-tui/internal/ui/login"
	"github.com/jeranaias/backoffice-tui/internal/ui/metrics"
	"github.com/jeranaias/backoffice-tui/internal/ui/register"
	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
	"github.com/jeranaias/backoffice-tui/internal/ui/users"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	// The TUI owns the terminal; a pipe or redirect gets a plain error.
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: backoffice requires an interactive terminal")
		os.Exit(1)
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())

	cfg := config.Global()

	tokenPath, err := cfg.TokenPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not resolve state directory: %v\n", err)
		os.Exit(1)
	}
	store, err := session.NewStore(tokenPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not open session store: %v\n", err)
		os.Exit(1)
	}

	client := api.NewClient(&api.ClientConfig{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.Timeout(),
	}, store)

	// Local action history is optional.
	var audit *storage.AuditLog
	if cfg.History.Enabled {
		historyPath, err := cfg.HistoryPath()
		if err == nil {
			audit, err = storage.OpenAuditLog(historyPath, cfg.History.MaxEntries)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: action history unavailable: %v\n", err)
			audit = nil
		}
	}
	defer func() {
		if audit != nil {
			audit.Close()
		}
	}()

	theme := styles.NewTheme()
	m := NewModel(theme, cfg, store, client, audit)

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Token changes, including external edits to the token file, arrive
	// in the update loop as session.ChangedMsg.
	session.Forward(store, p.Send)
	watcher, err := session.NewWatcher(store)
	if err == nil {
		if err := watcher.Start(); err == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running backoffice: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// State represents the screen currently shown.
type State int

const (
	StateLogin State = iota
	StateHome
	StateUsers
	StateRegister
	StateMetrics
	StateHistory
)

// navItem is one sidebar entry.
type navItem struct {
	key   string
	label string
	state State
}

// navItems is the sidebar, in display order. History is dropped at
// render time when the audit log is disabled.
var navItems = []navItem{
	{"1", "Home", StateHome},
	{"2", "Users", StateUsers},
	{"3", "Create Admin", StateRegister},
	{"4", "Metrics", StateMetrics},
	{"5", "History", StateHistory},
}

const sidebarWidth = 20

// Model is the root Bubble Tea model for the application.
type Model struct {
	// State
	state State

	// Theme and styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Shared clients
	config *config.Config
	store  *session.Store
	client *api.Client
	audit  *storage.AuditLog

	// Screens
	loginScreen    login.Model
	homeScreen     home.Model
	usersScreen    users.Model
	registerScreen register.Model
	metricsScreen  metrics.Model
	historyScreen  history.Model

	// Chrome
	statusBar *components.StatusBar
	toasts    *components.ToastManager

	// Operator identity for history entries, set on successful login
	operator string
}

// NewModel creates the root application model.
func NewModel(theme *styles.Theme, cfg *config.Config, store *session.Store, client *api.Client, audit *storage.AuditLog) *Model {
	state := StateLogin
	if _, ok := store.Token(); ok {
		// A persisted session skips the login form until the API says
		// otherwise.
		state = StateHome
	}

	statusBar := components.NewStatusBar(theme)
	statusBar.SetSession(state != StateLogin)
	statusBar.SetStatus(components.StatusReady)
	if u, err := url.Parse(cfg.API.BaseURL); err == nil {
		statusBar.APIHost = u.Host
	}

	return &Model{
		state:          state,
		theme:          theme,
		config:         cfg,
		store:          store,
		client:         client,
		audit:          audit,
		loginScreen:    login.New(theme, client, store),
		homeScreen:     home.New(theme),
		usersScreen:    users.New(theme, client, cfg.UI.PageSize, cfg.UI.RedirectDelaySecs),
		registerScreen: register.New(theme, client),
		metricsScreen:  metrics.New(theme),
		historyScreen:  history.New(theme, audit),
		statusBar:      statusBar,
		toasts:         components.NewToastManager(),
	}
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loginScreen.Init()}
	if m.state == StateHome {
		// Warm the roster behind the landing screen.
		cmds = append(cmds, m.usersScreen.Reload())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.statusBar.SetWidth(msg.Width)

		contentWidth, contentHeight := m.contentArea()
		m.loginScreen.SetSize(msg.Width, msg.Height)
		m.homeScreen.SetSize(contentWidth, contentHeight)
		m.usersScreen.SetSize(contentWidth, contentHeight)
		m.registerScreen.SetSize(contentWidth, contentHeight)
		m.metricsScreen.SetSize(contentWidth, contentHeight)
		m.historyScreen.SetSize(contentWidth, contentHeight)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case login.SuccessMsg:
		m.operator = m.loginScreen.Email()
		m.record(storage.ActionLogin, m.operator, "", true)
		m.statusBar.SetSession(true)
		m.loginScreen.Reset()
		m.state = StateHome
		m.toasts.AddSuccess("Signed in")
		return m, components.ToastTickCmd()

	case register.ResultMsg:
		if msg.Err == nil {
			m.record(storage.ActionRegister, msg.Email, "", true)
		} else {
			m.record(storage.ActionRegister, msg.Email, api.UserMessage(msg.Err), false)
		}
		var cmd tea.Cmd
		m.registerScreen, cmd = m.registerScreen.Update(msg)
		return m, cmd

	case roster.UsersLoadedMsg:
		var cmd tea.Cmd
		m.usersScreen, cmd = m.usersScreen.Update(msg)
		m.syncRosterStatus()
		return m, cmd

	case roster.BlockResultMsg:
		action := storage.ActionBlock
		if !msg.Locked {
			action = storage.ActionUnblock
		}
		m.record(action, msg.ID, "", msg.Err == nil)

		var cmds []tea.Cmd
		if msg.Err != nil {
			m.toasts.AddError(api.UserMessage(msg.Err))
			cmds = append(cmds, components.ToastTickCmd())
		}
		var cmd tea.Cmd
		m.usersScreen, cmd = m.usersScreen.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case roster.RoleResultMsg:
		m.record(storage.ActionRoleChange, msg.ID, "to "+string(msg.Role), msg.Err == nil)

		var cmds []tea.Cmd
		if msg.Err != nil {
			m.toasts.AddError(api.UserMessage(msg.Err))
			cmds = append(cmds, components.ToastTickCmd())
		}
		var cmd tea.Cmd
		m.usersScreen, cmd = m.usersScreen.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case users.ActionRejectedMsg:
		m.toasts.AddWarning(msg.Reason)
		return m, components.ToastTickCmd()

	case users.SessionExpiredMsg:
		return m, m.signOut(false)

	case session.ChangedMsg:
		m.statusBar.SetSession(msg.HasToken)
		if !msg.HasToken {
			// The users screen owns the expiry transition while it is
			// showing: it runs the short countdown and reports back
			// with SessionExpiredMsg. Everywhere else the sign-out is
			// immediate.
			if m.state == StateUsers {
				var cmd tea.Cmd
				m.usersScreen, cmd = m.usersScreen.Update(msg)
				return m, cmd
			}
			if m.state != StateLogin {
				return m, m.signOut(false)
			}
		}
		return m, nil

	case history.LoadedMsg:
		var cmd tea.Cmd
		m.historyScreen, cmd = m.historyScreen.Update(msg)
		return m, cmd

	case components.ToastTickMsg:
		m.toasts.TickToasts()
		if m.toasts.HasToasts() {
			return m, components.ToastTickCmd()
		}
		return m, nil
	}

	// Everything else (spinner frames, countdown ticks, input blinks)
	// belongs to the screen that is showing.
	return m.updateActiveScreen(msg)
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		if m.state != StateLogin {
			return m, m.signOut(true)
		}
	}

	// Login and the admin form own the keyboard: runes are field input
	// there, never navigation.
	if m.state == StateLogin || m.state == StateRegister {
		if m.state == StateRegister && msg.String() == "esc" {
			m.registerScreen.Reset()
			m.state = StateHome
			return m, nil
		}
		return m.updateActiveScreen(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.state = StateHome
		return m, nil
	}

	for _, item := range navItems {
		if msg.String() == item.key {
			return m, m.navigate(item.state)
		}
	}

	return m.updateActiveScreen(msg)
}

// navigate switches screens and kicks off whatever the target needs.
func (m *Model) navigate(target State) tea.Cmd {
	if target == StateHistory && m.audit == nil {
		m.toasts.AddWarning("History is disabled in the configuration")
		return components.ToastTickCmd()
	}
	if m.state == target {
		return nil
	}
	m.state = target

	switch target {
	case StateUsers:
		m.statusBar.SetStatus(components.StatusLoading)
		return m.usersScreen.Reload()
	case StateRegister:
		m.registerScreen.Reset()
	case StateHistory:
		return m.historyScreen.Reload()
	}
	return nil
}

// signOut clears the token and returns to the login form. deliberate
// distinguishes the operator's own logout from an expired session.
func (m *Model) signOut(deliberate bool) tea.Cmd {
	m.store.ClearToken()
	if deliberate {
		m.record(storage.ActionLogout, m.operator, "", true)
	}
	m.operator = ""
	m.statusBar.SetSession(false)
	m.loginScreen.Reset()
	m.state = StateLogin

	if deliberate {
		m.toasts.AddStatus("Signed out")
	} else {
		m.toasts.AddWarning("Session expired, please sign in again")
	}
	return components.ToastTickCmd()
}

// updateActiveScreen forwards a message to the screen being shown.
func (m *Model) updateActiveScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case StateLogin:
		m.loginScreen, cmd = m.loginScreen.Update(msg)
	case StateHome:
		m.homeScreen, cmd = m.homeScreen.Update(msg)
	case StateUsers:
		m.usersScreen, cmd = m.usersScreen.Update(msg)
		m.syncRosterStatus()
	case StateRegister:
		m.registerScreen, cmd = m.registerScreen.Update(msg)
	case StateMetrics:
		m.metricsScreen, cmd = m.metricsScreen.Update(msg)
	case StateHistory:
		m.historyScreen, cmd = m.historyScreen.Update(msg)
	}
	return m, cmd
}

// syncRosterStatus mirrors the roster state into the status bar.
func (m *Model) syncRosterStatus() {
	r := m.usersScreen.Roster()
	m.statusBar.SetRosterInfo(r.Len(), r.Page(), r.TotalPages())
	if m.usersScreen.Loading() {
		m.statusBar.SetStatus(components.StatusLoading)
	} else {
		m.statusBar.SetStatus(components.StatusReady)
	}
}

// record writes one entry to the local action history, when enabled.
func (m *Model) record(action storage.Action, subject, detail string, succeeded bool) {
	if m.audit == nil {
		return
	}
	if err := m.audit.Record(action, subject, detail, succeeded); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record action: %v\n", err)
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the current state.
func (m *Model) View() string {
	if m.state == StateLogin {
		return m.withToasts(m.loginScreen.View())
	}

	var content string
	switch m.state {
	case StateHome:
		content = m.homeScreen.View()
	case StateUsers:
		content = m.usersScreen.View()
	case StateRegister:
		content = m.registerScreen.View()
	case StateMetrics:
		content = m.metricsScreen.View()
	case StateHistory:
		content = m.historyScreen.View()
	}

	_, contentHeight := m.contentArea()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderSidebar(contentHeight),
		content,
	)
	if contentHeight > 0 {
		body = lipgloss.NewStyle().Height(contentHeight).MaxHeight(contentHeight).Render(body)
	}

	return m.withToasts(lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar.View()))
}

// renderSidebar renders the navigation column.
func (m *Model) renderSidebar(height int) string {
	var b strings.Builder
	b.WriteString(m.theme.HeaderBrand.Render("Admin Panel"))
	b.WriteString("\n\n")

	for _, item := range navItems {
		style := m.theme.SidebarItem
		if item.state == m.state {
			style = m.theme.SidebarSelected
		}
		if item.state == StateHistory && m.audit == nil {
			style = m.theme.SidebarDisabled
		}
		b.WriteString(style.Render(item.key + " " + item.label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.SidebarItem.Render("^L Logout"))
	b.WriteString("\n")
	b.WriteString(m.theme.SidebarItem.Render("q  Quit"))

	style := m.theme.Sidebar.Width(sidebarWidth)
	if height > 0 {
		style = style.Height(height)
	}
	return style.Render(b.String())
}

// withToasts appends the active toast stack under the given view.
func (m *Model) withToasts(view string) string {
	if !m.toasts.HasToasts() {
		return view
	}

	toasts := m.toasts.GetToasts()
	lines := make([]string, len(toasts))
	for i, toast := range toasts {
		rendered := components.RenderToast(toast, m.width)
		if m.width > 0 {
			rendered = lipgloss.PlaceHorizontal(m.width, lipgloss.Right, rendered)
		}
		lines[i] = rendered
	}
	return lipgloss.JoinVertical(lipgloss.Left, view, strings.Join(lines, "\n"))
}

// contentArea is the size available to a screen beside the sidebar and
// above the status bar.
func (m *Model) contentArea() (width, height int) {
	width = m.width - sidebarWidth
	if width < 0 {
		width = 0
	}
	height = m.height - 1
	if height < 0 {
		height = 0
	}
	return width, height
}
