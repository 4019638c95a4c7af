// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package register implements the admin-registration screen. Only a
// signed-in operator can reach it; the new account is always an
// administrator.
package register

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/backoffice-tui/internal/api"
	"github.com/jeranaias/backoffice-tui/internal/ui/components"
	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
	"github.com/jeranaias/backoffice-tui/internal/validate"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ResultMsg carries the outcome of a registration attempt. Email is
// the address that was submitted, for audit and toast copy.
type ResultMsg struct {
	Email string
	Err   error
}

// =============================================================================
// MODEL
// =============================================================================

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

// Model is the admin registration form.
type Model struct {
	theme  *styles.Theme
	client *api.Client

	email    textinput.Model
	password textinput.Model
	focus    int

	errors     validate.Credentials
	submitting bool
	spinner    components.InlineSpinner
	lastResult string

	width  int
	height int
}

// New creates the registration screen.
func New(theme *styles.Theme, client *api.Client) Model {
	email := textinput.New()
	email.Placeholder = "new-admin@example.com"
	email.Prompt = ""
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = ""
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return Model{
		theme:    theme,
		client:   client,
		email:    email,
		password: password,
		spinner:  components.NewInlineSpinner(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the form.
func (m *Model) Reset() {
	m.email.SetValue("")
	m.password.SetValue("")
	m.errors = validate.Credentials{}
	m.submitting = false
	m.lastResult = ""
	m.focus = fieldEmail
	m.email.Focus()
	m.password.Blur()
}

// SetSize stores the terminal dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles key and result messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			m.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up")
			return m, nil
		case "enter":
			return m.submit()
		}

	case ResultMsg:
		m.submitting = false
		m.spinner.Stop()
		if msg.Err == nil {
			m.lastResult = styles.RenderSuccess("Administrator " + msg.Email + " created")
			m.email.SetValue("")
			m.password.SetValue("")
			return m, nil
		}
		if api.KindOf(msg.Err) == api.KindConflict {
			m.lastResult = styles.RenderError("An account with that email already exists")
			return m, nil
		}
		m.lastResult = styles.RenderError(api.UserMessage(msg.Err))
		return m, nil
	}

	if m.submitting {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFields(msg)
}

func (m Model) updateFields(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	before := m.email.Value()
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	if m.email.Value() != before {
		m.errors.EmailError = ""
	}

	before = m.password.Value()
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	if m.password.Value() != before {
		m.errors.PasswordError = ""
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) cycleFocus(backward bool) {
	if backward {
		m.focus = (m.focus - 1 + fieldCount) % fieldCount
	} else {
		m.focus = (m.focus + 1) % fieldCount
	}
	if m.focus == fieldEmail {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.password.Focus()
		m.email.Blur()
	}
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	m.errors = validate.ValidateCredentials(m.email.Value(), m.password.Value())
	if !m.errors.OK() {
		return m, nil
	}

	m.submitting = true
	m.lastResult = ""
	email, password := m.email.Value(), m.password.Value()
	client := m.client

	return m, tea.Batch(
		m.spinner.Start(),
		func() tea.Msg {
			err := client.RegisterAdmin(context.Background(), email, password)
			return ResultMsg{Email: email, Err: err}
		},
	)
}

// Submitting reports whether a request is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// Errors exposes the current field errors.
func (m Model) Errors() validate.Credentials {
	return m.errors
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the registration form.
func (m Model) View() string {
	title := m.theme.HeaderTitle.Render("Create Administrator")
	hint := m.theme.FormHint.Render("The new account is created with the admin role.")

	emailLabel := m.theme.FormLabel.Render("Email")
	emailBox := m.inputBox(m.email.View(), m.focus == fieldEmail)
	passLabel := m.theme.FormLabel.Render("Password")
	passBox := m.inputBox(m.password.View(), m.focus == fieldPassword)

	button := m.theme.FormButtonActive.Render("Create (enter)")
	if m.submitting {
		button = m.spinner.View() + " " + m.theme.FormHint.Render("Creating")
	}

	sections := []string{title, hint, "", emailLabel, emailBox}
	if m.errors.EmailError != "" {
		sections = append(sections, m.theme.FormError.Render(m.errors.EmailError))
	}
	sections = append(sections, "", passLabel, passBox)
	if m.errors.PasswordError != "" {
		sections = append(sections, m.theme.FormError.Render(m.errors.PasswordError))
	}
	sections = append(sections, "", button)
	if m.lastResult != "" {
		sections = append(sections, "", m.lastResult)
	}

	form := m.theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
	}
	return form
}

func (m Model) inputBox(inner string, focused bool) string {
	if focused {
		return m.theme.FormInputFocused.Render(inner)
	}
	return m.theme.FormInput.Render(inner)
}
