// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package login implements the operator sign-in screen.
package login

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/backoffice-tui/internal/api"
	"github.com/jeranaias/backoffice-tui/internal/session"
	"github.com/jeranaias/backoffice-tui/internal/ui/components"
	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
	"github.com/jeranaias/backoffice-tui/internal/validate"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ResultMsg carries the outcome of a login attempt. On success the
// token has already been stored.
type ResultMsg struct {
	Err error
}

// SuccessMsg tells the root model to leave the login screen.
type SuccessMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

// Model is the login form: two fields, validation, a submit action,
// and the invalid-credentials modal.
type Model struct {
	theme  *styles.Theme
	client *api.Client
	store  *session.Store

	email    textinput.Model
	password textinput.Model
	focus    int

	errors     validate.Credentials
	submitting bool
	spinner    components.InlineSpinner

	// Invalid-credentials modal
	showModal bool
	modalText string

	width  int
	height int
}

// New creates the login screen.
func New(theme *styles.Theme, client *api.Client, store *session.Store) Model {
	email := textinput.New()
	email.Placeholder = "operator@example.com"
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
		store:    store,
		email:    email,
		password: password,
		spinner:  components.NewInlineSpinner(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears both fields and any errors, for re-entry after logout.
func (m *Model) Reset() {
	m.email.SetValue("")
	m.password.SetValue("")
	m.errors = validate.Credentials{}
	m.showModal = false
	m.submitting = false
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
		// The modal swallows all keys until dismissed.
		if m.showModal {
			if msg.String() == "enter" || msg.String() == "esc" {
				m.showModal = false
			}
			return m, nil
		}

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
			return m, func() tea.Msg { return SuccessMsg{} }
		}
		if api.IsInvalidCredentials(msg.Err) {
			m.showModal = true
			m.modalText = "The email or password is incorrect."
			m.password.SetValue("")
			return m, nil
		}
		// Other failures surface through the form error line.
		m.errors.PasswordError = api.UserMessage(msg.Err)
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
		// Editing a field clears its error.
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
	email, password := m.email.Value(), m.password.Value()
	client, store := m.client, m.store

	return m, tea.Batch(
		m.spinner.Start(),
		func() tea.Msg {
			token, err := client.Login(context.Background(), email, password)
			if err != nil {
				return ResultMsg{Err: err}
			}
			if err := store.SetToken(token); err != nil {
				return ResultMsg{Err: err}
			}
			return ResultMsg{}
		},
	)
}

// Email returns the current email field value.
func (m Model) Email() string {
	return m.email.Value()
}

// Submitting reports whether a login request is in flight.
func (m Model) Submitting() bool {
	return m.submitting
}

// ModalVisible reports whether the invalid-credentials modal is shown.
func (m Model) ModalVisible() bool {
	return m.showModal
}

// Errors exposes the current field errors.
func (m Model) Errors() validate.Credentials {
	return m.errors
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the form, or the invalid-credentials modal on top.
func (m Model) View() string {
	title := m.theme.HeaderTitle.Render("Backoffice Sign In")

	emailLabel := m.theme.FormLabel.Render("Email")
	emailBox := m.inputBox(m.email.View(), m.focus == fieldEmail)
	emailErr := ""
	if m.errors.EmailError != "" {
		emailErr = m.theme.FormError.Render(m.errors.EmailError)
	}

	passLabel := m.theme.FormLabel.Render("Password")
	passBox := m.inputBox(m.password.View(), m.focus == fieldPassword)
	passErr := ""
	if m.errors.PasswordError != "" {
		passErr = m.theme.FormError.Render(m.errors.PasswordError)
	}

	button := m.theme.FormButtonActive.Render("Sign in (enter)")
	if m.submitting {
		button = m.spinner.View() + " " + m.theme.FormHint.Render("Signing in")
	}

	sections := []string{title, "", emailLabel, emailBox}
	if emailErr != "" {
		sections = append(sections, emailErr)
	}
	sections = append(sections, "", passLabel, passBox)
	if passErr != "" {
		sections = append(sections, passErr)
	}
	sections = append(sections, "", button)

	form := m.theme.FormBox.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	if m.showModal {
		modal := m.theme.ModalBox.Render(lipgloss.JoinVertical(lipgloss.Center,
			m.theme.ModalTitle.Render("Invalid credentials"),
			"",
			m.theme.ModalMessage.Render(m.modalText),
			m.theme.FormHint.Render("enter to dismiss"),
		))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
		}
		return modal
	}

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
