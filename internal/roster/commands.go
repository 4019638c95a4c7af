// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package roster

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/backoffice-tui/internal/api"
)

// =============================================================================
// MESSAGES
// =============================================================================

// UsersLoadedMsg carries the result of a roster fetch.
type UsersLoadedMsg struct {
	Records []api.UserRecord
	Err     error
}

// BlockResultMsg carries the result of a block toggle for one row.
// Locked is the state the server confirmed.
type BlockResultMsg struct {
	ID     string
	Locked bool
	Err    error
}

// RoleResultMsg carries the result of a role change for one row.
// Role is the role the server confirmed.
type RoleResultMsg struct {
	ID   string
	Role api.Role
	Err  error
}

// =============================================================================
// COMMANDS
// =============================================================================

// LoadUsers fetches the full user list.
func LoadUsers(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		records, err := client.ListUsers(context.Background())
		return UsersLoadedMsg{Records: records, Err: err}
	}
}

// SetBlocked requests the given lock state for one user.
func SetBlocked(client *api.Client, id string, locked bool) tea.Cmd {
	return func() tea.Msg {
		err := client.SetBlocked(context.Background(), id, locked)
		return BlockResultMsg{ID: id, Locked: locked, Err: err}
	}
}

// SetRole requests the given role for one user.
func SetRole(client *api.Client, id string, role api.Role) tea.Cmd {
	return func() tea.Msg {
		err := client.ChangeRole(context.Background(), id, role)
		return RoleResultMsg{ID: id, Role: role, Err: err}
	}
}
