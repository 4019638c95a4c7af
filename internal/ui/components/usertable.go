// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/backoffice-tui/internal/api"
	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
	"github.com/jeranaias/backoffice-tui/internal/util"
)

// =============================================================================
// USER TABLE
// =============================================================================

// UserTable renders one page of the roster as a fixed-column table.
// Selection and pending state are owned by the caller; the table is a
// pure renderer.
type UserTable struct {
	theme *styles.Theme
	width int

	nameWidth  int
	emailWidth int
	roleWidth  int
	stateWidth int
}

// NewUserTable creates a table renderer for the given theme.
func NewUserTable(theme *styles.Theme) *UserTable {
	return &UserTable{
		theme:      theme,
		width:      80,
		nameWidth:  24,
		emailWidth: 30,
		roleWidth:  9,
		stateWidth: 9,
	}
}

// SetWidth adjusts column widths to the available terminal width.
func (t *UserTable) SetWidth(width int) {
	t.width = width
	// Fixed role/state columns; name and email share the rest.
	flexible := width - t.roleWidth - t.stateWidth - 12
	if flexible < 20 {
		flexible = 20
	}
	t.nameWidth = flexible * 2 / 5
	t.emailWidth = flexible - t.nameWidth
}

// Header renders the column header row.
func (t *UserTable) Header() string {
	cells := []string{
		util.PadWidth("Name", t.nameWidth),
		util.PadWidth("Email", t.emailWidth),
		util.PadWidth("Role", t.roleWidth),
		util.PadWidth("State", t.stateWidth),
	}
	return t.theme.TableHeader.Render(strings.Join(cells, "  "))
}

// Row renders one user row. selected highlights the cursor row,
// pending shows the in-flight marker instead of the state badge.
func (t *UserTable) Row(rec api.UserRecord, selected, pending bool, spinnerFrame string) string {
	name := strings.TrimSpace(rec.Name + " " + rec.Surname)

	state := t.renderState(rec, pending, spinnerFrame)
	role := t.renderRole(rec.Role)

	cells := []string{
		util.PadWidth(util.TruncateWidth(name, t.nameWidth), t.nameWidth),
		util.PadWidth(util.TruncateWidth(rec.Email, t.emailWidth), t.emailWidth),
		role,
		state,
	}
	line := strings.Join(cells, "  ")

	switch {
	case selected:
		return t.theme.TableRowSelected.Render(line)
	case pending:
		return t.theme.TableRowPending.Render(line)
	default:
		return t.theme.TableRow.Render(line)
	}
}

// Render draws the header plus one row per record.
func (t *UserTable) Render(records []api.UserRecord, cursor int, pending func(string) bool, spinnerFrame string) string {
	var b strings.Builder
	b.WriteString(t.Header())
	b.WriteString("\n")
	for i, rec := range records {
		b.WriteString(t.Row(rec, i == cursor, pending(rec.ID), spinnerFrame))
		if i < len(records)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (t *UserTable) renderRole(role api.Role) string {
	label := util.PadWidth(string(role.Normalize()), t.roleWidth)
	switch role.Normalize() {
	case api.RoleStudent:
		return t.theme.RoleStudent.Render(label)
	case api.RoleTeacher:
		return t.theme.RoleTeacher.Render(label)
	case api.RoleAdmin:
		return t.theme.RoleAdmin.Render(label)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted).Render(label)
	}
}

func (t *UserTable) renderState(rec api.UserRecord, pending bool, spinnerFrame string) string {
	if pending {
		return t.theme.TableRowPending.Render(util.PadWidth(spinnerFrame, t.stateWidth))
	}
	if rec.Locked {
		return t.theme.AccountBlocked.Render(util.PadWidth("Blocked", t.stateWidth))
	}
	return t.theme.AccountActive.Render(util.PadWidth("Active", t.stateWidth))
}
