// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/backoffice-tui/internal/api"
	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
)

func testRecords() []api.UserRecord {
	return []api.UserRecord{
		{ID: "1", Name: "Juan", Surname: "Perez", Email: "juan@example.com", Role: api.RoleStudent},
		{ID: "2", Name: "Ana", Surname: "Gomez", Email: "ana@example.com", Role: api.RoleTeacher, Locked: true},
	}
}

func TestUserTableHeader(t *testing.T) {
	table := NewUserTable(styles.NewTheme())
	header := table.Header()
	for _, col := range []string{"Name", "Email", "Role", "State"} {
		if !strings.Contains(header, col) {
			t.Errorf("header missing column %q", col)
		}
	}
}

func TestUserTableRowContents(t *testing.T) {
	table := NewUserTable(styles.NewTheme())
	recs := testRecords()

	active := table.Row(recs[0], false, false, "")
	if !strings.Contains(active, "Juan Perez") || !strings.Contains(active, "Active") {
		t.Errorf("active row wrong: %q", active)
	}

	blocked := table.Row(recs[1], false, false, "")
	if !strings.Contains(blocked, "Blocked") {
		t.Errorf("blocked row missing state: %q", blocked)
	}
}

func TestUserTablePendingRowShowsSpinner(t *testing.T) {
	table := NewUserTable(styles.NewTheme())
	row := table.Row(testRecords()[0], false, true, "|")
	if !strings.Contains(row, "|") {
		t.Errorf("pending row missing spinner frame: %q", row)
	}
	if strings.Contains(row, "Active") {
		t.Errorf("pending row should hide the state badge: %q", row)
	}
}

func TestUserTableRender(t *testing.T) {
	table := NewUserTable(styles.NewTheme())
	out := table.Render(testRecords(), 0, func(string) bool { return false }, "")

	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Errorf("got %d lines, want header plus 2 rows", len(lines))
	}
	if !strings.Contains(out, "ana@example.com") {
		t.Error("render missing second record")
	}
}

func TestUserTableTruncatesLongNames(t *testing.T) {
	table := NewUserTable(styles.NewTheme())
	table.SetWidth(50)

	rec := api.UserRecord{
		ID: "1", Name: strings.Repeat("N", 80), Email: "x@example.com", Role: api.RoleStudent,
	}
	row := table.Row(rec, false, false, "")
	if strings.Contains(row, strings.Repeat("N", 80)) {
		t.Error("long name should be truncated")
	}
}
