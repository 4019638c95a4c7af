// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package roster

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jeranaias/backoffice-tui/internal/api"
)

func makeRecords(n int) []api.UserRecord {
	records := make([]api.UserRecord, n)
	for i := range records {
		records[i] = api.UserRecord{
			ID:    fmt.Sprintf("u%d", i+1),
			Name:  fmt.Sprintf("User %d", i+1),
			Email: fmt.Sprintf("user%d@example.com", i+1),
			Role:  api.RoleStudent,
		}
	}
	return records
}

// =============================================================================
// PAGINATION
// =============================================================================

func TestPagination(t *testing.T) {
	r := New(10)
	r.SetRecords(makeRecords(25))

	if r.TotalPages() != 3 {
		t.Errorf("TotalPages = %d, want 3", r.TotalPages())
	}
	if r.Page() != 1 {
		t.Errorf("Page = %d, want 1", r.Page())
	}

	vis := r.Visible()
	if len(vis) != 10 || vis[0].ID != "u1" || vis[9].ID != "u10" {
		t.Errorf("page 1 window wrong: %d records, first %q", len(vis), vis[0].ID)
	}

	r.NextPage()
	r.NextPage()
	vis = r.Visible()
	if len(vis) != 5 || vis[0].ID != "u21" || vis[4].ID != "u25" {
		t.Errorf("last page window wrong: %d records", len(vis))
	}

	// Clamp at the last page.
	if r.NextPage() {
		t.Error("NextPage past the end should report no change")
	}
	if r.Page() != 3 {
		t.Errorf("Page = %d after clamped advance, want 3", r.Page())
	}
}

func TestPaginationClampsAtFirstPage(t *testing.T) {
	r := New(10)
	r.SetRecords(makeRecords(15))

	if r.PrevPage() {
		t.Error("PrevPage on page 1 should report no change")
	}
	r.SetPage(99)
	if r.Page() != 2 {
		t.Errorf("SetPage(99) = page %d, want clamp to 2", r.Page())
	}
	r.SetPage(0)
	if r.Page() != 1 {
		t.Errorf("SetPage(0) = page %d, want clamp to 1", r.Page())
	}
}

func TestEmptyRosterHasOnePage(t *testing.T) {
	r := New(10)
	if r.TotalPages() != 1 {
		t.Errorf("TotalPages = %d, want 1", r.TotalPages())
	}
	if vis := r.Visible(); vis != nil {
		t.Errorf("Visible = %v, want nil", vis)
	}
}

func TestExactPageBoundary(t *testing.T) {
	r := New(10)
	r.SetRecords(makeRecords(20))
	if r.TotalPages() != 2 {
		t.Errorf("TotalPages = %d, want 2", r.TotalPages())
	}
}

func TestReloadResetsToFirstPage(t *testing.T) {
	r := New(10)
	r.SetRecords(makeRecords(25))
	r.SetPage(3)

	r.SetRecords(makeRecords(12))
	if r.Page() != 1 {
		t.Errorf("Page = %d after reload, want 1", r.Page())
	}
}

// =============================================================================
// BLOCK TOGGLE
// =============================================================================

func TestToggleBlockConfirmsOnSuccess(t *testing.T) {
	r := New(10)
	r.SetRecords(makeRecords(3))

	target, err := r.BeginToggleBlock("u2")
	if err != nil {
		t.Fatalf("BeginToggleBlock failed: %v", err)
	}
	if !target {
		t.Error("unlocked row should target locked")
	}
	if !r.Pending("u2") {
		t.Error("row should be pending while in flight")
	}
	// The record must not change before the server confirms.
	if rec, _ := r.Find("u2"); rec.Locked {
		t.Error("record flipped before confirmation")
	}

	r.ApplyBlockResult(BlockResultMsg{ID: "u2", Locked: true})
	if r.Pending("u2") {
		t.Error("pending marker should clear on result")
	}
	if rec, _ := r.Find("u2"); !rec.Locked {
		t.Error("record should be locked after confirmed toggle")
	}
}

func TestToggleBlockKeepsStateOnFailure(t *testing.T) {
	r := New(10)
	r.SetRecords(makeRecords(1))

	if _, err := r.BeginToggleBlock("u1"); err != nil {
		t.Fatal(err)
	}
	r.ApplyBlockResult(BlockResultMsg{ID: "u1", Locked: true, Err: errors.New("boom")})

	if r.Pending("u1") {
		t.Error("pending marker should clear on failure")
	}
	if rec, _ := r.Find("u1"); rec.Locked {
		t.Error("failed toggle must not change the record")
	}
}

func TestToggleBlockRejectsConcurrentRow(t *testing.T) {
	r := New(10)
	r.SetRecords(makeRecords(2))

	if _, err := r.BeginToggleBlock("u1"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.BeginToggleBlock("u1"); !errors.Is(err, ErrRowBusy) {
		t.Errorf("second toggle on same row = %v, want ErrRowBusy", err)
	}
	// A different row is fine.
	if _, err := r.BeginToggleBlock("u2"); err != nil {
		t.Errorf("toggle on other row failed: %v", err)
	}
}

func TestToggleBlockUnknownUser(t *testing.T) {
	r := New(10)
	if _, err := r.BeginToggleBlock("nope"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("err = %v, want ErrUnknownUser", err)
	}
}

// =============================================================================
// ROLE TOGGLE
// =============================================================================

func TestToggleRoleStudentTeacher(t *testing.T) {
	r := New(10)
	records := makeRecords(2)
	records[1].Role = api.RoleTeacher
	r.SetRecords(records)

	target, err := r.BeginToggleRole("u1")
	if err != nil {
		t.Fatal(err)
	}
	if target != api.RoleTeacher {
		t.Errorf("student toggles to %q, want teacher", target)
	}

	r.ApplyRoleResult(RoleResultMsg{ID: "u1", Role: api.RoleTeacher})
	if rec, _ := r.Find("u1"); rec.Role != api.RoleTeacher {
		t.Errorf("role = %q after confirmation, want teacher", rec.Role)
	}

	target, err = r.BeginToggleRole("u2")
	if err != nil {
		t.Fatal(err)
	}
	if target != api.RoleStudent {
		t.Errorf("teacher toggles to %q, want student", target)
	}
}

func TestToggleRoleRejectsAdminLocally(t *testing.T) {
	r := New(10)
	records := makeRecords(1)
	records[0].Role = api.RoleAdmin
	r.SetRecords(records)

	_, err := r.BeginToggleRole("u1")
	if !errors.Is(err, ErrRoleNotAllowed) {
		t.Errorf("err = %v, want ErrRoleNotAllowed", err)
	}
	if r.Pending("u1") {
		t.Error("rejected role change must not mark the row pending")
	}
}

func TestToggleRoleKeepsStateOnFailure(t *testing.T) {
	r := New(10)
	r.SetRecords(makeRecords(1))

	if _, err := r.BeginToggleRole("u1"); err != nil {
		t.Fatal(err)
	}
	r.ApplyRoleResult(RoleResultMsg{ID: "u1", Role: api.RoleTeacher, Err: errors.New("boom")})

	if rec, _ := r.Find("u1"); rec.Role != api.RoleStudent {
		t.Errorf("failed role change must not change the record, got %q", rec.Role)
	}
}
