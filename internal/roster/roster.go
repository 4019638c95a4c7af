// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package roster

import (
	"errors"
	"fmt"

	"github.com/jeranaias/backoffice-tui/internal/api"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrRowBusy is returned when a mutation is requested for a row
	// that already has one in flight.
	ErrRowBusy = errors.New("an action for this user is already in progress")

	// ErrRoleNotAllowed is returned when a role change is requested
	// for a user whose role does not participate in the toggle.
	ErrRoleNotAllowed = errors.New("this user's role cannot be changed")

	// ErrUnknownUser is returned when the requested row is not in the
	// current roster.
	ErrUnknownUser = errors.New("user not found in roster")
)

// =============================================================================
// ROSTER
// =============================================================================

// Roster is the paginated view over the fetched user records. Pages
// are 1-indexed. It is not safe for concurrent use; all access happens
// on the bubbletea update loop.
type Roster struct {
	records  []api.UserRecord
	page     int
	pageSize int
	pending  map[string]bool
}

// New creates an empty roster with the given page size.
func New(pageSize int) *Roster {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Roster{
		page:     1,
		pageSize: pageSize,
		pending:  make(map[string]bool),
	}
}

// SetRecords replaces the full record set and resets to the first
// page. In-flight markers are dropped; results for rows that survive
// the reload still apply by ID.
func (r *Roster) SetRecords(records []api.UserRecord) {
	r.records = records
	r.page = 1
	r.pending = make(map[string]bool)
}

// Records returns the full record set.
func (r *Roster) Records() []api.UserRecord {
	return r.records
}

// Len returns the total number of records.
func (r *Roster) Len() int {
	return len(r.records)
}

// Page returns the current 1-indexed page.
func (r *Roster) Page() int {
	return r.page
}

// TotalPages returns the page count. An empty roster still has one
// page so the "page 1 / 1" footer never divides by zero.
func (r *Roster) TotalPages() int {
	if len(r.records) == 0 {
		return 1
	}
	return (len(r.records) + r.pageSize - 1) / r.pageSize
}

// Visible returns the slice of records on the current page.
func (r *Roster) Visible() []api.UserRecord {
	start := (r.page - 1) * r.pageSize
	if start >= len(r.records) {
		return nil
	}
	end := start + r.pageSize
	if end > len(r.records) {
		end = len(r.records)
	}
	return r.records[start:end]
}

// NextPage advances one page, clamped to the last page. It reports
// whether the page changed.
func (r *Roster) NextPage() bool {
	if r.page >= r.TotalPages() {
		return false
	}
	r.page++
	return true
}

// PrevPage goes back one page, clamped to the first page. It reports
// whether the page changed.
func (r *Roster) PrevPage() bool {
	if r.page <= 1 {
		return false
	}
	r.page--
	return true
}

// SetPage jumps to the given 1-indexed page, clamping out-of-range
// values.
func (r *Roster) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if max := r.TotalPages(); page > max {
		page = max
	}
	r.page = page
}

// Pending reports whether the given row has a mutation in flight.
func (r *Roster) Pending(id string) bool {
	return r.pending[id]
}

// Find returns the record with the given ID.
func (r *Roster) Find(id string) (api.UserRecord, bool) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return api.UserRecord{}, false
}

// =============================================================================
// MUTATIONS
// =============================================================================

// BeginToggleBlock marks the row pending and returns the block toggle
// the command layer should dispatch. The record itself is untouched
// until the server confirms through ApplyBlockResult.
func (r *Roster) BeginToggleBlock(id string) (target bool, err error) {
	rec, ok := r.Find(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}
	if r.pending[id] {
		return false, ErrRowBusy
	}
	r.pending[id] = true
	return !rec.Locked, nil
}

// BeginToggleRole marks the row pending and returns the role the
// command layer should request. Rows whose role does not participate
// in the student/teacher toggle are rejected here, before any network
// traffic.
func (r *Roster) BeginToggleRole(id string) (target api.Role, err error) {
	rec, ok := r.Find(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownUser, id)
	}
	if !rec.Role.CanToggle() {
		return "", ErrRoleNotAllowed
	}
	if r.pending[id] {
		return "", ErrRowBusy
	}
	r.pending[id] = true
	return rec.Role.Toggled(), nil
}

// ApplyBlockResult clears the pending marker and, on success, flips
// the record's locked flag to the confirmed value.
func (r *Roster) ApplyBlockResult(msg BlockResultMsg) {
	delete(r.pending, msg.ID)
	if msg.Err != nil {
		return
	}
	for i := range r.records {
		if r.records[i].ID == msg.ID {
			r.records[i].Locked = msg.Locked
			return
		}
	}
}

// ApplyRoleResult clears the pending marker and, on success, sets the
// record's role to the confirmed value.
func (r *Roster) ApplyRoleResult(msg RoleResultMsg) {
	delete(r.pending, msg.ID)
	if msg.Err != nil {
		return
	}
	for i := range r.records {
		if r.records[i].ID == msg.ID {
			r.records[i].Role = msg.Role
			return
		}
	}
}
