// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "strings"

// =============================================================================
// ROLES
// =============================================================================

// Role classifies a user record on the platform.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Normalize returns the role lowercased for comparison; the backend is
// not consistent about casing.
func (r Role) Normalize() Role {
	return Role(strings.ToLower(string(r)))
}

// Toggled returns the opposite teaching role. Only meaningful for
// student and teacher; anything else is returned unchanged.
func (r Role) Toggled() Role {
	switch r.Normalize() {
	case RoleStudent:
		return RoleTeacher
	case RoleTeacher:
		return RoleStudent
	default:
		return r
	}
}

// CanToggle reports whether the role may be switched between student
// and teacher. Admin accounts (and anything unrecognized) may not.
func (r Role) CanToggle() bool {
	n := r.Normalize()
	return n == RoleStudent || n == RoleTeacher
}

// =============================================================================
// RECORDS
// =============================================================================

// UserRecord is the client's read replica of a platform user. Records
// are created and destroyed only on the remote system; the client
// mutates its copy only to reflect a just-confirmed server change.
type UserRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Role    Role   `json:"role"`
	Locked  bool   `json:"is_locked"`
}

// =============================================================================
// REQUEST BODIES
// =============================================================================

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// The block endpoint takes its boolean as a string.
type blockRequest struct {
	ToBlock string `json:"to_block"`
}

// The role endpoint's field name is "rol", as served.
type roleRequest struct {
	Rol string `json:"rol"`
}
