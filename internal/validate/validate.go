// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validate holds the credential validation rules shared by the
// login and registration forms. Validation runs locally, before any
// request is made; a form that fails here never reaches the network.
package validate

import "regexp"

// Validation error messages, matching the copy shown under the fields.
const (
	MsgEmailInvalid     = "Email is invalid"
	MsgPasswordTooShort = "Password must be at least 4 characters"
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 4

// emailRe accepts a two-part address: a non-empty local part, an "@",
// and a domain containing at least one dot. Intentionally loose - the
// backend is the authority on what an email is.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Credentials is the result of validating an email/password pair.
// Empty message fields mean the corresponding value passed.
type Credentials struct {
	EmailError    string
	PasswordError string
}

// OK reports whether both fields passed validation.
func (c Credentials) OK() bool {
	return c.EmailError == "" && c.PasswordError == ""
}

// ValidateCredentials checks an email/password pair against the form
// rules and returns per-field error messages.
func ValidateCredentials(email, password string) Credentials {
	var c Credentials
	if !ValidEmail(email) {
		c.EmailError = MsgEmailInvalid
	}
	if len(password) < MinPasswordLen {
		c.PasswordError = MsgPasswordTooShort
	}
	return c
}

// ValidEmail reports whether s looks like local-part@domain-with-dot.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}
