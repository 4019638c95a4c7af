// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package validate

import "testing"

func TestValidEmail(t *testing.T) {
	valid := []string{
		"admin@example.com",
		"a@b.c",
		"first.last@sub.domain.org",
		"user+tag@example.co",
	}
	for _, email := range valid {
		if !ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = false, want true", email)
		}
	}

	invalid := []string{
		"",
		"no-at-sign.com",
		"missing@dot",
		"@example.com",
		"user@",
		"two words@example.com",
		"user@exa mple.com",
	}
	for _, email := range invalid {
		if ValidEmail(email) {
			t.Errorf("ValidEmail(%q) = true, want false", email)
		}
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		password  string
		ok        bool
		emailErr  string
		passwdErr string
	}{
		{"both valid", "admin@example.com", "admin1234", true, "", ""},
		{"minimum password", "admin@example.com", "1234", true, "", ""},
		{"bad email", "admin", "admin1234", false, MsgEmailInvalid, ""},
		{"short password", "admin@example.com", "123", false, "", MsgPasswordTooShort},
		{"both bad", "nope", "x", false, MsgEmailInvalid, MsgPasswordTooShort},
		{"empty", "", "", false, MsgEmailInvalid, MsgPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ValidateCredentials(tt.email, tt.password)
			if c.OK() != tt.ok {
				t.Errorf("OK() = %v, want %v", c.OK(), tt.ok)
			}
			if c.EmailError != tt.emailErr {
				t.Errorf("EmailError = %q, want %q", c.EmailError, tt.emailErr)
			}
			if c.PasswordError != tt.passwdErr {
				t.Errorf("PasswordError = %q, want %q", c.PasswordError, tt.passwdErr)
			}
		})
	}
}

// Revalidating after a fix clears the previous field error.
func TestValidateCredentialsClearsPriorErrors(t *testing.T) {
	first := ValidateCredentials("bad", "1234")
	if first.EmailError == "" {
		t.Fatal("expected email error on first pass")
	}

	second := ValidateCredentials("fixed@example.com", "1234")
	if !second.OK() {
		t.Errorf("second pass should be clean, got %+v", second)
	}
}
