// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import "errors"

// =============================================================================
// ERROR TYPES
// =============================================================================

// Error represents a failed API operation.
type Error struct {
	Kind    ErrorKind
	Message string
	Status  int // HTTP status code, 0 when no response was obtained
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorKind categorizes API errors for handling. Screens branch on the
// kind, never on message text.
type ErrorKind int

const (
	// KindUnknownHTTP is any non-success status without a dedicated kind.
	KindUnknownHTTP ErrorKind = iota
	// KindNetwork means no response was obtained at all.
	KindNetwork
	// KindUnauthorized means the operation needs a token and none is held.
	KindUnauthorized
	// KindInvalidCredentials is a 401 on the login request itself.
	KindInvalidCredentials
	// KindSessionExpired is a 401 anywhere else; the stored token is no
	// longer valid and has been cleared.
	KindSessionExpired
	// KindForbidden is a 403.
	KindForbidden
	// KindConflict is a 409, e.g. registering a duplicate admin.
	KindConflict
	// KindNotFound is a 404. The hosting provider also answers 404 while
	// the service is asleep, so this doubles as "service unreachable".
	KindNotFound
	// KindServerError is a 500.
	KindServerError
	// KindInvalidResponse means the body could not be decoded.
	KindInvalidResponse
)

// String returns the kind's name for logs and test output.
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "Network"
	case KindUnauthorized:
		return "Unauthorized"
	case KindInvalidCredentials:
		return "InvalidCredentials"
	case KindSessionExpired:
		return "SessionExpired"
	case KindForbidden:
		return "Forbidden"
	case KindConflict:
		return "Conflict"
	case KindNotFound:
		return "NotFound"
	case KindServerError:
		return "ServerError"
	case KindInvalidResponse:
		return "InvalidResponse"
	default:
		return "UnknownHTTP"
	}
}

// KindOf extracts the ErrorKind from an error chain. Non-API errors
// report KindUnknownHTTP.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknownHTTP
}

// IsSessionExpired reports whether err means the stored token was
// rejected by the server.
func IsSessionExpired(err error) bool {
	return KindOf(err) == KindSessionExpired
}

// IsUnauthorized reports whether err means no token is held.
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

// IsInvalidCredentials reports whether err is a rejected login.
func IsInvalidCredentials(err error) bool {
	return KindOf(err) == KindInvalidCredentials
}

// UserMessage returns the operator-facing description for an error,
// matching the tone of the original backoffice notifications.
func UserMessage(err error) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return "Unexpected error: " + err.Error()
	}

	switch apiErr.Kind {
	case KindNetwork:
		return "Connection error. Check your network and try again."
	case KindUnauthorized:
		return "You are not logged in."
	case KindInvalidCredentials:
		return "The credentials entered are not valid."
	case KindSessionExpired:
		return "Your session has expired. Please log in again."
	case KindForbidden:
		return "You do not have permission to do that."
	case KindConflict:
		return "That admin already exists."
	case KindNotFound:
		return "The server is not available. Free-tier hosting sleeps after inactivity; try again in a moment."
	case KindServerError:
		return "Internal server error. Try again later."
	case KindInvalidResponse:
		return "The server returned an unreadable response."
	default:
		return apiErr.Message
	}
}
