// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the operator's bearer token for the lifetime
// of the application.
//
// The token is the sole authorization signal the client uses: it is
// written on successful login, attached to every privileged request,
// and erased on logout or when the server rejects it. A copy persists
// in a 0600 file under the state directory so a session survives a
// restart on the same machine; no expiry is tracked client-side -
// expiry is discovered reactively through a rejected request.
//
// The store notifies registered listeners on every state change, and a
// file watcher feeds external changes to the token file (an
// out-of-band logout, a token written by another process) through the
// same listener path. Nothing polls.
package session
