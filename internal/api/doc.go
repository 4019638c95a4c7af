// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the remote admin API.
//
// Every data operation in the application goes through this package:
// login, admin registration, the user roster, block toggles and role
// changes. The client attaches the stored bearer token to privileged
// requests and maps HTTP failures to a small typed error taxonomy so
// screens never match on message strings.
//
// No retries are performed; each user-triggered action issues at most
// one request.
package api
