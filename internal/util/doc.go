// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides utility functions for the backoffice TUI.
//
// This package contains the small set of helpers shared across the
// application: crash-safe file writing (used by the session store) and
// width-aware string shaping (used by the roster table).
package util
