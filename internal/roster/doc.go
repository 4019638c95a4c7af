// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package roster holds the client-side state of the user list: the
// fetched records, the current page window, and the per-row pending
// markers that guard against double-submitting a mutation while an
// earlier one is still in flight.
//
// The roster never talks to the network directly. Mutations are
// expressed as bubbletea commands built from an api.Client, and their
// results flow back through the Apply* methods so record state only
// changes after the server confirms.
package roster
