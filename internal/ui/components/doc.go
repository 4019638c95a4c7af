// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the backoffice TUI.

This package contains a collection of styled, interactive components built on
top of the Bubble Tea and Lip Gloss libraries, consistent with the application
design language.

# Core Components

## Display Components

UserTable (usertable.go) - Fixed-column user roster table with role and
state badges.
StatusBar (statusbar.go) - Bottom status bar with session state, API host,
roster counts, and shortcuts.

## Progress and Feedback

Spinner (spinner.go) - Animated spinner with message, detail line, and
elapsed timer; InlineSpinner for per-row pending markers.
Toast (toast.go) - Non-blocking corner notifications with auto-dismiss.

# Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	bar := components.NewStatusBar(theme)
	bar.SetWidth(80)
	view := bar.View()

# Bubble Tea Integration

Stateful components follow the usual Update/View shape:

	type Component interface {
		Update(tea.Msg) (Component, tea.Cmd)
		View() string
	}
*/
package components
