// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the backoffice TUI.

This package defines the complete color palette and animation system used
throughout the application. All colors use Lip Gloss AdaptiveColor for
automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Purple - Primary accent for selections and focused panes
  - Cyan - Brand color for info and navigation highlights
  - Emerald - Success states and active accounts
  - Amber - Warnings and pending actions
  - Rose - Errors and blocked accounts

## Domain Colors

The users table colors role badges and account state:

	RoleStudentColor    - Student role badge
	RoleTeacherColor    - Teacher role badge
	RoleAdminColor      - Administrator role badge
	AccountActiveColor  - Active account indicator
	AccountBlockedColor - Blocked account indicator

## Text Colors

Hierarchical text color system:

	TextPrimary   - Main content text
	TextSecondary - Supporting text
	TextMuted     - De-emphasized text
	TextInverse   - Text on colored backgrounds

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	if theme.HasTrueColor {
		// Terminal supports 16M colors
	}

# Animation System (animations.go)

Pre-defined spinner styles:

	LineSpinner  - Simple line rotation
	DotsSpinner  - Classic three-dot animation
	PulseSpinner - Pulsing in-flight indicator

# Usage Example

	import "github.com/jeranaias/backoffice-tui/internal/ui/styles"

	// Use adaptive colors
	headerStyle := lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextPrimary)

	// Use theme for runtime detection
	theme := styles.NewTheme()
	row := theme.TableRowSelected.Render(line)
*/
package styles
