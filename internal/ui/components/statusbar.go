// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom status bar
// =============================================================================

// Status represents the current application status
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusError
	StatusIdle
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	case StatusIdle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading:
		return styles.StatusIndicators.Pending
	case StatusError:
		return styles.StatusIndicators.Error
	case StatusIdle:
		return "-"
	default:
		return "?"
	}
}

// StatusBar is the bottom status bar: session state, API host, roster
// counts, and keyboard shortcuts.
type StatusBar struct {
	SignedIn      bool   // Whether an operator session is active
	APIHost       string // Host portion of the service URL
	UserCount     int    // Total users in the roster
	Page          int    // Current roster page (1-indexed)
	TotalPages    int    // Total roster pages
	Status        Status // Current status
	Width         int    // Available width
	ShowShortcuts bool   // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusReady,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetSession updates the session indicator
func (s *StatusBar) SetSession(signedIn bool) {
	s.SignedIn = signedIn
}

// SetRosterInfo updates the user count and page position
func (s *StatusBar) SetRosterInfo(count, page, totalPages int) {
	s.UserCount = count
	s.Page = page
	s.TotalPages = totalPages
}

// View renders the status bar
func (s *StatusBar) View() string {
	if s.Width < 60 {
		return s.viewNarrow()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals
// Format: [IN|OUT] users page status
func (s *StatusBar) viewNarrow() string {
	parts := []string{}

	if s.SignedIn {
		parts = append(parts, s.getSessionStyle().Render("IN"))
	} else {
		parts = append(parts, s.getSessionStyle().Render("OUT"))
	}

	sessionSection := "[" + strings.Join(parts, "|") + "]"

	pageSection := ""
	if s.TotalPages > 0 {
		pageSection = lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(strconv.Itoa(s.Page) + "/" + strconv.Itoa(s.TotalPages))
	}

	statusText := s.getStatusStyle().Render(s.Status.Icon())

	separator := " "
	result := sessionSection + separator + pageSection + separator + statusText

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewWide renders the full status bar
// Format: session | host | N users | page X/Y ... Status shortcuts
func (s *StatusBar) viewWide() string {
	leftParts := []string{}

	// Session state
	// ACCESSIBILITY: Uses high contrast colors for colorblind users
	if s.SignedIn {
		leftParts = append(leftParts, s.getSessionStyle().Render(styles.StatusIndicators.Active+" Signed in"))
	} else {
		leftParts = append(leftParts, s.getSessionStyle().Render("Signed out"))
	}

	// API host
	if s.APIHost != "" {
		hostStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
		leftParts = append(leftParts, hostStyle.Render(s.APIHost))
	}

	// Roster stats
	if s.UserCount > 0 {
		countStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, countStyle.Render(strconv.Itoa(s.UserCount)+" users"))
	}
	if s.TotalPages > 0 {
		pageStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, pageStyle.Render(
			"page "+strconv.Itoa(s.Page)+"/"+strconv.Itoa(s.TotalPages)))
	}

	leftSep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	leftSection := strings.Join(leftParts, leftSep)

	// Right section: status and shortcuts
	rightParts := []string{s.getStatusStyle().Render(s.Status.String())}
	if s.ShowShortcuts {
		rightParts = append(rightParts, s.renderShortcuts())
	}
	rightSection := strings.Join(rightParts, " ")

	// Pad the middle
	leftWidth := lipgloss.Width(leftSection)
	rightWidth := lipgloss.Width(rightSection)
	spacing := s.Width - leftWidth - rightWidth - 4
	if spacing < 1 {
		spacing = 1
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// renderShortcuts renders keyboard shortcut hints
func (s *StatusBar) renderShortcuts() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted)

	shortcuts := []string{
		keyStyle.Render("tab") + descStyle.Render("nav"),
		keyStyle.Render("^C") + descStyle.Render("quit"),
	}

	return strings.Join(shortcuts, " ")
}

// getSessionStyle returns the style for the session indicator
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getSessionStyle() lipgloss.Style {
	if s.SignedIn {
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(styles.TextMuted)
}

// getStatusStyle returns the style for the current status
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusLoading:
		return lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
