// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	// Capability fields are environment-dependent; just ensure the
	// profile got populated.
	_ = theme.ColorProfile
}

func TestThemeTableStyles(t *testing.T) {
	theme := NewTheme()

	if out := theme.TableRowSelected.Render("row"); out == "" {
		t.Error("TableRowSelected should render")
	}
	if out := theme.RoleAdmin.Render("admin"); out == "" {
		t.Error("RoleAdmin should render")
	}
	if out := theme.AccountBlocked.Render("Blocked"); out == "" {
		t.Error("AccountBlocked should render")
	}
}

func TestThemeFormStyles(t *testing.T) {
	theme := NewTheme()

	for name, render := range map[string]func(...string) string{
		"FormLabel":        theme.FormLabel.Render,
		"FormError":        theme.FormError.Render,
		"FormButton":       theme.FormButton.Render,
		"FormButtonActive": theme.FormButtonActive.Render,
		"ModalTitle":       theme.ModalTitle.Render,
	} {
		if out := render("x"); out == "" {
			t.Errorf("%s should render", name)
		}
	}
}

func TestThemeSetSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(120, 40)
	if theme.Width != 120 || theme.Height != 40 {
		t.Errorf("SetSize stored %dx%d", theme.Width, theme.Height)
	}
}

func TestThemeGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	theme := NewTheme()
	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: mode = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestThemeZeroSize(t *testing.T) {
	theme := NewTheme()
	theme.SetSize(0, 0)
	if theme.GetLayoutMode() != LayoutNarrow {
		t.Error("zero width should be narrow layout")
	}
}
