// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/backoffice-tui/internal/ui/styles"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusReady, "Ready"},
		{StatusLoading, "Loading..."},
		{StatusError, "Error"},
		{StatusIdle, "Idle"},
		{Status(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestStatusBarWideView(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(120)
	bar.SetSession(true)
	bar.APIHost = "api.example.com"
	bar.SetRosterInfo(25, 2, 3)

	view := bar.View()
	if !strings.Contains(view, "Signed in") {
		t.Error("wide view missing session state")
	}
	if !strings.Contains(view, "api.example.com") {
		t.Error("wide view missing host")
	}
	if !strings.Contains(view, "25 users") {
		t.Error("wide view missing user count")
	}
	if !strings.Contains(view, "page 2/3") {
		t.Error("wide view missing page position")
	}
}

func TestStatusBarSignedOut(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(100)
	bar.SetSession(false)

	if !strings.Contains(bar.View(), "Signed out") {
		t.Error("view should show signed-out state")
	}
}

func TestStatusBarNarrowView(t *testing.T) {
	bar := NewStatusBar(styles.NewTheme())
	bar.SetWidth(40)
	bar.SetSession(true)
	bar.SetRosterInfo(25, 1, 3)

	view := bar.View()
	if !strings.Contains(view, "IN") {
		t.Error("narrow view missing session indicator")
	}
	if !strings.Contains(view, "1/3") {
		t.Error("narrow view missing page indicator")
	}
}
