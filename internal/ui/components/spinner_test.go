// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner()
	if s.message != "Loading" {
		t.Errorf("message = %q, want Loading", s.message)
	}
	if s.IsActive() {
		t.Error("new spinner should be inactive")
	}
}

func TestNewFetchSpinner(t *testing.T) {
	s := NewFetchSpinner()
	if s.message != "Fetching users" {
		t.Errorf("message = %q", s.message)
	}
}

func TestSpinnerStartStop(t *testing.T) {
	s := NewSpinner()

	cmd := s.Start()
	if cmd == nil {
		t.Error("Start should return a tick command")
	}
	if !s.IsActive() {
		t.Error("spinner should be active after Start")
	}

	s.Stop()
	if s.IsActive() {
		t.Error("spinner should be inactive after Stop")
	}
}

func TestSpinnerGetElapsed(t *testing.T) {
	s := NewSpinner()
	if s.GetElapsed() != 0 {
		t.Error("unstarted spinner should have zero elapsed")
	}

	s.Start()
	time.Sleep(10 * time.Millisecond)
	if s.GetElapsed() <= 0 {
		t.Error("elapsed should grow after Start")
	}
}

func TestSpinnerView(t *testing.T) {
	s := NewSpinner()
	if s.View() != "" {
		t.Error("inactive spinner should render nothing")
	}

	s.Start()
	s.SetMessage("Working")
	view := s.View()
	if !strings.Contains(view, "Working") {
		t.Errorf("view %q missing message", view)
	}
}

func TestSpinnerViewWithDetail(t *testing.T) {
	s := NewSpinner()
	s.Start()
	s.SetDetail("contacting service")
	if !strings.Contains(s.View(), "contacting service") {
		t.Error("view missing detail line")
	}
}

func TestInlineSpinner(t *testing.T) {
	i := NewInlineSpinner()
	if i.View() != "" {
		t.Error("inactive inline spinner should render nothing")
	}

	i.Start()
	if !i.IsActive() {
		t.Error("inline spinner should be active after Start")
	}
	if i.View() == "" {
		t.Error("active inline spinner should render a frame")
	}

	i.Stop()
	if i.View() != "" {
		t.Error("stopped inline spinner should render nothing")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{5 * time.Second, "5s"},
		{65 * time.Second, "1m 5s"},
		{120 * time.Second, "2m 0s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
