// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"
)

func TestToastConstructors(t *testing.T) {
	tests := []struct {
		name     string
		toast    Toast
		kind     ToastKind
		duration time.Duration
	}{
		{"error", NewErrorToast("failed"), ToastKindError, ErrorToastDuration},
		{"warning", NewWarningToast("careful"), ToastKindWarning, WarningToastDuration},
		{"status", NewStatusToast("info"), ToastKindStatus, DefaultToastDuration},
		{"success", NewSuccessToast("done"), ToastKindSuccess, DefaultToastDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.toast.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.toast.Kind, tt.kind)
			}
			if tt.toast.Duration != tt.duration {
				t.Errorf("Duration = %v, want %v", tt.toast.Duration, tt.duration)
			}
			if !tt.toast.Dismissible {
				t.Error("toast should be dismissible")
			}
			if tt.toast.ID == 0 {
				t.Error("toast should get an ID")
			}
		})
	}
}

func TestToastExpiry(t *testing.T) {
	toast := NewStatusToast("hello")
	if toast.IsExpired() {
		t.Error("fresh toast should not be expired")
	}

	toast.CreatedAt = time.Now().Add(-10 * time.Second)
	if !toast.IsExpired() {
		t.Error("old toast should be expired")
	}
	if toast.TimeRemaining() != 0 {
		t.Errorf("TimeRemaining = %v, want 0", toast.TimeRemaining())
	}
}

func TestToastManagerAddRemove(t *testing.T) {
	m := NewToastManager()
	if m.HasToasts() {
		t.Error("new manager should be empty")
	}

	id := m.AddError("oops")
	if !m.HasToasts() {
		t.Error("manager should have a toast")
	}

	m.RemoveToast(id)
	if m.HasToasts() {
		t.Error("manager should be empty after remove")
	}
}

func TestToastManagerNewestFirst(t *testing.T) {
	m := NewToastManager()
	m.AddStatus("first")
	m.AddStatus("second")

	toasts := m.GetToasts()
	if len(toasts) != 2 {
		t.Fatalf("got %d toasts", len(toasts))
	}
	if toasts[0].Message != "second" {
		t.Errorf("newest toast should be first, got %q", toasts[0].Message)
	}
}

func TestToastManagerCapsStack(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 10; i++ {
		m.AddStatus("toast")
	}
	if n := len(m.GetToasts()); n != 5 {
		t.Errorf("stack size = %d, want cap of 5", n)
	}
}

func TestTickToastsDropsExpired(t *testing.T) {
	m := NewToastManager()
	m.AddToast(Toast{
		Message:   "stale",
		CreatedAt: time.Now().Add(-time.Minute),
		Duration:  time.Second,
	})
	m.AddStatus("fresh")

	remaining := m.TickToasts()
	if len(remaining) != 1 || remaining[0].Message != "fresh" {
		t.Errorf("TickToasts kept %v", remaining)
	}
}

func TestToastManagerClear(t *testing.T) {
	m := NewToastManager()
	m.AddError("a")
	m.AddError("b")
	m.Clear()
	if m.HasToasts() {
		t.Error("Clear should remove all toasts")
	}
}

func TestRenderToastContainsMessage(t *testing.T) {
	toast := NewErrorToast("something broke")
	out := RenderToast(toast, 80)
	if !strings.Contains(out, "something broke") {
		t.Errorf("rendered toast missing message: %q", out)
	}
}

func TestRenderToastStackEmpty(t *testing.T) {
	if out := RenderToastStack(nil, 80, 24); out != "" {
		t.Errorf("empty stack rendered %q", out)
	}
}

func TestWrapToastText(t *testing.T) {
	wrapped := wrapToastText("one two three four five", 9)
	for _, line := range strings.Split(wrapped, "\n") {
		if len(line) > 9 {
			t.Errorf("line %q exceeds wrap width", line)
		}
	}
}
