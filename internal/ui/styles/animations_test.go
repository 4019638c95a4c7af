// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
	"time"
)

func TestSpinnerConfigs(t *testing.T) {
	spinners := []struct {
		name string
		cfg  SpinnerConfig
	}{
		{"LineSpinner", LineSpinner},
		{"DotsSpinner", DotsSpinner},
		{"PulseSpinner", PulseSpinner},
	}

	for _, s := range spinners {
		if len(s.cfg.Frames) == 0 {
			t.Errorf("%s has no frames", s.name)
		}
		if s.cfg.FPS <= 0 {
			t.Errorf("%s has FPS %d", s.name, s.cfg.FPS)
		}
		if d := s.cfg.Duration(); d <= 0 || d > time.Second {
			t.Errorf("%s frame duration %v out of range", s.name, d)
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		percent float64
	}{
		{"empty", 10, 0},
		{"half", 10, 50},
		{"full", 10, 100},
		{"clamped high", 10, 150},
		{"clamped low", 10, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := RenderProgressBar(tt.width, tt.percent)
			if len(bar) != tt.width {
				t.Errorf("bar %q has width %d, want %d", bar, len(bar), tt.width)
			}
		})
	}
}

func TestRenderProgressBarContents(t *testing.T) {
	if bar := RenderProgressBar(10, 100); strings.Contains(bar, ProgressEmpty) {
		t.Errorf("full bar %q contains empty chars", bar)
	}
	if bar := RenderProgressBar(10, 0); strings.Contains(bar, ProgressFull) {
		t.Errorf("empty bar %q contains full chars", bar)
	}
}

func TestRenderProgressBarZeroWidth(t *testing.T) {
	if bar := RenderProgressBar(0, 50); bar != "" {
		t.Errorf("zero width bar = %q, want empty", bar)
	}
}
