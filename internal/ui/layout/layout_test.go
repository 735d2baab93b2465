package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestRenderHeader(t *testing.T) {
	h := RenderHeader(Header{App: "Tango", Title: "Quiz", Level: "N2", Notebook: "Notebook: 3"}, 80)
	for _, want := range []string{"Tango", "Quiz", "N2", "Notebook: 3"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestRenderFrame_Height(t *testing.T) {
	header := RenderHeader(Header{App: "Tango"}, 60)
	footer := RenderFooter([]KeyHint{{Key: "q", Description: "Quit"}}, 60)
	frame := RenderFrame(header, "body", footer, 60, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
}

func TestIsTooSmall(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{MinWidth, MinHeight, false},
		{MinWidth - 1, MinHeight, true},
		{MinWidth, MinHeight - 1, true},
		{120, 40, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.want {
			t.Errorf("IsTooSmall(%d, %d) = %v", tt.w, tt.h, got)
		}
	}
}
