package tui

import "testing"

func TestPaneHeights(t *testing.T) {
	tests := []struct {
		termHeight   int
		wantFramed   int
		wantDocument int
	}{
		{40, 35, 37},
		{20, 15, 17},
		{5, 1, 2},
		{0, 1, 1},
	}

	for _, tt := range tests {
		if got := FramedPaneHeight(tt.termHeight); got != tt.wantFramed {
			t.Errorf("FramedPaneHeight(%d) = %d, want %d", tt.termHeight, got, tt.wantFramed)
		}
		if got := DocumentHeight(tt.termHeight); got != tt.wantDocument {
			t.Errorf("DocumentHeight(%d) = %d, want %d", tt.termHeight, got, tt.wantDocument)
		}
	}
}
