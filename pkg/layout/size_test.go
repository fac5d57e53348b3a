package layout

import (
	"strings"
	"testing"
)

func TestEstimateNodeSize(t *testing.T) {
	tests := []struct {
		name  string
		label string
		wantW float64
		wantH float64
	}{
		{"short label keeps defaults", "DB", 120, 60},
		// 24 characters: 24*8 + 20 = 212.
		{"long label widens", "Customer Account Service", 212, 60},
		// 3 lines: 3*22 + 16 = 82.
		{"multiline grows height", "Line One<br>Line Two<br>Line Three", 120, 82},
		{"empty label keeps defaults", "", 120, 60},
		{"html tags stripped", "<b>API</b>", 120, 60},
		{"entities decoded", "A &amp; B", 120, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := EstimateNodeSize(tt.label, 120, 60)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("EstimateNodeSize(%q) = (%v,%v), want (%v,%v)",
					tt.label, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestEstimateNodeSizeCeilings(t *testing.T) {
	long := strings.Repeat("x", 100)
	manyLines := "a" + strings.Repeat("<br>a", 20)

	if w, _ := EstimateNodeSize(long, 120, 60); w != 280 {
		t.Errorf("width should cap at 280, got %v", w)
	}
	if _, h := EstimateNodeSize(manyLines, 120, 60); h != 200 {
		t.Errorf("height should cap at 200, got %v", h)
	}
}
