package sheet

import "testing"

func TestNewTextObject(t *testing.T) {
	got := NewTextObject("  Ann  ", 0.92, 10, 30, 100, 120)

	if got.Text != "Ann" {
		t.Errorf("Text = %q, want trimmed %q", got.Text, "Ann")
	}
	if got.Confidence != 0.92 {
		t.Errorf("Confidence = %v, want 0.92", got.Confidence)
	}
	box := got.BoundingBox
	if box.CenterX != 20 || box.CenterY != 110 {
		t.Errorf("center = (%v, %v), want (20, 110)", box.CenterX, box.CenterY)
	}
	if box.Width != 20 || box.Height != 20 {
		t.Errorf("size = %vx%v, want 20x20", box.Width, box.Height)
	}
}

func TestNewTextObjectFromVertices(t *testing.T) {
	tests := []struct {
		name    string
		xs, ys  []float64
		wantBox BoundingBox
	}{
		{
			name: "axis-aligned quad",
			xs:   []float64{10, 30, 30, 10},
			ys:   []float64{100, 100, 120, 120},
			wantBox: BoundingBox{
				MinX: 10, MaxX: 30, MinY: 100, MaxY: 120,
				CenterX: 20, CenterY: 110, Width: 20, Height: 20,
			},
		},
		{
			name: "skewed quad uses the extremes",
			xs:   []float64{12, 28, 30, 10},
			ys:   []float64{98, 100, 122, 120},
			wantBox: BoundingBox{
				MinX: 10, MaxX: 30, MinY: 98, MaxY: 122,
				CenterX: 20, CenterY: 110, Width: 20, Height: 24,
			},
		},
		{
			name:    "no vertices",
			xs:      nil,
			ys:      nil,
			wantBox: BoundingBox{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewTextObjectFromVertices("X", 0.8, tt.xs, tt.ys)
			if got.BoundingBox != tt.wantBox {
				t.Errorf("BoundingBox = %+v, want %+v", got.BoundingBox, tt.wantBox)
			}
		})
	}
}
