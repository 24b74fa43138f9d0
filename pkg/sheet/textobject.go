package sheet

import "strings"

// BoundingBox holds the pixel-coordinate extent of a recognized text fragment.
// CenterX/CenterY/Width/Height are derived from the min/max values and are
// never set independently.
type BoundingBox struct {
	MinX    float64 `json:"minX" yaml:"min_x"`
	MaxX    float64 `json:"maxX" yaml:"max_x"`
	MinY    float64 `json:"minY" yaml:"min_y"`
	MaxY    float64 `json:"maxY" yaml:"max_y"`
	CenterX float64 `json:"centerX" yaml:"center_x"`
	CenterY float64 `json:"centerY" yaml:"center_y"`
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
}

// TextObject is one OCR-recognized fragment with its bounding geometry.
// Instances are created once per OCR response and treated as immutable for
// the duration of a processing run.
type TextObject struct {
	Text        string      `json:"text" yaml:"text"`
	Confidence  float64     `json:"confidence" yaml:"confidence"`
	BoundingBox BoundingBox `json:"boundingBox" yaml:"bounding_box"`
}

// NewTextObject builds a TextObject from the extremes of a bounding polygon.
// The text is trimmed and the derived geometry fields are computed here so
// callers never have to keep them consistent by hand. A provider that does
// not report confidence should pass 1.0.
func NewTextObject(text string, confidence float64, minX, maxX, minY, maxY float64) TextObject {
	return TextObject{
		Text:       strings.TrimSpace(text),
		Confidence: confidence,
		BoundingBox: BoundingBox{
			MinX:    minX,
			MaxX:    maxX,
			MinY:    minY,
			MaxY:    maxY,
			CenterX: (minX + maxX) / 2,
			CenterY: (minY + maxY) / 2,
			Width:   maxX - minX,
			Height:  maxY - minY,
		},
	}
}

// NewTextObjectFromVertices builds a TextObject from the corner points of a
// bounding polygon, in the order a vision API returns them. Vertices with
// unset coordinates come through as zero, matching provider behavior.
func NewTextObjectFromVertices(text string, confidence float64, xs, ys []float64) TextObject {
	var minX, maxX, minY, maxY float64
	for i := range xs {
		if i == 0 || xs[i] < minX {
			minX = xs[i]
		}
		if i == 0 || xs[i] > maxX {
			maxX = xs[i]
		}
	}
	for i := range ys {
		if i == 0 || ys[i] < minY {
			minY = ys[i]
		}
		if i == 0 || ys[i] > maxY {
			maxY = ys[i]
		}
	}
	return NewTextObject(text, confidence, minX, maxX, minY, maxY)
}
