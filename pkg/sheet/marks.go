package sheet

import (
	"strings"
	"unicode/utf8"
)

// markGlyphs are the characters OCR produces for an explicit pen mark.
var markGlyphs = []string{"X", "✓", "●", "■", "▪", "*"}

// glyphMark reports whether the fragment's text contains a recognizable
// mark glyph.
func glyphMark(obj TextObject) bool {
	text := strings.ToUpper(strings.TrimSpace(obj.Text))
	for _, glyph := range markGlyphs {
		if strings.Contains(text, glyph) {
			return true
		}
	}
	return false
}

// lowConfidenceMark reports whether the fragment looks like a filled bubble.
// A solid fill usually OCRs as a short, low-confidence fragment rather than
// a clean glyph, so low confidence on a short fragment is a positive signal
// of a mark, not a reason to discard the observation.
func lowConfidenceMark(obj TextObject, tol Tolerances) bool {
	text := strings.TrimSpace(obj.Text)
	return obj.Confidence < tol.LowConfidenceThreshold && utf8.RuneCountInString(text) <= tol.MaxMarkTextLen
}

// IsColumnMarked decides whether the cell at the given column index is
// marked in this row. A column index beyond the inferred column list means
// the column was never detected, which reads as unmarked rather than an
// error. A text object counts as evidence when its center is within
// MarkXTolerance of the column and either detector fires.
//
// The detection is heuristic; a human review step downstream corrects
// false positives and negatives.
func IsColumnMarked(row Row, columns []float64, columnIndex int, tol Tolerances) bool {
	if columnIndex < 0 || columnIndex >= len(columns) {
		return false
	}

	columnX := columns[columnIndex]
	for _, obj := range row.TextObjects {
		if abs(obj.BoundingBox.CenterX-columnX) > tol.MarkXTolerance {
			continue
		}
		if glyphMark(obj) || lowConfidenceMark(obj, tol) {
			return true
		}
	}

	return false
}
