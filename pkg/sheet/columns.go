package sheet

import (
	"math"
	"sort"
)

type columnGroup struct {
	centerX   float64
	positions []float64
}

// InferColumns discovers the shared horizontal positions (columns) of the
// printed template from a sample of leading rows, returning their
// representative X centers sorted ascending.
//
// Every member's rounded CenterX from the first SampleRows rows is pooled
// into one ascending list, then greedily grouped: an X joins the first group
// whose running mean it is within ColumnGroupTolerance of, and the mean is
// recomputed. Groups with fewer than MinColumnObservations members are
// dropped; a position seen once is a stray mark, not a column. The result
// may therefore be shorter than the template's column count; callers treat
// out-of-range column indices as undetected.
func InferColumns(rows []Row, tol Tolerances) []float64 {
	sample := rows
	if len(sample) > tol.SampleRows {
		sample = sample[:tol.SampleRows]
	}

	var positions []float64
	for _, row := range sample {
		for _, obj := range row.TextObjects {
			positions = append(positions, math.Round(obj.BoundingBox.CenterX))
		}
	}
	sort.Float64s(positions)

	var groups []*columnGroup
	for _, x := range positions {
		var found *columnGroup
		for _, g := range groups {
			if abs(g.centerX-x) <= tol.ColumnGroupTolerance {
				found = g
				break
			}
		}
		if found == nil {
			groups = append(groups, &columnGroup{centerX: x, positions: []float64{x}})
			continue
		}
		found.positions = append(found.positions, x)
		sum := 0.0
		for _, p := range found.positions {
			sum += p
		}
		found.centerX = sum / float64(len(found.positions))
	}

	var columns []float64
	for _, g := range groups {
		if len(g.positions) >= tol.MinColumnObservations {
			columns = append(columns, math.Round(g.centerX))
		}
	}
	sort.Float64s(columns)

	return columns
}
