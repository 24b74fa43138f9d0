package sheet

import "sort"

// Row is a horizontal band of text objects believed to belong to one
// student's line on the sheet. MinY/MaxY/CenterY track the union extent of
// the members and are updated as objects are absorbed during clustering.
type Row struct {
	TextObjects []TextObject `json:"textObjects" yaml:"text_objects"`
	MinY        float64      `json:"minY" yaml:"min_y"`
	MaxY        float64      `json:"maxY" yaml:"max_y"`
	CenterY     float64      `json:"centerY" yaml:"center_y"`
}

func (r *Row) absorb(obj TextObject) {
	r.TextObjects = append(r.TextObjects, obj)
	if obj.BoundingBox.MinY < r.MinY {
		r.MinY = obj.BoundingBox.MinY
	}
	if obj.BoundingBox.MaxY > r.MaxY {
		r.MaxY = obj.BoundingBox.MaxY
	}
	r.CenterY = (r.MinY + r.MaxY) / 2
}

// ClusterRows groups text objects into horizontal rows, top to bottom.
//
// Objects are walked in ascending CenterY order; an object joins the current
// row when its center is within RowYTolerance of the row's center, otherwise
// it starts a new row. A stray object far from everything else becomes its
// own one-member row on purpose: downstream steps tolerate sparse rows, and
// guessing at noise here would drop real marks. Clustering never fails;
// adversarial input just degenerates to many small rows.
func ClusterRows(objects []TextObject, tol Tolerances) []Row {
	if len(objects) == 0 {
		return nil
	}

	sorted := make([]TextObject, len(objects))
	copy(sorted, objects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BoundingBox.CenterY < sorted[j].BoundingBox.CenterY
	})

	var rows []Row
	for _, obj := range sorted {
		if len(rows) > 0 {
			current := &rows[len(rows)-1]
			if abs(obj.BoundingBox.CenterY-current.CenterY) <= tol.RowYTolerance {
				current.absorb(obj)
				continue
			}
		}
		rows = append(rows, Row{
			TextObjects: []TextObject{obj},
			MinY:        obj.BoundingBox.MinY,
			MaxY:        obj.BoundingBox.MaxY,
			CenterY:     obj.BoundingBox.CenterY,
		})
	}

	// Order each row's members left to right for the column walk.
	for i := range rows {
		members := rows[i].TextObjects
		sort.SliceStable(members, func(a, b int) bool {
			return members[a].BoundingBox.CenterX < members[b].BoundingBox.CenterX
		})
	}

	return rows
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
