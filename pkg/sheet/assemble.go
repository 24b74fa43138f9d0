package sheet

import "time"

// RosterEntry is one student as the roster source provides it. The order of
// the roster slice is load-bearing: it is the positional key that pairs
// students with detected rows.
type RosterEntry struct {
	StudentID string `json:"studentId" yaml:"student_id"`
	FullName  string `json:"fullName" yaml:"full_name"`
}

// ProcessedGrade is the normalized output unit, one per roster student.
// StudentID and StudentName always come from the roster record, never from
// OCR text. Score is one grading-scale label or empty when nothing was
// detected. Status may hold several labels at once: double marks are kept
// and surfaced to the reviewer rather than silently resolved.
type ProcessedGrade struct {
	StudentID   string   `json:"studentId" yaml:"student_id"`
	StudentName string   `json:"studentName" yaml:"student_name"`
	Score       string   `json:"score" yaml:"score"`
	Status      []string `json:"status" yaml:"status"`

	// Manual-correction provenance. A corrected entry supersedes the
	// OCR-derived one; the fields below record who replaced it and when.
	ManuallyEdited bool       `json:"manuallyEdited,omitempty" yaml:"manually_edited,omitempty"`
	EditedBy       string     `json:"editedBy,omitempty" yaml:"edited_by,omitempty"`
	EditedAt       *time.Time `json:"editedAt,omitempty" yaml:"edited_at,omitempty"`
}

// RowMatcher decides which detected row corresponds to a roster position.
// The stock implementation assumes scan-order fidelity (row i is student i),
// which is the weakest assumption in the pipeline; keeping it behind an
// interface lets an anchored scheme (printed row numbers, per-student
// barcodes) replace it without touching the assembler.
type RowMatcher interface {
	// Match returns the row for roster position i, or false when no row
	// corresponds to that student.
	Match(i int, rows []Row) (Row, bool)
}

// PositionalMatcher pairs roster position i with detected row i.
type PositionalMatcher struct{}

// Match implements RowMatcher.
func (PositionalMatcher) Match(i int, rows []Row) (Row, bool) {
	if i < 0 || i >= len(rows) {
		return Row{}, false
	}
	return rows[i], true
}

// AssembleGrades combines roster order, the grading configuration, and the
// clustered rows/columns into exactly one ProcessedGrade per roster student.
//
// For each roster position the matcher supplies the corresponding row (or
// nothing, when the sheet had fewer physical rows than the roster). Score
// columns are probed in scale order and the first marked one wins, a simple
// tie-break for double-marked sheets. Status columns are
// probed independently and every marked one is kept. A missing row yields an
// empty score and status; the student still appears in the output. The
// function has no failure path: detection problems become empty fields for
// the reviewer, never errors.
func AssembleGrades(rows []Row, columns []float64, roster []RosterEntry, cfg ScaleConfig, tol Tolerances, matcher RowMatcher) []ProcessedGrade {
	if matcher == nil {
		matcher = PositionalMatcher{}
	}

	grades := make([]ProcessedGrade, 0, len(roster))
	for i, student := range roster {
		grade := ProcessedGrade{
			StudentID:   student.StudentID,
			StudentName: student.FullName,
			Status:      []string{},
		}

		row, ok := matcher.Match(i, rows)
		if ok {
			for scaleIndex, score := range cfg.Scale {
				if IsColumnMarked(row, columns, cfg.FirstScaleColumn+scaleIndex, tol) {
					grade.Score = score
					break
				}
			}
			if cfg.StatusesEnabled {
				statusOffset := cfg.StatusColumnOffset()
				for statusIndex, status := range DefaultStatusOptions {
					if IsColumnMarked(row, columns, statusOffset+statusIndex, tol) {
						grade.Status = append(grade.Status, status)
					}
				}
			}
		}

		grades = append(grades, grade)
	}

	return grades
}

// CompleteFromRoster pads and normalizes a partially-populated grade list so
// the result always has exactly one entry per roster student, in roster
// order, with identity fields stamped from the roster record. Entries beyond
// the roster length are discarded.
func CompleteFromRoster(grades []ProcessedGrade, roster []RosterEntry) []ProcessedGrade {
	out := make([]ProcessedGrade, 0, len(roster))
	for i, student := range roster {
		grade := ProcessedGrade{Status: []string{}}
		if i < len(grades) {
			grade = grades[i]
			if grade.Status == nil {
				grade.Status = []string{}
			}
		}
		grade.StudentID = student.StudentID
		grade.StudentName = student.FullName
		out = append(out, grade)
	}
	return out
}
