package sheet

// Analysis is the structural interpretation of one sheet's OCR output:
// clustered rows plus the inferred template columns. It is derived once per
// processing run and is local to that run.
type Analysis struct {
	Rows    []Row     `json:"rows" yaml:"rows"`
	Columns []float64 `json:"columnPositions" yaml:"column_positions"`
}

// Analyze clusters the raw text objects into rows and infers the column
// positions from the leading sample rows.
func Analyze(objects []TextObject, tol Tolerances) Analysis {
	rows := ClusterRows(objects, tol)
	return Analysis{
		Rows:    rows,
		Columns: InferColumns(rows, tol),
	}
}

// Grades runs the assembler over this analysis. Passing a nil matcher uses
// the positional pairing of rows to roster entries.
func (a Analysis) Grades(roster []RosterEntry, cfg ScaleConfig, tol Tolerances, matcher RowMatcher) []ProcessedGrade {
	return AssembleGrades(a.Rows, a.Columns, roster, cfg, tol, matcher)
}
