package jobs

import (
	"fmt"
	"time"

	"github.com/classtrack/gradescan/pkg/sheet"
)

// Override is one reviewer correction for a single student. A nil Score or
// Status leaves that field as OCR produced it.
type Override struct {
	StudentID string    `json:"studentId" yaml:"student_id"`
	Score     *string   `json:"score,omitempty" yaml:"score,omitempty"`
	Status    *[]string `json:"status,omitempty" yaml:"status,omitempty"`
}

// ApplyCorrections returns a new grade list with the overrides applied.
// Corrected entries are replaced, stamped with editor and timestamp
// provenance; entries without an override are carried over untouched. The
// input slice is never mutated: a corrected result supersedes the
// OCR-derived one.
func ApplyCorrections(grades []sheet.ProcessedGrade, overrides []Override, editedBy string, editedAt time.Time) ([]sheet.ProcessedGrade, error) {
	byStudent := make(map[string]Override, len(overrides))
	for _, o := range overrides {
		byStudent[o.StudentID] = o
	}

	out := make([]sheet.ProcessedGrade, len(grades))
	copy(out, grades)

	applied := make(map[string]bool, len(byStudent))
	for i := range out {
		o, ok := byStudent[out[i].StudentID]
		if !ok {
			continue
		}
		applied[out[i].StudentID] = true
		if o.Score != nil {
			out[i].Score = *o.Score
		}
		if o.Status != nil {
			status := make([]string, len(*o.Status))
			copy(status, *o.Status)
			out[i].Status = status
		}
		at := editedAt
		out[i].ManuallyEdited = true
		out[i].EditedBy = editedBy
		out[i].EditedAt = &at
	}

	if len(applied) != len(byStudent) {
		return nil, fmt.Errorf("%d override(s) reference students not in the grade list", len(byStudent)-len(applied))
	}

	return out, nil
}
