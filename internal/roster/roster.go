package roster

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/classtrack/gradescan/pkg/sheet"
)

// Student is one roster record as a class-period source provides it.
type Student struct {
	StudentID string `json:"studentId" yaml:"student_id"`
	FirstName string `json:"firstName" yaml:"first_name"`
	LastName  string `json:"lastName" yaml:"last_name"`
}

// FullName returns the denormalized display name used on processed grades.
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Sort orders students by last name, then first name. This ordering is
// load-bearing: it must match the order students are printed on the sheet,
// because it is the positional key the assembler pairs rows against.
func Sort(students []Student) {
	sort.SliceStable(students, func(i, j int) bool {
		li := strings.ToLower(students[i].LastName)
		lj := strings.ToLower(students[j].LastName)
		if li != lj {
			return li < lj
		}
		return strings.ToLower(students[i].FirstName) < strings.ToLower(students[j].FirstName)
	})
}

// Entries converts students to the pipeline's roster shape, preserving
// order.
func Entries(students []Student) []sheet.RosterEntry {
	entries := make([]sheet.RosterEntry, 0, len(students))
	for _, s := range students {
		entries = append(entries, sheet.RosterEntry{
			StudentID: s.StudentID,
			FullName:  s.FullName(),
		})
	}
	return entries
}

// LoadCSV reads a roster file with studentId,firstName,lastName columns,
// skipping a header row if present, and returns the students sorted in the
// sheet's printed order.
func LoadCSV(path string) ([]Student, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read roster CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("roster file is empty")
	}

	// Skip header row if present
	dataRows := records
	if strings.EqualFold(strings.TrimSpace(records[0][0]), "studentId") {
		dataRows = records[1:]
	}

	var students []Student
	for i, row := range dataRows {
		if len(row) < 3 {
			return nil, fmt.Errorf("roster row %d has %d columns, expected 3", i+1, len(row))
		}
		students = append(students, Student{
			StudentID: strings.TrimSpace(row[0]),
			FirstName: strings.TrimSpace(row[1]),
			LastName:  strings.TrimSpace(row[2]),
		})
	}

	Sort(students)

	return students, nil
}
