package roster

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write roster file: %v", err)
	}
	return path
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name    string
		student Student
		want    string
	}{
		{"both names", Student{FirstName: "Ann", LastName: "Lee"}, "Ann Lee"},
		{"missing first name", Student{LastName: "Lee"}, "Lee"},
		{"missing last name", Student{FirstName: "Ann"}, "Ann"},
		{"empty", Student{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.student.FullName(); got != tt.want {
				t.Errorf("FullName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSort(t *testing.T) {
	students := []Student{
		{StudentID: "s3", FirstName: "Cy", LastName: "doe"},
		{StudentID: "s1", FirstName: "Bo", LastName: "Kim"},
		{StudentID: "s2", FirstName: "Ann", LastName: "Kim"},
	}

	Sort(students)

	wantIDs := []string{"s3", "s2", "s1"}
	for i, want := range wantIDs {
		if students[i].StudentID != want {
			t.Errorf("position %d = %s, want %s", i, students[i].StudentID, want)
		}
	}
}

func TestEntries(t *testing.T) {
	students := []Student{
		{StudentID: "s1", FirstName: "Ann", LastName: "Lee"},
		{StudentID: "s2", FirstName: "Bo", LastName: "Kim"},
	}

	entries := Entries(students)
	if len(entries) != 2 {
		t.Fatalf("Entries() returned %d entries, want 2", len(entries))
	}
	if entries[0].StudentID != "s1" || entries[0].FullName != "Ann Lee" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].StudentID != "s2" || entries[1].FullName != "Bo Kim" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}

func TestLoadCSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Student
		wantErr bool
	}{
		{
			name:    "with header",
			content: "studentId,firstName,lastName\ns1,Ann,Lee\ns2,Bo,Kim\n",
			want: []Student{
				{StudentID: "s2", FirstName: "Bo", LastName: "Kim"},
				{StudentID: "s1", FirstName: "Ann", LastName: "Lee"},
			},
		},
		{
			name:    "without header",
			content: "s1,Ann,Lee\ns2,Bo,Kim\n",
			want: []Student{
				{StudentID: "s2", FirstName: "Bo", LastName: "Kim"},
				{StudentID: "s1", FirstName: "Ann", LastName: "Lee"},
			},
		},
		{
			name:    "whitespace trimmed",
			content: "studentId,firstName,lastName\n s1 , Ann , Lee \n",
			want: []Student{
				{StudentID: "s1", FirstName: "Ann", LastName: "Lee"},
			},
		},
		{
			name:    "sorted by last then first name",
			content: "s1,Bo,Kim\ns2,Ann,Kim\ns3,Cy,Doe\n",
			want: []Student{
				{StudentID: "s3", FirstName: "Cy", LastName: "Doe"},
				{StudentID: "s2", FirstName: "Ann", LastName: "Kim"},
				{StudentID: "s1", FirstName: "Bo", LastName: "Kim"},
			},
		},
		{
			name:    "empty file",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRoster(t, tt.content)
			got, err := LoadCSV(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadCSV() error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LoadCSV() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadCSVShortRow(t *testing.T) {
	path := writeRoster(t, "s1,Ann,Lee\ns2,Bo\n")
	if _, err := LoadCSV(path); err == nil {
		t.Error("expected an error for a row with too few columns")
	}
}

func TestLoadCSVMissingFile(t *testing.T) {
	if _, err := LoadCSV(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
