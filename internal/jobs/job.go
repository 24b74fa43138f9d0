package jobs

import (
	"time"

	"github.com/google/uuid"

	"github.com/classtrack/gradescan/pkg/sheet"
)

// Status is a processing job's lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job is one grade sheet's processing attempt. A completed job always
// carries exactly one ProcessedGrade per roster student; a failed job
// carries none and an error message. Reprocessing a sheet supersedes the
// result wholesale rather than editing it in place.
type Job struct {
	ID        string `json:"id" yaml:"id"`
	SheetID   string `json:"sheetId" yaml:"sheet_id"`
	ImagePath string `json:"imagePath" yaml:"image_path"`
	Provider  string `json:"provider" yaml:"provider"`

	Status      Status     `json:"status" yaml:"status"`
	Attempts    int        `json:"attempts" yaml:"attempts"`
	Error       string     `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" yaml:"created_at"`
	StartedAt   *time.Time `json:"startedAt,omitempty" yaml:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completed_at,omitempty"`

	Roster []sheet.RosterEntry    `json:"roster" yaml:"roster"`
	Result []sheet.ProcessedGrade `json:"result,omitempty" yaml:"result,omitempty"`
}

// NewJob creates a pending job for one sheet image.
func NewJob(sheetID, imagePath, provider string, roster []sheet.RosterEntry) *Job {
	return &Job{
		ID:        uuid.New().String(),
		SheetID:   sheetID,
		ImagePath: imagePath,
		Provider:  provider,
		Status:    StatusPending,
		CreatedAt: time.Now(),
		Roster:    roster,
	}
}
