// Package content holds the models served by the CollegeOps backend:
// notes, assignments, announcements and the subject catalogue.
package content

import "time"

// PriorityType grades an announcement
type PriorityType string

const (
	PriorityLow    PriorityType = "low"
	PriorityMedium PriorityType = "medium"
	PriorityHigh   PriorityType = "high"
)

type Subject struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Code     string `json:"code,omitempty"`
	Semester int    `json:"semester,omitempty"`
}

type Note struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject"`
	FileURL     string    `json:"fileUrl"`
	FileType    string    `json:"fileType,omitempty"`
	Semester    int       `json:"semester,omitempty"`
	Department  string    `json:"department,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

type Assignment struct {
	ID            string    `json:"id,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Subject       string    `json:"subject"`
	DueDate       time.Time `json:"dueDate"`
	MaxMarks      int       `json:"maxMarks"`
	Semester      int       `json:"semester,omitempty"`
	Department    string    `json:"department,omitempty"`
	AttachmentURL string    `json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// TargetAudience narrows an announcement to a department/semester, or
// broadcasts it to everyone when All is set.
type TargetAudience struct {
	Department string `json:"department,omitempty"`
	Semester   *int   `json:"semester,omitempty"`
	All        bool   `json:"all"`
}

type Announcement struct {
	ID             string         `json:"id,omitempty"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Priority       PriorityType   `json:"priority"`
	TargetAudience TargetAudience `json:"targetAudience"`
	ExpiresAt      *time.Time     `json:"expiresAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt,omitempty"`
}
