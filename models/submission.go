package models

import "time"

// Submission represents the submissions table. Status holds the canonical
// lifecycle status string; Version is bumped on every status transition and
// backs the optimistic lock in the workflow service.
type Submission struct {
	SubmissionID     int        `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	SubmissionNumber string     `gorm:"column:submission_number;unique" json:"submission_number"`
	SubmissionType   string     `gorm:"column:submission_type" json:"submission_type"` // poem|essay|article
	Title            string     `gorm:"column:title" json:"title"`
	Content          string     `gorm:"column:content;type:longtext" json:"content"`
	AuthorID         int        `gorm:"column:author_id" json:"author_id"`
	Status           string     `gorm:"column:status;index" json:"status"`
	AssignedTo       *int       `gorm:"column:assigned_to" json:"assigned_to,omitempty"`
	AssignedAt       *time.Time `gorm:"column:assigned_at" json:"assigned_at,omitempty"`
	ReviewedBy       *int       `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	RevisionNotes    *string    `gorm:"column:revision_notes" json:"revision_notes,omitempty"`
	ViewCount        int64      `gorm:"column:view_count;default:0" json:"view_count"`
	Version          int        `gorm:"column:version;default:0" json:"-"`
	SubmittedAt      *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	PublishedAt      *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt        *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`

	// Relations
	Author   *User                     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Assignee *User                     `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
	Reviewer *User                     `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
	History  []SubmissionStatusHistory `gorm:"foreignKey:SubmissionID" json:"history,omitempty"`
}

// TableName overrides the table name for Submission.
func (Submission) TableName() string {
	return "submissions"
}

// IsAssigned reports whether an editor currently holds the submission.
func (s *Submission) IsAssigned() bool {
	return s.AssignedTo != nil
}
