package models

import "time"

// SubmissionStatusHistory is the append-only transition ledger for a
// submission. Rows are created inside the transition transaction and never
// updated or deleted afterwards; ActorRole is the role the actor held at the
// moment of the transition, not a live join against users.
type SubmissionStatusHistory struct {
	HistoryID    int       `gorm:"primaryKey;column:history_id" json:"history_id"`
	SubmissionID int       `gorm:"column:submission_id;index" json:"submission_id"`
	Action       string    `gorm:"column:action" json:"action"`
	Status       string    `gorm:"column:status" json:"status"`
	ActorID      int       `gorm:"column:actor_id" json:"actor_id"`
	ActorRole    string    `gorm:"column:actor_role" json:"actor_role"`
	Notes        *string   `gorm:"column:notes" json:"notes,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// TableName specifies the table for SubmissionStatusHistory.
func (SubmissionStatusHistory) TableName() string {
	return "submission_status_history"
}
