// Package models defines the GORM models for the local submission archive.
package models

import "time"

// Submission records one completed, persisted tutoring session. Only
// finished submissions are archived; in-flight session state never touches
// disk.
type Submission struct {
	ID              string `gorm:"primaryKey;size:36"`
	StudentName     string `gorm:"size:128;not null"`
	AssignmentTitle string `gorm:"size:256;not null"`
	MessageCount    int    `gorm:"not null"`
	TranscriptChars int
	AssessmentChars int
	NotionPageID    string `gorm:"size:64;index"`
	CreatedAt       time.Time
}
