package model

import "time"

// StudyLog is a free-text note attached to a single course. CourseID is
// required at creation, but the store does not verify it references an
// existing course; an orphaned log is a known edge case, not an error.
type StudyLog struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
