package dto

import "time"

// StudyLogCreateDTO is used for incoming study-log creation requests
type StudyLogCreateDTO struct {
	CourseID string `json:"course_id" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

// StudyLogUpdateDTO is used for incoming study-log update requests. Both
// fields are always required together.
type StudyLogUpdateDTO struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// StudyLogResponseDTO is returned in API responses for study logs
type StudyLogResponseDTO struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
