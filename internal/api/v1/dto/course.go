package dto

import "time"

// CourseCreateDTO is used for incoming course creation requests
type CourseCreateDTO struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Level       *string `json:"level,omitempty"`
	Category    *string `json:"category,omitempty"`
	Link        *string `json:"link,omitempty"`
}

// CourseUpdateDTO is used for incoming course update requests. The update
// is a full replace: optional fields left out of the request are reset to
// empty strings on the stored course.
type CourseUpdateDTO struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
	Level       *string `json:"level,omitempty"`
	Category    *string `json:"category,omitempty"`
	Link        *string `json:"link,omitempty"`
}

// CourseResponseDTO is returned in API responses for courses
type CourseResponseDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Level       string    `json:"level"`
	Category    string    `json:"category"`
	Link        string    `json:"link"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
