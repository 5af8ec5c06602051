package dto

import "time"

// MemoCreateDTO is used for incoming memo creation requests
type MemoCreateDTO struct {
	Title   string  `json:"title" validate:"required"`
	Content *string `json:"content,omitempty"`
}

// MemoUpdateDTO is used for incoming memo patch requests. Only supplied
// fields are changed; a request with neither field is a no-op.
type MemoUpdateDTO struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// MemoResponseDTO is returned in API responses for dashboard memos
type MemoResponseDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsDone    bool      `json:"is_done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
