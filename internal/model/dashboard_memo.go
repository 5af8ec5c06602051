package model

import "time"

// DashboardMemo is a short per-user note shown on the dashboard. UserID is
// the opaque subject from the external identity provider and is immutable
// after creation; every read/update/delete is scoped by it.
type DashboardMemo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsDone    bool      `json:"is_done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
