package model

import "time"

// Course is an owner-registered learning topic. The catalog is
// single-tenant, so courses carry no user scoping.
type Course struct {
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
