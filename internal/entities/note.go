package entities

import "time"

// Note represents a note entity owned by a user
type Note struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"-"`
	Title      string    `json:"title"`
	Content    *string   `json:"content"`
	Category   string    `json:"category"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
