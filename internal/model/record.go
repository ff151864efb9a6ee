package model

import "time"

// Record statuses for the categories that track completion.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Record is the shape shared by the uniform record categories (tasks,
// projects, goals, ideas, quotes, dreams, memories, poems, story ideas,
// watch-read-do items, to-buy items, recipes). Status and CompletedAt are
// zero for categories without a status column; DueDate doubles as the
// domain date for dreams and memories.
type Record struct {
	ID          int64      `json:"id"`
	MemberID    int64      `json:"member_id"`
	Title       string     `json:"title"`
	Details     string     `json:"details"`
	Category    string     `json:"category"`
	Link        string     `json:"link"`
	Status      string     `json:"status,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
