package model

import "time"

type Note struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"member_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteLink attaches a note to exactly one target entity.
type NoteLink struct {
	ID         int64     `json:"id"`
	NoteID     int64     `json:"note_id"`
	TargetType string    `json:"target_type"`
	TargetID   int64     `json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type GoalTask struct {
	ID        int64     `json:"id"`
	GoalID    int64     `json:"goal_id"`
	TaskID    int64     `json:"task_id"`
	CreatedAt time.Time `json:"created_at"`
}

type IdeaLink struct {
	ID         int64     `json:"id"`
	IdeaID     int64     `json:"idea_id"`
	TargetType string    `json:"target_type"`
	TargetID   int64     `json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}
