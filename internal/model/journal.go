package model

import "time"

type JournalEntry struct {
	ID          int64     `json:"id"`
	MemberID    int64     `json:"member_id"`
	Entry       string    `json:"entry"`
	Notes       string    `json:"notes"`
	MoodStart   string    `json:"mood_start"`
	MoodEnd     string    `json:"mood_end"`
	Food        string    `json:"food"`
	Exercise    string    `json:"exercise"`
	Reflections string    `json:"reflections"`
	Privacy     string    `json:"privacy"`
	EntryDate   time.Time `json:"entry_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
