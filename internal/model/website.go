package model

import "time"

type Website struct {
	ID          int64     `json:"id"`
	MemberID    int64     `json:"member_id"`
	Name        string    `json:"name"`
	Link        string    `json:"link"`
	DomainHost  string    `json:"domain_host"`
	HostDetails string    `json:"host_details"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type WebsiteTask struct {
	ID          int64      `json:"id"`
	WebsiteID   int64      `json:"website_id"`
	Title       string     `json:"title"`
	Details     string     `json:"details"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
