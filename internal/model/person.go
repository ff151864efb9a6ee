package model

import "time"

type Person struct {
	ID         int64     `json:"id"`
	MemberID   int64     `json:"member_id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Nickname   string    `json:"nickname"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	BirthMonth *int      `json:"birth_month"`
	BirthDay   *int      `json:"birth_day"`
	BirthYear  *int      `json:"birth_year"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PersonNote struct {
	ID        int64     `json:"id"`
	PersonID  int64     `json:"person_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
