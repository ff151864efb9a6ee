package store

import (
	"database/sql"
	"fmt"

	"github.com/calder-marchand/daybook/internal/model"
)

type PersonStore struct {
	db *sql.DB
}

func NewPersonStore(db *sql.DB) *PersonStore {
	return &PersonStore{db: db}
}

func scanPerson(scanner interface{ Scan(...any) error }) (*model.Person, error) {
	var p model.Person
	var month, day, year sql.NullInt64
	err := scanner.Scan(
		&p.ID, &p.MemberID, &p.FirstName, &p.LastName, &p.Nickname,
		&p.Email, &p.Phone, &month, &day, &year,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if month.Valid {
		v := int(month.Int64)
		p.BirthMonth = &v
	}
	if day.Valid {
		v := int(day.Int64)
		p.BirthDay = &v
	}
	if year.Valid {
		v := int(year.Int64)
		p.BirthYear = &v
	}
	return &p, nil
}

const personCols = `id, member_id, first_name, last_name, nickname, email, phone, birth_month, birth_day, birth_year, created_at, updated_at`

type PersonInput struct {
	FirstName  string
	LastName   string
	Nickname   string
	Email      string
	Phone      string
	BirthMonth *int
	BirthDay   *int
	BirthYear  *int
}

type PersonPatch struct {
	FirstName  *string
	LastName   *string
	Nickname   *string
	Email      *string
	Phone      *string
	BirthMonth *int
	BirthDay   *int
	BirthYear  *int
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func (s *PersonStore) Create(memberID int64, in PersonInput) (*model.Person, error) {
	result, err := s.db.Exec(
		`INSERT INTO people (member_id, first_name, last_name, nickname, email, phone, birth_month, birth_day, birth_year)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		memberID, in.FirstName, in.LastName, in.Nickname, in.Email, in.Phone,
		nullInt(in.BirthMonth), nullInt(in.BirthDay), nullInt(in.BirthYear),
	)
	if err != nil {
		return nil, fmt.Errorf("insert person: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(memberID, id)
}

func (s *PersonStore) GetByID(memberID, id int64) (*model.Person, error) {
	row := s.db.QueryRow(
		`SELECT `+personCols+` FROM people WHERE id = ? AND member_id = ?`,
		id, memberID,
	)
	p, err := scanPerson(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get person: %w", err)
	}
	return p, nil
}

func (s *PersonStore) List(memberID int64) ([]model.Person, error) {
	rows, err := s.db.Query(
		`SELECT `+personCols+` FROM people WHERE member_id = ? ORDER BY first_name ASC, last_name ASC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []model.Person
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, *p)
	}
	return people, rows.Err()
}

func (s *PersonStore) Update(memberID, id int64, p PersonPatch) (*model.Person, error) {
	_, err := s.db.Exec(
		`UPDATE people SET
			first_name = COALESCE(?, first_name),
			last_name = COALESCE(?, last_name),
			nickname = COALESCE(?, nickname),
			email = COALESCE(?, email),
			phone = COALESCE(?, phone),
			birth_month = COALESCE(?, birth_month),
			birth_day = COALESCE(?, birth_day),
			birth_year = COALESCE(?, birth_year),
			updated_at = datetime('now')
		 WHERE id = ? AND member_id = ?`,
		nullString(p.FirstName), nullString(p.LastName), nullString(p.Nickname),
		nullString(p.Email), nullString(p.Phone),
		nullInt(p.BirthMonth), nullInt(p.BirthDay), nullInt(p.BirthYear),
		id, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}
	return s.GetByID(memberID, id)
}

func (s *PersonStore) Delete(memberID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM people WHERE id = ? AND member_id = ?`, id, memberID)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}

// --- Person notes ---

func scanPersonNote(scanner interface{ Scan(...any) error }) (*model.PersonNote, error) {
	var n model.PersonNote
	err := scanner.Scan(&n.ID, &n.PersonID, &n.Note, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

const personNoteCols = `id, person_id, note, created_at`

// AddNote appends a note to a person. The person must belong to the member;
// a foreign person id inserts nothing and returns nil.
func (s *PersonStore) AddNote(memberID, personID int64, note string) (*model.PersonNote, error) {
	person, err := s.GetByID(memberID, personID)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, nil
	}

	result, err := s.db.Exec(
		`INSERT INTO people_notes (person_id, note) VALUES (?, ?)`,
		personID, note,
	)
	if err != nil {
		return nil, fmt.Errorf("insert person note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+personNoteCols+` FROM people_notes WHERE id = ?`, id)
	return scanPersonNote(row)
}

func (s *PersonStore) ListNotes(memberID, personID int64) ([]model.PersonNote, error) {
	rows, err := s.db.Query(
		`SELECT n.id, n.person_id, n.note, n.created_at
		 FROM people_notes n
		 JOIN people p ON p.id = n.person_id
		 WHERE n.person_id = ? AND p.member_id = ?
		 ORDER BY n.created_at DESC, n.id DESC`,
		personID, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list person notes: %w", err)
	}
	defer rows.Close()

	var notes []model.PersonNote
	for rows.Next() {
		n, err := scanPersonNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan person note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *PersonStore) DeleteNote(memberID, noteID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM people_notes WHERE id = ? AND person_id IN (SELECT id FROM people WHERE member_id = ?)`,
		noteID, memberID,
	)
	if err != nil {
		return fmt.Errorf("delete person note: %w", err)
	}
	return nil
}
