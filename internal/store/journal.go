package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/calder-marchand/daybook/internal/model"
)

type JournalStore struct {
	db *sql.DB
}

func NewJournalStore(db *sql.DB) *JournalStore {
	return &JournalStore{db: db}
}

func scanJournalEntry(scanner interface{ Scan(...any) error }) (*model.JournalEntry, error) {
	var e model.JournalEntry
	err := scanner.Scan(
		&e.ID, &e.MemberID, &e.Entry, &e.Notes, &e.MoodStart, &e.MoodEnd,
		&e.Food, &e.Exercise, &e.Reflections, &e.Privacy, &e.EntryDate,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

const journalCols = `id, member_id, entry, notes, mood_start, mood_end, food, exercise, reflections, privacy, entry_date, created_at, updated_at`

type JournalInput struct {
	Entry       string
	Notes       string
	MoodStart   string
	MoodEnd     string
	Food        string
	Exercise    string
	Reflections string
	Privacy     string
	EntryDate   *time.Time
}

type JournalPatch struct {
	Entry       *string
	Notes       *string
	MoodStart   *string
	MoodEnd     *string
	Food        *string
	Exercise    *string
	Reflections *string
	Privacy     *string
	EntryDate   *time.Time
}

func (s *JournalStore) Create(memberID int64, in JournalInput) (*model.JournalEntry, error) {
	privacy := in.Privacy
	if privacy == "" {
		privacy = "private"
	}
	entryDate := time.Now().UTC()
	if in.EntryDate != nil {
		entryDate = *in.EntryDate
	}

	result, err := s.db.Exec(
		`INSERT INTO journal_entries (member_id, entry, notes, mood_start, mood_end, food, exercise, reflections, privacy, entry_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		memberID, in.Entry, in.Notes, in.MoodStart, in.MoodEnd,
		in.Food, in.Exercise, in.Reflections, privacy, entryDate,
	)
	if err != nil {
		return nil, fmt.Errorf("insert journal entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(memberID, id)
}

func (s *JournalStore) GetByID(memberID, id int64) (*model.JournalEntry, error) {
	row := s.db.QueryRow(
		`SELECT `+journalCols+` FROM journal_entries WHERE id = ? AND member_id = ?`,
		id, memberID,
	)
	e, err := scanJournalEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get journal entry: %w", err)
	}
	return e, nil
}

// List returns the member's entries newest first, optionally bounded by
// entry date.
func (s *JournalStore) List(memberID int64, from, to *time.Time) ([]model.JournalEntry, error) {
	query := `SELECT ` + journalCols + ` FROM journal_entries WHERE member_id = ?`
	args := []any{memberID}
	if from != nil {
		query += ` AND entry_date >= ?`
		args = append(args, *from)
	}
	if to != nil {
		query += ` AND entry_date < ?`
		args = append(args, *to)
	}
	query += ` ORDER BY entry_date DESC, id DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []model.JournalEntry
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Update applies the patch with COALESCE semantics; omitted fields keep
// their stored values.
func (s *JournalStore) Update(memberID, id int64, p JournalPatch) (*model.JournalEntry, error) {
	_, err := s.db.Exec(
		`UPDATE journal_entries SET
			entry = COALESCE(?, entry),
			notes = COALESCE(?, notes),
			mood_start = COALESCE(?, mood_start),
			mood_end = COALESCE(?, mood_end),
			food = COALESCE(?, food),
			exercise = COALESCE(?, exercise),
			reflections = COALESCE(?, reflections),
			privacy = COALESCE(?, privacy),
			entry_date = COALESCE(?, entry_date),
			updated_at = datetime('now')
		 WHERE id = ? AND member_id = ?`,
		nullString(p.Entry), nullString(p.Notes), nullString(p.MoodStart),
		nullString(p.MoodEnd), nullString(p.Food), nullString(p.Exercise),
		nullString(p.Reflections), nullString(p.Privacy), nullTime(p.EntryDate),
		id, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("update journal entry: %w", err)
	}
	return s.GetByID(memberID, id)
}

func (s *JournalStore) Delete(memberID, id int64) error {
	_, err := s.db.Exec(
		`DELETE FROM journal_entries WHERE id = ? AND member_id = ?`,
		id, memberID,
	)
	if err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	return nil
}
