package store

import (
	"database/sql"
	"fmt"

	"github.com/calder-marchand/daybook/internal/model"
)

type NoteStore struct {
	db *sql.DB
}

func NewNoteStore(db *sql.DB) *NoteStore {
	return &NoteStore{db: db}
}

func scanNote(scanner interface{ Scan(...any) error }) (*model.Note, error) {
	var n model.Note
	err := scanner.Scan(&n.ID, &n.MemberID, &n.Note, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

const noteCols = `id, member_id, note, created_at, updated_at`

func (s *NoteStore) Create(memberID int64, note string) (*model.Note, error) {
	result, err := s.db.Exec(
		`INSERT INTO notes (member_id, note) VALUES (?, ?)`,
		memberID, note,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(memberID, id)
}

func (s *NoteStore) GetByID(memberID, id int64) (*model.Note, error) {
	row := s.db.QueryRow(
		`SELECT `+noteCols+` FROM notes WHERE id = ? AND member_id = ?`,
		id, memberID,
	)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (s *NoteStore) List(memberID int64) ([]model.Note, error) {
	rows, err := s.db.Query(
		`SELECT `+noteCols+` FROM notes WHERE member_id = ? ORDER BY created_at DESC, id DESC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *NoteStore) Update(memberID, id int64, note *string) (*model.Note, error) {
	_, err := s.db.Exec(
		`UPDATE notes SET note = COALESCE(?, note), updated_at = datetime('now') WHERE id = ? AND member_id = ?`,
		nullString(note), id, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return s.GetByID(memberID, id)
}

func (s *NoteStore) Delete(memberID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM notes WHERE id = ? AND member_id = ?`, id, memberID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

// --- Note links ---

func scanNoteLink(scanner interface{ Scan(...any) error }) (*model.NoteLink, error) {
	var l model.NoteLink
	err := scanner.Scan(&l.ID, &l.NoteID, &l.TargetType, &l.TargetID, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

const noteLinkCols = `id, note_id, target_type, target_id, created_at`

// SetLink attaches the note to a target. A note links to at most one target;
// linking again replaces the previous target. A foreign note id writes
// nothing and returns nil.
func (s *NoteStore) SetLink(memberID, noteID int64, targetType string, targetID int64) (*model.NoteLink, error) {
	note, err := s.GetByID(memberID, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	_, err = s.db.Exec(
		`INSERT INTO note_links (note_id, target_type, target_id) VALUES (?, ?, ?)
		 ON CONFLICT(note_id) DO UPDATE SET target_type = excluded.target_type, target_id = excluded.target_id`,
		noteID, targetType, targetID,
	)
	if err != nil {
		return nil, fmt.Errorf("set note link: %w", err)
	}
	return s.GetLink(memberID, noteID)
}

// GetLink returns the note's link, or nil when the note is unlinked or not
// owned by the member.
func (s *NoteStore) GetLink(memberID, noteID int64) (*model.NoteLink, error) {
	row := s.db.QueryRow(
		`SELECT l.id, l.note_id, l.target_type, l.target_id, l.created_at
		 FROM note_links l
		 JOIN notes n ON n.id = l.note_id
		 WHERE l.note_id = ? AND n.member_id = ?`,
		noteID, memberID,
	)
	l, err := scanNoteLink(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get note link: %w", err)
	}
	return l, nil
}

// ListForTarget returns the member's notes attached to the given target.
func (s *NoteStore) ListForTarget(memberID int64, targetType string, targetID int64) ([]model.Note, error) {
	rows, err := s.db.Query(
		`SELECT n.id, n.member_id, n.note, n.created_at, n.updated_at
		 FROM notes n
		 JOIN note_links l ON l.note_id = n.id
		 WHERE n.member_id = ? AND l.target_type = ? AND l.target_id = ?
		 ORDER BY n.created_at DESC, n.id DESC`,
		memberID, targetType, targetID,
	)
	if err != nil {
		return nil, fmt.Errorf("list notes for target: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, *n)
	}
	return notes, rows.Err()
}

func (s *NoteStore) DeleteLink(memberID, noteID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM note_links WHERE note_id = ? AND note_id IN (SELECT id FROM notes WHERE member_id = ?)`,
		noteID, memberID,
	)
	if err != nil {
		return fmt.Errorf("delete note link: %w", err)
	}
	return nil
}
