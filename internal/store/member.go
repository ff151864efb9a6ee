package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/calder-marchand/daybook/internal/model"
	"github.com/google/uuid"
)

type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

func scanMember(scanner interface{ Scan(...any) error }) (*model.Member, error) {
	var m model.Member
	err := scanner.Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.Email, &m.PasswordHash,
		&m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const memberCols = `id, first_name, last_name, email, password_hash, created_at, updated_at`

func (s *MemberStore) Create(firstName, lastName, email, passwordHash string) (*model.Member, error) {
	result, err := s.db.Exec(
		`INSERT INTO members (first_name, last_name, email, password_hash) VALUES (?, ?, ?, ?)`,
		firstName, lastName, email, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *MemberStore) GetByID(id int64) (*model.Member, error) {
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (s *MemberStore) GetByEmail(email string) (*model.Member, error) {
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM members WHERE email = ?`, email)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member by email: %w", err)
	}
	return m, nil
}

func (s *MemberStore) UpdatePassword(id int64, passwordHash string) error {
	_, err := s.db.Exec(
		`UPDATE members SET password_hash = ?, updated_at = datetime('now') WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// --- Password reset tokens ---

const resetTTL = 30 * time.Minute

func scanReset(scanner interface{ Scan(...any) error }) (*model.PasswordReset, error) {
	var r model.PasswordReset
	var usedAt sql.NullTime
	err := scanner.Scan(&r.ID, &r.Token, &r.MemberID, &r.ExpiresAt, &usedAt, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	if usedAt.Valid {
		r.UsedAt = &usedAt.Time
	}
	return &r, nil
}

const resetCols = `id, token, member_id, expires_at, used_at, created_at`

// CreatePasswordReset issues a single-use reset token with a 30-minute expiry.
func (s *MemberStore) CreatePasswordReset(memberID int64) (*model.PasswordReset, error) {
	token := uuid.NewString()
	expiresAt := time.Now().UTC().Add(resetTTL)

	result, err := s.db.Exec(
		`INSERT INTO password_resets (token, member_id, expires_at) VALUES (?, ?, ?)`,
		token, memberID, expiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert password reset: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+resetCols+` FROM password_resets WHERE id = ?`, id)
	return scanReset(row)
}

// GetPasswordReset returns the reset for the token, or nil if unknown, used,
// or expired.
func (s *MemberStore) GetPasswordReset(token string) (*model.PasswordReset, error) {
	row := s.db.QueryRow(`SELECT `+resetCols+` FROM password_resets WHERE token = ?`, token)
	r, err := scanReset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get password reset: %w", err)
	}
	if r.UsedAt != nil || time.Now().UTC().After(r.ExpiresAt) {
		return nil, nil
	}
	return r, nil
}

func (s *MemberStore) MarkResetUsed(id int64) error {
	_, err := s.db.Exec(
		`UPDATE password_resets SET used_at = datetime('now') WHERE id = ? AND used_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("mark reset used: %w", err)
	}
	return nil
}
