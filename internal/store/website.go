package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/calder-marchand/daybook/internal/model"
)

type WebsiteStore struct {
	db *sql.DB
}

func NewWebsiteStore(db *sql.DB) *WebsiteStore {
	return &WebsiteStore{db: db}
}

func scanWebsite(scanner interface{ Scan(...any) error }) (*model.Website, error) {
	var w model.Website
	err := scanner.Scan(
		&w.ID, &w.MemberID, &w.Name, &w.Link, &w.DomainHost, &w.HostDetails,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

const websiteCols = `id, member_id, name, link, domain_host, host_details, created_at, updated_at`

type WebsiteInput struct {
	Name        string
	Link        string
	DomainHost  string
	HostDetails string
}

type WebsitePatch struct {
	Name        *string
	Link        *string
	DomainHost  *string
	HostDetails *string
}

func (s *WebsiteStore) Create(memberID int64, in WebsiteInput) (*model.Website, error) {
	result, err := s.db.Exec(
		`INSERT INTO websites (member_id, name, link, domain_host, host_details) VALUES (?, ?, ?, ?, ?)`,
		memberID, in.Name, in.Link, in.DomainHost, in.HostDetails,
	)
	if err != nil {
		return nil, fmt.Errorf("insert website: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(memberID, id)
}

func (s *WebsiteStore) GetByID(memberID, id int64) (*model.Website, error) {
	row := s.db.QueryRow(
		`SELECT `+websiteCols+` FROM websites WHERE id = ? AND member_id = ?`,
		id, memberID,
	)
	w, err := scanWebsite(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get website: %w", err)
	}
	return w, nil
}

func (s *WebsiteStore) List(memberID int64) ([]model.Website, error) {
	rows, err := s.db.Query(
		`SELECT `+websiteCols+` FROM websites WHERE member_id = ? ORDER BY name ASC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list websites: %w", err)
	}
	defer rows.Close()

	var sites []model.Website
	for rows.Next() {
		w, err := scanWebsite(rows)
		if err != nil {
			return nil, fmt.Errorf("scan website: %w", err)
		}
		sites = append(sites, *w)
	}
	return sites, rows.Err()
}

func (s *WebsiteStore) Update(memberID, id int64, p WebsitePatch) (*model.Website, error) {
	_, err := s.db.Exec(
		`UPDATE websites SET
			name = COALESCE(?, name),
			link = COALESCE(?, link),
			domain_host = COALESCE(?, domain_host),
			host_details = COALESCE(?, host_details),
			updated_at = datetime('now')
		 WHERE id = ? AND member_id = ?`,
		nullString(p.Name), nullString(p.Link), nullString(p.DomainHost), nullString(p.HostDetails),
		id, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("update website: %w", err)
	}
	return s.GetByID(memberID, id)
}

func (s *WebsiteStore) Delete(memberID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM websites WHERE id = ? AND member_id = ?`, id, memberID)
	if err != nil {
		return fmt.Errorf("delete website: %w", err)
	}
	return nil
}

// --- Website tasks ---

func scanWebsiteTask(scanner interface{ Scan(...any) error }) (*model.WebsiteTask, error) {
	var t model.WebsiteTask
	var due, completed sql.NullTime
	err := scanner.Scan(
		&t.ID, &t.WebsiteID, &t.Title, &t.Details, &t.Status, &due, &completed,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		t.DueDate = &due.Time
	}
	if completed.Valid {
		t.CompletedAt = &completed.Time
	}
	return &t, nil
}

const websiteTaskCols = `id, website_id, title, details, status, due_date, completed_at, created_at, updated_at`

// CreateTask adds a task to one of the member's websites. A foreign website
// id inserts nothing and returns nil.
func (s *WebsiteStore) CreateTask(memberID, websiteID int64, title, details string, dueDate *time.Time) (*model.WebsiteTask, error) {
	site, err := s.GetByID(memberID, websiteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, nil
	}

	result, err := s.db.Exec(
		`INSERT INTO website_tasks (website_id, title, details, due_date) VALUES (?, ?, ?, ?)`,
		websiteID, title, details, nullTime(dueDate),
	)
	if err != nil {
		return nil, fmt.Errorf("insert website task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetTaskByID(memberID, id)
}

func (s *WebsiteStore) GetTaskByID(memberID, id int64) (*model.WebsiteTask, error) {
	row := s.db.QueryRow(
		`SELECT t.id, t.website_id, t.title, t.details, t.status, t.due_date, t.completed_at, t.created_at, t.updated_at
		 FROM website_tasks t
		 JOIN websites w ON w.id = t.website_id
		 WHERE t.id = ? AND w.member_id = ?`,
		id, memberID,
	)
	t, err := scanWebsiteTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get website task: %w", err)
	}
	return t, nil
}

func (s *WebsiteStore) ListTasks(memberID, websiteID int64) ([]model.WebsiteTask, error) {
	rows, err := s.db.Query(
		`SELECT t.id, t.website_id, t.title, t.details, t.status, t.due_date, t.completed_at, t.created_at, t.updated_at
		 FROM website_tasks t
		 JOIN websites w ON w.id = t.website_id
		 WHERE t.website_id = ? AND w.member_id = ?
		 ORDER BY CASE WHEN t.status = 'completed' THEN 1 ELSE 0 END ASC,
		   CASE WHEN t.due_date IS NULL THEN 1 ELSE 0 END ASC, t.due_date ASC,
		   t.created_at DESC, t.id DESC`,
		websiteID, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list website tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.WebsiteTask
	for rows.Next() {
		t, err := scanWebsiteTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan website task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// UpdateTask follows the record update rules: COALESCE on omitted fields and
// idempotent completion stamping.
func (s *WebsiteStore) UpdateTask(memberID, id int64, title, details, status *string, dueDate *time.Time) (*model.WebsiteTask, error) {
	_, err := s.db.Exec(
		`UPDATE website_tasks SET
			title = COALESCE(?, title),
			details = COALESCE(?, details),
			due_date = COALESCE(?, due_date),
			status = COALESCE(?, status),
			completed_at = CASE
				WHEN ? = 'completed' THEN COALESCE(completed_at, datetime('now'))
				WHEN ? IS NOT NULL THEN NULL
				ELSE completed_at END,
			updated_at = datetime('now')
		 WHERE id = ? AND website_id IN (SELECT id FROM websites WHERE member_id = ?)`,
		nullString(title), nullString(details), nullTime(dueDate),
		nullString(status), nullString(status), nullString(status),
		id, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("update website task: %w", err)
	}
	return s.GetTaskByID(memberID, id)
}

func (s *WebsiteStore) DeleteTask(memberID, id int64) error {
	_, err := s.db.Exec(
		`DELETE FROM website_tasks WHERE id = ? AND website_id IN (SELECT id FROM websites WHERE member_id = ?)`,
		id, memberID,
	)
	if err != nil {
		return fmt.Errorf("delete website task: %w", err)
	}
	return nil
}
