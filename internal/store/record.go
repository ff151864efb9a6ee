package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/calder-marchand/daybook/internal/model"
)

// Category parameterizes the generic record store for one record table.
// The original codebase repeated the same create/update/delete/list shape
// per category; here one adapter serves them all.
type Category struct {
	Name       string // route segment, e.g. "tasks"
	Table      string
	Field      string // label for the mandatory field in validation messages
	HasStatus  bool
	HasDueDate bool
	Path       string // dashboard path invalidated on mutation
}

// Categories maps route segments to their table configuration.
var Categories = map[string]Category{
	"tasks":       {Name: "tasks", Table: "tasks", Field: "to-do", HasStatus: true, HasDueDate: true, Path: "/to-do"},
	"projects":    {Name: "projects", Table: "projects", Field: "project", HasStatus: true, Path: "/dashboard/projects"},
	"goals":       {Name: "goals", Table: "goals", Field: "goal", HasStatus: true, HasDueDate: true, Path: "/dashboard/goals"},
	"ideas":       {Name: "ideas", Table: "ideas", Field: "idea", Path: "/ideas"},
	"quotes":      {Name: "quotes", Table: "quotes", Field: "quote", Path: "/dashboard/quotes"},
	"dreams":      {Name: "dreams", Table: "dreams", Field: "dream", HasDueDate: true, Path: "/dashboard/dreamlab"},
	"memories":    {Name: "memories", Table: "memories", Field: "memory", HasDueDate: true, Path: "/dashboard/memories"},
	"poems":       {Name: "poems", Table: "poems", Field: "poem", Path: "/dashboard/poems"},
	"story-ideas": {Name: "story-ideas", Table: "story_ideas", Field: "story idea", Path: "/dashboard/story-ideas"},
	"watch-read-do": {Name: "watch-read-do", Table: "wrd_items", Field: "name", HasStatus: true, Path: "/dashboard/watch-read-do"},
	"to-buy":      {Name: "to-buy", Table: "to_buy", Field: "item", HasStatus: true, Path: "/dashboard/purchases"},
	"recipes":     {Name: "recipes", Table: "recipes", Field: "recipe", Path: "/dashboard/recipes"},
}

// columns returns the SELECT column list for this category's table.
func (c Category) columns() string {
	cols := []string{"id", "member_id", "title", "details", "category", "link"}
	if c.HasStatus {
		cols = append(cols, "status")
	}
	if c.HasDueDate {
		cols = append(cols, "due_date")
	}
	if c.HasStatus {
		cols = append(cols, "completed_at")
	}
	cols = append(cols, "created_at", "updated_at")
	return strings.Join(cols, ", ")
}

// RecordInput holds the fields accepted on create.
type RecordInput struct {
	Title    string
	Details  string
	Category string
	Link     string
	DueDate  *time.Time
}

// RecordPatch holds the fields accepted on update. Nil means "field omitted:
// keep the stored value"; every update compiles to a single COALESCE-style
// statement so omitted fields are never overwritten.
type RecordPatch struct {
	Title    *string
	Details  *string
	Category *string
	Link     *string
	Status   *string
	DueDate  *time.Time
}

// ListFilter narrows List results. The date range applies to the due date
// for categories that carry one, otherwise to the creation time.
type ListFilter struct {
	Status   string
	Category string
	From     *time.Time
	To       *time.Time
}

// RecordStore is the generic owner-scoped adapter over the uniform record
// tables. All reads and writes filter by member_id; a guessed id belonging
// to another member behaves exactly like a missing row.
type RecordStore struct {
	db *sql.DB
}

func NewRecordStore(db *sql.DB) *RecordStore {
	return &RecordStore{db: db}
}

func scanRecord(c Category, scanner interface{ Scan(...any) error }) (*model.Record, error) {
	var r model.Record
	var due, completed sql.NullTime

	dest := []any{&r.ID, &r.MemberID, &r.Title, &r.Details, &r.Category, &r.Link}
	if c.HasStatus {
		dest = append(dest, &r.Status)
	}
	if c.HasDueDate {
		dest = append(dest, &due)
	}
	if c.HasStatus {
		dest = append(dest, &completed)
	}
	dest = append(dest, &r.CreatedAt, &r.UpdatedAt)

	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}
	if due.Valid {
		r.DueDate = &due.Time
	}
	if completed.Valid {
		r.CompletedAt = &completed.Time
	}
	return &r, nil
}

func (s *RecordStore) Create(c Category, memberID int64, in RecordInput) (*model.Record, error) {
	cols := "member_id, title, details, category, link"
	args := []any{memberID, in.Title, in.Details, in.Category, in.Link}
	if c.HasDueDate {
		cols += ", due_date"
		var due sql.NullTime
		if in.DueDate != nil {
			due = sql.NullTime{Time: *in.DueDate, Valid: true}
		}
		args = append(args, due)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(args)), ", ")
	result, err := s.db.Exec(
		fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, c.Table, cols, placeholders),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("insert %s: %w", c.Name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(c, memberID, id)
}

func (s *RecordStore) GetByID(c Category, memberID, id int64) (*model.Record, error) {
	row := s.db.QueryRow(
		fmt.Sprintf(`SELECT %s FROM %s WHERE id = ? AND member_id = ?`, c.columns(), c.Table),
		id, memberID,
	)
	r, err := scanRecord(c, row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", c.Name, err)
	}
	return r, nil
}

// List returns the member's records, incomplete before complete, soonest due
// date first with NULLs last, newest created first as tiebreak.
func (s *RecordStore) List(c Category, memberID int64, f ListFilter) ([]model.Record, error) {
	where := []string{"member_id = ?"}
	args := []any{memberID}

	if f.Status != "" && c.HasStatus {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	dateCol := "created_at"
	if c.HasDueDate {
		dateCol = "due_date"
	}
	if f.From != nil {
		where = append(where, dateCol+" >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, dateCol+" < ?")
		args = append(args, *f.To)
	}

	var order []string
	if c.HasStatus {
		order = append(order, "CASE WHEN status = 'completed' THEN 1 ELSE 0 END ASC")
	}
	if c.HasDueDate {
		order = append(order, "CASE WHEN due_date IS NULL THEN 1 ELSE 0 END ASC", "due_date ASC")
	}
	order = append(order, "created_at DESC", "id DESC")

	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s ORDER BY %s`,
		c.columns(), c.Table, strings.Join(where, " AND "), strings.Join(order, ", "),
	)
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.Name, err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		r, err := scanRecord(c, rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.Name, err)
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

// Update applies the patch in one statement. Omitted fields keep their
// stored values. A status transition to completed stamps completed_at only
// when it is not already set; an explicit transition to any other status
// clears it; an omitted status leaves it untouched. An id owned by another
// member updates zero rows and returns nil without error.
func (s *RecordStore) Update(c Category, memberID, id int64, p RecordPatch) (*model.Record, error) {
	set := []string{
		"title = COALESCE(?, title)",
		"details = COALESCE(?, details)",
		"category = COALESCE(?, category)",
		"link = COALESCE(?, link)",
	}
	args := []any{nullString(p.Title), nullString(p.Details), nullString(p.Category), nullString(p.Link)}

	if c.HasDueDate {
		set = append(set, "due_date = COALESCE(?, due_date)")
		args = append(args, nullTime(p.DueDate))
	}
	if c.HasStatus {
		set = append(set, "status = COALESCE(?, status)")
		args = append(args, nullString(p.Status))
		set = append(set, `completed_at = CASE
			WHEN ? = 'completed' THEN COALESCE(completed_at, datetime('now'))
			WHEN ? IS NOT NULL THEN NULL
			ELSE completed_at END`)
		args = append(args, nullString(p.Status), nullString(p.Status))
	}
	set = append(set, "updated_at = datetime('now')")
	args = append(args, id, memberID)

	_, err := s.db.Exec(
		fmt.Sprintf(`UPDATE %s SET %s WHERE id = ? AND member_id = ?`, c.Table, strings.Join(set, ", ")),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", c.Name, err)
	}
	return s.GetByID(c, memberID, id)
}

// Delete removes the member's record. Deleting a missing or foreign id is a
// silent no-op.
func (s *RecordStore) Delete(c Category, memberID, id int64) error {
	_, err := s.db.Exec(
		fmt.Sprintf(`DELETE FROM %s WHERE id = ? AND member_id = ?`, c.Table),
		id, memberID,
	)
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.Name, err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
