package store

import (
	"database/sql"
	"fmt"

	"github.com/calder-marchand/daybook/internal/model"
)

// LinkStore manages the goal-task and idea associations.
type LinkStore struct {
	db *sql.DB
}

func NewLinkStore(db *sql.DB) *LinkStore {
	return &LinkStore{db: db}
}

// LinkGoalTask associates a goal with a task. Both rows must belong to the
// member; otherwise nothing is written. Linking an already linked pair is a
// no-op.
func (s *LinkStore) LinkGoalTask(memberID, goalID, taskID int64) error {
	_, err := s.db.Exec(
		`INSERT INTO goal_tasks (goal_id, task_id)
		 SELECT ?, ?
		 WHERE EXISTS (SELECT 1 FROM goals WHERE id = ? AND member_id = ?)
		   AND EXISTS (SELECT 1 FROM tasks WHERE id = ? AND member_id = ?)
		 ON CONFLICT(goal_id, task_id) DO NOTHING`,
		goalID, taskID, goalID, memberID, taskID, memberID,
	)
	if err != nil {
		return fmt.Errorf("link goal task: %w", err)
	}
	return nil
}

func (s *LinkStore) UnlinkGoalTask(memberID, goalID, taskID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM goal_tasks
		 WHERE goal_id = ? AND task_id = ?
		   AND goal_id IN (SELECT id FROM goals WHERE member_id = ?)`,
		goalID, taskID, memberID,
	)
	if err != nil {
		return fmt.Errorf("unlink goal task: %w", err)
	}
	return nil
}

// ListTasksForGoal returns the member's tasks linked to the goal, in the
// standard record ordering.
func (s *LinkStore) ListTasksForGoal(memberID, goalID int64) ([]model.Record, error) {
	c := Categories["tasks"]
	rows, err := s.db.Query(
		`SELECT t.id, t.member_id, t.title, t.details, t.category, t.link, t.status, t.due_date, t.completed_at, t.created_at, t.updated_at
		 FROM tasks t
		 JOIN goal_tasks gt ON gt.task_id = t.id
		 WHERE gt.goal_id = ? AND t.member_id = ?
		 ORDER BY CASE WHEN t.status = 'completed' THEN 1 ELSE 0 END ASC,
		   CASE WHEN t.due_date IS NULL THEN 1 ELSE 0 END ASC, t.due_date ASC,
		   t.created_at DESC, t.id DESC`,
		goalID, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks for goal: %w", err)
	}
	defer rows.Close()

	var tasks []model.Record
	for rows.Next() {
		r, err := scanRecord(c, rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *r)
	}
	return tasks, rows.Err()
}

// LinkIdea associates an idea with a task, goal, or project the member owns.
func (s *LinkStore) LinkIdea(memberID, ideaID int64, targetType string, targetID int64) error {
	var targetTable string
	switch targetType {
	case "task":
		targetTable = "tasks"
	case "goal":
		targetTable = "goals"
	case "project":
		targetTable = "projects"
	default:
		return fmt.Errorf("link idea: unknown target type %q", targetType)
	}

	_, err := s.db.Exec(
		fmt.Sprintf(`INSERT INTO idea_links (idea_id, target_type, target_id)
		 SELECT ?, ?, ?
		 WHERE EXISTS (SELECT 1 FROM ideas WHERE id = ? AND member_id = ?)
		   AND EXISTS (SELECT 1 FROM %s WHERE id = ? AND member_id = ?)
		 ON CONFLICT(idea_id, target_type, target_id) DO NOTHING`, targetTable),
		ideaID, targetType, targetID, ideaID, memberID, targetID, memberID,
	)
	if err != nil {
		return fmt.Errorf("link idea: %w", err)
	}
	return nil
}

func (s *LinkStore) UnlinkIdea(memberID, ideaID int64, targetType string, targetID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM idea_links
		 WHERE idea_id = ? AND target_type = ? AND target_id = ?
		   AND idea_id IN (SELECT id FROM ideas WHERE member_id = ?)`,
		ideaID, targetType, targetID, memberID,
	)
	if err != nil {
		return fmt.Errorf("unlink idea: %w", err)
	}
	return nil
}

func (s *LinkStore) ListIdeaLinks(memberID, ideaID int64) ([]model.IdeaLink, error) {
	rows, err := s.db.Query(
		`SELECT l.id, l.idea_id, l.target_type, l.target_id, l.created_at
		 FROM idea_links l
		 JOIN ideas i ON i.id = l.idea_id
		 WHERE l.idea_id = ? AND i.member_id = ?
		 ORDER BY l.created_at ASC, l.id ASC`,
		ideaID, memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list idea links: %w", err)
	}
	defer rows.Close()

	var links []model.IdeaLink
	for rows.Next() {
		var l model.IdeaLink
		if err := rows.Scan(&l.ID, &l.IdeaID, &l.TargetType, &l.TargetID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan idea link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
