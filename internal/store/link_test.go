package store

import (
	"testing"
)

func TestGoalTaskLink(t *testing.T) {
	db := setupTestDB(t)
	member := createTestMember(t, db, "frodo@example.com")
	records := NewRecordStore(db)
	links := NewLinkStore(db)

	goal, err := records.Create(Categories["goals"], member.ID, RecordInput{Title: "Learn Sindarin"})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	task, err := records.Create(Categories["tasks"], member.ID, RecordInput{Title: "Find a grammar book"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := links.LinkGoalTask(member.ID, goal.ID, task.ID); err != nil {
		t.Fatalf("link: %v", err)
	}
	// linking twice is a no-op
	if err := links.LinkGoalTask(member.ID, goal.ID, task.ID); err != nil {
		t.Fatalf("relink: %v", err)
	}

	tasks, err := links.ListTasksForGoal(member.ID, goal.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != task.ID {
		t.Fatalf("got %d linked tasks", len(tasks))
	}

	if err := links.UnlinkGoalTask(member.ID, goal.ID, task.ID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	tasks, err = links.ListTasksForGoal(member.ID, goal.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Error("link survived unlink")
	}
}

func TestGoalTaskLinkForeignOwner(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestMember(t, db, "alice@example.com")
	bob := createTestMember(t, db, "bob@example.com")
	records := NewRecordStore(db)
	links := NewLinkStore(db)

	goal, err := records.Create(Categories["goals"], alice.ID, RecordInput{Title: "Alice's goal"})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	task, err := records.Create(Categories["tasks"], alice.ID, RecordInput{Title: "Alice's task"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := links.LinkGoalTask(bob.ID, goal.ID, task.ID); err != nil {
		t.Fatalf("foreign link: %v", err)
	}
	tasks, err := links.ListTasksForGoal(alice.ID, goal.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Error("foreign member created a link between another member's records")
	}
}

func TestIdeaLinks(t *testing.T) {
	db := setupTestDB(t)
	member := createTestMember(t, db, "frodo@example.com")
	records := NewRecordStore(db)
	links := NewLinkStore(db)

	idea, err := records.Create(Categories["ideas"], member.ID, RecordInput{Title: "Community seed library"})
	if err != nil {
		t.Fatalf("create idea: %v", err)
	}
	project, err := records.Create(Categories["projects"], member.ID, RecordInput{Title: "Garden revamp"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	goal, err := records.Create(Categories["goals"], member.ID, RecordInput{Title: "Grow more food"})
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	if err := links.LinkIdea(member.ID, idea.ID, "project", project.ID); err != nil {
		t.Fatalf("link project: %v", err)
	}
	if err := links.LinkIdea(member.ID, idea.ID, "goal", goal.ID); err != nil {
		t.Fatalf("link goal: %v", err)
	}

	got, err := links.ListIdeaLinks(member.ID, idea.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d idea links, want 2", len(got))
	}

	if err := links.UnlinkIdea(member.ID, idea.ID, "project", project.ID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	got, err = links.ListIdeaLinks(member.ID, idea.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].TargetType != "goal" {
		t.Errorf("got %d idea links after unlink", len(got))
	}
}

func TestIdeaLinkUnknownTargetType(t *testing.T) {
	db := setupTestDB(t)
	member := createTestMember(t, db, "frodo@example.com")
	links := NewLinkStore(db)

	if err := links.LinkIdea(member.ID, 1, "recipe", 1); err == nil {
		t.Error("expected error for unsupported target type")
	}
}
