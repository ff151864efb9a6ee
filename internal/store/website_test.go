package store

import (
	"testing"
	"time"
)

func TestWebsiteCreateAndList(t *testing.T) {
	db := setupTestDB(t)
	member := createTestMember(t, db, "frodo@example.com")
	websites := NewWebsiteStore(db)

	if _, err := websites.Create(member.ID, WebsiteInput{Name: "Shire Gazette", Link: "https://gazette.example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := websites.Create(member.ID, WebsiteInput{Name: "Bag End Blog", Link: "https://bagend.example.com", DomainHost: "porkbun"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := websites.List(member.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d websites, want 2", len(list))
	}
	if list[0].Name != "Bag End Blog" {
		t.Errorf("first = %q, want name order", list[0].Name)
	}
}

func TestWebsitePartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	member := createTestMember(t, db, "frodo@example.com")
	websites := NewWebsiteStore(db)

	created, err := websites.Create(member.ID, WebsiteInput{
		Name:       "Shire Gazette",
		Link:       "https://gazette.example.com",
		DomainHost: "porkbun",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := websites.Update(member.ID, created.ID, WebsitePatch{
		HostDetails: strPtr("renews each March"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.HostDetails != "renews each March" {
		t.Errorf("host details = %q", updated.HostDetails)
	}
	if updated.DomainHost != "porkbun" {
		t.Errorf("omitted domain host overwritten: %q", updated.DomainHost)
	}
}

func TestWebsiteTaskLifecycle(t *testing.T) {
	db := setupTestDB(t)
	member := createTestMember(t, db, "frodo@example.com")
	websites := NewWebsiteStore(db)

	site, err := websites.Create(member.ID, WebsiteInput{Name: "Shire Gazette", Link: "https://gazette.example.com"})
	if err != nil {
		t.Fatalf("create site: %v", err)
	}

	due := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	task, err := websites.CreateTask(member.ID, site.ID, "Renew TLS certificate", "expires soon", &due)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task == nil {
		t.Fatal("expected task")
	}
	if task.Status != "active" {
		t.Errorf("status = %q", task.Status)
	}

	completed, err := websites.UpdateTask(member.ID, task.ID, nil, nil, strPtr("completed"), nil)
	if err != nil {
		t.Fatalf("complete task: %v", err)
	}
	if completed.CompletedAt == nil {
		t.Fatal("expected completed_at")
	}
	if completed.Title != "Renew TLS certificate" {
		t.Errorf("omitted title overwritten: %q", completed.Title)
	}

	tasks, err := websites.ListTasks(member.ID, site.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}

	if err := websites.DeleteTask(member.ID, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	tasks, err = websites.ListTasks(member.ID, site.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Error("task not deleted")
	}
}

func TestWebsiteTaskForeignWebsite(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestMember(t, db, "alice@example.com")
	bob := createTestMember(t, db, "bob@example.com")
	websites := NewWebsiteStore(db)

	site, err := websites.Create(alice.ID, WebsiteInput{Name: "Shire Gazette", Link: "https://gazette.example.com"})
	if err != nil {
		t.Fatalf("create site: %v", err)
	}

	task, err := websites.CreateTask(bob.ID, site.ID, "should not attach", "", nil)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task != nil {
		t.Error("task attached to foreign website")
	}

	got, err := websites.GetByID(bob.ID, site.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("foreign member should not read the website")
	}
}
